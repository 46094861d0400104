/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.4's WordFormer: scans each page's characters in extraction
 * order, grouping them into maximal runs separated by a writing-mode change,
 * a rotation change, insufficient rotation-aware vertical overlap, or too
 * large a rotation-aware horizontal gap.
 *
 * Figures stay non-text containers (model.Figure has no Words field, per
 * §3): their characters are captured for geometry but are not independently
 * formed into words, matching how the figure itself (not its contents)
 * participates in segmentation and reading order.
 */

package words

import (
	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// sameLineOverlapRatio is §4.4's fixed 0.5 vertical-overlap threshold
// (distinct from stats' configurable min_y_overlap_ratio_same_line, which
// §4.3 applies to whole words rather than characters-within-a-word).
const sameLineOverlapRatio = 0.5

// Form runs WordFormer over every page of `doc`.
func Form(doc *model.Document, cfg *config.Config) {
	for _, page := range doc.Pages {
		page.Words = formSequence(page.Characters, cfg)
	}
}

// builder accumulates the in-flight word's characters and running geometry.
type builder struct {
	chars       []*model.Character
	pos         model.Position
	maxFontSize float64
}

func newBuilder(c *model.Character) *builder {
	return &builder{chars: []*model.Character{c}, pos: c.Pos, maxFontSize: c.FontSize}
}

func (b *builder) add(c *model.Character) {
	b.chars = append(b.chars, c)
	b.pos.Rect = geom.Union(b.pos.Rect, c.Pos.Rect)
	if c.FontSize > b.maxFontSize {
		b.maxFontSize = c.FontSize
	}
}

func formSequence(chars []*model.Character, cfg *config.Config) []*model.Word {
	var result []*model.Word
	var cur *builder

	flush := func() {
		if cur == nil {
			return
		}
		result = append(result, buildWord(cur))
		cur = nil
	}

	for _, c := range chars {
		// A merged diacritic mark (§4.2) isn't a character of its own; its
		// text already lives in the base's TextWithDiacriticMark.
		if c.IsDiacriticMarkOfBase != nil {
			continue
		}
		if cur == nil {
			cur = newBuilder(c)
			continue
		}
		if isBoundary(cur, c, cfg) {
			flush()
			cur = newBuilder(c)
			continue
		}
		cur.add(c)
	}
	flush()
	return result
}

// isBoundary implements §4.4's four boundary conditions (a)-(d).
func isBoundary(cur *builder, c *model.Character, cfg *config.Config) bool {
	if cur.pos.WritingMode != c.Pos.WritingMode {
		return true
	}
	if cur.pos.Rotation != c.Pos.Rotation {
		return true
	}
	if rotAwareYOverlapRatio(cur.pos, c.Pos) < sameLineOverlapRatio {
		return true
	}

	threshold := cfg.MinWordBreakSpace * cur.maxFontSize
	gapRight := c.Pos.RotLeft() - cur.pos.RotRight()   // char sits right of word end
	gapLeft := cur.pos.RotLeft() - c.Pos.RotRight()     // char sits left of word start
	return gapRight > threshold || gapLeft > threshold
}

// rotAwareYOverlapRatio returns the max-of-two-ratios vertical overlap
// between two positions' rotation-aware top/bottom edges.
func rotAwareYOverlapRatio(a, b model.Position) float64 {
	aLo, aHi := a.RotUpper(), a.RotLower()
	bLo, bHi := b.RotUpper(), b.RotLower()
	lo := aLo
	if bLo > lo {
		lo = bLo
	}
	hi := aHi
	if bHi < hi {
		hi = bHi
	}
	overlap := hi - lo
	if overlap <= 0 {
		return 0
	}
	ha, hb := aHi-aLo, bHi-bLo
	var ra, rb float64
	if ha > 0 {
		ra = overlap / ha
	}
	if hb > 0 {
		rb = overlap / hb
	}
	if ra > rb {
		return ra
	}
	return rb
}

func buildWord(b *builder) *model.Word {
	first := b.chars[0]
	text := ""
	for _, c := range b.chars {
		text += c.EffectiveText()
	}
	return &model.Word{
		Pos:        b.pos,
		Text:       text,
		Rank:       first.Rank,
		FontName:   argmaxFontName(b.chars),
		FontSize:   argmaxFontSize(b.chars),
		Characters: b.chars,
	}
}

func argmaxFontName(chars []*model.Character) string {
	counts := map[string]int{}
	var order []string
	for _, c := range chars {
		if c.FontName == "" {
			continue
		}
		if _, ok := counts[c.FontName]; !ok {
			order = append(order, c.FontName)
		}
		counts[c.FontName]++
	}
	best, bestCount := "", -1
	for _, name := range order {
		if counts[name] > bestCount {
			best, bestCount = name, counts[name]
		}
	}
	return best
}

func argmaxFontSize(chars []*model.Character) float64 {
	counts := map[float64]int{}
	var order []float64
	for _, c := range chars {
		if _, ok := counts[c.FontSize]; !ok {
			order = append(order, c.FontSize)
		}
		counts[c.FontSize]++
	}
	var best float64
	bestCount := -1
	for _, size := range order {
		if counts[size] > bestCount {
			best, bestCount = size, counts[size]
		}
	}
	return best
}
