/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.8's TextLineDetector: clusters a segment's words onto
 * shared baselines, merges fragments across adjacent baselines, links lines
 * in reading order, and builds the page-wide indentation hierarchy block
 * detection consults (§4.9).
 */

package lines

import (
	"math"
	"sort"
	"strings"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
	"github.com/ad-freiburg/pdftotextplus-go/stats"
)

// Detect runs TextLineDetector over every segment of every page, then
// computes each page's indentation hierarchy across all of its segments'
// lines.
func Detect(doc *model.Document, cfg *config.Config) {
	for _, page := range doc.Pages {
		for _, seg := range page.Segments {
			detectSegment(seg, doc, cfg)
		}
		buildIndentationHierarchy(page, doc, cfg)
	}
}

func detectSegment(seg *model.PageSegment, doc *model.Document, cfg *config.Config) {
	words := segmentWords(seg)
	if len(words) == 0 {
		seg.Lines = nil
		return
	}

	clusters, order := clusterWords(words)
	textLines := make([]*model.TextLine, 0, len(order))
	for _, key := range order {
		textLines = append(textLines, buildLine(clusters[key]))
	}

	sortLines(textLines)
	textLines = mergeRounds(textLines, doc)

	for i, l := range textLines {
		l.Rank = i
		if i > 0 {
			l.PrevLine = textLines[i-1]
			textLines[i-1].NextLine = l
		}
	}

	seg.Lines = textLines
	seg.TrimBox = computeTrimBox(seg, cfg)
}

// segmentWords returns the segment's words, skipping ones marked as part of
// a stacked math symbol: the field exists on model.Word (§3 glossary) but
// no detector in this codebase sets it yet, so this filter is presently a
// no-op kept for when one does.
func segmentWords(seg *model.PageSegment) []*model.Word {
	var out []*model.Word
	for _, el := range seg.Elements {
		w, ok := el.(*model.Word)
		if !ok {
			continue
		}
		if w.IsPartOfStackedMathSymbol != nil {
			continue
		}
		out = append(out, w)
	}
	return out
}

type clusterKey struct {
	rot model.Rotation
	y   float64
}

func clusterWords(words []*model.Word) (map[clusterKey][]*model.Word, []clusterKey) {
	clusters := map[clusterKey][]*model.Word{}
	var order []clusterKey
	for _, w := range words {
		key := clusterKey{rot: w.Pos.Rotation, y: geom.Round(w.Pos.RotLower(), 1)}
		if _, ok := clusters[key]; !ok {
			order = append(order, key)
		}
		clusters[key] = append(clusters[key], w)
	}
	return clusters, order
}

// buildLine builds a TextLine from one cluster of words: words in
// rot-left-x order, font name/size argmax over the cluster's glyphs (not
// its words, since a word's own font can be the argmax of a longer
// fragment), and baseline as the most-frequent glyph baseline.
func buildLine(words []*model.Word) *model.TextLine {
	sorted := append([]*model.Word{}, words...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Pos.RotLeft() < sorted[j].Pos.RotLeft()
	})

	box := sorted[0].Pos.Rect
	for _, w := range sorted[1:] {
		box = geom.Union(box, w.Pos.Rect)
	}

	fontNames := stats.StringCounter{}
	fontSizes := stats.FloatCounter{}
	baselines := stats.FloatCounter{}
	var maxFontSize float64
	texts := make([]string, len(sorted))

	for i, w := range sorted {
		texts[i] = w.Text
		for _, c := range w.Characters {
			fontNames.Add(c.FontName)
			fontSizes.Add(c.FontSize)
			baselines.Add(c.BaselineY)
			if c.FontSize > maxFontSize {
				maxFontSize = c.FontSize
			}
		}
	}

	fontName, _ := fontNames.Argmax()
	fontSize, _ := fontSizes.Argmax()
	baseline, _ := baselines.Argmax()

	first := sorted[0]
	return &model.TextLine{
		Pos: model.Position{
			PageNum:     first.Pos.PageNum,
			Rect:        box,
			Rotation:    first.Pos.Rotation,
			WritingMode: first.Pos.WritingMode,
		},
		BaselineY:   baseline,
		Text:        strings.Join(texts, " "),
		Words:       sorted,
		FontName:    fontName,
		FontSize:    fontSize,
		MaxFontSize: maxFontSize,
		// BaseBBox starts as the full line box; subsuper.Detect narrows it to
		// the characters it leaves unflagged when it runs (§4.5). Lines never
		// reached by subsuper.Detect (detection disabled, or every character
		// flagged) keep this instead of a zero Rect.
		BaseBBox: box,
	}
}

// sortLines orders lines top-to-bottom in reading direction: ascending
// rot-lower-y for rotations 0 and 1, descending for 2 and 3.
func sortLines(lines []*model.TextLine) {
	sort.SliceStable(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.Pos.Rotation == model.Rotation0 || a.Pos.Rotation == model.Rotation1 {
			return a.Pos.RotLower() < b.Pos.RotLower()
		}
		return a.Pos.RotLower() > b.Pos.RotLower()
	})
}

// mergeRounds repeats merge passes until one makes no further change.
func mergeRounds(lines []*model.TextLine, doc *model.Document) []*model.TextLine {
	for {
		merged, changed := mergePass(lines, doc)
		lines = merged
		if !changed {
			return lines
		}
	}
}

// mergePass implements one sweep of §4.8's merge rule: for each interior
// line (one with both a predecessor and a successor), merge it into its
// predecessor when the predecessor's y-overlap with it beats its
// successor's and clears the predecessor side's dynamic threshold.
func mergePass(lines []*model.TextLine, doc *model.Document) ([]*model.TextLine, bool) {
	if len(lines) < 2 {
		return lines, false
	}

	out := []*model.TextLine{lines[0]}
	changed := false

	for i := 1; i < len(lines); i++ {
		prev := out[len(out)-1]
		curr := lines[i]

		if i+1 >= len(lines) {
			out = append(out, curr)
			continue
		}
		next := lines[i+1]

		if shouldMergeIntoPrev(prev, curr, next, doc) {
			mergeInto(prev, curr)
			changed = true
			continue
		}
		out = append(out, curr)
	}
	return out, changed
}

func shouldMergeIntoPrev(prev, curr, next *model.TextLine, doc *model.Document) bool {
	prevXGap := curr.Pos.RotLeft() - prev.Pos.RotRight()
	prevYOverlap := geom.YOverlapRatio(prev.Pos.Rect, curr.Pos.Rect)
	nextYOverlap := geom.YOverlapRatio(curr.Pos.Rect, next.Pos.Rect)

	prevThreshold := mergeThreshold(prevXGap, doc)
	return prevYOverlap > nextYOverlap && prevYOverlap >= prevThreshold
}

func mergeThreshold(xGap float64, doc *model.Document) float64 {
	if xGap < 3*doc.AvgCharWidth {
		return 0.4
	}
	return 0.8
}

// mergeInto unions curr's words into prev and recomputes prev's attributes
// in place, so any already-taken reference to prev observes the merge.
func mergeInto(prev, curr *model.TextLine) {
	words := append(append([]*model.Word{}, prev.Words...), curr.Words...)
	*prev = *buildLine(words)
}

// computeTrimBox replaces the segment bounding box's right edge with the
// most-frequent rounded line right-x, if that value covers at least
// MinPercLinesSameRightX of the segment's lines (§4.8, glossary "Segment
// trim box").
func computeTrimBox(seg *model.PageSegment, cfg *config.Config) geom.Rect {
	box := seg.Pos.Rect
	if len(seg.Lines) == 0 {
		return box
	}

	counter := stats.FloatCounter{}
	for _, l := range seg.Lines {
		counter.Add(geom.Round(l.Pos.RotRight(), cfg.TrimBoxCoordsPrec))
	}
	rightX, ok := counter.Argmax()
	if !ok {
		return box
	}

	count := 0
	for _, l := range seg.Lines {
		if geom.Equal(geom.Round(l.Pos.RotRight(), cfg.TrimBoxCoordsPrec), rightX) {
			count++
		}
	}
	if float64(count)/float64(len(seg.Lines)) >= cfg.MinPercLinesSameRightX {
		box.Right = rightX
	}
	return box
}

// buildIndentationHierarchy walks every line of `page` in segment/reading
// order through a stack, deriving prev/next-sibling and parent links
// (§4.8). The stack resets whenever the vertical distance to the previous
// line exceeds max(10, 3*doc.MostFrequentLineDistance).
func buildIndentationHierarchy(page *model.Page, doc *model.Document, cfg *config.Config) {
	var stack []*model.TextLine
	var prevLine *model.TextLine
	resetThreshold := math.Max(10, 3*doc.MostFrequentLineDistance)

	for _, seg := range page.Segments {
		for _, line := range seg.Lines {
			if prevLine != nil {
				dist := line.Pos.RotUpper() - prevLine.Pos.RotLower()
				if dist < 0 {
					dist = -dist
				}
				if dist > resetThreshold {
					stack = nil
				}
			}

			for len(stack) > 0 && stack[len(stack)-1].Pos.RotLeft()-line.Pos.RotLeft() > doc.AvgCharWidth {
				stack = stack[:len(stack)-1]
			}

			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if math.Abs(top.Pos.RotLeft()-line.Pos.RotLeft()) <= cfg.CoordsEqualTolerance {
					top.NextSibling = line
					line.PrevSibling = top
					stack[len(stack)-1] = line
				} else {
					line.Parent = top
					stack = append(stack, line)
				}
			} else {
				stack = append(stack, line)
			}

			prevLine = line
		}
	}
}
