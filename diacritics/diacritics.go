/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.2's DiacriticMerger: scans each page's (and each figure's)
 * characters in extraction order, finds spacing/combining diacritic marks,
 * and merges each onto whichever neighbor has the larger x-overlap ratio.
 */

package diacritics

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/unicode/rangetable"

	"github.com/ad-freiburg/pdftotextplus-go/common"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// standaloneToCombining maps the standalone-form code points a font may use
// to render a diacritic glyph (e.g. the apostrophe used as an acute accent)
// onto the Unicode combining mark they represent, per §4.2's static table.
var standaloneToCombining = map[rune]rune{
	'\'':   0x0301, // quotesingle as acute accent
	'’':    0x0301, // quoteright
	'`':    0x0300, // grave
	'‘':    0x0300, // quoteleft
	'^':    0x0302, // circumflex
	'~':    0x0303, // tilde
	'¨':    0x0308, // dieresis
	'´':    0x0301, // acute
	'°':    0x030A, // degree / ring above
	'˚':    0x030A, // ring
	'¸':    0x0327, // cedilla
	'¯':    0x0304, // macron
	'˘':    0x0306, // breve
	'˙':    0x0307, // dotaccent
	'˛':    0x0328, // ogonek
	'ˇ':    0x030C, // caron
	'˝':    0x030B, // double acute (hungarumlaut)
}

// diacriticMarkSet is the union of the Spacing Modifier Letters
// (U+02B0-U+02FF) and Combining Diacritical Marks (U+0300-U+036F) blocks
// §4.2 names, built with golang.org/x/text/unicode/rangetable and tested
// through golang.org/x/text/runes' Set wrapper instead of two hand-rolled
// comparisons.
var diacriticMarkSet = runes.In(rangetable.New(append(
	runeRange(0x02B0, 0x02FF),
	runeRange(0x0300, 0x036F)...,
)...))

func runeRange(lo, hi rune) []rune {
	rs := make([]rune, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		rs = append(rs, r)
	}
	return rs
}

// Merge runs the diacritic merger over every page of `doc` (§4.2).
func Merge(doc *model.Document) {
	for _, page := range doc.Pages {
		mergeSequence(page.Characters)
		for _, fig := range page.Figures {
			mergeSequence(fig.Characters)
		}
	}
}

func mergeSequence(chars []*model.Character) {
	for i, c := range chars {
		markRune, ok := effectiveMarkRune(c)
		if !ok {
			continue
		}
		var prev, next *model.Character
		if i > 0 {
			prev = chars[i-1]
		}
		if i < len(chars)-1 {
			next = chars[i+1]
		}
		prevRatio := overlapRatio(c, prev)
		nextRatio := overlapRatio(c, next)

		var base *model.Character
		switch {
		case prevRatio > nextRatio && prevRatio > 0:
			base = prev
		case nextRatio > prevRatio && nextRatio > 0:
			base = next
		default:
			common.Log.Debug("diacritic mark %q at rank %d left orphan (no dominant neighbor)", c.Text, c.Rank)
			continue
		}
		mergeOnto(base, c, markRune)
	}
}

// effectiveMarkRune reports whether `c` is a diacritic mark candidate: it
// carries exactly one Unicode code point, and that code point (after the
// standalone-form substitution) falls in one of §4.2's two mark blocks.
func effectiveMarkRune(c *model.Character) (rune, bool) {
	if len(c.Unicodes) != 1 {
		return 0, false
	}
	r := c.Unicodes[0]
	if mapped, ok := standaloneToCombining[r]; ok {
		r = mapped
	}
	if diacriticMarkSet.Contains(r) {
		return r, true
	}
	return 0, false
}

// overlapRatio returns the x-overlap ratio (§4.2: "max of the two ratios",
// geom.XOverlapRatio) between `c` and `other`, or 0 if `other` is nil.
func overlapRatio(c, other *model.Character) float64 {
	if other == nil {
		return 0
	}
	return geom.XOverlapRatio(c.Pos.Rect, other.Pos.Rect)
}

// mergeOnto sets the weak base<->mark references, composes the base's
// merged text via NFC, and enlarges the base's bounding box. The base's own
// Text is left untouched per §4.2.
func mergeOnto(base, mark *model.Character, markRune rune) {
	mark.IsDiacriticMarkOfBase = base
	base.IsBaseOfDiacriticMark = mark

	composed := make([]rune, 0, len(base.Unicodes)+1)
	composed = append(composed, base.Unicodes...)
	composed = append(composed, markRune)
	base.TextWithDiacriticMark = norm.NFC.String(string(composed))

	base.Pos.Rect = geom.Union(base.Pos.Rect, mark.Pos.Rect)
}

// IsDiacriticMarkRune reports whether `r`, after the standalone-form
// substitution, falls in §4.2's mark blocks or is any other nonspacing mark
// (category Mn). Merge only treats the former as marks.
func IsDiacriticMarkRune(r rune) bool {
	if mapped, ok := standaloneToCombining[r]; ok {
		r = mapped
	}
	return diacriticMarkSet.Contains(r) || unicode.Is(unicode.Mn, r)
}
