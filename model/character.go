/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import (
	"image/color"
	"unicode"
)

// Character is one glyph-draw event, enriched in place by the pipeline
// (§3). Cross-references to other characters (diacritic base/mark) are
// plain pointers rather than arena indices: Go's garbage collector resolves
// the apparent base<->mark cycle the C++ original needs weak references
// for, so the extra indirection layer described in §9's Design Notes buys
// nothing here.
type Character struct {
	Pos Position

	BaselineY float64 // the y coordinate of the character's baseline.
	Text      string  // decoded UTF-8 text (usually one rune, occasionally a ligature).
	Unicodes  []rune
	GlyphName string
	FontName  string
	FontSize  float64
	Font      *FontInfo
	Color     color.Color
	Opacity   float64
	Rank      int // extraction-order index, page-local.

	IsSubscript   bool
	IsSuperscript bool

	// IsDiacriticMarkOfBase is set on a combining mark once §4.2 merges it
	// onto a base character; nil otherwise.
	IsDiacriticMarkOfBase *Character
	// IsBaseOfDiacriticMark is set on a base character once a mark has been
	// merged onto it; nil otherwise.
	IsBaseOfDiacriticMark *Character
	// TextWithDiacriticMark is the NFC-composed text of a base character
	// plus its merged mark (e.g. base "a" plus a combining acute). Only set
	// on base characters that own a merged mark.
	TextWithDiacriticMark string
}

func (c *Character) Position() Position { return c.Pos }

// EffectiveText returns the text word formation should use for `c`: the
// diacritic-composed text if `c` is a base character with a merged mark,
// otherwise its own text (§4.4).
func (c *Character) EffectiveText() string {
	if c.IsBaseOfDiacriticMark != nil && c.TextWithDiacriticMark != "" {
		return c.TextWithDiacriticMark
	}
	return c.Text
}

// nbsp is U+00A0 NO-BREAK SPACE, which unicode.IsSpace does treat as space
// but which §4.1 responsibility 5 calls out explicitly.
const nbsp = rune(0x00A0)

// IsWhitespaceOnly reports whether `text` is only whitespace, including NBSP.
func IsWhitespaceOnly(text string) bool {
	if text == "" {
		return true
	}
	for _, r := range text {
		if !unicode.IsSpace(r) && r != nbsp {
			return false
		}
	}
	return true
}
