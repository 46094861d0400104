/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import "github.com/ad-freiburg/pdftotextplus-go/geom"

// FontInfo describes a font as seen by the layout-analysis pipeline (§3).
// One FontInfo is created per unique font and shared (by pointer, not by
// copy) by every Character that uses it; its lifetime is the Document's.
type FontInfo struct {
	FontName    string
	Ascent      float64
	Descent     float64
	Weight      float64 // numeric weight, e.g. 400 regular, 700 bold.
	IsItalic    bool
	IsSerif     bool
	IsType3     bool
	IsSymbolic  bool
	FontMatrix  geom.Matrix
	GlyphBoxes  map[string]geom.Rect // glyph name -> tight bounding box, in glyph space.
}

// IsBold reports whether the font should be treated as bold for §4.10's
// is_bold feature and the §4.9 font-weight block-break rule.
func (f *FontInfo) IsBold() bool {
	return f != nil && f.Weight > 500
}

// GlyphBox looks up the tight bounding box for `glyphName`, if known.
func (f *FontInfo) GlyphBox(glyphName string) (geom.Rect, bool) {
	if f == nil || f.GlyphBoxes == nil {
		return geom.Rect{}, false
	}
	r, ok := f.GlyphBoxes[glyphName]
	return r, ok
}
