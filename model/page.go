/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import "github.com/ad-freiburg/pdftotextplus-go/geom"

// Page owns everything extracted from one PDF page (§3).
type Page struct {
	PageNum int
	ClipBox geom.Rect
	Width   float64
	Height  float64

	Characters []*Character
	Figures    []*Figure
	Shapes     []*Shape
	Graphics   []*Graphic
	Words      []*Word
	Segments   []*PageSegment

	// Blocks is a secondary view populated by TextBlockDetector and then
	// re-ordered in place by ReadingOrderDetector (§3 invariants).
	Blocks []*TextBlock
}

// NewPage returns a Page with the given number and clip box.
func NewPage(pageNum int, clipBox geom.Rect) *Page {
	return &Page{
		PageNum: pageNum,
		ClipBox: clipBox,
		Width:   clipBox.Width(),
		Height:  clipBox.Height(),
	}
}

// Elements returns the page's words, figures, shapes and graphics as a
// single polymorphic slice, the input to PageSegmenter (§4.7).
func (p *Page) Elements() []Element {
	elems := make([]Element, 0, len(p.Words)+len(p.Figures)+len(p.Shapes)+len(p.Graphics))
	for _, w := range p.Words {
		elems = append(elems, w)
	}
	for _, f := range p.Figures {
		elems = append(elems, f)
	}
	for _, s := range p.Shapes {
		elems = append(elems, s)
	}
	for _, g := range p.Graphics {
		elems = append(elems, g)
	}
	return elems
}

// BlocksAndNonTextElements returns the page's blocks, figures and shapes,
// the input to ReadingOrderDetector (§4.10).
func (p *Page) BlocksAndNonTextElements() []Element {
	elems := make([]Element, 0, len(p.Blocks)+len(p.Figures)+len(p.Shapes))
	for _, b := range p.Blocks {
		elems = append(elems, b)
	}
	for _, f := range p.Figures {
		elems = append(elems, f)
	}
	for _, s := range p.Shapes {
		elems = append(elems, s)
	}
	return elems
}
