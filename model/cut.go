/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

// CutDirection is the axis a Cut splits along (§3, §4.6).
type CutDirection int

const (
	CutX CutDirection = iota
	CutY
)

func (d CutDirection) String() string {
	if d == CutX {
		return "X"
	}
	return "Y"
}

// Cut is a candidate (or chosen) gap between two sorted elements found by
// the shared XYCutEngine (§3, §4.6).
type Cut struct {
	Direction CutDirection
	ID        int
	PageNum   int

	X1, Y1, X2, Y2 float64 // bounding envelope of the cut.
	GapWidth       float64
	GapHeight      float64

	// PosInElements is the index of the first element on the "after" side
	// of the cut, within the sorted element slice it was found in.
	PosInElements int

	ElementBefore Element
	ElementAfter  Element
	// OverlappingElements are elements wholly contained in the cut's
	// vertical (for an x-cut) or horizontal (for a y-cut) extent that
	// straddle it (§4.6).
	OverlappingElements []Element

	IsChosen bool
}

// Span returns the cut's extent along its own direction's bounding envelope
// (X2-X1 for an x-cut is always 0 since a vertical cut line has zero width;
// this returns the perpendicular extent, i.e. Y2-Y1 for an x-cut).
func (c *Cut) Span() float64 {
	if c.Direction == CutX {
		return c.Y2 - c.Y1
	}
	return c.X2 - c.X1
}
