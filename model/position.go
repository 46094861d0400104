/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import "github.com/ad-freiburg/pdftotextplus-go/geom"

// WritingMode distinguishes horizontal from vertical text runs (§3).
type WritingMode int

const (
	WritingModeHorizontal WritingMode = 0
	WritingModeVertical   WritingMode = 1
)

// Rotation is one of the four quadrant rotation classes derived from a
// character's font/CTM transform (§4.1 responsibility 3).
type Rotation int

const (
	Rotation0 Rotation = 0
	Rotation1 Rotation = 1
	Rotation2 Rotation = 2
	Rotation3 Rotation = 3
)

// Add returns (r+delta) mod 4, used to bump rotation by 1 in vertical
// writing mode (§4.1 responsibility 3).
func (r Rotation) Add(delta int) Rotation {
	return Rotation(((int(r)+delta)%4 + 4) % 4)
}

// Position is the geometric placement shared by every positioned entity
// (§3): a page-local bounding box, the rotation/writing-mode pair that
// defines reading direction, and the rotation-aware "rot_*" coordinates
// used by every downstream stage instead of raw Left/Upper/Right/Lower.
type Position struct {
	PageNum     int
	geom.Rect               // Left, Upper, Right, Lower in page (unrotated) coordinates.
	Rotation    Rotation
	WritingMode WritingMode
}

// RotLeft is the coordinate of the element's logical left edge along the
// reading direction implied by Rotation/WritingMode.
func (p Position) RotLeft() float64 {
	switch p.Rotation {
	case Rotation0:
		return p.Left
	case Rotation1:
		return p.Upper
	case Rotation2:
		return -p.Right
	default: // Rotation3
		return -p.Lower
	}
}

// RotUpper is the coordinate of the element's logical top edge.
func (p Position) RotUpper() float64 {
	switch p.Rotation {
	case Rotation0:
		return p.Upper
	case Rotation1:
		return -p.Right
	case Rotation2:
		return -p.Lower
	default: // Rotation3
		return p.Left
	}
}

// RotRight is the coordinate of the element's logical right edge.
func (p Position) RotRight() float64 {
	switch p.Rotation {
	case Rotation0:
		return p.Right
	case Rotation1:
		return p.Lower
	case Rotation2:
		return -p.Left
	default: // Rotation3
		return -p.Upper
	}
}

// RotLower is the coordinate of the element's logical bottom edge.
func (p Position) RotLower() float64 {
	switch p.Rotation {
	case Rotation0:
		return p.Lower
	case Rotation1:
		return -p.Left
	case Rotation2:
		return -p.Upper
	default: // Rotation3
		return p.Right
	}
}

// Bounded is implemented by every entity that carries a Position: the
// polymorphic element used by page segmentation and reading order (§9
// Design Notes: "Polymorphic element lists").
type Bounded interface {
	Position() Position
}
