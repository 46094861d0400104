/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import "github.com/ad-freiburg/pdftotextplus-go/geom"

// PageSegment is a contiguous spatial region produced by the XY-cut based
// PageSegmenter (§4.7). Elements is the segment's words/figures/shapes/
// graphics in the order the XY-cut engine returned them (sorted by left-x
// or upper-y, whichever cut formed the group last; page order if no cut was
// chosen); Lines is filled in once TextLineDetector runs (§4.8).
type PageSegment struct {
	ID      int
	Pos     Position
	PageNum int

	// TrimBox is Pos's bounding box with its right edge optionally pulled in
	// to the most-frequent line right-x (§4.8, glossary "Segment trim box").
	TrimBox geom.Rect

	Elements []Element
	Lines    []*TextLine
}

func (s *PageSegment) Position() Position { return s.Pos }
