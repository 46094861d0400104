/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package xycut

import (
	"math"

	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// sweep implements §4.6's sweep: tracks the running rightmost (and
// second-rightmost) trailing edge over `sorted`, emitting a Cut candidate
// wherever the gap to the next element's leading edge reaches `minGap` and
// at most `maxOverlap` already-seen elements still reach past the gap.
func sweep(sorted []model.Element, dir model.CutDirection, minGap float64, maxOverlap int) []*model.Cut {
	n := len(sorted)
	if n == 0 {
		return nil
	}

	lo, hi := axisFuncs(dir)
	crossLo, crossHi := crossExtent(sorted, dir)

	var candidates []*model.Cut
	id := 0

	rightmost := hi(sorted[0].Position())
	rightmostIdx := 0
	secondRightmost := math.Inf(-1)
	secondRightmostIdx := -1

	for i := 1; i < n; i++ {
		pos := sorted[i].Position()
		leading := lo(pos)
		gap := leading - rightmost

		if gap >= minGap {
			overlap := countOverlapping(sorted[:i], leading, hi)
			switch {
			case overlap <= maxOverlap:
				candidates = append(candidates, newCut(dir, &id, sorted, i, rightmostIdx, rightmost, crossLo, crossHi))
			case secondRightmostIdx >= 0 && leading-secondRightmost >= minGap:
				// Never reached: gap is measured from the rightmost trailing
				// edge, so no earlier element reaches past `leading` and
				// overlap is always 0. No candidate is emitted against the
				// second-rightmost edge.
				candidates = append(candidates, newCut(dir, &id, sorted, i, secondRightmostIdx, secondRightmost, crossLo, crossHi))
			}
		}

		trailing := hi(pos)
		if trailing > rightmost {
			secondRightmost, secondRightmostIdx = rightmost, rightmostIdx
			rightmost, rightmostIdx = trailing, i
		} else if trailing > secondRightmost {
			secondRightmost, secondRightmostIdx = trailing, i
		}
	}
	return candidates
}

// axisFuncs returns the leading-edge and trailing-edge accessors for the
// sweep direction: left/right for an x-cut, upper/lower for a y-cut.
func axisFuncs(dir model.CutDirection) (lo, hi func(model.Position) float64) {
	if dir == model.CutX {
		return func(p model.Position) float64 { return p.Left },
			func(p model.Position) float64 { return p.Right }
	}
	return func(p model.Position) float64 { return p.Upper },
		func(p model.Position) float64 { return p.Lower }
}

// crossExtent returns the min/max of the perpendicular axis over the whole
// element set, used as every candidate's bounding envelope in that axis.
func crossExtent(sorted []model.Element, dir model.CutDirection) (float64, float64) {
	first := sorted[0].Position()
	var lo, hi float64
	if dir == model.CutX {
		lo, hi = first.Upper, first.Lower
	} else {
		lo, hi = first.Left, first.Right
	}
	for _, el := range sorted[1:] {
		p := el.Position()
		var plo, phi float64
		if dir == model.CutX {
			plo, phi = p.Upper, p.Lower
		} else {
			plo, phi = p.Left, p.Right
		}
		if plo < lo {
			lo = plo
		}
		if phi > hi {
			hi = phi
		}
	}
	return lo, hi
}

// countOverlapping counts how many of `before` still reach past
// `boundary` on their trailing edge, i.e. straddle the candidate gap.
func countOverlapping(before []model.Element, boundary float64, hi func(model.Position) float64) int {
	count := 0
	for _, el := range before {
		if hi(el.Position()) > boundary {
			count++
		}
	}
	return count
}

// newCut builds the Cut candidate at index `i`, with `beforeIdx`/`usedEdge`
// identifying the trailing edge (rightmost or, on fallback, second-rightmost)
// the gap was measured from.
func newCut(dir model.CutDirection, id *int, sorted []model.Element, i, beforeIdx int, usedEdge, crossLo, crossHi float64, ) *model.Cut {
	pos := sorted[i].Position()
	lo, _ := axisFuncs(dir)
	leading := lo(pos)
	mid := (usedEdge + leading) / 2

	c := &model.Cut{
		Direction:     dir,
		ID:            *id,
		PageNum:       pos.PageNum,
		PosInElements: i,
		ElementBefore: sorted[beforeIdx],
		ElementAfter:  sorted[i],
	}
	*id++

	if dir == model.CutX {
		c.X1, c.X2 = mid, mid
		c.Y1, c.Y2 = crossLo, crossHi
		c.GapWidth = leading - usedEdge
		c.GapHeight = c.Y2 - c.Y1
	} else {
		c.Y1, c.Y2 = mid, mid
		c.X1, c.X2 = crossLo, crossHi
		c.GapHeight = leading - usedEdge
		c.GapWidth = c.X2 - c.X1
	}

	c.OverlappingElements = overlappingElements(sorted[:i], leading, dir)
	return c
}

// overlappingElements returns the prior elements (in sweep order) whose
// trailing edge still reaches past the candidate's leading boundary.
func overlappingElements(before []model.Element, boundary float64, dir model.CutDirection) []model.Element {
	_, hi := axisFuncs(dir)
	var out []model.Element
	for _, el := range before {
		if hi(el.Position()) > boundary {
			out = append(out, el)
		}
	}
	return out
}
