/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package xycut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func word(left, upper, right, lower float64) *model.Word {
	return &model.Word{Pos: model.Position{Rect: geom.Rect{Left: left, Upper: upper, Right: right, Lower: lower}}}
}

// acceptAll chooses every candidate, used where a test only cares about
// candidate discovery rather than veto policy.
func acceptAll(_ []model.Element, candidates []*model.Cut, _ bool) {
	for _, c := range candidates {
		c.IsChosen = true
	}
}

func rejectAll(_ []model.Element, candidates []*model.Cut, _ bool) {
	for _, c := range candidates {
		c.IsChosen = false
	}
}

func elementsOf(words ...*model.Word) []model.Element {
	out := make([]model.Element, len(words))
	for i, w := range words {
		out[i] = w
	}
	return out
}

func TestXYCutSplitsOnWideHorizontalGap(t *testing.T) {
	// Two columns, far apart horizontally; no vertical gap large enough to
	// matter at this minYGap.
	left := word(0, 0, 10, 10)
	right := word(100, 0, 110, 10)

	groups, _ := XYCut(elementsOf(left, right), Params{
		MinXGap: 5, MinYGap: 1000, MaxOverlappingElements: 0,
		ChooseXCuts: acceptAll, ChooseYCuts: acceptAll,
	})

	require.Len(t, groups, 2)
	assert.Same(t, left, groups[0][0])
	assert.Same(t, right, groups[1][0])
}

func TestXYCutFallsBackToYCutWhenNoXGap(t *testing.T) {
	// Elements overlap horizontally (no x-cut possible) but stack vertically
	// with a clear gap.
	top := word(0, 0, 50, 10)
	bottom := word(0, 100, 50, 110)

	groups, _ := XYCut(elementsOf(top, bottom), Params{
		MinXGap: 1000, MinYGap: 5, MaxOverlappingElements: 0,
		ChooseXCuts: acceptAll, ChooseYCuts: acceptAll,
	})

	require.Len(t, groups, 2)
	assert.Same(t, top, groups[0][0])
	assert.Same(t, bottom, groups[1][0])
}

func TestXYCutReturnsSingleGroupWhenNoCutChosen(t *testing.T) {
	left := word(0, 0, 10, 10)
	right := word(100, 0, 110, 10)

	groups, candidates := XYCut(elementsOf(left, right), Params{
		MinXGap: 5, MinYGap: 5, MaxOverlappingElements: 0,
		ChooseXCuts: rejectAll, ChooseYCuts: rejectAll,
	})

	require.Len(t, groups, 1)
	assert.Len(t, groups[0], 2)
	assert.NotEmpty(t, candidates)
}

func TestXYCutGapToleratesOverlappingElementWithinLimit(t *testing.T) {
	// A thin rule element covers most of the column gap; the cut candidate
	// is still found in the remaining gap between the rule's right edge (92)
	// and the right column (100), measured from the rightmost edge.
	leftCol := word(0, 0, 10, 10)
	straddler := word(8, 20, 92, 21) // spans across the gap, slightly overlapping leftCol's right edge
	rightCol := word(100, 0, 110, 10)

	groups, candidates := XYCut(elementsOf(leftCol, straddler, rightCol), Params{
		MinXGap: 5, MinYGap: 1000, MaxOverlappingElements: 1,
		ChooseXCuts: acceptAll, ChooseYCuts: acceptAll,
	})

	require.NotEmpty(t, candidates)
	require.Len(t, groups, 2)
}

func TestSweepRespectsMaxOverlappingElements(t *testing.T) {
	leftCol := word(0, 0, 10, 10)
	straddler := word(8, 20, 92, 21)
	rightCol := word(100, 0, 110, 10)

	sorted := sortedByLeft(elementsOf(leftCol, straddler, rightCol))
	candidates := sweep(sorted, model.CutX, 5, 0)

	for _, c := range candidates {
		assert.LessOrEqual(t, len(c.OverlappingElements), 0)
	}
}
