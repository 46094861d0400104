/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Shared recursive XY-cut engine (§4.6), used by both PageSegmenter (§4.7)
 * and ReadingOrderDetector (§4.10) with different cut-acceptance callbacks.
 *
 * The sweep's "blocked by thin elements, fall back to the second-rightmost
 * edge" rule (§4.6) is underspecified beyond its intent (tolerate a handful
 * of elements straddling a would-be gap, e.g. a page-number rule crossing a
 * column boundary); this implementation tracks the running rightmost and
 * second-rightmost right edge, but only emits candidates measured from the
 * rightmost one, so a gap closed by a straddling element yields no
 * candidate. "Overlapping elements" are prior elements (in sweep order)
 * whose right edge reaches past the next element's left edge; for a
 * candidate measured from the rightmost edge there are none. See DESIGN.md.
 */

package xycut

import (
	"sort"

	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// Chooser decides which of `candidates` to accept, setting IsChosen on each.
// `sorted` is the element slice the candidates were found in (same order
// used for `PosInElements`). `silent` tells the callback to skip logging,
// since speculative calls (y-cut partner search, §4.7) are cheap and noisy.
type Chooser func(sorted []model.Element, candidates []*model.Cut, silent bool)

// Params bundles the engine's thresholds, held constant across one
// recursive XYCut call.
type Params struct {
	MinXGap               float64
	MinYGap               float64
	MaxOverlappingElements int
	ChooseXCuts           Chooser
	ChooseYCuts           Chooser
	Silent                bool
}

// XYCut runs the recursive algorithm of §4.6 starting with an x-cut
// attempt, and returns the terminal element groups plus every cut
// candidate considered (chosen or not), for diagnostics.
func XYCut(elements []model.Element, p Params) ([][]model.Element, []*model.Cut) {
	return cutXFirst(elements, p)
}

func cutXFirst(elements []model.Element, p Params) ([][]model.Element, []*model.Cut) {
	sorted, candidates := xCut(elements, p.MinXGap, p.MaxOverlappingElements)
	p.ChooseXCuts(sorted, candidates, p.Silent)
	groups := partition(sorted, candidates)

	if len(groups) > 1 {
		return recurseInto(groups, p, cutYFirst, candidates)
	}

	ySorted, yCandidates := yCut(elements, p.MinYGap, p.MaxOverlappingElements)
	p.ChooseYCuts(ySorted, yCandidates, p.Silent)
	yGroups := partition(ySorted, yCandidates)
	all := append(append([]*model.Cut{}, candidates...), yCandidates...)

	if len(yGroups) > 1 {
		return recurseInto(yGroups, p, cutXFirst, all)
	}
	return [][]model.Element{elements}, all
}

func cutYFirst(elements []model.Element, p Params) ([][]model.Element, []*model.Cut) {
	sorted, candidates := yCut(elements, p.MinYGap, p.MaxOverlappingElements)
	p.ChooseYCuts(sorted, candidates, p.Silent)
	groups := partition(sorted, candidates)

	if len(groups) > 1 {
		return recurseInto(groups, p, cutXFirst, candidates)
	}

	xSorted, xCandidates := xCut(elements, p.MinXGap, p.MaxOverlappingElements)
	p.ChooseXCuts(xSorted, xCandidates, p.Silent)
	xGroups := partition(xSorted, xCandidates)
	all := append(append([]*model.Cut{}, candidates...), xCandidates...)

	if len(xGroups) > 1 {
		return recurseInto(xGroups, p, cutYFirst, all)
	}
	return [][]model.Element{elements}, all
}

func recurseInto(groups [][]model.Element, p Params, next func([]model.Element, Params) ([][]model.Element, []*model.Cut), seed []*model.Cut) ([][]model.Element, []*model.Cut) {
	var outGroups [][]model.Element
	outCandidates := append([]*model.Cut{}, seed...)
	for _, g := range groups {
		subGroups, subCandidates := next(g, p)
		outGroups = append(outGroups, subGroups...)
		outCandidates = append(outCandidates, subCandidates...)
	}
	return outGroups, outCandidates
}

// sortedByLeft / sortedByUpper return a stable copy of `elements` sorted by
// left-x (x-cut) or upper-y (y-cut), per §4.6.
func sortedByLeft(elements []model.Element) []model.Element {
	out := append([]model.Element{}, elements...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position().Left < out[j].Position().Left })
	return out
}

func sortedByUpper(elements []model.Element) []model.Element {
	out := append([]model.Element{}, elements...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position().Upper < out[j].Position().Upper })
	return out
}

// xCut sorts `elements` by left-x and sweeps for candidate vertical cuts.
func xCut(elements []model.Element, minGap float64, maxOverlap int) ([]model.Element, []*model.Cut) {
	sorted := sortedByLeft(elements)
	return sorted, sweep(sorted, model.CutX, minGap, maxOverlap)
}

// yCut sorts `elements` by upper-y and sweeps for candidate horizontal cuts.
func yCut(elements []model.Element, minGap float64, maxOverlap int) ([]model.Element, []*model.Cut) {
	sorted := sortedByUpper(elements)
	return sorted, sweep(sorted, model.CutY, minGap, maxOverlap)
}

// TrialXCut runs a single, non-recursive x-cut sweep over `elements` and
// reports whether `chooseXCuts` accepted at least one of the resulting
// candidates. Used by a y-cut partner-pair search (§4.7) that needs to test
// whether a horizontal strip is itself splittable into columns, without
// committing to the split.
func TrialXCut(elements []model.Element, minXGap float64, maxOverlap int, chooseXCuts Chooser) bool {
	sorted, candidates := xCut(elements, minXGap, maxOverlap)
	chooseXCuts(sorted, candidates, true)
	for _, c := range candidates {
		if c.IsChosen {
			return true
		}
	}
	return false
}

// SingleCut runs one non-recursive cut pass along `dir` and returns the
// resulting groups. Unlike XYCut, it does not alternate axes or recurse:
// ReadingOrderDetector's primary x-cut and primary y-cut passes (§4.10) are
// each a single level, applied once per page (x) and once per resulting
// column (y), before the recursive non-primary stage takes over.
func SingleCut(elements []model.Element, dir model.CutDirection, minGap float64, maxOverlap int, choose Chooser) [][]model.Element {
	var sorted []model.Element
	var candidates []*model.Cut
	if dir == model.CutX {
		sorted, candidates = xCut(elements, minGap, maxOverlap)
	} else {
		sorted, candidates = yCut(elements, minGap, maxOverlap)
	}
	choose(sorted, candidates, false)
	return partition(sorted, candidates)
}

// partition splits `sorted` at the PosInElements of every chosen cut,
// returning the resulting contiguous groups.
func partition(sorted []model.Element, candidates []*model.Cut) [][]model.Element {
	var bounds []int
	for _, c := range candidates {
		if c.IsChosen {
			bounds = append(bounds, c.PosInElements)
		}
	}
	sort.Ints(bounds)

	var groups [][]model.Element
	start := 0
	for _, b := range bounds {
		if b <= start || b > len(sorted) {
			continue
		}
		groups = append(groups, sorted[start:b])
		start = b
	}
	groups = append(groups, sorted[start:])
	return groups
}
