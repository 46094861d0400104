/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.7's PageSegmenter: runs the shared XY-cut engine over each
 * page's words/figures/shapes/graphics, with the veto-rule chain and
 * partner-pair search described there. `original_source/` was consulted for
 * the exact veto ordering.
 */

package segment

import (
	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
	"github.com/ad-freiburg/pdftotextplus-go/xycut"
)

// maxOverlappingElements is §4.7's fixed `max_overlapping_elements` for page
// segmentation.
const maxOverlappingElements = 1

// minYGap is §4.7's fixed `min_y_gap`.
const minYGap = 2.0

// Detect runs PageSegmenter over every page of `doc`.
func Detect(doc *model.Document, cfg *config.Config) {
	for _, page := range doc.Pages {
		page.Segments = buildSegments(doc, page, cfg)
	}
}

func buildSegments(doc *model.Document, page *model.Page, cfg *config.Config) []*model.PageSegment {
	elements := page.Elements()
	if len(elements) == 0 {
		return nil
	}

	minXGap := 2 * doc.MostFrequentWordDistance

	groups, _ := xycut.XYCut(elements, xycut.Params{
		MinXGap:                minXGap,
		MinYGap:                minYGap,
		MaxOverlappingElements: maxOverlappingElements,
		ChooseXCuts:            chooseXCuts(doc, cfg),
		ChooseYCuts:            chooseYCuts(doc, cfg, minXGap),
	})

	segments := make([]*model.PageSegment, 0, len(groups))
	for i, g := range groups {
		segments = append(segments, newSegment(i, page.PageNum, g))
	}
	return segments
}

func newSegment(id, pageNum int, elements []model.Element) *model.PageSegment {
	box := boundingBox(elements)
	return &model.PageSegment{
		ID:       id,
		PageNum:  pageNum,
		Pos:      model.Position{PageNum: pageNum, Rect: box},
		Elements: elements,
	}
}

func boundingBox(elements []model.Element) geom.Rect {
	if len(elements) == 0 {
		return geom.Rect{}
	}
	box := elements[0].Position().Rect
	for _, el := range elements[1:] {
		box = geom.Union(box, el.Position().Rect)
	}
	return box
}

// chooseXCuts returns the §4.7 veto-rule chain: iterate candidates
// left-to-right carrying `prevChosen`, rejecting on the first rule that
// fires and defaulting to accept.
func chooseXCuts(doc *model.Document, cfg *config.Config) xycut.Chooser {
	return func(sorted []model.Element, candidates []*model.Cut, silent bool) {
		var prevChosen *model.Cut
		for _, c := range candidates {
			if vetoXCut(c, sorted, doc, cfg, prevChosen) {
				c.IsChosen = false
				continue
			}
			c.IsChosen = true
			prevChosen = c
		}
	}
}

func vetoXCut(c *model.Cut, sorted []model.Element, doc *model.Document, cfg *config.Config, prevChosen *model.Cut) bool {
	if overlapsNearMargin(c, sorted, doc, cfg) {
		return true
	}
	if tooSmallGapBothDims(c, doc, cfg) {
		return true
	}
	if contiguousWords(c, sorted, cfg) {
		return true
	}
	if slimGroups(c, sorted, doc, cfg, prevChosen) {
		return true
	}
	return false
}

// overlapsNearMargin is rule 1: protects page headers/footers that span
// columns from being cut through.
func overlapsNearMargin(c *model.Cut, sorted []model.Element, doc *model.Document, cfg *config.Config) bool {
	if len(c.OverlappingElements) == 0 {
		return false
	}
	if len(sorted) < cfg.OverlappingMinNumElements {
		return false
	}
	margin := cfg.OverlappingElementsMarginFactor * doc.AvgCharHeight
	for _, el := range c.OverlappingElements {
		p := el.Position()
		topMargin := p.Upper - c.Y1
		bottomMargin := c.Y2 - p.Lower
		if topMargin < margin || bottomMargin < margin {
			return true
		}
	}
	return false
}

// tooSmallGapBothDims is rule 2.
func tooSmallGapBothDims(c *model.Cut, doc *model.Document, cfg *config.Config) bool {
	widthThreshold := cfg.MinGapWidthThresholdFactor * doc.AvgCharWidth
	heightThreshold := cfg.MinGapHeightThresholdFactor * doc.AvgCharHeight
	return c.GapWidth < widthThreshold && c.GapHeight < heightThreshold
}

// contiguousWords is rule 3: reject a cut that would split a word extracted
// right after `element_before` back onto the other side of the cut, found
// via an explicit adjacency scan over the right-hand elements in extraction
// rank order (Open Question: the rank lookup has no dedicated index in this
// codebase, so the scan is linear; see DESIGN.md).
func contiguousWords(c *model.Cut, sorted []model.Element, cfg *config.Config) bool {
	before, ok := c.ElementBefore.(model.Ranked)
	if !ok {
		return false
	}
	wantRank := before.ElementRank() + 1
	beforeBox := before.Position().Rect

	for _, el := range sorted[c.PosInElements:] {
		w, ok := el.(*model.Word)
		if !ok || w.Rank != wantRank {
			continue
		}
		if geom.YOverlapRatio(w.Pos.Rect, beforeBox) >= cfg.ContiguousWordsYOverlapThreshold {
			return true
		}
	}
	return false
}

// slimGroups is rule 4: reject if either side of the cut would form a
// group narrower than the slim-group threshold.
func slimGroups(c *model.Cut, sorted []model.Element, doc *model.Document, cfg *config.Config, prevChosen *model.Cut) bool {
	threshold := cfg.SlimGroupWidthThresholdFactor * doc.AvgCharWidth

	leftStart := 0
	if prevChosen != nil {
		leftStart = prevChosen.PosInElements
	}
	left := sorted[leftStart:c.PosInElements]
	right := sorted[c.PosInElements:]

	return groupWidth(left) < threshold || groupWidth(right) < threshold
}

func groupWidth(elements []model.Element) float64 {
	if len(elements) == 0 {
		return 0
	}
	return boundingBox(elements).Width()
}

// chooseYCuts implements §4.7's partner-pair search: virtual sentinel cuts
// bound the element range; walking forward from each candidate, the nearest
// following candidate whose intervening slice yields at least one chosen
// x-cut (in silent mode) is its partner, both are marked chosen, and the
// search restarts from the partner's position — the literal `idx =
// other_idx` restart (Open Question decision, see DESIGN.md), rather than
// continuing one candidate past it.
func chooseYCuts(doc *model.Document, cfg *config.Config, minXGap float64) xycut.Chooser {
	xChooser := chooseXCuts(doc, cfg)

	return func(sorted []model.Element, candidates []*model.Cut, silent bool) {
		if len(candidates) == 0 {
			return
		}
		n := len(sorted)
		all := make([]*model.Cut, 0, len(candidates)+2)
		all = append(all, &model.Cut{PosInElements: 0})
		all = append(all, candidates...)
		all = append(all, &model.Cut{PosInElements: n})

		idx := 0
		for idx < len(all)-1 {
			cur := all[idx]
			partner := -1
			for j := idx + 1; j < len(all); j++ {
				lo, hi := cur.PosInElements, all[j].PosInElements
				if lo >= hi {
					continue
				}
				if xycut.TrialXCut(sorted[lo:hi], minXGap, maxOverlappingElements, xChooser) {
					partner = j
					break
				}
			}
			if partner == -1 {
				idx++
				continue
			}
			cur.IsChosen = true
			all[partner].IsChosen = true
			idx = partner
		}
	}
}
