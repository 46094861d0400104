/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.10's ReadingOrderDetector: a two-level XY-cut over each
 * page's blocks, figures and shapes. A single primary x-cut splits the page
 * into columns, a single primary y-cut splits each column into strips, and
 * the recursive non-primary xy_cut (the shared engine, §4.6) takes over
 * inside each strip. Runs after blocks and role classification, since the
 * primary y-cut policy consults each block's assigned Role.
 */

package readingorder

import (
	"sort"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
	"github.com/ad-freiburg/pdftotextplus-go/xycut"
)

// maxOverlappingElements is §4.10's fixed `max_overlapping_elements`.
const maxOverlappingElements = 1

// minYGap is §4.10's fixed `min_y_gap`, reused from §4.7's page-segmentation
// value since §4.10 does not give reading order its own.
const minYGap = 2.0

// wideElementWidthFactor is the "wide non-text element" threshold, a
// horizontal rule wide enough to plausibly split a multi-column layout.
const wideElementWidthFactor = 10.0

// Detect reorders every page's Blocks into reading order.
func Detect(doc *model.Document, cfg *config.Config) {
	for _, page := range doc.Pages {
		elements := page.BlocksAndNonTextElements()
		if len(elements) == 0 {
			continue
		}
		relink(page, detectPage(elements, doc))
	}
}

func detectPage(elements []model.Element, doc *model.Document) []*model.TextBlock {
	minXGap := 2 * doc.MostFrequentWordDistance
	midX := computeMidX(elements)

	columns := xycut.SingleCut(elements, model.CutX, minXGap, maxOverlappingElements, choosePrimaryXCuts(doc, midX))

	var blocks []*model.TextBlock
	for _, col := range columns {
		rows := xycut.SingleCut(col, model.CutY, minYGap, maxOverlappingElements, choosePrimaryYCuts(doc, midX))
		for _, row := range rows {
			groups, _ := xycut.XYCut(row, xycut.Params{
				MinXGap:                minXGap,
				MinYGap:                minYGap,
				MaxOverlappingElements: maxOverlappingElements,
				ChooseXCuts:            chooseNonPrimaryXCuts,
				ChooseYCuts:            chooseNonPrimaryYCuts(minXGap),
				Silent:                 true,
			})
			for _, g := range groups {
				blocks = append(blocks, sortAndFilterBlocks(g)...)
			}
		}
	}
	return blocks
}

func computeMidX(elements []model.Element) float64 {
	box := elements[0].Position().Rect
	for _, el := range elements[1:] {
		box = geom.Union(box, el.Position().Rect)
	}
	return (box.Left + box.Right) / 2
}

// choosePrimaryXCuts is §4.10's primary x-cut policy: accept a cut whenever
// either neighbor carries a non-default rotation or writing mode, both
// neighbors are blocks that disagree on rotation/writing mode, or either
// neighbor is a wide non-text element straddling the page's mid-x.
func choosePrimaryXCuts(doc *model.Document, midX float64) xycut.Chooser {
	return func(sorted []model.Element, candidates []*model.Cut, silent bool) {
		for _, c := range candidates {
			if hasNonDefaultOrientation(c.ElementBefore) || hasNonDefaultOrientation(c.ElementAfter) {
				c.IsChosen = true
				continue
			}
			if blocksDisagreeOnOrientation(c.ElementBefore, c.ElementAfter) {
				c.IsChosen = true
				continue
			}
			if isWideNonTextSpanningMidX(c.ElementBefore, doc, midX) || isWideNonTextSpanningMidX(c.ElementAfter, doc, midX) {
				c.IsChosen = true
				continue
			}
		}
	}
}

func hasNonDefaultOrientation(e model.Element) bool {
	p := e.Position()
	return p.Rotation != model.Rotation0 || p.WritingMode != model.WritingModeHorizontal
}

func blocksDisagreeOnOrientation(before, after model.Element) bool {
	b, ok1 := before.(*model.TextBlock)
	a, ok2 := after.(*model.TextBlock)
	if !ok1 || !ok2 {
		return false
	}
	return b.Pos.Rotation != a.Pos.Rotation || b.Pos.WritingMode != a.Pos.WritingMode
}

func isWideNonTextSpanningMidX(e model.Element, doc *model.Document, midX float64) bool {
	var pos model.Position
	switch v := e.(type) {
	case *model.Shape:
		pos = v.Pos
	case *model.Figure:
		pos = v.Pos
	default:
		return false
	}
	if pos.Width() <= wideElementWidthFactor*doc.AvgCharWidth {
		return false
	}
	return pos.Left <= midX && pos.Right >= midX
}

// choosePrimaryYCuts is §4.10's primary y-cut policy: accept a cut whenever
// the two neighboring blocks disagree on being "marginal-like" (title,
// author info, or marginal vs. anything else), or either neighbor is a wide
// non-text element straddling the mid-x.
func choosePrimaryYCuts(doc *model.Document, midX float64) xycut.Chooser {
	return func(sorted []model.Element, candidates []*model.Cut, silent bool) {
		for _, c := range candidates {
			if blocksDisagreeOnMarginality(c.ElementBefore, c.ElementAfter) {
				c.IsChosen = true
				continue
			}
			if isWideNonTextSpanningMidX(c.ElementBefore, doc, midX) || isWideNonTextSpanningMidX(c.ElementAfter, doc, midX) {
				c.IsChosen = true
				continue
			}
		}
	}
}

func blocksDisagreeOnMarginality(before, after model.Element) bool {
	b, ok1 := before.(*model.TextBlock)
	a, ok2 := after.(*model.TextBlock)
	if !ok1 || !ok2 {
		return false
	}
	return b.Role.IsMarginalLike() != a.Role.IsMarginalLike()
}

// chooseNonPrimaryXCuts accepts every candidate: §4.10's non-primary x-cut
// policy is unconditional, unlike §4.7's veto chain.
func chooseNonPrimaryXCuts(sorted []model.Element, candidates []*model.Cut, silent bool) {
	for _, c := range candidates {
		c.IsChosen = true
	}
}

// chooseNonPrimaryYCuts mirrors §4.7's partner-pair search (segment
// package), but tests splittability with chooseNonPrimaryXCuts instead of
// the real veto chain, since every x-cut candidate is accepted outside the
// primary pass.
func chooseNonPrimaryYCuts(minXGap float64) xycut.Chooser {
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
				if xycut.TrialXCut(sorted[lo:hi], minXGap, maxOverlappingElements, chooseNonPrimaryXCuts) {
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

// sortAndFilterBlocks orders a terminal XY-cut group by upper-y and drops
// every non-block element (figures, shapes), per §4.10's final step.
func sortAndFilterBlocks(group []model.Element) []*model.TextBlock {
	out := append([]model.Element{}, group...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position().Upper < out[j].Position().Upper })

	var blocks []*model.TextBlock
	for _, e := range out {
		if b, ok := e.(*model.TextBlock); ok {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// relink overwrites page.Blocks with `ordered` and rebuilds Rank and the
// prev/next block chain §4.9's TextBlockDetector originally set in
// segment-detection order.
func relink(page *model.Page, ordered []*model.TextBlock) {
	page.Blocks = ordered
	var prev *model.TextBlock
	for i, b := range ordered {
		b.Rank = i
		b.PrevBlock = prev
		b.NextBlock = nil
		if prev != nil {
			prev.NextBlock = b
		}
		prev = b
	}
}
