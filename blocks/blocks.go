/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.9's TextBlockDetector: walks each segment's lines deciding
 * line-by-line whether a new block begins, then builds each block's
 * bounding/trim box, centering, emphasis and hanging-indent attributes.
 */

package blocks

import (
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
	"github.com/ad-freiburg/pdftotextplus-go/stats"
)

// centeringOverlapTolerance is how far below 1.0 a pair's x-overlap ratio
// may fall and still count as "fully overlapped" (§4.9 centering checks).
const centeringOverlapTolerance = 0.01

// Detect runs TextBlockDetector over every segment of every page, links the
// resulting blocks in page order, then finalizes each block's margins and
// hanging indent.
func Detect(doc *model.Document, cfg *config.Config) {
	patterns := compilePatterns(cfg.ItemLabelPatterns)

	for _, page := range doc.Pages {
		page.Blocks = nil
		for _, seg := range page.Segments {
			page.Blocks = append(page.Blocks, detectSegment(seg, doc, cfg, patterns)...)
		}
		linkBlocks(page)
		for _, b := range page.Blocks {
			finalizeBlock(b, doc, cfg)
		}
	}
}

func compilePatterns(patterns []string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			continue
		}
		out = append(out, re)
	}
	return out
}

// detectSegment splits a segment's lines into blocks and builds each one.
func detectSegment(seg *model.PageSegment, doc *model.Document, cfg *config.Config, patterns []*regexp.Regexp) []*model.TextBlock {
	lines := seg.Lines
	if len(lines) == 0 {
		return nil
	}

	var blocks []*model.TextBlock
	var current []*model.TextLine

	for i, curr := range lines {
		var prev, next *model.TextLine
		if i > 0 {
			prev = lines[i-1]
		}
		if i+1 < len(lines) {
			next = lines[i+1]
		}

		if prev != nil && beginsNewBlock(prev, curr, next, doc, cfg, patterns) {
			blocks = append(blocks, buildBlock(current, seg, doc, cfg))
			current = nil
		}
		current = append(current, curr)
	}
	if len(current) > 0 {
		blocks = append(blocks, buildBlock(current, seg, doc, cfg))
	}
	return blocks
}

// beginsNewBlock is the tri-state rule chain (§4.9): the first non-None
// result wins, "continue current block" is the default.
func beginsNewBlock(prev, curr, next *model.TextLine, doc *model.Document, cfg *config.Config, patterns []*regexp.Regexp) bool {
	if v := lineDistanceRule(prev, curr, doc, cfg); v != nil {
		return *v
	}
	if v := fontSizeRule(prev, curr, cfg); v != nil {
		return *v
	}
	if v := fontWeightRule(prev, curr, doc, cfg); v != nil {
		return *v
	}
	if v := hangingIndentFirstLineRule(prev, curr, next, cfg); v != nil {
		return *v
	}
	if v := centeringChangeRule(prev, curr, doc, cfg); v != nil {
		return *v
	}
	if v := itemLabelChangeRule(prev, curr, cfg, patterns); v != nil {
		return *v
	}
	return false
}

func trueVal() *bool { t := true; return &t }

func lineDistanceRule(prev, curr *model.TextLine, doc *model.Document, cfg *config.Config) *bool {
	gap := curr.BaseBBox.Upper - prev.BaseBBox.Lower
	if gap < 0 {
		gap = 0
	}
	if geom.Round(gap, cfg.LineDistancePrecision) > cfg.LineDistanceFactor*doc.MostFrequentLineDistance {
		return trueVal()
	}
	return nil
}

func fontSizeRule(prev, curr *model.TextLine, cfg *config.Config) *bool {
	if math.Abs(curr.FontSize-prev.FontSize) > cfg.FSEqualTolerance {
		return trueVal()
	}
	return nil
}

// fontWeightRule only checks the curr-exceeds-prev direction: the C++
// pdftotext++'s symmetric prev-exceeds-curr check ships commented out there,
// so this mirrors the behavior actually shipped rather than the one left
// disabled.
func fontWeightRule(prev, curr *model.TextLine, doc *model.Document, cfg *config.Config) *bool {
	prevWeight := fontWeight(doc, prev.FontName)
	currWeight := fontWeight(doc, curr.FontName)
	if curr.FontSize >= prev.FontSize && currWeight-prevWeight > cfg.FontWeightThreshold {
		return trueVal()
	}
	return nil
}

func fontWeight(doc *model.Document, name string) float64 {
	if fi, ok := doc.Fonts[name]; ok && fi != nil {
		return fi.Weight
	}
	return 0
}

// hangingIndentFirstLineRule: the original computes this by comparing
// curr's indentation to doc.mostFreqLineIndent, but that statistic's
// computation ships commented out in PdfDocumentStatisticsCalculator.cpp
// (always 0 in practice). This implements the rule's evident intent
// instead: curr is indented relative to prev, and next reverts back to
// prev's left-x.
func hangingIndentFirstLineRule(prev, curr, next *model.TextLine, cfg *config.Config) *bool {
	if next == nil {
		return nil
	}
	xOffsetCurr := curr.Pos.RotLeft() - prev.Pos.RotLeft()
	xOffsetNext := next.Pos.RotLeft() - prev.Pos.RotLeft()
	if xOffsetCurr > cfg.CoordsEqualTolerance && math.Abs(xOffsetNext) <= cfg.CoordsEqualTolerance {
		return trueVal()
	}
	return nil
}

// centeringChangeRule fires when curr is centered w.r.t. prev but prev was
// not centered w.r.t. its own predecessor.
func centeringChangeRule(prev, curr *model.TextLine, doc *model.Document, cfg *config.Config) *bool {
	if !centeredPair(prev, curr, doc, cfg) {
		return nil
	}
	if prev.PrevLine == nil {
		return nil
	}
	if !centeredPair(prev.PrevLine, prev, doc, cfg) {
		return trueVal()
	}
	return nil
}

func itemLabelChangeRule(prev, curr *model.TextLine, cfg *config.Config, patterns []*regexp.Regexp) *bool {
	if isFirstLineOfItem(curr, cfg, patterns) && !isFirstLineOfItem(prev, cfg, patterns) {
		return trueVal()
	}
	return nil
}

// centeredPair reports whether `b` is centered relative to `a` (§4.9, and
// the shared pairwise test `isLinesCentered` builds on): full x-overlap,
// and equal left/right x-offsets within a tolerance proportional to
// doc.AvgCharWidth.
func centeredPair(a, b *model.TextLine, doc *model.Document, cfg *config.Config) bool {
	overlap := geom.XOverlapRatio(a.Pos.Rect, b.Pos.Rect)
	if overlap < 1.0-centeringOverlapTolerance {
		return false
	}
	tol := cfg.CenteringXOffsetThresholdFactor * doc.AvgCharWidth
	leftOffset := math.Abs(a.Pos.Left - b.Pos.Left)
	rightOffset := math.Abs(a.Pos.Right - b.Pos.Right)
	return withinTol(leftOffset, rightOffset, tol)
}

func withinTol(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// --- item / footnote label detection -------------------------------------

func beginsWithSuperscriptLabel(line *model.TextLine, alphabet []string) bool {
	if len(line.Words) == 0 {
		return false
	}
	w := line.Words[0]
	if len(w.Characters) == 0 {
		return false
	}
	c := w.Characters[0]
	if !c.IsSuperscript {
		return false
	}
	for _, s := range alphabet {
		if s == c.Text {
			return true
		}
	}
	return false
}

func beginsWithLabelPattern(line *model.TextLine, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(line.Text) {
			return true
		}
	}
	return false
}

func isPrefixedByItemLabel(line *model.TextLine, cfg *config.Config, patterns []*regexp.Regexp) bool {
	return beginsWithSuperscriptLabel(line, cfg.SuperItemLabelAlphabet) || beginsWithLabelPattern(line, patterns)
}

func isPrefixedByFootnoteLabel(line *model.TextLine, cfg *config.Config) bool {
	return beginsWithSuperscriptLabel(line, cfg.FootnoteLabelAlphabet)
}

// isFirstLineOfItem requires, beyond the label prefix itself, that a
// sibling line in the indentation hierarchy is also prefixed and shares
// font name and size — this avoids misreading a body-text sentence that
// happens to start with a digit as an item (§4.9). A line without such a
// sibling still counts when it begins with a footnote label.
func isFirstLineOfItem(line *model.TextLine, cfg *config.Config, patterns []*regexp.Regexp) bool {
	if len(line.Words) == 0 {
		return false
	}
	if !isPrefixedByItemLabel(line, cfg, patterns) {
		return false
	}

	first := line.Words[0]
	if sib := line.PrevSibling; sib != nil && len(sib.Words) > 0 {
		if isPrefixedByItemLabel(sib, cfg, patterns) && sameFont(sib.Words[0], first) {
			return true
		}
	}
	if sib := line.NextSibling; sib != nil && len(sib.Words) > 0 {
		if isPrefixedByItemLabel(sib, cfg, patterns) && sameFont(sib.Words[0], first) {
			return true
		}
	}
	return isPrefixedByFootnoteLabel(line, cfg)
}

func sameFont(a, b *model.Word) bool {
	return a.FontName == b.FontName && geom.Equal(a.FontSize, b.FontSize)
}

// --- block construction ----------------------------------------------------

func buildBlock(lines []*model.TextLine, seg *model.PageSegment, doc *model.Document, cfg *config.Config) *model.TextBlock {
	box := lines[0].Pos.Rect
	for _, l := range lines[1:] {
		box = geom.Union(box, l.Pos.Rect)
	}

	first := lines[0]
	b := &model.TextBlock{
		Pos: model.Position{
			PageNum:     first.Pos.PageNum,
			Rect:        box,
			Rotation:    first.Pos.Rotation,
			WritingMode: first.Pos.WritingMode,
		},
		Segment: seg,
		TrimBox: clampToSegmentTrimBox(box, seg.TrimBox),
		Lines:   lines,
	}
	b.IsEmphasized = isEmphasized(lines)
	b.IsLinesCentered = isLinesCentered(lines, doc, cfg)
	return b
}

func clampToSegmentTrimBox(box, segTrim geom.Rect) geom.Rect {
	trim := box
	if trim.Left < segTrim.Left {
		trim.Left = segTrim.Left
	}
	if trim.Right > segTrim.Right {
		trim.Right = segTrim.Right
	}
	return trim
}

// isEmphasized reports whether every character in the block is bold or
// italic (§4.9).
func isEmphasized(lines []*model.TextLine) bool {
	seen := false
	for _, l := range lines {
		for _, w := range l.Words {
			for _, c := range w.Characters {
				seen = true
				if c.Font == nil || (!c.Font.IsBold() && !c.Font.IsItalic) {
					return false
				}
			}
		}
	}
	return seen
}

// isLinesCentered reports whether every adjacent line pair in the block is
// centered, with at most cfg.CenteringMaxNumJustifiedLines pairs excepted
// (§4.9). This is the block-level flag stored on TextBlock; it is distinct
// from the segment-relative centering check `segmentCentered` uses for the
// trim-right enlargement decision.
func isLinesCentered(lines []*model.TextLine, doc *model.Document, cfg *config.Config) bool {
	if len(lines) < 2 {
		return false
	}
	tol := cfg.CenteringXOffsetThresholdFactor * doc.AvgCharWidth
	hasLargeOffsetPair := false
	numJustified := 0

	for i := 1; i < len(lines); i++ {
		prev, curr := lines[i-1], lines[i]
		overlap := geom.XOverlapRatio(prev.Pos.Rect, curr.Pos.Rect)
		if overlap < 1.0-centeringOverlapTolerance {
			return false
		}
		leftOffset := math.Abs(prev.Pos.Left - curr.Pos.Left)
		rightOffset := math.Abs(prev.Pos.Right - curr.Pos.Right)
		if !withinTol(leftOffset, rightOffset, tol) {
			return false
		}
		if leftOffset > tol || rightOffset > tol {
			hasLargeOffsetPair = true
		} else {
			numJustified++
		}
	}
	return hasLargeOffsetPair && numJustified <= cfg.CenteringMaxNumJustifiedLines
}

// segmentCentered reports whether `b` is centered within its own segment's
// trim box — a separate, simpler notion from isLinesCentered, used only to
// decide whether a 2-line block's trim-right should be enlarged.
func segmentCentered(b *model.TextBlock, doc *model.Document) bool {
	leftMargin := b.Pos.Left - b.Segment.TrimBox.Left
	rightMargin := b.Segment.TrimBox.Right - b.Pos.Right
	return withinTol(leftMargin, rightMargin, doc.AvgCharWidth)
}

// --- page-wide linking and finalization ------------------------------------

func linkBlocks(page *model.Page) {
	for i, b := range page.Blocks {
		b.Rank = i
		if i > 0 {
			b.PrevBlock = page.Blocks[i-1]
			page.Blocks[i-1].NextBlock = b
		}
	}
}

// finalizeBlock enlarges a non-centered 2-line block's trim-right to its
// neighbors' trim-right, computes each line's left/right margin relative to
// the (possibly enlarged) trim box, then computes the block's hanging
// indent (§4.9 compute_text_line_margins / computeHangingIndent).
func finalizeBlock(b *model.TextBlock, doc *model.Document, cfg *config.Config) {
	if len(b.Lines) == 2 && !segmentCentered(b, doc) {
		right := b.TrimBox.Right
		if b.PrevBlock != nil && b.PrevBlock.Segment == b.Segment && b.PrevBlock.TrimBox.Right > right {
			right = b.PrevBlock.TrimBox.Right
		}
		if b.NextBlock != nil && b.NextBlock.Segment == b.Segment && b.NextBlock.TrimBox.Right > right {
			right = b.NextBlock.TrimBox.Right
		}
		b.TrimBox.Right = right
	}

	for _, l := range b.Lines {
		l.LeftMargin = l.Pos.Left - b.TrimBox.Left
		l.RightMargin = b.TrimBox.Right - l.Pos.Right
	}

	b.HangingIndent = computeHangingIndent(b, doc, cfg)
}

// --- hanging indent ---------------------------------------------------------

// computeHangingIndent ports the original's utils/TextBlocksUtils.cpp
// computeHangingIndent: a block is in hanging-indent format when at least
// half its large-left-margin lines share one common margin, and one of
// three further conditions holds (§4.9).
func computeHangingIndent(b *model.TextBlock, doc *model.Document, cfg *config.Config) float64 {
	lines := b.Lines
	if len(lines) == 0 {
		return 0
	}
	marginThreshold := doc.AvgCharWidth

	numLongLines := 0
	marginCounter := stats.FloatCounter{}
	numLargeLeftMarginLines := 0

	for _, l := range lines {
		if utf8.RuneCountInString(l.Text) >= cfg.HangIndentMinLengthLongLines {
			numLongLines++
		}
		if l.LeftMargin > marginThreshold {
			marginCounter.Add(geom.Round(l.LeftMargin, cfg.CoordinatePrecision))
			numLargeLeftMarginLines++
		}
	}

	mostFreqMargin, ok := marginCounter.Argmax()
	if !ok {
		return 0
	}
	mostFreqCount := 0
	for _, l := range lines {
		if l.LeftMargin > marginThreshold && geom.Round(l.LeftMargin, cfg.CoordinatePrecision) == mostFreqMargin {
			mostFreqCount++
		}
	}
	if float64(mostFreqCount) < cfg.HangIndentMinPercLinesSameLeftMargin*float64(numLargeLeftMarginLines) {
		return 0
	}

	var (
		numNonIndentedLines, numIndentedLines           int
		numLowerIndentedLines, numLowerNonIndentedLines int
		isFirstLineIndented, hasFirstLineCapacity       bool
	)
	isAllOtherLinesIndented := true

	for i, l := range lines {
		longEnough := utf8.RuneCountInString(l.Text) >= cfg.HangIndentMinLengthLongLines
		isEqualMargin := withinTol(l.LeftMargin, l.RightMargin, marginThreshold)
		isLargeMargin := l.LeftMargin > marginThreshold
		if !longEnough || (isEqualMargin && isLargeMargin) {
			if i == 0 {
				isFirstLineIndented = l.LeftMargin > marginThreshold
			}
			continue
		}

		isNonIndented := withinTol(l.LeftMargin, 0, marginThreshold)
		isIndented := geom.Round(l.LeftMargin, cfg.CoordinatePrecision) == mostFreqMargin
		lower := startsLower(l.Text)

		if isNonIndented {
			numNonIndentedLines++
			if lower && !startsWithLastNamePrefix(l.Text, cfg.LastNamePrefixes) {
				numLowerNonIndentedLines++
			}
		}
		if isIndented {
			numIndentedLines++
			if lower {
				numLowerIndentedLines++
			}
		}

		if i == 0 {
			isFirstLineIndented = l.LeftMargin > marginThreshold
		}
		if i == 1 {
			hasFirstLineCapacity = computeHasPrevLineCapacity(l, doc)
		}
		if i > 0 && !isIndented {
			isAllOtherLinesIndented = false
		}
	}

	if numIndentedLines == 0 {
		return 0
	}
	if numLowerNonIndentedLines > cfg.HangIndentNumLowerNonIndentedLinesThreshold {
		return 0
	}

	if !isFirstLineIndented && !hasFirstLineCapacity && isAllOtherLinesIndented {
		return mostFreqMargin
	}
	if numNonIndentedLines >= cfg.HangIndentNumNonIndentedLinesThreshold &&
		numLowerNonIndentedLines <= cfg.HangIndentNumLowerNonIndentedLinesThreshold {
		return mostFreqMargin
	}
	if numLongLines >= cfg.HangIndentNumIndentedLinesThreshold &&
		numLowerIndentedLines >= cfg.HangIndentNumLowerIndentedLinesThreshold {
		return mostFreqMargin
	}
	return 0
}

// computeHasPrevLineCapacity tests whether `line`'s first word would have
// fit into its previous line's trailing margin, within a tolerance of
// 2*doc.AvgCharWidth (§4.9, §4.8's "extra capacity" heuristic).
func computeHasPrevLineCapacity(line *model.TextLine, doc *model.Document) bool {
	if line.PrevLine == nil || len(line.Words) == 0 {
		return false
	}
	firstWordWidth := line.Words[0].Pos.Width()
	return line.PrevLine.RightMargin-firstWordWidth > 2*doc.AvgCharWidth
}

func startsLower(text string) bool {
	r, ok := firstLetter(text)
	return ok && unicode.IsLower(r)
}

func firstLetter(text string) (rune, bool) {
	for _, r := range text {
		if unicode.IsLetter(r) {
			return r, true
		}
	}
	return 0, false
}

func startsWithLastNamePrefix(text string, prefixes []string) bool {
	trimmed := strings.TrimSpace(text)
	for _, p := range prefixes {
		if strings.HasPrefix(trimmed, p+" ") {
			return true
		}
	}
	return false
}
