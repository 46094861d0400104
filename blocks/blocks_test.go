/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package blocks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func testLine(left, upper, right, lower float64, fontName string, fontSize float64, text string, words ...*model.Word) *model.TextLine {
	rect := geom.Rect{Left: left, Upper: upper, Right: right, Lower: lower}
	return &model.TextLine{
		Pos:      model.Position{Rect: rect},
		BaseBBox: rect,
		FontName: fontName,
		FontSize: fontSize,
		Text:     text,
		Words:    words,
	}
}

func TestDetectSplitsBlockOnLargeLineDistance(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentLineDistance = 5
	doc.AvgCharWidth = 5

	a := testLine(0, 0, 100, 10, "Arial", 10, "first line of text here")
	b := testLine(0, 50, 100, 60, "Arial", 10, "second line of text here")

	seg := &model.PageSegment{Pos: model.Position{Rect: geom.Rect{Left: 0, Upper: 0, Right: 100, Lower: 60}}, TrimBox: geom.Rect{Left: 0, Upper: 0, Right: 100, Lower: 60}, Lines: []*model.TextLine{a, b}}
	page := &model.Page{Segments: []*model.PageSegment{seg}}
	doc.Pages = []*model.Page{page}

	Detect(doc, config.Default())

	require.Len(t, page.Blocks, 2)
}

func TestDetectSplitsBlockOnFontSizeDifference(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentLineDistance = 100
	doc.AvgCharWidth = 5

	a := testLine(0, 0, 100, 10, "Arial", 10, "first line of text here")
	b := testLine(0, 12, 100, 24, "Arial", 16, "second line of text here")

	seg := &model.PageSegment{Pos: model.Position{Rect: geom.Rect{Left: 0, Upper: 0, Right: 100, Lower: 24}}, TrimBox: geom.Rect{Left: 0, Upper: 0, Right: 100, Lower: 24}, Lines: []*model.TextLine{a, b}}
	page := &model.Page{Segments: []*model.PageSegment{seg}}
	doc.Pages = []*model.Page{page}

	Detect(doc, config.Default())

	require.Len(t, page.Blocks, 2)
}

func TestDetectKeepsOrdinaryLinesInOneBlock(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentLineDistance = 100
	doc.AvgCharWidth = 5

	a := testLine(0, 0, 100, 10, "Arial", 10, "first line of text here")
	b := testLine(0, 12, 100, 22, "Arial", 10, "second line of text here")

	seg := &model.PageSegment{Pos: model.Position{Rect: geom.Rect{Left: 0, Upper: 0, Right: 100, Lower: 22}}, TrimBox: geom.Rect{Left: 0, Upper: 0, Right: 100, Lower: 22}, Lines: []*model.TextLine{a, b}}
	page := &model.Page{Segments: []*model.PageSegment{seg}}
	doc.Pages = []*model.Page{page}

	Detect(doc, config.Default())

	require.Len(t, page.Blocks, 1)
	assert.Len(t, page.Blocks[0].Lines, 2)
}

func TestComputeHangingIndentDetectsNonIndentedFirstLine(t *testing.T) {
	doc := model.NewDocument()
	doc.AvgCharWidth = 5
	cfg := config.Default()

	first := testLine(0, 0, 100, 10, "Arial", 10, "Introduction")
	first.RightMargin = 5

	second := testLine(20, 12, 100, 22, "Arial", 10, "This is indented text")
	second.LeftMargin = 20
	second.RightMargin = 0
	second.PrevLine = first
	second.Words = []*model.Word{{Pos: model.Position{Rect: geom.Rect{Left: 20, Right: 30}}}}

	third := testLine(20, 24, 100, 34, "Arial", 10, "More indented text")
	third.LeftMargin = 20
	third.RightMargin = 0

	first.LeftMargin = 0

	block := &model.TextBlock{Lines: []*model.TextLine{first, second, third}}

	got := computeHangingIndent(block, doc, cfg)
	assert.Equal(t, 20.0, got)
}

func TestComputeHangingIndentReturnsZeroWhenNoLineIndented(t *testing.T) {
	doc := model.NewDocument()
	doc.AvgCharWidth = 5
	cfg := config.Default()

	first := testLine(0, 0, 100, 10, "Arial", 10, "Plain paragraph text")
	first.LeftMargin = 0
	second := testLine(0, 12, 100, 22, "Arial", 10, "Another plain line")
	second.LeftMargin = 0

	block := &model.TextBlock{Lines: []*model.TextLine{first, second}}

	got := computeHangingIndent(block, doc, cfg)
	assert.Equal(t, 0.0, got)
}

func TestIsFirstLineOfItemRequiresPrefixedSibling(t *testing.T) {
	cfg := config.Default()
	patterns := compilePatterns(cfg.ItemLabelPatterns)

	line := testLine(0, 0, 100, 10, "Arial", 10, "1. First item", &model.Word{Text: "1.", FontName: "Arial", FontSize: 10})
	assert.False(t, isFirstLineOfItem(line, cfg, patterns), "no sibling prefixed by a label yet")

	sibling := testLine(0, 20, 100, 30, "Arial", 10, "2. Second item", &model.Word{Text: "2.", FontName: "Arial", FontSize: 10})
	line.PrevSibling = sibling

	assert.True(t, isFirstLineOfItem(line, cfg, patterns))
}

func TestIsLinesCenteredDetectsCenteredBlockWithOneJustifiedPair(t *testing.T) {
	doc := model.NewDocument()
	doc.AvgCharWidth = 5
	cfg := config.Default()

	l1 := testLine(0, 0, 100, 10, "Arial", 10, "centered heading text")
	l2 := testLine(10, 12, 90, 22, "Arial", 10, "more centered text")
	l3 := testLine(40, 24, 60, 34, "Arial", 10, "tip")

	assert.True(t, isLinesCentered([]*model.TextLine{l1, l2, l3}, doc, cfg))
}

func TestIsLinesCenteredRejectsUnequalOffsets(t *testing.T) {
	doc := model.NewDocument()
	doc.AvgCharWidth = 5
	cfg := config.Default()

	l1 := testLine(0, 0, 100, 10, "Arial", 10, "left aligned text block")
	l2 := testLine(5, 12, 40, 22, "Arial", 10, "short")

	assert.False(t, isLinesCentered([]*model.TextLine{l1, l2}, doc, cfg))
}
