/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package readingorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func testBlock(left, upper, right, lower float64) *model.TextBlock {
	return &model.TextBlock{Pos: model.Position{Rect: geom.Rect{Left: left, Upper: upper, Right: right, Lower: lower}}}
}

func TestDetectOrdersColumnsLeftToRightTopToBottom(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentWordDistance = 5 // minXGap = 10

	tl := testBlock(0, 0, 100, 20)
	bl := testBlock(0, 30, 100, 50)
	tr := testBlock(150, 0, 250, 20)
	br := testBlock(150, 30, 250, 50)

	page := &model.Page{Blocks: []*model.TextBlock{tl, bl, tr, br}}
	doc.Pages = []*model.Page{page}

	Detect(doc, config.Default())

	require.Len(t, page.Blocks, 4)
	assert.Same(t, tl, page.Blocks[0])
	assert.Same(t, bl, page.Blocks[1])
	assert.Same(t, tr, page.Blocks[2])
	assert.Same(t, br, page.Blocks[3])
}

func TestDetectKeepsSingleColumnOrderAndRelinks(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentWordDistance = 5

	top := testBlock(0, 0, 100, 20)
	bottom := testBlock(0, 30, 100, 50)

	page := &model.Page{Blocks: []*model.TextBlock{top, bottom}}
	doc.Pages = []*model.Page{page}

	Detect(doc, config.Default())

	require.Len(t, page.Blocks, 2)
	assert.Same(t, top, page.Blocks[0])
	assert.Same(t, bottom, page.Blocks[1])
	assert.Equal(t, 0, top.Rank)
	assert.Equal(t, 1, bottom.Rank)
	assert.Nil(t, top.PrevBlock)
	assert.Same(t, bottom, top.NextBlock)
	assert.Same(t, top, bottom.PrevBlock)
	assert.Nil(t, bottom.NextBlock)
}

func TestChoosePrimaryXCutsAcceptsOrientationMismatch(t *testing.T) {
	doc := model.NewDocument()
	doc.AvgCharWidth = 5

	left := testBlock(0, 0, 100, 20)
	right := testBlock(150, 0, 250, 20)
	right.Pos.Rotation = model.Rotation1

	chooser := choosePrimaryXCuts(doc, 125)
	cut := &model.Cut{ElementBefore: left, ElementAfter: right}
	chooser(nil, []*model.Cut{cut}, true)

	assert.True(t, cut.IsChosen)
}

func TestChoosePrimaryXCutsRejectsOrdinaryColumnGap(t *testing.T) {
	doc := model.NewDocument()
	doc.AvgCharWidth = 5

	left := testBlock(0, 0, 100, 20)
	right := testBlock(150, 0, 250, 20)

	chooser := choosePrimaryXCuts(doc, 125)
	cut := &model.Cut{ElementBefore: left, ElementAfter: right}
	chooser(nil, []*model.Cut{cut}, true)

	assert.False(t, cut.IsChosen)
}

func TestChoosePrimaryYCutsAcceptsMarginalityChange(t *testing.T) {
	doc := model.NewDocument()
	doc.AvgCharWidth = 5

	title := testBlock(0, 0, 200, 20)
	title.Role = model.RoleTitle
	para := testBlock(0, 30, 200, 60)
	para.Role = model.RoleParagraph

	chooser := choosePrimaryYCuts(doc, 100)
	cut := &model.Cut{ElementBefore: title, ElementAfter: para}
	chooser(nil, []*model.Cut{cut}, true)

	assert.True(t, cut.IsChosen)
}

func TestIsWideNonTextSpanningMidXRequiresWidthAndStraddle(t *testing.T) {
	doc := model.NewDocument()
	doc.AvgCharWidth = 5 // width threshold = 50

	wide := &model.Shape{Pos: model.Position{Rect: geom.Rect{Left: 0, Upper: 10, Right: 200, Lower: 12}}}
	assert.True(t, isWideNonTextSpanningMidX(wide, doc, 100))

	narrow := &model.Shape{Pos: model.Position{Rect: geom.Rect{Left: 90, Upper: 10, Right: 110, Lower: 12}}}
	assert.False(t, isWideNonTextSpanningMidX(narrow, doc, 100))

	offPage := &model.Shape{Pos: model.Position{Rect: geom.Rect{Left: 0, Upper: 10, Right: 80, Lower: 12}}}
	assert.False(t, isWideNonTextSpanningMidX(offPage, doc, 100))
}
