/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func testWord(rank int, left, upper, right, lower float64) *model.Word {
	return &model.Word{Rank: rank, Pos: model.Position{Rect: geom.Rect{Left: left, Upper: upper, Right: right, Lower: lower}}}
}

func TestDetectSplitsTwoColumns(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentWordDistance = 2
	doc.AvgCharWidth = 3
	doc.AvgCharHeight = 8

	page := model.NewPage(1, geom.Rect{Left: 0, Upper: 0, Right: 300, Lower: 200})
	page.Words = []*model.Word{
		testWord(0, 0, 0, 30, 10),
		testWord(1, 0, 20, 30, 30),
		testWord(2, 150, 0, 180, 10),
		testWord(3, 150, 20, 180, 30),
	}
	doc.Pages = []*model.Page{page}

	Detect(doc, config.Default())

	require.Len(t, page.Segments, 2)
	for _, seg := range page.Segments {
		assert.Len(t, seg.Elements, 2)
	}
}

func TestDetectKeepsContiguousWordsTogether(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentWordDistance = 2
	doc.AvgCharWidth = 3
	doc.AvgCharHeight = 8

	page := model.NewPage(1, geom.Rect{Left: 0, Upper: 0, Right: 300, Lower: 50})
	// Two words on the same baseline, consecutive ranks, separated by a gap
	// that would otherwise be wide enough to cut.
	w0 := testWord(0, 0, 0, 30, 10)
	w1 := testWord(1, 150, 0, 180, 10)
	page.Words = []*model.Word{w0, w1}
	doc.Pages = []*model.Page{page}

	Detect(doc, config.Default())

	require.Len(t, page.Segments, 1)
	assert.Len(t, page.Segments[0].Elements, 2)
}

func TestDetectReturnsNoSegmentsForEmptyPage(t *testing.T) {
	doc := model.NewDocument()
	page := model.NewPage(1, geom.Rect{Left: 0, Upper: 0, Right: 100, Lower: 100})
	doc.Pages = []*model.Page{page}

	Detect(doc, config.Default())

	assert.Empty(t, page.Segments)
}
