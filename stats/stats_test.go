/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func TestCharacterStatsComputesArgmaxAndAverages(t *testing.T) {
	doc := model.NewDocument()
	page := &model.Page{Characters: []*model.Character{
		{FontSize: 10, FontName: "Arial", Pos: model.Position{Rect: geom.Rect{Right: 6, Lower: 10}}},
		{FontSize: 10, FontName: "Arial", Pos: model.Position{Rect: geom.Rect{Right: 8, Lower: 12}}},
		{FontSize: 12, FontName: "Times", Pos: model.Position{Rect: geom.Rect{Right: 4, Lower: 8}}},
	}}
	doc.Pages = []*model.Page{page}

	cfg := config.Default()
	CharacterStats(doc, cfg)

	assert.Equal(t, 10.0, doc.MostFrequentFontSize)
	assert.Equal(t, "Arial", doc.MostFrequentFontName)
	assert.InDelta(t, 6.0, doc.AvgCharWidth, 1e-9)
	assert.InDelta(t, 10.0, doc.AvgCharHeight, 1e-9)
}

func TestWordStatsRecordsHorizontalGap(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentFontSize = 10
	w1 := &model.Word{FontSize: 10, Pos: model.Position{Rect: geom.Rect{Left: 0, Upper: 100, Right: 10, Lower: 110}}}
	w2 := &model.Word{FontSize: 10, Pos: model.Position{Rect: geom.Rect{Left: 13, Upper: 100, Right: 20, Lower: 110}}}
	doc.Pages = []*model.Page{{Words: []*model.Word{w1, w2}}}

	cfg := config.Default()
	WordStats(doc, cfg)

	assert.InDelta(t, 3.0, doc.MostFrequentWordDistance, 1e-9)
}

func TestLineStatsPerFontSize(t *testing.T) {
	doc := model.NewDocument()
	l1 := &model.TextLine{FontSize: 10, BaseBBox: geom.Rect{Upper: 100, Lower: 110}}
	l2 := &model.TextLine{FontSize: 10, BaseBBox: geom.Rect{Upper: 124, Lower: 134}}
	seg := &model.PageSegment{Lines: []*model.TextLine{l1, l2}}
	doc.Pages = []*model.Page{{Segments: []*model.PageSegment{seg}}}

	cfg := config.Default()
	LineStats(doc, cfg)

	assert.InDelta(t, 14.0, doc.MostFrequentLineDistance, 1e-9)
	assert.InDelta(t, 14.0, doc.PerFontSizeLineDistance[10], 1e-9)
}
