/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package subsuper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func TestDetectFlagsSuperscript(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentFontSize = 10

	normal := &model.Character{FontSize: 10, BaselineY: 110, Pos: model.Position{Rect: geom.Rect{Left: 0, Upper: 100, Right: 5, Lower: 110}}}
	sup := &model.Character{FontSize: 6, BaselineY: 104, Pos: model.Position{Rect: geom.Rect{Left: 5, Upper: 98, Right: 8, Lower: 104}}}
	word := &model.Word{Characters: []*model.Character{normal, sup}}
	line := &model.TextLine{BaselineY: 110, Words: []*model.Word{word}}
	seg := &model.PageSegment{Lines: []*model.TextLine{line}}
	doc.Pages = []*model.Page{{Segments: []*model.PageSegment{seg}}}

	Detect(doc, config.Default())

	assert.True(t, sup.IsSuperscript)
	assert.False(t, sup.IsSubscript)
	assert.False(t, normal.IsSuperscript)
	assert.Equal(t, normal.Pos.Rect, line.BaseBBox)
}

func TestDetectFlagsSubscript(t *testing.T) {
	doc := model.NewDocument()
	doc.MostFrequentFontSize = 10

	sub := &model.Character{FontSize: 6, BaselineY: 116, Pos: model.Position{Rect: geom.Rect{Left: 5, Upper: 110, Right: 8, Lower: 116}}}
	word := &model.Word{Characters: []*model.Character{sub}}
	line := &model.TextLine{BaselineY: 110, Words: []*model.Word{word}}
	seg := &model.PageSegment{Lines: []*model.TextLine{line}}
	doc.Pages = []*model.Page{{Segments: []*model.PageSegment{seg}}}

	Detect(doc, config.Default())

	assert.True(t, sub.IsSubscript)
}
