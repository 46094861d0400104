/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func simpleChar(rank int, left, right float64, text string, fontSize float64) *model.Character {
	return &model.Character{
		Pos:      model.Position{Rect: geom.Rect{Left: left, Upper: 0, Right: right, Lower: 10}},
		Text:     text,
		FontName: "Helvetica",
		FontSize: fontSize,
		Rank:     rank,
	}
}

func TestFormJoinsCloseCharactersIntoOneWord(t *testing.T) {
	chars := []*model.Character{
		simpleChar(0, 0, 5, "h", 10),
		simpleChar(1, 5, 10, "i", 10),
	}
	doc := model.NewDocument()
	doc.Pages = []*model.Page{{Characters: chars}}

	Form(doc, config.Default())

	require.Len(t, doc.Pages[0].Words, 1)
	assert.Equal(t, "hi", doc.Pages[0].Words[0].Text)
	assert.Equal(t, 0, doc.Pages[0].Words[0].Rank)
}

func TestFormBreaksOnLargeGap(t *testing.T) {
	chars := []*model.Character{
		simpleChar(0, 0, 5, "a", 10),
		simpleChar(1, 200, 205, "b", 10), // far right: gap exceeds min_word_break_space*10
	}
	doc := model.NewDocument()
	doc.Pages = []*model.Page{{Characters: chars}}

	Form(doc, config.Default())

	require.Len(t, doc.Pages[0].Words, 2)
	assert.Equal(t, "a", doc.Pages[0].Words[0].Text)
	assert.Equal(t, "b", doc.Pages[0].Words[1].Text)
}

func TestFormSkipsMergedDiacriticMarks(t *testing.T) {
	base := simpleChar(0, 0, 5, "a", 10)
	mark := simpleChar(1, 4, 7, "^", 10)
	mark.IsDiacriticMarkOfBase = base
	base.IsBaseOfDiacriticMark = mark
	base.TextWithDiacriticMark = "â"
	base.Pos.Rect = geom.Union(base.Pos.Rect, mark.Pos.Rect) // diacritics.Merge enlarges the base's box
	next := simpleChar(2, 7, 12, "t", 10)

	doc := model.NewDocument()
	doc.Pages = []*model.Page{{Characters: []*model.Character{base, mark, next}}}

	Form(doc, config.Default())

	require.Len(t, doc.Pages[0].Words, 1)
	assert.Equal(t, "ât", doc.Pages[0].Words[0].Text)
	assert.Len(t, doc.Pages[0].Words[0].Characters, 2)
}

func TestFormBreaksOnRotationChange(t *testing.T) {
	a := simpleChar(0, 0, 5, "a", 10)
	b := simpleChar(1, 5, 10, "b", 10)
	b.Pos.Rotation = model.Rotation1

	doc := model.NewDocument()
	doc.Pages = []*model.Page{{Characters: []*model.Character{a, b}}}

	Form(doc, config.Default())

	assert.Len(t, doc.Pages[0].Words, 2)
}
