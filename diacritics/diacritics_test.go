/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package diacritics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func charAt(rank int, left, right float64, text string, unicodes []rune) *model.Character {
	return &model.Character{
		Pos:      model.Position{Rect: geom.Rect{Left: left, Upper: 0, Right: right, Lower: 10}},
		Text:     text,
		Unicodes: unicodes,
		Rank:     rank,
	}
}

func TestMergeOntoBaseWithLargerOverlap(t *testing.T) {
	base := charAt(0, 10, 20, "a", []rune{'a'})
	mark := charAt(1, 19, 23, "^", []rune{'^'}) // overlaps base [19,20] of width 4 -> ratio 1/4
	next := charAt(2, 40, 50, "b", []rune{'b'})

	doc := model.NewDocument()
	doc.Pages = []*model.Page{{Characters: []*model.Character{base, mark, next}}}

	Merge(doc)

	require.NotNil(t, base.IsBaseOfDiacriticMark)
	assert.Same(t, mark, base.IsBaseOfDiacriticMark)
	assert.Same(t, base, mark.IsDiacriticMarkOfBase)
	assert.Equal(t, "â", base.TextWithDiacriticMark)
	assert.Equal(t, "a", base.Text) // untouched
	assert.InDelta(t, 23.0, base.Pos.Right, 1e-9)
}

func TestMergeOrphanWhenNoOverlap(t *testing.T) {
	mark := charAt(0, 500, 510, "°", []rune{'°'})
	doc := model.NewDocument()
	doc.Pages = []*model.Page{{Characters: []*model.Character{mark}}}

	Merge(doc)

	assert.Nil(t, mark.IsDiacriticMarkOfBase)
}

func TestNonMarkCharacterUntouched(t *testing.T) {
	a := charAt(0, 0, 10, "a", []rune{'a'})
	b := charAt(1, 10, 20, "b", []rune{'b'})
	doc := model.NewDocument()
	doc.Pages = []*model.Page{{Characters: []*model.Character{a, b}}}

	Merge(doc)

	assert.Nil(t, a.IsBaseOfDiacriticMark)
	assert.Nil(t, b.IsDiacriticMarkOfBase)
}

func TestMergeWithinFigureCharacters(t *testing.T) {
	base := charAt(0, 10, 20, "o", []rune{'o'})
	mark := charAt(1, 19, 23, "¨", []rune{'¨'})
	doc := model.NewDocument()
	doc.Pages = []*model.Page{{Figures: []*model.Figure{{Characters: []*model.Character{base, mark}}}}}

	Merge(doc)

	assert.Same(t, mark, base.IsBaseOfDiacriticMark)
	assert.Equal(t, "ö", base.TextWithDiacriticMark)
}
