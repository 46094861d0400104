/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package dehyphen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func TestDetectMergesHyphenatedWordAcrossLines(t *testing.T) {
	lastWord := &model.Word{Text: "exam-"}
	firstWord := &model.Word{Text: "ple"}
	line1 := &model.TextLine{Words: []*model.Word{lastWord}}
	line2 := &model.TextLine{Words: []*model.Word{firstWord}}
	block := &model.TextBlock{Lines: []*model.TextLine{line1, line2}}

	page := &model.Page{Blocks: []*model.TextBlock{block}}
	doc := model.NewDocument()
	doc.Pages = []*model.Page{page}

	Detect(doc)

	require.NotNil(t, lastWord.IsFirstPartOfHyphenatedWord)
	require.NotNil(t, firstWord.IsSecondPartOfHyphenatedWord)
	assert.Same(t, lastWord.IsFirstPartOfHyphenatedWord, firstWord.IsSecondPartOfHyphenatedWord)
	assert.Equal(t, "example", lastWord.IsFirstPartOfHyphenatedWord.Text)
}

func TestDetectSkipsLinesWithoutTrailingHyphen(t *testing.T) {
	lastWord := &model.Word{Text: "plain"}
	firstWord := &model.Word{Text: "next"}
	line1 := &model.TextLine{Words: []*model.Word{lastWord}}
	line2 := &model.TextLine{Words: []*model.Word{firstWord}}
	block := &model.TextBlock{Lines: []*model.TextLine{line1, line2}}

	page := &model.Page{Blocks: []*model.TextBlock{block}}
	doc := model.NewDocument()
	doc.Pages = []*model.Page{page}

	Detect(doc)

	assert.Nil(t, lastWord.IsFirstPartOfHyphenatedWord)
	assert.Nil(t, firstWord.IsSecondPartOfHyphenatedWord)
}
