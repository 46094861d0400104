/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package role

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/bpe"
	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func testBlockWithText(left, upper, right, lower float64, fontName string, fontSize float64, text string) *model.TextBlock {
	return &model.TextBlock{
		Pos:   model.Position{Rect: geom.Rect{Left: left, Upper: upper, Right: right, Lower: lower}},
		Lines: []*model.TextLine{{FontName: fontName, FontSize: fontSize, Text: text}},
	}
}

func TestBuildLayoutTensorNormalizesCoordinatesAndFontSize(t *testing.T) {
	doc := model.NewDocument()
	doc.Fonts["Bold"] = &model.FontInfo{FontName: "Bold", Weight: 700, IsItalic: true}
	page := &model.Page{PageNum: 1, Width: 100, Height: 200}

	b := testBlockWithText(10, 20, 90, 100, "Bold", 12, "Hello World")

	row := BuildLayoutTensor(b, page, doc, 10, 14)

	require.Len(t, row, NumLayoutFeatures)
	assert.Equal(t, 0.1, row[1])  // left/width
	assert.Equal(t, 0.5, row[2])  // (height-lower)/height
	assert.Equal(t, 0.9, row[3])  // right/width
	assert.Equal(t, 0.9, row[4])  // (height-upper)/height
	assert.Equal(t, 0.5, row[5])  // fontSize normalized
	assert.Equal(t, 1.0, row[6])  // is_bold
	assert.Equal(t, 1.0, row[7])  // is_italic
	assert.Equal(t, 0.0, row[8])  // contains '@'
	assert.Equal(t, 0.0, row[9])  // first-char-is-digit
}

func TestBuildLayoutTensorDetectsAtSignAndLeadingDigit(t *testing.T) {
	doc := model.NewDocument()
	page := &model.Page{PageNum: 1, Width: 100, Height: 100}
	b := testBlockWithText(0, 0, 10, 10, "Arial", 10, "1 user@example.com")

	row := BuildLayoutTensor(b, page, doc, 10, 10)

	assert.Equal(t, 1.0, row[8])
	assert.Equal(t, 1.0, row[9])
}

func TestPercentWordsStartingUppercase(t *testing.T) {
	assert.Equal(t, 0.5, percentWordsStartingUppercase("Hello world Goodbye world"))
	assert.Equal(t, 0.0, percentWordsStartingUppercase(""))
}

func TestPercentUppercaseChars(t *testing.T) {
	assert.InDelta(t, 0.5, percentUppercaseChars("ABcd"), 1e-9)
}

func TestBuildWordsTensorIsPaddedToFixedLength(t *testing.T) {
	enc := bpe.NewEncoder(map[string]int32{"a": 0})
	b := testBlockWithText(0, 0, 10, 10, "Arial", 10, "a")

	got := BuildWordsTensor(b, enc)
	assert.Len(t, got, WordsTensorLength)
}

func TestDetectLeavesRolesUntouchedWhenDisabled(t *testing.T) {
	doc := model.NewDocument()
	page := &model.Page{PageNum: 1, Width: 100, Height: 100}
	b := testBlockWithText(0, 0, 10, 10, "Arial", 10, "text")
	b.Role = model.RoleTitle
	page.Blocks = []*model.TextBlock{b}
	doc.Pages = []*model.Page{page}

	cfg := config.Default()
	cfg.DisableSemanticRolesPrediction = true

	Detect(doc, cfg, DefaultClassifier{}, bpe.NewEncoder(map[string]int32{}))

	assert.Equal(t, model.RoleTitle, b.Role, "disabled prediction must not touch existing roles")
}

type fixedClassifier struct{ role model.Role }

func (f fixedClassifier) Classify(layout [][]float64, words [][]int32) [][]float64 {
	out := make([][]float64, len(layout))
	for i := range layout {
		row := make([]float64, model.NumRoles)
		row[f.role] = 1
		out[i] = row
	}
	return out
}

func TestDetectAssignsArgmaxRoleFromClassifier(t *testing.T) {
	doc := model.NewDocument()
	page := &model.Page{PageNum: 1, Width: 100, Height: 100}
	b := testBlockWithText(0, 0, 10, 10, "Arial", 10, "text")
	page.Blocks = []*model.TextBlock{b}
	doc.Pages = []*model.Page{page}

	Detect(doc, config.Default(), fixedClassifier{role: model.RoleHeading}, bpe.NewEncoder(map[string]int32{}))

	assert.Equal(t, model.RoleHeading, b.Role)
}
