/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

func newTestIngestor() (*Ingestor, *model.Document) {
	doc := model.NewDocument()
	ig := NewIngestor(doc, NewFontResolver())
	return ig, doc
}

func TestDrawCharRoutesToPage(t *testing.T) {
	ig, doc := newTestIngestor()
	pageBox := geom.Rect{Left: 0, Upper: 0, Right: 600, Lower: 800}
	ig.StartPage(1, pageBox)
	ig.UpdateFont(FontDescriptor{FontName: "Helvetica", Ascent: 0.75, Descent: -0.2, FontMatrix: geom.NewMatrix(0.001, 0, 0, 0.001, 0, 0)})

	state := RenderState{FontName: "Helvetica", FontSize: 12, Matrix: geom.IdentityMatrix(), ClipBox: pageBox}
	err := ig.DrawChar(state, 10, 100, 6, 0, 'A', 1, "A", []rune{'A'})
	require.NoError(t, err)
	require.NoError(t, ig.EndPage())

	require.Len(t, doc.Pages, 1)
	page := doc.Pages[0]
	require.Len(t, page.Characters, 1)
	c := page.Characters[0]
	assert.Equal(t, "A", c.Text)
	assert.Equal(t, 0, c.Rank)
	assert.InDelta(t, 10.0, c.Pos.Left, 1e-9)
	assert.InDelta(t, 100.0-0.75*12, c.Pos.Upper, 1e-9)
}

func TestDrawCharDiscardsWhitespace(t *testing.T) {
	ig, doc := newTestIngestor()
	pageBox := geom.Rect{Left: 0, Upper: 0, Right: 600, Lower: 800}
	ig.StartPage(1, pageBox)
	ig.UpdateFont(FontDescriptor{FontName: "Helvetica", Ascent: 0.75, Descent: -0.2})

	state := RenderState{FontName: "Helvetica", FontSize: 12, Matrix: geom.IdentityMatrix(), ClipBox: pageBox}
	err := ig.DrawChar(state, 10, 100, 6, 0, ' ', 1, "space", []rune{' '})
	require.NoError(t, err)
	require.NoError(t, ig.EndPage())

	assert.Empty(t, doc.Pages[0].Characters)
}

func TestDrawCharRoutesToFigure(t *testing.T) {
	ig, doc := newTestIngestor()
	pageBox := geom.Rect{Left: 0, Upper: 0, Right: 600, Lower: 800}
	figBox := geom.Rect{Left: 50, Upper: 50, Right: 200, Lower: 200}
	ig.StartPage(1, pageBox)
	ig.UpdateFont(FontDescriptor{FontName: "Helvetica", Ascent: 0.75, Descent: -0.2})

	state := RenderState{FontName: "Helvetica", FontSize: 12, Matrix: geom.IdentityMatrix(), ClipBox: figBox}
	require.NoError(t, ig.DrawChar(state, 60, 80, 6, 0, 'x', 1, "x", []rune{'x'}))
	require.NoError(t, ig.DrawChar(state, 66, 80, 6, 0, 'y', 1, "y", []rune{'y'}))
	require.NoError(t, ig.EndPage())

	page := doc.Pages[0]
	assert.Empty(t, page.Characters)
	require.Len(t, page.Figures, 1)
	assert.Len(t, page.Figures[0].Characters, 2)
	assert.Equal(t, figBox, page.Figures[0].ClipBox)
}

func TestGlyphBoxWinsWhenTaller(t *testing.T) {
	ig, doc := newTestIngestor()
	pageBox := geom.Rect{Left: 0, Upper: 0, Right: 600, Lower: 800}
	ig.StartPage(1, pageBox)
	ig.UpdateFont(FontDescriptor{
		FontName:   "Symbol",
		Ascent:     0.5,
		Descent:    -0.1,
		FontMatrix: geom.NewMatrix(0.001, 0, 0, 0.001, 0, 0),
		// A tall glyph (e.g. a large summation sign) in glyph space: once
		// scaled by the 0.001 font matrix its 8000-unit height (8.0) beats
		// the rendering-matrix box's 12*0.6=7.2.
		GlyphBoxes: map[string]geom.Rect{
			"summation": {Left: 0, Upper: -7200, Right: 700, Lower: 800},
		},
	})

	state := RenderState{FontName: "Symbol", FontSize: 12, Matrix: geom.IdentityMatrix(), ClipBox: pageBox}
	require.NoError(t, ig.DrawChar(state, 10, 100, 8, 0, 0x2211, 1, "summation", nil))
	require.NoError(t, ig.EndPage())

	c := doc.Pages[0].Characters[0]
	assert.InDelta(t, 8.0, c.Pos.Height(), 1e-9)
	assert.InDelta(t, 92.8, c.Pos.Upper, 1e-9)
}

func TestStrokeBuildsShapeClippedToBox(t *testing.T) {
	ig, doc := newTestIngestor()
	pageBox := geom.Rect{Left: 0, Upper: 0, Right: 600, Lower: 800}
	ig.StartPage(1, pageBox)

	state := RenderState{Matrix: geom.IdentityMatrix(), ClipBox: pageBox}
	require.NoError(t, ig.Stroke(state, geom.Rect{Left: -10, Upper: -10, Right: 100, Lower: 100}))
	require.NoError(t, ig.EndPage())

	require.Len(t, doc.Pages[0].Shapes, 1)
	shape := doc.Pages[0].Shapes[0]
	assert.Equal(t, 0.0, shape.Pos.Left)
	assert.Equal(t, 0.0, shape.Pos.Upper)
}

func TestStrokeDroppedWhenOutsideClipBox(t *testing.T) {
	ig, doc := newTestIngestor()
	pageBox := geom.Rect{Left: 0, Upper: 0, Right: 600, Lower: 800}
	ig.StartPage(1, pageBox)

	state := RenderState{Matrix: geom.IdentityMatrix(), ClipBox: pageBox}
	require.NoError(t, ig.Stroke(state, geom.Rect{Left: -100, Upper: -100, Right: -10, Lower: -10}))
	require.NoError(t, ig.EndPage())

	assert.Empty(t, doc.Pages[0].Shapes)
}

func TestFontResolvedOncePerDocument(t *testing.T) {
	ig, doc := newTestIngestor()
	ig.StartPage(1, geom.Rect{Right: 600, Lower: 800})
	ig.UpdateFont(FontDescriptor{FontName: "Helvetica", Ascent: 0.8, Descent: -0.2})
	f1 := ig.currentFont
	ig.UpdateFont(FontDescriptor{FontName: "Helvetica", Ascent: 0.8, Descent: -0.2})
	f2 := ig.currentFont
	require.NoError(t, ig.EndPage())

	assert.Same(t, f1, f2)
	assert.Len(t, doc.Fonts, 1)
}
