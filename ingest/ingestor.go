/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Ingestor implements §4.1's six draw_char responsibilities plus the
 * shape/graphic handling in §4.1's closing paragraph. It is the only part
 * of the pipeline that talks to the external content-stream interpreter.
 */

package ingest

import (
	"github.com/ad-freiburg/pdftotextplus-go/common"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// Ingestor turns an external interpreter's event stream into a populated
// model.Document. It implements Interpreter.
type Ingestor struct {
	Doc      *model.Document
	Resolver *FontResolver

	page         *model.Page
	figuresByBox map[geom.Rect]*model.Figure
	rank         int

	currentFont     *model.FontInfo
	currentFontName string
}

// NewIngestor returns an Ingestor that appends pages to `doc`.
func NewIngestor(doc *model.Document, resolver *FontResolver) *Ingestor {
	return &Ingestor{Doc: doc, Resolver: resolver}
}

// StartPage begins a new page (§4.1 contract: start_page(num, clip_box)).
func (ig *Ingestor) StartPage(pageNum int, clipBox geom.Rect) {
	ig.page = model.NewPage(pageNum, clipBox)
	ig.figuresByBox = map[geom.Rect]*model.Figure{}
	ig.rank = 0
}

// UpdateFont resolves `desc` to a shared *model.FontInfo, creating one on
// first use (§4.1 responsibility 1) and caching it on the document so every
// character using the same font shares one FontInfo.
func (ig *Ingestor) UpdateFont(desc FontDescriptor) {
	fi, ok := ig.Doc.Fonts[desc.FontName]
	if !ok {
		fi = ig.Resolver.Resolve(desc.FontName, desc)
		ig.Doc.Fonts[desc.FontName] = fi
		common.Log.Debug("registered font %q (bold=%v italic=%v)", desc.FontName, fi.IsBold(), fi.IsItalic)
	}
	ig.currentFont = fi
	ig.currentFontName = desc.FontName
}

// DrawChar processes one glyph-draw event end to end (§4.1 responsibilities
// 2-6).
func (ig *Ingestor) DrawChar(state RenderState, x, y, advX, advY float64, charCode uint32, byteCount int, glyphName string, unicodes []rune) error {
	text, runes := ig.decodeText(charCode, glyphName, unicodes)

	// Responsibility 5: discard whitespace-only characters (including NBSP).
	if model.IsWhitespaceOnly(text) {
		return nil
	}

	rotation := model.Rotation(state.Matrix.RotationClass())
	if state.WritingMode == model.WritingModeVertical {
		rotation = rotation.Add(1)
	}

	box := ig.charBox(state, x, y, advX, advY, glyphName)

	rank := ig.rank
	ig.rank++

	c := &model.Character{
		Pos: model.Position{
			PageNum:     ig.page.PageNum,
			Rect:        box,
			Rotation:    rotation,
			WritingMode: state.WritingMode,
		},
		BaselineY: y,
		Text:      text,
		Unicodes:  runes,
		GlyphName: glyphName,
		FontName:  ig.currentFontName,
		FontSize:  state.FontSize,
		Font:      ig.currentFont,
		Color:     state.Color,
		Opacity:   state.Opacity,
		Rank:      rank,
	}

	ig.routeCharacter(state.ClipBox, c)
	return nil
}

// decodeText builds the UTF-8 text and rune sequence for a draw_char event.
// Prefers the interpreter's own Unicode data; falls back to the built-in
// glyph-name table when it's empty or only the replacement character (§4.1
// responsibility 2).
func (ig *Ingestor) decodeText(charCode uint32, glyphName string, unicodes []rune) (string, []rune) {
	if len(unicodes) > 0 && !(len(unicodes) == 1 && unicodes[0] == MissingGlyphRune) {
		return string(unicodes), unicodes
	}
	if glyphName != "" {
		if r, ok := GlyphToRune(glyphName); ok {
			return string(r), []rune{r}
		}
	}
	if charCode != 0 {
		r := rune(charCode)
		return string(r), []rune{r}
	}
	return "", nil
}

// charBox computes the character's bounding box two ways and keeps the one
// with the larger vertical extent (§4.1 responsibility 4).
func (ig *Ingestor) charBox(state RenderState, x, y, advX, advY float64, glyphName string) geom.Rect {
	box1 := ig.renderingMatrixBox(state, x, y, advX, advY)

	if ig.currentFont == nil {
		return box1
	}
	glyphBox, ok := ig.currentFont.GlyphBox(glyphName)
	if !ok {
		return box1
	}
	box2 := ig.glyphBox(state, x, y, glyphBox)
	if box2.Height() > box1.Height() {
		return box2
	}
	return box1
}

// renderingMatrixBox derives a box from the text rendering matrix plus the
// font's ascent/descent, scaled by the font size.
func (ig *Ingestor) renderingMatrixBox(state RenderState, x, y, advX, advY float64) geom.Rect {
	ascent, descent := fallbackAscent, fallbackDescent
	if ig.currentFont != nil {
		ascent, descent = ig.currentFont.Ascent, ig.currentFont.Descent
	}
	top := y - ascent*state.FontSize
	bottom := y - descent*state.FontSize
	left, right := x, x+advX
	if advX < 0 {
		left, right = x+advX, x
	}
	_ = advY // vertical writing mode advance is folded into rotation, not box height here.
	return geom.Rect{Left: left, Upper: top, Right: right, Lower: bottom}
}

// glyphBox transforms the font's parsed glyph bounding box through the font
// matrix and rendering matrix, then places it at (x,y).
func (ig *Ingestor) glyphBox(state RenderState, x, y float64, glyphBox geom.Rect) geom.Rect {
	total := ig.currentFont.FontMatrix.Mult(state.Matrix)
	corners := [4][2]float64{
		{glyphBox.Left, glyphBox.Upper},
		{glyphBox.Right, glyphBox.Upper},
		{glyphBox.Left, glyphBox.Lower},
		{glyphBox.Right, glyphBox.Lower},
	}
	minX, minY := total.TransformVector(corners[0][0], corners[0][1])
	maxX, maxY := minX, minY
	for _, c := range corners[1:] {
		px, py := total.TransformVector(c[0], c[1])
		if px < minX {
			minX = px
		}
		if px > maxX {
			maxX = px
		}
		if py < minY {
			minY = py
		}
		if py > maxY {
			maxY = py
		}
	}
	return geom.Rect{Left: x + minX, Upper: y + minY, Right: x + maxX, Lower: y + maxY}
}

// Stroke builds a Shape from a stroked path (§4.1 closing paragraph).
func (ig *Ingestor) Stroke(state RenderState, pathBox geom.Rect) error {
	return ig.addShape(state, pathBox)
}

// Fill builds a Shape from a filled path.
func (ig *Ingestor) Fill(state RenderState, pathBox geom.Rect) error {
	return ig.addShape(state, pathBox)
}

func (ig *Ingestor) addShape(state RenderState, pathBox geom.Rect) error {
	box, ok := geom.Intersection(pathBox, state.ClipBox)
	if !ok || box.IsEmpty() {
		return nil
	}
	rank := ig.rank
	ig.rank++
	s := &model.Shape{
		Pos:  model.Position{PageNum: ig.page.PageNum, Rect: box, WritingMode: state.WritingMode},
		Rank: rank,
	}
	ig.routeShape(state.ClipBox, s)
	return nil
}

// DrawImage builds a Graphic from an image-draw operation.
func (ig *Ingestor) DrawImage(state RenderState, imageBox geom.Rect) error {
	box, ok := geom.Intersection(imageBox, state.ClipBox)
	if !ok || box.IsEmpty() {
		return nil
	}
	rank := ig.rank
	ig.rank++
	g := &model.Graphic{
		Pos:  model.Position{PageNum: ig.page.PageNum, Rect: box, WritingMode: state.WritingMode},
		Rank: rank,
	}
	ig.routeGraphic(state.ClipBox, g)
	return nil
}

// EndPage finalizes the current page and appends it to the document.
func (ig *Ingestor) EndPage() error {
	ig.Doc.Pages = append(ig.Doc.Pages, ig.page)
	ig.page = nil
	ig.figuresByBox = nil
	return nil
}

// figureFor returns the figure owning `clipBox`, creating one seeded with
// `seedBox` if none exists yet, or nil if clipBox is the page's own clip box
// (§4.1 responsibility 6).
func (ig *Ingestor) figureFor(clipBox, seedBox geom.Rect) *model.Figure {
	if clipBox == ig.page.ClipBox {
		return nil
	}
	fig, ok := ig.figuresByBox[clipBox]
	if !ok {
		fig = &model.Figure{
			Pos:     model.Position{PageNum: ig.page.PageNum, Rect: seedBox},
			ClipBox: clipBox,
		}
		ig.figuresByBox[clipBox] = fig
		ig.page.Figures = append(ig.page.Figures, fig)
		return fig
	}
	fig.Pos.Rect = geom.Union(fig.Pos.Rect, seedBox)
	return fig
}

func (ig *Ingestor) routeCharacter(clipBox geom.Rect, c *model.Character) {
	if fig := ig.figureFor(clipBox, c.Pos.Rect); fig != nil {
		fig.Characters = append(fig.Characters, c)
		return
	}
	ig.page.Characters = append(ig.page.Characters, c)
}

func (ig *Ingestor) routeShape(clipBox geom.Rect, s *model.Shape) {
	if fig := ig.figureFor(clipBox, s.Pos.Rect); fig != nil {
		fig.Shapes = append(fig.Shapes, s)
		return
	}
	ig.page.Shapes = append(ig.page.Shapes, s)
}

func (ig *Ingestor) routeGraphic(clipBox geom.Rect, g *model.Graphic) {
	if fig := ig.figureFor(clipBox, g.Pos.Rect); fig != nil {
		fig.Graphics = append(fig.Graphics, g)
		return
	}
	ig.page.Graphics = append(ig.page.Graphics, g)
}
