/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Bridges a real PDF file to the ingest package's Interpreter contract
 * (§4.1): it drives unidoc/unipdf/v4's content-stream processor page by
 * page and translates BT/ET text-positioning operators, Tj/TJ/'/" text
 * showing, path-painting operators and Do image XObjects into
 * StartPage/UpdateFont/DrawChar/Stroke/Fill/DrawImage/EndPage calls.
 *
 * Grounded on extractor/text.go's content-stream walk (BT/ET state, q/Q via
 * the processor's own graphics stack, Tf/Tm/Td/TD/T* text-matrix tracking),
 * rewritten against unipdf's public API only (no internal/textencoding or
 * internal/transform import) and against the ingest event contract instead
 * of unipdf's own PageText/TextMark model.
 *
 * Simplifications, documented rather than hidden: Form XObjects are not
 * recursed into; glyph names are not recovered (unipdf exposes no public
 * charcode-to-glyph-name accessor), so DrawChar always passes "" and relies
 * on the interpreter's own Unicode decoding; fill/stroke color is not
 * translated from unipdf's colorspace model; writing mode is always
 * horizontal.
 */

package interp

import (
	"fmt"
	"image/color"
	"os"

	pdfcontent "github.com/unidoc/unipdf/v4/contentstream"
	pdfcore "github.com/unidoc/unipdf/v4/core"
	pdfmodel "github.com/unidoc/unipdf/v4/model"

	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/ingest"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// defaultGlyphWidth is used when a font carries no metrics for a charcode.
const defaultGlyphWidth = 0.6

// defaultColor stands in for the paint color: translating unipdf's
// colorspace-relative PdfColor into image/color.Color is not attempted
// (simplification noted in this file's header comment).
var defaultColor color.Color = color.Black

// Run opens the PDF file at `path` and drives `it` through every page's
// content stream in order.
func Run(path string, it ingest.Interpreter) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader, err := pdfmodel.NewPdfReader(f)
	if err != nil {
		return fmt.Errorf("reading PDF structure of %s: %w", path, err)
	}

	numPages, err := reader.GetNumPages()
	if err != nil {
		return fmt.Errorf("counting pages of %s: %w", path, err)
	}

	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page, err := reader.GetPage(pageNum)
		if err != nil {
			return fmt.Errorf("reading page %d of %s: %w", pageNum, path, err)
		}
		if err := runPage(pageNum, page, it); err != nil {
			return fmt.Errorf("processing page %d of %s: %w", pageNum, path, err)
		}
	}
	return nil
}

// runPage drives one page's content stream through `it`.
func runPage(pageNum int, page *pdfmodel.PdfPage, it ingest.Interpreter) error {
	mediaBox, err := page.GetMediaBox()
	if err != nil {
		return err
	}

	// PDF media boxes are bottom-left-origin, y growing up; the pipeline
	// works in top-left-origin, y growing down (§3). flip maps one to the
	// other and is composed in front of every CTM/Tm product below.
	flip := geom.NewMatrix(1, 0, 0, -1, -mediaBox.Llx, mediaBox.Ury)
	clipBox := geom.Rect{
		Left: 0, Upper: 0,
		Right: mediaBox.Urx - mediaBox.Llx,
		Lower: mediaBox.Ury - mediaBox.Lly,
	}

	it.StartPage(pageNum, clipBox)

	content, err := page.GetAllContentStreams()
	if err != nil {
		return err
	}

	ops, err := pdfcontent.NewContentStreamParser(content).Parse()
	if err != nil {
		return err
	}

	w := &pageWalker{
		it:        it,
		resources: page.Resources,
		clipBox:   clipBox,
		flip:      flip,
		fonts:     map[string]*pdfmodel.PdfFont{},
	}
	w.text.horizScale = 1

	proc := pdfcontent.NewContentStreamProcessor(*ops)
	proc.AddHandler(pdfcontent.HandlerConditionEnumAllOperands, "", w.handle)
	if err := proc.Process(page.Resources); err != nil {
		return err
	}

	return it.EndPage()
}

// textState is the subset of the PDF text object state that affects glyph
// placement; unipdf's processor tracks only the graphics-state color and
// CTM, so BT/ET/Tf/Tm/Td/TD/T*/Tc/Tw/Tz/TL/Ts are all handled here.
type textState struct {
	tm, tlm               geom.Matrix
	font                  *pdfmodel.PdfFont
	fontName              string
	fontSize              float64
	charSpace, wordSpace  float64
	horizScale            float64
	leading, rise         float64
}

// pathState accumulates the bounding box of path-construction operators
// since the last path-painting operator (or `n`), which resets it.
type pathState struct {
	box  geom.Rect
	init bool
}

func (p *pathState) add(x, y float64) {
	if !p.init {
		p.box = geom.Rect{Left: x, Upper: y, Right: x, Lower: y}
		p.init = true
		return
	}
	if x < p.box.Left {
		p.box.Left = x
	}
	if x > p.box.Right {
		p.box.Right = x
	}
	if y < p.box.Upper {
		p.box.Upper = y
	}
	if y > p.box.Lower {
		p.box.Lower = y
	}
}

// pageWalker holds the per-page state that AddHandler's single callback
// closes over: the text state, the accumulated path extent, and a small
// font cache keyed by resource name (unipdf re-parses the font dictionary
// on every GetFontByName call otherwise).
type pageWalker struct {
	it        ingest.Interpreter
	resources *pdfmodel.PdfPageResources
	clipBox   geom.Rect
	flip      geom.Matrix

	text textState
	path pathState

	fonts map[string]*pdfmodel.PdfFont
}

func (w *pageWalker) handle(op *pdfcontent.ContentStreamOperation, gs pdfcontent.GraphicsState, resources *pdfmodel.PdfPageResources) error {
	switch op.Operand {
	case "BT":
		w.text.tm = geom.IdentityMatrix()
		w.text.tlm = geom.IdentityMatrix()
		w.text.charSpace, w.text.wordSpace, w.text.rise = 0, 0, 0
		w.text.horizScale = 1
	case "ET":
		// no state to tear down.
	case "Tf":
		return w.opTf(op)
	case "Tc":
		w.text.charSpace = floatParam(op, 0)
	case "Tw":
		w.text.wordSpace = floatParam(op, 0)
	case "Tz":
		w.text.horizScale = floatParam(op, 0) / 100
	case "TL":
		w.text.leading = floatParam(op, 0)
	case "Ts":
		w.text.rise = floatParam(op, 0)
	case "Td":
		w.opTd(floatParam(op, 0), floatParam(op, 1))
	case "TD":
		ty := floatParam(op, 1)
		w.text.leading = -ty
		w.opTd(floatParam(op, 0), ty)
	case "Tm":
		w.text.tlm = geom.NewMatrix(floatParam(op, 0), floatParam(op, 1), floatParam(op, 2), floatParam(op, 3), floatParam(op, 4), floatParam(op, 5))
		w.text.tm = w.text.tlm
	case "T*":
		w.opTd(0, -w.text.leading)
	case "Tj":
		return w.showText(stringParam(op, 0), gs)
	case "'":
		w.opTd(0, -w.text.leading)
		return w.showText(stringParam(op, 0), gs)
	case "\"":
		w.text.wordSpace = floatParam(op, 0)
		w.text.charSpace = floatParam(op, 1)
		w.opTd(0, -w.text.leading)
		return w.showText(stringParam(op, 2), gs)
	case "TJ":
		return w.showTextArray(op, gs)
	case "re":
		w.opRe(op, gs)
	case "m", "l":
		w.opPoint(op, gs, 0)
	case "c":
		w.opPoint(op, gs, 0)
		w.opPoint(op, gs, 2)
		w.opPoint(op, gs, 4)
	case "v", "y":
		w.opPoint(op, gs, 0)
		w.opPoint(op, gs, 2)
	case "S", "s", "f", "F", "f*", "B", "B*", "b", "b*":
		return w.paintPath(op.Operand, gs)
	case "n":
		w.path = pathState{}
	case "Do":
		return w.opDo(op, gs, resources)
	}
	return nil
}

func floatParam(op *pdfcontent.ContentStreamOperation, i int) float64 {
	if i >= len(op.Params) {
		return 0
	}
	v, _ := pdfcore.GetNumberAsFloat(op.Params[i])
	return v
}

func stringParam(op *pdfcontent.ContentStreamOperation, i int) []byte {
	if i >= len(op.Params) {
		return nil
	}
	b, _ := pdfcore.GetStringBytes(op.Params[i])
	return b
}

func (w *pageWalker) opTd(tx, ty float64) {
	w.text.tlm = w.text.tlm.Mult(geom.TranslationMatrix(tx, ty))
	w.text.tm = w.text.tlm
}

func (w *pageWalker) opTf(op *pdfcontent.ContentStreamOperation) error {
	if len(op.Params) < 1 {
		return nil
	}
	name, ok := pdfcore.GetNameVal(op.Params[0])
	if !ok {
		return nil
	}
	w.text.fontSize = floatParam(op, 1)
	w.text.fontName = name

	font, ok := w.fonts[name]
	if !ok {
		fontObj, found := w.resources.GetFontByName(pdfcore.PdfObjectName(name))
		if found {
			if f, err := pdfmodel.NewPdfFontFromPdfObject(fontObj); err == nil {
				font = f
			}
		}
		if font == nil {
			font = pdfmodel.DefaultFont()
		}
		w.fonts[name] = font
	}
	w.text.font = font

	w.it.UpdateFont(fontDescriptorFor(name, font))
	return nil
}

func fontDescriptorFor(name string, font *pdfmodel.PdfFont) ingest.FontDescriptor {
	desc := ingest.FontDescriptor{FontName: name}
	fd := font.FontDescriptor()
	if fd == nil {
		return desc
	}
	desc.Ascent, desc.Descent = 0.75, -0.25 // typographic fallback until overridden below.
	if a, err := fd.GetAscent(); err == nil && a != 0 {
		desc.Ascent = a / 1000
	}
	if d, err := fd.GetDescent(); err == nil && d != 0 {
		desc.Descent = d / 1000
	}
	if weight, err := pdfcore.GetNumberAsFloat(fd.FontWeight); err == nil {
		desc.Weight = weight
	}
	if angle, err := pdfcore.GetNumberAsFloat(fd.ItalicAngle); err == nil && angle != 0 {
		desc.IsItalic = true
	}
	if flags, err := pdfcore.GetNumberAsFloat(fd.Flags); err == nil {
		bits := int64(flags)
		desc.IsSerif = bits&2 != 0
		desc.IsSymbolic = bits&4 != 0
		if bits&64 != 0 {
			desc.IsItalic = true
		}
	}
	desc.IsType3 = font.Subtype() == "Type3"
	desc.FontMatrix = geom.NewMatrix(0.001, 0, 0, 0.001, 0, 0)
	return desc
}

// moveMatrix is the linear transform from unscaled text space to the
// page's top-left-origin space: Tm, then the content stream's CTM, then
// the media-box flip. renderingMatrix additionally folds in font size,
// horizontal scaling and rise.
func (w *pageWalker) moveMatrix(gs pdfcontent.GraphicsState) geom.Matrix {
	return w.flip.Mult(ctmToGeom(gs).Mult(w.text.tm))
}

func (w *pageWalker) renderingMatrix(gs pdfcontent.GraphicsState) geom.Matrix {
	scale := geom.NewMatrix(w.text.fontSize*w.text.horizScale, 0, 0, w.text.fontSize, 0, w.text.rise)
	return w.moveMatrix(gs).Mult(scale)
}

// ctmToGeom reads the processor's internally-typed CTM field through plain
// array indexing, with no import of unipdf's internal transform package:
// its [9]float64 layout (a,b,_,c,d,_,tx,ty,1) matches geom.Matrix exactly.
func ctmToGeom(gs pdfcontent.GraphicsState) geom.Matrix {
	ctm := gs.CTM
	return geom.NewMatrix(ctm[0], ctm[1], ctm[3], ctm[4], ctm[6], ctm[7])
}

func (w *pageWalker) showText(data []byte, gs pdfcontent.GraphicsState) error {
	if len(data) == 0 || w.text.font == nil {
		return nil
	}
	codes := w.text.font.BytesToCharcodes(data)
	for i, code := range codes {
		unicodes := w.text.font.CharcodesToUnicode(codes[i : i+1])

		w0 := defaultGlyphWidth
		if m, ok := w.text.font.GetCharMetrics(code); ok && m.Wx != 0 {
			w0 = m.Wx / 1000
		}

		isSpace := len(data) == 1 && data[0] == 0x20
		tx := (w0*w.text.fontSize + w.text.charSpace + wordSpaceFor(isSpace, w.text.wordSpace)) * w.text.horizScale

		rm := w.renderingMatrix(gs)
		x, y := rm.Transform(0, 0)
		mm := w.moveMatrix(gs)
		advX, advY := mm.TransformVector(tx, 0)

		byteCount := 1
		if code > 0xFF {
			byteCount = 2
		}

		if err := w.it.DrawChar(ingest.RenderState{
			FontName:    w.text.fontName,
			FontSize:    w.text.fontSize,
			Matrix:      rm,
			ClipBox:     w.clipBox,
			Color:       defaultColor,
			Opacity:     1,
			WritingMode: model.WritingModeHorizontal,
		}, x, y, advX, advY, uint32(code), byteCount, "", unicodes); err != nil {
			return err
		}

		w.opTd(tx, 0)
	}
	return nil
}

func wordSpaceFor(isSpace bool, wordSpace float64) float64 {
	if isSpace {
		return wordSpace
	}
	return 0
}

func (w *pageWalker) showTextArray(op *pdfcontent.ContentStreamOperation, gs pdfcontent.GraphicsState) error {
	if len(op.Params) == 0 {
		return nil
	}
	arr, ok := pdfcore.GetArray(op.Params[0])
	if !ok {
		return nil
	}
	for _, el := range arr.Elements() {
		if b, ok := pdfcore.GetStringBytes(el); ok {
			if err := w.showText(b, gs); err != nil {
				return err
			}
			continue
		}
		if adj, err := pdfcore.GetNumberAsFloat(el); err == nil {
			tx := -adj / 1000 * w.text.fontSize * w.text.horizScale
			w.opTd(tx, 0)
		}
	}
	return nil
}

func (w *pageWalker) opRe(op *pdfcontent.ContentStreamOperation, gs pdfcontent.GraphicsState) {
	if len(op.Params) < 4 {
		return
	}
	x, y := floatParam(op, 0), floatParam(op, 1)
	width, height := floatParam(op, 2), floatParam(op, 3)
	final := w.flip.Mult(ctmToGeom(gs))
	for _, corner := range [4][2]float64{{x, y}, {x + width, y}, {x, y + height}, {x + width, y + height}} {
		px, py := final.Transform(corner[0], corner[1])
		w.path.add(px, py)
	}
}

func (w *pageWalker) opPoint(op *pdfcontent.ContentStreamOperation, gs pdfcontent.GraphicsState, paramOffset int) {
	if len(op.Params) < paramOffset+2 {
		return
	}
	final := w.flip.Mult(ctmToGeom(gs))
	px, py := final.Transform(floatParam(op, paramOffset), floatParam(op, paramOffset+1))
	w.path.add(px, py)
}

func (w *pageWalker) paintPath(operand string, gs pdfcontent.GraphicsState) error {
	defer func() { w.path = pathState{} }()
	if !w.path.init {
		return nil
	}
	state := ingest.RenderState{ClipBox: w.clipBox, Color: defaultColor, Opacity: 1}
	switch operand {
	case "S", "s", "B", "B*", "b", "b*":
		if err := w.it.Stroke(state, w.path.box); err != nil {
			return err
		}
	}
	switch operand {
	case "f", "F", "f*", "B", "B*", "b", "b*":
		if err := w.it.Fill(state, w.path.box); err != nil {
			return err
		}
	}
	return nil
}

// opDo paints an image XObject's unit square through the current CTM; form
// XObjects are not recursed into (§ simplification noted above).
func (w *pageWalker) opDo(op *pdfcontent.ContentStreamOperation, gs pdfcontent.GraphicsState, resources *pdfmodel.PdfPageResources) error {
	if len(op.Params) < 1 {
		return nil
	}
	name, ok := pdfcore.GetNameVal(op.Params[0])
	if !ok {
		return nil
	}
	_, xtype := resources.GetXObjectByName(pdfcore.PdfObjectName(name))
	if xtype != pdfmodel.XObjectTypeImage {
		return nil
	}

	final := w.flip.Mult(ctmToGeom(gs))
	box := geom.Rect{}
	for i, corner := range [4][2]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		px, py := final.Transform(corner[0], corner[1])
		if i == 0 {
			box = geom.Rect{Left: px, Upper: py, Right: px, Lower: py}
			continue
		}
		if px < box.Left {
			box.Left = px
		}
		if px > box.Right {
			box.Right = px
		}
		if py < box.Upper {
			box.Upper = py
		}
		if py > box.Lower {
			box.Lower = py
		}
	}

	return w.it.DrawImage(ingest.RenderState{ClipBox: w.clipBox, Color: defaultColor, Opacity: 1}, box)
}
