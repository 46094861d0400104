/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Defines the callback contract §4.1 says the core consumes from the
 * external content-stream interpreter: start_page, update_font, draw_char,
 * stroke, fill, draw_image, end_page. The interpreter itself (parsing the
 * PDF byte stream) is out of scope (§1); this package is only the consumer
 * side of that contract plus the per-event processing it specifies.
 */

package ingest

import (
	"image/color"

	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// RenderState is the per-operation graphics state the interpreter supplies
// with every draw event: the active font, the combined text-and-CTM
// rendering matrix, the current clip box, and paint attributes.
type RenderState struct {
	FontName    string
	FontSize    float64
	Matrix      geom.Matrix
	ClipBox     geom.Rect
	Color       color.Color
	Opacity     float64
	WritingMode model.WritingMode
}

// FontDescriptor is what the external font-file parser yields for a font
// the interpreter is about to use (§3's FontInfo fields, pre-resolution).
type FontDescriptor struct {
	FontName   string
	Ascent     float64
	Descent    float64
	Weight     float64
	IsItalic   bool
	IsSerif    bool
	IsType3    bool
	IsSymbolic bool
	FontMatrix geom.Matrix
	GlyphBoxes map[string]geom.Rect
}

// Interpreter is the callback surface an external content-stream
// interpreter drives. Consumer is *Ingestor; kept as an interface so tests
// can drive ingestion without a real interpreter.
type Interpreter interface {
	StartPage(pageNum int, clipBox geom.Rect)
	UpdateFont(desc FontDescriptor)
	// DrawChar carries the glyph name alongside the params spec §4.1 lists
	// (char_code, byte_count, unicodes): the built-in glyph-name-to-Unicode
	// table (responsibility 2) needs a name to look up, and the interpreter
	// has one even when its own Unicode mapping is missing or broken.
	DrawChar(state RenderState, x, y, advX, advY float64, charCode uint32, byteCount int, glyphName string, unicodes []rune) error
	Stroke(state RenderState, pathBox geom.Rect) error
	Fill(state RenderState, pathBox geom.Rect) error
	DrawImage(state RenderState, imageBox geom.Rect) error
	EndPage() error
}
