/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §6's two output formats: a plain-text stream and a JSON Lines
 * stream, one record per line, grounded on the field-naming convention of
 * original_source/src/serializers/TextBlocksJsonlSerializer.cpp (the
 * src/serialization/ variant is an unused include-only stub).
 */

package serialize

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

const (
	soh      byte = 0x01 // start-of-heading, marks an emphasized block.
	formFeed byte = 0x0C // page separator when control characters are enabled.
)

// TextOptions configures the plain-text serializer (§6).
type TextOptions struct {
	ShowRoles              bool
	ControlCharacters      bool
	ExcludeSubSuperscripts bool
	// RoleFilter restricts output to these roles; nil or empty means every role.
	RoleFilter map[model.Role]bool
}

// WriteText writes `doc` as a UTF-8 plain-text stream per §6.
func WriteText(w io.Writer, doc *model.Document, opts TextOptions) error {
	var sb strings.Builder
	wroteAny := false

	for _, page := range doc.Pages {
		firstOnPage := true
		for _, b := range page.Blocks {
			if !roleAllowed(b.Role, opts.RoleFilter) {
				continue
			}
			if wroteAny {
				if firstOnPage && opts.ControlCharacters {
					sb.WriteByte(formFeed)
				} else {
					sb.WriteString("\n\n")
				}
			}
			firstOnPage = false
			wroteAny = true
			writeBlockText(&sb, b, opts)
		}
	}

	sb.WriteByte('\n')
	_, err := w.Write([]byte(sb.String()))
	return err
}

func writeBlockText(sb *strings.Builder, b *model.TextBlock, opts TextOptions) {
	if opts.ShowRoles {
		sb.WriteByte('[')
		sb.WriteString(strings.ToUpper(b.Role.String()))
		sb.WriteString("] ")
	}
	if opts.ControlCharacters && b.IsEmphasized {
		sb.WriteByte(soh)
	}
	sb.WriteString(blockWordsText(b, opts.ExcludeSubSuperscripts))
}

// blockWordsText joins a block's words with single spaces. The second part
// of a hyphenated word is skipped; the first part prints the merged text
// built by the dehyphenator (§4.11).
func blockWordsText(b *model.TextBlock, excludeSubSuper bool) string {
	var parts []string
	for _, line := range b.Lines {
		for _, w := range line.Words {
			if w.IsSecondPartOfHyphenatedWord != nil {
				continue
			}
			var text string
			if w.IsFirstPartOfHyphenatedWord != nil {
				text = w.IsFirstPartOfHyphenatedWord.Text
			} else {
				text = wordText(w, excludeSubSuper)
			}
			if text == "" {
				continue
			}
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// wordText returns `w`'s printed text, dropping sub/superscript characters
// when `excludeSubSuper` is set.
func wordText(w *model.Word, excludeSubSuper bool) string {
	if !excludeSubSuper || len(w.Characters) == 0 {
		return w.Text
	}
	var sb strings.Builder
	for _, c := range w.Characters {
		if c.IsSubscript || c.IsSuperscript {
			continue
		}
		sb.WriteString(c.EffectiveText())
	}
	return sb.String()
}

// JSONLOptions configures the JSON-Lines serializer (§6).
type JSONLOptions struct {
	// Units selects which element types to emit: any of "pages", "figures",
	// "shapes", "blocks", "lines", "words", "characters". Empty defaults to
	// {"blocks"}.
	Units []string
	// CoordsPrec is the number of decimals coordinates are rounded to.
	CoordsPrec int
	// RoleFilter restricts blocks (and the lines/words/characters nested
	// under them) to these roles; nil or empty means every role.
	RoleFilter map[model.Role]bool
}

var defaultUnits = []string{"blocks"}

// WriteJSONL writes `doc` as one JSON object per line, per §6. Lines/words/
// characters are walked through page.Blocks rather than the page's flat
// Lines/Words/Characters slices, so they come out in reading order and
// honor RoleFilter the same way blocks do.
func WriteJSONL(w io.Writer, doc *model.Document, opts JSONLOptions) error {
	units := opts.Units
	if len(units) == 0 {
		units = defaultUnits
	}
	want := make(map[string]bool, len(units))
	for _, u := range units {
		want[u] = true
	}

	enc := json.NewEncoder(w)

	for _, page := range doc.Pages {
		if want["pages"] {
			if err := enc.Encode(pageRecord{
				Type:   "page",
				Page:   page.PageNum,
				Width:  geom.Round(page.Width, opts.CoordsPrec),
				Height: geom.Round(page.Height, opts.CoordsPrec),
			}); err != nil {
				return err
			}
		}

		if want["figures"] {
			for _, f := range page.Figures {
				if err := enc.Encode(figureRecord{
					Type: "figure",
					Page: page.PageNum,
					MinX: geom.Round(f.Pos.Left, opts.CoordsPrec),
					MinY: geom.Round(f.Pos.Upper, opts.CoordsPrec),
					MaxX: geom.Round(f.Pos.Right, opts.CoordsPrec),
					MaxY: geom.Round(f.Pos.Lower, opts.CoordsPrec),
				}); err != nil {
					return err
				}
			}
		}

		if want["shapes"] {
			for _, s := range page.Shapes {
				if err := enc.Encode(shapeRecord{
					Type: "shape",
					Page: page.PageNum,
					Rank: s.Rank,
					MinX: geom.Round(s.Pos.Left, opts.CoordsPrec),
					MinY: geom.Round(s.Pos.Upper, opts.CoordsPrec),
					MaxX: geom.Round(s.Pos.Right, opts.CoordsPrec),
					MaxY: geom.Round(s.Pos.Lower, opts.CoordsPrec),
				}); err != nil {
					return err
				}
			}
		}

		if !want["blocks"] && !want["lines"] && !want["words"] && !want["characters"] {
			continue
		}

		for _, b := range page.Blocks {
			if !roleAllowed(b.Role, opts.RoleFilter) {
				continue
			}

			if want["blocks"] {
				if err := enc.Encode(blockRecord{
					Type:     "block",
					Rank:     b.Rank,
					Page:     page.PageNum,
					MinX:     geom.Round(b.Pos.Left, opts.CoordsPrec),
					MinY:     geom.Round(b.Pos.Upper, opts.CoordsPrec),
					MaxX:     geom.Round(b.Pos.Right, opts.CoordsPrec),
					MaxY:     geom.Round(b.Pos.Lower, opts.CoordsPrec),
					Font:     b.FontName(),
					FontSize: b.FontSize(),
					Text:     b.Text(),
					Role:     b.Role.String(),
				}); err != nil {
					return err
				}
			}

			if !want["lines"] && !want["words"] && !want["characters"] {
				continue
			}

			for _, l := range b.Lines {
				if want["lines"] {
					if err := enc.Encode(lineRecord{
						Type:     "line",
						Rank:     l.Rank,
						Page:     page.PageNum,
						MinX:     geom.Round(l.Pos.Left, opts.CoordsPrec),
						MinY:     geom.Round(l.Pos.Upper, opts.CoordsPrec),
						MaxX:     geom.Round(l.Pos.Right, opts.CoordsPrec),
						MaxY:     geom.Round(l.Pos.Lower, opts.CoordsPrec),
						Font:     l.FontName,
						FontSize: l.FontSize,
						Text:     l.Text,
					}); err != nil {
						return err
					}
				}

				if !want["words"] && !want["characters"] {
					continue
				}

				for _, wd := range l.Words {
					if want["words"] {
						if err := enc.Encode(wordRecord{
							Type:     "word",
							Rank:     wd.Rank,
							Page:     page.PageNum,
							MinX:     geom.Round(wd.Pos.Left, opts.CoordsPrec),
							MinY:     geom.Round(wd.Pos.Upper, opts.CoordsPrec),
							MaxX:     geom.Round(wd.Pos.Right, opts.CoordsPrec),
							MaxY:     geom.Round(wd.Pos.Lower, opts.CoordsPrec),
							Font:     wd.FontName,
							FontSize: wd.FontSize,
							Text:     wd.Text,
						}); err != nil {
							return err
						}
					}

					if want["characters"] {
						for _, c := range wd.Characters {
							if err := enc.Encode(characterRecord{
								Type:     "character",
								Rank:     c.Rank,
								Page:     page.PageNum,
								MinX:     geom.Round(c.Pos.Left, opts.CoordsPrec),
								MinY:     geom.Round(c.Pos.Upper, opts.CoordsPrec),
								MaxX:     geom.Round(c.Pos.Right, opts.CoordsPrec),
								MaxY:     geom.Round(c.Pos.Lower, opts.CoordsPrec),
								Font:     c.FontName,
								FontSize: c.FontSize,
								Text:     c.EffectiveText(),
							}); err != nil {
								return err
							}
						}
					}
				}
			}
		}
	}

	return nil
}

func roleAllowed(r model.Role, filter map[model.Role]bool) bool {
	if len(filter) == 0 {
		return true
	}
	return filter[r]
}

type pageRecord struct {
	Type   string  `json:"type"`
	Page   int     `json:"page"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type figureRecord struct {
	Type string  `json:"type"`
	Page int     `json:"page"`
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

type shapeRecord struct {
	Type string  `json:"type"`
	Page int     `json:"page"`
	Rank int     `json:"rank"`
	MinX float64 `json:"min_x"`
	MinY float64 `json:"min_y"`
	MaxX float64 `json:"max_x"`
	MaxY float64 `json:"max_y"`
}

type blockRecord struct {
	Type     string  `json:"type"`
	Rank     int     `json:"rank"`
	Page     int     `json:"page"`
	MinX     float64 `json:"min_x"`
	MinY     float64 `json:"min_y"`
	MaxX     float64 `json:"max_x"`
	MaxY     float64 `json:"max_y"`
	Font     string  `json:"font"`
	FontSize float64 `json:"font_size"`
	Text     string  `json:"text"`
	Role     string  `json:"role"`
}

type lineRecord struct {
	Type     string  `json:"type"`
	Rank     int     `json:"rank"`
	Page     int     `json:"page"`
	MinX     float64 `json:"min_x"`
	MinY     float64 `json:"min_y"`
	MaxX     float64 `json:"max_x"`
	MaxY     float64 `json:"max_y"`
	Font     string  `json:"font"`
	FontSize float64 `json:"font_size"`
	Text     string  `json:"text"`
}

type wordRecord struct {
	Type     string  `json:"type"`
	Rank     int     `json:"rank"`
	Page     int     `json:"page"`
	MinX     float64 `json:"min_x"`
	MinY     float64 `json:"min_y"`
	MaxX     float64 `json:"max_x"`
	MaxY     float64 `json:"max_y"`
	Font     string  `json:"font"`
	FontSize float64 `json:"font_size"`
	Text     string  `json:"text"`
}

type characterRecord struct {
	Type     string  `json:"type"`
	Rank     int     `json:"rank"`
	Page     int     `json:"page"`
	MinX     float64 `json:"min_x"`
	MinY     float64 `json:"min_y"`
	MaxX     float64 `json:"max_x"`
	MaxY     float64 `json:"max_y"`
	Font     string  `json:"font"`
	FontSize float64 `json:"font_size"`
	Text     string  `json:"text"`
}
