/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Adapted from unipdf's pdf/model/textencoding/glyphs_glyphlist.go
 * GlyphToRune: a small built-in name table plus the uniXXXX regex fallback,
 * used when draw_char's own Unicode data is missing or broken (§4.1
 * responsibility 2).
 */

package ingest

import (
	"regexp"
	"strconv"
)

// MissingGlyphRune is returned when a glyph name resolves to nothing.
const MissingGlyphRune = '�'

// glyphNameToRune covers the glyph names common in PDF simple-font
// encodings whose Unicode value isn't recoverable from the "uniXXXX"
// convention: punctuation, ligatures, and the standalone diacritic forms
// §4.2's diacritic merger looks for after this table runs.
var glyphNameToRune = map[string]rune{
	"space":        ' ',
	"quotesingle":  '\'',
	"quoteright":   '’',
	"quoteleft":    '‘',
	"grave":        '`',
	"acute":        '´',
	"circumflex":   '^',
	"tilde":        '~',
	"dieresis":     '¨',
	"ring":         '˚',
	"cedilla":      '¸',
	"macron":       '¯',
	"breve":        '˘',
	"dotaccent":    '˙',
	"ogonek":       '˛',
	"caron":        'ˇ',
	"hungarumlaut": '˝',
	"degree":       '°',
	"emdash":       '—',
	"endash":       '–',
	"bullet":       '•',
	"ellipsis":     '…',
	"fi":           'ﬁ',
	"fl":           'ﬂ',
	"ff":           'ﬀ',
	"ffi":          'ﬃ',
	"ffl":          'ﬄ',
	"germandbls":   'ß',
	"dotlessi":     'ı',
	"florin":       'ƒ',
	"minus":        '−',
	"periodcentered": '·',
}

// glyphAliases maps a handful of alternate spellings onto the canonical
// names above, the same way unipdf's own glyphAliases table does.
var glyphAliases = map[string]string{
	"f_f":       "ff",
	"f_f_i":     "ffi",
	"f_f_l":     "ffl",
	"f_i":       "fi",
	"f_l":       "fl",
	"quoteleft ": "quoteleft",
}

var (
	reUniEncoding = regexp.MustCompile(`^uni([0-9A-Fa-f]{4,6})$`)
	reUEncoding   = regexp.MustCompile(`^u([0-9A-Fa-f]{4,6})$`)
)

// GlyphToRune resolves a PostScript glyph name to a rune, consulting the
// built-in table first, then the "uniXXXX"/"uXXXX" Adobe naming
// conventions. Returns false if nothing matches.
func GlyphToRune(glyph string) (rune, bool) {
	if alias, ok := glyphAliases[glyph]; ok {
		glyph = alias
	}
	if r, ok := glyphNameToRune[glyph]; ok {
		return r, true
	}
	if groups := reUniEncoding.FindStringSubmatch(glyph); groups != nil {
		if n, err := strconv.ParseInt(groups[1], 16, 32); err == nil {
			return rune(n), true
		}
	}
	if groups := reUEncoding.FindStringSubmatch(glyph); groups != nil {
		if n, err := strconv.ParseInt(groups[1], 16, 32); err == nil {
			return rune(n), true
		}
	}
	return MissingGlyphRune, false
}
