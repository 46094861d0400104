/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * FontResolver backs §4.1 responsibility 1 ("creating a FontInfo on first
 * use") when the external font-file parser can't or won't supply a
 * FontDescriptor (unembedded font, parsing disabled). It falls back to a
 * locally installed system font matched by family name via
 * github.com/adrg/sysfont, the way a browser or a terminal falls back to a
 * substitute typeface rather than failing outright.
 */

package ingest

import (
	"strings"

	"github.com/adrg/sysfont"

	"github.com/ad-freiburg/pdftotextplus-go/common"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// Standard typographic approximations used when a substitute font carries
// no metrics of its own: most outline fonts sit close to these fractions of
// the em square.
const (
	fallbackAscent  = 0.75
	fallbackDescent = -0.25
)

// FontResolver resolves a font name to a *model.FontInfo, preferring an
// embedded FontDescriptor and falling back to an installed system font.
type FontResolver struct {
	finder *sysfont.Finder
	cache  map[string]*sysfont.Font
}

// NewFontResolver returns a resolver backed by the local system font index.
func NewFontResolver() *FontResolver {
	return &FontResolver{
		finder: sysfont.NewFinder(nil),
		cache:  map[string]*sysfont.Font{},
	}
}

// Resolve builds a *model.FontInfo for `desc`. When desc is the zero value
// (no embedded descriptor available), it matches fontName against the
// system font index instead.
func (r *FontResolver) Resolve(fontName string, desc FontDescriptor) *model.FontInfo {
	if desc.FontMatrix != (geom.Matrix{}) || desc.Ascent != 0 || desc.Descent != 0 {
		return &model.FontInfo{
			FontName:   fontName,
			Ascent:     desc.Ascent,
			Descent:    desc.Descent,
			Weight:     desc.Weight,
			IsItalic:   desc.IsItalic,
			IsSerif:    desc.IsSerif,
			IsType3:    desc.IsType3,
			IsSymbolic: desc.IsSymbolic,
			FontMatrix: desc.FontMatrix,
			GlyphBoxes: desc.GlyphBoxes,
		}
	}

	sf := r.matchSystemFont(fontName)
	weight := 400.0
	isItalic := false
	isSerif := strings.Contains(strings.ToLower(fontName), "serif") ||
		strings.Contains(strings.ToLower(fontName), "times") ||
		strings.Contains(strings.ToLower(fontName), "georgia")
	if sf != nil {
		switch sf.Style {
		case sysfont.StyleBold:
			weight = 700
		case sysfont.StyleItalic:
			isItalic = true
		case sysfont.StyleBoldItalic:
			weight = 700
			isItalic = true
		}
		common.Log.Debug("font %q resolved to system font %q (family %q)", fontName, sf.Filename, sf.Family)
	} else {
		common.Log.Warning("font %q not embedded and not found on system, using generic metrics", fontName)
	}
	// Bold/italic tokens in the PostScript name itself override the style
	// sysfont reports, since many name-only fonts never matched at all.
	lower := strings.ToLower(fontName)
	if strings.Contains(lower, "bold") {
		weight = 700
	}
	if strings.Contains(lower, "italic") || strings.Contains(lower, "oblique") {
		isItalic = true
	}

	return &model.FontInfo{
		FontName:   fontName,
		Ascent:     fallbackAscent,
		Descent:    fallbackDescent,
		Weight:     weight,
		IsItalic:   isItalic,
		IsSerif:    isSerif,
		FontMatrix: geom.NewMatrix(0.001, 0, 0, 0.001, 0, 0),
	}
}

func (r *FontResolver) matchSystemFont(fontName string) *sysfont.Font {
	if sf, ok := r.cache[fontName]; ok {
		return sf
	}
	family := baseFamilyName(fontName)
	sf := r.finder.Match(family)
	r.cache[fontName] = sf
	return sf
}

// baseFamilyName strips the subset tag ("ABCDEF+") and style suffixes
// ("-Bold", ",Italic") PDF font names commonly carry, leaving a family name
// a system font index can match against.
func baseFamilyName(fontName string) string {
	name := fontName
	if idx := strings.Index(name, "+"); idx == 6 {
		name = name[idx+1:]
	}
	for _, sep := range []string{"-", ","} {
		if idx := strings.Index(name, sep); idx > 0 {
			name = name[:idx]
		}
	}
	return name
}
