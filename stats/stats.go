/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.3's three statistics passes: character statistics (after
 * diacritic merging, before word formation), word statistics (after word
 * formation, before segmentation), and line statistics (after line
 * detection). Each pass enriches doc's aggregates in place.
 */

package stats

import (
	"math"

	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// CharacterStats computes the document's most-frequent font size, most-
// frequent font name, and average character width/height.
func CharacterStats(doc *model.Document, cfg *config.Config) {
	sizeCounter := FloatCounter{}
	nameCounter := StringCounter{}
	var sumWidth, sumHeight float64
	var n int

	doc.AllCharacters(func(_ *model.Page, c *model.Character) {
		sizeCounter.Add(geom.Round(c.FontSize, cfg.FontSizePrecision))
		nameCounter.Add(c.FontName)
		sumWidth += c.Pos.Width()
		sumHeight += c.Pos.Height()
		n++
	})

	if size, ok := sizeCounter.Argmax(); ok {
		doc.MostFrequentFontSize = size
	}
	if name, ok := nameCounter.Argmax(); ok {
		doc.MostFrequentFontName = name
	}
	if n > 0 {
		doc.AvgCharWidth = sumWidth / float64(n)
		doc.AvgCharHeight = sumHeight / float64(n)
	}
}

// WordStats computes the document's most-frequent word height, most-
// frequent horizontal word distance, and most-frequent estimated line
// distance (§4.3).
func WordStats(doc *model.Document, cfg *config.Config) {
	heightCounter := FloatCounter{}
	distanceCounter := FloatCounter{}
	lineDistanceCounter := FloatCounter{}

	for _, page := range doc.Pages {
		words := page.Words
		for i, w := range words {
			heightCounter.Add(geom.Round(w.Pos.Height(), cfg.CoordinatePrecision))
			if i == 0 {
				continue
			}
			prev := words[i-1]
			if prev.Pos.Rotation != w.Pos.Rotation || prev.Pos.WritingMode != w.Pos.WritingMode {
				continue
			}
			if math.Abs(prev.FontSize-doc.MostFrequentFontSize) > cfg.FSEqualTolerance {
				continue
			}
			if math.Abs(w.FontSize-doc.MostFrequentFontSize) > cfg.FSEqualTolerance {
				continue
			}
			ratio := geom.YOverlapRatio(prev.Pos.Rect, w.Pos.Rect)
			if ratio >= cfg.MinYOverlapRatioSameLine {
				gap := w.Pos.RotLeft() - prev.Pos.RotRight()
				distanceCounter.Add(geom.Round(gap, cfg.CoordinatePrecision))
			} else if ratio <= cfg.MaxYOverlapRatioDifferentLine {
				gap := w.Pos.RotUpper() - prev.Pos.RotUpper()
				lineDistanceCounter.Add(geom.Round(math.Abs(gap), cfg.CoordinatePrecision))
			}
		}
	}

	if h, ok := heightCounter.Argmax(); ok {
		doc.MostFrequentWordHeight = h
	}
	if d, ok := distanceCounter.Argmax(); ok {
		doc.MostFrequentWordDistance = d
	}
	if d, ok := lineDistanceCounter.Argmax(); ok {
		doc.MostFrequentEstimatedLineDistance = d
	}
}

// LineStats computes the document-wide and per-font-size most-frequent line
// distance, over adjacent lines within the same segment (§4.3).
func LineStats(doc *model.Document, cfg *config.Config) {
	overall := FloatCounter{}
	perFontSize := map[float64]*FloatCounter{}

	for _, page := range doc.Pages {
		for _, seg := range page.Segments {
			lines := seg.Lines
			for i := 1; i < len(lines); i++ {
				prev, curr := lines[i-1], lines[i]
				if prev.Pos.Rotation != curr.Pos.Rotation || prev.Pos.WritingMode != curr.Pos.WritingMode {
					continue
				}
				gap := curr.BaseBBox.Upper - prev.BaseBBox.Lower
				if gap < 0 {
					gap = 0
				}
				rounded := geom.Round(gap, cfg.LineDistancePrecision)
				overall.Add(rounded)

				if geom.Equal(prev.FontSize, curr.FontSize) {
					fs := geom.Round(curr.FontSize, cfg.FontSizePrecision)
					sub, ok := perFontSize[fs]
					if !ok {
						sub = &FloatCounter{}
						perFontSize[fs] = sub
					}
					sub.Add(rounded)
				}
			}
		}
	}

	if d, ok := overall.Argmax(); ok {
		doc.MostFrequentLineDistance = d
	}
	for fs, counter := range perFontSize {
		if d, ok := counter.Argmax(); ok {
			doc.PerFontSizeLineDistance[fs] = d
		}
	}
}
