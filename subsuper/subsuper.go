/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Implements §4.5's SubSuperscriptDetector: runs after TextLineDetector,
 * flags characters whose font size is smaller than the document's
 * most-frequent one and whose baseline sits off the line's own baseline,
 * and recomputes each line's base bounding box over the characters left
 * unflagged.
 */

package subsuper

import (
	"github.com/ad-freiburg/pdftotextplus-go/config"
	"github.com/ad-freiburg/pdftotextplus-go/geom"
	"github.com/ad-freiburg/pdftotextplus-go/model"
)

// Detect runs SubSuperscriptDetector over every line of every page.
func Detect(doc *model.Document, cfg *config.Config) {
	for _, page := range doc.Pages {
		for _, seg := range page.Segments {
			for _, line := range seg.Lines {
				detectLine(line, doc, cfg)
			}
		}
	}
}

func detectLine(line *model.TextLine, doc *model.Document, cfg *config.Config) {
	// buildLine already seeded BaseBBox with the full line box; narrow it to
	// the characters left unflagged below rather than accumulating from zero,
	// so a line with no sub/superscripts at all keeps its real bbox.
	var bbox geom.Rect
	started := false

	for _, w := range line.Words {
		for _, c := range w.Characters {
			isSmall := doc.MostFrequentFontSize-c.FontSize > cfg.FSEqualTolerance
			switch {
			case isSmall && c.BaselineY < line.BaselineY-cfg.CoordsEqualTolerance:
				c.IsSuperscript = true
			case isSmall && c.BaselineY > line.BaselineY+cfg.CoordsEqualTolerance:
				c.IsSubscript = true
			}
			if c.IsSuperscript || c.IsSubscript {
				continue
			}
			if !started {
				bbox = c.Pos.Rect
				started = true
			} else {
				bbox = geom.Union(bbox, c.Pos.Rect)
			}
		}
	}
	if started {
		line.BaseBBox = bbox
	}
}
