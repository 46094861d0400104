/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

// Document is the pipeline's root entity (§3). It is created once by
// ingestion and mutated in place by each statistics pass; nothing else
// replaces it wholesale.
type Document struct {
	Pages []*Page
	Fonts map[string]*FontInfo

	// Aggregates, written by stats.CharacterStats/WordStats/LineStats (§4.3).
	MostFrequentFontSize            float64
	MostFrequentFontName            string
	AvgCharWidth                    float64
	AvgCharHeight                   float64
	MostFrequentWordHeight          float64
	MostFrequentWordDistance         float64 // most-frequent horizontal word gap.
	MostFrequentEstimatedLineDistance float64 // most-frequent vertical word gap.
	MostFrequentLineDistance         float64
	// PerFontSizeLineDistance maps a rounded font size to the most-frequent
	// line distance observed between lines sharing that font size (§4.3).
	PerFontSizeLineDistance map[float64]float64
}

// NewDocument returns an empty Document ready for ingestion.
func NewDocument() *Document {
	return &Document{
		Fonts:                   map[string]*FontInfo{},
		PerFontSizeLineDistance: map[float64]float64{},
	}
}

// NumPages returns the number of pages, used by the role-tensor's
// page-normalization feature (§4.10).
func (d *Document) NumPages() int { return len(d.Pages) }

// AllCharacters iterates every character on every page, in page then
// extraction order. Used by the statistics engine (§4.3) and diacritic
// merging (§4.2).
func (d *Document) AllCharacters(yield func(p *Page, c *Character)) {
	for _, p := range d.Pages {
		for _, c := range p.Characters {
			yield(p, c)
		}
	}
}

// AllWords iterates every word on every page.
func (d *Document) AllWords(yield func(p *Page, w *Word)) {
	for _, p := range d.Pages {
		for _, w := range p.Words {
			yield(p, w)
		}
	}
}

// AllLines iterates every line of every segment of every page.
func (d *Document) AllLines(yield func(p *Page, s *PageSegment, l *TextLine)) {
	for _, p := range d.Pages {
		for _, s := range p.Segments {
			for _, l := range s.Lines {
				yield(p, s, l)
			}
		}
	}
}

// AllBlocks iterates every block of every page, in page.Blocks order (i.e.
// reading order once ReadingOrderDetector has run).
func (d *Document) AllBlocks(yield func(p *Page, b *TextBlock)) {
	for _, p := range d.Pages {
		for _, b := range p.Blocks {
			yield(p, b)
		}
	}
}
