/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import "github.com/ad-freiburg/pdftotextplus-go/geom"

// TextLine is words clustered onto one baseline within a PageSegment (§4.8).
type TextLine struct {
	Pos       Position
	BaselineY float64
	Text      string
	Words     []*Word
	Rank      int // rank within the owning segment.
	FontName  string
	FontSize  float64
	MaxFontSize float64

	// BaseBBox is the bounding box over the line's non-sub/superscript
	// characters (§4.5, §4.8, the glossary's "Base bounding box of a line").
	BaseBBox geom.Rect

	LeftMargin  float64 // relative to the owning block's trim box.
	RightMargin float64

	PrevLine *TextLine // document order.
	NextLine *TextLine

	PrevSibling *TextLine // indentation hierarchy (§4.8).
	NextSibling *TextLine
	Parent      *TextLine
}

func (l *TextLine) Position() Position { return l.Pos }
