/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 */

package model

import "github.com/ad-freiburg/pdftotextplus-go/geom"

// Figure is a non-text page element capturing everything drawn inside one
// clip box that differs from the page's own clip box (§3, §4.1
// responsibility 6). It owns its own characters, shapes and graphics, the
// same way a Page owns the top-level ones.
type Figure struct {
	Pos     Position
	ClipBox geom.Rect

	Characters []*Character
	Shapes     []*Shape
	Graphics   []*Graphic
}

func (f *Figure) Position() Position { return f.Pos }

// Shape is a stroked or filled path, clipped to its containing page or
// figure's clip box (§4.1).
type Shape struct {
	Pos  Position
	Rank int
}

func (s *Shape) Position() Position { return s.Pos }

// Graphic is an image draw operation, clipped the same way as a Shape.
type Graphic struct {
	Pos  Position
	Rank int
}

func (g *Graphic) Position() Position { return g.Pos }
