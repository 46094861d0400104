/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Models §9 Design Notes' "Polymorphic element lists": page segmentation and
 * reading order both treat (Word | Figure | Shape | Graphic | TextBlock)
 * uniformly through an interface that exposes only a Position. Rather than a
 * hand-rolled tagged variant/enum, this leans on Go's structural typing: all
 * five concrete types already implement Bounded, so Element is just that
 * interface under the "polymorphic element" vocabulary §9 uses for it.
 */

package model

// Element is the common view page segmentation (§4.7) and reading-order
// detection (§4.10) use over the five kinds listed in §9: *Word, *Figure,
// *Shape, *Graphic, *TextBlock.
type Element = Bounded

// Ranked is implemented by the element kinds that carry an extraction rank
// (§3 glossary): *Word, *Shape, *Graphic. Figures and TextBlocks don't.
type Ranked interface {
	Element
	ElementRank() int
}

// ElementRank implementations.
func (w *Word) ElementRank() int    { return w.Rank }
func (s *Shape) ElementRank() int   { return s.Rank }
func (g *Graphic) ElementRank() int { return g.Rank }
