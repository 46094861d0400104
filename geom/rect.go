/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Adapted from extractor/text_utils.go's rectUnion/rectIntersection/intersects
 * helpers, generalized from unipdf's bottom-left-origin PdfRectangle to a
 * top-left-origin Rect (§3: origin top-left, x right, y down).
 */

package geom

import "math"

// TOL is the tolerance for coordinates to be considered equal. Big enough to
// absorb rounding error, small enough that point differences aren't visible.
const TOL = 1.0e-6

// IsZero returns true if x is within TOL of 0.0.
func IsZero(x float64) bool {
	return math.Abs(x) < TOL
}

// Equal returns true if a and b are within TOL of each other.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < TOL
}

// Rect is an axis-aligned rectangle: (Left, Upper) is the top-left corner,
// (Right, Lower) is the bottom-right corner, in page-local coordinates.
type Rect struct {
	Left  float64
	Upper float64
	Right float64
	Lower float64
}

// Width returns the rectangle's width.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the rectangle's height.
func (r Rect) Height() float64 { return r.Lower - r.Upper }

// IsEmpty returns true if r has non-positive width or height.
func (r Rect) IsEmpty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Union returns the smallest axis-aligned rectangle that contains `a` and `b`.
func Union(a, b Rect) Rect {
	return Rect{
		Left:  math.Min(a.Left, b.Left),
		Upper: math.Min(a.Upper, b.Upper),
		Right: math.Max(a.Right, b.Right),
		Lower: math.Max(a.Lower, b.Lower),
	}
}

// UnionAll returns the union of all of `rs`, or the zero Rect if `rs` is empty.
func UnionAll(rs ...Rect) Rect {
	if len(rs) == 0 {
		return Rect{}
	}
	u := rs[0]
	for _, r := range rs[1:] {
		u = Union(u, r)
	}
	return u
}

// Intersection returns the largest axis-aligned rectangle contained by both
// `a` and `b`, and whether they intersect at all.
func Intersection(a, b Rect) (Rect, bool) {
	if !Intersects(a, b) {
		return Rect{}, false
	}
	return Rect{
		Left:  math.Max(a.Left, b.Left),
		Right: math.Min(a.Right, b.Right),
		Upper: math.Max(a.Upper, b.Upper),
		Lower: math.Min(a.Lower, b.Lower),
	}, true
}

// Contains returns true if `outer` fully contains `inner`.
func Contains(outer, inner Rect) bool {
	return outer.Left <= inner.Left && inner.Right <= outer.Right &&
		outer.Upper <= inner.Upper && inner.Lower <= outer.Lower
}

// Intersects returns true if `a` and `b` overlap on both axes.
func Intersects(a, b Rect) bool {
	return intersectsX(a, b) && intersectsY(a, b)
}

func intersectsX(a, b Rect) bool {
	return a.Left <= b.Right && b.Left <= a.Right
}

func intersectsY(a, b Rect) bool {
	return a.Upper <= b.Lower && b.Upper <= a.Lower
}

// XOverlap returns the length of the horizontal overlap between `a` and `b` (0 if none).
func XOverlap(a, b Rect) float64 {
	lo := math.Max(a.Left, b.Left)
	hi := math.Min(a.Right, b.Right)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// YOverlap returns the length of the vertical overlap between `a` and `b` (0 if none).
func YOverlap(a, b Rect) float64 {
	lo := math.Max(a.Upper, b.Upper)
	hi := math.Min(a.Lower, b.Lower)
	if hi <= lo {
		return 0
	}
	return hi - lo
}

// XOverlapRatio returns the maximum of overlap/width(a) and overlap/width(b) — the
// "max of the two ratios" pattern used repeatedly for deciding whether two
// elements share a baseline or a word (§4.2, §4.4, §4.7 rule 3).
func XOverlapRatio(a, b Rect) float64 {
	overlap := XOverlap(a, b)
	if overlap <= 0 {
		return 0
	}
	return maxRatio(overlap, a.Width(), b.Width())
}

// YOverlapRatio returns the maximum of overlap/height(a) and overlap/height(b).
func YOverlapRatio(a, b Rect) float64 {
	overlap := YOverlap(a, b)
	if overlap <= 0 {
		return 0
	}
	return maxRatio(overlap, a.Height(), b.Height())
}

func maxRatio(overlap, da, db float64) float64 {
	var ra, rb float64
	if da > 0 {
		ra = overlap / da
	}
	if db > 0 {
		rb = overlap / db
	}
	if ra > rb {
		return ra
	}
	return rb
}

// Round rounds x to prec decimal digits.
func Round(x float64, prec int) float64 {
	p := math.Pow(10, float64(prec))
	return math.Round(x*p) / p
}
