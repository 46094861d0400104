/*
 * This file is subject to the terms and conditions defined in
 * file 'LICENSE.md', which is part of this source code package.
 *
 * Adapted from the PDF content-stream transform matrix used to interpret
 * font and CTM transforms during character ingestion (§4.1). The affine
 * algebra is unchanged; only the package and a couple of names moved.
 */

package geom

import (
	"fmt"
	"math"

	"github.com/ad-freiburg/pdftotextplus-go/common"
)

// Matrix is a 2D affine transform in homogeneous coordinates. PDF font and
// CTM transforms are always affine, so 6 of the 9 entries are ever non-fixed.
type Matrix [9]float64

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return NewMatrix(1, 0, 0, 1, 0, 0)
}

// TranslationMatrix returns a matrix that translates by `tx`, `ty`.
func TranslationMatrix(tx, ty float64) Matrix {
	return NewMatrix(1, 0, 0, 1, tx, ty)
}

// NewMatrix returns an affine transform matrix laid out in homogeneous
// coordinates as
//
//	a  b  0
//	c  d  0
//	tx ty 1
func NewMatrix(a, b, c, d, tx, ty float64) Matrix {
	m := Matrix{
		a, b, 0,
		c, d, 0,
		tx, ty, 1,
	}
	m.clampRange()
	return m
}

// String returns a string describing `m`.
func (m Matrix) String() string {
	a, b, c, d, tx, ty := m[0], m[1], m[3], m[4], m[6], m[7]
	return fmt.Sprintf("[%7.4f,%7.4f,%7.4f,%7.4f:%7.4f,%7.4f]", a, b, c, d, tx, ty)
}

// Scale returns `m` pre-multiplied by a scaling of `xScale`,`yScale`.
func (m Matrix) Scale(xScale, yScale float64) Matrix {
	return m.Mult(NewMatrix(xScale, 0, 0, yScale, 0, 0))
}

// Rotate returns `m` pre-multiplied by a rotation of `theta` degrees.
func (m Matrix) Rotate(theta float64) Matrix {
	sin, cos := math.Sincos(theta / 180.0 * math.Pi)
	return m.Mult(NewMatrix(cos, -sin, sin, cos, 0, 0))
}

// Concat sets `m` to `b` x `m`.
func (m *Matrix) Concat(b Matrix) {
	*m = Matrix{
		b[0]*m[0] + b[1]*m[3], b[0]*m[1] + b[1]*m[4], 0,
		b[3]*m[0] + b[4]*m[3], b[3]*m[1] + b[4]*m[4], 0,
		b[6]*m[0] + b[7]*m[3] + m[6], b[6]*m[1] + b[7]*m[4] + m[7], 1,
	}
	m.clampRange()
}

// Mult returns `b` x `m`.
func (m Matrix) Mult(b Matrix) Matrix {
	m.Concat(b)
	return m
}

// Translate returns `m` translated by `tx`,`ty`.
func (m Matrix) Translate(tx, ty float64) Matrix {
	return NewMatrix(m[0], m[1], m[3], m[4], m[6]+tx, m[7]+ty)
}

// Translation returns the translation part of `m`.
func (m Matrix) Translation() (float64, float64) {
	return m[6], m[7]
}

// Transform returns coordinates `x`,`y` transformed by `m`.
func (m Matrix) Transform(x, y float64) (float64, float64) {
	xp := x*m[0] + y*m[1] + m[6]
	yp := x*m[3] + y*m[4] + m[7]
	return xp, yp
}

// TransformVector applies only the linear part of `m` to (x,y), ignoring its
// translation. Used to transform a glyph-space vector through a font/CTM
// matrix before it is placed at a draw position (§4.1 responsibility 4).
func (m Matrix) TransformVector(x, y float64) (float64, float64) {
	xp := x*m[0] + y*m[1]
	yp := x*m[3] + y*m[4]
	return xp, yp
}

// ScalingFactorX returns the X scaling of the affine transform.
func (m Matrix) ScalingFactorX() float64 {
	return math.Hypot(m[0], m[1])
}

// ScalingFactorY returns the Y scaling of the affine transform.
func (m Matrix) ScalingFactorY() float64 {
	return math.Hypot(m[3], m[4])
}

// Angle returns the angle of the affine transform in `m` in degrees.
func (m Matrix) Angle() float64 {
	theta := math.Atan2(-m[1], m[0])
	if theta < 0.0 {
		theta += 2 * math.Pi
	}
	return theta / math.Pi * 180.0
}

// Inverse returns the inverse of `m` and a boolean to indicate whether the
// inverse exists.
func (m Matrix) Inverse() (Matrix, bool) {
	a, b := m[0], m[1]
	c, d := m[3], m[4]
	tx, ty := m[6], m[7]
	det := a*d - b*c
	if math.Abs(det) < minDeterminant {
		return Matrix{}, false
	}
	aI, bI := d/det, -b/det
	cI, dI := -c/det, a/det
	txI := -(aI*tx + cI*ty)
	tyI := -(bI*tx + dI*ty)
	return NewMatrix(aI, bI, cI, dI, txI, tyI), true
}

// clampRange forces `m` to reasonable values. Guards against crazy values
// coming from a corrupt content stream upstream.
func (m *Matrix) clampRange() {
	for i, x := range m {
		if x > maxAbsNumber {
			common.Log.Debug("CLAMP: %g -> %g", x, maxAbsNumber)
			m[i] = maxAbsNumber
		} else if x < -maxAbsNumber {
			common.Log.Debug("CLAMP: %g -> %g", x, -maxAbsNumber)
			m[i] = -maxAbsNumber
		}
	}
}

// RotationClass chooses one of the four rotation classes {0,1,2,3} by the
// signs and relative magnitudes of the matrix's a,b,c,d components (§4.1
// responsibility 3). This mirrors the sign-pattern test a font/CTM
// transform decomposition would use to recover a dominant quadrant without
// needing a unique rotation angle (2D affine decomposition isn't unique,
// see Rotate/Angle above).
func (m Matrix) RotationClass() int {
	a, b, c, d := m[0], m[1], m[3], m[4]
	switch {
	case a > 0 && math.Abs(a) >= math.Abs(b) && d > 0 && math.Abs(d) >= math.Abs(c):
		return 0
	case b < 0 && math.Abs(b) >= math.Abs(a) && c > 0 && math.Abs(c) >= math.Abs(d):
		return 1
	case a < 0 && math.Abs(a) >= math.Abs(b) && d < 0 && math.Abs(d) >= math.Abs(c):
		return 2
	case b > 0 && math.Abs(b) >= math.Abs(a) && c < 0 && math.Abs(c) >= math.Abs(d):
		return 3
	default:
		return 0
	}
}

const maxAbsNumber = 1e9
const minDeterminant = 1.0e-6
