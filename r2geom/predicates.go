// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2geom

// This file contains orientation and in-circle predicates that are
// guaranteed to produce correct, consistent results. They are also
// relatively efficient. This is achieved by computing conservative error
// bounds and falling back to exact arithmetic when the floating-point
// result is uncertain. Incremental triangulation algorithms require such
// predicates: a single misclassified sign corrupts mesh topology in a way
// no later step can repair.

import (
	"math"
	"math/big"

	"github.com/golang/geo/r2"
)

const (
	// dblError is the maximum relative rounding error of a single
	// floating-point operation, 2^-53.
	dblError = 1.110223024625156e-16

	// orientErrorBound is the maximum rounding error of the 2x2
	// determinant computed by triageOrient, as a multiple of the sum of
	// the absolute values of its two products. The coefficient is
	// Shewchuk's orient2d A-estimate:
	//
	//  |fl(det) - det| <= (3 + 16e) * e * detSum
	orientErrorBound = (3 + 16*dblError) * dblError

	// inCircleErrorBound plays the same role for the 3x3 lifted
	// determinant computed by triageInCircle, as a multiple of its
	// permanent. The coefficient is Shewchuk's incircle A-estimate:
	//
	//  |fl(det) - det| <= (10 + 96e) * e * permanent
	inCircleErrorBound = (10 + 96*dblError) * dblError
)

// Direction is an indication of the ordering of a set of points.
type Direction int

// These are the three options for the direction of a set of points.
const (
	Clockwise        Direction = -1
	Collinear        Direction = 0
	CounterClockwise Direction = 1
)

// CirclePosition is an indication of where a point lies relative to a
// circle.
type CirclePosition int

// These are the three options for the position of a point relative to a
// circle.
const (
	OutsideCircle CirclePosition = -1
	OnCircle      CirclePosition = 0
	InsideCircle  CirclePosition = 1
)

// newBigFloat constructs a new big.Float with maximum precision.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

// Orient returns a Direction representing the ordering of the points.
// CounterClockwise is returned if the points describe a left turn at b,
// Clockwise for a right turn, and Collinear if all three lie on a single
// line (which includes any two points being equal).
//
// The result is the sign of the exact determinant
//
//	| a.X-c.X  a.Y-c.Y |
//	| b.X-c.X  b.Y-c.Y |
//
// which equals twice the signed area of the triangle abc. All coordinates
// must be finite.
//
// Orient satisfies the following conditions:
//
//	(1) Orient(a,b,c) == Collinear if and only if the points are collinear
//	(2) Orient(b,c,a) == Orient(a,b,c) for all a,b,c
//	(3) Orient(c,b,a) == -Orient(a,b,c) for all a,b,c
func Orient(a, b, c r2.Point) Direction {
	if d, ok := triageOrient(a, b, c); ok {
		return d
	}
	return exactOrient(a, b, c)
}

// triageOrient returns the direction sign of the points computed with
// floating-point arithmetic. It reports false if the sign is uncertain,
// in which case the caller must fall back to exactOrient.
func triageOrient(a, b, c r2.Point) (Direction, bool) {
	detLeft := (a.X - c.X) * (b.Y - c.Y)
	detRight := (a.Y - c.Y) * (b.X - c.X)
	det := detLeft - detRight

	maxErr := orientErrorBound * (math.Abs(detLeft) + math.Abs(detRight))
	if det > maxErr {
		return CounterClockwise, true
	}
	if det < -maxErr {
		return Clockwise, true
	}
	return Collinear, false
}

// exactOrient returns the direction sign of the points computed with
// exact arithmetic. big.Float values of maximum precision represent every
// intermediate product below exactly, so no rounding is performed and the
// sign is exact.
func exactOrient(a, b, c r2.Point) Direction {
	acx := newBigFloat().Sub(big.NewFloat(a.X), big.NewFloat(c.X))
	acy := newBigFloat().Sub(big.NewFloat(a.Y), big.NewFloat(c.Y))
	bcx := newBigFloat().Sub(big.NewFloat(b.X), big.NewFloat(c.X))
	bcy := newBigFloat().Sub(big.NewFloat(b.Y), big.NewFloat(c.Y))

	detLeft := newBigFloat().Mul(acx, bcy)
	detRight := newBigFloat().Mul(acy, bcx)
	return Direction(newBigFloat().Sub(detLeft, detRight).Sign())
}

// InCircle returns a CirclePosition representing the position of d
// relative to the circumcircle of the triangle abc. The triangle must be
// oriented counterclockwise; passing a clockwise triangle swaps the
// Inside/Outside results. Exactly cocircular configurations report
// OnCircle. All coordinates must be finite.
//
// The result is the sign of the exact 3x3 determinant of the rows
//
//	| x-d.X  y-d.Y  (x-d.X)^2+(y-d.Y)^2 |  for (x,y) in {a, b, c}
//
// the classic lifted-paraboloid form of the in-circle test.
func InCircle(a, b, c, d r2.Point) CirclePosition {
	if pos, ok := triageInCircle(a, b, c, d); ok {
		return pos
	}
	return exactInCircle(a, b, c, d)
}

// triageInCircle returns the in-circle position computed with
// floating-point arithmetic. It reports false if the sign is uncertain,
// in which case the caller must fall back to exactInCircle.
func triageInCircle(a, b, c, d r2.Point) (CirclePosition, bool) {
	adx, ady := a.X-d.X, a.Y-d.Y
	bdx, bdy := b.X-d.X, b.Y-d.Y
	cdx, cdy := c.X-d.X, c.Y-d.Y

	bdxcdy, cdxbdy := bdx*cdy, cdx*bdy
	alift := adx*adx + ady*ady

	cdxady, adxcdy := cdx*ady, adx*cdy
	blift := bdx*bdx + bdy*bdy

	adxbdy, bdxady := adx*bdy, bdx*ady
	clift := cdx*cdx + cdy*cdy

	det := alift*(bdxcdy-cdxbdy) + blift*(cdxady-adxcdy) + clift*(adxbdy-bdxady)

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	maxErr := inCircleErrorBound * permanent
	if det > maxErr {
		return InsideCircle, true
	}
	if det < -maxErr {
		return OutsideCircle, true
	}
	return OnCircle, false
}

// exactInCircle returns the in-circle position computed with exact
// arithmetic, in the same way exactOrient does.
func exactInCircle(a, b, c, d r2.Point) CirclePosition {
	adx := newBigFloat().Sub(big.NewFloat(a.X), big.NewFloat(d.X))
	ady := newBigFloat().Sub(big.NewFloat(a.Y), big.NewFloat(d.Y))
	bdx := newBigFloat().Sub(big.NewFloat(b.X), big.NewFloat(d.X))
	bdy := newBigFloat().Sub(big.NewFloat(b.Y), big.NewFloat(d.Y))
	cdx := newBigFloat().Sub(big.NewFloat(c.X), big.NewFloat(d.X))
	cdy := newBigFloat().Sub(big.NewFloat(c.Y), big.NewFloat(d.Y))

	alift := newBigFloat().Add(newBigFloat().Mul(adx, adx), newBigFloat().Mul(ady, ady))
	blift := newBigFloat().Add(newBigFloat().Mul(bdx, bdx), newBigFloat().Mul(bdy, bdy))
	clift := newBigFloat().Add(newBigFloat().Mul(cdx, cdx), newBigFloat().Mul(cdy, cdy))

	bcdet := newBigFloat().Sub(newBigFloat().Mul(bdx, cdy), newBigFloat().Mul(cdx, bdy))
	cadet := newBigFloat().Sub(newBigFloat().Mul(cdx, ady), newBigFloat().Mul(adx, cdy))
	abdet := newBigFloat().Sub(newBigFloat().Mul(adx, bdy), newBigFloat().Mul(bdx, ady))

	det := newBigFloat().Add(
		newBigFloat().Add(newBigFloat().Mul(alift, bcdet), newBigFloat().Mul(blift, cadet)),
		newBigFloat().Mul(clift, abdet))
	return CirclePosition(det.Sign())
}
