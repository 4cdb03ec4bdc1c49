// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2geom

import (
	"errors"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// ErrDegenerateFrame is returned by NewFrame when the three defining
// points are collinear or coincident, leaving the plane underdetermined.
var ErrDegenerateFrame = errors.New("r2geom: degenerate frame basis")

// Frame is a right-handed orthonormal coordinate frame for a plane
// embedded in 3D space. It maps between 3D points on the plane and their
// 2D coordinates within it, so coplanar point sets in space can be fed to
// the planar triangulation and Voronoi algorithms.
type Frame struct {
	Origin r3.Vector
	XAxis  r3.Vector
	YAxis  r3.Vector
	Normal r3.Vector
}

// NewFrame builds the frame with the given origin whose X axis points
// from origin toward xPoint and whose plane contains yPoint, with the Y
// axis on yPoint's side. It returns ErrDegenerateFrame if the three
// points are collinear or coincident.
func NewFrame(origin, xPoint, yPoint r3.Vector) (Frame, error) {
	dx := xPoint.Sub(origin)
	n := dx.Cross(yPoint.Sub(origin))
	if dx.Norm2() == 0 || n.Norm2() == 0 {
		return Frame{}, ErrDegenerateFrame
	}

	xAxis := dx.Normalize()
	normal := n.Normalize()
	return Frame{
		Origin: origin,
		XAxis:  xAxis,
		YAxis:  normal.Cross(xAxis),
		Normal: normal,
	}, nil
}

// Project returns the 2D coordinates of the 3D point within the frame's
// plane. Points off the plane are projected onto it orthogonally.
func (f Frame) Project(p r3.Vector) r2.Point {
	d := p.Sub(f.Origin)
	return r2.Point{X: d.Dot(f.XAxis), Y: d.Dot(f.YAxis)}
}

// Unproject returns the 3D point on the frame's plane corresponding to
// the given 2D coordinates.
func (f Frame) Unproject(p r2.Point) r3.Vector {
	return f.Origin.Add(f.XAxis.Mul(p.X)).Add(f.YAxis.Mul(p.Y))
}
