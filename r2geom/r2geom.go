// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2geom provides planar geometric primitives: robust orientation
// and in-circle predicates, circumcenters, polygon areas and centroids, and
// an orthonormal frame for projecting coplanar 3D points into the plane.

package r2geom

import (
	"github.com/golang/geo/r2"
)

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b r2.Point) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

// Circumcenter returns the center of the circle passing through the three
// points. It reports false if the points are collinear, in which case no
// such circle exists.
func Circumcenter(a, b, c r2.Point) (r2.Point, bool) {
	// Working relative to a keeps the intermediate magnitudes small.
	b = b.Sub(a)
	c = c.Sub(a)

	d := 2 * b.Cross(c)
	if d == 0 {
		return r2.Point{}, false
	}
	b2 := b.Dot(b)
	c2 := c.Dot(c)
	ux := (c.Y*b2 - b.Y*c2) / d
	uy := (b.X*c2 - c.X*b2) / d
	return r2.Point{X: a.X + ux, Y: a.Y + uy}, true
}

// SignedArea returns the signed area of the polygon: positive when its
// vertices wind counterclockwise, negative when they wind clockwise.
func SignedArea(polygon []r2.Point) float64 {
	n := len(polygon)
	var sum float64
	for i, p := range polygon {
		sum += p.Cross(polygon[(i+1)%n])
	}
	return sum / 2
}

// Centroid returns the area-weighted centroid of the polygon. It reports
// false for polygons with zero signed area, for which the centroid is
// undefined.
func Centroid(polygon []r2.Point) (r2.Point, bool) {
	n := len(polygon)
	var area, cx, cy float64
	for i, p := range polygon {
		q := polygon[(i+1)%n]
		cross := p.Cross(q)
		area += cross
		cx += (p.X + q.X) * cross
		cy += (p.Y + q.Y) * cross
	}
	if area == 0 {
		return r2.Point{}, false
	}
	return r2.Point{X: cx / (3 * area), Y: cy / (3 * area)}, true
}
