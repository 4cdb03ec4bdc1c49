// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"github.com/golang/geo/r2"
)

// clipToRect intersects a counterclockwise polygon with the box by
// clipping it against each box edge in turn (Sutherland-Hodgman). The
// result is counterclockwise; it is nil when the polygon misses the box
// entirely.
func clipToRect(polygon []r2.Point, box r2.Rect) []r2.Point {
	corners := box.Vertices()
	for i := range corners {
		polygon = clipHalfPlane(polygon, corners[i], corners[(i+1)%4])
		if len(polygon) == 0 {
			return nil
		}
	}
	return polygon
}

// clipHalfPlane keeps the part of the polygon on or to the left of the
// directed line through a and b, inserting the crossing points of edges
// that straddle it.
func clipHalfPlane(polygon []r2.Point, a, b r2.Point) []r2.Point {
	dir := b.Sub(a)
	out := make([]r2.Point, 0, len(polygon)+1)
	for i, p := range polygon {
		q := polygon[(i+1)%len(polygon)]
		pIn := dir.Cross(p.Sub(a)) >= 0
		qIn := dir.Cross(q.Sub(a)) >= 0
		switch {
		case pIn && qIn:
			out = append(out, q)
		case pIn:
			out = append(out, lineCrossing(p, q, a, b))
		case qIn:
			out = append(out, lineCrossing(p, q, a, b), q)
		}
	}
	return out
}

// lineCrossing returns the point where segment pq crosses the line
// through a and b. The segment must straddle the line.
func lineCrossing(p, q, a, b r2.Point) r2.Point {
	dir := b.Sub(a)
	dp := dir.Cross(p.Sub(a))
	dq := dir.Cross(q.Sub(a))
	return p.Add(q.Sub(p).Mul(dp / (dp - dq)))
}
