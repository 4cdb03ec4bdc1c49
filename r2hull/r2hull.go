// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2hull computes convex hulls of planar point sets.

package r2hull

import (
	"sort"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/r2geom"
)

// Hull returns the convex hull of the points in counterclockwise order,
// starting from the lexicographically smallest point. Only hull corners
// are returned: points on the interior of a hull edge are dropped. For
// degenerate inputs the hull collapses to the trivial chain of at most
// two extreme points. The input is not modified; duplicates are
// ignored.
func Hull(points []r2.Point) []r2.Point {
	pts := append([]r2.Point(nil), points...)
	sort.Slice(pts, func(i, j int) bool {
		return pts[i].X < pts[j].X || (pts[i].X == pts[j].X && pts[i].Y < pts[j].Y)
	})
	pts = dedupSorted(pts)

	if len(pts) < 3 {
		return pts
	}

	// Andrew's monotone chain: the lower hull runs left to right, the
	// upper hull right to left, both keeping strictly counterclockwise
	// turns. Their concatenation walks the full hull counterclockwise.
	lower := chain(pts)
	reverse(pts)
	upper := chain(pts)
	return append(lower[:len(lower)-1], upper[:len(upper)-1]...)
}

// chain builds one hull chain over the ordered points, popping every
// vertex that does not make a strict left turn.
func chain(pts []r2.Point) []r2.Point {
	var h []r2.Point
	for _, p := range pts {
		for len(h) >= 2 && r2geom.Orient(h[len(h)-2], h[len(h)-1], p) != r2geom.CounterClockwise {
			h = h[:len(h)-1]
		}
		h = append(h, p)
	}
	return h
}

func dedupSorted(pts []r2.Point) []r2.Point {
	out := pts[:0]
	for i, p := range pts {
		if i == 0 || p != pts[i-1] {
			out = append(out, p)
		}
	}
	return out
}

func reverse(pts []r2.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}
