// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2poly triangulates simple polygons in the plane.
//
// The polygon is first decomposed into y-monotone pieces with a plane
// sweep, then each piece is triangulated with a two-chain stack scan.
// Both stages work on vertex indices, so the result references the
// caller's points and introduces no new ones.

package r2poly

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/r2geom"
)

// ErrDegeneratePolygon is returned for inputs that do not bound an area:
// fewer than three vertices, zero signed area, or a repeated consecutive
// vertex.
var ErrDegeneratePolygon = errors.New("r2poly: degenerate polygon")

// Triangulate splits a simple polygon into triangles that use only the
// polygon's own vertices. The polygon is a ring without the closing
// vertex, in either winding order; it must not self-intersect. Every
// triangle is a triple of indices into polygon in counterclockwise
// order, and the result holds exactly len(polygon)-2 triangles.
func Triangulate(polygon []r2.Point) ([][3]int, error) {
	n := len(polygon)
	if n < 3 {
		return nil, fmt.Errorf("polygon has %d vertices: %w", n, ErrDegeneratePolygon)
	}
	for i, p := range polygon {
		if p == polygon[(i+1)%n] {
			return nil, fmt.Errorf("repeated vertex %v at %d: %w", p, i, ErrDegeneratePolygon)
		}
	}
	area := r2geom.SignedArea(polygon)
	if area == 0 {
		return nil, fmt.Errorf("polygon has zero area: %w", ErrDegeneratePolygon)
	}

	// Sweep positions run counterclockwise; ring maps them back to input
	// indices. Clockwise input is walked in reverse.
	ring := make([]int, n)
	for i := range ring {
		if area > 0 {
			ring[i] = i
		} else {
			ring[i] = n - 1 - i
		}
	}
	s := newSweep(polygon, ring)

	diagonals, err := s.makeMonotone()
	if err != nil {
		return nil, err
	}

	cycle := make([]int, n)
	for i := range cycle {
		cycle[i] = i
	}
	triangles := make([][3]int, 0, n-2)
	for _, piece := range splitCycle(cycle, diagonals) {
		triangles = s.triangulateMonotone(piece, triangles)
	}
	return triangles, nil
}
