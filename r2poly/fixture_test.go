// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2poly

import (
	"embed"
	"strconv"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/r2geom"
)

//go:embed fixtures
var fixtures embed.FS

// loadFixture reads fixtures/<name>.svg and returns its polygon in
// counterclockwise order. SVG y grows downward, so the stored rings come
// out clockwise and are reversed here.
func loadFixture(t *testing.T, name string) []r2.Point {
	t.Helper()

	fixture, err := fixtures.Open("fixtures/" + name + ".svg")
	if err != nil {
		t.Fatalf("open fixture %q: %v", name, err)
	}
	defer fixture.Close()

	root, err := svgparser.Parse(fixture, true)
	if err != nil {
		t.Fatalf("parse fixture %q: %v", name, err)
	}
	elements := root.FindAll("polygon")
	if len(elements) != 1 {
		t.Fatalf("fixture %q has %d polygons, want 1", name, len(elements))
	}

	var points []r2.Point
	for _, field := range strings.Fields(elements[0].Attributes["points"]) {
		coords := strings.Split(field, ",")
		if len(coords) != 2 {
			t.Fatalf("fixture %q has invalid point %q", name, field)
		}
		x, err := strconv.ParseFloat(coords[0], 64)
		if err != nil {
			t.Fatalf("fixture %q has invalid x %q: %v", name, coords[0], err)
		}
		y, err := strconv.ParseFloat(coords[1], 64)
		if err != nil {
			t.Fatalf("fixture %q has invalid y %q: %v", name, coords[1], err)
		}
		points = append(points, r2.Point{X: x, Y: y})
	}

	if r2geom.SignedArea(points) < 0 {
		for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
			points[i], points[j] = points[j], points[i]
		}
	}
	return points
}
