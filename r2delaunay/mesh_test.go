// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"testing"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/r2geom"
	"github.com/2dChan/r2voronoi/utils"
)

func TestLocate(t *testing.T) {
	dt := mustFromTriangle(t, pt(0, 0), pt(4, 0), pt(0, 4))

	tests := []struct {
		name     string
		p        r2.Point
		wantLoc  location
		wantEdge int
	}{
		{"interior", pt(1, 1), locInside, 0},
		{"on edge", pt(2, 0), locOnEdge, 0},
		{"on hypotenuse", pt(2, 2), locOnEdge, 1},
		{"on vertex", pt(0, 0), locOnVertex, 0},
		{"beyond an edge", pt(5, 5), locOutside, 1},
		{"beyond a corner", pt(-3, -3), locOutside, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tri, loc, e := dt.locate(tt.p)
			if tri != 0 {
				t.Errorf("dt.locate(%v) triangle = %d, want 0", tt.p, tri)
			}
			if loc != tt.wantLoc || e != tt.wantEdge {
				t.Errorf("dt.locate(%v) = (%v, %v), want (%v, %v)", tt.p, loc, e, tt.wantLoc, tt.wantEdge)
			}
		})
	}
}

func TestLocate_StaleCache(t *testing.T) {
	dt := mustFromTriangle(t, pt(0, 0), pt(4, 0), pt(0, 4))

	dt.last = NoTriangle
	if _, loc, _ := dt.locate(pt(1, 1)); loc != locInside {
		t.Errorf("dt.locate(...) location = %v, want %v", loc, locInside)
	}

	dt.last = 99
	if _, loc, _ := dt.locate(pt(1, 1)); loc != locInside {
		t.Errorf("dt.locate(...) location = %v, want %v", loc, locInside)
	}
}

func TestLocate_ResolvesConsistently(t *testing.T) {
	dt := mustNewTriangulation(t, 300)

	// Probe mesh vertices, midpoints of far-apart vertex pairs, and
	// points beyond the hull, then check each answer against the
	// geometry it claims.
	var probes []r2.Point
	for i := range 25 {
		probes = append(probes, dt.Vertices[i])
		q := dt.Vertices[len(dt.Vertices)-1-i]
		probes = append(probes, dt.Vertices[i].Add(q).Mul(0.5))
	}
	probes = append(probes, pt(-10, -10), pt(10, 10), pt(-10, 10), pt(10, -10))

	for _, p := range probes {
		tri, loc, e := dt.locate(p)
		a, b, c := dt.TriangleVertices(tri)
		switch loc {
		case locInside, locOnEdge:
			for _, edge := range [3][2]r2.Point{{a, b}, {b, c}, {c, a}} {
				if r2geom.Orient(edge[0], edge[1], p) == r2geom.Clockwise {
					t.Fatalf("dt.locate(%v) = (%d, %v), but the point is outside that triangle", p, tri, loc)
				}
			}
		case locOnVertex:
			if dt.Vertices[dt.Triangle(tri)[e]] != p {
				t.Fatalf("dt.locate(%v) = (%d, %v, %d), but that corner is elsewhere", p, tri, loc, e)
			}
		case locOutside:
			if dt.Neighbor(tri, e) != NoTriangle {
				t.Fatalf("dt.locate(%v) = (%d, %v, %d), want a hull edge", p, tri, loc, e)
			}
			corners := dt.Triangle(tri)
			u, w := dt.Vertices[corners[e]], dt.Vertices[corners[(e+1)%3]]
			if r2geom.Orient(u, w, p) != r2geom.Clockwise {
				t.Fatalf("dt.locate(%v) = (%d, %v, %d), but the point is not beyond that edge", p, tri, loc, e)
			}
		}
	}
}

func TestSplitFace(t *testing.T) {
	dt := mustFromTriangle(t, pt(0, 0), pt(4, 0), pt(0, 4))

	v := dt.addVertex(pt(1, 1))
	pending := dt.splitFace(0, v)

	if got := dt.NumTriangles(); got != 3 {
		t.Fatalf("dt.NumTriangles() = %d, want 3", got)
	}
	if len(dt.free) != 0 {
		t.Errorf("len(dt.free) = %d, want 0: the retired slot should be reused", len(dt.free))
	}
	for _, ref := range pending {
		tri := dt.Triangle(ref.t)
		if tri[(ref.e+2)%3] != v {
			t.Errorf("pending edge (%d, %d) is not opposite the new vertex in %v", ref.t, ref.e, tri)
		}
	}
	validateMesh(t, dt)
}

func TestSplitEdge(t *testing.T) {
	dt := mustNewTriangulationOf(t, pt(0, 0), pt(2, 0), pt(1, 1), pt(1, -1))
	if got := dt.NumTriangles(); got != 2 {
		t.Fatalf("dt.NumTriangles() = %d, want 2", got)
	}

	// (1, 0) lies strictly inside the edge shared by the two triangles.
	if err := dt.Insert(pt(1, 0)); err != nil {
		t.Fatalf("dt.Insert(...) error = %v, want nil", err)
	}
	if got := dt.NumTriangles(); got != 4 {
		t.Fatalf("dt.NumTriangles() = %d, want 4", got)
	}
	validateMesh(t, dt)
}

func TestSplitBoundaryEdge(t *testing.T) {
	dt := mustFromTriangle(t, pt(0, 0), pt(4, 0), pt(0, 4))

	if err := dt.Insert(pt(2, 0)); err != nil {
		t.Fatalf("dt.Insert(...) error = %v, want nil", err)
	}
	if got := dt.NumTriangles(); got != 2 {
		t.Fatalf("dt.NumTriangles() = %d, want 2", got)
	}
	validateMesh(t, dt)

	// The split point stays on the boundary walk.
	hull := dt.ConvexHull()
	if len(hull) != 4 {
		t.Fatalf("len(dt.ConvexHull()) = %d, want 4", len(hull))
	}
}

func TestFlipEdge(t *testing.T) {
	dt := mustNewTriangulationOf(t, pt(0, 0), pt(2, 0), pt(1, 1), pt(1, -1))

	ft, fg := dt.flipEdge(0, dt.oppositeEdge(0, 2))
	if ft == fg {
		t.Fatalf("dt.flipEdge(...) returned a single slot %d twice", ft)
	}

	// The diagonal now joins the two apexes.
	for _, tri := range [2]int{ft, fg} {
		corners := dt.Triangle(tri)
		if NextVertex(corners, 2) != 3 && PrevVertex(corners, 2) != 3 {
			t.Errorf("dt.Triangle(%d) = %v, want the edge between vertices 2 and 3", tri, corners)
		}
	}
	validateMesh(t, dt)
}

func TestFlipEdge_PanicsOnNonConvexQuad(t *testing.T) {
	assertPanic := func(dt *Triangulation, tri, e int) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("dt.flipEdge(%d, %d) did not panic, want panic", tri, e)
			}
		}()
		dt.flipEdge(tri, e)
	}

	// The quadrilateral is reflex at vertex 0, so its diagonals do not
	// cross and the flip must refuse.
	dt := &Triangulation{
		Vertices: []r2.Point{pt(0, 0), pt(2, 0), pt(1, 1), pt(-0.5, -0.1)},
		tris: []triangle{
			{v: [3]int{0, 1, 2}, n: [3]int{1, NoTriangle, NoTriangle}},
			{v: [3]int{1, 0, 3}, n: [3]int{0, NoTriangle, NoTriangle}},
		},
		vertTri: []int{0, 0, 0, 1},
		last:    0,
		state:   StateMeshed,
	}

	assertPanic(dt, 0, 0)
}

func TestInsert_MaintainsMeshInvariants(t *testing.T) {
	points := utils.GenerateRandomPoints(60, 3)
	dt := &Triangulation{last: NoTriangle}
	for i, p := range points {
		if err := dt.Insert(p); err != nil {
			t.Fatalf("dt.Insert(points[%d]) error = %v, want nil", i, err)
		}
		if dt.State() == StateMeshed {
			validateMesh(t, dt)
		}
	}
}

func TestInsert_MaintainsMeshInvariantsOnGrid(t *testing.T) {
	// A grid is all degeneracies at once: collinear rows, points landing
	// exactly on edges, and cocircular quadruples everywhere.
	const n = 7
	dt := &Triangulation{last: NoTriangle}
	for y := range n {
		for x := range n {
			if err := dt.Insert(pt(float64(x), float64(y))); err != nil {
				t.Fatalf("dt.Insert((%d, %d)) error = %v, want nil", x, y, err)
			}
			if dt.State() == StateMeshed {
				validateMesh(t, dt)
			}
		}
	}

	if got, want := dt.NumVertices(), n*n; got != want {
		t.Errorf("dt.NumVertices() = %d, want %d", got, want)
	}
	// 24 of the 49 grid points lie on the boundary.
	if got, want := dt.NumTriangles(), 2*n*n-2-(4*n-4); got != want {
		t.Errorf("dt.NumTriangles() = %d, want %d", got, want)
	}
}

func TestPointLess(t *testing.T) {
	tests := []struct {
		name string
		a, b r2.Point
		want bool
	}{
		{"smaller x", pt(0, 9), pt(1, 0), true},
		{"larger x", pt(2, 0), pt(1, 9), false},
		{"equal x smaller y", pt(1, 0), pt(1, 1), true},
		{"equal x larger y", pt(1, 2), pt(1, 1), false},
		{"equal points", pt(1, 1), pt(1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pointLess(tt.a, tt.b); got != tt.want {
				t.Errorf("pointLess(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// Helpers

func pt(x, y float64) r2.Point {
	return r2.Point{X: x, Y: y}
}

func mustFromTriangle(t *testing.T, p0, p1, p2 r2.Point) *Triangulation {
	t.Helper()
	dt, err := FromTriangle(p0, p1, p2)
	if err != nil {
		t.Fatalf("FromTriangle(...) error = %v, want nil", err)
	}
	return dt
}

func mustNewTriangulationOf(t *testing.T, points ...r2.Point) *Triangulation {
	t.Helper()
	dt, err := NewTriangulation(points)
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}
	return dt
}

func mustNewTriangulation(t *testing.T, n int) *Triangulation {
	t.Helper()
	dt, err := NewTriangulation(utils.GenerateRandomPoints(n, 0))
	if err != nil {
		t.Fatalf("NewTriangulation(...) error = %v, want nil", err)
	}
	return dt
}

// validateMesh checks every structural invariant of a meshed
// triangulation: CCW corners, reciprocal neighbor links, live vertex
// pointers, the triangle count Euler's formula dictates, and the global
// empty-circumcircle property.
func validateMesh(t *testing.T, dt *Triangulation) {
	t.Helper()

	live := 0
	for i, tri := range dt.tris {
		if tri.dead() {
			continue
		}
		live++

		for _, v := range tri.v {
			if v < 0 || v >= len(dt.Vertices) {
				t.Fatalf("triangle %d references vertex %d, want within [0, %d)", i, v, len(dt.Vertices))
			}
		}
		if tri.v[0] == tri.v[1] || tri.v[1] == tri.v[2] || tri.v[2] == tri.v[0] {
			t.Fatalf("triangle %d corners %v are not distinct", i, tri.v)
		}
		a, b, c := dt.Vertices[tri.v[0]], dt.Vertices[tri.v[1]], dt.Vertices[tri.v[2]]
		if r2geom.Orient(a, b, c) != r2geom.CounterClockwise {
			t.Fatalf("triangle %d corners %v are not in CCW order", i, tri.v)
		}

		for e := range 3 {
			g := tri.n[e]
			if g == NoTriangle {
				continue
			}
			if g < 0 || g >= len(dt.tris) || dt.tris[g].dead() {
				t.Fatalf("triangle %d neighbor %d across edge %d is not live", i, g, e)
			}
			ge := -1
			for k := range 3 {
				if dt.tris[g].n[k] == i {
					ge = k
				}
			}
			if ge == -1 {
				t.Fatalf("triangle %d neighbor %d does not link back", i, g)
			}
			if dt.tris[g].v[ge] != tri.v[(e+1)%3] || dt.tris[g].v[(ge+1)%3] != tri.v[e] {
				t.Fatalf("triangles %d and %d disagree about their shared edge", i, g)
			}
		}
	}

	if live != dt.NumTriangles() {
		t.Fatalf("live triangle count = %d, want %d", live, dt.NumTriangles())
	}
	for _, f := range dt.free {
		if !dt.tris[f].dead() {
			t.Fatalf("free slot %d holds a live triangle", f)
		}
	}

	for v := range dt.Vertices {
		i := dt.vertTri[v]
		if i < 0 || i >= len(dt.tris) || dt.tris[i].dead() {
			t.Fatalf("vertTri[%d] = %d, want a live triangle", v, i)
		}
		tri := dt.tris[i]
		if tri.v[0] != v && tri.v[1] != v && tri.v[2] != v {
			t.Fatalf("vertTri[%d] = %d does not touch the vertex", v, i)
		}
	}

	// A triangulated point set with h of its n points on the boundary
	// has exactly 2n-2-h triangles.
	hull := dt.ConvexHull()
	hullPoints := make([]r2.Point, len(hull))
	for i, v := range hull {
		hullPoints[i] = dt.Vertices[v]
	}
	if r2geom.SignedArea(hullPoints) <= 0 {
		t.Fatalf("dt.ConvexHull() = %v is not wound CCW", hull)
	}
	if want := 2*len(dt.Vertices) - 2 - len(hull); live != want {
		t.Fatalf("mesh has %d triangles, want %d for %d vertices with %d on the boundary", live, want, len(dt.Vertices), len(hull))
	}

	for i, tri := range dt.tris {
		if tri.dead() {
			continue
		}
		a, b, c := dt.Vertices[tri.v[0]], dt.Vertices[tri.v[1]], dt.Vertices[tri.v[2]]
		for v, p := range dt.Vertices {
			if v == tri.v[0] || v == tri.v[1] || v == tri.v[2] {
				continue
			}
			if r2geom.InCircle(a, b, c, p) == r2geom.InsideCircle {
				t.Fatalf("vertex %d lies inside the circumcircle of triangle %d %v", v, i, tri.v)
			}
		}
	}
}
