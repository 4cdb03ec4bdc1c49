// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2delaunay

import (
	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/r2geom"
)

// NoTriangle marks the absence of a triangle. A triangle edge whose
// neighbor is NoTriangle lies on the convex hull.
const NoTriangle = -1

// triangle is one face of the mesh: three vertex indices in
// counterclockwise order plus the adjacent triangle across each edge.
// Edge e is the directed segment from corner e to corner (e+1)%3, so the
// mesh interior is always on its left.
type triangle struct {
	v [3]int
	n [3]int
}

func (t triangle) dead() bool {
	return t.v[0] == NoTriangle
}

// edgeRef addresses one edge of one triangle.
type edgeRef struct {
	t, e int
}

// setTriangle writes tri into arena slot i and records i as the incident
// triangle of tri's three vertices, so vertex-to-triangle pointers stay
// valid across rewrites.
func (dt *Triangulation) setTriangle(i int, tri triangle) {
	dt.tris[i] = tri
	for _, v := range tri.v {
		dt.vertTri[v] = i
	}
}

// allocTriangle claims an arena slot for tri, reusing retired slots
// before growing the arena.
func (dt *Triangulation) allocTriangle(tri triangle) int {
	var i int
	if n := len(dt.free); n > 0 {
		i = dt.free[n-1]
		dt.free = dt.free[:n-1]
	} else {
		dt.tris = append(dt.tris, triangle{})
		i = len(dt.tris) - 1
	}
	dt.setTriangle(i, tri)
	return i
}

// retireTriangle removes triangle i from the mesh and recycles its slot.
// The caller must re-point any vertices and neighbors that still
// reference it.
func (dt *Triangulation) retireTriangle(i int) {
	dt.tris[i] = triangle{
		v: [3]int{NoTriangle, NoTriangle, NoTriangle},
		n: [3]int{NoTriangle, NoTriangle, NoTriangle},
	}
	dt.free = append(dt.free, i)
}

// corner returns the index of vertex v within triangle t.
func (dt *Triangulation) corner(t, v int) int {
	for i, w := range dt.tris[t].v {
		if w == v {
			return i
		}
	}
	panic("corner: vertex not in triangle")
}

// sharedEdge returns the index of the edge of triangle g bordering
// triangle t.
func (dt *Triangulation) sharedEdge(g, t int) int {
	for e := range 3 {
		if dt.tris[g].n[e] == t {
			return e
		}
	}
	panic("sharedEdge: triangles are not adjacent")
}

// replaceNeighbor redirects the edge of triangle t that borders from so
// that it borders to instead. A NoTriangle t is ignored.
func (dt *Triangulation) replaceNeighbor(t, from, to int) {
	if t == NoTriangle {
		return
	}
	for e := range 3 {
		if dt.tris[t].n[e] == from {
			dt.tris[t].n[e] = to
			return
		}
	}
	panic("replaceNeighbor: triangles are not adjacent")
}

// splitFace replaces triangle t with three triangles fanning from vertex
// p, which must lie strictly inside t. It returns the edges to legalize:
// in each new triangle, the edge opposite p.
func (dt *Triangulation) splitFace(t, p int) []edgeRef {
	v := dt.tris[t].v
	n := dt.tris[t].n
	dt.retireTriangle(t)

	a := dt.allocTriangle(triangle{v: [3]int{v[0], v[1], p}})
	b := dt.allocTriangle(triangle{v: [3]int{v[1], v[2], p}})
	c := dt.allocTriangle(triangle{v: [3]int{v[2], v[0], p}})

	dt.tris[a].n = [3]int{n[0], b, c}
	dt.tris[b].n = [3]int{n[1], c, a}
	dt.tris[c].n = [3]int{n[2], a, b}
	dt.replaceNeighbor(n[0], t, a)
	dt.replaceNeighbor(n[1], t, b)
	dt.replaceNeighbor(n[2], t, c)

	return []edgeRef{{a, 0}, {b, 0}, {c, 0}}
}

// splitEdge replaces triangle t and its neighbor across edge e with four
// triangles fanning from vertex p, which must lie strictly inside edge e.
func (dt *Triangulation) splitEdge(t, e, p int) []edgeRef {
	g := dt.tris[t].n[e]
	ge := dt.sharedEdge(g, t)

	a, b := dt.tris[t].v[e], dt.tris[t].v[(e+1)%3]
	c := dt.tris[t].v[(e+2)%3]
	d := dt.tris[g].v[(ge+2)%3]
	oBC := dt.tris[t].n[(e+1)%3]
	oCA := dt.tris[t].n[(e+2)%3]
	oAD := dt.tris[g].n[(ge+1)%3]
	oDB := dt.tris[g].n[(ge+2)%3]

	dt.retireTriangle(t)
	dt.retireTriangle(g)

	f1 := dt.allocTriangle(triangle{v: [3]int{a, p, c}})
	f2 := dt.allocTriangle(triangle{v: [3]int{p, b, c}})
	g1 := dt.allocTriangle(triangle{v: [3]int{b, p, d}})
	g2 := dt.allocTriangle(triangle{v: [3]int{p, a, d}})

	dt.tris[f1].n = [3]int{g2, f2, oCA}
	dt.tris[f2].n = [3]int{g1, oBC, f1}
	dt.tris[g1].n = [3]int{f2, g2, oDB}
	dt.tris[g2].n = [3]int{f1, oAD, g1}
	dt.replaceNeighbor(oBC, t, f2)
	dt.replaceNeighbor(oCA, t, f1)
	dt.replaceNeighbor(oAD, g, g2)
	dt.replaceNeighbor(oDB, g, g1)

	return []edgeRef{{f1, 2}, {f2, 1}, {g1, 2}, {g2, 1}}
}

// splitBoundaryEdge replaces triangle t with two triangles when vertex p
// lies strictly inside its hull edge e.
func (dt *Triangulation) splitBoundaryEdge(t, e, p int) []edgeRef {
	a, b := dt.tris[t].v[e], dt.tris[t].v[(e+1)%3]
	c := dt.tris[t].v[(e+2)%3]
	oBC := dt.tris[t].n[(e+1)%3]
	oCA := dt.tris[t].n[(e+2)%3]

	dt.retireTriangle(t)

	f1 := dt.allocTriangle(triangle{v: [3]int{a, p, c}})
	f2 := dt.allocTriangle(triangle{v: [3]int{p, b, c}})
	dt.tris[f1].n = [3]int{NoTriangle, f2, oCA}
	dt.tris[f2].n = [3]int{NoTriangle, oBC, f1}
	dt.replaceNeighbor(oBC, t, f2)
	dt.replaceNeighbor(oCA, t, f1)

	return []edgeRef{{f1, 2}, {f2, 1}}
}

// flipEdge replaces edge e of triangle t, shared with its neighbor, by
// the opposite diagonal of the quadrilateral the two triangles form. The
// two slots are rewritten in place. It panics if the quadrilateral is not
// strictly convex: flipping such an edge would corrupt the mesh silently.
func (dt *Triangulation) flipEdge(t, e int) (int, int) {
	g := dt.tris[t].n[e]
	ge := dt.sharedEdge(g, t)

	u, w := dt.tris[t].v[e], dt.tris[t].v[(e+1)%3]
	c := dt.tris[t].v[(e+2)%3]
	d := dt.tris[g].v[(ge+2)%3]

	if r2geom.Orient(dt.Vertices[u], dt.Vertices[d], dt.Vertices[c]) != r2geom.CounterClockwise ||
		r2geom.Orient(dt.Vertices[w], dt.Vertices[c], dt.Vertices[d]) != r2geom.CounterClockwise {
		panic("flipEdge: quadrilateral is not convex")
	}

	oWC := dt.tris[t].n[(e+1)%3]
	oCU := dt.tris[t].n[(e+2)%3]
	oUD := dt.tris[g].n[(ge+1)%3]
	oDW := dt.tris[g].n[(ge+2)%3]

	dt.setTriangle(t, triangle{v: [3]int{u, d, c}, n: [3]int{oUD, g, oCU}})
	dt.setTriangle(g, triangle{v: [3]int{w, c, d}, n: [3]int{oWC, t, oDW}})
	// The outer neighbors that switched sides must point at their new
	// owners; oCU and oDW keep bordering the same slots.
	dt.replaceNeighbor(oUD, g, t)
	dt.replaceNeighbor(oWC, t, g)

	return t, g
}

// oppositeEdge returns the edge of triangle t that does not touch vertex
// p.
func (dt *Triangulation) oppositeEdge(t, p int) int {
	return (dt.corner(t, p) + 1) % 3
}

// legalize restores the empty-circumcircle property after vertex p has
// been inserted. pending holds edges opposite p in triangles incident to
// p. Each is flipped when the apex across it lies strictly inside the
// triangle's circumcircle, and the two edges the flip exposes opposite p
// are queued in turn; each flip enlarges the smallest angle involved, so
// the cascade terminates. An exactly cocircular apex is not flipped: of
// two equally valid diagonals, the one created first stays.
func (dt *Triangulation) legalize(p int, pending []edgeRef) {
	for len(pending) > 0 {
		ref := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		t, e := ref.t, ref.e
		if dt.tris[t].dead() || dt.tris[t].v[(e+2)%3] != p {
			continue
		}
		g := dt.tris[t].n[e]
		if g == NoTriangle {
			continue
		}

		d := dt.tris[g].v[(dt.sharedEdge(g, t)+2)%3]
		pa, pb, pc := dt.TriangleVertices(t)
		if r2geom.InCircle(pa, pb, pc, dt.Vertices[d]) != r2geom.InsideCircle {
			continue
		}

		ft, fg := dt.flipEdge(t, e)
		pending = append(pending,
			edgeRef{ft, dt.oppositeEdge(ft, p)},
			edgeRef{fg, dt.oppositeEdge(fg, p)})
	}
}

// location classifies where a query point landed in the mesh.
type location int

const (
	locInside location = iota
	locOnEdge
	locOnVertex
	locOutside
)

// locate finds the triangle owning point p by walking across edges toward
// it, starting from the most recently touched triangle. The walk
// terminates on a Delaunay mesh; a step cap with a linear-scan fallback
// guarantees termination unconditionally. The returned edge index is the
// concerned edge for locOnEdge and locOutside, the coincident corner for
// locOnVertex, and meaningless for locInside.
func (dt *Triangulation) locate(p r2.Point) (int, location, int) {
	t := dt.last
	if t < 0 || t >= len(dt.tris) || dt.tris[t].dead() {
		t = dt.anyLiveTriangle()
	}

	for range len(dt.tris) + 1 {
		next, loc, e := dt.classify(t, p)
		if next == NoTriangle {
			dt.last = t
			return t, loc, e
		}
		t = next
	}

	// The walk exceeded its budget; scan everything. classify resolves
	// at the owning triangle and at any triangle with a hull edge the
	// point is strictly beyond, so some live triangle always resolves.
	for i := range dt.tris {
		if dt.tris[i].dead() {
			continue
		}
		if next, loc, e := dt.classify(i, p); next == NoTriangle {
			dt.last = i
			return i, loc, e
		}
	}
	panic("locate: point not resolved by any triangle")
}

// classify tests p against triangle t. It returns the neighbor to step to
// next, or NoTriangle when t resolves the query along with the resolved
// location. Strictly lying beyond a hull edge resolves immediately:
// everything beyond a hull edge's line is outside the hull no matter
// which triangle noticed it.
func (dt *Triangulation) classify(t int, p r2.Point) (int, location, int) {
	var dirs [3]r2geom.Direction
	for e := range 3 {
		a := dt.Vertices[dt.tris[t].v[e]]
		b := dt.Vertices[dt.tris[t].v[(e+1)%3]]
		dirs[e] = r2geom.Orient(a, b, p)
	}

	step := NoTriangle
	for e := range 3 {
		if dirs[e] != r2geom.Clockwise {
			continue
		}
		if dt.tris[t].n[e] == NoTriangle {
			return NoTriangle, locOutside, e
		}
		if step == NoTriangle {
			step = dt.tris[t].n[e]
		}
	}
	if step != NoTriangle {
		return step, locInside, 0
	}

	// Two zero orientations pin p to the corner their edges share; one
	// pins it to the edge's interior.
	for e := range 3 {
		if dirs[e] == r2geom.Collinear && dirs[(e+2)%3] == r2geom.Collinear {
			return NoTriangle, locOnVertex, e
		}
	}
	for e := range 3 {
		if dirs[e] == r2geom.Collinear {
			return NoTriangle, locOnEdge, e
		}
	}
	return NoTriangle, locInside, 0
}

func (dt *Triangulation) anyLiveTriangle() int {
	for i := range dt.tris {
		if !dt.tris[i].dead() {
			return i
		}
	}
	return NoTriangle
}

// nextBoundaryEdge returns the boundary edge following edge e of triangle
// t counterclockwise around the hull. It rotates clockwise around the
// edge's head vertex until the hull reappears.
func (dt *Triangulation) nextBoundaryEdge(t, e int) (int, int) {
	w := dt.tris[t].v[(e+1)%3]
	for {
		i := dt.corner(t, w)
		if dt.tris[t].n[i] == NoTriangle {
			return t, i
		}
		t = dt.tris[t].n[i]
	}
}

// prevBoundaryEdge returns the boundary edge preceding edge e of triangle
// t counterclockwise around the hull. It rotates counterclockwise around
// the edge's tail vertex until the hull reappears.
func (dt *Triangulation) prevBoundaryEdge(t, e int) (int, int) {
	u := dt.tris[t].v[e]
	for {
		i := (dt.corner(t, u) + 2) % 3
		if dt.tris[t].n[i] == NoTriangle {
			return t, i
		}
		t = dt.tris[t].n[i]
	}
}

func (dt *Triangulation) strictlyVisible(t, e int, p r2.Point) bool {
	a := dt.Vertices[dt.tris[t].v[e]]
	b := dt.Vertices[dt.tris[t].v[(e+1)%3]]
	return r2geom.Orient(a, b, p) == r2geom.Clockwise
}

// attachHullPoint extends the mesh with vertex p lying strictly outside
// the hull, given a hull edge e of triangle t it is strictly beyond. A
// fan of new triangles is built over the contiguous run of hull edges
// visible from p.
func (dt *Triangulation) attachHullPoint(t, e, p int) []edgeRef {
	q := dt.Vertices[p]

	// Rewind clockwise to the first visible hull edge, then collect the
	// visible run counterclockwise. From a point outside a convex
	// polygon at least one edge is never strictly visible, so both
	// loops stop.
	for {
		pt, pe := dt.prevBoundaryEdge(t, e)
		if !dt.strictlyVisible(pt, pe, q) {
			break
		}
		t, e = pt, pe
	}
	run := []edgeRef{{t, e}}
	for {
		nt, ne := dt.nextBoundaryEdge(t, e)
		if !dt.strictlyVisible(nt, ne, q) {
			break
		}
		run = append(run, edgeRef{nt, ne})
		t, e = nt, ne
	}

	// Each visible hull edge (a, b) gains the triangle (b, a, p);
	// consecutive fan triangles share their spoke edges at p.
	refs := make([]edgeRef, 0, len(run))
	prev := NoTriangle
	for _, h := range run {
		a, b := dt.tris[h.t].v[h.e], dt.tris[h.t].v[(h.e+1)%3]
		nt := dt.allocTriangle(triangle{v: [3]int{b, a, p}, n: [3]int{h.t, prev, NoTriangle}})
		dt.tris[h.t].n[h.e] = nt
		if prev != NoTriangle {
			dt.tris[prev].n[2] = nt
		}
		prev = nt
		refs = append(refs, edgeRef{nt, 0})
	}
	return refs
}

// pointLess orders points lexicographically by X, then Y.
func pointLess(a, b r2.Point) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}
