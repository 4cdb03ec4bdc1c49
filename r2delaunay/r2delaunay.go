// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2delaunay builds Delaunay triangulations of points in the
// plane by incremental insertion. Orientation and in-circle decisions go
// through exact predicates, so the mesh stays valid for degenerate
// inputs: collinear point sets are held as a chain until a point off the
// line arrives, exactly cocircular points keep whichever diagonal was
// created first, and only exact duplicates are rejected.

package r2delaunay

import (
	"errors"
	"fmt"
	"iter"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/r2geom"
)

var (
	// ErrDegenerateInput is returned by FromTriangle when the three
	// points are collinear and span no triangle.
	ErrDegenerateInput = errors.New("r2delaunay: degenerate input: collinear points")

	// ErrCoincidentPoint is returned by Insert when the point exactly
	// equals a vertex already in the triangulation.
	ErrCoincidentPoint = errors.New("r2delaunay: coincident point")
)

// State identifies how much structure a Triangulation holds.
type State int

const (
	// StateEmpty means at most one vertex has been inserted.
	StateEmpty State = iota
	// StateCollinear means at least two vertices exist but all of them
	// lie on one line, so no triangle can be formed yet.
	StateCollinear
	// StateMeshed means the vertices span the plane and the full
	// triangular mesh is present.
	StateMeshed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateCollinear:
		return "Collinear"
	case StateMeshed:
		return "Meshed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// TriangulationOptions bundles the optional parameters of
// NewTriangulation.
type TriangulationOptions struct {
	// Capacity preallocates internal storage for that many vertices.
	Capacity int
}

// TriangulationOption sets an optional parameter on TriangulationOptions.
type TriangulationOption func(*TriangulationOptions) error

// WithCapacity preallocates storage for n vertices. A planar
// triangulation of n vertices holds fewer than 2n triangles, so a known
// final size avoids all growth reallocations during construction.
func WithCapacity(n int) TriangulationOption {
	return func(o *TriangulationOptions) error {
		if n < 0 {
			return fmt.Errorf("r2delaunay: capacity must be non-negative, got %d", n)
		}
		o.Capacity = n
		return nil
	}
}

// Triangulation is a Delaunay triangulation under incremental
// construction. Vertices keep their insertion order as stable indices;
// triangle indices are only stable between insertions.
type Triangulation struct {
	// Vertices holds the inserted points in insertion order.
	Vertices []r2.Point

	tris    []triangle
	free    []int
	vertTri []int
	chain   []int // vertex indices sorted along the line, collinear state only
	last    int
	state   State
}

// NewTriangulation builds the Delaunay triangulation of points, inserting
// them one at a time in the given order. For points in general position
// the result does not depend on that order. A failed insertion aborts
// construction and reports the offending point's index.
func NewTriangulation(points []r2.Point, setters ...TriangulationOption) (*Triangulation, error) {
	var opts TriangulationOptions
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	capacity := max(opts.Capacity, len(points))
	dt := &Triangulation{
		Vertices: make([]r2.Point, 0, capacity),
		tris:     make([]triangle, 0, 2*capacity),
		vertTri:  make([]int, 0, capacity),
		last:     NoTriangle,
	}
	for i, p := range points {
		if err := dt.Insert(p); err != nil {
			return nil, fmt.Errorf("insert point %d: %w", i, err)
		}
	}
	return dt, nil
}

// FromTriangle builds a triangulation whose mesh is the single triangle
// p0 p1 p2. It returns ErrDegenerateInput when the points are collinear.
func FromTriangle(p0, p1, p2 r2.Point) (*Triangulation, error) {
	tri := [3]int{0, 1, 2}
	switch r2geom.Orient(p0, p1, p2) {
	case r2geom.Collinear:
		return nil, ErrDegenerateInput
	case r2geom.Clockwise:
		tri = [3]int{0, 2, 1}
	}

	return &Triangulation{
		Vertices: []r2.Point{p0, p1, p2},
		tris:     []triangle{{v: tri, n: [3]int{NoTriangle, NoTriangle, NoTriangle}}},
		vertTri:  []int{0, 0, 0},
		last:     0,
		state:    StateMeshed,
	}, nil
}

// Insert adds p to the triangulation and restores the Delaunay property
// before returning. It returns ErrCoincidentPoint when p exactly equals
// an existing vertex, leaving the triangulation unchanged. Points that
// keep the vertex set collinear accumulate in a chain; the first point
// off the line meshes the chain into a triangle fan.
func (dt *Triangulation) Insert(p r2.Point) error {
	if dt.state == StateMeshed {
		return dt.insertMeshed(p)
	}
	return dt.insertSparse(p)
}

func (dt *Triangulation) insertSparse(p r2.Point) error {
	for _, q := range dt.Vertices {
		if q == p {
			return ErrCoincidentPoint
		}
	}

	if len(dt.chain) >= 2 {
		a := dt.Vertices[dt.chain[0]]
		b := dt.Vertices[dt.chain[len(dt.chain)-1]]
		if r2geom.Orient(a, b, p) != r2geom.Collinear {
			dt.meshCollinearChain(p)
			return nil
		}
	}

	v := dt.addVertex(p)
	i := sort.Search(len(dt.chain), func(i int) bool {
		return pointLess(p, dt.Vertices[dt.chain[i]])
	})
	dt.chain = append(dt.chain, 0)
	copy(dt.chain[i+1:], dt.chain[i:])
	dt.chain[i] = v
	if len(dt.chain) >= 2 {
		dt.state = StateCollinear
	}
	return nil
}

// meshCollinearChain builds the first mesh: a fan of triangles from p
// over the collinear chain collected so far. The fan is Delaunay as is,
// because each face's circumcircle meets the carrier line exactly at that
// face's own two chain vertices.
func (dt *Triangulation) meshCollinearChain(p r2.Point) {
	v := dt.addVertex(p)

	a := dt.Vertices[dt.chain[0]]
	b := dt.Vertices[dt.chain[len(dt.chain)-1]]
	left := r2geom.Orient(a, b, p) == r2geom.CounterClockwise

	prev := NoTriangle
	for i := 0; i+1 < len(dt.chain); i++ {
		var t int
		if left {
			t = dt.allocTriangle(triangle{
				v: [3]int{dt.chain[i], dt.chain[i+1], v},
				n: [3]int{NoTriangle, NoTriangle, prev},
			})
			if prev != NoTriangle {
				dt.tris[prev].n[1] = t
			}
		} else {
			t = dt.allocTriangle(triangle{
				v: [3]int{dt.chain[i+1], dt.chain[i], v},
				n: [3]int{NoTriangle, prev, NoTriangle},
			})
			if prev != NoTriangle {
				dt.tris[prev].n[2] = t
			}
		}
		prev = t
	}

	dt.chain = nil
	dt.last = prev
	dt.state = StateMeshed
}

func (dt *Triangulation) insertMeshed(p r2.Point) error {
	t, loc, e := dt.locate(p)
	if loc == locOnVertex {
		return ErrCoincidentPoint
	}

	v := dt.addVertex(p)
	var pending []edgeRef
	switch loc {
	case locInside:
		pending = dt.splitFace(t, v)
	case locOnEdge:
		if dt.tris[t].n[e] == NoTriangle {
			pending = dt.splitBoundaryEdge(t, e, v)
		} else {
			pending = dt.splitEdge(t, e, v)
		}
	case locOutside:
		pending = dt.attachHullPoint(t, e, v)
	}
	dt.legalize(v, pending)
	dt.last = dt.vertTri[v]
	return nil
}

func (dt *Triangulation) addVertex(p r2.Point) int {
	dt.Vertices = append(dt.Vertices, p)
	dt.vertTri = append(dt.vertTri, NoTriangle)
	return len(dt.Vertices) - 1
}

// State returns the construction state of the triangulation.
func (dt *Triangulation) State() State {
	return dt.state
}

// NumVertices returns the number of inserted vertices.
func (dt *Triangulation) NumVertices() int {
	return len(dt.Vertices)
}

// NumTriangles returns the number of triangles in the mesh.
func (dt *Triangulation) NumTriangles() int {
	return len(dt.tris) - len(dt.free)
}

// Triangle returns the vertex indices of triangle tIdx in
// counterclockwise order. It panics when tIdx does not name a live
// triangle.
func (dt *Triangulation) Triangle(tIdx int) [3]int {
	if tIdx < 0 || tIdx >= len(dt.tris) || dt.tris[tIdx].dead() {
		panic("Triangle: tIdx out of range")
	}
	return dt.tris[tIdx].v
}

// TriangleVertices returns the corner points of triangle tIdx in
// counterclockwise order. It panics when tIdx does not name a live
// triangle.
func (dt *Triangulation) TriangleVertices(tIdx int) (r2.Point, r2.Point, r2.Point) {
	if tIdx < 0 || tIdx >= len(dt.tris) || dt.tris[tIdx].dead() {
		panic("TriangleVertices: tIdx out of range")
	}
	t := dt.tris[tIdx].v
	return dt.Vertices[t[0]], dt.Vertices[t[1]], dt.Vertices[t[2]]
}

// Neighbor returns the triangle adjacent to triangle tIdx across edge
// eIdx, or NoTriangle when that edge lies on the convex hull. Edge eIdx
// is the directed segment from corner eIdx to corner (eIdx+1)%3. It
// panics when tIdx does not name a live triangle or eIdx is not in
// [0, 3).
func (dt *Triangulation) Neighbor(tIdx, eIdx int) int {
	if eIdx < 0 || eIdx > 2 {
		panic("Neighbor: eIdx out of range")
	}
	if tIdx < 0 || tIdx >= len(dt.tris) || dt.tris[tIdx].dead() {
		panic("Neighbor: tIdx out of range")
	}
	return dt.tris[tIdx].n[eIdx]
}

// Triangles returns an iterator over the live triangles of the mesh as
// (index, vertex triple) pairs. Each range restarts the sequence; the
// triangulation must not be modified while iterating.
func (dt *Triangulation) Triangles() iter.Seq2[int, [3]int] {
	return func(yield func(int, [3]int) bool) {
		for i := range dt.tris {
			if dt.tris[i].dead() {
				continue
			}
			if !yield(i, dt.tris[i].v) {
				return
			}
		}
	}
}

// IncidentTriangles returns the triangles incident to vertex vIdx,
// sorted counterclockwise around it. For an interior vertex the cycle is
// closed: the last triangle is adjacent to the first. For a hull vertex
// the walk starts at the clockwise-most triangle and ends at the
// counterclockwise-most. It returns nil when no mesh exists yet and
// panics when vIdx is out of range.
func (dt *Triangulation) IncidentTriangles(vIdx int) []int {
	if vIdx < 0 || vIdx >= len(dt.Vertices) {
		panic("IncidentTriangles: vIdx out of range")
	}
	if dt.state != StateMeshed {
		return nil
	}

	// Rewind clockwise until hitting the hull or wrapping around.
	first := dt.vertTri[vIdx]
	for t := first; ; {
		prev := dt.tris[t].n[dt.corner(t, vIdx)]
		if prev == NoTriangle {
			first = t
			break
		}
		if prev == first {
			break
		}
		t = prev
	}

	var out []int
	for t := first; ; {
		out = append(out, t)
		next := dt.tris[t].n[(dt.corner(t, vIdx)+2)%3]
		if next == NoTriangle || next == first {
			return out
		}
		t = next
	}
}

// ConvexHull returns the vertex indices of the mesh boundary in
// counterclockwise order. Vertices lying on the boundary between hull
// corners are included. It returns nil when no mesh exists yet.
func (dt *Triangulation) ConvexHull() []int {
	if dt.state != StateMeshed {
		return nil
	}

	start := NoTriangle
	se := 0
	for i := range dt.tris {
		if dt.tris[i].dead() {
			continue
		}
		for e := range 3 {
			if dt.tris[i].n[e] == NoTriangle {
				start, se = i, e
				break
			}
		}
		if start != NoTriangle {
			break
		}
	}

	var hull []int
	for t, e := start, se; ; {
		hull = append(hull, dt.tris[t].v[e])
		t, e = dt.nextBoundaryEdge(t, e)
		if t == start && e == se {
			return hull
		}
	}
}

// NextVertex returns the vertex following vIdx counterclockwise in the
// triangle. It panics when vIdx is not one of its corners.
func NextVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[1]
	case t[1]:
		return t[2]
	case t[2]:
		return t[0]
	}
	panic("NextVertex: vIdx not in triangle")
}

// PrevVertex returns the vertex preceding vIdx counterclockwise in the
// triangle. It panics when vIdx is not one of its corners.
func PrevVertex(t [3]int, vIdx int) int {
	switch vIdx {
	case t[0]:
		return t[2]
	case t[1]:
		return t[0]
	case t[2]:
		return t[1]
	}
	panic("PrevVertex: vIdx not in triangle")
}
