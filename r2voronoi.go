// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package r2voronoi implements Voronoi diagrams in the plane, built on
// Delaunay triangulation. Cell i is the region of the plane closer to
// site i than to any other site. Cells of sites on the convex hull of
// the input are unbounded: their boundary is an open chain of Voronoi
// vertices closed off by two rays, and an optional clip box truncates
// them to finite polygons.

package r2voronoi

import (
	"errors"
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/r2delaunay"
	"github.com/2dChan/r2voronoi/r2geom"
)

var (
	// ErrEmptyTriangulation is returned when the sites do not span the
	// plane: fewer than three points, or all of them on one line.
	ErrEmptyTriangulation = errors.New("r2voronoi: no triangle mesh to derive cells from")

	// ErrUnboundedCell is returned by Cell.Polygon for an unbounded cell
	// when the diagram has no clip box to close it against.
	ErrUnboundedCell = errors.New("r2voronoi: unbounded cell has no finite polygon")

	// ErrNoClipBox is returned by Relax when the diagram has no clip
	// box. Unbounded cells have no finite centroid without one.
	ErrNoClipBox = errors.New("r2voronoi: relaxation requires a clip box")
)

// DiagramOptions bundles the optional parameters of NewDiagram and
// FromTriangulation.
type DiagramOptions struct {
	// ClipBox is the rectangle unbounded cells are truncated against.
	// HasClipBox reports whether one was provided.
	ClipBox    r2.Rect
	HasClipBox bool
}

// DiagramOption sets an optional parameter on DiagramOptions.
type DiagramOption func(*DiagramOptions) error

// WithClipBox sets the rectangle that Cell.Polygon and Relax truncate
// unbounded cells against. The box must have positive width and height.
func WithClipBox(box r2.Rect) DiagramOption {
	return func(o *DiagramOptions) error {
		if box.X.Length() <= 0 || box.Y.Length() <= 0 {
			return fmt.Errorf("r2voronoi: clip box must have positive width and height, got %v", box)
		}
		o.ClipBox = box
		o.HasClipBox = true
		return nil
	}
}

// Diagram is a planar Voronoi diagram. Sites and Vertices hold the
// geometry; the cells are stored in compressed sparse row form, one
// slice of indices per cell, addressed through the offset slices.
type Diagram struct {
	Sites    []r2.Point
	Vertices []r2.Point

	// NOTE: Sort in CCW per Cell. Cells of hull sites hold an open
	// chain: the last vertex does not connect back to the first.
	CellVertices []int
	CellOffsets  []int
	// NOTE: Sort in CCW per Cell. An unbounded cell has one more
	// neighbor than vertices, one per bounding ray.
	CellNeighbors       []int
	CellNeighborOffsets []int

	unbounded []bool

	clipBox    r2.Rect
	hasClipBox bool
}

// NewDiagram builds the Voronoi diagram of the sites. It triangulates
// them and derives the diagram as the dual, so it fails with the
// triangulation's error when a site repeats, and with
// ErrEmptyTriangulation when the sites do not span the plane.
func NewDiagram(sites []r2.Point, setters ...DiagramOption) (*Diagram, error) {
	var opts DiagramOptions
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}

	dt, err := r2delaunay.NewTriangulation(sites)
	if err != nil {
		return nil, err
	}
	return fromTriangulation(dt, opts)
}

// FromTriangulation derives the Voronoi diagram dual to an existing
// triangulation. The triangulation is only read, never modified, and
// the same triangulation always derives the same diagram. It returns
// ErrEmptyTriangulation when the triangulation holds no mesh.
func FromTriangulation(dt *r2delaunay.Triangulation, setters ...DiagramOption) (*Diagram, error) {
	var opts DiagramOptions
	for _, set := range setters {
		if err := set(&opts); err != nil {
			return nil, err
		}
	}
	return fromTriangulation(dt, opts)
}

func fromTriangulation(dt *r2delaunay.Triangulation, opts DiagramOptions) (*Diagram, error) {
	if dt.State() != r2delaunay.StateMeshed {
		return nil, ErrEmptyTriangulation
	}

	numSites := dt.NumVertices()
	numTriangles := dt.NumTriangles()
	vd := &Diagram{
		Sites:               dt.Vertices,
		Vertices:            make([]r2.Point, 0, numTriangles),
		CellVertices:        make([]int, 0, 3*numTriangles),
		CellOffsets:         make([]int, numSites+1),
		CellNeighbors:       make([]int, 0, 3*numTriangles),
		CellNeighborOffsets: make([]int, numSites+1),
		unbounded:           make([]bool, numSites),
		clipBox:             opts.ClipBox,
		hasClipBox:          opts.HasClipBox,
	}

	// Triangle indices may have gaps, so map them to dense Voronoi
	// vertex indices. A Voronoi vertex is the circumcenter of its
	// Delaunay triangle.
	maxIdx := -1
	for tIdx := range dt.Triangles() {
		maxIdx = max(maxIdx, tIdx)
	}
	vertexOf := make([]int, maxIdx+1)
	for tIdx := range dt.Triangles() {
		a, b, c := dt.TriangleVertices(tIdx)
		// Mesh triangles are never collinear, so the circumcenter
		// exists.
		center, _ := r2geom.Circumcenter(a, b, c)
		vertexOf[tIdx] = len(vd.Vertices)
		vd.Vertices = append(vd.Vertices, center)
	}

	for _, v := range dt.ConvexHull() {
		vd.unbounded[v] = true
	}

	// The incident triangles of a site, counterclockwise, are its cell
	// vertices; the vertex each spoke edge points at is its neighbor.
	// At a hull site the triangle cycle is open and the closing spoke
	// of the last triangle names one extra neighbor.
	for v := range numSites {
		inc := dt.IncidentTriangles(v)
		for _, tIdx := range inc {
			vd.CellVertices = append(vd.CellVertices, vertexOf[tIdx])
			vd.CellNeighbors = append(vd.CellNeighbors, r2delaunay.NextVertex(dt.Triangle(tIdx), v))
		}
		if vd.unbounded[v] {
			lastTri := dt.Triangle(inc[len(inc)-1])
			vd.CellNeighbors = append(vd.CellNeighbors, r2delaunay.PrevVertex(lastTri, v))
		}
		vd.CellOffsets[v+1] = len(vd.CellVertices)
		vd.CellNeighborOffsets[v+1] = len(vd.CellNeighbors)
	}

	return vd, nil
}

// NumCells returns the number of cells, one per site.
func (vd *Diagram) NumCells() int {
	return len(vd.Sites)
}

// Cell returns the cell of site i.
// It returns an error if the index is out of range.
func (vd *Diagram) Cell(i int) (Cell, error) {
	if i < 0 || i >= vd.NumCells() {
		return Cell{}, fmt.Errorf("Cell: index %d out of range [0 %d)", i, vd.NumCells())
	}
	return Cell{idx: i, d: vd}, nil
}

// ClipBox returns the clip box and whether the diagram carries one.
func (vd *Diagram) ClipBox() (r2.Rect, bool) {
	return vd.clipBox, vd.hasClipBox
}
