// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"

	"github.com/golang/geo/r2"
)

// Cell represents a Voronoi cell. It is a view structure for accessing a cell in a Diagram.
// The cell's index corresponds to the index of its site in the Diagram's Sites.
type Cell struct {
	idx int
	d   *Diagram
}

// Ray is a half-line bounding an unbounded Voronoi cell. It starts at
// Origin and extends to infinity along the unit-length Direction.
type Ray struct {
	Origin    r2.Point
	Direction r2.Point
}

// SiteIndex returns the index of the site in the Diagram's Sites.
func (c Cell) SiteIndex() int {
	return c.idx
}

// Site returns the site point of the cell.
func (c Cell) Site() r2.Point {
	return c.d.Sites[c.idx]
}

// Bounded reports whether the cell is a finite polygon. Cells of sites
// on the convex hull of the input are unbounded: their vertex chain is
// open and two rays close it off.
func (c Cell) Bounded() bool {
	return !c.d.unbounded[c.idx]
}

// NumVertices returns the number of vertices in the cell.
// For a bounded cell this equals the number of neighbors; for an
// unbounded cell the neighbors outnumber the vertices by one.
func (c Cell) NumVertices() int {
	return c.d.CellOffsets[c.idx+1] - c.d.CellOffsets[c.idx]
}

// VertexIndices returns the indices of the vertices that form the cell in the Diagram's Vertices,
// sorted in counter-clockwise order. For an unbounded cell they are an
// open chain: the last vertex does not connect back to the first.
func (c Cell) VertexIndices() []int {
	return c.d.CellVertices[c.d.CellOffsets[c.idx]:c.d.CellOffsets[c.idx+1]]
}

// Vertex returns the vertex at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Vertex(i int) (r2.Point, error) {
	start := c.d.CellOffsets[c.idx]
	end := c.d.CellOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return r2.Point{}, fmt.Errorf("Vertex: index %d out of range [0 %d)", i, end-start)
	}
	return c.d.Vertices[c.d.CellVertices[start+i]], nil
}

// NumNeighbors returns the number of neighboring cells.
func (c Cell) NumNeighbors() int {
	return c.d.CellNeighborOffsets[c.idx+1] - c.d.CellNeighborOffsets[c.idx]
}

// NeighborIndices returns the indices of the neighboring cells in the Diagram,
// sorted in counter-clockwise order.
func (c Cell) NeighborIndices() []int {
	return c.d.CellNeighbors[c.d.CellNeighborOffsets[c.idx]:c.d.CellNeighborOffsets[c.idx+1]]
}

// Neighbor returns the neighboring cell at the specified index.
// It returns an error if the index is out of range.
func (c Cell) Neighbor(i int) (Cell, error) {
	start := c.d.CellNeighborOffsets[c.idx]
	end := c.d.CellNeighborOffsets[c.idx+1]
	if i < 0 || i >= end-start {
		return Cell{}, fmt.Errorf("Neighbor: index %d out of range [0 %d)", i, end-start)
	}
	nc, err := c.d.Cell(c.d.CellNeighbors[start+i])
	if err != nil {
		return Cell{}, err
	}
	return nc, nil
}

// Rays returns the two rays bounding an unbounded cell, or nil for a
// bounded one. Each ray runs along the perpendicular bisector between
// the site and one of its hull neighbors, pointing away from the hull.
// In counter-clockwise boundary order the first ray enters the first
// cell vertex from infinity and the second leaves the last cell vertex.
func (c Cell) Rays() []Ray {
	if c.Bounded() {
		return nil
	}

	site := c.Site()
	verts := c.VertexIndices()
	neighbors := c.NeighborIndices()

	// Neighbors come in counterclockwise order, so the first one spans
	// the outgoing hull edge with the site and the last one spans the
	// incoming hull edge.
	out := c.d.Sites[neighbors[0]].Sub(site)
	in := site.Sub(c.d.Sites[neighbors[len(neighbors)-1]])
	return []Ray{
		{Origin: c.d.Vertices[verts[0]], Direction: outwardPerp(out)},
		{Origin: c.d.Vertices[verts[len(verts)-1]], Direction: outwardPerp(in)},
	}
}

// outwardPerp returns the unit perpendicular on the clockwise side of
// d. For d running along the convex hull in counterclockwise order,
// that side faces away from the triangulation.
func outwardPerp(d r2.Point) r2.Point {
	return d.Ortho().Mul(-1).Normalize()
}

// Polygon returns the cell boundary as a counterclockwise polygon. A
// bounded cell returns its vertex chain as is. An unbounded cell is
// truncated against the diagram's clip box; the result may be empty
// when the cell misses the box, and without a clip box the call fails
// with ErrUnboundedCell.
func (c Cell) Polygon() ([]r2.Point, error) {
	verts := c.VertexIndices()
	if c.Bounded() {
		polygon := make([]r2.Point, len(verts))
		for i, v := range verts {
			polygon[i] = c.d.Vertices[v]
		}
		return polygon, nil
	}

	box, ok := c.d.ClipBox()
	if !ok {
		return nil, ErrUnboundedCell
	}
	return clipToRect(c.coveringPolygon(box), box), nil
}

// coveringPolygon closes an unbounded cell into a finite
// counterclockwise polygon whose intersection with box equals the
// cell's. The open end is fenced off with points placed so far outside
// box that no closing edge can reach back into it.
func (c Cell) coveringPolygon(box r2.Rect) []r2.Point {
	rays := c.Rays()

	bound := box.AddPoint(rays[0].Origin).AddPoint(rays[1].Origin).AddPoint(c.Site())
	far := 4*bound.Size().Norm() + 1

	verts := c.VertexIndices()
	polygon := make([]r2.Point, 0, len(verts)+3)
	polygon = append(polygon, rays[0].Origin.Add(rays[0].Direction.Mul(far)))
	for _, v := range verts {
		polygon = append(polygon, c.d.Vertices[v])
	}
	polygon = append(polygon, rays[1].Origin.Add(rays[1].Direction.Mul(far)))

	// The two ray directions are less than a half-turn apart, so their
	// bisector splits the closing edge into two that both stay far out.
	mid := rays[0].Direction.Add(rays[1].Direction).Normalize()
	return append(polygon, c.Site().Add(mid.Mul(far)))
}
