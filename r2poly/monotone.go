// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2poly

// Monotone decomposition of a simple counterclockwise polygon and the
// stack scan that triangulates each monotone piece.
//
// The sweep runs top to bottom. Ties in y are broken by x, which acts
// like an infinitesimally rotated plane: no two distinct vertices share
// a sweep level, and horizontal edges need no special treatment.

import (
	"fmt"
	"math"
	"sort"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/r2geom"
)

type vertexKind int

const (
	vertexRegular vertexKind = iota
	vertexStart
	vertexEnd
	vertexSplit
	vertexMerge
)

// below orders points bottom to top: smaller y first, larger x first
// among equals.
func below(p, q r2.Point) bool {
	if p.Y == q.Y {
		return p.X > q.X
	}
	return p.Y < q.Y
}

func above(p, q r2.Point) bool {
	return below(q, p)
}

// classify assigns the sweep role of v between its ring neighbors. Local
// extrema are start or end when convex and split or merge when reflex.
func classify(prev, v, next r2.Point) vertexKind {
	prevBelow := below(prev, v)
	nextBelow := below(next, v)
	switch {
	case prevBelow && nextBelow:
		if r2geom.Orient(prev, v, next) == r2geom.CounterClockwise {
			return vertexStart
		}
		return vertexSplit
	case !prevBelow && !nextBelow:
		if r2geom.Orient(prev, v, next) == r2geom.CounterClockwise {
			return vertexEnd
		}
		return vertexMerge
	default:
		return vertexRegular
	}
}

// sweepEdge is a boundary edge crossing the sweep line with the polygon
// interior to its right. The helper is the lowest processed vertex that
// can take a diagonal across the edge's slab.
type sweepEdge struct {
	start  int // edge runs from start to its cycle successor
	helper int
}

type sweep struct {
	points []r2.Point // vertices in counterclockwise order
	ring   []int      // position in points -> index in the input polygon
	kind   []vertexKind
	status []sweepEdge
}

func newSweep(polygon []r2.Point, ring []int) *sweep {
	n := len(ring)
	s := &sweep{
		points: make([]r2.Point, n),
		ring:   ring,
		kind:   make([]vertexKind, n),
	}
	for i, idx := range ring {
		s.points[i] = polygon[idx]
	}
	for i, p := range s.points {
		s.kind[i] = classify(s.points[(i-1+n)%n], p, s.points[(i+1)%n])
	}
	return s
}

// makeMonotone sweeps the polygon top to bottom and connects every split
// and merge vertex to a vertex it can see, so that cutting along the
// returned diagonals leaves only y-monotone pieces.
func (s *sweep) makeMonotone() ([][2]int, error) {
	n := len(s.points)
	events := make([]int, n)
	for i := range events {
		events[i] = i
	}
	sort.Slice(events, func(i, j int) bool {
		return above(s.points[events[i]], s.points[events[j]])
	})

	var diagonals [][2]int
	addDiagonal := func(a, b int) {
		diagonals = append(diagonals, [2]int{a, b})
	}

	for _, v := range events {
		prev := (v - 1 + n) % n
		switch s.kind[v] {
		case vertexStart:
			s.status = append(s.status, sweepEdge{start: v, helper: v})
		case vertexEnd:
			if err := s.closeEdge(prev, v, addDiagonal); err != nil {
				return nil, err
			}
		case vertexSplit:
			j, ok := s.leftEdge(s.points[v])
			if !ok {
				return nil, fmt.Errorf("no edge left of vertex %v: %w", s.points[v], ErrDegeneratePolygon)
			}
			addDiagonal(v, s.status[j].helper)
			s.status[j].helper = v
			s.status = append(s.status, sweepEdge{start: v, helper: v})
		case vertexMerge:
			if err := s.closeEdge(prev, v, addDiagonal); err != nil {
				return nil, err
			}
			j, ok := s.leftEdge(s.points[v])
			if !ok {
				return nil, fmt.Errorf("no edge left of vertex %v: %w", s.points[v], ErrDegeneratePolygon)
			}
			if s.kind[s.status[j].helper] == vertexMerge {
				addDiagonal(v, s.status[j].helper)
			}
			s.status[j].helper = v
		case vertexRegular:
			if below(s.points[v], s.points[prev]) {
				// Descending chain, interior to the right.
				if err := s.closeEdge(prev, v, addDiagonal); err != nil {
					return nil, err
				}
				s.status = append(s.status, sweepEdge{start: v, helper: v})
			} else {
				j, ok := s.leftEdge(s.points[v])
				if !ok {
					return nil, fmt.Errorf("no edge left of vertex %v: %w", s.points[v], ErrDegeneratePolygon)
				}
				if s.kind[s.status[j].helper] == vertexMerge {
					addDiagonal(v, s.status[j].helper)
				}
				s.status[j].helper = v
			}
		}
	}
	return dedupDiagonals(diagonals), nil
}

// closeEdge retires the status edge that ends at v, connecting v to the
// edge's helper when the helper is a merge vertex left hanging.
func (s *sweep) closeEdge(start, v int, addDiagonal func(a, b int)) error {
	for i, e := range s.status {
		if e.start != start {
			continue
		}
		if s.kind[e.helper] == vertexMerge {
			addDiagonal(v, e.helper)
		}
		s.status[i] = s.status[len(s.status)-1]
		s.status = s.status[:len(s.status)-1]
		return nil
	}
	return fmt.Errorf("boundary edges cross near %v: %w", s.points[v], ErrDegeneratePolygon)
}

// leftEdge finds the status edge immediately left of p on the sweep line.
func (s *sweep) leftEdge(p r2.Point) (int, bool) {
	best, bestX := -1, math.Inf(-1)
	for i, e := range s.status {
		x := s.edgeX(e, p.Y)
		if x <= p.X && x > bestX {
			best, bestX = i, x
		}
	}
	return best, best >= 0
}

// edgeX is the x-coordinate where the edge crosses the horizontal line
// at y. Status edges always span the sweep line, so t stays in [0, 1]
// up to rounding.
func (s *sweep) edgeX(e sweepEdge, y float64) float64 {
	a := s.points[e.start]
	b := s.points[(e.start+1)%len(s.points)]
	if a.Y == b.Y {
		return math.Min(a.X, b.X)
	}
	t := (y - a.Y) / (b.Y - a.Y)
	t = math.Max(0, math.Min(1, t))
	return a.X + t*(b.X-a.X)
}

func dedupDiagonals(diagonals [][2]int) [][2]int {
	seen := make(map[[2]int]struct{}, len(diagonals))
	out := diagonals[:0]
	for _, d := range diagonals {
		key := d
		if key[0] > key[1] {
			key[0], key[1] = key[1], key[0]
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, d)
	}
	return out
}

// splitCycle cuts the vertex cycle along the diagonals and returns the
// boundary cycles of the resulting pieces. Diagonals never cross, so
// after cutting along one of them every remaining diagonal lies entirely
// in one of the two halves, the half that strictly contains one of its
// endpoints.
func splitCycle(cycle []int, diagonals [][2]int) [][]int {
	if len(diagonals) == 0 {
		return [][]int{cycle}
	}
	d, rest := diagonals[0], diagonals[1:]
	first := cycleSlice(cycle, indexOf(cycle, d[0]), indexOf(cycle, d[1]))
	second := cycleSlice(cycle, indexOf(cycle, d[1]), indexOf(cycle, d[0]))

	strictFirst := make(map[int]bool, len(first))
	for _, v := range first {
		strictFirst[v] = v != d[0] && v != d[1]
	}
	var firstDiagonals, secondDiagonals [][2]int
	for _, r := range rest {
		if strictFirst[r[0]] || strictFirst[r[1]] {
			firstDiagonals = append(firstDiagonals, r)
		} else {
			secondDiagonals = append(secondDiagonals, r)
		}
	}
	return append(splitCycle(first, firstDiagonals), splitCycle(second, secondDiagonals)...)
}

// cycleSlice copies the cycle from position i to position j inclusive,
// wrapping past the end.
func cycleSlice(cycle []int, i, j int) []int {
	if i <= j {
		return append([]int(nil), cycle[i:j+1]...)
	}
	out := make([]int, 0, len(cycle)-i+j+1)
	out = append(out, cycle[i:]...)
	out = append(out, cycle[:j+1]...)
	return out
}

func indexOf(values []int, v int) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}

// triangulateMonotone appends the triangles of one y-monotone
// counterclockwise cycle. Points of the two descending chains are merged
// into one top-to-bottom order and scanned with a stack: a point on the
// opposite chain sees the whole stack, a point on the same chain pops as
// far as the diagonals stay inside.
func (s *sweep) triangulateMonotone(cycle []int, triangles [][3]int) [][3]int {
	n := len(cycle)
	if n == 3 {
		return append(triangles, s.outTriangle(cycle[0], cycle[1], cycle[2]))
	}

	top := 0
	for i := 1; i < n; i++ {
		if above(s.points[cycle[i]], s.points[cycle[top]]) {
			top = i
		}
	}

	// Walking the cycle forward from the top descends the left chain,
	// walking backward descends the right. The bottom point is kept out
	// of the merged order and fans the leftover stack at the end.
	sorted := make([]int, 0, n)
	sorted = append(sorted, cycle[top])
	isLeft := make(map[int]bool, n)
	bottom := -1
	for l, r := 1, 1; ; {
		leftV := cycle[(top+l)%n]
		rightV := cycle[(top-r+n)%n]
		if leftV == rightV {
			bottom = leftV
			break
		}
		if above(s.points[leftV], s.points[rightV]) {
			isLeft[leftV] = true
			sorted = append(sorted, leftV)
			l++
		} else {
			sorted = append(sorted, rightV)
			r++
		}
	}

	stack := make([]int, 0, n)
	stack = append(stack, sorted[0], sorted[1])
	for i := 2; i < len(sorted); i++ {
		p := sorted[i]
		left := isLeft[p]
		if left != isLeft[stack[len(stack)-1]] {
			// Opposite chain: every stack point is visible from p.
			for len(stack) > 1 {
				a := stack[len(stack)-1]
				b := stack[len(stack)-2]
				if left {
					triangles = append(triangles, s.outTriangle(p, a, b))
				} else {
					triangles = append(triangles, s.outTriangle(a, p, b))
				}
				stack = stack[:len(stack)-1]
			}
			stack = append(stack[:0], sorted[i-1], p)
			continue
		}

		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for len(stack) > 0 {
			q := stack[len(stack)-1]
			var a, b, c int
			if left {
				a, b, c = p, q, v
			} else {
				a, b, c = p, v, q
			}
			if r2geom.Orient(s.points[a], s.points[b], s.points[c]) != r2geom.CounterClockwise {
				break
			}
			triangles = append(triangles, s.outTriangle(a, b, c))
			v = q
			stack = stack[:len(stack)-1]
		}
		stack = append(stack, v, p)
	}

	last := stack[len(stack)-1]
	stack = stack[:len(stack)-1]
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if isLeft[last] {
			triangles = append(triangles, s.outTriangle(bottom, p, last))
		} else {
			triangles = append(triangles, s.outTriangle(bottom, last, p))
		}
		last = p
	}
	return triangles
}

// outTriangle maps sweep positions back to input indices.
func (s *sweep) outTriangle(a, b, c int) [3]int {
	return [3]int{s.ring[a], s.ring[b], s.ring[c]}
}
