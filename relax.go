// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package r2voronoi

import (
	"fmt"

	"github.com/golang/geo/r2"

	"github.com/2dChan/r2voronoi/r2geom"
)

// Relax applies steps rounds of Lloyd relaxation: each round moves
// every site to the centroid of its cell clipped to the clip box and
// rebuilds the diagram from the moved sites. Sites spread toward an
// even covering of the box. The diagram must carry a clip box,
// otherwise Relax fails with ErrNoClipBox. If a rebuild fails, the
// diagram keeps the state of the last completed round.
func (vd *Diagram) Relax(steps int) error {
	if steps < 0 {
		return fmt.Errorf("r2voronoi: steps must be non-negative, got %d", steps)
	}
	if !vd.hasClipBox {
		return ErrNoClipBox
	}

	for range steps {
		sites := make([]r2.Point, vd.NumCells())
		for i := range sites {
			c, err := vd.Cell(i)
			if err != nil {
				return err
			}
			polygon, err := c.Polygon()
			if err != nil {
				return err
			}
			if c.Bounded() {
				polygon = clipToRect(polygon, vd.clipBox)
			}

			// A cell that misses the clip box has no centroid in it;
			// its site stays put.
			centroid, ok := r2geom.Centroid(polygon)
			if !ok {
				centroid = vd.Sites[i]
			}
			sites[i] = centroid
		}

		next, err := NewDiagram(sites, WithClipBox(vd.clipBox))
		if err != nil {
			return fmt.Errorf("relax: %w", err)
		}
		*vd = *next
	}
	return nil
}
