// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

// Package utils provides utility functions for generating planar point sets for Voronoi diagrams.

package utils

import (
	"math/rand"

	"github.com/golang/geo/r2"
)

// GenerateRandomPoints generates random points in the unit square [0, 1).
// The seed parameter ensures reproducibility.
func GenerateRandomPoints(cnt int, seed int64) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	sites := make([]r2.Point, cnt)

	for i := range cnt {
		sites[i] = r2.Point{
			X: random.Float64(),
			Y: random.Float64(),
		}
	}

	return sites
}

// GenerateRandomPointsInRect generates random points inside rect.
// The seed parameter ensures reproducibility.
func GenerateRandomPointsInRect(cnt int, seed int64, rect r2.Rect) []r2.Point {
	//nolint:gosec
	random := rand.New(rand.NewSource(seed))
	sites := make([]r2.Point, cnt)

	for i := range cnt {
		sites[i] = r2.Point{
			X: rect.X.Lo + random.Float64()*rect.X.Length(),
			Y: rect.Y.Lo + random.Float64()*rect.Y.Length(),
		}
	}

	return sites
}
