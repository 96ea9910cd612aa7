/*
Copyright © 2019 the Hazcon authors.
This file is part of Hazcon.

Hazcon is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

Hazcon is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with Hazcon.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package geodesic calculates distances between longitude/latitude
// points on the Earth ellipsoid and discretizes rectangular areas into
// regular grids. Points are geom.Point values with X holding the
// longitude and Y the latitude, in degrees; only non-negative
// coordinates are in the supported domain.
package geodesic

import (
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// Earth ellipsoid radii (km).
const (
	semiMajorAxis = 6378.140
	semiMinorAxis = 6356.755
)

const degToRad = math.Pi / 180

// Distance calculates the great-ellipse distance (m) between two
// points using Lambert's approximation on reduced latitudes.
func Distance(a, b geom.Point) (float64, error) {
	for _, p := range []geom.Point{a, b} {
		if p.X < 0 || p.Y < 0 {
			return 0, fmt.Errorf("geodesic: coordinates must not be negative, got (%g, %g)", p.X, p.Y)
		}
	}
	if a == b {
		return 0, nil
	}

	flattening := (semiMajorAxis - semiMinorAxis) / semiMajorAxis
	// Reduced latitudes.
	pA := math.Atan(semiMinorAxis / semiMajorAxis * math.Tan(a.Y*degToRad))
	pB := math.Atan(semiMinorAxis / semiMajorAxis * math.Tan(b.Y*degToRad))

	cosSigma := math.Sin(pA)*math.Sin(pB) +
		math.Cos(pA)*math.Cos(pB)*math.Cos((a.X-b.X)*degToRad)
	sigma := math.Acos(math.Max(-1, math.Min(1, cosSigma)))
	if sigma == 0 {
		return 0, nil
	}

	c1 := (math.Sin(sigma) - sigma) *
		math.Pow(math.Sin(pA)+math.Sin(pB), 2) / math.Pow(math.Cos(sigma/2), 2)
	c2 := (math.Sin(sigma) + sigma) *
		math.Pow(math.Sin(pA)-math.Sin(pB), 2) / math.Pow(math.Sin(sigma/2), 2)
	dr := flattening / 8 * (c1 - c2)

	return semiMajorAxis * (sigma + dr) * 1e3, nil
}

// Grid discretizes the bounding rectangle of four corner points into a
// regular grid with approximately interval meters between neighboring
// grid points, returning the longitudes and latitudes of the grid
// points as arrays of shape [rows, columns].
func Grid(corners []geom.Point, interval float64) (lons, lats *sparse.DenseArray, err error) {
	if len(corners) != 4 {
		return nil, nil, fmt.Errorf("geodesic: need 4 corner points, got %d", len(corners))
	}
	if interval <= 0 {
		return nil, nil, fmt.Errorf("geodesic: grid interval must be positive, got %g", interval)
	}
	xmin, ymin := corners[0].X, corners[0].Y
	xmax, ymax := xmin, ymin
	for _, p := range corners[1:] {
		xmin = math.Min(xmin, p.X)
		ymin = math.Min(ymin, p.Y)
		xmax = math.Max(xmax, p.X)
		ymax = math.Max(ymax, p.Y)
	}
	if xmin < 0 || ymin < 0 {
		return nil, nil, fmt.Errorf("geodesic: coordinates must not be negative")
	}

	// One degree spans roughly 1e5 m; latitude rows are packed
	// slightly tighter to keep ground spacing near the interval.
	cols := int(math.Round((xmax - xmin) / (1e-5 * interval)))
	rows := int(math.Round((ymax - ymin) / (1e-5 * interval / 1.1)))
	if cols < 2 {
		cols = 2
	}
	if rows < 2 {
		rows = 2
	}

	lons = sparse.ZerosDense(rows, cols)
	lats = sparse.ZerosDense(rows, cols)
	for j := 0; j < rows; j++ {
		y := ymin + (ymax-ymin)*float64(j)/float64(rows-1)
		for i := 0; i < cols; i++ {
			x := xmin + (xmax-xmin)*float64(i)/float64(cols-1)
			lons.Set(x, j, i)
			lats.Set(y, j, i)
		}
	}
	return lons, lats, nil
}

// GridPoints is like Grid but flattens the result into a point list in
// row-major order.
func GridPoints(corners []geom.Point, interval float64) ([]geom.Point, error) {
	lons, lats, err := Grid(corners, interval)
	if err != nil {
		return nil, err
	}
	points := make([]geom.Point, len(lons.Elements))
	for i := range lons.Elements {
		points[i] = geom.Point{X: lons.Elements[i], Y: lats.Elements[i]}
	}
	return points, nil
}
