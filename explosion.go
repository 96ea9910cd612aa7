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

package hazcon

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Surveyed overpressure (MPa) against distance from the detonation
// point (m) for a 1000 kg TNT ground burst. The table spans 5-75 m;
// evaluation outside that range is clamped, not extrapolated.
var (
	tntCurveDistance = []float64{
		5, 6, 7, 8, 9, 10, 12, 14, 16, 18, 20, 25,
		30, 35, 40, 45, 50, 55, 60, 65, 70, 75,
	}
	tntCurveOverpressure = []float64{
		2.94, 2.06, 1.67, 1.27, 0.95, 0.76, 0.50, 0.33, 0.235, 0.17, 0.126, 0.079,
		0.057, 0.043, 0.033, 0.027, 0.0235, 0.0205, 0.018, 0.016, 0.0143, 0.013,
	}
)

const (
	tntCurveMinDistance = 5.0  // m
	tntCurveMaxDistance = 75.0 // m

	// Clamp values for evaluation outside the surveyed range: closer
	// than 5 m the overpressure is capped, beyond 75 m it is treated
	// as fully decayed, and the inverse direction mirrors both caps.
	tntOverpressureCeiling = 3.0  // MPa
	tntOverpressureFloor   = 0.01 // MPa
	tntNearDistance        = 4.0  // m
	tntFarDistance         = 80.0 // m
)

// ExplosionModel is the family base for explosion hazard models. On
// construction it fits a monotone cubic spline through the 1000 kg TNT
// reference curve and a second spline through the same data re-sorted
// by overpressure, giving forward and inverse evaluation.
type ExplosionModel struct {
	ModelState
	pod interp.FritschButland // overpressure as a function of distance
	dop interp.FritschButland // distance as a function of overpressure
}

func newExplosionModel(material string, matParams, envParams []Param) (ExplosionModel, error) {
	state, err := newModelState(material, matParams, envParams)
	if err != nil {
		return ExplosionModel{}, err
	}
	m := ExplosionModel{ModelState: state}

	if err := m.pod.Fit(tntCurveDistance, tntCurveOverpressure); err != nil {
		return ExplosionModel{}, fmt.Errorf("hazcon: fitting overpressure-distance curve: %v", err)
	}
	// Re-sorting by overpressure reverses the table: overpressure
	// decreases monotonically with distance.
	n := len(tntCurveDistance)
	pres := make([]float64, n)
	dist := make([]float64, n)
	for i := 0; i < n; i++ {
		pres[i] = tntCurveOverpressure[n-1-i]
		dist[i] = tntCurveDistance[n-1-i]
	}
	if err := m.dop.Fit(pres, dist); err != nil {
		return ExplosionModel{}, fmt.Errorf("hazcon: fitting distance-overpressure curve: %v", err)
	}
	return m, nil
}

// TNTOverpressureAt calculates the shock wave overpressure (MPa) at
// the given distance (m) from a 1000 kg TNT detonation. Distances
// beyond the surveyed table decay to 0; distances inside the surveyed
// minimum return the capped ceiling value.
func (m *ExplosionModel) TNTOverpressureAt(distance float64) (float64, error) {
	if distance < 0 {
		return 0, validationErr("distance", "must not be negative, got %g", distance)
	}
	switch {
	case distance > tntCurveMaxDistance:
		return 0, nil
	case distance < tntCurveMinDistance:
		return tntOverpressureCeiling, nil
	}
	return m.pod.Predict(distance), nil
}

// TNTDistanceAt calculates the distance (m) from a 1000 kg TNT
// detonation at which the shock wave overpressure (MPa) equals the
// given value. Overpressures above the ceiling map to the nearest
// surveyed small distance; overpressures below the floor map to the
// far-field cap.
func (m *ExplosionModel) TNTDistanceAt(overpressure float64) (float64, error) {
	if overpressure < 0 {
		return 0, validationErr("overpressure", "must not be negative, got %g", overpressure)
	}
	switch {
	case overpressure > tntOverpressureCeiling:
		return tntNearDistance, nil
	case overpressure < tntOverpressureFloor:
		return tntFarDistance, nil
	}
	return m.dop.Predict(overpressure), nil
}

// Info renders the audit report.
func (m *ExplosionModel) Info() string {
	return m.ModelState.Info("explosion reports")
}
