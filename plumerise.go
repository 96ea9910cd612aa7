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
	"github.com/ctessum/atmos/plumerise"
	"github.com/ctessum/unit"
)

const (
	gravity = 9.80665 // m/s²

	// stableLapseRate is the potential temperature gradient (K/m)
	// assumed for the stability parameter under stable conditions.
	stableLapseRate = 0.02
)

// EffectiveSourceHeight calculates the effective release height (m) of
// a stack emission after ASME (1973) plume rise, for use as the
// source height in ConcentrationAt and DistributionFor. Inputs are the
// stack height (m), stack diameter (m), exit gas temperature (K),
// exit velocity (m/s), and ambient air temperature (K); wind speed and
// the stable/unstable regime come from the model's environment
// parameters and atmospheric stability classification.
func (m *PointSourceGasDiffusion) EffectiveSourceHeight(stackHeight, stackDiam, stackTemp, stackVel, airTemp float64) (float64, error) {
	if stackHeight < 0 {
		return 0, validationErr("stackHeight", "must not be negative, got %g", stackHeight)
	}
	if stackDiam <= 0 {
		return 0, validationErr("stackDiam", "must be positive, got %g", stackDiam)
	}
	if stackTemp <= 0 || airTemp <= 0 {
		return 0, validationErr("stackTemp", "temperatures must be positive, got %g and %g",
			stackTemp, airTemp)
	}
	if stackVel < 0 {
		return 0, validationErr("stackVel", "must not be negative, got %g", stackVel)
	}
	windSpeed, err := m.requireEnvPositive("wind_speed")
	if err != nil {
		return 0, err
	}
	class, err := m.AtmosphericStability()
	if err != nil {
		return 0, err
	}

	// Single-layer met profile around the stack; the top is placed
	// far enough up that only extreme rises leave it, and those clamp.
	var sClass, s1 float64
	switch class {
	case ClassDE, ClassE, ClassEF, ClassF:
		sClass = 1
		s1 = gravity / airTemp * stableLapseRate
	}
	layerHeights := []float64{0, stackHeight + 5000}
	_, height, err := plumerise.ASME(stackHeight, stackDiam, stackTemp, stackVel,
		layerHeights, []float64{airTemp}, []float64{windSpeed},
		[]float64{sClass}, []float64{s1})
	if err == plumerise.ErrAboveModelTop {
		height = layerHeights[1]
		err = nil
	}
	if err != nil {
		return 0, computationErr("plume rise", "%v", err)
	}

	m.recordResult("effective_source_height(m)", height, unit.Meter)
	return height, nil
}
