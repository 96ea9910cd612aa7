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
	"math"

	"github.com/ctessum/unit"
)

// FireModel is the family base for combustion hazard models. The
// family carries bookkeeping only; the physics lives in the concrete
// models such as PoolFire.
type FireModel struct {
	ModelState
}

func newFireModel(material string, matParams, envParams []Param) (FireModel, error) {
	state, err := newModelState(material, matParams, envParams)
	if err != nil {
		return FireModel{}, err
	}
	return FireModel{ModelState: state}, nil
}

// Info renders the audit report.
func (m *FireModel) Info() string {
	return m.ModelState.Info("fire reports")
}

// DefaultCombustionEfficiency is the burning efficiency factor η
// assumed when a caller does not specify one. Literature values run
// 0.13-0.35.
const DefaultCombustionEfficiency = 0.24

// PoolFire models a burning pool of flammable liquid: burning rate,
// flame height, total radiative output, and incident radiant flux or
// radius at a target.
//
// Material parameters (required lazily, per method): boiling_point
// (K), combustion_heat (J/kg), specific_heat_capacity (J/(kg·K)),
// gasification_heat (J/kg), burning_speed (kg/(m²·s), may be absent).
// Environment parameters: pool_radius (m), env_temp (K), air_density
// (kg/m³).
type PoolFire struct {
	FireModel
}

// NewPoolFire constructs a pool fire model for the named material.
func NewPoolFire(material string, matParams, envParams []Param) (*PoolFire, error) {
	fm, err := newFireModel(material, matParams, envParams)
	if err != nil {
		return nil, err
	}
	return &PoolFire{FireModel: fm}, nil
}

// BurningSpeed calculates the mass burning flux (kg/(m²·s)). A
// supplied positive burning_speed wins unchanged; otherwise the
// Burgess-Hertzberg correlation is applied, adding the sensible-heat
// term only when the boiling point exceeds the ambient temperature.
func (m *PoolFire) BurningSpeed() (float64, error) {
	if v, ok := m.matParams.value("burning_speed").Float64(); ok && v > 0 {
		return v, nil
	}
	if v, ok := m.cached("burning_speed(kg/(m^2*s))"); ok {
		return v, nil
	}

	combustionHeat, err := m.requireMatPositive("combustion_heat")
	if err != nil {
		return 0, err
	}
	specificHeat, err := m.requireMatPositive("specific_heat_capacity")
	if err != nil {
		return 0, err
	}
	gasificationHeat, err := m.requireMatPositive("gasification_heat")
	if err != nil {
		return 0, err
	}
	boilingPoint, err := m.requireMat("boiling_point")
	if err != nil {
		return 0, err
	}
	envTemp, err := m.requireEnv("env_temp")
	if err != nil {
		return 0, err
	}

	var speed float64
	if deltaT := boilingPoint - envTemp; deltaT > 0 {
		speed = 1e-3 * combustionHeat / (specificHeat*deltaT + gasificationHeat)
	} else {
		speed = 1e-3 * combustionHeat / gasificationHeat
	}

	m.recordResult("burning_speed(kg/(m^2*s))", speed, unit.Dimensions{
		unit.MassDim: 1, unit.LengthDim: -2, unit.TimeDim: -1,
	})
	return speed, nil
}

// FlameHeight calculates the flame height (m) from the burning speed,
// pool radius, and air density via the Thomas power-law correlation.
func (m *PoolFire) FlameHeight() (float64, error) {
	if v, ok := m.cached("flame_height(m)"); ok {
		return v, nil
	}
	airDensity, err := m.requireEnvPositive("air_density")
	if err != nil {
		return 0, err
	}
	poolRadius, err := m.requireEnvPositive("pool_radius")
	if err != nil {
		return 0, err
	}
	burningSpeed, err := m.BurningSpeed()
	if err != nil {
		return 0, err
	}

	height := 84 * poolRadius *
		math.Pow(burningSpeed/(airDensity*math.Sqrt(19.6*poolRadius)), 0.6)

	m.recordResult("flame_height(m)", height, unit.Meter)
	return height, nil
}

// HeatRadiation calculates the total radiative output (W) of the pool
// fire for the given burning efficiency factor eta.
func (m *PoolFire) HeatRadiation(eta float64) (float64, error) {
	if eta <= 0 {
		return 0, validationErr("eta", "must be positive, got %g", eta)
	}
	key := fmt.Sprintf("heat_radiation(eta=%g)", eta)
	if v, ok := m.cached(key); ok {
		return v, nil
	}
	poolRadius, err := m.requireEnvPositive("pool_radius")
	if err != nil {
		return 0, err
	}
	combustionHeat, err := m.requireMatPositive("combustion_heat")
	if err != nil {
		return 0, err
	}
	burningSpeed, err := m.BurningSpeed()
	if err != nil {
		return 0, err
	}
	flameHeight, err := m.FlameHeight()
	if err != nil {
		return 0, err
	}

	radiation := math.Pi * poolRadius * (poolRadius + 2*flameHeight) *
		burningSpeed * eta * combustionHeat /
		(72*math.Pow(burningSpeed, 0.6) + 1)

	m.recordResult(key, radiation, unit.Watt)
	return radiation, nil
}

// HeatRadiationStrengthAt calculates the incident radiant flux (W/m²)
// at distance x (m) from the pool center, assuming inverse-square
// spreading attenuated by the atmospheric transmissivity theta.
func (m *PoolFire) HeatRadiationStrengthAt(x, eta, theta float64) (float64, error) {
	if x <= 0 {
		return 0, validationErr("x", "must be positive, got %g", x)
	}
	if theta <= 0 {
		return 0, validationErr("theta", "must be positive, got %g", theta)
	}
	key := fmt.Sprintf("heat_radiation_strength(%gm)", x)
	if v, ok := m.cached(key); ok {
		return v, nil
	}
	radiation, err := m.HeatRadiation(eta)
	if err != nil {
		return 0, err
	}

	strength := radiation * theta / (4 * math.Pi * x * x)

	m.recordResult(key, strength, unit.Dimensions{
		unit.MassDim: 1, unit.TimeDim: -3,
	})
	return strength, nil
}

// HeatRadiationRadius calculates the distance (m) from the pool center
// at which the incident radiant flux equals strength (W/m²).
func (m *PoolFire) HeatRadiationRadius(strength, eta, theta float64) (float64, error) {
	if strength <= 0 {
		return 0, validationErr("strength", "must be positive, got %g", strength)
	}
	if theta <= 0 {
		return 0, validationErr("theta", "must be positive, got %g", theta)
	}
	key := fmt.Sprintf("heat_radiation_radius(%gW/m^2)", strength)
	if v, ok := m.cached(key); ok {
		return v, nil
	}
	radiation, err := m.HeatRadiation(eta)
	if err != nil {
		return 0, err
	}

	radius := math.Sqrt(theta * radiation / (4 * math.Pi * strength))

	m.recordResult(key, radius, unit.Meter)
	return radius, nil
}

// Info renders the audit report.
func (m *PoolFire) Info() string {
	return m.ModelState.Info("pool fire model reports")
}
