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

const (
	// DefaultTNTYieldFactor is the TNT-equivalence yield factor α
	// assumed when a caller does not specify one. Literature values
	// run 0.0002-0.149.
	DefaultTNTYieldFactor = 0.04

	// DefaultGroundReflectionFactor is the ground-burst reflection
	// factor β assumed when a caller does not specify one.
	DefaultGroundReflectionFactor = 1.8

	// defaultTNTExplosiveEnergy is the blast energy of 1 kg of TNT
	// (kJ/kg) used when the tnt_explosive_energy environment
	// parameter is absent. The physical range is 4230-4836.
	defaultTNTExplosiveEnergy = 4500.0
)

// VaporCloudExplosion models the blast consequences of an exploding
// flammable vapor cloud by TNT equivalence: the cloud's explosive
// energy is expressed as a TNT mass and the 1000 kg reference curve is
// scaled by the cube-root blast scaling law.
//
// Material parameters: material_density (kg/m³), combustion_heat
// (kJ/kg). Environment parameters: material_weight (kg, may be
// absent), material_volume (m³, may be absent), tnt_explosive_energy
// (kJ/kg, may be absent).
type VaporCloudExplosion struct {
	ExplosionModel
}

// NewVaporCloudExplosion constructs a vapor cloud explosion model for
// the named material.
func NewVaporCloudExplosion(material string, matParams, envParams []Param) (*VaporCloudExplosion, error) {
	em, err := newExplosionModel(material, matParams, envParams)
	if err != nil {
		return nil, err
	}
	return &VaporCloudExplosion{ExplosionModel: em}, nil
}

// MaterialWeight calculates the vapor cloud mass (kg). A supplied
// positive material_weight wins; otherwise the mass is derived from
// material_volume and material_density, both of which must then be
// supplied and positive.
func (m *VaporCloudExplosion) MaterialWeight() (float64, error) {
	if v, ok := m.envParams.value("material_weight").Float64(); ok && v > 0 {
		return v, nil
	}
	if v, ok := m.cached("material_weight(kg)"); ok {
		return v, nil
	}
	volume, err := m.requireEnvPositive("material_volume")
	if err != nil {
		return 0, err
	}
	density, err := m.requireMatPositive("material_density")
	if err != nil {
		return 0, err
	}

	weight := volume * density
	m.recordResult("material_weight(kg)", weight, unit.Kilogram)
	return weight, nil
}

// ExplosiveEnergy calculates the blast energy (kJ) released by the
// cloud: E = α·β·Hc·W, with the yield factor alpha and ground
// reflection factor beta.
func (m *VaporCloudExplosion) ExplosiveEnergy(alpha, beta float64) (float64, error) {
	if alpha <= 0 {
		return 0, validationErr("alpha", "must be positive, got %g", alpha)
	}
	if beta <= 0 {
		return 0, validationErr("beta", "must be positive, got %g", beta)
	}
	if v, ok := m.cached("explosive_energy(kJ)"); ok {
		return v, nil
	}
	combustionHeat, err := m.requireMatPositive("combustion_heat")
	if err != nil {
		return 0, err
	}
	weight, err := m.MaterialWeight()
	if err != nil {
		return 0, err
	}

	energy := alpha * beta * combustionHeat * weight
	m.recordResult("explosive_energy(kJ)", energy, unit.Dimless)
	return energy, nil
}

// TNTEquivalent calculates the TNT mass (kg) releasing the same blast
// energy as the cloud. The per-kilogram TNT reference energy comes
// from the tnt_explosive_energy environment parameter when supplied,
// and defaults to 4500 kJ/kg otherwise.
func (m *VaporCloudExplosion) TNTEquivalent(alpha, beta float64) (float64, error) {
	if v, ok := m.cached("tnt_weight(kg)"); ok {
		return v, nil
	}

	tntEnergy := defaultTNTExplosiveEnergy
	if v, ok := m.envParams.value("tnt_explosive_energy").Float64(); ok {
		if v <= 0 {
			return 0, validationErr("tnt_explosive_energy", "must be positive, got %g", v)
		}
		tntEnergy = v
	}
	energy, err := m.ExplosiveEnergy(alpha, beta)
	if err != nil {
		return 0, err
	}

	tntWeight := energy / tntEnergy
	m.recordResult("tnt_weight(kg)", tntWeight, unit.Kilogram)
	return tntWeight, nil
}

// WaveOverpressureAt calculates the shock wave overpressure (MPa) at
// distance x (m) from the explosion center, scaling the reference
// curve distance by the inverse cube root of the TNT-equivalent mass.
func (m *VaporCloudExplosion) WaveOverpressureAt(x, alpha, beta float64) (float64, error) {
	if x <= 0 {
		return 0, validationErr("x", "must be positive, got %g", x)
	}
	key := fmt.Sprintf("wave_overpressure(%gm)", x)
	if v, ok := m.cached(key); ok {
		return v, nil
	}
	tntWeight, err := m.TNTEquivalent(alpha, beta)
	if err != nil {
		return 0, err
	}

	relativeDistance := x / (0.1 * math.Cbrt(tntWeight))
	overpressure, err := m.TNTOverpressureAt(relativeDistance)
	if err != nil {
		return 0, err
	}
	if overpressure < 0 {
		overpressure = 0
	}

	m.recordResult(key, overpressure, unit.Dimless)
	return overpressure, nil
}

// WaveRadius calculates the distance (m) from the explosion center at
// which the shock wave overpressure equals p (MPa).
func (m *VaporCloudExplosion) WaveRadius(p, alpha, beta float64) (float64, error) {
	if p <= 0 {
		return 0, validationErr("p", "must be positive, got %g", p)
	}
	key := fmt.Sprintf("wave_radius(%gMPa)", p)
	if v, ok := m.cached(key); ok {
		return v, nil
	}
	tntWeight, err := m.TNTEquivalent(alpha, beta)
	if err != nil {
		return 0, err
	}
	relativeDistance, err := m.TNTDistanceAt(p)
	if err != nil {
		return 0, err
	}

	radius := 0.1 * math.Cbrt(tntWeight) * relativeDistance
	if radius < 0 {
		radius = 0
	}

	m.recordResult(key, radius, unit.Meter)
	return radius, nil
}

// Info renders the audit report.
func (m *VaporCloudExplosion) Info() string {
	return m.ModelState.Info("vapor cloud explosion model reports")
}
