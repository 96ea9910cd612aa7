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

	"github.com/ctessum/geom"
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// concentrationFloor is the smallest concentration (mg/m³) the model
// reports; values below it clamp to zero.
const concentrationFloor = 1e-6

// axisEpsilon keeps the plume formula defined on the source axis,
// where the dispersion widths vanish.
const axisEpsilon = 1e-32

// PointSourceGasDiffusion models the steady-state Gaussian plume from
// a continuous point source: concentration at a point, the crosswind
// half-width of a target iso-concentration region, and a 1-D search
// along the downwind axis bounding the region that exceeds a target.
//
// Environment parameters beyond the gas diffusion family's:
// source_strength (g/s) and wind_speed (m/s).
type PointSourceGasDiffusion struct {
	GasDiffusionModel
}

// NewPointSourceGasDiffusion constructs a point source gas diffusion
// model for the named material.
func NewPointSourceGasDiffusion(material string, matParams, envParams []Param) (*PointSourceGasDiffusion, error) {
	gm, err := newGasDiffusionModel(material, matParams, envParams)
	if err != nil {
		return nil, err
	}
	return &PointSourceGasDiffusion{GasDiffusionModel: gm}, nil
}

// SourceStrength returns the supplied emission rate (g/s). A missing
// or non-positive source strength is a configuration error; there is
// no default.
func (m *PointSourceGasDiffusion) SourceStrength() (float64, error) {
	return m.requireEnvPositive("source_strength")
}

// ConcentrationAt evaluates the plume concentration (mg/m³) at a
// receptor described by its downwind distance, crosswind offset,
// height above ground, and the effective source height (all m). The
// receptor may instead be given as a GIS point, in which case the
// downwind distance is derived from the site center and downwind must
// be negative. The combination of zero and nonzero crosswind, ground
// height, and source height selects the matching algebraic
// simplification of the double-reflection plume formula. record
// controls whether the value is added to the result mapping.
func (m *PointSourceGasDiffusion) ConcentrationAt(point *geom.Point, downwind, crosswind, groundHeight, sourceHeight float64, record bool) (float64, error) {
	if crosswind < 0 {
		return 0, validationErr("crosswind", "must not be negative, got %g", crosswind)
	}
	if groundHeight < 0 {
		return 0, validationErr("groundHeight", "must not be negative, got %g", groundHeight)
	}
	if sourceHeight < 0 {
		return 0, validationErr("sourceHeight", "must not be negative, got %g", sourceHeight)
	}
	windSpeed, err := m.requireEnvPositive("wind_speed")
	if err != nil {
		return 0, err
	}
	sourceStrength, err := m.SourceStrength()
	if err != nil {
		return 0, err
	}

	if point == nil {
		downwind += axisEpsilon
	}
	sigmaY, sigmaZ, err := m.DiffusionParameters(point, downwind, DefaultSamplingFrequency)
	if err != nil {
		return 0, err
	}
	if sigmaY*sigmaZ == 0 {
		return 0, computationErr("concentration",
			"dispersion widths vanished (sigma_y=%g, sigma_z=%g)", sigmaY, sigmaZ)
	}

	a1 := sourceStrength / (math.Pi * windSpeed * sigmaY * sigmaZ)
	a2 := -0.5 * math.Pow(crosswind/sigmaY, 2)
	a3 := -0.5 * math.Pow((groundHeight-sourceHeight)/sigmaZ, 2)
	a4 := -0.5 * math.Pow((groundHeight+sourceHeight)/sigmaZ, 2)

	var concentration float64
	switch {
	case (sourceHeight == 0 || groundHeight == 0) && crosswind != 0:
		concentration = a1 * math.Exp(a2+a4)
	case crosswind == 0 && groundHeight == 0 && sourceHeight != 0:
		concentration = a1 * math.Exp(a4)
	case crosswind == 0 && groundHeight == 0 && sourceHeight == 0:
		concentration = a1
	default:
		concentration = 0.5 * a1 * (math.Exp(a2+a3) + math.Exp(a2+a4))
	}
	if concentration < concentrationFloor {
		concentration = 0
	}

	if record {
		key := fmt.Sprintf("concentration(%g, %g, %g, %g)",
			downwind, crosswind, groundHeight, sourceHeight)
		m.recordResult(key, concentration, unit.Dimensions{
			unit.MassDim: 1, unit.LengthDim: -3,
		})
	}
	return concentration, nil
}

// VerticalExtent calculates the crosswind half-width (m) at which the
// concentration falls to target (mg/m³), at downwind distance downwind
// (m), elapsed seconds after the release began, and an effective
// source height (m). The total released mass is the source strength
// times the elapsed time.
func (m *PointSourceGasDiffusion) VerticalExtent(target, elapsed, downwind, sourceHeight float64) (float64, error) {
	if target < 0 {
		return 0, validationErr("target", "must not be negative, got %g", target)
	}
	if elapsed <= 0 {
		return 0, validationErr("elapsed", "must be positive, got %g", elapsed)
	}
	windSpeed, err := m.requireEnvPositive("wind_speed")
	if err != nil {
		return 0, err
	}
	sourceStrength, err := m.SourceStrength()
	if err != nil {
		return 0, err
	}
	sigmaY, sigmaZ, err := m.DiffusionParameters(nil, downwind, DefaultSamplingFrequency)
	if err != nil {
		return 0, err
	}
	if sigmaY*sigmaZ == 0 {
		return 0, computationErr("vertical extent",
			"dispersion widths vanished (sigma_y=%g, sigma_z=%g)", sigmaY, sigmaZ)
	}

	weight := sourceStrength * elapsed
	concentration := target + axisEpsilon
	t1 := math.Log(1e6 * weight / (windSpeed * concentration * math.Pi * sigmaY * sigmaZ))
	t2 := 0.5 * math.Pow(sourceHeight/sigmaZ, 2)
	radicand := 2 * sigmaY * sigmaY * (t1 - t2)
	if radicand < 0 {
		return 0, computationErr("vertical extent",
			"target concentration %g mg/m^3 is not reached at %g m downwind", target, downwind)
	}

	b := math.Sqrt(radicand)
	m.recordResult(fmt.Sprintf("area(%gmg/m^3) b", target), b, unit.Meter)
	return b, nil
}

// ConcentrationRegion bounds the region where a target concentration
// is exceeded. When the target is at or above the axis maximum no
// bounded region exists: Bounded is false and only Target is set, with
// the maximum reported through Distribution's peak fields.
type ConcentrationRegion struct {
	Target  float64 // mg/m³
	Bounded bool
	// Downwind interval of the region along the plume axis (m).
	Start, End float64
	// Ellipse semi-axes of the region: SemiMajor along the wind,
	// SemiMinor across it (m).
	SemiMajor, SemiMinor float64
}

// AxisProfile is the concentration profile sampled along the plume
// axis: Concentration[i] is the value at Distance[i] meters downwind.
type AxisProfile struct {
	Distance      []float64
	Concentration []float64
}

// Distribution describes how the plume concentration is distributed
// along the downwind axis after a release.
type Distribution struct {
	Regions []ConcentrationRegion
	// Location (m downwind) and value (mg/m³) of the axis maximum.
	PeakDistance      float64
	PeakConcentration float64
	// Profile holds the sampled axis profile when requested.
	Profile *AxisProfile
}

// DistributionFor samples the plume concentration along the downwind
// axis from 0 to windSpeed·elapsed meters at the given step and bounds
// the region exceeding each target concentration (mg/m³): the downwind
// interval comes from thresholding the sampled profile, the crosswind
// half-width from VerticalExtent. Targets at or above the axis maximum
// yield unbounded regions. Set includeProfile to also return the
// sampled profile.
func (m *PointSourceGasDiffusion) DistributionFor(targets []float64, elapsed, groundHeight, sourceHeight, step float64, includeProfile bool) (*Distribution, error) {
	if sourceHeight < 0 {
		return nil, validationErr("sourceHeight", "must not be negative, got %g", sourceHeight)
	}
	if elapsed <= 0 {
		return nil, validationErr("elapsed", "must be positive, got %g", elapsed)
	}
	windSpeed, err := m.requireEnvPositive("wind_speed")
	if err != nil {
		return nil, err
	}
	maxDistance := math.Ceil(windSpeed * elapsed)
	if step <= 0 || step >= maxDistance {
		return nil, validationErr("step",
			"must be in (0, %g), got %g", maxDistance, step)
	}

	n := int(maxDistance / step)
	distances := make([]float64, n+1)
	floats.Span(distances, 0, maxDistance)
	concentrations := make([]float64, len(distances))
	for i, x := range distances {
		concentrations[i], err = m.ConcentrationAt(nil, x, 0, groundHeight, sourceHeight, false)
		if err != nil {
			return nil, err
		}
	}

	peak := floats.MaxIdx(concentrations)
	dist := &Distribution{
		PeakDistance:      distances[peak],
		PeakConcentration: concentrations[peak],
	}
	m.log.WithFields(logrus.Fields{
		"samples": len(distances),
		"peak":    dist.PeakConcentration,
		"at":      dist.PeakDistance,
	}).Debug("sampled axis concentration profile")

	for _, target := range targets {
		if target < 0 {
			return nil, validationErr("target", "must not be negative, got %g", target)
		}
		if target >= dist.PeakConcentration {
			dist.Regions = append(dist.Regions, ConcentrationRegion{Target: target})
			continue
		}
		first, last := -1, -1
		for i, c := range concentrations {
			if c >= target {
				if first < 0 {
					first = i
				}
				last = i
			}
		}
		a := (distances[last] - distances[first]) / 2
		m.recordResult(fmt.Sprintf("area(%gmg/m^3) a", target), a, unit.Meter)
		b, err := m.VerticalExtent(target, elapsed, a, sourceHeight)
		if err != nil {
			return nil, err
		}
		dist.Regions = append(dist.Regions, ConcentrationRegion{
			Target:    target,
			Bounded:   true,
			Start:     distances[first],
			End:       distances[last],
			SemiMajor: a,
			SemiMinor: b,
		})
	}

	if includeProfile {
		dist.Profile = &AxisProfile{
			Distance:      distances,
			Concentration: concentrations,
		}
	}
	return dist, nil
}

// Info renders the audit report.
func (m *PointSourceGasDiffusion) Info() string {
	return m.ModelState.Info("point source gas diffusion model reports")
}
