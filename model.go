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

// Package hazcon calculates hazard-consequence metrics for industrial
// accident scenarios: blast overpressure and radius for vapor cloud
// explosions, thermal radiation for pool fires, and ground-level
// concentration fields for toxic gas plumes.
//
// Each model is constructed per scenario from a material name plus two
// parameter mappings (intrinsic material properties and ambient
// environment conditions) and accumulates every intermediate and final
// value it derives into an ordered result mapping for audit. Models
// are not safe for concurrent use; the reference tables they share are
// immutable and may be read from any number of instances at once.
package hazcon

import (
	"github.com/ctessum/unit"
	"github.com/sirupsen/logrus"
)

// logger is the default destination for derivation traces. Library use
// is quiet unless a caller raises the level or installs its own logger
// with SetLogger.
var logger = func() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.WarnLevel)
	return l
}()

// Results is an ordered, append-by-key mapping from a human-readable
// result label to a dimensioned value, accumulated as calculation
// steps run. Labels may encode the producing input (for example
// "overpressure radius(0.1MPa)") so repeated calls with different
// arguments coexist.
type Results struct {
	names   []string
	entries map[string]*unit.Unit
}

func newResults() *Results {
	return &Results{entries: make(map[string]*unit.Unit)}
}

func (r *Results) add(name string, u *unit.Unit) {
	if _, ok := r.entries[name]; !ok {
		r.names = append(r.names, name)
	}
	r.entries[name] = u
}

// Get returns a copy of the named result and whether it exists.
func (r *Results) Get(name string) (*unit.Unit, bool) {
	if r == nil {
		return nil, false
	}
	u, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return u.Clone(), true
}

// Value returns the numeric value of the named result, or 0 if the
// result has not been recorded.
func (r *Results) Value(name string) float64 {
	u, ok := r.Get(name)
	if !ok {
		return 0
	}
	return u.Value()
}

// Names returns the result labels in the order they were first recorded.
func (r *Results) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, len(r.names))
	copy(names, r.names)
	return names
}

// Len returns the number of recorded results.
func (r *Results) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Clone returns an independent copy.
func (r *Results) Clone() *Results {
	c := newResults()
	if r == nil {
		return c
	}
	for _, name := range r.names {
		c.add(name, r.entries[name].Clone())
	}
	return c
}

// ModelState is the shared bookkeeping embedded by every hazard model:
// the material name, the two input parameter mappings, and the
// accumulating result mapping. Accessors return defensive copies, so
// callers never see live internal state.
type ModelState struct {
	material  string
	matParams *Params
	envParams *Params
	results   *Results
	log       logrus.FieldLogger
}

func newModelState(material string, matParams, envParams []Param) (ModelState, error) {
	mp, err := NewParams(matParams)
	if err != nil {
		return ModelState{}, err
	}
	ep, err := NewParams(envParams)
	if err != nil {
		return ModelState{}, err
	}
	return ModelState{
		material:  material,
		matParams: mp,
		envParams: ep,
		results:   newResults(),
		log:       logger,
	}, nil
}

// Material returns the modeled material name.
func (s *ModelState) Material() string { return s.material }

// MaterialParams returns a copy of the material parameter mapping.
func (s *ModelState) MaterialParams() *Params { return s.matParams.Clone() }

// EnvironmentParams returns a copy of the environment parameter mapping.
func (s *ModelState) EnvironmentParams() *Params { return s.envParams.Clone() }

// Results returns a copy of the accumulated result mapping.
func (s *ModelState) Results() *Results { return s.results.Clone() }

// SetLogger redirects the model's derivation trace.
func (s *ModelState) SetLogger(l logrus.FieldLogger) { s.log = l }

// Fit is a capability hook for fitting an area-wide hazard posture.
// The base implementation is a no-op.
func (s *ModelState) Fit() error { return nil }

// Plot is a capability hook for rendering an area heat map.
// The base implementation is a no-op.
func (s *ModelState) Plot() error { return nil }

func (s *ModelState) recordResult(name string, v float64, d unit.Dimensions) {
	s.results.add(name, unit.New(v, d))
	s.log.WithFields(logrus.Fields{"result": name, "value": v}).Debug("recorded result")
}

// cached reports a previously recorded result, making repeated
// invocations of a derivation idempotent.
func (s *ModelState) cached(name string) (float64, bool) {
	u, ok := s.results.Get(name)
	if !ok {
		return 0, false
	}
	return u.Value(), true
}

// requireMat returns a present material parameter or a ValidationError.
func (s *ModelState) requireMat(name string) (float64, error) {
	v, ok := s.matParams.value(name).Float64()
	if !ok {
		return 0, validationErr(name, "required material parameter not supplied")
	}
	return v, nil
}

// requireEnv returns a present environment parameter or a ValidationError.
func (s *ModelState) requireEnv(name string) (float64, error) {
	v, ok := s.envParams.value(name).Float64()
	if !ok {
		return 0, validationErr(name, "required environment parameter not supplied")
	}
	return v, nil
}

func (s *ModelState) requireMatPositive(name string) (float64, error) {
	v, err := s.requireMat(name)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, validationErr(name, "must be positive, got %g", v)
	}
	return v, nil
}

func (s *ModelState) requireEnvPositive(name string) (float64, error) {
	v, err := s.requireEnv(name)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, validationErr(name, "must be positive, got %g", v)
	}
	return v, nil
}

func (s *ModelState) requireEnvNonNegative(name string) (float64, error) {
	v, err := s.requireEnv(name)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, validationErr(name, "must not be negative, got %g", v)
	}
	return v, nil
}

// Required-parameter declarations. Each model type's requirement set is
// the union of its family's set and its own additions, composed
// explicitly rather than through inheritance. The lists describe the
// input schema a caller should satisfy; enforcement stays lazy, at the
// point of first use.

// BaseMaterialParams lists material parameters every model requires.
func BaseMaterialParams() []string { return nil }

// BaseEnvironmentParams lists environment parameters every model
// requires: the accident site coordinates.
func BaseEnvironmentParams() []string {
	return []string{"center_longitude", "center_latitude"}
}

// ExplosionMaterialParams lists material parameters required by
// explosion models.
func ExplosionMaterialParams() []string { return unionParams(BaseMaterialParams()) }

// ExplosionEnvironmentParams lists environment parameters required by
// explosion models.
func ExplosionEnvironmentParams() []string { return unionParams(BaseEnvironmentParams()) }

// FireMaterialParams lists material parameters required by fire models.
func FireMaterialParams() []string { return unionParams(BaseMaterialParams()) }

// FireEnvironmentParams lists environment parameters required by fire
// models.
func FireEnvironmentParams() []string { return unionParams(BaseEnvironmentParams()) }

// GasDiffusionMaterialParams lists material parameters required by gas
// diffusion models.
func GasDiffusionMaterialParams() []string { return unionParams(BaseMaterialParams()) }

// GasDiffusionEnvironmentParams lists environment parameters required
// by gas diffusion models.
func GasDiffusionEnvironmentParams() []string {
	return unionParams(BaseEnvironmentParams(), []string{
		"total_cloudiness",
		"low_cloudiness",
		"wind_speed",
		"start_time",
	})
}

// VaporCloudExplosionMaterialParams lists material parameters required
// by the vapor cloud explosion model.
func VaporCloudExplosionMaterialParams() []string {
	return unionParams(ExplosionMaterialParams(), []string{
		"material_density",
		"combustion_heat",
	})
}

// VaporCloudExplosionEnvironmentParams lists environment parameters
// required by the vapor cloud explosion model.
func VaporCloudExplosionEnvironmentParams() []string {
	return unionParams(ExplosionEnvironmentParams(), []string{
		"tnt_explosive_energy",
		"material_volume",
		"material_weight",
	})
}

// PoolFireMaterialParams lists material parameters required by the
// pool fire model.
func PoolFireMaterialParams() []string {
	return unionParams(FireMaterialParams(), []string{
		"boiling_point",
		"combustion_heat",
		"specific_heat_capacity",
		"gasification_heat",
		"burning_speed",
	})
}

// PoolFireEnvironmentParams lists environment parameters required by
// the pool fire model.
func PoolFireEnvironmentParams() []string {
	return unionParams(FireEnvironmentParams(), []string{
		"pool_radius",
		"env_temp",
		"air_density",
	})
}

// PointSourceGasDiffusionMaterialParams lists material parameters
// required by the point source gas diffusion model.
func PointSourceGasDiffusionMaterialParams() []string {
	return unionParams(GasDiffusionMaterialParams())
}

// PointSourceGasDiffusionEnvironmentParams lists environment
// parameters required by the point source gas diffusion model.
func PointSourceGasDiffusionEnvironmentParams() []string {
	return unionParams(GasDiffusionEnvironmentParams(), []string{
		"source_strength",
		"wind_speed",
	})
}

// unionParams concatenates parameter name lists, dropping duplicates
// while preserving first-seen order.
func unionParams(lists ...[]string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, list := range lists {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
