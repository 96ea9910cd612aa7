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
	"errors"
	"math"
	"testing"
	"time"
)

// Chlorine release at 02:00 local time, 25 kg/s, 1.5 m/s wind:
// stability class E.
func newTestPointSource(t *testing.T) *PointSourceGasDiffusion {
	t.Helper()
	start := time.Date(2019, 3, 12, 2, 0, 0, 0, time.Local)
	m, err := NewPointSourceGasDiffusion("chlorine", nil, []Param{
		{Name: "center_longitude", Value: Number(121.0583)},
		{Name: "center_latitude", Value: Number(30.6208)},
		{Name: "total_cloudiness", Value: Number(5)},
		{Name: "low_cloudiness", Value: Number(4)},
		{Name: "wind_speed", Value: Number(1.5)},
		{Name: "source_strength", Value: Number(25000)},
		{Name: "start_time", Value: Number(float64(start.Unix()))},
	})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSourceStrengthMissing(t *testing.T) {
	m, err := NewPointSourceGasDiffusion("chlorine", nil, []Param{
		{Name: "wind_speed", Value: Number(1.5)},
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = m.SourceStrength()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Param != "source_strength" {
		t.Errorf("Param=%q, want %q", verr.Param, "source_strength")
	}
}

func TestConcentrationGroundLevelCenterline(t *testing.T) {
	const tolerance = 1.e-9 // relative
	m := newTestPointSource(t)

	c, err := m.ConcentrationAt(nil, 100, 0, 0, 0, true)
	if err != nil {
		t.Fatal(err)
	}
	// With every offset zero the plume formula collapses to
	// Q/(π·u·σy·σz).
	sigmaY, sigmaZ, err := m.DiffusionParameters(nil, 100, DefaultSamplingFrequency)
	if err != nil {
		t.Fatal(err)
	}
	want := 25000 / (math.Pi * 1.5 * sigmaY * sigmaZ)
	if different(c, want, tolerance) {
		t.Errorf("concentration=%g mg/m^3, want %g", c, want)
	}
	if _, ok := m.Results().Get("concentration(100, 0, 0, 0)"); !ok {
		t.Error("concentration was not recorded")
	}
}

func TestConcentrationCrosswindDecay(t *testing.T) {
	const tolerance = 1.e-9
	m := newTestPointSource(t)

	center, err := m.ConcentrationAt(nil, 100, 0, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	off, err := m.ConcentrationAt(nil, 100, 10, 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	sigmaY, _, err := m.DiffusionParameters(nil, 100, DefaultSamplingFrequency)
	if err != nil {
		t.Fatal(err)
	}
	want := center * math.Exp(-0.5*math.Pow(10/sigmaY, 2))
	if different(off, want, tolerance) {
		t.Errorf("off-axis concentration=%g, want %g", off, want)
	}
}

func TestConcentrationElevatedSource(t *testing.T) {
	const tolerance = 1.e-9
	m := newTestPointSource(t)

	c, err := m.ConcentrationAt(nil, 1000, 0, 0, 30, false)
	if err != nil {
		t.Fatal(err)
	}
	sigmaY, sigmaZ, err := m.DiffusionParameters(nil, 1000, DefaultSamplingFrequency)
	if err != nil {
		t.Fatal(err)
	}
	a1 := 25000 / (math.Pi * 1.5 * sigmaY * sigmaZ)
	want := a1 * math.Exp(-0.5*math.Pow(30/sigmaZ, 2))
	if different(c, want, tolerance) {
		t.Errorf("elevated source concentration=%g, want %g", c, want)
	}
	if c <= 0 {
		t.Errorf("concentration=%g, want positive", c)
	}
}

func TestConcentrationDoubleReflection(t *testing.T) {
	const tolerance = 1.e-9
	m := newTestPointSource(t)

	c, err := m.ConcentrationAt(nil, 1000, 10, 2, 30, false)
	if err != nil {
		t.Fatal(err)
	}
	sigmaY, sigmaZ, err := m.DiffusionParameters(nil, 1000, DefaultSamplingFrequency)
	if err != nil {
		t.Fatal(err)
	}
	a1 := 25000 / (math.Pi * 1.5 * sigmaY * sigmaZ)
	a2 := -0.5 * math.Pow(10/sigmaY, 2)
	a3 := -0.5 * math.Pow((2-30)/sigmaZ, 2)
	a4 := -0.5 * math.Pow((2+30)/sigmaZ, 2)
	want := 0.5 * a1 * (math.Exp(a2+a3) + math.Exp(a2+a4))
	if different(c, want, tolerance) {
		t.Errorf("reflected concentration=%g, want %g", c, want)
	}

	// More crosswind offset always means less concentration.
	farther, err := m.ConcentrationAt(nil, 1000, 50, 2, 30, false)
	if err != nil {
		t.Fatal(err)
	}
	if farther >= c {
		t.Errorf("concentration did not decay crosswind: %g at 10 m, %g at 50 m", c, farther)
	}
}

// An elevated plume has not reached the ground close to the source; the
// vanishing value clamps to zero instead of underflowing.
func TestConcentrationFloor(t *testing.T) {
	m := newTestPointSource(t)
	c, err := m.ConcentrationAt(nil, 100, 0, 0, 30, false)
	if err != nil {
		t.Fatal(err)
	}
	if c != 0 {
		t.Errorf("concentration=%g, want 0", c)
	}
}

func TestConcentrationValidation(t *testing.T) {
	m := newTestPointSource(t)
	cases := []struct {
		name                                  string
		crosswind, groundHeight, sourceHeight float64
	}{
		{"crosswind", -1, 0, 0},
		{"groundHeight", 0, -1, 0},
		{"sourceHeight", 0, 0, -1},
	}
	for _, c := range cases {
		_, err := m.ConcentrationAt(nil, 100, c.crosswind, c.groundHeight, c.sourceHeight, false)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected ValidationError, got %v", c.name, err)
			continue
		}
		if verr.Param != c.name {
			t.Errorf("Param=%q, want %q", verr.Param, c.name)
		}
	}
}

func TestVerticalExtent(t *testing.T) {
	m := newTestPointSource(t)

	wide, err := m.VerticalExtent(1, 600, 435, 5)
	if err != nil {
		t.Fatal(err)
	}
	if wide <= 0 {
		t.Fatalf("half-width=%g, want positive", wide)
	}
	narrow, err := m.VerticalExtent(10, 600, 435, 5)
	if err != nil {
		t.Fatal(err)
	}
	if narrow >= wide {
		t.Errorf("half-width grew with target: %g at 10 mg/m^3, %g at 1 mg/m^3", narrow, wide)
	}

	// A target far above anything the release can produce is not
	// reached at all.
	_, err = m.VerticalExtent(1e30, 60, 100, 5)
	var cerr *ComputationError
	if !errors.As(err, &cerr) {
		t.Errorf("unreachable target: expected ComputationError, got %v", err)
	}

	if _, err := m.VerticalExtent(-1, 600, 435, 5); err == nil {
		t.Error("negative target: expected error")
	}
	if _, err := m.VerticalExtent(1, 0, 435, 5); err == nil {
		t.Error("zero elapsed: expected error")
	}
}

func TestDistributionFor(t *testing.T) {
	m := newTestPointSource(t)

	dist, err := m.DistributionFor([]float64{1, 1e9}, 600, 0, 5, 10, true)
	if err != nil {
		t.Fatal(err)
	}
	if dist.PeakConcentration <= 1 {
		t.Fatalf("peak concentration=%g, want > 1", dist.PeakConcentration)
	}
	if dist.PeakDistance <= 0 || dist.PeakDistance >= 900 {
		t.Errorf("peak distance=%g, want in (0, 900)", dist.PeakDistance)
	}
	if len(dist.Regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(dist.Regions))
	}

	bounded := dist.Regions[0]
	if !bounded.Bounded {
		t.Fatal("region for 1 mg/m^3 should be bounded")
	}
	if bounded.Start >= bounded.End {
		t.Errorf("region interval [%g, %g] is empty", bounded.Start, bounded.End)
	}
	if bounded.Start > dist.PeakDistance || dist.PeakDistance > bounded.End {
		t.Errorf("peak at %g m outside region [%g, %g]",
			dist.PeakDistance, bounded.Start, bounded.End)
	}
	if want := (bounded.End - bounded.Start) / 2; bounded.SemiMajor != want {
		t.Errorf("semi-major=%g, want %g", bounded.SemiMajor, want)
	}
	if bounded.SemiMinor <= 0 {
		t.Errorf("semi-minor=%g, want positive", bounded.SemiMinor)
	}

	if dist.Regions[1].Bounded {
		t.Error("region for 1e9 mg/m^3 should be unbounded")
	}

	if dist.Profile == nil {
		t.Fatal("profile requested but not returned")
	}
	if len(dist.Profile.Distance) != 91 || len(dist.Profile.Concentration) != 91 {
		t.Errorf("profile has %d/%d samples, want 91/91",
			len(dist.Profile.Distance), len(dist.Profile.Concentration))
	}
	if dist.Profile.Distance[0] != 0 || dist.Profile.Distance[90] != 900 {
		t.Errorf("profile spans [%g, %g], want [0, 900]",
			dist.Profile.Distance[0], dist.Profile.Distance[90])
	}
}

func TestDistributionForNoProfile(t *testing.T) {
	m := newTestPointSource(t)
	dist, err := m.DistributionFor([]float64{1}, 600, 0, 5, 10, false)
	if err != nil {
		t.Fatal(err)
	}
	if dist.Profile != nil {
		t.Error("profile returned but not requested")
	}
}

func TestDistributionForValidation(t *testing.T) {
	m := newTestPointSource(t)
	if _, err := m.DistributionFor([]float64{1}, 600, 0, 5, 0, false); err == nil {
		t.Error("zero step: expected error")
	}
	if _, err := m.DistributionFor([]float64{1}, 600, 0, 5, 1000, false); err == nil {
		t.Error("step beyond domain: expected error")
	}
	if _, err := m.DistributionFor([]float64{-1}, 600, 0, 5, 10, false); err == nil {
		t.Error("negative target: expected error")
	}
	if _, err := m.DistributionFor([]float64{1}, 0, 0, 5, 10, false); err == nil {
		t.Error("zero elapsed: expected error")
	}
}
