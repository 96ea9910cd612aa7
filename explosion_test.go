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
	"testing"
)

func newTestExplosionModel(t *testing.T) *ExplosionModel {
	t.Helper()
	m, err := newExplosionModel("tnt", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return &m
}

func TestTNTOverpressureAtKnots(t *testing.T) {
	const tolerance = 1.e-9
	m := newTestExplosionModel(t)

	// The spline interpolates the surveyed table, so evaluation at a
	// surveyed distance reproduces the surveyed overpressure.
	for i, d := range tntCurveDistance {
		p, err := m.TNTOverpressureAt(d)
		if err != nil {
			t.Fatal(err)
		}
		if absDifferent(p, tntCurveOverpressure[i], tolerance) {
			t.Errorf("overpressure(%g m)=%g, want %g", d, p, tntCurveOverpressure[i])
		}
	}
}

func TestTNTOverpressureAtClamps(t *testing.T) {
	m := newTestExplosionModel(t)

	if p, err := m.TNTOverpressureAt(80); err != nil || p != 0 {
		t.Errorf("overpressure(80 m)=(%g, %v), want (0, nil)", p, err)
	}
	if p, err := m.TNTOverpressureAt(4); err != nil || p != 3.0 {
		t.Errorf("overpressure(4 m)=(%g, %v), want (3, nil)", p, err)
	}
	_, err := m.TNTOverpressureAt(-1)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("overpressure(-1 m): expected ValidationError, got %v", err)
	}
}

func TestTNTDistanceAtKnots(t *testing.T) {
	const tolerance = 1.e-9
	m := newTestExplosionModel(t)

	for i, p := range tntCurveOverpressure {
		d, err := m.TNTDistanceAt(p)
		if err != nil {
			t.Fatal(err)
		}
		if absDifferent(d, tntCurveDistance[i], tolerance) {
			t.Errorf("distance(%g MPa)=%g, want %g", p, d, tntCurveDistance[i])
		}
	}
}

func TestTNTDistanceAtClamps(t *testing.T) {
	m := newTestExplosionModel(t)

	if d, err := m.TNTDistanceAt(3.5); err != nil || d != 4 {
		t.Errorf("distance(3.5 MPa)=(%g, %v), want (4, nil)", d, err)
	}
	if d, err := m.TNTDistanceAt(0.005); err != nil || d != 80 {
		t.Errorf("distance(0.005 MPa)=(%g, %v), want (80, nil)", d, err)
	}
	_, err := m.TNTDistanceAt(-0.1)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Errorf("distance(-0.1 MPa): expected ValidationError, got %v", err)
	}
}

// Between surveyed points the forward and inverse splines are fit to
// the same data, so a forward-then-inverse round trip stays close to
// where it started.
func TestTNTRoundTrip(t *testing.T) {
	const tolerance = 0.08 // relative
	m := newTestExplosionModel(t)

	for _, d := range []float64{5, 7.5, 11, 15, 22.5, 32.5, 47.5, 62.5, 75} {
		p, err := m.TNTOverpressureAt(d)
		if err != nil {
			t.Fatal(err)
		}
		back, err := m.TNTDistanceAt(p)
		if err != nil {
			t.Fatal(err)
		}
		if different(back, d, tolerance) {
			t.Errorf("round trip %g m -> %g MPa -> %g m", d, p, back)
		}
	}
}

func TestTNTOverpressureMonotonic(t *testing.T) {
	m := newTestExplosionModel(t)

	prev, err := m.TNTOverpressureAt(5)
	if err != nil {
		t.Fatal(err)
	}
	for d := 5.5; d <= 75; d += 0.5 {
		p, err := m.TNTOverpressureAt(d)
		if err != nil {
			t.Fatal(err)
		}
		if p > prev {
			t.Fatalf("overpressure increased with distance at %g m: %g > %g", d, p, prev)
		}
		prev = p
	}
}
