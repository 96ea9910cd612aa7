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
	"testing"
	"time"
)

func TestEffectiveSourceHeightStable(t *testing.T) {
	m := newTestPointSource(t) // stability class E

	height, err := m.EffectiveSourceHeight(30, 2, 400, 5, 288)
	if err != nil {
		t.Fatal(err)
	}
	// A hot release rises; the rise is capped by the met profile top.
	if height <= 30 {
		t.Errorf("effective height=%g m, want above the 30 m stack", height)
	}
	if height > 30+5000 {
		t.Errorf("effective height=%g m, want at most %g", height, 30.0+5000)
	}
	if _, ok := m.Results().Get("effective_source_height(m)"); !ok {
		t.Error("effective source height was not recorded")
	}
}

func TestEffectiveSourceHeightUnstable(t *testing.T) {
	start := time.Date(2019, 6, 21, 12, 0, 0, 0, time.Local)
	m, err := NewPointSourceGasDiffusion("chlorine", nil, []Param{
		{Name: "center_longitude", Value: Number(120)},
		{Name: "center_latitude", Value: Number(30)},
		{Name: "total_cloudiness", Value: Number(0)},
		{Name: "low_cloudiness", Value: Number(0)},
		{Name: "wind_speed", Value: Number(2)},
		{Name: "source_strength", Value: Number(25000)},
		{Name: "start_time", Value: Number(float64(start.Unix()))},
	})
	if err != nil {
		t.Fatal(err)
	}

	height, err := m.EffectiveSourceHeight(30, 2, 400, 5, 288)
	if err != nil {
		t.Fatal(err)
	}
	if height <= 30 {
		t.Errorf("effective height=%g m, want above the 30 m stack", height)
	}
}

func TestEffectiveSourceHeightValidation(t *testing.T) {
	m := newTestPointSource(t)
	cases := []struct {
		name                                                 string
		stackHeight, stackDiam, stackTemp, stackVel, airTemp float64
	}{
		{"negative stack height", -1, 2, 400, 5, 288},
		{"zero stack diameter", 30, 0, 400, 5, 288},
		{"zero stack temperature", 30, 2, 0, 5, 288},
		{"zero air temperature", 30, 2, 400, 5, 0},
		{"negative exit velocity", 30, 2, 400, -5, 288},
	}
	for _, c := range cases {
		_, err := m.EffectiveSourceHeight(c.stackHeight, c.stackDiam, c.stackTemp, c.stackVel, c.airTemp)
		if err == nil {
			t.Errorf("%s: expected error", c.name)
		}
	}
}
