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
	"math"
	"time"

	"github.com/ctessum/geom"
	"github.com/ctessum/unit"
	"github.com/spatialrisk/hazcon/geodesic"
)

// StabilityClass is a Pasquill-style atmospheric stability rating.
// Intermediate classes (for example B~C) come from the GB/T 13201-91
// classification table.
type StabilityClass string

// Atmospheric stability classes, from strongly unstable (A) to
// moderately stable (F).
const (
	ClassA  StabilityClass = "A"
	ClassAB StabilityClass = "A~B"
	ClassB  StabilityClass = "B"
	ClassBC StabilityClass = "B~C"
	ClassC  StabilityClass = "C"
	ClassCD StabilityClass = "C~D"
	ClassD  StabilityClass = "D"
	ClassDE StabilityClass = "D~E"
	ClassE  StabilityClass = "E"
	ClassEF StabilityClass = "E~F"
	ClassF  StabilityClass = "F"
)

// solarRadiationTable maps cloud-cover category (row) and solar
// elevation category (column; column 0 is night) to the solar
// radiation level of GB/T 13201-91.
var solarRadiationTable = [5][5]int{
	{-2, -1, 1, 2, 3},
	{-1, 0, 1, 2, 3},
	{-1, 0, 0, 1, 1},
	{0, 0, 0, 0, 1},
	{0, 0, 0, 0, 0},
}

// stabilityTable maps wind-speed category (row) and solar radiation
// level (column; columns ordered +3 down to -2) to stability class.
var stabilityTable = [5][6]StabilityClass{
	{ClassA, ClassAB, ClassB, ClassD, ClassE, ClassF},
	{ClassAB, ClassB, ClassC, ClassD, ClassE, ClassF},
	{ClassB, ClassBC, ClassC, ClassD, ClassD, ClassE},
	{ClassC, ClassCD, ClassD, ClassD, ClassD, ClassD},
	{ClassD, ClassD, ClassD, ClassD, ClassD, ClassD},
}

// dispersionRow holds one row of power-law regression coefficients:
// σy = g1·x^a1 (horizontal) and σz = g2·x^a2 (vertical). Rows with
// zeroed horizontal coefficients are vertical-only rows.
type dispersionRow struct {
	a1, g1, a2, g2 float64
}

// dispersionCoeffTable holds the GB/T 13201-91 dispersion parameter
// regression coefficients per stability class. Row positions within
// each class are selected by the distance-band rules in
// DiffusionParamCoefficients.
var dispersionCoeffTable = map[StabilityClass][]dispersionRow{
	ClassA: {
		{0, 0, 1.12154, 0.079990},
		{0.901074, 0.425809, 1.51360, 0.008548},
		{0.850934, 0.602052, 2.10881, 0.000212},
	},
	ClassAB: {
		{0.907722, 0.353828, 1.19986, 0.071909},
		{0.857974, 0.499203, 1.60119, 0.028618},
	},
	ClassB: {
		{0.914370, 0.281846, 0.96444, 0.127190},
		{0.865014, 0.396353, 1.09356, 0.057025},
	},
	ClassBC: {
		{0.919325, 0.229500, 0.94102, 0.114682},
		{0.875086, 0.314238, 1.00770, 0.075718},
	},
	ClassC: {
		{0.924279, 0.177154, 0, 0},
		{0.885157, 0.232123, 0.91760, 0.106803},
	},
	ClassCD: {
		{0, 0, 0.83863, 0.126152},
		{0.926849, 0.143940, 0.75641, 0.235667},
		{0.886940, 0.189396, 0.81558, 0.136659},
	},
	ClassD: {
		{0, 0, 0.82621, 0.104634},
		{0.929418, 0.110726, 0.63202, 0.400167},
		{0.888723, 0.146669, 0.55536, 0.810763},
	},
	ClassDE: {
		{0, 0, 0.77686, 0.111771},
		{0.925118, 0.098563, 0.57235, 0.528992},
		{0.892794, 0.124308, 0.49915, 1.037100},
	},
	ClassE: {
		{0, 0, 0.78837, 0.092753},
		{0.920818, 0.086400, 0.56518, 0.433384},
		{0.896864, 0.101947, 0.41474, 1.732410},
	},
	ClassEF: {
		{0, 0, 0.78639, 0.077415},
		{0.925118, 0.070882, 0.54558, 0.401700},
		{0.892794, 0.087641, 0.36870, 2.069660},
	},
	ClassF: {
		{0, 0, 0.78440, 0.062077},
		{0.929418, 0.055363, 0.52597, 0.370015},
		{0.888723, 0.073335, 0.32266, 2.406910},
	},
}

// DispersionCoeffs are the regression coefficients selected for one
// stability class and downwind distance band.
type DispersionCoeffs struct {
	Alpha1, Gamma1 float64 // horizontal: σy = Gamma1·x^Alpha1
	Alpha2, Gamma2 float64 // vertical:   σz = Gamma2·x^Alpha2
}

// DefaultSamplingFrequency is the sampling interval (minutes) assumed
// for σy when a caller does not specify one; it corresponds to the
// 0.5 h averaging time the regression coefficients were derived for.
const DefaultSamplingFrequency = 30.0

const degToRad = math.Pi / 180

// GasDiffusionModel is the family base for gas dispersion models. It
// derives the chain of atmospheric classifications — solar
// declination, solar elevation, solar radiation level, stability
// class, dispersion coefficients — each memoized in the result mapping
// so repeated calls are idempotent.
type GasDiffusionModel struct {
	ModelState
	startTime time.Time
	stability StabilityClass
}

func newGasDiffusionModel(material string, matParams, envParams []Param) (GasDiffusionModel, error) {
	state, err := newModelState(material, matParams, envParams)
	if err != nil {
		return GasDiffusionModel{}, err
	}
	m := GasDiffusionModel{ModelState: state}

	// An absent accident start time defaults to the construction
	// time, matching local-time semantics everywhere it is read.
	if v, ok := m.envParams.value("start_time").Float64(); ok {
		m.startTime = time.Unix(int64(v), 0).In(time.Local)
	} else {
		m.startTime = time.Now()
	}
	return m, nil
}

// StartTime returns the accident start time the model classifies with.
func (m *GasDiffusionModel) StartTime() time.Time { return m.startTime }

// Declination calculates the solar declination (degrees) for the
// accident day of year using the GB/T 13201-91 trigonometric series.
// Day 366 folds to 365.
func (m *GasDiffusionModel) Declination() float64 {
	if v, ok := m.cached("declination"); ok {
		return v
	}
	day := m.startTime.YearDay()
	if day == 366 {
		day = 365
	}
	theta := 2 * math.Pi * float64(day) / 365

	decl := (0.006918 - 0.399912*math.Cos(theta) + 0.070257*math.Sin(theta) -
		0.006758*math.Cos(2*theta) + 0.000907*math.Sin(2*theta) -
		0.002697*math.Cos(3*theta) + 0.00148*math.Sin(3*theta)) * (180 / math.Pi)

	m.recordResult("declination", decl, unit.Dimless)
	return decl
}

// SolarAngle calculates the solar elevation angle (degrees) at the
// accident site and start hour. Site latitude and longitude must both
// be non-negative: the southern and western hemispheres are out of the
// model's domain.
func (m *GasDiffusionModel) SolarAngle() (float64, error) {
	if v, ok := m.cached("solar_angle"); ok {
		return v, nil
	}
	lon, err := m.requireEnvNonNegative("center_longitude")
	if err != nil {
		return 0, err
	}
	lat, err := m.requireEnvNonNegative("center_latitude")
	if err != nil {
		return 0, err
	}
	decl := m.Declination() * degToRad
	hour := float64(m.startTime.Hour())
	hourAngle := (15*hour + lon - 300) * degToRad

	sinH := math.Sin(lat*degToRad)*math.Sin(decl) +
		math.Cos(lat*degToRad)*math.Cos(decl)*math.Cos(hourAngle)
	angle := math.Asin(math.Max(-1, math.Min(1, sinH))) / degToRad

	m.recordResult("solar_angle", angle, unit.Dimless)
	return angle, nil
}

// SolarRadiationLevel classifies the solar radiation level from cloud
// cover and, during daytime hours (07:00-19:00 local), the solar
// elevation angle. Total cloudiness must be at least the low
// cloudiness. Cloud-cover bands use inclusive lower and exclusive
// upper bounds.
func (m *GasDiffusionModel) SolarRadiationLevel() (int, error) {
	if v, ok := m.cached("solar_radiation_level"); ok {
		return int(v), nil
	}
	tc, err := m.requireEnvNonNegative("total_cloudiness")
	if err != nil {
		return 0, err
	}
	lc, err := m.requireEnvNonNegative("low_cloudiness")
	if err != nil {
		return 0, err
	}
	if tc < lc {
		return 0, validationErr("total_cloudiness",
			"total cloudiness %g less than low cloudiness %g", tc, lc)
	}

	var row int
	switch {
	case tc < 5 && lc < 5:
		row = 0
	case tc < 8 && lc < 5:
		row = 1
	case lc < 5:
		row = 2
	case lc < 8:
		row = 3
	default:
		row = 4
	}

	col := 0
	if hour := m.startTime.Hour(); 7 <= hour && hour < 19 {
		angle, err := m.SolarAngle()
		if err != nil {
			return 0, err
		}
		switch {
		case angle <= 15:
			col = 1
		case angle <= 35:
			col = 2
		case angle <= 65:
			col = 3
		default:
			col = 4
		}
	}

	level := solarRadiationTable[row][col]
	m.recordResult("solar_radiation_level", float64(level), unit.Dimless)
	return level, nil
}

// AtmosphericStability classifies the atmospheric stability from the
// wind speed band and the solar radiation level.
func (m *GasDiffusionModel) AtmosphericStability() (StabilityClass, error) {
	if m.stability != "" {
		return m.stability, nil
	}
	windSpeed, err := m.requireEnvPositive("wind_speed")
	if err != nil {
		return "", err
	}
	level, err := m.SolarRadiationLevel()
	if err != nil {
		return "", err
	}

	var row int
	switch {
	case windSpeed <= 1.9:
		row = 0
	case windSpeed <= 2.9:
		row = 1
	case windSpeed <= 4.9:
		row = 2
	case windSpeed <= 5.9:
		row = 3
	default:
		row = 4
	}

	// Columns are ordered from level +3 down to -2.
	m.stability = stabilityTable[row][3-level]
	return m.stability, nil
}

// DiffusionParamCoefficients selects the horizontal and vertical
// dispersion coefficient rows for the model's stability class and a
// downwind distance. The distance is either given directly (downwind
// >= 0, which wins when both are given) or derived from the great-
// ellipse distance between the site center and point. It returns the
// selected coefficients and the resolved downwind distance (m).
func (m *GasDiffusionModel) DiffusionParamCoefficients(point *geom.Point, downwind float64) (DispersionCoeffs, float64, error) {
	if point == nil && downwind < 0 {
		return DispersionCoeffs{}, 0, validationErr("downwind",
			"either a GIS point or a downwind distance is required")
	}
	if point != nil && (point.X < 0 || point.Y < 0) {
		return DispersionCoeffs{}, 0, validationErr("point",
			"coordinates must not be negative, got (%g, %g)", point.X, point.Y)
	}
	class, err := m.AtmosphericStability()
	if err != nil {
		return DispersionCoeffs{}, 0, err
	}

	x := downwind
	if x < 0 {
		lon, err := m.requireEnvNonNegative("center_longitude")
		if err != nil {
			return DispersionCoeffs{}, 0, err
		}
		lat, err := m.requireEnvNonNegative("center_latitude")
		if err != nil {
			return DispersionCoeffs{}, 0, err
		}
		x, err = geodesic.Distance(geom.Point{X: lon, Y: lat}, *point)
		if err != nil {
			return DispersionCoeffs{}, 0, validationErr("point", "%v", err)
		}
	}

	rows := dispersionCoeffTable[class]

	// Distance-band selection. Band edges and the coefficient rows
	// they select vary per stability class.
	var h, v int
	switch class {
	case ClassA:
		switch {
		case x <= 300:
			h, v = 1, 0
		case x <= 500:
			h, v = 1, 1
		case x <= 1000:
			h, v = 1, 2
		default:
			h, v = 2, 2
		}
	case ClassAB, ClassB, ClassBC:
		switch {
		case x <= 500:
			h, v = 0, 0
		case x <= 1000:
			h, v = 0, 1
		default:
			h, v = 1, 1
		}
	case ClassC:
		if x <= 1000 {
			h, v = 0, 1
		} else {
			h, v = 1, 1
		}
	case ClassD, ClassE, ClassEF, ClassF:
		switch {
		case x <= 1000:
			h, v = 1, 0
		case x <= 10000:
			h, v = 2, 1
		default:
			h, v = 2, 2
		}
	case ClassCD, ClassDE:
		switch {
		case x <= 1000:
			h, v = 1, 0
		case x <= 2000:
			h, v = 2, 1
		default:
			h, v = 2, 2
		}
	default:
		return DispersionCoeffs{}, 0, validationErr("stability",
			"unrecognized stability class %q", class)
	}

	c := DispersionCoeffs{
		Alpha1: rows[h].a1,
		Gamma1: rows[h].g1,
		Alpha2: rows[v].a2,
		Gamma2: rows[v].g2,
	}
	m.recordResult("alpha1", c.Alpha1, unit.Dimless)
	m.recordResult("gama1", c.Gamma1, unit.Dimless)
	m.recordResult("alpha2", c.Alpha2, unit.Dimless)
	m.recordResult("gama2", c.Gamma2, unit.Dimless)
	return c, x, nil
}

// DiffusionParameters calculates the plume dispersion widths σy and σz
// (m) at a downwind distance, resolved as in
// DiffusionParamCoefficients. freq is the sampling interval in minutes
// (30 <= freq < 6000); σy carries the standard averaging-time
// correction (freq/60/0.5)^q with q = 0.2 below one hour and 0.3 from
// one hour up.
func (m *GasDiffusionModel) DiffusionParameters(point *geom.Point, downwind, freq float64) (sigmaY, sigmaZ float64, err error) {
	if freq < 30 || freq >= 6000 {
		return 0, 0, validationErr("freq",
			"sampling frequency must be in [30, 6000) minutes, got %g", freq)
	}
	c, x, err := m.DiffusionParamCoefficients(point, downwind)
	if err != nil {
		return 0, 0, err
	}

	sigmaY = c.Gamma1 * math.Pow(x, c.Alpha1)
	sigmaZ = c.Gamma2 * math.Pow(x, c.Alpha2)

	freqHours := freq / 60
	q := 0.3
	if freqHours >= 0.5 && freqHours < 1 {
		q = 0.2
	}
	sigmaY *= math.Pow(freqHours/0.5, q)

	m.recordResult("sigma_y(m)", sigmaY, unit.Meter)
	m.recordResult("sigma_z(m)", sigmaZ, unit.Meter)
	return sigmaY, sigmaZ, nil
}

// Info renders the audit report.
func (m *GasDiffusionModel) Info() string {
	return m.ModelState.Info("gas diffusion report")
}
