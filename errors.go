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

import "fmt"

// ValidationError reports a missing, duplicated, or out-of-domain
// model parameter. It is returned at the point of first use of the
// offending value, not during construction.
type ValidationError struct {
	Param  string // the offending parameter or argument name
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("hazcon: parameter %q missing or invalid", e.Param)
	}
	return fmt.Sprintf("hazcon: parameter %q missing or invalid: %s", e.Param, e.Reason)
}

func validationErr(param, format string, args ...interface{}) error {
	return &ValidationError{Param: param, Reason: fmt.Sprintf(format, args...)}
}

// ComputationError reports a derived value that makes a calculation
// impossible, such as a zero denominator or a negative radicand.
// It is surfaced rather than silently producing infinities.
type ComputationError struct {
	Op     string // the calculation that failed
	Reason string
}

func (e *ComputationError) Error() string {
	return fmt.Sprintf("hazcon: %s: %s", e.Op, e.Reason)
}

func computationErr(op, format string, args ...interface{}) error {
	return &ComputationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}
