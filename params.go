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

// Value is a numeric parameter value that may be explicitly absent.
// Absent values are not errors: calculations that can fall back to a
// secondary formula or a fixed default do so, and calculations that
// cannot return a ValidationError at the point of first use.
type Value struct {
	v       float64
	present bool
}

// Number returns a present Value.
func Number(v float64) Value { return Value{v: v, present: true} }

// Missing returns an absent Value.
func Missing() Value { return Value{} }

// Float64 reports the value and whether it is present.
func (v Value) Float64() (float64, bool) { return v.v, v.present }

// Present reports whether the value was supplied.
func (v Value) Present() bool { return v.present }

func (v Value) String() string {
	if !v.present {
		return "absent"
	}
	return formatFloat(v.v)
}

// A Param is one named model parameter.
type Param struct {
	Name  string
	Value Value
}

// Params is an ordered mapping from parameter name to Value. The zero
// value is an empty mapping.
type Params struct {
	names  []string
	values map[string]Value
}

// NewParams builds a Params mapping from a list of parameters,
// preserving order. A duplicated name returns a ValidationError.
func NewParams(params []Param) (*Params, error) {
	p := &Params{
		names:  make([]string, 0, len(params)),
		values: make(map[string]Value, len(params)),
	}
	for _, kv := range params {
		if _, ok := p.values[kv.Name]; ok {
			return nil, validationErr(kv.Name, "duplicate parameter name")
		}
		p.names = append(p.names, kv.Name)
		p.values[kv.Name] = kv.Value
	}
	return p, nil
}

// Get reports the value for name and whether name was supplied at all.
func (p *Params) Get(name string) (Value, bool) {
	if p == nil {
		return Value{}, false
	}
	v, ok := p.values[name]
	return v, ok
}

// value is like Get but folds "not supplied" into "absent".
func (p *Params) value(name string) Value {
	v, _ := p.Get(name)
	return v
}

// Names returns the parameter names in insertion order.
func (p *Params) Names() []string {
	if p == nil {
		return nil
	}
	names := make([]string, len(p.names))
	copy(names, p.names)
	return names
}

// Len returns the number of parameters.
func (p *Params) Len() int {
	if p == nil {
		return 0
	}
	return len(p.names)
}

// Clone returns an independent copy.
func (p *Params) Clone() *Params {
	if p == nil {
		return &Params{values: map[string]Value{}}
	}
	c := &Params{
		names:  make([]string, len(p.names)),
		values: make(map[string]Value, len(p.values)),
	}
	copy(c.names, p.names)
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}
