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
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

const reportWidth = 80

// Info renders the audit report: the material, both input parameter
// mappings, and every accumulated result in recording order.
func (s *ModelState) Info(title string) string {
	var buf bytes.Buffer
	rule := strings.Repeat("=", reportWidth)

	fmt.Fprintf(&buf, "%*s\n", (reportWidth+len(title))/2, strings.Title(title))
	fmt.Fprintln(&buf, rule)

	w := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Material\t%s\n", s.material)
	fmt.Fprintf(w, "\t\n")

	fmt.Fprintf(w, "Material Parameter\tValue\n")
	for _, name := range s.matParams.Names() {
		fmt.Fprintf(w, "%s\t%s\n", name, s.matParams.value(name))
	}
	fmt.Fprintf(w, "\t\n")

	fmt.Fprintf(w, "Environment Parameter\tValue\n")
	for _, name := range s.envParams.Names() {
		fmt.Fprintf(w, "%s\t%s\n", name, s.envParams.value(name))
	}
	fmt.Fprintf(w, "\t\n")

	fmt.Fprintf(w, "Result\tValue\n")
	for _, name := range s.results.Names() {
		u, _ := s.results.Get(name)
		fmt.Fprintf(w, "%s\t%v\n", name, u)
	}
	w.Flush()

	fmt.Fprintln(&buf, rule)
	return buf.String()
}
