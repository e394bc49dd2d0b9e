// Package matter compensates printed parts for the way plastic behaves as
// it cools.
package matter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/someline/someline/sdf"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{Name: "pla", shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
	// PETG shrinks a little more than PLA and strings more when pulled.
	PETG = ViscousMaterial{Name: "petg", shrink: 0.4e-2, pullShrink: .5}
	// Exact leaves parts unchanged.
	Exact = ViscousMaterial{Name: "none"}
)

var materials = map[string]ViscousMaterial{
	PLA.Name:   PLA,
	PETG.Name:  PETG,
	Exact.Name: Exact,
}

type ViscousMaterial struct {
	Name string
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

// Lookup returns the material with the given name. Names are not case
// sensitive and the empty name is Exact.
func Lookup(name string) (ViscousMaterial, error) {
	if name == "" {
		return Exact, nil
	}
	m, ok := materials[strings.ToLower(name)]
	if !ok {
		return ViscousMaterial{}, fmt.Errorf("unknown material %q, want one of %s", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Names returns the known material names in order.
func Names() []string {
	names := make([]string, 0, len(materials))
	for name := range materials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Shrink returns the fraction a part contracts by after printing.
func (m ViscousMaterial) Shrink() float64 { return m.shrink }

// Scale enlarges s so it cools down to its modelled size.
func (m ViscousMaterial) Scale(s sdf.SDF3) sdf.SDF3 {
	if m.shrink == 0 {
		return s
	}
	return sdf.ScaleUniform3D(s, 1/(1-m.shrink))
}

// InternalDimScale returns the size to model a hole at so it prints at real.
func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}
