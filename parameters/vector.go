// SPDX-License-Identifier: MIT

package parameters

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Vector is an ordered set of named parameters with fixed flags.
// A Vector is not safe for concurrent use; each fit owns its own copy.
type Vector struct {
	family      Family
	names       []string
	values      []float64
	index       map[string]int
	fixed       *bitset.BitSet
	alwaysFixed *bitset.BitSet
}

// newVector builds a vector from an ordered list. Names listed in alwaysFixed
// are forced fixed regardless of their flag in params.
func newVector(family Family, params []Parameter, alwaysFixed []string) (*Vector, error) {
	n := uint(len(params))
	v := &Vector{
		family:      family,
		names:       make([]string, len(params)),
		values:      make([]float64, len(params)),
		index:       make(map[string]int, len(params)),
		fixed:       bitset.New(n),
		alwaysFixed: bitset.New(n),
	}
	for i, p := range params {
		if _, dup := v.index[p.Name]; dup {
			return nil, fmt.Errorf("%q: %w", p.Name, ErrDuplicateName)
		}
		v.index[p.Name] = i
		v.names[i] = p.Name
		v.values[i] = p.Value
		if p.Fixed {
			v.fixed.Set(uint(i))
		}
	}
	for _, name := range alwaysFixed {
		i, ok := v.index[name]
		if !ok {
			return nil, fmt.Errorf("always-fixed %q: %w", name, ErrUnknownParameter)
		}
		v.alwaysFixed.Set(uint(i))
		v.fixed.Set(uint(i))
	}

	return v, nil
}

func (v *Vector) lookup(name string) (int, error) {
	i, ok := v.index[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownParameter)
	}

	return i, nil
}

// Family returns the family tag.
func (v *Vector) Family() Family { return v.family }

// Len returns the number of parameters.
func (v *Vector) Len() int { return len(v.names) }

// Names returns all names in order.
func (v *Vector) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)

	return out
}

// Has reports whether name is part of the vector.
func (v *Vector) Has(name string) bool {
	_, ok := v.index[name]
	return ok
}

// Get returns the parameter called name.
func (v *Vector) Get(name string) (Parameter, error) {
	i, err := v.lookup(name)
	if err != nil {
		return Parameter{}, err
	}

	return v.at(i), nil
}

func (v *Vector) at(i int) Parameter {
	return Parameter{Name: v.names[i], Value: v.values[i], Fixed: v.fixed.Test(uint(i))}
}

// Value returns the value of name.
func (v *Vector) Value(name string) (float64, error) {
	i, err := v.lookup(name)
	if err != nil {
		return 0, err
	}

	return v.values[i], nil
}

// Set assigns a value by name. The fixed flag is unchanged.
func (v *Vector) Set(name string, value float64) error {
	i, err := v.lookup(name)
	if err != nil {
		return err
	}
	v.values[i] = value

	return nil
}

// Fix marks the named parameters fixed. Nothing changes on error.
func (v *Vector) Fix(names ...string) error {
	idx := make([]int, len(names))
	for k, name := range names {
		i, err := v.lookup(name)
		if err != nil {
			return err
		}
		idx[k] = i
	}
	for _, i := range idx {
		v.fixed.Set(uint(i))
	}

	return nil
}

// Release marks the named parameters free. Nothing changes on error.
//
// Errors:
//   - ErrUnknownParameter, ErrAlwaysFixed.
func (v *Vector) Release(names ...string) error {
	idx := make([]int, len(names))
	for k, name := range names {
		i, err := v.lookup(name)
		if err != nil {
			return err
		}
		if v.alwaysFixed.Test(uint(i)) {
			return fmt.Errorf("%q: %w", name, ErrAlwaysFixed)
		}
		idx[k] = i
	}
	for _, i := range idx {
		v.fixed.Clear(uint(i))
	}

	return nil
}

// FixAll fixes every parameter.
func (v *Vector) FixAll() {
	for i := range v.names {
		v.fixed.Set(uint(i))
	}
}

// ReleaseAll frees every parameter that is not always fixed.
func (v *Vector) ReleaseAll() {
	v.fixed = v.alwaysFixed.Clone()
}

// IsFixed reports the fixed flag of name.
func (v *Vector) IsFixed(name string) (bool, error) {
	i, err := v.lookup(name)
	if err != nil {
		return false, err
	}

	return v.fixed.Test(uint(i)), nil
}

// IsAlwaysFixed reports whether name can never be released.
func (v *Vector) IsAlwaysFixed(name string) bool {
	i, ok := v.index[name]
	return ok && v.alwaysFixed.Test(uint(i))
}

// AlwaysFixedNames returns the names that can never be released, in order.
func (v *Vector) AlwaysFixedNames() []string {
	return v.collect(func(i int) bool { return v.alwaysFixed.Test(uint(i)) })
}

// FreeNames returns the free names in order.
func (v *Vector) FreeNames() []string {
	return v.collect(func(i int) bool { return !v.fixed.Test(uint(i)) })
}

// FixedNames returns the fixed names in order.
func (v *Vector) FixedNames() []string {
	return v.collect(func(i int) bool { return v.fixed.Test(uint(i)) })
}

// NumFree returns the number of free parameters.
func (v *Vector) NumFree() int { return len(v.names) - int(v.fixed.Count()) }

func (v *Vector) collect(keep func(i int) bool) []string {
	out := make([]string, 0, len(v.names))
	for i, name := range v.names {
		if keep(i) {
			out = append(out, name)
		}
	}

	return out
}

// FreeValues returns the free values in order.
func (v *Vector) FreeValues() []float64 {
	out := make([]float64, 0, v.NumFree())
	for i, x := range v.values {
		if !v.fixed.Test(uint(i)) {
			out = append(out, x)
		}
	}

	return out
}

// UpdateFreeValues writes values into the free parameters in order.
// It is the inverse of FreeValues.
//
// Errors:
//   - ErrLengthMismatch when len(values) != NumFree().
func (v *Vector) UpdateFreeValues(values []float64) error {
	if len(values) != v.NumFree() {
		return fmt.Errorf("got %d values for %d free parameters: %w", len(values), v.NumFree(), ErrLengthMismatch)
	}
	k := 0
	for i := range v.values {
		if !v.fixed.Test(uint(i)) {
			v.values[i] = values[k]
			k++
		}
	}

	return nil
}

// Each calls fn for every parameter in order until fn returns false.
func (v *Vector) Each(fn func(p Parameter) bool) {
	for i := range v.names {
		if !fn(v.at(i)) {
			return
		}
	}
}

// ToList returns the parameters in order.
func (v *Vector) ToList() []Parameter {
	out := make([]Parameter, len(v.names))
	for i := range v.names {
		out[i] = v.at(i)
	}

	return out
}

// Clone returns a deep copy.
func (v *Vector) Clone() *Vector {
	c := &Vector{
		family:      v.family,
		names:       make([]string, len(v.names)),
		values:      make([]float64, len(v.values)),
		index:       make(map[string]int, len(v.index)),
		fixed:       v.fixed.Clone(),
		alwaysFixed: v.alwaysFixed.Clone(),
	}
	copy(c.names, v.names)
	copy(c.values, v.values)
	for k, i := range v.index {
		c.index[k] = i
	}

	return c
}

// Equal reports whether both vectors have the same family, names, values,
// fixed flags and always-fixed sets.
func (v *Vector) Equal(o *Vector) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.family != o.family || len(v.names) != len(o.names) {
		return false
	}
	for i := range v.names {
		if v.names[i] != o.names[i] || v.values[i] != o.values[i] {
			return false
		}
	}

	return v.fixed.Equal(o.fixed) && v.alwaysFixed.Equal(o.alwaysFixed)
}

// ResonanceNames returns every mass_* and decay_rate_* name in order.
func (v *Vector) ResonanceNames() []string {
	return v.collect(func(i int) bool { return IsResonanceName(v.names[i]) })
}

// CoefficientNames returns every a_* name in order.
func (v *Vector) CoefficientNames() []string {
	return v.collect(func(i int) bool { return IsCoefficientName(v.names[i]) })
}

// IsResonanceName reports whether name is a resonance mass or width.
func IsResonanceName(name string) bool {
	return strings.HasPrefix(name, massPrefix) || strings.HasPrefix(name, widthPrefix)
}

// IsCoefficientName reports whether name is a channel coefficient.
func IsCoefficientName(name string) bool { return strings.HasPrefix(name, coefficientPrefix) }

// String renders one "name = value [fixed]" line per parameter.
func (v *Vector) String() string {
	var sb strings.Builder
	sb.WriteString(string(v.family))
	sb.WriteString("\n")
	for i, name := range v.names {
		flag := ""
		if v.fixed.Test(uint(i)) {
			flag = " [fixed]"
		}
		fmt.Fprintf(&sb, "  %s = %.10g%s\n", name, v.values[i], flag)
	}

	return sb.String()
}
