// SPDX-License-Identifier: MIT

package parameters

import (
	"math"
	"strings"
)

// Bounds returns the active bound of every parameter under mode.
//
// Maximal bounds carry only the hard constraints: t_in > t₀, m² ≥ t₀ of the
// resonance's channel, Γ ≥ 0; coefficients are unbounded and always-fixed
// parameters are pinned to their value. Handpicked bounds intersect these
// with the resonance catalog windows, a finite t_in window and a finite
// window for the pion pole/zero.
func (v *Vector) Bounds(mode BoundsMode) map[string]Bound {
	d := families[v.family]
	out := make(map[string]Bound, len(v.names))
	for i, name := range v.names {
		out[name] = v.bound(d, i, mode)
	}

	return out
}

// FreeBounds returns the bounds of the free parameters as parallel slices,
// in FreeValues order.
func (v *Vector) FreeBounds(mode BoundsMode) (lower, upper []float64) {
	d := families[v.family]
	lower = make([]float64, 0, v.NumFree())
	upper = make([]float64, 0, v.NumFree())
	for i := range v.names {
		if v.fixed.Test(uint(i)) {
			continue
		}
		b := v.bound(d, i, mode)
		lower = append(lower, b.Lower)
		upper = append(upper, b.Upper)
	}

	return lower, upper
}

func (v *Vector) bound(d familyDef, i int, mode BoundsMode) Bound {
	name := v.names[i]
	if v.alwaysFixed.Test(uint(i)) {
		return Bound{Lower: v.values[i], Upper: v.values[i]}
	}

	var hard, window Bound
	switch {
	case strings.HasPrefix(name, inelasticPrefix):
		t0 := v.values[v.index[thresholdPrefix+strings.TrimPrefix(name, inelasticPrefix)]]
		hard = Bound{Lower: t0 + hardGap, Upper: math.Inf(1)}
		window = Bound{Lower: t0 + inelasticMinGap, Upper: inelasticMax}
	case strings.HasPrefix(name, massPrefix):
		key := strings.TrimPrefix(name, massPrefix)
		hard = Bound{Lower: math.Sqrt(v.resonanceThreshold(d, key)) * (1 + hardGap), Upper: math.Inf(1)}
		window = catalog[key].massWindow
	case strings.HasPrefix(name, widthPrefix):
		hard = Bound{Lower: 0, Upper: math.Inf(1)}
		window = catalog[strings.TrimPrefix(name, widthPrefix)].widthWindow
	case strings.HasPrefix(name, "w_"):
		hard = Unbounded
		window = Bound{Lower: -wWindow, Upper: wWindow}
	default:
		return Unbounded
	}

	if mode == BoundsMaximal {
		return hard
	}

	return Bound{Lower: math.Max(hard.Lower, window.Lower), Upper: math.Min(hard.Upper, window.Upper)}
}

// resonanceThreshold returns the largest t₀ among the channels that contain key.
func (v *Vector) resonanceThreshold(d familyDef, key string) float64 {
	suffix := isovector
	for _, k := range d.scalar {
		if k == key {
			suffix = isoscalar
			break
		}
	}
	t0 := 0.0
	for _, ch := range d.channels() {
		if strings.HasSuffix(ch, suffix) {
			t0 = math.Max(t0, v.values[v.index[thresholdPrefix+ch]])
		}
	}

	return t0
}

// WithinBounds reports whether every free parameter lies in its bound.
func (v *Vector) WithinBounds(mode BoundsMode) bool {
	bounds := v.Bounds(mode)
	for i, name := range v.names {
		if v.fixed.Test(uint(i)) {
			continue
		}
		if !bounds[name].Contains(v.values[i]) {
			return false
		}
	}

	return true
}
