// SPDX-License-Identifier: MIT

package data

import (
	"math/rand"
	"sort"
)

// Merge concatenates groups in order and stably sorts the result by t, so
// points sharing a t keep their group order.
func Merge[P Point](groups ...Dataset[P]) Dataset[P] {
	var n int
	for _, g := range groups {
		n += g.Len()
	}
	idx := make([]int, 0, n)
	all := Dataset[P]{
		Points: make([]P, 0, n),
		Y:      make([]float64, 0, n),
		Sigma:  make([]float64, 0, n),
	}
	for _, g := range groups {
		all.Points = append(all.Points, g.Points...)
		all.Y = append(all.Y, g.Y...)
		all.Sigma = append(all.Sigma, g.Sigma...)
	}
	for i := 0; i < n; i++ {
		idx = append(idx, i)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return all.Points[idx[a]].Abscissa() < all.Points[idx[b]].Abscissa()
	})

	return all.pick(idx)
}

// MergeMeson is Merge for meson groups.
func MergeMeson(groups ...Dataset[MesonPoint]) Dataset[MesonPoint] { return Merge(groups...) }

// MergeNucleon is Merge for nucleon groups.
func MergeNucleon(groups ...Dataset[NucleonPoint]) Dataset[NucleonPoint] { return Merge(groups...) }

func (d Dataset[P]) pick(idx []int) Dataset[P] {
	out := Dataset[P]{
		Points: make([]P, len(idx)),
		Y:      make([]float64, len(idx)),
		Sigma:  make([]float64, len(idx)),
	}
	for k, i := range idx {
		out.Points[k] = d.Points[i]
		out.Y[k] = d.Y[i]
		out.Sigma[k] = d.Sigma[i]
	}

	return out
}

// Filter keeps the points for which keep returns true, in order.
func (d Dataset[P]) Filter(keep func(p P) bool) Dataset[P] {
	idx := make([]int, 0, len(d.Points))
	for i, p := range d.Points {
		if keep(p) {
			idx = append(idx, i)
		}
	}

	return d.pick(idx)
}

// Timelike keeps points with t > 0.
func (d Dataset[P]) Timelike() Dataset[P] {
	return d.Filter(func(p P) bool { return p.Abscissa() > 0 })
}

// Below keeps points with t < threshold.
func (d Dataset[P]) Below(threshold float64) Dataset[P] {
	return d.Filter(func(p P) bool { return p.Abscissa() < threshold })
}

// RandomHalf keeps a uniformly chosen subset of ⌊n/2⌋ points in their
// original order. A nil rng behaves like a fixed seed of 1.
func (d Dataset[P]) RandomHalf(rng *rand.Rand) Dataset[P] {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	n := len(d.Points)
	perm := rng.Perm(n)[:n/2]
	sort.Ints(perm)

	return d.pick(perm)
}

// Charged keeps the charged-meson points.
func Charged(d Dataset[MesonPoint]) Dataset[MesonPoint] {
	return d.Filter(func(p MesonPoint) bool { return p.Charged })
}

// Protons keeps the proton points.
func Protons(d Dataset[NucleonPoint]) Dataset[NucleonPoint] {
	return d.Filter(func(p NucleonPoint) bool { return p.Proton })
}
