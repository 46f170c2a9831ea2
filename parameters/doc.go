// SPDX-License-Identifier: MIT

// Package parameters holds the named, ordered, partially fixed parameter
// vectors of the U&A model families.
//
// A Vector is a pair of parallel slices (names, values), a bit set of fixed
// flags and a name→index map. Iteration order is the insertion order fixed by
// the family and is part of the contract: FreeValues, UpdateFreeValues and
// ToList all follow it.
//
// Naming:
//   - t_0_<channel>         lowest branch point, derived from masses, always fixed
//   - t_in_<channel>        effective inelastic branch point
//   - a_<resonance>         free channel coefficient (the last one per channel
//     is solved by the model and has no parameter)
//   - mass_<resonance>, decay_rate_<resonance>
//   - w_pole_re/im, w_zero_re/im (pion)
//   - proton_mass, neutron_mass, proton/neutron_magnetic_moment (nucleon,
//     always fixed)
//
// Every family builds its own model through BuildModel.
package parameters
