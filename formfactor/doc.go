// SPDX-License-Identifier: MIT

// Package formfactor assembles U&A electromagnetic form-factor models from
// resonance components.
//
// A model is built from one or more channels. A Channel owns a pair of
// branch points, an ordered list of resonances and one coefficient per
// resonance:
//
//	F_X(W) = Σ_r a_{X,r} · C_{X,r}(W)
//
// The trailing coefficients of a channel are not free. They are solved from
// linear constraints applied in a fixed order:
//
//  1. Normalization:  Σ a_r       = F_X(0)
//  2. MassSquaredSum: Σ a_r m_r²  = 0   (adds one power of 1/t fall-off)
//  3. MassQuarticSum: Σ a_r m_r⁴  = 0   (adds another)
//
// The rows are exact for zero widths. A channel with k asymptotic rows is
// therefore evaluated as C_1···C_k · Σ_{r>k} b_r C_r, which is the same
// function at zero width and a product of k+1 components, each falling as
// 1/t, otherwise.
//
// Models:
//   - Kaon:    F = F_S ± F_V, '+' for K⁺, '−' for K⁰.
//   - Pion:    F = F_V · pole/zero factor.
//   - Nucleon: Dirac and Pauli form factors, each isoscalar ± isovector,
//     combined into Sachs G_E and G_M.
//
// The observable is chosen with a Selector argument; models hold no mutable
// state and may be evaluated concurrently.
package formfactor
