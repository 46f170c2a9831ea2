// Package crosssection turns form factors into e⁺e⁻ annihilation cross
// sections.
//
// Evaluators:
//   - ScalarMeson: e⁺e⁻ → M M̄ for a spin-0 meson of mass m,
//     σ = (ℏc)²·πα²/(3|t|)·(1 − 4m²/|t|)^{3/2}·|F(t)|².
//   - NucleonPair: e⁺e⁻ → N N̄ at Born level,
//     σ = (ℏc)²·4πα²β/(3|t|)·(|G_M|² + 2m²/|t|·|G_E|²), β = √(1 − 4m²/|t|).
//
// With (ℏc)² in GeV²·nb and t in GeV² the result is in nanobarns. Below
// threshold (|t| < 4m²) the kinematic factor is imaginary and the formal
// complex value is returned; callers fitting data take the real part.
package crosssection
