// Package component implements the single-resonance building block of the
// U&A form-factor models.
//
// A Component is the rational function
//
//	C(W) = [(1 − W²)/(1 − W_N²)]² · Π_k (W_N − p_k)/(W − p_k)
//
// where W_N is the physical-sheet image of t = 0 and p_k are four images of
// the resonance pole t_R = (m − iΓ/2)² on the unphysical sheets. Which sheets
// are used depends on where m² sits relative to the branch points:
//
//   - VariantA (t₀ ≤ m² < t_in): poles on sheets 2 and 4, {p, p̄, 1/p, 1/p̄}.
//   - VariantB (m² ≥ t_in):      poles on sheets 3 and 4, {p, p̄, −p, −p̄}.
//
// Guarantees:
//   - C(W_N) = 1 and C(±1) = 0.
//   - C(W̄) = conj C(W), so the form factor is real below threshold.
//   - For Γ = 0 the component equals the VMD propagator m²/(m² − t) on the
//     physical sheet, for any (t₀, t_in).
//
// Components are immutable once built and safe to share between goroutines.
package component
