// Package conformal maps the Mandelstam variable t onto the W unit disk.
//
// 🚀 What is the W-plane?
//
//	Given a lowest branch point t₀ and an effective inelastic branch point
//	t_in (0 ≤ t₀ < t_in), the map
//
//	    t(W) = t₀ − 4(t_in − t₀)/(W − 1/W)²
//
//	sends the left half of the open unit disk one-to-one onto the physical
//	sheet of t (ℂ minus the cut [t₀, ∞)). The cut [t₀, t_in] lands on the
//	imaginary axis and [t_in, ∞) on the unit circle.
//
// ✨ Four sheets:
//
//	The form factor lives on a four-sheeted Riemann surface. The sheets are
//	not modeled as objects; they are a selector passed to FromSheet:
//	  • Sheet1 → W       (physical sheet, left half disk)
//	  • Sheet2 → −W      (across the [t₀, t_in] cut, right half disk)
//	  • Sheet3 → 1/W     (across the [t_in, ∞) cut, outside the disk)
//	  • Sheet4 → −1/W
//
// ⚙️ Usage:
//
//	bp, err := conformal.NewBranchPoints(0, 0.25)
//	w := bp.FromSheet(1, conformal.Sheet1) // −0.866025 + 0.5i
//	t := bp.ToT(w)                         // 1
//
// The inverse uses CustomSqrt, whose cut lies on the positive real axis and is
// continuous from above. Points exactly on a cut are mapped to the upper lip.
package conformal
