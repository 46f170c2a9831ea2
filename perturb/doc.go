// Package perturb moves the free parameters of a vector by bounded random
// steps, the seeding move of a multi-start fit.
//
// Each free parameter p becomes p + s·r·Δ(r) with r uniform in [−1, 1):
//
//	Δ(r) = p − lower        r < 0, finite lower
//	     = −|p|·(1 + s·|r|)  r < 0, lower = −∞
//	     = upper − p        r > 0, finite upper
//	     = |p|·(1 + s·|r|)   r > 0, upper = +∞
//
// The scale s is the resonance scale for mass_* and decay_rate_* parameters
// and the other scale for everything else. With 0 ≤ s < 1 a parameter that
// starts strictly inside its bounds stays strictly inside.
//
// Randomness:
//
//	All randomness comes from an explicit *rand.Rand. RandFromSeed, DeriveSeed
//	and DeriveRand give reproducible, decorrelated streams, one per worker.
//	A *rand.Rand must not be shared across goroutines.
package perturb
