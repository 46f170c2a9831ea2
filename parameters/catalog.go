// SPDX-License-Identifier: MIT

package parameters

// Name prefixes shared by all families.
const (
	massPrefix        = "mass_"
	widthPrefix       = "decay_rate_"
	coefficientPrefix = "a_"
	thresholdPrefix   = "t_0_"
	inelasticPrefix   = "t_in_"
)

// Resonance keys.
const (
	Omega            = "omega"
	Phi              = "phi"
	OmegaPrime       = "omega_prime"
	PhiPrime         = "phi_prime"
	OmegaDoublePrime = "omega_double_prime"
	PhiDoublePrime   = "phi_double_prime"
	Rho              = "rho"
	RhoPrime         = "rho_prime"
	RhoDoublePrime   = "rho_double_prime"
	RhoTriplePrime   = "rho_triple_prime"
)

// MassName returns "mass_<key>".
func MassName(key string) string { return massPrefix + key }

// WidthName returns "decay_rate_<key>".
func WidthName(key string) string { return widthPrefix + key }

// catalogEntry is the starting point and the handpicked window of one resonance.
type catalogEntry struct {
	mass, width float64
	massWindow  Bound
	widthWindow Bound
}

// catalog is keyed by resonance key. Masses and widths in GeV.
var catalog = map[string]catalogEntry{
	Omega:            {0.78266, 0.00868, Bound{0.77, 0.80}, Bound{0.005, 0.015}},
	Phi:              {1.019461, 0.004249, Bound{1.01, 1.03}, Bound{0.003, 0.006}},
	OmegaPrime:       {1.410, 0.290, Bound{1.30, 1.50}, Bound{0.10, 0.50}},
	PhiPrime:         {1.680, 0.150, Bound{1.60, 1.76}, Bound{0.05, 0.30}},
	OmegaDoublePrime: {1.670, 0.315, Bound{1.60, 1.80}, Bound{0.10, 0.50}},
	PhiDoublePrime:   {2.162, 0.100, Bound{2.05, 2.30}, Bound{0.03, 0.30}},
	Rho:              {0.77526, 0.1474, Bound{0.76, 0.79}, Bound{0.13, 0.16}},
	RhoPrime:         {1.465, 0.400, Bound{1.35, 1.60}, Bound{0.20, 0.60}},
	RhoDoublePrime:   {1.720, 0.250, Bound{1.60, 1.85}, Bound{0.10, 0.40}},
	RhoTriplePrime:   {2.150, 0.300, Bound{2.00, 2.30}, Bound{0.10, 0.50}},
}

// Handpicked windows for the non-resonance parameters.
const (
	inelasticMinGap = 0.01 // GeV², smallest t_in − t₀ in handpicked mode
	inelasticMax    = 20.0 // GeV²
	wWindow         = 2.0  // |w_pole/zero re/im| ≤ wWindow in handpicked mode
)

// hardGap keeps t_in strictly above t₀ and m² at or above t₀ under rounding.
const hardGap = 1e-9

// initialValues are family-independent starting values for non-resonance
// parameters, keyed by model kind.
var initialValues = map[modelKind]map[string]float64{
	kindKaon: {
		"t_in_isoscalar":       1.6,
		"t_in_isovector":       1.3,
		"a_omega":              0.20,
		"a_phi":                0.15,
		"a_phi_charged":        0.15,
		"a_phi_neutral":        0.15,
		"a_omega_prime":        0.05,
		"a_phi_prime":          0.05,
		"a_omega_double_prime": 0.02,
		"a_rho":                0.45,
		"a_rho_prime":          0.04,
		"a_rho_double_prime":   0.01,
	},
	kindPion: {
		"t_in_isovector":     1.2,
		"a_rho":              1.1,
		"a_rho_prime":        -0.1,
		"a_rho_double_prime": 0.05,
		"w_pole_re":          0.3,
		"w_pole_im":          0.9,
		"w_zero_re":          0.5,
		"w_zero_im":          -0.7,
	},
	kindNucleon: {
		"t_in_dirac_isoscalar": 1.5,
		"t_in_dirac_isovector": 1.2,
		"t_in_pauli_isoscalar": 2.0,
		"t_in_pauli_isovector": 1.4,
		"a_dirac_omega":        0.8,
		"a_dirac_phi":          -0.3,
		"a_dirac_omega_prime":  0.2,
		"a_dirac_rho":          1.1,
		"a_dirac_rho_prime":    -0.2,
		"a_pauli_omega":        0.1,
		"a_pauli_phi":          -0.2,
		"a_pauli_rho":          2.0,
	},
}

// defaultCoefficient is used for any a_* name missing from initialValues.
const defaultCoefficient = 0.1
