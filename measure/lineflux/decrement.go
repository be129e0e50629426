package lineflux

import "math"

// IntrinsicBalmerRatio is the Case B recombination value of the Hα/Hβ flux
// ratio for typical nebular conditions (T ≈ 10^4 K).
const IntrinsicBalmerRatio = 2.86

// Extinction-curve coefficients k(λ) at the Balmer line wavelengths
// (Calzetti 2000).
const (
	kHalpha = 2.53
	kHbeta  = 3.61
)

// Decrement returns the observed Balmer decrement, the ratio of the Hα to
// the Hβ line flux. Both fluxes must be positive.
func Decrement(halpha, hbeta float64) (float64, error) {
	if halpha <= 0 || hbeta <= 0 {
		return 0, ErrNonPositiveFlux
	}

	return halpha / hbeta, nil
}

// ColorExcess converts an observed Balmer decrement into the color excess
// E(B-V) against the intrinsic Case B ratio:
//
//	E(B-V) = 2.5 / (k(Hβ) - k(Hα)) * log10(decrement / 2.86)
//
// A decrement below the intrinsic ratio yields a negative value; callers
// typically clamp that to zero as consistent with no extinction.
func ColorExcess(decrement float64) (float64, error) {
	if decrement <= 0 {
		return 0, ErrNonPositiveFlux
	}

	return 2.5 / (kHbeta - kHalpha) * math.Log10(decrement/IntrinsicBalmerRatio), nil
}
