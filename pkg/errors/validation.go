package errors

import (
	"math"
	"strings"
	"unicode"
)

// ValidateFormName validates a growth-form name.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 64 characters
//
// Names are used as map keys, cache key components and SVG legend labels,
// so anything printable is acceptable.
func ValidateFormName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidForm, "growth form name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidForm, "growth form name too long (max 64 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidForm, "growth form name contains control characters")
		}
	}

	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidForm, "growth form name cannot be blank")
	}

	return nil
}

// ValidateSupply validates a per-form fragment supply.
func ValidateSupply(name string, supply int) error {
	if supply < 0 {
		return New(ErrCodeInvalidInput, "supply for %q cannot be negative (got %d)", name, supply)
	}
	return nil
}

// ValidateProportion validates a target proportion. Proportions need not be
// normalized, but must be finite and non-negative.
func ValidateProportion(name string, p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return New(ErrCodeInvalidProportion, "target proportion for %q must be finite", name)
	}
	if p < 0 {
		return New(ErrCodeInvalidProportion, "target proportion for %q cannot be negative (got %g)", name, p)
	}
	return nil
}

// ValidateEcoScore validates an ecological function score.
func ValidateEcoScore(name string, s float64) error {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return New(ErrCodeInvalidInput, "eco score for %q must be finite", name)
	}
	if s < 0 {
		return New(ErrCodeInvalidInput, "eco score for %q cannot be negative (got %g)", name, s)
	}
	return nil
}

// ValidateClusteringWeight validates a clustering weight, which is a
// probability and must lie in [0, 1].
func ValidateClusteringWeight(name string, w float64) error {
	if math.IsNaN(w) || w < 0 || w > 1 {
		return New(ErrCodeInvalidWeight, "clustering weight for %q must be in [0, 1] (got %g)", name, w)
	}
	return nil
}

// ValidateSlackCap validates the shared proportional slack cap.
func ValidateSlackCap(cap int) error {
	if cap < 0 {
		return New(ErrCodeInvalidInput, "slack cap cannot be negative (got %d)", cap)
	}
	return nil
}

// ValidateUnitsPerStar validates the fragment-to-star aggregation factor.
func ValidateUnitsPerStar(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "units per star must be positive (got %d)", n)
	}
	return nil
}

// ValidateAspectRatio validates a grid width:height ratio.
func ValidateAspectRatio(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return New(ErrCodeInvalidInput, "aspect ratio must be a positive number (got %g)", r)
	}
	return nil
}

// ValidateRetryBudget validates the per-unit placement retry budget.
func ValidateRetryBudget(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "retry budget must be positive (got %d)", n)
	}
	return nil
}

// ValidateSurvivalRate validates a one-year survival rate, expressed as a
// fraction in [0, 1].
func ValidateSurvivalRate(r float64) error {
	if math.IsNaN(r) || r < 0 || r > 1 {
		return New(ErrCodeInvalidInput, "survival rate must be in [0, 1] (got %g)", r)
	}
	return nil
}
