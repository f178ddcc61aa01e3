package reef

import "math"

// FormCount pairs a growth form with its allocated fragment count.
type FormCount struct {
	Form  string `json:"form"`
	Count int    `json:"count"`
}

// Aggregate converts per-form fragment counts into placement units: one
// unit represents unitsPerStar fragments, rounded up, with a floor of one
// unit for any form with a positive allocation so small allocations remain
// visible in the layout. Forms with zero fragments produce no units.
//
// Units are returned grouped in input order; callers shuffle them before
// placement. Aggregate is pure and involves no randomness.
func Aggregate(counts []FormCount, unitsPerStar int) []string {
	var units []string
	for _, fc := range counts {
		n := StarsFor(fc.Count, unitsPerStar)
		for i := 0; i < n; i++ {
			units = append(units, fc.Form)
		}
	}
	return units
}

// StarsFor returns the number of placement units for a single fragment
// count: ceil(count / unitsPerStar), at least 1 when count > 0.
func StarsFor(count, unitsPerStar int) int {
	if count <= 0 {
		return 0
	}
	n := int(math.Ceil(float64(count) / float64(unitsPerStar)))
	if n < 1 {
		n = 1
	}
	return n
}
