package bp

import (
	"encoding/json"
	"fmt"
)

// Category is the ordinal classification of a Reading.
// Values are ordered by severity, so Low < Ideal < PreHigh < High.
type Category int

const (
	Low Category = iota
	Ideal
	PreHigh
	High
)

// ceiling is the inclusive upper bound for both fields of a category.
type ceiling struct {
	systolic  int
	diastolic int
}

// ceilings lists every category except High in the order Classify tries them.
var ceilings = []struct {
	cat Category
	max ceiling
}{
	{Low, ceiling{systolic: 90, diastolic: 60}},
	{Ideal, ceiling{systolic: 120, diastolic: 80}},
	{PreHigh, ceiling{systolic: 139, diastolic: 89}},
}

var categoryNames = [...]string{
	Low:     "Low",
	Ideal:   "Ideal",
	PreHigh: "PreHigh",
	High:    "High",
}

var categoryLabels = [...]string{
	Low:     "Low Blood Pressure",
	Ideal:   "Ideal Blood Pressure",
	PreHigh: "Pre-High Blood Pressure",
	High:    "High Blood Pressure",
}

var heartRiskMessages = [...]string{
	Low:     "Low risk - Maintain hydration and regular meals.",
	Ideal:   "Healthy - Keep up the good work!",
	PreHigh: "Moderate risk - Consider lifestyle adjustments.",
	High:    "High risk - Consult your doctor.",
}

// Classify returns the category of r. The first category whose ceilings
// hold for both values wins; a single elevated value is enough to push the
// reading into a more severe category.
//
// Classify is total over all integers. Callers that need to reject values
// outside the accepted ranges should call Validate first.
func Classify(r Reading) Category {
	for _, c := range ceilings {
		if r.Systolic <= c.max.systolic && r.Diastolic <= c.max.diastolic {
			return c.cat
		}
	}
	return High
}

// Categories returns every category in severity order.
func Categories() []Category {
	return []Category{Low, Ideal, PreHigh, High}
}

// Ceiling returns the inclusive systolic and diastolic ceilings of c.
// ok is false for High, which has no ceiling.
func Ceiling(c Category) (systolic, diastolic int, ok bool) {
	for _, e := range ceilings {
		if e.cat == c {
			return e.max.systolic, e.max.diastolic, true
		}
	}
	return 0, 0, false
}

// HeartRiskMessage returns the short-term advice shown for c.
func HeartRiskMessage(c Category) string {
	if !c.valid() {
		return ""
	}
	return heartRiskMessages[c]
}

// String returns the bare identifier: Low, Ideal, PreHigh or High.
func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// DisplayName returns the human-readable label, e.g. "Pre-High Blood Pressure".
func (c Category) DisplayName() string {
	if !c.valid() {
		return c.String()
	}
	return categoryLabels[c]
}

func (c Category) valid() bool {
	return c >= Low && c <= High
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, error) {
	for i, name := range categoryNames {
		if name == s {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("bp: unknown category %q", s)
}

func (c Category) MarshalJSON() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("bp: cannot marshal %s", c)
	}
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("bp: category must be a string: %w", err)
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
