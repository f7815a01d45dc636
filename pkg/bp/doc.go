// Package bp evaluates a single blood-pressure reading.
//
// reading.go holds the Reading type and Validate, which checks each field
// against its accepted range and reports every violation as a FieldError.
//
// category.go provides Classify. Rules run in severity order and the first
// match wins; a reading sits in a category only when both values are at or
// below that category's ceilings:
//
//	Low      systolic ≤ 90  and diastolic ≤ 60
//	Ideal    systolic ≤ 120 and diastolic ≤ 80
//	PreHigh  systolic ≤ 139 and diastolic ≤ 89
//	High     anything else
//
// risk.go derives the long-term cardiovascular band from an integer score:
//
//	score = max(0, (systolic-100)/10) + max(0, (diastolic-70)/10)
//	      + 2 if PreHigh, + 4 if High
//
// Band thresholds: Low <2, Moderate 2–5, High ≥6. The band is a separate
// scale from Category and the two are never reconciled.
//
// Every function in this package is pure. Nothing is cached and no state is
// shared, so callers may evaluate readings from any number of goroutines.
package bp
