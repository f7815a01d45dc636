// Package api implements the HTTP form handler for bpcalc-server.
//
// New(recorder) returns an http.Handler that serves:
//
//	POST /api/v1/assess      — evaluate one reading
//	GET  /api/v1/categories  — categories, messages, ceilings and input ranges
//	GET  /api/v1/health      — liveness
//
// /api/v1/assess accepts application/x-www-form-urlencoded (fields
// BP.Systolic and BP.Diastolic, or systolic and diastolic) and
// application/json ({"systolic": 120, "diastolic": 80}).
//
// Status codes:
//   - 200 with AssessResponse when the reading is valid
//   - 400 when a value is missing or is not a whole number
//   - 422 when a value is out of range or systolic is not above diastolic;
//     every problem is listed, not just the first
//   - 405 for any other method
//
// Each submission that parses is reported to the recorder as one
// BloodPressureCalculated event, valid or not. JSON types are in types.go.
package api
