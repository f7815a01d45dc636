package bp

import (
	"fmt"
	"strings"
)

// Accepted input ranges, inclusive.
const (
	SystolicMin  = 70
	SystolicMax  = 190
	DiastolicMin = 40
	DiastolicMax = 100
)

// Field names reported in FieldError.Field.
const (
	FieldSystolic  = "systolic"
	FieldDiastolic = "diastolic"
)

// Reading is one systolic/diastolic pair in mmHg.
type Reading struct {
	Systolic  int `json:"systolic"`
	Diastolic int `json:"diastolic"`
}

// ErrorKind classifies a FieldError.
type ErrorKind string

// OutOfRange is the only kind the evaluator produces.
const OutOfRange ErrorKind = "out_of_range"

// FieldError is a validation failure tied to one input field.
type FieldError struct {
	Field   string    `json:"field"`
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FieldErrors is the full list of violations found on a reading.
// A nil or empty list means the reading passed.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	msgs := make([]string, 0, len(fe))
	for _, e := range fe {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks both fields of r against their ranges. Each field is
// checked independently, so a reading with two bad values gets two errors.
//
// The systolic > diastolic rule is not checked here; it belongs to the caller.
func Validate(r Reading) FieldErrors {
	var errs FieldErrors
	if r.Systolic < SystolicMin || r.Systolic > SystolicMax {
		errs = append(errs, FieldError{
			Field:   FieldSystolic,
			Kind:    OutOfRange,
			Message: "Invalid Systolic Value",
		})
	}
	if r.Diastolic < DiastolicMin || r.Diastolic > DiastolicMax {
		errs = append(errs, FieldError{
			Field:   FieldDiastolic,
			Kind:    OutOfRange,
			Message: "Invalid Diastolic Value",
		})
	}
	return errs
}
