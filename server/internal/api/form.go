package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/bpcalc/bpcalc/pkg/bp"
)

// Error kinds produced by the form handler itself. Range errors keep the
// kind reported by bp.Validate.
const (
	kindRequired      = "required"
	kindInvalidNumber = "invalid_number"
	kindInvalidBody   = "invalid_body"
	kindCrossField    = "cross_field"
)

const crossFieldMessage = "Systolic must be greater than Diastolic"

// formInput is the raw text of a form submission.
type formInput struct {
	Systolic  string `json:"systolic" validate:"required,numeric"`
	Diastolic string `json:"diastolic" validate:"required,numeric"`
}

// jsonInput is a JSON submission. Pointers distinguish a missing value from 0.
type jsonInput struct {
	Systolic  *int `json:"systolic" validate:"required"`
	Diastolic *int `json:"diastolic" validate:"required"`
}

// inputValidate checks request DTOs before they are turned into a bp.Reading.
var inputValidate *validator.Validate

func init() {
	inputValidate = validator.New()
	// Report errors under the JSON field name rather than the Go field name.
	inputValidate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// parseReading decodes r into a Reading. A non-empty error list means the
// submission could not be read as two whole numbers.
func parseReading(r *http.Request) (bp.Reading, []FieldErrorResponse) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "application/json" {
		return parseJSON(r)
	}
	return parseForm(r)
}

func parseJSON(r *http.Request) (bp.Reading, []FieldErrorResponse) {
	var in jsonInput
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&in); err != nil {
		return bp.Reading{}, []FieldErrorResponse{{
			Field:   "body",
			Kind:    kindInvalidBody,
			Message: fmt.Sprintf("invalid JSON body: %v", err),
		}}
	}
	if errs := checkInput(&in); len(errs) > 0 {
		return bp.Reading{}, errs
	}
	return bp.Reading{Systolic: *in.Systolic, Diastolic: *in.Diastolic}, nil
}

func parseForm(r *http.Request) (bp.Reading, []FieldErrorResponse) {
	if err := r.ParseForm(); err != nil {
		return bp.Reading{}, []FieldErrorResponse{{
			Field:   "body",
			Kind:    kindInvalidBody,
			Message: fmt.Sprintf("invalid form body: %v", err),
		}}
	}
	in := formInput{
		Systolic:  formValue(r, "BP.Systolic", "systolic"),
		Diastolic: formValue(r, "BP.Diastolic", "diastolic"),
	}
	if errs := checkInput(&in); len(errs) > 0 {
		return bp.Reading{}, errs
	}

	var (
		reading bp.Reading
		errs    []FieldErrorResponse
		err     error
	)
	if reading.Systolic, err = strconv.Atoi(in.Systolic); err != nil {
		errs = append(errs, notWholeNumber(bp.FieldSystolic))
	}
	if reading.Diastolic, err = strconv.Atoi(in.Diastolic); err != nil {
		errs = append(errs, notWholeNumber(bp.FieldDiastolic))
	}
	return reading, errs
}

// formValue returns the first non-empty value among keys, trimmed.
func formValue(r *http.Request, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(r.PostForm.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// checkInput runs the DTO tags and converts failures to response errors.
func checkInput(in any) []FieldErrorResponse {
	err := inputValidate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldErrorResponse{{Field: "body", Kind: kindInvalidBody, Message: err.Error()}}
	}
	out := make([]FieldErrorResponse, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out = append(out, FieldErrorResponse{
				Field:   fe.Field(),
				Kind:    kindRequired,
				Message: fmt.Sprintf("%s is required", titleCase(fe.Field())),
			})
		default:
			out = append(out, notWholeNumber(fe.Field()))
		}
	}
	return out
}

// checkReading applies the range checks and the cross-field rule. Every
// violation is returned.
func checkReading(r bp.Reading) (rangeErrs bp.FieldErrors, crossOK bool, out []FieldErrorResponse) {
	rangeErrs = bp.Validate(r)
	for _, fe := range rangeErrs {
		out = append(out, FieldErrorResponse{
			Field:   fe.Field,
			Kind:    string(fe.Kind),
			Message: fe.Message,
		})
	}
	crossOK = r.Systolic > r.Diastolic
	if !crossOK {
		out = append(out, FieldErrorResponse{
			Field:   "reading",
			Kind:    kindCrossField,
			Message: crossFieldMessage,
		})
	}
	return rangeErrs, crossOK, out
}

func notWholeNumber(field string) FieldErrorResponse {
	return FieldErrorResponse{
		Field:   field,
		Kind:    kindInvalidNumber,
		Message: fmt.Sprintf("%s must be a whole number", titleCase(field)),
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
