package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// RawInput is one property description as entered by a user.
// Categorical values are matched against the trained vocabulary by the pipeline.
type RawInput struct {
	BHK         int     `json:"bhk" validate:"min=1,max=5"`
	Bathroom    int     `json:"bathroom" validate:"min=1,max=6"`
	Balcony     int     `json:"balcony" validate:"min=0,max=7"`
	TotalSqft   float64 `json:"total_sqft" validate:"min=500,max=10000"`
	Transaction string  `json:"transaction" validate:"required"`
	Furnishing  string  `json:"furnishing" validate:"required"`
	Location    string  `json:"location" validate:"required"`
	Ownership   string  `json:"ownership" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// FieldError describes a single out-of-domain input field.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

// ValidationError lists every RawInput field outside its allowed domain.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Param != "" {
			parts = append(parts, fmt.Sprintf("%s must satisfy %s=%s", f.Field, f.Rule, f.Param))
		} else {
			parts = append(parts, fmt.Sprintf("%s is %s", f.Field, f.Rule))
		}
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

// Validate checks the numeric ranges and required categorical fields.
func (in RawInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	out := &ValidationError{}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: jsonName(fe.Field()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

var fieldNames = map[string]string{
	"BHK":         "bhk",
	"Bathroom":    "bathroom",
	"Balcony":     "balcony",
	"TotalSqft":   "total_sqft",
	"Transaction": "transaction",
	"Furnishing":  "furnishing",
	"Location":    "location",
	"Ownership":   "ownership",
}

func jsonName(field string) string {
	if n, ok := fieldNames[field]; ok {
		return n
	}
	return field
}
