// Package validator provides custom validation functions for Gin's binding
// engine and for configuration structs.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"findash/internal/ingest"
)

// Year bounds accepted for financial records.
const (
	MinYear = 1900
	MaxYear = 9999
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerAll(v)
	}
}

// New returns a standalone validator with the custom rules registered.
func New() *validator.Validate {
	v := validator.New()
	registerAll(v)
	return v
}

func registerAll(v *validator.Validate) {
	_ = v.RegisterValidation("record_policy", validateRecordPolicy)
	_ = v.RegisterValidation("fiscal_year", validateFiscalYear)
}

func validateRecordPolicy(fl validator.FieldLevel) bool {
	return ingest.Policy(fl.Field().String()).Valid()
}

func validateFiscalYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= MinYear && year <= MaxYear
}
