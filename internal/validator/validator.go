// Package validator provides custom validation functions for Gin's binding engine
// and for the agent's action decoder.
package validator

import (
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Shiva143-debug/backend-exp/internal/models"
)

var periodRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// New returns a standalone validator carrying the custom tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	RegisterOn(v)
	return v
}

// RegisterOn adds the custom tags to v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("entry_type", validateEntryType)
	_ = v.RegisterValidation("yes_no", validateYesNo)
	_ = v.RegisterValidation("ymd", validateYMD)
	_ = v.RegisterValidation("year_month", validateYearMonth)
}

func validateEntryType(fl validator.FieldLevel) bool {
	return models.EntryType(fl.Field().String()).Valid()
}

func validateYesNo(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case models.TaxApplicable, models.TaxNotApplicable:
		return true
	}
	return false
}

func validateYMD(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func validateYearMonth(fl validator.FieldLevel) bool {
	return periodRegex.MatchString(fl.Field().String())
}
