package utils

import (
	"praktis-service/internal/pkg/constvars"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("hhmm", validateClockTime)
	validate.RegisterValidation("dateonly", validateDateOnly)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateClockTime(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.ClockTimeFormat, fl.Field().String())
	return err == nil
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(constvars.DateOnlyFormat, fl.Field().String())
	return err == nil
}
