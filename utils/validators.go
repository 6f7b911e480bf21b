package utils

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"sahayata/models"
)

// RegisterValidators adds the "isodate" (YYYY-MM-DD) and "hhmm" (24h HH:MM)
// tags to gin's binding validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("isodate", layoutValidator(models.DateLayout)); err != nil {
		return err
	}
	return v.RegisterValidation("hhmm", layoutValidator(models.TimeLayout))
}

func layoutValidator(layout string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := models.ParseLayout(layout, fl.Field().String(), time.UTC)
		return err == nil
	}
}
