package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"backoffice/internal/pricing"
)

// RegisterValidators adds the custom binding tags to gin's validator engine.
// The money tag accepts non-negative plain decimals with a dot or comma separator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("money", validateMoney)
}

func validateMoney(fl validator.FieldLevel) bool {
	return pricing.ValidAmount(fl.Field().String())
}
