package controllers

import (
	"commerce-backend/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations installs custom binding validations on gin's validator
// engine. Called once at startup before routes are served.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
			return models.ValidStatus(models.OrderStatus(fl.Field().String()))
		})
	}
}
