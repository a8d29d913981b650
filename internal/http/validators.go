package http

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/avolkov/librarian/internal/entities"
)

// RegisterValidations installs the custom binding rules on Gin's
// validator engine. Safe to call more than once.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("availability", func(fl validator.FieldLevel) bool {
			return entities.Availability(fl.Field().String()).Valid()
		})
	}
}
