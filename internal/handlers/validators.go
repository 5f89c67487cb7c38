package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/movetrack/movement_tracking_app/internal/core/domain"
)

// RegisterCustomValidators wires the domain enum checks into gin's binding
// layer. Call once at startup before serving.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("approle", func(fl validator.FieldLevel) bool {
		return domain.Role(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("punchdirection", func(fl validator.FieldLevel) bool {
		return domain.PunchDirection(fl.Field().String()).Valid()
	})
}
