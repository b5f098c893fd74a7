package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/restopilot/resto_books_app/internal/core/domain"
)

// RegisterCustomValidators wires domain validations into gin's binding
// validator. Must be called once before the router starts serving.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accountcode", validAccountCode)
	}
}

func validAccountCode(fl validator.FieldLevel) bool {
	return domain.ValidateAccountCode(fl.Field().String()) == nil
}
