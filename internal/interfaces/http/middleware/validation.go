package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/invoiceflow/backend/internal/domain/compliance"
)

// RegisterValidators installs custom binding validators on gin's validator
// engine. The business_activity and sector tags check labels against the
// closed enumerations, case-sensitively.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("business_activity", func(fl validator.FieldLevel) bool {
		return compliance.BusinessActivity(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("sector", func(fl validator.FieldLevel) bool {
		return compliance.Sector(fl.Field().String()).IsValid()
	})
}
