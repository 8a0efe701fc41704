package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var currencyRe = regexp.MustCompile(`^[A-Za-z]{3}$`)

// Register installs custom validations on gin's binding validator.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// ISO-4217 style three-letter code, e.g. "USD", "eur"
		_ = v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
			return currencyRe.MatchString(fl.Field().String())
		})
	}
}
