package router

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var usernameRegexp = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// RegisterValidators installs the custom binding rules. NewRouter calls it
// at startup; tests that bind request structs directly call it themselves.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("username", usernameValidator)
	}
}

// Usernames are limited to letters, digits, dot, underscore and dash.
func usernameValidator(fl validator.FieldLevel) bool {
	return usernameRegexp.MatchString(fl.Field().String())
}
