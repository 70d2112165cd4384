package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Validation rule tags
const (
	// NotBlankTag rejects strings that are empty once surrounding spaces are trimmed
	NotBlankTag = "notblank"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterRules adds the custom rules to gin's binding validator.
// Safe to call more than once.
func RegisterRules() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("binding validator is not go-playground/validator")
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

// Register adds the custom rules to v
func Register(v *validator.Validate) error {
	return v.RegisterValidation(NotBlankTag, notBlank)
}

func notBlank(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return true
	}
	return strings.TrimSpace(field.String()) != ""
}
