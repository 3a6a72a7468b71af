package validation

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Custom binding tags
const (
	// TagNotBlank rejects strings made only of whitespace
	TagNotBlank = "notblank"
	// TagMaxRunes bounds the length in characters rather than bytes
	TagMaxRunes = "maxrunes"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterBindingRules installs the custom tags on gin's validator.
// Safe to call more than once.
func RegisterBindingRules() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		registerErr = Register(v)
	})
	return registerErr
}

// Register installs the custom tags on v
func Register(v *validator.Validate) error {
	if err := v.RegisterValidation(TagNotBlank, notBlank); err != nil {
		return fmt.Errorf("register %s: %w", TagNotBlank, err)
	}
	if err := v.RegisterValidation(TagMaxRunes, maxRunes); err != nil {
		return fmt.Errorf("register %s: %w", TagMaxRunes, err)
	}
	return nil
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func maxRunes(fl validator.FieldLevel) bool {
	var limit int
	if _, err := fmt.Sscanf(fl.Param(), "%d", &limit); err != nil {
		return false
	}
	return utf8.RuneCountInString(fl.Field().String()) <= limit
}
