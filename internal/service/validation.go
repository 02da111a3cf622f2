package service

import (
	"denizquiz/internal/model"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground validator with the player name rule
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their json names
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("player_name", validatePlayerName); err != nil {
		panic(fmt.Sprintf("register player_name validation: %v", err))
	}
	return &Validator{validate: v}
}

// Struct validates s and converts the first failure into a *model.ValidationError
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return model.NewValidationError(fe.Field(), formatFieldError(fe))
}

func validatePlayerName(fl validator.FieldLevel) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(fl.Field().String()))
	return n >= model.PlayerNameMin && n <= model.PlayerNameMax
}

func formatFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "player_name":
		return fmt.Sprintf("%s must be between %d and %d characters", fe.Field(), model.PlayerNameMin, model.PlayerNameMax)
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// NormalizePlayerName trims surrounding whitespace
func NormalizePlayerName(name string) string {
	return strings.TrimSpace(name)
}
