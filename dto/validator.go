package dto

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/AmbHasan/My-quran-journey/shared"
)

var validate *validator.Validate

var unsafeUsernameChars = regexp.MustCompile(`[<>"';]`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("password_policy", validatePasswordPolicy)
	validate.RegisterValidation("session_type", validateSessionType)
	validate.RegisterValidation("difficulty", validateDifficulty)
}

func GetValidator() *validator.Validate {
	return validate
}

// validatePasswordPolicy requires at least 8 characters with a letter and a digit.
func validatePasswordPolicy(fl validator.FieldLevel) bool {
	password := fl.Field().String()

	if len(password) < 8 {
		return false
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}

	return hasLetter && hasNumber
}

func validateSessionType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case shared.SessionTypeReading, shared.SessionTypeMemorization,
		shared.SessionTypeTranslation, shared.SessionTypeRecitation:
		return true
	}
	return false
}

func validateDifficulty(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case shared.DifficultyBeginner, shared.DifficultyIntermediate, shared.DifficultyAdvanced:
		return true
	}
	return false
}

// SanitizeString strips markup-prone characters, cuts to maxLength and trims.
func SanitizeString(input string, maxLength int) string {
	if input == "" {
		return ""
	}
	sanitized := unsafeUsernameChars.ReplaceAllString(input, "")
	if runes := []rune(sanitized); len(runes) > maxLength {
		sanitized = string(runes[:maxLength])
	}
	return strings.TrimSpace(sanitized)
}

func FormatValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			var message string

			switch fieldError.Tag() {
			case "required":
				message = fieldError.Field() + " is required"
			case "email":
				message = "Invalid email format"
			case "min":
				message = fieldError.Field() + " must be at least " + fieldError.Param()
			case "max":
				message = fieldError.Field() + " must be at most " + fieldError.Param()
			case "password_policy":
				message = "Password must be at least 8 characters long and contain letters and numbers"
			case "session_type":
				message = "session_type must be one of: reading, memorization, translation, recitation"
			case "difficulty":
				message = "difficulty_level must be one of: beginner, intermediate, advanced"
			case "oneof":
				message = fieldError.Field() + " must be one of: " + fieldError.Param()
			default:
				message = fieldError.Field() + " is invalid"
			}

			errors = append(errors, ValidationError{
				Field:   fieldError.Field(),
				Message: message,
			})
		}
	}

	return errors
}

type Validator interface {
	Validate() error
}

type ValidationError struct {
	Field   string `json:"field" example:"email"`
	Message string `json:"message" example:"Invalid email format"`
}

type ValidationErrorResponse struct {
	Code    int               `json:"code" example:"400"`
	Message string            `json:"message" example:"Validation failed"`
	Errors  []ValidationError `json:"errors"`
}

func CreateValidationErrorResponse(err error) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:    400,
		Message: "Validation failed",
		Errors:  FormatValidationErrors(err),
	}
}
