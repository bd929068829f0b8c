package validator

import (
	"errors"
	"fmt"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
)

// ValidationError describes one failed rule. Rule is a stable machine name
// ("required", "advance_notice", ...); Value echoes the offending input.
type ValidationError struct {
	Field   string
	Rule    string
	Value   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		if _, seen := result[err.Field]; !seen {
			result[err.Field] = err.Message
		}
	}
	return result
}

// Has reports whether any error was raised for rule.
func (v ValidationErrors) Has(rule string) bool {
	for _, err := range v {
		if err.Rule == rule {
			return true
		}
	}
	return false
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", strings.TrimSpace(dateStr))
	return date, err == nil
}

var structValidator = playground.New()

// Struct runs the `validate` tags of v and converts failures into ValidationErrors.
func Struct(v any) error {
	err := structValidator.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   fe.Namespace(),
			Rule:    fe.Tag(),
			Value:   fmt.Sprint(fe.Value()),
			Message: tagMessage(fe),
		})
	}
	return out
}

func tagMessage(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "timezone":
		return "must be a valid IANA time zone"
	case "datetime":
		return "must match layout " + fe.Param()
	case "dive":
		return "contains an invalid element"
	default:
		return "invalid value"
	}
}
