package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator wraps the go-playground validator with the floorplan rules.
type Validator struct {
	validate *validator.Validate
}

// ValidationError represents a validation error with structured information
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// ValidationErrors is a slice of ValidationError
type ValidationErrors []ValidationError

// Error implements error interface for ValidationErrors
func (ve ValidationErrors) Error() string {
	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// blockIDPattern is the identifier rule for validated API payloads: a
// letter or digit followed by letters, digits, underscores, dots or dashes.
// The CSV adapters themselves only reject empty identifiers.
var blockIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// New creates a new validator instance with custom validation rules
func New() *Validator {
	validate := validator.New()

	// Register custom validation functions
	validate.RegisterValidation("block_id", validateBlockID)
	validate.RegisterValidation("id_list", validateIDList)

	// Use json tag names in validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: validate}
}

// Engine exposes the underlying validator for struct-tag validation.
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Validate validates a struct and returns structured validation errors
func (v *Validator) Validate(s interface{}) ValidationErrors {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var errors ValidationErrors
	if fieldErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range fieldErrors {
			errors = append(errors, ValidationError{
				Field:   fe.Field(),
				Tag:     fe.Tag(),
				Value:   strings.TrimSpace(fe.Param()),
				Message: buildMessage(fe),
			})
		}
	}
	return errors
}

// buildMessage produces a human-readable message for one field error.
func buildMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "gt":
		return fe.Field() + " must be greater than " + fe.Param()
	case "gte":
		return fe.Field() + " must be at least " + fe.Param()
	case "lt":
		return fe.Field() + " must be less than " + fe.Param()
	case "block_id":
		return fe.Field() + " is not a valid block identifier"
	case "id_list":
		return fe.Field() + " contains an invalid block identifier"
	default:
		return fe.Field() + " failed validation rule " + fe.Tag()
	}
}

// validateBlockID checks a single block identifier.
func validateBlockID(fl validator.FieldLevel) bool {
	return blockIDPattern.MatchString(fl.Field().String())
}

// validateIDList checks every identifier in a []string field.
func validateIDList(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		id, ok := field.Index(i).Interface().(string)
		if !ok || !blockIDPattern.MatchString(id) {
			return false
		}
	}
	return true
}
