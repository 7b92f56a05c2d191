package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/printologia/printshop/internal/domain"
)

var (
	// ErrValidation wraps struct tag and Validatable failures.
	ErrValidation = errors.New("validation failed")

	// ErrBinding wraps malformed JSON, query strings and path parameters.
	ErrBinding = errors.New("binding failed")
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator. Field errors are reported under
// their JSON names, and the custom tags uuid, notempty, material and slug
// are registered.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonName)

		for tag, fn := range map[string]validator.Func{
			"uuid":     isUUID,
			"notempty": isNotBlank,
			"material": isMaterial,
			"slug":     isSlug,
		} {
			if err := validate.RegisterValidation(tag, fn); err != nil {
				panic(fmt.Sprintf("dto: registering %q: %v", tag, err))
			}
		}
	})

	return validate
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

// Validatable is implemented by requests with rules that struct tags cannot
// express, such as "at least one field".
type Validatable interface {
	Validate() error
}

// Validate checks the struct tags of v.
func Validate(v any) error {
	if err := Validator().Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return nil
}

// ValidateAll checks the struct tags of v, then its Validate method when it
// implements Validatable.
func ValidateAll(v any) error {
	if err := Validate(v); err != nil {
		return err
	}

	if vv, ok := v.(Validatable); ok {
		if err := vv.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}

	return nil
}

// BindAndValidate binds the JSON body into v and runs ValidateAll.
func BindAndValidate(c *gin.Context, v any) error {
	return bind(c.ShouldBindJSON, v, ValidateAll)
}

// BindQueryAndValidate binds the query string into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	return bind(c.ShouldBindQuery, v, Validate)
}

// BindURIAndValidate binds path parameters into v and validates it.
func BindURIAndValidate(c *gin.Context, v any) error {
	return bind(c.ShouldBindUri, v, Validate)
}

func bind(binder func(any) error, v any, check func(any) error) error {
	if err := binder(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return check(v)
}

// IsValidationError reports whether err carries validator field errors.
func IsValidationError(err error) bool {
	var fieldErrs validator.ValidationErrors
	return errors.As(err, &fieldErrs)
}

// ValidationErrors maps each failing field, by JSON name, to a message.
func ValidationErrors(err error) map[string]string {
	out := make(map[string]string)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			out[fe.Field()] = fieldMessage(fe)
		}
	}

	return out
}

func fieldMessage(fe validator.FieldError) string {
	p := fe.Param()

	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid UUID"
	case "url":
		return "must be a valid URL"
	case "notempty":
		return "must not be empty"
	case "material":
		return materialChoices()
	case "slug":
		return "must contain only lowercase letters, numbers and hyphens"
	case "oneof":
		return "must be one of: " + p
	case "gt":
		return "must be greater than " + p
	case "gte":
		return "must be greater than or equal to " + p
	case "lt":
		return "must be less than " + p
	case "lte":
		return "must be less than or equal to " + p
	case "min":
		return "must be at least " + p + unit(fe)
	case "max":
		return "must be at most " + p + unit(fe)
	default:
		return "failed validation: " + fe.Tag()
	}
}

// materialChoices lists the materials the engine prices.
func materialChoices() string {
	names := make([]string, 0, len(domain.Materials()))
	for _, m := range domain.Materials() {
		names = append(names, string(m))
	}

	return "must be one of: " + strings.Join(names, ", ")
}

// unit qualifies length limits on strings.
func unit(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return " characters"
	}

	return ""
}

func isNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// Empty values pass uuid and slug; pair them with required when
// the field is mandatory.

func isUUID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}

	return uuid.Validate(s) == nil
}

func isMaterial(fl validator.FieldLevel) bool {
	_, err := domain.ParseMaterial(fl.Field().String())
	return err == nil
}

func isSlug(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || domain.ValidateSlug(s) == nil
}
