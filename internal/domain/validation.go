package domain

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields by their wire names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	registerCustomValidations(validate)
}

// registerCustomValidations registers the enumeration checks used by entity inputs
func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
		return Platform(fl.Field().String()).Valid()
	})

	v.RegisterValidation("contract_type", func(fl validator.FieldLevel) bool {
		return ContractType(fl.Field().String()).Valid()
	})

	v.RegisterValidation("ad_type", func(fl validator.FieldLevel) bool {
		return IsAdvertisementType(fl.Field().String())
	})

	v.RegisterValidation("delivery_status", func(fl validator.FieldLevel) bool {
		return DeliveryStatus(fl.Field().String()).Valid()
	})
}

// ValidationError reports input that was rejected before reaching the store
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// Add records a message for a field, keeping the first one reported
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// orNil returns nil when no field was reported
func (e *ValidationError) orNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// validateStruct runs tag validation and collects the failures into a ValidationError
func validateStruct(s interface{}) *ValidationError {
	verr := &ValidationError{}
	err := validate.Struct(s)
	if err == nil {
		return verr
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		verr.Add("_", err.Error())
		return verr
	}

	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe), describe(fe))
	}
	return verr
}

// fieldPath strips the struct name from the namespace
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "platform":
		return fmt.Sprintf("must be one of %s", strings.Join(platformNames(), ", "))
	case "contract_type":
		return fmt.Sprintf("must be one of %s", strings.Join(contractTypeNames(), ", "))
	case "ad_type":
		return fmt.Sprintf("must be one of %s", strings.Join(AdvertisementTypes, ", "))
	case "delivery_status":
		return fmt.Sprintf("must be one of %s", strings.Join(deliveryStatusNames(), ", "))
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
