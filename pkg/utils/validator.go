package utils

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// FieldRules is the one bounds table for every persisted field. Request DTOs and
// entities reference these aliases in their validate tags instead of repeating numbers;
// the CHECK constraints in the database schema mirror the same values.
var FieldRules = map[string]string{
	"customer_name":    "min=3,max=50",
	"customer_phone":   "min=1,max=50,number",
	"genre_name":       "min=5,max=50",
	"movie_title":      "min=5,max=255",
	"movie_stock":      "min=0,max=255",
	"movie_daily_rate": "min=0,max=255",
	"user_name":        "min=5,max=50",
	"user_email":       "min=5,max=255,email",
	"user_password":    "min=5,max=1024",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return IsObjectIDHex(fl.Field().String())
	})

	for alias, rule := range FieldRules {
		v.RegisterAlias(alias, rule)
	}

	return v
}

// IsObjectIDHex reports whether s is a 24-character hexadecimal identifier.
func IsObjectIDHex(s string) bool {
	_, err := bson.ObjectIDFromHex(s)
	return err == nil
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[err.Field()] = getErrorMessage(err)
		}
	} else {
		errors["body"] = err.Error()
	}

	return errors
}

// converts validator errors to human-readable messages
func getErrorMessage(err validator.FieldError) string {
	switch err.ActualTag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Minimum length is %s", err.Param())
		}
		return fmt.Sprintf("Minimum value is %s", err.Param())
	case "max":
		if err.Kind() == reflect.String {
			return fmt.Sprintf("Maximum length is %s", err.Param())
		}
		return fmt.Sprintf("Maximum value is %s", err.Param())
	case "number":
		return "Must contain digits only"
	case "objectid":
		return "Must be a valid 24-character hex id"
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}

// formats validation errors map into single string, ordered by field
func FormatValidationErrors(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, errors[field]))
	}
	return strings.Join(msgs, "; ")
}
