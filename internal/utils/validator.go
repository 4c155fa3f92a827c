package utils

import (
	"fmt"
	"html"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/truemail-rb/truemail-go"

	"fitness-tracker/internal/schemas"
)

// passwordSymbols is the set of special characters a password has to contain at least one of.
const passwordSymbols = "@$!%*?&"

type Validator struct {
	Validate    *validator.Validate
	VerifyEmail func(email string) bool
	policy      *bluemonday.Policy
}

var (
	instance      *Validator
	once          sync.Once
	configuration *truemail.Configuration
)

func GetValidator() *Validator {
	once.Do(func() {
		configuration, _ = truemail.NewConfiguration(truemail.ConfigurationAttr{
			VerifierEmail:         "no-reply@fitness-tracker.local",
			ValidationTypeDefault: "mx",
			SmtpFailFast:          true,
		})

		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			VerifyEmail: validateEmail,
			policy:      bluemonday.StrictPolicy(),
		}

		registerCustomValidators(instance.Validate)
	})

	return instance
}

func validateEmail(email string) bool {
	if configuration == nil {
		return true
	}
	return truemail.IsValid(email, configuration)
}

func registerCustomValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)
	v.RegisterCustomTypeFunc(optionalValue, schemas.Optional[string]{}, schemas.Optional[float64]{})

	if err := v.RegisterValidation("password_validation", passwordValidation); err != nil {
		LogMessage("error", "Error registering password validation: "+err.Error())
	}

	if err := v.RegisterValidation("max_bytes", maxBytesValidation); err != nil {
		LogMessage("error", "Error registering byte length validation: "+err.Error())
	}

	if err := v.RegisterValidation("iso_date", isoDateValidation); err != nil {
		LogMessage("error", "Error registering date validation: "+err.Error())
	}
}

// fieldName reports violations under the JSON (or form) name of the field.
func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// optionalValue unwraps schemas.Optional, absent and null values validate as nil.
func optionalValue(field reflect.Value) interface{} {
	if optional, ok := field.Interface().(interface{ Present() (interface{}, bool) }); ok {
		if value, present := optional.Present(); present {
			return value
		}
	}
	return nil
}

func passwordValidation(fl validator.FieldLevel) bool {
	var upperLetter, lowerLetter, number, specialChar bool

	for _, r := range fl.Field().String() {
		switch {
		case unicode.IsUpper(r):
			upperLetter = true
		case unicode.IsLower(r):
			lowerLetter = true
		case unicode.IsNumber(r):
			number = true
		case strings.ContainsRune(passwordSymbols, r):
			specialChar = true
		}
	}

	return upperLetter && lowerLetter && number && specialChar
}

// maxBytesValidation bounds the encoded length, bcrypt only accepts up to 72 bytes.
func maxBytesValidation(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func isoDateValidation(fl validator.FieldLevel) bool {
	_, _, err := ParseDate(fl.Field().String())
	return err == nil
}

// ValidateStruct runs all validation rules and returns every violation.
// missingRequired is true if at least one violation is an absent mandatory field.
func (v *Validator) ValidateStruct(obj interface{}) (violations []schemas.FieldError, missingRequired bool) {
	if err := v.Validate.Struct(obj); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return []schemas.FieldError{{Message: err.Error()}}, false
		}

		for _, fe := range validationErrors {
			if fe.Tag() == "required" {
				missingRequired = true
			}
			violations = append(violations, schemas.FieldError{
				Field:   fe.Field(),
				Message: fieldMessage(fe),
			})
		}
	}

	if selfValidating, ok := obj.(interface{ Validate() []schemas.FieldError }); ok {
		violations = append(violations, selfValidating.Validate()...)
	}

	return violations, missingRequired
}

func fieldMessage(fe validator.FieldError) string {
	label := fe.Field()
	if label != "" {
		label = strings.ToUpper(label[:1]) + label[1:]
	}

	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please provide a valid email address"
	case "password_validation":
		return "Password must contain at least one uppercase letter, one lowercase letter, one number and one special character (" + passwordSymbols + ")"
	case "iso_date":
		return label + " must be a valid ISO date"
	case "oneof":
		return label + " must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "min":
		if isText {
			return fmt.Sprintf("%s must be at least %s characters long", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "max":
		if isText {
			return fmt.Sprintf("%s cannot exceed %s characters", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "max_bytes":
		return fmt.Sprintf("%s cannot exceed %s bytes", label, fe.Param())
	case "len", "hexadecimal":
		return label + " is malformed"
	default:
		return label + " is invalid"
	}
}

// SanitizeData applies the rules of the sanitize struct tag to every tagged string field.
// Supported rules are trim, lower and html (strip all markup).
func (v *Validator) SanitizeData(obj interface{}) error {
	value := reflect.ValueOf(obj)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("sanitize: expected pointer to struct, got %T", obj)
	}
	value = value.Elem()

	for i := 0; i < value.NumField(); i++ {
		rules := value.Type().Field(i).Tag.Get("sanitize")
		if rules == "" {
			continue
		}

		if target := stringTarget(value.Field(i)); target.IsValid() && target.CanSet() {
			target.SetString(v.sanitizeString(target.String(), strings.Split(rules, ",")))
		}
	}

	return nil
}

// stringTarget resolves the settable string behind a string, *string or schemas.Optional[string] field.
func stringTarget(field reflect.Value) reflect.Value {
	switch field.Kind() {
	case reflect.String:
		return field
	case reflect.Ptr:
		if !field.IsNil() && field.Elem().Kind() == reflect.String {
			return field.Elem()
		}
	case reflect.Struct:
		if inner := field.FieldByName("Value"); inner.IsValid() && inner.Kind() == reflect.String {
			return inner
		}
	}
	return reflect.Value{}
}

func (v *Validator) sanitizeString(value string, rules []string) string {
	for _, rule := range rules {
		switch strings.TrimSpace(rule) {
		case "trim":
			value = strings.TrimSpace(value)
		case "lower":
			value = strings.ToLower(value)
		case "html":
			value = strings.TrimSpace(html.UnescapeString(v.policy.Sanitize(value)))
		}
	}
	return value
}
