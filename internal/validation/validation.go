package validation

import (
	"encoding/json"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	projectIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)
	assetIDPattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,127}$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	// Tell the validator to use the JSON tag as the “field name”
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		// Grab the value of `json:"foo,omitempty"`
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			// fallback to the Go field name or skip
			return fld.Name
		}
		return name
	})

	// projectid accepts the empty string, which means the interim directory
	_ = validate.RegisterValidation("projectid", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || projectIDPattern.MatchString(s)
	})
	_ = validate.RegisterValidation("assetid", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return assetIDPattern.MatchString(s) && !strings.Contains(s, "..")
	})
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func ValidateVar(v interface{}, tag string) error {
	return validate.Var(v, tag)
}

func ErrorsToJson(validationErrs error) (string, error) {
	errsMap := make(map[string]string)
	for _, fieldErr := range validationErrs.(validator.ValidationErrors) {
		errsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	errsJson, err := json.Marshal(errsMap)
	if err != nil {
		return "", err
	}
	return string(errsJson), nil
}
