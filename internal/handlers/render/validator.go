package render

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

func configureValidator(validate *validator.Validate) {
	_ = validate.RegisterValidation("releaseyear", validateReleaseYear)
	validate.RegisterTagNameFunc(useJSONTagNames)
}

func useJSONTagNames(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	// skip if tag key says it should be ignored
	if name == "-" {
		return ""
	}
	return name
}

// Movies released before 1800 or after the current year make no sense
func validateReleaseYear(fl validator.FieldLevel) bool {
	year := fl.Field().Int()
	return year >= 1800 && year <= int64(time.Now().Year())
}
