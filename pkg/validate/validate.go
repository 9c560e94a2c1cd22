package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var v validator.Validate

func init() {
	v = *validator.New()
}

func RequiredFields(dto interface{}) error {
	err := v.Struct(dto)
	if err == nil {
		return nil
	}
	var buff string = "validation error: "
	errs := err.(validator.ValidationErrors)
	for _, e := range errs {
		buff += fmt.Sprintf("field '%s' is missing in request body", strings.ToLower(e.Field()))
	}
	return errors.New(buff)
}
