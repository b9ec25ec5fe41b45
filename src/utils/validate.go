package utils

import (
	"errors"
	"fmt"
	"strings"

	"Backend-Formcraft/src/models"

	"github.com/go-playground/validator/v10"
)

// Validate runs the shared validator over a request DTO.
func Validate(v any) error {
	return models.Validator().Struct(v)
}

// ValidationMessages flattens validator errors into field -> message, keyed
// by the lower-camel struct field name.
func ValidationMessages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if name != "" {
			name = strings.ToLower(name[:1]) + name[1:]
		}
		if fe.Param() != "" {
			out[name] = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		} else {
			out[name] = fe.Tag()
		}
	}
	return out
}
