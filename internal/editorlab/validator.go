// Проверка запросов через go-playground/validator.
package editorlab

import (
	"errors"
	"strings"

	"github.com/aisa-it/editorlab/internal/editorlab/apierrors"
	"github.com/go-playground/validator"
)

type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	v := validator.New()
	if err := v.RegisterValidation("format", formatValidator); err != nil {
		return nil
	}
	return &RequestValidator{v}
}

// Validate возвращает apierrors.ErrValidation с перечнем полей, не прошедших проверку.
func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validator.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil
		}
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+" "+fe.Tag())
		}
		return apierrors.ErrValidation.WithFormattedMessage(strings.Join(fields, ", "))
	}
	return nil
}

func formatValidator(fl validator.FieldLevel) bool {
	_, ok := exportFormats[ExportFormat(fl.Field().String())]
	return ok
}
