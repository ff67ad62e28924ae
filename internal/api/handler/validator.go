package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/weinhaus/storefront/internal/core/domain"
)

var invalidPayload = echo.NewHTTPError(http.StatusBadRequest, "Ungültige Anfrage.")

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures wrap
// domain.ErrInvalidInput with one German message per field.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func jsonFieldName(f reflect.StructField) string {
	name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	if name == "-" || name == "" {
		return f.Name
	}
	return name
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " ist erforderlich"
	case "email":
		return field + " muss eine gültige E-Mail-Adresse sein"
	case "gt":
		return fmt.Sprintf("%s muss größer als %s sein", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s darf nicht kleiner als %s sein", field, fe.Param())
	case "min":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s braucht mindestens %s Einträge", field, fe.Param())
		}
		return fmt.Sprintf("%s muss mindestens %s Zeichen lang sein", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s darf höchstens %s Zeichen lang sein", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s muss genau %s Zeichen lang sein", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s muss einer von %s sein", field, fe.Param())
	default:
		return fmt.Sprintf("%s ist ungültig (%s)", field, fe.Tag())
	}
}
