package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/diegoleonuniline/umo-pos-api/internal/domain"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// validatorInstance usa el nombre JSON del campo en los mensajes.
func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// bodyError cuerpo ilegible o que no pasa la validación. Envuelve ErrInvalidInput.
type bodyError struct {
	code string
	msg  string
}

func (e *bodyError) Error() string { return e.msg }
func (e *bodyError) Unwrap() error { return domain.ErrInvalidInput }

// parseBody decodifica el JSON y valida las etiquetas `validate`. Un cuerpo
// vacío deja out en cero y solo se valida.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) > 0 {
		if err := c.BodyParser(out); err != nil {
			return &bodyError{code: CodeInvalidBody, msg: "cuerpo inválido"}
		}
	}
	if err := validatorInstance().Struct(out); err != nil {
		return &bodyError{code: CodeValidation, msg: validationMessage(err)}
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" es requerido")
		case "email":
			msgs = append(msgs, field+" no es un correo válido")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s excede %s caracteres", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s no cumple %s", field, fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
