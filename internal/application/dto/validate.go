package dto

import "github.com/go-playground/validator/v10"

// validate instancia única del validador (es thread-safe y cachea metadata).
var validate = validator.New()

// Validate aplica las reglas `validate` del DTO. Los handlers lo invocan
// antes de entregar el request a los casos de uso, de modo que al core solo
// entran value objects ya validados.
func Validate(in any) error {
	return validate.Struct(in)
}
