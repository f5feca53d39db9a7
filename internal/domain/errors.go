package domain

import "fmt"

// ValidationError es un campo obligatorio ausente o inválido, detectado antes
// de enviar cualquier petición.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid construye un ValidationError para field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
