package datastore

import (
	"errors"
	"fmt"
)

// Errores que los adapters de storage devuelven hacia el dominio.
// Los conflictos de unicidad NO aparecen aquí: los repos los absorben
// con insert-or-get y devuelven el registro existente.
var (
	ErrNotFound    = errors.New("datastore: not found")
	ErrUnavailable = errors.New("datastore: unavailable")
)

// Unavailable envuelve un error del driver como falla transitoria.
// Si err ya es ErrNotFound o ErrUnavailable lo devuelve tal cual.
func Unavailable(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}

// IsTransient indica si el error es retryable desde el punto de vista del cliente.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
