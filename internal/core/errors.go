package core

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
)

// TransportError marks a failure talking to an external capability
// (embedding model, vector index, language model).
type TransportError struct {
	Service string
	Op      string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Service, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func NewTransportError(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Service: service, Op: op, Err: err}
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
