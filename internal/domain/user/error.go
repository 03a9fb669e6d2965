package user

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
)

type DomainError struct {
	Err     error
	Message string
	Code    string
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Err.Error()
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func invalid(code, message string) error {
	return &DomainError{
		Err:     ErrInvalidInput,
		Message: message,
		Code:    code,
	}
}
