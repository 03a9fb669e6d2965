package session

import (
	"errors"
	"fmt"

	"notekeeper/internal/app/client/transport"
)

var (
	ErrAuthentication = errors.New("authentication failed")
	ErrRegistration   = errors.New("registration failed")
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

// newError оборачивает причину так, что errors.Is видит и sentinel, и причину
func newError(sentinel error, code, fallback string, cause error) error {
	message := fallback
	if serverMsg := transport.ServerMessage(cause); serverMsg != "" {
		message = serverMsg
	}

	return &DomainError{
		Err:     fmt.Errorf("%w: %w", sentinel, cause),
		Message: message,
		Code:    code,
	}
}
