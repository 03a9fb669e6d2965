package note

import (
	"errors"
)

var (
	ErrNotFound   = errors.New("note not found")
	ErrValidation = errors.New("invalid note")
)

// MsgNotFoundOrPrivate - единое сообщение для отсутствующей и приватной заметки
const MsgNotFoundOrPrivate = "Note not found or not publicly shared"

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

func NewNotFound(message string) error {
	return &DomainError{Err: ErrNotFound, Message: message, Code: "not_found"}
}

func NewValidation(code, message string) error {
	return &DomainError{Err: ErrValidation, Message: message, Code: code}
}
