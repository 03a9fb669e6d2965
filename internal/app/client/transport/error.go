package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrTransport - сеть, 5xx и любые неклассифицированные ответы
	ErrTransport = errors.New("transport error")
	// ErrUnauthorized - сервер ответил 401
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError - ответ сервера со статусом >= 400
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ошибка сервера (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("ошибка сервера: статус %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return ErrTransport
}

// StatusCode возвращает HTTP-статус из цепочки ошибок или 0
func StatusCode(err error) int {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return 0
}

// ServerMessage возвращает текст ошибки от сервера, если он есть
func ServerMessage(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return ""
}

func newStatusError(status int, body []byte) *StatusError {
	return &StatusError{
		StatusCode: status,
		Message:    parseErrorMessage(body),
	}
}

// parseErrorMessage понимает {"detail": "..."}, {"detail": [{"msg": "..."}]}
// и {"error": "..."}
func parseErrorMessage(body []byte) string {
	var errResp struct {
		Detail json.RawMessage `json:"detail"`
		Error  string          `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err != nil {
		return ""
	}

	if len(errResp.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(errResp.Detail, &detail); err == nil {
			return detail
		}

		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(errResp.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, item := range items {
				if item.Msg != "" {
					msgs = append(msgs, item.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}

	return errResp.Error
}
