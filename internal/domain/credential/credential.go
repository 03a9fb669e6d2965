// Package credential описывает bearer-токен клиента и его структурную проверку.
//
// Клиент не проверяет подпись токена: разбор срока действия нужен только для
// того, чтобы не ходить на сервер с заведомо просроченным токеном. Реальная
// авторизация выполняется сервером на каждом запросе.
package credential

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const segments = 3

// Credential - непрозрачный bearer-токен и срок действия, извлеченный из его payload
type Credential struct {
	Token     string
	ExpiresAt time.Time
}

var parser = jwt.NewParser()

// Parse разбирает токен. Ошибки разбора не возвращаются:
// токен без читаемого срока действия просто считается невалидным.
func Parse(token string) Credential {
	c := Credential{Token: token}

	if token == "" || strings.Count(token, ".") != segments-1 {
		return c
	}

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return c
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return c
	}

	c.ExpiresAt = exp.Time
	return c
}

// IsZero сообщает, что токена нет
func (c Credential) IsZero() bool {
	return c.Token == ""
}

// IsValid проверяет токен на текущий момент
func (c Credential) IsValid() bool {
	return c.ValidAt(time.Now())
}

// ValidAt: токен валиден, только если срок действия прочитан и строго позже now
func (c Credential) ValidAt(now time.Time) bool {
	if c.Token == "" || c.ExpiresAt.IsZero() {
		return false
	}
	return c.ExpiresAt.After(now)
}

// TTL возвращает оставшееся время жизни, не меньше нуля
func (c Credential) TTL(now time.Time) time.Duration {
	if !c.ValidAt(now) {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}

// String не раскрывает токен в логах
func (c Credential) String() string {
	if c.Token == "" {
		return "credential(none)"
	}
	if c.ExpiresAt.IsZero() {
		return "credential(malformed)"
	}
	return "credential(expires " + c.ExpiresAt.UTC().Format(time.RFC3339) + ")"
}
