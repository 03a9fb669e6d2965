package user

import (
	"net/mail"
	"strings"
)

// Validator - проверки формы перед отправкой на сервер.
// Правила паролей и логинов принадлежат серверу, здесь только обязательные поля.
type Validator interface {
	ValidateRegister(username, email, password string) error
	ValidateLogin(username, password string) error
}

type FormValidator struct{}

// NewFormValidator создает новый валидатор
func NewFormValidator() *FormValidator {
	return &FormValidator{}
}

// ValidateRegister валидирует данные для регистрации
func (v *FormValidator) ValidateRegister(username, email, password string) error {
	if err := v.ValidateLogin(username, password); err != nil {
		return err
	}

	if strings.TrimSpace(email) == "" {
		return invalid("email_required", "email обязателен")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return invalid("email_invalid", "некорректный email")
	}

	return nil
}

// ValidateLogin валидирует данные для входа
func (v *FormValidator) ValidateLogin(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return invalid("username_required", "имя пользователя обязательно")
	}

	if password == "" {
		return invalid("password_required", "пароль обязателен")
	}

	return nil
}
