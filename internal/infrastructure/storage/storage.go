// Package storage описывает постоянное key-value хранилище клиента.
// В нем живет единственный секрет - bearer-токен под ключом CredentialKey.
package storage

import (
	"context"
	"errors"
)

// CredentialKey - фиксированный ключ, под которым хранится токен
const CredentialKey = "token"

var ErrNotFound = errors.New("key not found")

// Storage - хранилище, переживающее перезапуск процесса.
// Каждая реализация ограничена своей областью (scope), обычно хостом API.
type Storage interface {
	// Get возвращает ErrNotFound, если ключа нет
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Delete не считает отсутствие ключа ошибкой
	Delete(ctx context.Context, key string) error
	Close() error
}
