package file

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"notekeeper/internal/infrastructure/storage"
)

const (
	dirPermissions  = 0700
	filePermissions = 0600
)

// Storage хранит каждый ключ в отдельном файле: <dir>/<scope>/<key>
type Storage struct {
	dir string
}

var _ storage.Storage = (*Storage)(nil)

func New(dir, scope string) (*Storage, error) {
	scoped := filepath.Join(dir, url.PathEscape(scope))
	if err := os.MkdirAll(scoped, dirPermissions); err != nil {
		return nil, fmt.Errorf("ошибка создания директории хранилища: %w", err)
	}

	return &Storage{dir: scoped}, nil
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key))
}

func (s *Storage) Get(_ context.Context, key string) (string, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("ошибка чтения ключа %s: %w", key, err)
	}

	return string(data), nil
}

func (s *Storage) Set(_ context.Context, key, value string) error {
	// Пишем во временный файл и переименовываем, чтобы не оставить половину токена
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("ошибка сохранения ключа %s: %w", key, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка сохранения ключа %s: %w", key, err)
	}
	if err := tmp.Chmod(filePermissions); err != nil {
		tmp.Close()
		return fmt.Errorf("ошибка сохранения ключа %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("ошибка сохранения ключа %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		return fmt.Errorf("ошибка сохранения ключа %s: %w", key, err)
	}

	return nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка удаления ключа %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Close() error {
	return nil
}
