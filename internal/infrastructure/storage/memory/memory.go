package memory

import (
	"context"
	"sync"

	"notekeeper/internal/infrastructure/storage"
)

// Storage - временное in-memory хранилище. Данные не переживают перезапуск,
// поэтому используется как запасной вариант и в тестах.
type Storage struct {
	mu   sync.RWMutex
	data map[string]string
}

var _ storage.Storage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		data: make(map[string]string),
	}
}

func (m *Storage) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.data[key]
	if !exists {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (m *Storage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = value
	return nil
}

func (m *Storage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *Storage) Close() error {
	return nil
}
