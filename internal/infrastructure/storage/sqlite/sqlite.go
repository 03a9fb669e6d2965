package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"notekeeper/internal/infrastructure/migration"
	"notekeeper/internal/infrastructure/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Storage struct {
	db    *sql.DB
	scope string
}

var _ storage.Storage = (*Storage)(nil)

// New открывает (и при необходимости создает) базу по пути path
func New(path, scope string) (*Storage, error) {
	return NewWithEngine(path, scope, migration.SQLiteEngine)
}

// NewWithEngine позволяет подменить движок миграций
func NewWithEngine(path, scope string, engine migration.MigrationEngine) (*Storage, error) {
	source, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения миграций: %w", err)
	}

	if err := migration.NewMigration(source, path, engine).Up(); err != nil {
		return nil, fmt.Errorf("ошибка миграции базы данных: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	return &Storage{db: db, scope: scope}, nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE scope = ? AND key = ?`,
		s.scope, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", storage.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("ошибка чтения ключа %s: %w", key, err)
	}

	return value, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (scope, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (scope, key) DO UPDATE
		SET value = excluded.value, updated_at = excluded.updated_at
	`, s.scope, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("ошибка сохранения ключа %s: %w", key, err)
	}

	return nil
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM kv WHERE scope = ? AND key = ?`,
		s.scope, key)
	if err != nil {
		return fmt.Errorf("ошибка удаления ключа %s: %w", key, err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
