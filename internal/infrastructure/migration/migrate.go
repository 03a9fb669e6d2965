package migration

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	// Blank import required for SQLite driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Migrator - интерфейс для самой библиотеки migrate.Migrate
type Migrator interface {
	Up() error
	Close() (error, error)
}

// MigrationEngine - фабрика для создания мигратора (чтобы не лезть в ФС и БД в тестах)
type MigrationEngine func(source fs.FS, databasePath string) (Migrator, error)

type Migration struct {
	source fs.FS
	dbPath string
	engine MigrationEngine
}

func NewMigration(source fs.FS, dbPath string, engine MigrationEngine) *Migration {
	if engine == nil {
		engine = SQLiteEngine
	}

	return &Migration{
		source: source,
		dbPath: dbPath,
		engine: engine,
	}
}

// SQLiteEngine - реальная реализация: встроенные миграции и файл SQLite
func SQLiteEngine(source fs.FS, databasePath string) (Migrator, error) {
	src, err := iofs.New(source, ".")
	if err != nil {
		return nil, fmt.Errorf("источник миграций: %w", err)
	}

	return migrate.NewWithSourceInstance("iofs", src, "sqlite3://"+databasePath)
}

func (mg *Migration) Up() (err error) {
	m, err := mg.engine(mg.source, mg.dbPath)
	if err != nil {
		return err
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration source error: %v", err, serr)
			} else {
				err = serr
			}
		}
		if dberr != nil {
			if err != nil {
				err = fmt.Errorf("%w; migration database error: %v", err, dberr)
			} else {
				err = dberr
			}
		}
	}()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%w; migration up error", err)
	}
	return nil
}
