package client

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	gosync "sync"
	"syscall"

	"golang.org/x/exp/slog"

	"notekeeper/internal/app/client/config"
	"notekeeper/internal/app/client/notes"
	"notekeeper/internal/app/client/public"
	"notekeeper/internal/app/client/session"
	"notekeeper/internal/app/client/transport"
	"notekeeper/internal/infrastructure/storage"
	"notekeeper/internal/infrastructure/storage/file"
	"notekeeper/internal/infrastructure/storage/memory"
	"notekeeper/internal/infrastructure/storage/sqlite"
)

// App собирает ядро клиента. Один App - один транспорт и один менеджер сессии,
// глобального состояния нет.
type App struct {
	config    *config.Config
	log       *slog.Logger
	storage   storage.Storage
	transport *transport.Transport
	session   *session.Manager
	notes     *notes.Repository
	public    *public.Resolver

	wg     gosync.WaitGroup
	mu     gosync.Mutex
	cancel context.CancelFunc
}

func New(cfg *config.Config, log *slog.Logger) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация не задана")
	}

	store := newStorage(cfg, log)
	tr := transport.New(cfg.APIBaseURL, cfg.HTTPTimeout, log)

	return &App{
		config:    cfg,
		log:       log,
		storage:   store,
		transport: tr,
		session:   session.NewManager(tr, store, log),
		notes:     notes.NewRepository(tr, cfg.Origin, log),
		public:    public.NewResolver(tr, log),
	}, nil
}

// newStorage открывает хранилище токена. Если выбранное хранилище недоступно,
// клиент работает с памятью и токен не переживет перезапуск.
func newStorage(cfg *config.Config, log *slog.Logger) storage.Storage {
	var (
		store storage.Storage
		err   error
	)

	switch cfg.CredentialStore {
	case config.StoreSQLite:
		store, err = sqlite.New(cfg.CredentialPath, cfg.StoreScope())
	case config.StoreFile:
		store, err = file.New(cfg.CredentialPath, cfg.StoreScope())
	default:
		return memory.New()
	}

	if err != nil {
		log.Warn("Не удалось открыть хранилище токена, используем память",
			slog.String("store", cfg.CredentialStore),
			slog.String("error", err.Error()),
		)
		return memory.New()
	}

	return store
}

// Initialize восстанавливает сессию из сохраненного токена
func (a *App) Initialize(ctx context.Context) session.Session {
	s := a.session.Initialize(ctx)
	a.log.Debug("Сессия инициализирована", slog.String("state", s.State.String()))
	return s
}

func (a *App) Config() *config.Config {
	return a.config
}

func (a *App) Logger() *slog.Logger {
	return a.log
}

func (a *App) Session() *session.Manager {
	return a.session
}

func (a *App) Notes() *notes.Repository {
	return a.notes
}

func (a *App) Public() *public.Resolver {
	return a.public
}

// StartWatch запускает периодическую проверку сессии, если она включена в конфигурации
func (a *App) StartWatch(ctx context.Context) {
	if a.config.RevalidateInterval <= 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.session.Watch(ctx, a.config.RevalidateInterval)
	}()

	a.log.Debug("Проверка сессии запущена", slog.Duration("interval", a.config.RevalidateInterval))
}

// NotifyContext возвращает контекст, отменяемый по SIGINT и SIGTERM
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// Shutdown останавливает фоновые задачи и закрывает хранилище
func (a *App) Shutdown() error {
	a.mu.Lock()
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	a.mu.Unlock()

	a.wg.Wait()

	if err := a.storage.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия хранилища: %w", err)
	}

	a.log.Debug("Клиент завершил работу")
	return nil
}
