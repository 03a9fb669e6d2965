// Package session управляет жизненным циклом сессии клиента:
// хранит токен, прикрепляет его к транспорту и завершает сессию при отказе сервера.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/exp/slog"

	"notekeeper/internal/app/client/transport"
	"notekeeper/internal/domain/credential"
	"notekeeper/internal/domain/user"
	"notekeeper/internal/infrastructure/storage"
)

// Transport - часть транспорта, которой пользуется менеджер
type Transport interface {
	Do(ctx context.Context, method, path string, body, result any, opts ...transport.Option) error
	SetToken(token string)
	ClearToken()
	OnRejection(observer transport.RejectionObserver)
}

// Manager - единственный писатель состояния сессии.
//
// Запись состояния сериализована мьютексом, но сетевые вызовы идут без него.
// Поэтому принудительный выход по 401 может обогнать Login, который еще ждет
// ответа /auth/me: побеждает тот, кто записал последним.
type Manager struct {
	transport Transport
	store     storage.Storage
	validator user.Validator
	log       *slog.Logger
	now       func() time.Time

	mu      sync.Mutex
	session Session
	loading bool

	listenersMu sync.Mutex
	listeners   map[int]Listener
	nextID      int
}

type Option func(*Manager)

// WithClock подменяет часы, по которым проверяется срок токена
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

func WithValidator(v user.Validator) Option {
	return func(m *Manager) {
		m.validator = v
	}
}

// NewManager создает менеджер и регистрирует обработчик отказов на транспорте.
// На один транспорт должен приходиться один менеджер.
func NewManager(tr Transport, store storage.Storage, log *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		transport: tr,
		store:     store,
		validator: user.NewFormValidator(),
		log:       log.With(slog.String("component", "session")),
		now:       time.Now,
		session:   Session{State: StateUninitialized},
		loading:   true,
		listeners: make(map[int]Listener),
	}

	for _, opt := range opts {
		opt(m)
	}

	tr.OnRejection(m.handleRejection)

	return m
}

// Loading истинно, пока Initialize не завершился
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) Session() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *Manager) IsAuthenticated() bool {
	return m.Session().IsAuthenticated()
}

// Subscribe добавляет слушателя переходов состояния и возвращает функцию отписки
func (m *Manager) Subscribe(l Listener) func() {
	m.listenersMu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = l
	m.listenersMu.Unlock()

	return func() {
		m.listenersMu.Lock()
		delete(m.listeners, id)
		m.listenersMu.Unlock()
	}
}

// Initialize восстанавливает сессию из сохраненного токена.
// Всегда завершается в AUTHENTICATED или UNAUTHENTICATED.
func (m *Manager) Initialize(ctx context.Context) Session {
	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	token, err := m.store.Get(ctx, storage.CredentialKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.log.Warn("Не удалось прочитать сохраненный токен", slog.String("error", err.Error()))
		}
		return m.deauthenticate(ctx, "нет сохраненного токена")
	}

	cred := credential.Parse(token)
	if !cred.ValidAt(m.now()) {
		return m.deauthenticate(ctx, "сохраненный токен недействителен")
	}

	m.transport.SetToken(cred.Token)

	u, err := m.fetchUser(ctx)
	if err != nil {
		m.log.Info("Не удалось восстановить сессию", slog.String("error", err.Error()))
		return m.deauthenticate(ctx, "ошибка /auth/me")
	}

	m.log.Debug("Сессия восстановлена", slog.String("username", u.Username))
	return m.authenticate(u, cred)
}

// Login входит в систему. При любой ошибке сохраненный токен удаляется,
// а заголовок снимается с транспорта.
func (m *Manager) Login(ctx context.Context, username, password string) (user.User, error) {
	if err := m.validator.ValidateLogin(username, password); err != nil {
		m.deauthenticate(ctx, "ошибка входа")
		return user.User{}, newError(ErrAuthentication, "invalid_input", err.Error(), err)
	}

	var resp user.LoginResponse
	req := user.LoginRequest{Username: username, Password: password}
	if err := m.transport.Do(ctx, http.MethodPost, "/auth/login", req, &resp, transport.Anonymous()); err != nil {
		m.deauthenticate(ctx, "ошибка входа")
		return user.User{}, newError(ErrAuthentication, "login_failed", "Login failed", err)
	}

	if resp.AccessToken == "" {
		m.deauthenticate(ctx, "ошибка входа")
		return user.User{}, newError(ErrAuthentication, "empty_token", "Login failed",
			errors.New("сервер не вернул access_token"))
	}

	if err := m.store.Set(ctx, storage.CredentialKey, resp.AccessToken); err != nil {
		m.deauthenticate(ctx, "ошибка входа")
		return user.User{}, newError(ErrAuthentication, "store_failed", "Login failed",
			fmt.Errorf("ошибка сохранения токена: %w", err))
	}

	m.transport.SetToken(resp.AccessToken)

	u, err := m.fetchUser(ctx)
	if err != nil {
		m.deauthenticate(ctx, "ошибка входа")
		return user.User{}, newError(ErrAuthentication, "profile_failed", "Login failed", err)
	}

	m.authenticate(u, credential.Parse(resp.AccessToken))
	m.log.Info("Вход выполнен успешно", slog.String("username", u.Username))

	return u, nil
}

// Register создает учетную запись и сразу входит в нее.
// Ошибка входа после успешной регистрации возвращается как ошибка входа.
func (m *Manager) Register(ctx context.Context, username, email, password string) (user.User, error) {
	if err := m.validator.ValidateRegister(username, email, password); err != nil {
		return user.User{}, newError(ErrRegistration, "invalid_input", err.Error(), err)
	}

	req := user.RegisterRequest{Username: username, Email: email, Password: password}
	if err := m.transport.Do(ctx, http.MethodPost, "/auth/register", req, nil, transport.Anonymous()); err != nil {
		return user.User{}, newError(ErrRegistration, "register_failed", "Registration failed", err)
	}

	m.log.Info("Пользователь зарегистрирован", slog.String("username", username))

	return m.Login(ctx, username, password)
}

// Logout завершает сессию. Повторный вызов ничего не ломает.
func (m *Manager) Logout(ctx context.Context) error {
	m.transport.ClearToken()

	err := m.store.Delete(ctx, storage.CredentialKey)
	m.setUnauthenticated()

	if err != nil {
		return fmt.Errorf("ошибка удаления токена: %w", err)
	}
	return nil
}

// Revalidate проверяет срок токена и заново запрашивает /auth/me.
// Сетевая ошибка сессию не завершает.
func (m *Manager) Revalidate(ctx context.Context) error {
	current := m.Session()
	if !current.IsAuthenticated() {
		return nil
	}

	if !current.Credential.ValidAt(m.now()) {
		m.log.Info("Срок действия токена истек")
		return m.Logout(ctx)
	}

	u, err := m.fetchUser(ctx)
	if err != nil {
		if errors.Is(err, transport.ErrUnauthorized) {
			return nil
		}
		return fmt.Errorf("ошибка проверки сессии: %w", err)
	}

	m.mu.Lock()
	if m.session.IsAuthenticated() && m.session.Credential.Token == current.Credential.Token {
		m.session.User = &u
	}
	m.mu.Unlock()

	return nil
}

// Watch периодически вызывает Revalidate до отмены ctx
func (m *Manager) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Проверка сессии остановлена")
			return
		case <-ticker.C:
			if err := m.Revalidate(ctx); err != nil {
				m.log.Warn("Ошибка проверки сессии", slog.String("error", err.Error()))
			}
		}
	}
}

func (m *Manager) handleRejection(ctx context.Context, rejection *transport.StatusError) {
	m.log.Warn("Сервер отклонил токен, сессия завершена", slog.String("reason", rejection.Message))

	if err := m.Logout(context.WithoutCancel(ctx)); err != nil {
		m.log.Error("Ошибка завершения сессии", slog.String("error", err.Error()))
	}
}

func (m *Manager) fetchUser(ctx context.Context) (user.User, error) {
	var u user.User
	if err := m.transport.Do(ctx, http.MethodGet, "/auth/me", nil, &u); err != nil {
		return user.User{}, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return u, nil
}

// deauthenticate используется в путях отката, ошибку удаления только логирует
func (m *Manager) deauthenticate(ctx context.Context, reason string) Session {
	m.log.Debug("Сброс сессии", slog.String("reason", reason))

	if err := m.Logout(context.WithoutCancel(ctx)); err != nil {
		m.log.Warn("Не удалось удалить сохраненный токен", slog.String("error", err.Error()))
	}
	return m.Session()
}

func (m *Manager) authenticate(u user.User, cred credential.Credential) Session {
	m.mu.Lock()
	changed := m.session.State != StateAuthenticated || m.session.User == nil || m.session.User.ID != u.ID
	m.session = Session{State: StateAuthenticated, User: &u, Credential: cred}
	snapshot := m.session
	m.mu.Unlock()

	if changed {
		m.notify(snapshot)
	}
	return snapshot
}

func (m *Manager) setUnauthenticated() {
	m.mu.Lock()
	changed := m.session.State != StateUnauthenticated
	m.session = Session{State: StateUnauthenticated}
	snapshot := m.session
	m.mu.Unlock()

	if changed {
		m.notify(snapshot)
	}
}

func (m *Manager) notify(s Session) {
	m.listenersMu.Lock()
	listeners := make([]Listener, 0, len(m.listeners))
	for _, l := range m.listeners {
		listeners = append(listeners, l)
	}
	m.listenersMu.Unlock()

	for _, l := range listeners {
		l(s)
	}
}
