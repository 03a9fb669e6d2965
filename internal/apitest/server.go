// Package apitest - фейковый удаленный API заметок в памяти для тестов клиента.
// Повторяет контракт сервера: JWT HS256, bcrypt, ошибки с полем "detail".
// Операции описаны через huma поверх chi.
package apitest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"

	"notekeeper/internal/domain/note"
	"notekeeper/internal/domain/user"
	"notekeeper/internal/utils/logger"
)

// TimestampLayout - наивный формат времени, как у FastAPI без зоны
const TimestampLayout = "2006-01-02T15:04:05.000000"

const defaultTokenTTL = 30 * time.Minute

type account struct {
	user         user.User
	passwordHash []byte
}

type failure struct {
	status int
	detail string
}

type Server struct {
	*httptest.Server

	log *slog.Logger

	mu         sync.Mutex
	secret     []byte
	generation int
	tokenTTL   time.Duration
	lastStamp  time.Time
	nextUserID int
	nextNoteID int
	accounts   map[string]*account
	notes      map[int]*note.Note
	failures   map[string][]failure
	hits       map[string]int
}

// New запускает фейковый API и закрывает его по окончании теста
func New(tb testing.TB) *Server {
	tb.Helper()

	s := &Server{
		log:        logger.Discard(),
		secret:     []byte("apitest-secret-key-0123456789"),
		tokenTTL:   defaultTokenTTL,
		nextUserID: 1,
		nextNoteID: 1,
		accounts:   make(map[string]*account),
		notes:      make(map[int]*note.Note),
		failures:   make(map[string][]failure),
		hits:       make(map[string]int),
	}
	s.Server = httptest.NewServer(s.routes())
	tb.Cleanup(s.Close)

	return s
}

func (s *Server) routes() http.Handler {
	mux := chi.NewMux()
	mux.Use(chimiddleware.Recoverer)
	mux.Use(s.record)

	config := huma.DefaultConfig("Notes API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}
	config.CreateHooks = nil
	config.DocsPath = ""

	api := humachi.New(mux, config)

	loggerMW := requestLogger(s.log)
	middlewares := newContainer()

	middlewares.Add(loggerMW)
	newAuthHandler(s, middlewares.GetAllAndClear()).SetupRoutes(api)

	middlewares.Add(s.authenticate(api))
	middlewares.Add(loggerMW)
	newSessionHandler(s, middlewares.GetAllAndClear()).SetupRoutes(api)

	middlewares.Add(s.authenticate(api))
	middlewares.Add(loggerMW)
	newNoteHandler(s, middlewares.GetAllAndClear()).SetupRoutes(api)

	middlewares.Add(loggerMW)
	newPublicHandler(s, middlewares.GetAllAndClear()).SetupRoutes(api)

	return mux
}

// record считает запросы и отдает подготовленные отказы FailNext
func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := routeKey(r.Method, r.URL.Path)

		s.mu.Lock()
		s.hits[key]++
		var injected *failure
		if queue := s.failures[key]; len(queue) > 0 {
			injected = &queue[0]
			s.failures[key] = queue[1:]
		}
		s.mu.Unlock()

		if injected != nil {
			writeDetail(w, injected.status, injected.detail)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// FailNext заставляет следующий запрос method+path вернуть status
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := routeKey(method, path)
	s.failures[key] = append(s.failures[key], failure{
		status: status,
		detail: http.StatusText(status),
	})
}

// Hits возвращает число запросов method+path
func (s *Server) Hits(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[routeKey(method, path)]
}

// RevokeAll делает недействительными все выданные токены
func (s *Server) RevokeAll() {
	s.mu.Lock()
	s.generation++
	s.mu.Unlock()
}

// SetTokenTTL задает срок жизни новых токенов
func (s *Server) SetTokenTTL(ttl time.Duration) {
	s.mu.Lock()
	s.tokenTTL = ttl
	s.mu.Unlock()
}

// SeedUser создает пользователя в обход API
func (s *Server) SeedUser(username, email, password string) (user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createAccount(username, email, password)
}

// IssueToken выдает подписанный токен существующему пользователю с заданным сроком
func (s *Server) IssueToken(username string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[username]
	if !ok {
		return "", fmt.Errorf("пользователь %q не найден", username)
	}
	return s.signToken(acc.user.ID, ttl)
}

// Note возвращает копию заметки из хранилища сервера
func (s *Server) Note(id int) (note.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[id]
	if !ok {
		return note.Note{}, false
	}
	return *n, true
}

func (s *Server) createAccount(username, email, password string) (user.User, error) {
	if _, exists := s.accounts[username]; exists {
		return user.User{}, errUsernameTaken
	}
	for _, acc := range s.accounts {
		if strings.EqualFold(acc.user.Email, email) {
			return user.User{}, errEmailTaken
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return user.User{}, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	u := user.User{ID: s.nextUserID, Username: username, Email: email}
	s.nextUserID++
	s.accounts[username] = &account{user: u, passwordHash: hash}

	return u, nil
}

func (s *Server) accountByID(id int) (*account, bool) {
	for _, acc := range s.accounts {
		if acc.user.ID == id {
			return acc, true
		}
	}
	return nil, false
}

// stamp возвращает строго возрастающую метку времени с точностью до микросекунды
func (s *Server) stamp() note.Timestamp {
	now := time.Now().UTC().Truncate(time.Microsecond)
	if !now.After(s.lastStamp) {
		now = s.lastStamp.Add(time.Microsecond)
	}
	s.lastStamp = now

	ts, _ := note.ParseTimestamp(now.Format(TimestampLayout))
	return ts
}

func routeKey(method, path string) string {
	return strings.ToUpper(method) + " " + path
}
