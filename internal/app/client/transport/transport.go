// Package transport - общий HTTP-клиент удаленного API.
// Один экземпляр на процесс: базовый адрес, bearer-заголовок и наблюдатели отказов авторизации.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

const (
	headerRequestID = "X-Request-ID"
	userAgent       = "notekeeper-client/1.0"
)

// RejectionObserver вызывается при каждом ответе 401 до того,
// как ошибка вернется вызывающему коду
type RejectionObserver func(ctx context.Context, err *StatusError)

type Transport struct {
	client  *http.Client
	baseURL string
	log     *slog.Logger

	mu        sync.RWMutex
	token     string
	observers []RejectionObserver
}

type requestOptions struct {
	anonymous bool
}

type Option func(*requestOptions)

// Anonymous отправляет запрос без заголовка Authorization,
// даже если токен прикреплен
func Anonymous() Option {
	return func(o *requestOptions) {
		o.anonymous = true
	}
}

func New(baseURL string, timeout time.Duration, log *slog.Logger) *Transport {
	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return NewWithClient(baseURL, client, log)
}

func NewWithClient(baseURL string, client *http.Client, log *slog.Logger) *Transport {
	return &Transport{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		log:     log.With(slog.String("component", "transport")),
	}
}

func (t *Transport) BaseURL() string {
	return t.baseURL
}

// SetToken прикрепляет bearer-токен ко всем последующим запросам
func (t *Transport) SetToken(token string) {
	t.mu.Lock()
	t.token = token
	t.mu.Unlock()
}

func (t *Transport) ClearToken() {
	t.SetToken("")
}

func (t *Transport) HasToken() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.token != ""
}

// OnRejection регистрирует наблюдателя ответов 401
func (t *Transport) OnRejection(observer RejectionObserver) {
	t.mu.Lock()
	t.observers = append(t.observers, observer)
	t.mu.Unlock()
}

// Do выполняет JSON-запрос. body и result могут быть nil.
// Ответ со статусом >= 400 возвращается как *StatusError.
func (t *Transport) Do(ctx context.Context, method, path string, body, result any, opts ...Option) error {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("ошибка маршалинга тела запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%w: ошибка создания запроса: %w", ErrTransport, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(headerRequestID, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	authorized := false
	if !o.anonymous {
		t.mu.RLock()
		token := t.token
		t.mu.RUnlock()
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
			authorized = true
		}
	}

	log := t.log.With(
		slog.String("request_id", requestID),
		slog.String("method", method),
		slog.String("path", path),
	)
	log.Debug("Отправка запроса", slog.Bool("authorized", authorized))

	started := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		log.Debug("Запрос не выполнен", slog.String("error", err.Error()))
		return fmt.Errorf("%w: ошибка выполнения запроса: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: ошибка чтения ответа: %w", ErrTransport, err)
	}

	log.Debug("Получен ответ",
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(respBody)),
		slog.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		statusErr := newStatusError(resp.StatusCode, respBody)
		if resp.StatusCode == http.StatusUnauthorized {
			t.notifyRejection(ctx, statusErr)
		}
		return statusErr
	}

	if result == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("%w: ошибка парсинга ответа: %w", ErrTransport, err)
	}

	return nil
}

func (t *Transport) notifyRejection(ctx context.Context, err *StatusError) {
	t.mu.RLock()
	observers := make([]RejectionObserver, len(t.observers))
	copy(observers, t.observers)
	t.mu.RUnlock()

	if len(observers) > 0 {
		t.log.Warn("Сервер отклонил авторизацию", slog.Int("observers", len(observers)))
	}

	for _, observer := range observers {
		observer(ctx, err)
	}
}
