// Package public читает публичные заметки без авторизации.
package public

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"golang.org/x/exp/slog"

	"notekeeper/internal/app/client/transport"
	"notekeeper/internal/domain/note"
)

type Transport interface {
	Do(ctx context.Context, method, path string, body, result any, opts ...transport.Option) error
}

type Resolver struct {
	transport Transport
	log       *slog.Logger
}

func NewResolver(tr Transport, log *slog.Logger) *Resolver {
	return &Resolver{
		transport: tr,
		log:       log.With(slog.String("component", "public")),
	}
}

// ListPublic возвращает все публичные заметки всех пользователей
func (r *Resolver) ListPublic(ctx context.Context) ([]note.PublicNote, error) {
	var out []note.PublicNote
	if err := r.transport.Do(ctx, http.MethodGet, "/public-notes", nil, &out, transport.Anonymous()); err != nil {
		return nil, fmt.Errorf("ошибка получения публичных заметок: %w", err)
	}
	if out == nil {
		out = []note.PublicNote{}
	}
	return out, nil
}

// FetchShared возвращает заметку, только если она сейчас публична.
// Отсутствующая и приватная заметки неразличимы.
func (r *Resolver) FetchShared(ctx context.Context, id int) (note.PublicNote, error) {
	if id <= 0 {
		return note.PublicNote{}, note.NewNotFound(note.MsgNotFoundOrPrivate)
	}

	var out note.PublicNote
	err := r.transport.Do(ctx, http.MethodGet, "/shared/"+strconv.Itoa(id), nil, &out, transport.Anonymous())
	if err != nil {
		switch transport.StatusCode(err) {
		case http.StatusNotFound, http.StatusForbidden:
			return note.PublicNote{}, note.NewNotFound(note.MsgNotFoundOrPrivate)
		default:
			return note.PublicNote{}, fmt.Errorf("ошибка получения заметки: %w", err)
		}
	}

	if !out.IsPublic || out.ID != id {
		r.log.Warn("Сервер вернул непубличную или чужую заметку", slog.Int("id", id))
		return note.PublicNote{}, note.NewNotFound(note.MsgNotFoundOrPrivate)
	}

	return out, nil
}
