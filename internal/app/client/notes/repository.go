// Package notes - операции владельца над своими заметками.
package notes

import (
	"context"
	"errors"
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

// Repository не держит кэша: каждый вызов возвращает авторитетную запись сервера,
// а объединение со списком на экране делает вызывающий код
type Repository struct {
	transport Transport
	origin    string
	log       *slog.Logger
}

// VisibilityResult - результат переключения видимости.
// Note пуст, если сервер не прислал заметку в ответе.
type VisibilityResult struct {
	Note      *note.Note
	IsPublic  bool
	ShareLink string
}

func NewRepository(tr Transport, origin string, log *slog.Logger) *Repository {
	return &Repository{
		transport: tr,
		origin:    origin,
		log:       log.With(slog.String("component", "notes")),
	}
}

// List возвращает заметки владельца в порядке сервера
func (r *Repository) List(ctx context.Context) ([]note.Note, error) {
	var out []note.Note
	if err := r.transport.Do(ctx, http.MethodGet, "/notes", nil, &out); err != nil {
		return nil, mapError(err, "ошибка получения заметок")
	}
	if out == nil {
		out = []note.Note{}
	}
	return out, nil
}

func (r *Repository) Create(ctx context.Context, title, content string) (note.Note, error) {
	draft := note.NewDraft(title, content)
	if err := draft.Validate(); err != nil {
		return note.Note{}, err
	}

	var created note.Note
	req := note.CreateRequest{Title: draft.Title, Content: draft.Content}
	if err := r.transport.Do(ctx, http.MethodPost, "/notes", req, &created); err != nil {
		return note.Note{}, mapError(err, "ошибка создания заметки")
	}

	r.log.Debug("Заметка создана", slog.Int("id", created.ID))
	return created, nil
}

func (r *Repository) Update(ctx context.Context, id int, title, content string) (note.Note, error) {
	draft := note.NewDraft(title, content)
	if err := draft.Validate(); err != nil {
		return note.Note{}, err
	}

	var updated note.Note
	req := note.UpdateRequest{Title: draft.Title, Content: draft.Content}
	if err := r.transport.Do(ctx, http.MethodPut, notePath(id), req, &updated); err != nil {
		return note.Note{}, mapError(err, "ошибка обновления заметки")
	}

	r.log.Debug("Заметка обновлена", slog.Int("id", updated.ID))
	return updated, nil
}

// Delete не идемпотентен: повторное удаление вернет ErrNotFound
func (r *Repository) Delete(ctx context.Context, id int) error {
	if err := r.transport.Do(ctx, http.MethodDelete, notePath(id), nil, nil); err != nil {
		return mapError(err, "ошибка удаления заметки")
	}

	r.log.Debug("Заметка удалена", slog.Int("id", id))
	return nil
}

// SetVisibility делает заметку публичной или приватной.
// Ссылка строится из origin клиента, share_url сервера только сверяется.
func (r *Repository) SetVisibility(ctx context.Context, id int, isPublic bool) (VisibilityResult, error) {
	var resp struct {
		note.ShareResponse
		*note.Note
	}

	req := note.ShareRequest{IsPublic: isPublic}
	if err := r.transport.Do(ctx, http.MethodPost, notePath(id)+"/share", req, &resp); err != nil {
		return VisibilityResult{}, mapError(err, "ошибка изменения видимости")
	}

	result := VisibilityResult{IsPublic: isPublic}
	if resp.Note != nil && resp.Note.ID != 0 {
		result.Note = resp.Note
	}

	if isPublic {
		result.ShareLink = r.ShareLink(id)
		if resp.ShareURL != "" && resp.ShareURL != note.SharePath(id) {
			r.log.Warn("share_url сервера отличается от ожидаемого",
				slog.String("share_url", resp.ShareURL),
				slog.String("expected", note.SharePath(id)),
			)
		}
	}

	return result, nil
}

// ShareLink возвращает публичную ссылку на заметку
func (r *Repository) ShareLink(id int) string {
	return note.ShareLink(r.origin, id)
}

func notePath(id int) string {
	return "/notes/" + strconv.Itoa(id)
}

// mapError переводит ответы сервера в доменные ошибки заметок.
// 401 остается ErrUnauthorized, сеть и 5xx остаются ErrTransport.
func mapError(err error, op string) error {
	if errors.Is(err, transport.ErrUnauthorized) {
		return fmt.Errorf("%s: %w", op, err)
	}

	message := transport.ServerMessage(err)

	switch transport.StatusCode(err) {
	case http.StatusNotFound, http.StatusForbidden:
		if message == "" {
			message = "Note not found"
		}
		return &note.DomainError{Err: fmt.Errorf("%w: %w", note.ErrNotFound, err), Message: message, Code: "not_found"}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if message == "" {
			message = "Invalid note"
		}
		return &note.DomainError{Err: fmt.Errorf("%w: %w", note.ErrValidation, err), Message: message, Code: "rejected"}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
