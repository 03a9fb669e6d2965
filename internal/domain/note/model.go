package note

import (
	"net/url"
	"strconv"
	"strings"
)

type Note struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
	IsPublic  bool      `json:"is_public"`
	OwnerID   int       `json:"owner_id"`
}

// WasEdited сообщает, менялась ли заметка после создания.
// Сервер выставляет updated_at == created_at при создании.
func (n Note) WasEdited() bool {
	return !n.UpdatedAt.Equal(n.CreatedAt)
}

// PublicNote - заметка, полученная через публичные эндпоинты.
// Только для чтения, owner_username заполняет сервер.
type PublicNote struct {
	Note
	OwnerUsername string `json:"owner_username"`
}

// SharePath возвращает путь публичной ссылки на заметку
func SharePath(id int) string {
	return "/shared/" + url.PathEscape(strconv.Itoa(id))
}

// ShareLink собирает публичную ссылку из origin и id заметки.
// Ссылка стабильна: зависит только от id.
func ShareLink(origin string, id int) string {
	return strings.TrimRight(origin, "/") + SharePath(id)
}

// Prepend добавляет новую заметку в начало локального списка
func Prepend(notes []Note, n Note) []Note {
	out := make([]Note, 0, len(notes)+1)
	out = append(out, n)
	return append(out, notes...)
}

// Replace заменяет заметку с тем же id, порядок сохраняется
func Replace(notes []Note, n Note) []Note {
	out := make([]Note, len(notes))
	for i, existing := range notes {
		if existing.ID == n.ID {
			out[i] = n
			continue
		}
		out[i] = existing
	}
	return out
}

// Remove убирает заметку с указанным id
func Remove(notes []Note, id int) []Note {
	out := make([]Note, 0, len(notes))
	for _, existing := range notes {
		if existing.ID != id {
			out = append(out, existing)
		}
	}
	return out
}

// Find ищет заметку по id в локальном списке
func Find(notes []Note, id int) (Note, bool) {
	for _, n := range notes {
		if n.ID == id {
			return n, true
		}
	}
	return Note{}, false
}
