package note

import "strings"

type CreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ShareRequest struct {
	IsPublic bool `json:"is_public"`
}

type ShareResponse struct {
	Message  string `json:"message,omitempty"`
	ShareURL string `json:"share_url,omitempty"`
}

// Draft - заголовок и текст заметки до отправки на сервер
type Draft struct {
	Title   string
	Content string
}

// NewDraft обрезает пробелы по краям, как это делает редактор
func NewDraft(title, content string) Draft {
	return Draft{
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
	}
}

// Validate проверяет, что оба поля непустые после обрезки
func (d Draft) Validate() error {
	if d.Title == "" {
		return NewValidation("title_required", "заголовок заметки не может быть пустым")
	}
	if d.Content == "" {
		return NewValidation("content_required", "текст заметки не может быть пустым")
	}
	return nil
}
