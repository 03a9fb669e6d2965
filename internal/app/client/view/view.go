// Package view печатает заметки и сообщения для CLI и интерактивной оболочки.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"

	"notekeeper/internal/domain/note"
)

const (
	FormatSimple = "simple"
	FormatTable  = "table"
	FormatJSON   = "json"
)

const previewLength = 150

// ParseFormat проверяет формат вывода, пустая строка означает simple
func ParseFormat(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", FormatSimple:
		return FormatSimple, nil
	case FormatTable:
		return FormatTable, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("неизвестный формат вывода: %q (simple, table, json)", format)
	}
}

type Renderer struct {
	out io.Writer
	now func() time.Time
}

func New(out io.Writer) *Renderer {
	return &Renderer{out: out, now: time.Now}
}

// WithClock нужен для стабильного относительного времени
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	return &Renderer{out: r.out, now: now}
}

func (r *Renderer) Success(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(r.out, "✓ "+format+"\n", args...)
}

func (r *Renderer) Warn(format string, args ...any) {
	color.New(color.FgYellow).Fprintf(r.out, "! "+format+"\n", args...)
}

func (r *Renderer) Error(err error) {
	color.New(color.FgRed).Fprintf(r.out, "Ошибка: %v\n", err)
}

func (r *Renderer) Println(args ...any) {
	fmt.Fprintln(r.out, args...)
}

func (r *Renderer) Notes(notes []note.Note, format string) error {
	switch format {
	case FormatJSON:
		return r.writeJSON(notes)
	case FormatTable:
		return r.notesTable(notes)
	default:
		return r.notesSimple(notes)
	}
}

func (r *Renderer) PublicNotes(notes []note.PublicNote, format string) error {
	switch format {
	case FormatJSON:
		return r.writeJSON(notes)
	case FormatTable:
		return r.publicTable(notes)
	default:
		return r.publicSimple(notes)
	}
}

// Note печатает заметку целиком
func (r *Renderer) Note(n note.Note) {
	bold := color.New(color.Bold)
	bold.Fprintf(r.out, "#%d %s", n.ID, n.Title)
	if n.IsPublic {
		color.New(color.FgCyan).Fprint(r.out, " [public]")
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, n.Content)
	fmt.Fprintf(r.out, "Created: %s\n", FormatDate(n.CreatedAt.Time()))
	if n.WasEdited() {
		fmt.Fprintf(r.out, "Updated: %s\n", FormatDate(n.UpdatedAt.Time()))
	}
}

// SharedNote печатает публичную заметку с автором и относительным временем
func (r *Renderer) SharedNote(n note.PublicNote) {
	color.New(color.Bold).Fprintln(r.out, n.Title)
	fmt.Fprintf(r.out, "by %s, %s\n", n.OwnerUsername, RelativeTime(n.CreatedAt.Time(), r.now()))
	if n.WasEdited() {
		fmt.Fprintf(r.out, "updated %s\n", RelativeTime(n.UpdatedAt.Time(), r.now()))
	}
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, n.Content)
}

func (r *Renderer) notesSimple(notes []note.Note) error {
	if len(notes) == 0 {
		fmt.Fprintln(r.out, "Заметок пока нет")
		return nil
	}

	fmt.Fprintf(r.out, "Найдено заметок: %d\n\n", len(notes))
	for _, n := range notes {
		visibility := "private"
		if n.IsPublic {
			visibility = "public"
		}

		color.New(color.Bold).Fprintf(r.out, "#%d %s", n.ID, n.Title)
		fmt.Fprintf(r.out, " (%s)\n", visibility)
		fmt.Fprintf(r.out, "   %s\n", Truncate(n.Content, previewLength))
		fmt.Fprintf(r.out, "   Created: %s", FormatDate(n.CreatedAt.Time()))
		if n.WasEdited() {
			fmt.Fprintf(r.out, " | Updated: %s", FormatDate(n.UpdatedAt.Time()))
		}
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out)
	}

	return nil
}

func (r *Renderer) notesTable(notes []note.Note) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTitle\tVisibility\tCreated\tUpdated\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t---\t\n")

	for _, n := range notes {
		visibility := "private"
		if n.IsPublic {
			visibility = "public"
		}
		updated := "-"
		if n.WasEdited() {
			updated = FormatDate(n.UpdatedAt.Time())
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t\n",
			n.ID,
			Truncate(n.Title, 30),
			visibility,
			FormatDate(n.CreatedAt.Time()),
			updated,
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("ошибка вывода таблицы: %w", err)
	}
	fmt.Fprintf(r.out, "\nВсего заметок: %d\n", len(notes))
	return nil
}

func (r *Renderer) publicSimple(notes []note.PublicNote) error {
	if len(notes) == 0 {
		fmt.Fprintln(r.out, "Публичных заметок пока нет")
		return nil
	}

	for _, n := range notes {
		color.New(color.Bold).Fprintf(r.out, "#%d %s", n.ID, n.Title)
		fmt.Fprintf(r.out, " by %s\n", n.OwnerUsername)
		fmt.Fprintf(r.out, "   %s\n", Truncate(n.Content, previewLength))
		fmt.Fprintf(r.out, "   Created %s", FormatDate(n.CreatedAt.Time()))
		if n.WasEdited() {
			fmt.Fprintf(r.out, " | Updated %s", FormatDate(n.UpdatedAt.Time()))
		}
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out)
	}

	return nil
}

func (r *Renderer) publicTable(notes []note.PublicNote) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tTitle\tAuthor\tCreated\t\n")
	fmt.Fprintf(w, "---\t---\t---\t---\t\n")

	for _, n := range notes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t\n",
			n.ID,
			Truncate(n.Title, 30),
			n.OwnerUsername,
			FormatDate(n.CreatedAt.Time()),
		)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("ошибка вывода таблицы: %w", err)
	}
	return nil
}

func (r *Renderer) writeJSON(v any) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatDate - дата в духе "Jan 2, 2006, 03:04 PM"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 2, 2006, 03:04 PM")
}

// RelativeTime: меньше минуты - "just now", дальше минуты, часы и дни,
// после 30 дней - обычная дата
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}

	seconds := int(now.Sub(t).Seconds())
	switch {
	case seconds < 60:
		return "just now"
	case seconds < 3600:
		return fmt.Sprintf("%d minutes ago", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d hours ago", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%d days ago", seconds/86400)
	default:
		return FormatDate(t)
	}
}

// Truncate обрезает по символам, а не по байтам
func Truncate(s string, length int) string {
	runes := []rune(s)
	if len(runes) <= length {
		return s
	}
	return string(runes[:length]) + "..."
}
