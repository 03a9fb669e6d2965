package shell

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"notekeeper/cmd/client/cmd/prompt"
	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/app/client"
	"notekeeper/internal/app/client/session"
	"notekeeper/internal/app/client/view"
	"notekeeper/internal/domain/note"
)

const noticeSessionEnded = "Сессия завершена сервером. Войдите снова: login"

// shellApp держит локальный список заметок: новые добавляются в начало,
// измененные заменяются на месте, удаленные убираются
type shellApp struct {
	app *client.App
	r   *view.Renderer
	p   *prompt.Prompter

	mu          sync.Mutex
	notes       []note.Note
	wasAuth     bool
	loggingOut  bool
	notice      string
	unsubscribe func()
}

func newShellApp(app *client.App, r *view.Renderer, p *prompt.Prompter) *shellApp {
	a := &shellApp{
		app:     app,
		r:       r,
		p:       p,
		wasAuth: app.Session().IsAuthenticated(),
	}
	a.unsubscribe = app.Session().Subscribe(a.onSession)
	return a
}

func (a *shellApp) close() {
	a.unsubscribe()
}

func (a *shellApp) onSession(s session.Session) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if s.IsAuthenticated() {
		a.wasAuth = true
		return
	}

	if a.wasAuth && !a.loggingOut {
		a.notice = noticeSessionEnded
	}
	a.wasAuth = false
	a.notes = nil
}

func (a *shellApp) loggedIn() bool {
	return a.app.Session().IsAuthenticated()
}

func (a *shellApp) status() string {
	s := a.app.Session().Session()
	if !s.IsAuthenticated() {
		return "guest"
	}
	return s.User.Username
}

func (a *shellApp) takeNotice() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	notice := a.notice
	a.notice = ""
	return notice
}

func (a *shellApp) register(ctx context.Context) error {
	username, err := a.p.Line("Username: ")
	if err != nil {
		return err
	}
	email, err := a.p.Line("Email: ")
	if err != nil {
		return err
	}
	password, err := a.p.Secret("Password: ")
	if err != nil {
		return err
	}

	u, err := a.app.Session().Register(ctx, username, email, password)
	if err != nil {
		return err
	}

	a.r.Success("Учетная запись создана, вход выполнен: %s", u.Username)
	return a.list(ctx)
}

func (a *shellApp) login(ctx context.Context) error {
	username, err := a.p.Line("Username: ")
	if err != nil {
		return err
	}
	password, err := a.p.Secret("Password: ")
	if err != nil {
		return err
	}

	u, err := a.app.Session().Login(ctx, username, password)
	if err != nil {
		return err
	}

	a.r.Success("Вход выполнен: %s", u.Username)
	return a.list(ctx)
}

func (a *shellApp) logout(ctx context.Context) error {
	a.mu.Lock()
	a.loggingOut = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.loggingOut = false
		a.mu.Unlock()
	}()

	if err := a.app.Session().Logout(ctx); err != nil {
		return err
	}

	a.r.Success("Выход выполнен")
	return nil
}

func (a *shellApp) whoami(_ context.Context) error {
	s := a.app.Session().Session()
	a.r.Println("Пользователь:", s.User.Username)
	a.r.Println("Email:", s.User.Email)
	return nil
}

func (a *shellApp) list(ctx context.Context) error {
	notes, err := a.app.Notes().List(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.notes = notes
	a.mu.Unlock()

	return a.r.Notes(notes, view.FormatSimple)
}

func (a *shellApp) show(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}

	n, ok := a.cached(id)
	if !ok {
		notes, err := a.app.Notes().List(ctx)
		if err != nil {
			return err
		}
		a.mu.Lock()
		a.notes = notes
		a.mu.Unlock()

		if n, ok = note.Find(notes, id); !ok {
			return note.NewNotFound("Note not found")
		}
	}

	a.r.Note(n)
	if n.IsPublic {
		a.r.Println("Ссылка:", a.app.Notes().ShareLink(n.ID))
	}
	return nil
}

func (a *shellApp) create(ctx context.Context) error {
	title, err := a.p.Line("Title: ")
	if err != nil {
		return err
	}
	content, err := a.p.Multiline("Content")
	if err != nil {
		return err
	}

	n, err := a.app.Notes().Create(ctx, title, content)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.notes = note.Prepend(a.notes, n)
	a.mu.Unlock()

	a.r.Success("Заметка #%d создана", n.ID)
	return nil
}

func (a *shellApp) edit(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}

	current, known := a.cached(id)
	if known {
		a.r.Println("Текущий заголовок:", current.Title)
	}

	title, err := a.p.Line("Title: ")
	if err != nil {
		return err
	}
	content, err := a.p.Multiline("Content")
	if err != nil {
		return err
	}

	n, err := a.app.Notes().Update(ctx, id, title, content)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.notes = note.Replace(a.notes, n)
	a.mu.Unlock()

	a.r.Success("Заметка #%d обновлена", n.ID)
	return nil
}

func (a *shellApp) remove(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}

	ok, err := a.p.Confirm("Are you sure you want to delete this note?")
	if err != nil {
		return err
	}
	if !ok {
		a.r.Println("Удаление отменено")
		return nil
	}

	if err := a.app.Notes().Delete(ctx, id); err != nil {
		return err
	}

	a.mu.Lock()
	a.notes = note.Remove(a.notes, id)
	a.mu.Unlock()

	a.r.Success("Заметка #%d удалена", id)
	return nil
}

func (a *shellApp) share(ctx context.Context, args []string, isPublic bool) error {
	id, err := argID(args)
	if err != nil {
		return err
	}

	res, err := a.app.Notes().SetVisibility(ctx, id, isPublic)
	if err != nil {
		return err
	}

	a.mu.Lock()
	if res.Note != nil {
		a.notes = note.Replace(a.notes, *res.Note)
	} else if n, ok := note.Find(a.notes, id); ok {
		n.IsPublic = isPublic
		a.notes = note.Replace(a.notes, n)
	}
	a.mu.Unlock()

	if isPublic {
		a.r.Success("Заметка #%d опубликована", id)
		a.r.Println("Ссылка:", res.ShareLink)
		return nil
	}

	a.r.Success("Заметка #%d теперь приватная", id)
	return nil
}

func (a *shellApp) publicList(ctx context.Context) error {
	notes, err := a.app.Public().ListPublic(ctx)
	if err != nil {
		return err
	}
	return a.r.PublicNotes(notes, view.FormatSimple)
}

func (a *shellApp) publicGet(ctx context.Context, args []string) error {
	id, err := argID(args)
	if err != nil {
		return err
	}

	n, err := a.app.Public().FetchShared(ctx, id)
	if err != nil {
		return err
	}

	a.r.SharedNote(n)
	return nil
}

func (a *shellApp) cached(id int) (note.Note, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return note.Find(a.notes, id)
}

func argID(args []string) (int, error) {
	if len(args) == 0 {
		return 0, errors.New("укажите id заметки")
	}
	id, err := types.ParseID(args[0])
	if err != nil {
		return 0, fmt.Errorf("ошибка разбора аргумента: %w", err)
	}
	return id, nil
}
