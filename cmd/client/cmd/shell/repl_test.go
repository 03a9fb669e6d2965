package shell

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	logged bool
	notice string
	calls  []string
	fail   error
}

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return s.fail
}

func (s *stubExec) loggedIn() bool { return s.logged }
func (s *stubExec) status() string {
	if s.logged {
		return "ana"
	}
	return "guest"
}
func (s *stubExec) takeNotice() string {
	n := s.notice
	s.notice = ""
	return n
}
func (s *stubExec) register(context.Context) error { return s.record("register") }
func (s *stubExec) login(context.Context) error {
	s.logged = true
	return s.record("login")
}
func (s *stubExec) logout(context.Context) error {
	s.logged = false
	return s.record("logout")
}
func (s *stubExec) whoami(context.Context) error           { return s.record("whoami") }
func (s *stubExec) list(context.Context) error             { return s.record("list") }
func (s *stubExec) show(context.Context, []string) error   { return s.record("show") }
func (s *stubExec) create(context.Context) error           { return s.record("create") }
func (s *stubExec) edit(context.Context, []string) error   { return s.record("edit") }
func (s *stubExec) remove(context.Context, []string) error { return s.record("remove") }
func (s *stubExec) share(_ context.Context, _ []string, isPublic bool) error {
	if isPublic {
		return s.record("share")
	}
	return s.record("unshare")
}
func (s *stubExec) publicList(context.Context) error           { return s.record("public") }
func (s *stubExec) publicGet(context.Context, []string) error { return s.record("open") }

func run(t *testing.T, e execIface, input string) (string, []error) {
	t.Helper()

	var out bytes.Buffer
	var errs []error
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), e, scanner, &out, func(err error) { errs = append(errs, err) })
	return out.String(), errs
}

func TestREPL_GuestCommands(t *testing.T) {
	e := &stubExec{}
	out, errs := run(t, e, "help\npublic\nopen 3\nlist\nexit\n")

	assert.Empty(t, errs)
	assert.Equal(t, []string{"public", "open"}, e.calls)
	assert.Contains(t, out, helpLoggedOut)
	assert.Contains(t, out, "notes [guest]> ")
	assert.Contains(t, out, "нужен вход: list")
	assert.Contains(t, out, "Bye!")
}

func TestREPL_AuthenticatedCommands(t *testing.T) {
	e := &stubExec{}
	input := "login\nhelp\nl\nshow 1\nnew\nedit 1\ndelete 1\nshare 1\nunshare 1\nwhoami\nbogus\nlogout\n"
	out, errs := run(t, e, input)

	assert.Empty(t, errs)
	assert.Equal(t, []string{
		"login", "list", "show", "create", "edit", "remove", "share", "unshare", "whoami", "logout",
	}, e.calls)
	assert.Contains(t, out, helpLoggedIn)
	assert.Contains(t, out, "notes [ana]> ")
	assert.Contains(t, out, "Неизвестная команда: bogus")
}

func TestREPL_ErrorsDoNotStopLoop(t *testing.T) {
	e := &stubExec{fail: errors.New("boom")}
	_, errs := run(t, e, "public\npublic\n")

	assert.Len(t, errs, 2)
	assert.Equal(t, []string{"public", "public"}, e.calls)
}

func TestREPL_PrintsNotice(t *testing.T) {
	e := &stubExec{notice: noticeSessionEnded}
	out, _ := run(t, e, "\n")

	assert.Equal(t, 1, strings.Count(out, noticeSessionEnded))
}

func TestREPL_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := &stubExec{}
	var out bytes.Buffer
	runREPL(ctx, e, bufio.NewScanner(strings.NewReader("public\n")), &out, func(error) {})

	assert.Empty(t, e.calls)
}
