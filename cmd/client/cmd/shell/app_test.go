package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/cmd/client/cmd/prompt"
	"notekeeper/internal/apitest"
	"notekeeper/internal/app/client"
	"notekeeper/internal/app/client/config"
	"notekeeper/internal/app/client/view"
	"notekeeper/internal/domain/note"
	"notekeeper/internal/utils/logger"
)

func newTestApp(t *testing.T) (*apitest.Server, *client.App) {
	t.Helper()
	color.NoColor = true

	api := apitest.New(t)
	_, err := api.SeedUser("ana", "ana@example.com", "pw")
	require.NoError(t, err)

	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("API_BASE_URL", api.URL)
	t.Setenv("APP_ORIGIN", "https://notes.example.com")
	t.Setenv("CREDENTIAL_STORE", config.StoreMemory)

	cfg, err := config.Load(viper.New())
	require.NoError(t, err)

	app, err := client.New(cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Shutdown() })

	app.Initialize(context.Background())
	return api, app
}

func runShell(app *client.App, input string) string {
	var out bytes.Buffer
	p := prompt.New(strings.NewReader(input), &out)
	r := view.New(&out)

	a := newShellApp(app, r, p)
	defer a.close()

	runREPL(context.Background(), a, p.Scanner(), &out, r.Error)
	return out.String()
}

func TestShell_GroceriesSession(t *testing.T) {
	api, app := newTestApp(t)

	input := strings.Join([]string{
		"login", "ana", "pw",
		"new", "Groceries", "milk, eggs", ".",
		"share 1",
		"open 1",
		"delete 1", "y",
		"open 1",
		"exit",
	}, "\n") + "\n"

	out := runShell(app, input)

	assert.Contains(t, out, "Вход выполнен: ana")
	assert.Contains(t, out, "Заметка #1 создана")
	assert.Contains(t, out, "https://notes.example.com/shared/1")
	assert.Contains(t, out, "by ana")
	assert.Contains(t, out, "Заметка #1 удалена")
	assert.Contains(t, out, note.MsgNotFoundOrPrivate)

	_, exists := api.Note(1)
	assert.False(t, exists)
}

func TestShell_DeleteCancelled(t *testing.T) {
	api, app := newTestApp(t)
	_, err := app.Session().Login(context.Background(), "ana", "pw")
	require.NoError(t, err)
	_, err = app.Notes().Create(context.Background(), "Groceries", "milk")
	require.NoError(t, err)

	out := runShell(app, "delete 1\nn\nexit\n")

	assert.Contains(t, out, "Удаление отменено")
	_, exists := api.Note(1)
	assert.True(t, exists)
}

func TestShell_ForcedLogoutNotice(t *testing.T) {
	api, app := newTestApp(t)
	_, err := app.Session().Login(context.Background(), "ana", "pw")
	require.NoError(t, err)

	api.RevokeAll()
	out := runShell(app, "list\nexit\n")

	assert.Contains(t, out, noticeSessionEnded)
	assert.Contains(t, out, "notes [guest]> ")
	assert.False(t, app.Session().IsAuthenticated())
}

func TestShell_ExplicitLogoutHasNoNotice(t *testing.T) {
	_, app := newTestApp(t)
	_, err := app.Session().Login(context.Background(), "ana", "pw")
	require.NoError(t, err)

	out := runShell(app, "logout\nhelp\nexit\n")

	assert.Contains(t, out, "Выход выполнен")
	assert.NotContains(t, out, noticeSessionEnded)
	assert.Contains(t, out, helpLoggedOut)
}

func TestShell_LocalListMerge(t *testing.T) {
	_, app := newTestApp(t)
	_, err := app.Session().Login(context.Background(), "ana", "pw")
	require.NoError(t, err)

	var out bytes.Buffer
	p := prompt.New(strings.NewReader("A\n1\n.\nB\n2\n.\nB2\n22\n.\n"), &out)
	a := newShellApp(app, view.New(&out), p)
	defer a.close()

	ctx := context.Background()
	require.NoError(t, a.list(ctx))
	require.NoError(t, a.create(ctx))
	require.NoError(t, a.create(ctx))
	require.NoError(t, a.edit(ctx, []string{"2"}))

	a.mu.Lock()
	defer a.mu.Unlock()
	require.Len(t, a.notes, 2)
	assert.Equal(t, "B2", a.notes[0].Title)
	assert.Equal(t, "A", a.notes[1].Title)
}
