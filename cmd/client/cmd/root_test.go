package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/apitest"
	"notekeeper/internal/app/client/config"
	"notekeeper/internal/domain/note"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCLI_EndToEnd(t *testing.T) {
	color.NoColor = true

	api := apitest.New(t)
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("API_BASE_URL", api.URL)
	t.Setenv("APP_ORIGIN", "https://notes.example.com")
	t.Setenv("CREDENTIAL_STORE", config.StoreFile)
	t.Setenv("LOG_LEVEL", "error")
	cfgFile = ""
	serverURL = ""

	_, err := execute(t, "", "note", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "требуется вход")

	out, err := execute(t, "pw\n", "auth", "register", "-u", "ana", "-e", "ana@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "вход выполнен: ana")

	out, err = execute(t, "", "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "ana@example.com")

	_, err = execute(t, "", "note", "create", "-t", "Groceries", "-c", "milk, eggs")
	require.NoError(t, err)

	_, err = execute(t, "", "note", "create", "-t", " ", "-c", "x")
	require.ErrorIs(t, err, note.ErrValidation)

	out, err = execute(t, "", "note", "list", "-f", "json")
	require.NoError(t, err)

	var listed []note.Note
	require.NoError(t, json.Unmarshal([]byte(out), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Groceries", listed[0].Title)
	require.Equal(t, 1, listed[0].ID)

	out, err = execute(t, "", "note", "share", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "https://notes.example.com/shared/1")

	out, err = execute(t, "", "public", "get", "https://notes.example.com/shared/1")
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "by ana")

	out, err = execute(t, "n\n", "note", "delete", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Удаление отменено")

	_, err = execute(t, "", "note", "delete", "1", "--yes")
	require.NoError(t, err)

	_, err = execute(t, "", "public", "get", "1")
	require.ErrorIs(t, err, note.ErrNotFound)

	_, err = execute(t, "", "auth", "logout")
	require.NoError(t, err)

	out, err = execute(t, "", "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Вход не выполнен")
}
