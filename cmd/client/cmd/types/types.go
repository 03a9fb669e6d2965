package types

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/prompt"
	"notekeeper/internal/app/client"
	"notekeeper/internal/app/client/view"
)

type contextKey string

// ClientAppKey - ключ, под которым root кладет *client.App в контекст команды
const ClientAppKey contextKey = "app"

// AppFromContext достает приложение, подготовленное в PersistentPreRunE
func AppFromContext(ctx context.Context) (*client.App, error) {
	if ctx == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	app, ok := ctx.Value(ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("приложение не инициализировано")
	}
	return app, nil
}

// Renderer печатает в stdout команды
func Renderer(cmd *cobra.Command) *view.Renderer {
	return view.New(cmd.OutOrStdout())
}

// Prompter читает stdin команды
func Prompter(cmd *cobra.Command) *prompt.Prompter {
	return prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
}

// RequireSession возвращает ошибку, если пользователь не вошел
func RequireSession(app *client.App) error {
	if !app.Session().IsAuthenticated() {
		return fmt.Errorf("требуется вход: notekeeper auth login")
	}
	return nil
}

// ParseID разбирает положительный id заметки
func ParseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("некорректный id заметки: %q", raw)
	}
	return id, nil
}
