package auth

import (
	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/app/client/view"
)

var WhoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Показать текущего пользователя",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		r := types.Renderer(cmd)
		s := app.Session().Session()
		if !s.IsAuthenticated() {
			r.Println("Вход не выполнен")
			return nil
		}

		r.Println("Пользователь:", s.User.Username)
		r.Println("Email:", s.User.Email)
		if !s.Credential.ExpiresAt.IsZero() {
			r.Println("Токен действует до:", view.FormatDate(s.Credential.ExpiresAt))
		}
		return nil
	},
}
