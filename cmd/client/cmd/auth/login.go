// cmd/client/cmd/auth/login.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var (
	loginUsername string
	loginPassword string
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Войти в систему",
	Long: `Аутентификация на сервере заметок.

После входа токен сохраняется локально и восстанавливается при следующем запуске,
пока не истечет его срок или сервер его не отклонит.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		p := types.Prompter(cmd)

		username := loginUsername
		if username == "" {
			if username, err = p.Line("Username: "); err != nil {
				return err
			}
		}

		password := loginPassword
		if password == "" {
			if password, err = p.Secret("Password: "); err != nil {
				return err
			}
		}

		u, err := app.Session().Login(cmd.Context(), username, password)
		if err != nil {
			return fmt.Errorf("ошибка входа: %w", err)
		}

		types.Renderer(cmd).Success("Вход выполнен: %s", u.Username)
		return nil
	},
}

func init() {
	LoginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "имя пользователя")
	LoginCmd.Flags().StringVar(&loginPassword, "password", "", "пароль (лучше вводить интерактивно)")
}
