// cmd/client/cmd/auth/register.go
package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var (
	registerUsername string
	registerEmail    string
	registerPassword string
)

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Зарегистрироваться",
	Long: `Создает учетную запись и сразу выполняет вход.

Если учетная запись создана, а вход не удался, повторите auth login.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		p := types.Prompter(cmd)

		username := registerUsername
		if username == "" {
			if username, err = p.Line("Username: "); err != nil {
				return err
			}
		}

		email := registerEmail
		if email == "" {
			if email, err = p.Line("Email: "); err != nil {
				return err
			}
		}

		password := registerPassword
		if password == "" {
			if password, err = p.Secret("Password: "); err != nil {
				return err
			}
		}

		u, err := app.Session().Register(cmd.Context(), username, email, password)
		if err != nil {
			return fmt.Errorf("ошибка регистрации: %w", err)
		}

		types.Renderer(cmd).Success("Учетная запись создана, вход выполнен: %s", u.Username)
		return nil
	},
}

func init() {
	RegisterCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "имя пользователя")
	RegisterCmd.Flags().StringVarP(&registerEmail, "email", "e", "", "email")
	RegisterCmd.Flags().StringVar(&registerPassword, "password", "", "пароль (лучше вводить интерактивно)")
}
