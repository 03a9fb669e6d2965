// cmd/client/cmd/shell/shell.go
package shell

import (
	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var ShellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Интерактивный режим",
	Long: `Интерактивная оболочка с локальным списком заметок.

Если сервер отклонит токен, оболочка сообщит об этом и вернется к приглашению
гостя. При SESSION_REVALIDATE_SECONDS > 0 сессия проверяется периодически.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		r := types.Renderer(cmd)
		p := types.Prompter(cmd)

		a := newShellApp(app, r, p)
		defer a.close()

		app.StartWatch(cmd.Context())

		runREPL(cmd.Context(), a, p.Scanner(), cmd.OutOrStdout(), r.Error)
		return nil
	},
}
