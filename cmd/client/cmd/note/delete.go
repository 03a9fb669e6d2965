// cmd/client/cmd/note/delete.go
package note

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Удалить заметку",
	Long: `Удаляет заметку безвозвратно. Без флага --yes спрашивает подтверждение.
Публичная ссылка на удаленную заметку перестает работать.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := types.RequireSession(app); err != nil {
			return err
		}

		id, err := types.ParseID(args[0])
		if err != nil {
			return err
		}

		r := types.Renderer(cmd)
		if !deleteYes {
			ok, err := types.Prompter(cmd).Confirm("Are you sure you want to delete this note?")
			if err != nil {
				return err
			}
			if !ok {
				r.Println("Удаление отменено")
				return nil
			}
		}

		if err := app.Notes().Delete(cmd.Context(), id); err != nil {
			return fmt.Errorf("ошибка удаления заметки: %w", err)
		}

		r.Success("Заметка #%d удалена", id)
		return nil
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не спрашивать подтверждение")
}
