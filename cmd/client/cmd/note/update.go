// cmd/client/cmd/note/update.go
package note

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var (
	updateTitle   string
	updateContent string
)

var UpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Изменить заметку",
	Args:  cobra.ExactArgs(1),
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

		title, content, err := readDraft(cmd, updateTitle, updateContent)
		if err != nil {
			return err
		}

		n, err := app.Notes().Update(cmd.Context(), id, title, content)
		if err != nil {
			return fmt.Errorf("ошибка обновления заметки: %w", err)
		}

		types.Renderer(cmd).Success("Заметка #%d обновлена", n.ID)
		return nil
	},
}

func init() {
	UpdateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "новый заголовок")
	UpdateCmd.Flags().StringVarP(&updateContent, "content", "c", "", "новый текст")
}
