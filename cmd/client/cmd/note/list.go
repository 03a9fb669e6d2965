// cmd/client/cmd/note/list.go
package note

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/app/client/view"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список своих заметок",
	Long: `Заметки выводятся в порядке сервера.

Дата изменения показывается, только если заметку правили после создания.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := types.RequireSession(app); err != nil {
			return err
		}

		format, err := view.ParseFormat(listFormat)
		if err != nil {
			return err
		}

		notes, err := app.Notes().List(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения списка заметок: %w", err)
		}

		return types.Renderer(cmd).Notes(notes, format)
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", view.FormatSimple, "формат вывода (simple, table, json)")
}
