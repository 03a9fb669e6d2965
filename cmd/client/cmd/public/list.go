package public

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
	"notekeeper/internal/app/client/view"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Все публичные заметки",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		format, err := view.ParseFormat(listFormat)
		if err != nil {
			return err
		}

		notes, err := app.Public().ListPublic(cmd.Context())
		if err != nil {
			return fmt.Errorf("ошибка получения публичных заметок: %w", err)
		}

		return types.Renderer(cmd).PublicNotes(notes, format)
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", view.FormatSimple, "формат вывода (simple, table, json)")
}
