// cmd/client/cmd/note/share.go
package note

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var ShareCmd = &cobra.Command{
	Use:   "share <id>",
	Short: "Сделать заметку публичной и показать ссылку",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setVisibility(cmd, args[0], true)
	},
}

var UnshareCmd = &cobra.Command{
	Use:   "unshare <id>",
	Short: "Сделать заметку приватной",
	Long:  `Ссылка перестает открываться, но останется той же при повторной публикации.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setVisibility(cmd, args[0], false)
	},
}

func setVisibility(cmd *cobra.Command, rawID string, isPublic bool) error {
	app, err := types.AppFromContext(cmd.Context())
	if err != nil {
		return err
	}
	if err := types.RequireSession(app); err != nil {
		return err
	}

	id, err := types.ParseID(rawID)
	if err != nil {
		return err
	}

	res, err := app.Notes().SetVisibility(cmd.Context(), id, isPublic)
	if err != nil {
		return fmt.Errorf("ошибка изменения видимости: %w", err)
	}

	r := types.Renderer(cmd)
	if res.IsPublic {
		r.Success("Заметка #%d опубликована", id)
		r.Println("Ссылка:", res.ShareLink)
		return nil
	}

	r.Success("Заметка #%d теперь приватная", id)
	return nil
}
