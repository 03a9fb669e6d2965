package public

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var GetCmd = &cobra.Command{
	Use:   "get <id|link>",
	Short: "Открыть заметку по id или публичной ссылке",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}

		id, err := types.ParseID(idFromLink(args[0]))
		if err != nil {
			return err
		}

		n, err := app.Public().FetchShared(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("ошибка открытия заметки: %w", err)
		}

		types.Renderer(cmd).SharedNote(n)
		return nil
	},
}

// idFromLink принимает и голый id, и ссылку вида <origin>/shared/<id>
func idFromLink(arg string) string {
	arg = strings.TrimRight(arg, "/")
	if i := strings.LastIndex(arg, "/shared/"); i >= 0 {
		return arg[i+len("/shared/"):]
	}
	return arg
}
