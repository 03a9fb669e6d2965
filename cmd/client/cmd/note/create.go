// cmd/client/cmd/note/create.go
package note

import (
	"fmt"

	"github.com/spf13/cobra"

	"notekeeper/cmd/client/cmd/types"
)

var (
	createTitle   string
	createContent string
)

var CreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Создать заметку",
	Long: `Создает приватную заметку. Заголовок и текст обязательны,
пробелы по краям отбрасываются.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := types.AppFromContext(cmd.Context())
		if err != nil {
			return err
		}
		if err := types.RequireSession(app); err != nil {
			return err
		}

		title, content, err := readDraft(cmd, createTitle, createContent)
		if err != nil {
			return err
		}

		n, err := app.Notes().Create(cmd.Context(), title, content)
		if err != nil {
			return fmt.Errorf("ошибка создания заметки: %w", err)
		}

		types.Renderer(cmd).Success("Заметка #%d создана", n.ID)
		return nil
	},
}

// readDraft спрашивает недостающие поля
func readDraft(cmd *cobra.Command, title, content string) (string, string, error) {
	p := types.Prompter(cmd)

	var err error
	if title == "" {
		if title, err = p.Line("Title: "); err != nil {
			return "", "", err
		}
	}
	if content == "" {
		if content, err = p.Multiline("Content"); err != nil {
			return "", "", err
		}
	}

	return title, content, nil
}

func init() {
	CreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "заголовок")
	CreateCmd.Flags().StringVarP(&createContent, "content", "c", "", "текст")
}
