package note

import (
	"github.com/spf13/cobra"
)

// NoteCmd - родительская команда для операций владельца над заметками
var NoteCmd = &cobra.Command{
	Use:   "note",
	Short: "Управление заметками",
	Long:  `Создание, просмотр, изменение, удаление и публикация своих заметок.`,
}
