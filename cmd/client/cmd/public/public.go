package public

import (
	"github.com/spf13/cobra"
)

// PublicCmd - чтение публичных заметок, вход не нужен
var PublicCmd = &cobra.Command{
	Use:   "public",
	Short: "Публичные заметки",
}
