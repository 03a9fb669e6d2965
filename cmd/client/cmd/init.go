// cmd/client/cmd/init.go
package cmd

import (
	"notekeeper/cmd/client/cmd/auth"
	"notekeeper/cmd/client/cmd/note"
	"notekeeper/cmd/client/cmd/public"
	"notekeeper/cmd/client/cmd/shell"
)

func init() {
	// Добавляем команды сессии
	rootCmd.AddCommand(auth.AuthCmd)
	auth.AuthCmd.AddCommand(auth.RegisterCmd)
	auth.AuthCmd.AddCommand(auth.LoginCmd)
	auth.AuthCmd.AddCommand(auth.LogoutCmd)
	auth.AuthCmd.AddCommand(auth.WhoamiCmd)

	// Добавляем команды работы с заметками
	rootCmd.AddCommand(note.NoteCmd)
	note.NoteCmd.AddCommand(note.ListCmd)
	note.NoteCmd.AddCommand(note.CreateCmd)
	note.NoteCmd.AddCommand(note.UpdateCmd)
	note.NoteCmd.AddCommand(note.DeleteCmd)
	note.NoteCmd.AddCommand(note.ShareCmd)
	note.NoteCmd.AddCommand(note.UnshareCmd)

	rootCmd.AddCommand(public.PublicCmd)
	public.PublicCmd.AddCommand(public.ListCmd)
	public.PublicCmd.AddCommand(public.GetCmd)

	rootCmd.AddCommand(shell.ShellCmd)
}
