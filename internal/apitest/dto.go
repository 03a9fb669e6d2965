package apitest

import (
	"notekeeper/internal/domain/note"
	"notekeeper/internal/domain/user"
)

type registerInput struct {
	Body user.RegisterRequest
}

type loginInput struct {
	Body user.LoginRequest
}

type loginOutput struct {
	Body user.LoginResponse
}

type userOutput struct {
	Body user.User
}

type noteIDInput struct {
	ID int `path:"id" example:"1" doc:"ID заметки"`
}

type createNoteInput struct {
	Body note.CreateRequest
}

type updateNoteInput struct {
	ID   int `path:"id" example:"1" doc:"ID заметки"`
	Body note.UpdateRequest
}

type shareInput struct {
	ID   int `path:"id" example:"1" doc:"ID заметки"`
	Body note.ShareRequest
}

type noteOutput struct {
	Body note.Note
}

type notesOutput struct {
	Body []note.Note
}

type shareOutput struct {
	Body note.ShareResponse
}

type messageOutput struct {
	Body messageResponse
}

type messageResponse struct {
	Message string `json:"message"`
}

type publicNoteOutput struct {
	Body note.PublicNote
}

type publicNotesOutput struct {
	Body []note.PublicNote
}
