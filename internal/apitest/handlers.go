package apitest

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/domain/note"
	"notekeeper/internal/domain/user"
)

// ==================== Auth ====================

type authHandler struct {
	s          *Server
	middleware huma.Middlewares
}

func newAuthHandler(s *Server, mws huma.Middlewares) *authHandler {
	return &authHandler{s: s, middleware: mws}
}

func (h *authHandler) SetupRoutes(api huma.API) {
	huma.Register(api, h.registerOp(), h.register)
	huma.Register(api, h.loginOp(), h.login)
}

func (h *authHandler) register(_ context.Context, input *registerInput) (*userOutput, error) {
	req := input.Body
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, huma.Error422UnprocessableEntity("username, email and password are required")
	}

	h.s.mu.Lock()
	u, err := h.s.createAccount(req.Username, req.Email, req.Password)
	h.s.mu.Unlock()

	switch {
	case errors.Is(err, errUsernameTaken):
		return nil, huma.Error400BadRequest("Username already registered")
	case errors.Is(err, errEmailTaken):
		return nil, huma.Error400BadRequest("Email already registered")
	case err != nil:
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &userOutput{Body: u}, nil
}

func (h *authHandler) login(_ context.Context, input *loginInput) (*loginOutput, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	acc, ok := h.s.accounts[input.Body.Username]
	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(input.Body.Password)) != nil {
		return nil, huma.Error401Unauthorized("Incorrect username or password")
	}

	token, err := h.s.signToken(acc.user.ID, h.s.tokenTTL)
	if err != nil {
		return nil, huma.Error500InternalServerError("Internal server error")
	}

	return &loginOutput{
		Body: user.LoginResponse{AccessToken: token, TokenType: "bearer"},
	}, nil
}

// ==================== Session ====================

type sessionHandler struct {
	s          *Server
	middleware huma.Middlewares
}

func newSessionHandler(s *Server, mws huma.Middlewares) *sessionHandler {
	return &sessionHandler{s: s, middleware: mws}
}

func (h *sessionHandler) SetupRoutes(api huma.API) {
	huma.Register(api, h.meOp(), h.me)
}

func (h *sessionHandler) me(ctx context.Context, _ *struct{}) (*userOutput, error) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	h.s.mu.Lock()
	acc, found := h.s.accountByID(userID)
	h.s.mu.Unlock()

	if !found {
		return nil, huma.Error401Unauthorized("Could not validate credentials")
	}
	return &userOutput{Body: acc.user}, nil
}

// ==================== Notes ====================

type noteHandler struct {
	s          *Server
	middleware huma.Middlewares
}

func newNoteHandler(s *Server, mws huma.Middlewares) *noteHandler {
	return &noteHandler{s: s, middleware: mws}
}

func (h *noteHandler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.updateOp(), h.update)
	huma.Register(api, h.deleteOp(), h.delete)
	huma.Register(api, h.shareOp(), h.share)
}

func (h *noteHandler) list(ctx context.Context, _ *struct{}) (*notesOutput, error) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	out := make([]note.Note, 0)
	for _, n := range h.s.sortedNotes() {
		if n.OwnerID == ownerID {
			out = append(out, *n)
		}
	}

	return &notesOutput{Body: out}, nil
}

func (h *noteHandler) create(ctx context.Context, input *createNoteInput) (*noteOutput, error) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}
	if err := checkNoteBody(input.Body.Title, input.Body.Content); err != nil {
		return nil, err
	}

	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	ts := h.s.stamp()
	n := &note.Note{
		ID:        h.s.nextNoteID,
		Title:     input.Body.Title,
		Content:   input.Body.Content,
		CreatedAt: ts,
		UpdatedAt: ts,
		OwnerID:   ownerID,
	}
	h.s.nextNoteID++
	h.s.notes[n.ID] = n

	return &noteOutput{Body: *n}, nil
}

func (h *noteHandler) update(ctx context.Context, input *updateNoteInput) (*noteOutput, error) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}
	if err := checkNoteBody(input.Body.Title, input.Body.Content); err != nil {
		return nil, err
	}

	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	n, found := h.s.ownedNote(input.ID, ownerID)
	if !found {
		return nil, huma.Error404NotFound("Note not found")
	}
	n.Title = input.Body.Title
	n.Content = input.Body.Content
	n.UpdatedAt = h.s.stamp()

	return &noteOutput{Body: *n}, nil
}

func (h *noteHandler) delete(ctx context.Context, input *noteIDInput) (*messageOutput, error) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	n, found := h.s.ownedNote(input.ID, ownerID)
	if !found {
		return nil, huma.Error404NotFound("Note not found")
	}
	delete(h.s.notes, n.ID)

	return &messageOutput{
		Body: messageResponse{Message: "Note deleted successfully"},
	}, nil
}

func (h *noteHandler) share(ctx context.Context, input *shareInput) (*shareOutput, error) {
	ownerID, ok := currentUserID(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Not authenticated")
	}

	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	n, found := h.s.ownedNote(input.ID, ownerID)
	if !found {
		return nil, huma.Error404NotFound("Note not found")
	}
	n.IsPublic = input.Body.IsPublic

	if !n.IsPublic {
		return &shareOutput{
			Body: note.ShareResponse{Message: "Note is now private"},
		}, nil
	}
	return &shareOutput{
		Body: note.ShareResponse{
			Message:  "Note is now public",
			ShareURL: note.SharePath(n.ID),
		},
	}, nil
}

// ==================== Public ====================

type publicHandler struct {
	s          *Server
	middleware huma.Middlewares
}

func newPublicHandler(s *Server, mws huma.Middlewares) *publicHandler {
	return &publicHandler{s: s, middleware: mws}
}

func (h *publicHandler) SetupRoutes(api huma.API) {
	huma.Register(api, h.listOp(), h.list)
	huma.Register(api, h.sharedOp(), h.shared)
}

func (h *publicHandler) list(_ context.Context, _ *struct{}) (*publicNotesOutput, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	out := make([]note.PublicNote, 0)
	for _, n := range h.s.sortedNotes() {
		if n.IsPublic {
			out = append(out, h.s.publicView(n))
		}
	}

	return &publicNotesOutput{Body: out}, nil
}

func (h *publicHandler) shared(_ context.Context, input *noteIDInput) (*publicNoteOutput, error) {
	h.s.mu.Lock()
	defer h.s.mu.Unlock()

	n, found := h.s.notes[input.ID]
	if !found || !n.IsPublic {
		return nil, huma.Error404NotFound("Note not found or not public")
	}

	return &publicNoteOutput{Body: h.s.publicView(n)}, nil
}

// ==================== Helpers ====================

func checkNoteBody(title, content string) error {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return huma.Error422UnprocessableEntity("title and content must not be empty")
	}
	return nil
}

// ownedNote вызывается под s.mu. Чужая заметка неотличима от отсутствующей.
func (s *Server) ownedNote(id, ownerID int) (*note.Note, bool) {
	n, found := s.notes[id]
	if !found || n.OwnerID != ownerID {
		return nil, false
	}
	return n, true
}

// sortedNotes вызывается под s.mu, новые заметки первыми
func (s *Server) sortedNotes() []*note.Note {
	out := make([]*note.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *Server) publicView(n *note.Note) note.PublicNote {
	view := note.PublicNote{Note: *n}
	if acc, ok := s.accountByID(n.OwnerID); ok {
		view.OwnerUsername = acc.user.Username
	}
	return view
}
