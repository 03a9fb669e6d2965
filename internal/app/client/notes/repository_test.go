package notes

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/apitest"
	"notekeeper/internal/app/client/transport"
	"notekeeper/internal/domain/note"
	"notekeeper/internal/utils/logger"
)

const origin = "http://localhost:5173"

type MockTransport struct {
	mock.Mock
}

func (m *MockTransport) Do(ctx context.Context, method, path string, body, result any, opts ...transport.Option) error {
	args := m.Called(ctx, method, path, body)
	if raw, ok := args.Get(0).(string); ok && raw != "" && result != nil {
		if err := json.Unmarshal([]byte(raw), result); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func newRepo(t *testing.T, users ...string) (*apitest.Server, map[string]*Repository) {
	t.Helper()

	api := apitest.New(t)
	repos := make(map[string]*Repository, len(users))
	for _, name := range users {
		_, err := api.SeedUser(name, name+"@example.com", "pw")
		require.NoError(t, err)

		token, err := api.IssueToken(name, time.Hour)
		require.NoError(t, err)

		tr := transport.New(api.URL, 5*time.Second, logger.Discard())
		tr.SetToken(token)
		repos[name] = NewRepository(tr, origin, logger.Discard())
	}

	return api, repos
}

func TestRepository_CreateListUpdateDelete(t *testing.T) {
	_, repos := newRepo(t, "ana")
	repo := repos["ana"]
	ctx := context.Background()

	empty, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NotNil(t, empty)

	created, err := repo.Create(ctx, "  Groceries ", " milk ")
	require.NoError(t, err)
	assert.Equal(t, "Groceries", created.Title)
	assert.Equal(t, "milk", created.Content)
	assert.False(t, created.IsPublic)
	assert.False(t, created.WasEdited())

	second, err := repo.Create(ctx, "Todo", "call mom")
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, created.ID, list[1].ID)

	updated, err := repo.Update(ctx, created.ID, "Groceries", "milk, eggs")
	require.NoError(t, err)
	assert.Equal(t, "milk, eggs", updated.Content)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
	assert.True(t, updated.WasEdited())

	require.NoError(t, repo.Delete(ctx, created.ID))

	err = repo.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, note.ErrNotFound)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRepository_Validation(t *testing.T) {
	tr := new(MockTransport)
	repo := NewRepository(tr, origin, logger.Discard())
	ctx := context.Background()

	tests := []struct {
		name    string
		title   string
		content string
	}{
		{name: "empty title", title: "", content: "x"},
		{name: "blank title", title: "  ", content: "x"},
		{name: "empty content", title: "x", content: ""},
		{name: "blank content", title: "x", content: "\n\t"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := repo.Create(ctx, tt.title, tt.content)
			assert.ErrorIs(t, err, note.ErrValidation)

			_, err = repo.Update(ctx, 1, tt.title, tt.content)
			assert.ErrorIs(t, err, note.ErrValidation)
		})
	}

	tr.AssertNotCalled(t, "Do", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRepository_OwnerScoping(t *testing.T) {
	_, repos := newRepo(t, "ana", "bob")
	ctx := context.Background()

	n, err := repos["ana"].Create(ctx, "Groceries", "milk")
	require.NoError(t, err)

	_, err = repos["bob"].Update(ctx, n.ID, "mine", "now")
	assert.ErrorIs(t, err, note.ErrNotFound)

	err = repos["bob"].Delete(ctx, n.ID)
	assert.ErrorIs(t, err, note.ErrNotFound)

	_, err = repos["bob"].SetVisibility(ctx, n.ID, true)
	assert.ErrorIs(t, err, note.ErrNotFound)

	bobList, err := repos["bob"].List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bobList)
}

func TestRepository_SetVisibility(t *testing.T) {
	api, repos := newRepo(t, "ana")
	repo := repos["ana"]
	ctx := context.Background()

	n, err := repo.Create(ctx, "Groceries", "milk")
	require.NoError(t, err)

	res, err := repo.SetVisibility(ctx, n.ID, true)
	require.NoError(t, err)
	assert.True(t, res.IsPublic)
	assert.Equal(t, origin+"/shared/"+strconv.Itoa(n.ID), res.ShareLink)
	assert.Nil(t, res.Note)

	stored, ok := api.Note(n.ID)
	require.True(t, ok)
	assert.True(t, stored.IsPublic)

	res, err = repo.SetVisibility(ctx, n.ID, false)
	require.NoError(t, err)
	assert.False(t, res.IsPublic)
	assert.Empty(t, res.ShareLink)

	stored, _ = api.Note(n.ID)
	assert.False(t, stored.IsPublic)
}

func TestRepository_SetVisibility_ServerReturnsNote(t *testing.T) {
	tr := new(MockTransport)
	repo := NewRepository(tr, origin+"/", logger.Discard())

	body := `{"id": 5, "title": "t", "content": "c", "is_public": true, "owner_id": 1, "share_url": "/s/5"}`
	tr.On("Do", mock.Anything, http.MethodPost, "/notes/5/share", note.ShareRequest{IsPublic: true}).Return(body, nil)

	res, err := repo.SetVisibility(context.Background(), 5, true)
	require.NoError(t, err)

	require.NotNil(t, res.Note)
	assert.Equal(t, 5, res.Note.ID)
	assert.True(t, res.Note.IsPublic)
	assert.Equal(t, "http://localhost:5173/shared/5", res.ShareLink)
	tr.AssertExpectations(t)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantIs   error
		wantText string
	}{
		{
			name:     "not found",
			err:      &transport.StatusError{StatusCode: 404, Message: "Note not found"},
			wantIs:   note.ErrNotFound,
			wantText: "Note not found",
		},
		{
			name:     "forbidden is not found",
			err:      &transport.StatusError{StatusCode: 403},
			wantIs:   note.ErrNotFound,
			wantText: "Note not found",
		},
		{
			name:     "unprocessable",
			err:      &transport.StatusError{StatusCode: 422, Message: "field required"},
			wantIs:   note.ErrValidation,
			wantText: "field required",
		},
		{
			name:   "unauthorized passes through",
			err:    &transport.StatusError{StatusCode: 401},
			wantIs: transport.ErrUnauthorized,
		},
		{
			name:   "server error passes through",
			err:    &transport.StatusError{StatusCode: 500},
			wantIs: transport.ErrTransport,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapError(tt.err, "op")
			assert.ErrorIs(t, err, tt.wantIs)
			if tt.wantText != "" {
				assert.Equal(t, tt.wantText, err.Error())
			}
		})
	}
}
