package apitest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/domain/note"
)

func do(t *testing.T, s *Server, method, path, token string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestServer_OwnerScopingAndSharing(t *testing.T) {
	s := New(t)

	_, err := s.SeedUser("ana", "ana@example.com", "pw")
	require.NoError(t, err)
	_, err = s.SeedUser("bob", "bob@example.com", "pw")
	require.NoError(t, err)

	anaToken, err := s.IssueToken("ana", time.Minute)
	require.NoError(t, err)
	bobToken, err := s.IssueToken("bob", time.Minute)
	require.NoError(t, err)

	resp := do(t, s, http.MethodPost, "/notes", anaToken, map[string]string{"title": "t", "content": "c"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created note.Note
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	resp = do(t, s, http.MethodDelete, "/notes/1", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, s, http.MethodGet, "/shared/1", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, s, http.MethodPost, "/notes/1/share", anaToken, note.ShareRequest{IsPublic: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var shared note.ShareResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&shared))
	assert.Equal(t, "/shared/1", shared.ShareURL)

	resp = do(t, s, http.MethodGet, "/shared/1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var public note.PublicNote
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&public))
	assert.Equal(t, "ana", public.OwnerUsername)
}

func TestServer_TokenRules(t *testing.T) {
	s := New(t)

	_, err := s.SeedUser("ana", "ana@example.com", "pw")
	require.NoError(t, err)

	expired, err := s.IssueToken("ana", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/auth/me", expired, nil).StatusCode)

	valid, err := s.IssueToken("ana", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/auth/me", valid, nil).StatusCode)

	s.RevokeAll()
	assert.Equal(t, http.StatusUnauthorized, do(t, s, http.MethodGet, "/auth/me", valid, nil).StatusCode)
}

func TestServer_FailNextAndHits(t *testing.T) {
	s := New(t)

	s.FailNext(http.MethodGet, "/public-notes", http.StatusBadGateway)

	assert.Equal(t, http.StatusBadGateway, do(t, s, http.MethodGet, "/public-notes", "", nil).StatusCode)
	assert.Equal(t, http.StatusOK, do(t, s, http.MethodGet, "/public-notes", "", nil).StatusCode)
	assert.Equal(t, 2, s.Hits(http.MethodGet, "/public-notes"))
}

func TestServer_StampIsStrictlyIncreasing(t *testing.T) {
	s := New(t)

	prev := s.stamp()
	for i := 0; i < 100; i++ {
		next := s.stamp()
		require.True(t, next.After(prev), "%s !> %s", next, prev)
		prev = next
	}
}

func TestServer_ErrorDetail(t *testing.T) {
	s := New(t)

	_, err := s.SeedUser("ana", "ana@example.com", "pw")
	require.NoError(t, err)
	token, err := s.IssueToken("ana", time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		path       string
		token      string
		body       any
		wantStatus int
		wantDetail string
	}{
		{
			name:       "no token",
			method:     http.MethodGet,
			path:       "/notes",
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Not authenticated",
		},
		{
			name:       "garbage token",
			method:     http.MethodGet,
			path:       "/auth/me",
			token:      "garbage",
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Could not validate credentials",
		},
		{
			name:       "wrong password",
			method:     http.MethodPost,
			path:       "/auth/login",
			body:       map[string]string{"username": "ana", "password": "nope"},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Incorrect username or password",
		},
		{
			name:       "duplicate username",
			method:     http.MethodPost,
			path:       "/auth/register",
			body:       map[string]string{"username": "ana", "email": "x@example.com", "password": "pw"},
			wantStatus: http.StatusBadRequest,
			wantDetail: "Username already registered",
		},
		{
			name:       "blank title",
			method:     http.MethodPost,
			path:       "/notes",
			token:      token,
			body:       map[string]string{"title": "  ", "content": "c"},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "title and content must not be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, s, tt.method, tt.path, tt.token, tt.body)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			var body struct {
				Detail string `json:"detail"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantDetail, body.Detail)
		})
	}
}
