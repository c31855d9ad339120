// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/studysync-tui/internal/config"
	"github.com/jeranaias/studysync-tui/internal/model"
)

// newTestClient points a client with limiter and cache settings suitable
// for tests at srv.
func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.API.BaseURL = srv.URL
	cfg.API.AssistantURL = srv.URL
	cfg.API.RequestsPerSecond = 0
	return New(cfg, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// LOGIN / REGISTER
// =============================================================================

func TestLogin_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("got %s %s, want POST /login", r.Method, r.URL.Path)
		}
		if _, err := uuid.Parse(r.Header.Get(RequestIDHeader)); err != nil {
			t.Errorf("request id %q is not a uuid", r.Header.Get(RequestIDHeader))
		}
		var creds model.LoginCredentials
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if creds.Username != "alice" || creds.Password != "abc123" {
			t.Errorf("creds = %+v", creds)
		}
		writeJSON(w, http.StatusOK, map[string]string{"token": "T1"})
	}))
	defer srv.Close()

	token, err := newTestClient(t, srv).Login(context.Background(), model.LoginCredentials{Username: "alice", Password: "abc123"})
	require.NoError(t, err)
	if token != "T1" {
		t.Errorf("token = %q, want T1", token)
	}
}

func TestLogin_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "bad credentials"})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Login(context.Background(), model.LoginCredentials{Username: "a", Password: "b"})
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	if apiErr.Message != "bad credentials" {
		t.Errorf("message = %q, want error field", apiErr.Message)
	}
}

func TestLogin_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{})
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Login(context.Background(), model.LoginCredentials{})
	if !errors.Is(err, ErrMalformedResponse) {
		t.Errorf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestLogin_Transport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	client := newTestClient(t, srv)
	srv.Close()

	_, err := client.Login(context.Background(), model.LoginCredentials{})
	if !errors.Is(err, ErrTransport) {
		t.Errorf("err = %v, want ErrTransport", err)
	}
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		wantMsg string
		wantErr error
	}{
		{"success with message", http.StatusCreated, map[string]string{"message": "Welcome!"}, "Welcome!", nil},
		{"success empty", http.StatusOK, nil, "", nil},
		{"username taken", http.StatusConflict, map[string]string{"message": UsernameTakenMessage}, "", ErrUsernameTaken},
		{"other failure", http.StatusBadRequest, map[string]string{"message": "nope"}, "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got registerRequest
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/auth/register" {
					t.Errorf("path = %s", r.URL.Path)
				}
				_ = json.NewDecoder(r.Body).Decode(&got)
				if tt.body == nil {
					w.WriteHeader(tt.status)
					return
				}
				writeJSON(w, tt.status, tt.body)
			}))
			defer srv.Close()

			msg, err := newTestClient(t, srv).Register(context.Background(), model.RegisterCredentials{
				Username: "bob", University: "TUM", Password: "abc123", ConfirmPassword: "abc123",
			})

			if got != (registerRequest{Username: "bob", Password: "abc123", University: "TUM"}) {
				t.Errorf("request body = %+v", got)
			}
			if tt.status >= 300 {
				if err == nil {
					t.Fatal("expected error")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("err = %v, want %v", err, tt.wantErr)
				}
				if tt.wantErr == nil && errors.Is(err, ErrUsernameTaken) {
					t.Errorf("err %v should not match ErrUsernameTaken", err)
				}
				return
			}
			require.NoError(t, err)
			if msg != tt.wantMsg {
				t.Errorf("message = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestMessage(t *testing.T) {
	err := &APIError{Status: 400, Message: "nope"}
	if got := Message(err); got != "nope" {
		t.Errorf("Message = %q", got)
	}
	if got := Message(errors.New("plain")); got != "" {
		t.Errorf("Message(plain) = %q, want empty", got)
	}
}

// =============================================================================
// GROUPS
// =============================================================================

var sampleGroups = []model.GroupSummary{
	{ID: 1, Name: "Linear Algebra", University: "TUM", Description: "Matrices", ImageURL: "la.jpg"},
	{ID: 2, Name: "Compilers", University: "LMU", Description: "Parsing", ImageURL: "default.jpg"},
}

func TestListGroups_Cached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != GroupsPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		hits.Add(1)
		writeJSON(w, http.StatusOK, sampleGroups)
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	for i := 0; i < 3; i++ {
		groups, err := client.ListGroups(context.Background())
		require.NoError(t, err)
		if diff := cmp.Diff(sampleGroups, groups); diff != "" {
			t.Fatalf("groups mismatch (-want +got):\n%s", diff)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (cached)", hits.Load())
	}

	client.InvalidateCache()
	_, err := client.ListGroups(context.Background())
	require.NoError(t, err)
	if hits.Load() != 2 {
		t.Errorf("server hits after invalidate = %d, want 2", hits.Load())
	}
}

func TestListGroups_EmptyIsNonNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("null"))
	}))
	defer srv.Close()

	groups, err := newTestClient(t, srv).ListGroups(context.Background())
	require.NoError(t, err)
	if groups == nil || len(groups) != 0 {
		t.Errorf("groups = %#v, want empty non-nil", groups)
	}
}

func TestMyGroups_SendsBearer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != MyGroupsPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer T1" {
			t.Errorf("Authorization = %q", got)
		}
		writeJSON(w, http.StatusOK, sampleGroups[:1])
	}))
	defer srv.Close()

	groups, err := newTestClient(t, srv).MyGroups(context.Background(), "T1")
	require.NoError(t, err)
	if len(groups) != 1 || groups[0].ID != 1 {
		t.Errorf("groups = %+v", groups)
	}
}

func TestSearchGroups_QueryEncoded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != SearchGroupsPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		if q := r.URL.Query().Get("q"); q != "Café & co" {
			t.Errorf("q = %q", q)
		}
		writeJSON(w, http.StatusOK, []model.GroupSummary{})
	}))
	defer srv.Close()

	groups, err := newTestClient(t, srv).SearchGroups(context.Background(), "Café & co")
	require.NoError(t, err)
	if len(groups) != 0 {
		t.Errorf("groups = %+v, want none", groups)
	}
}

func TestSearchGroups_FallbackFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SearchGroupsPath:
			http.NotFound(w, r)
		case GroupsPath:
			writeJSON(w, http.StatusOK, sampleGroups)
		}
	}))
	defer srv.Close()

	groups, err := newTestClient(t, srv).SearchGroups(context.Background(), "lmu")
	require.NoError(t, err)
	if diff := cmp.Diff(sampleGroups[1:], groups); diff != "" {
		t.Errorf("fallback mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateGroup(t *testing.T) {
	var got createGroupRequest
	var listHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			listHits.Add(1)
			writeJSON(w, http.StatusOK, sampleGroups)
		case r.Method == http.MethodPost:
			if r.Header.Get("Authorization") != "Bearer T1" {
				t.Errorf("missing bearer token")
			}
			_ = json.NewDecoder(r.Body).Decode(&got)
			writeJSON(w, http.StatusCreated, model.GroupSummary{ID: 9, Name: got.Name, University: got.University})
		}
	}))
	defer srv.Close()

	client := newTestClient(t, srv)
	_, err := client.ListGroups(context.Background())
	require.NoError(t, err)

	created, err := client.CreateGroup(context.Background(), "T1", model.CreateGroupForm{
		Name: "Stats", University: "TUM", Description: "d",
	})
	require.NoError(t, err)

	if got.ImageURL != "default.jpg" {
		t.Errorf("imageUrl = %q, want default.jpg", got.ImageURL)
	}
	if created.ID != 9 || created.Name != "Stats" || created.ImageURL != "default.jpg" {
		t.Errorf("created = %+v", created)
	}

	_, err = client.ListGroups(context.Background())
	require.NoError(t, err)
	if listHits.Load() != 2 {
		t.Errorf("list hits = %d, want 2 (cache flushed by create)", listHits.Load())
	}
}

func TestCreateGroup_ImageBaseName(t *testing.T) {
	var got createGroupRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	created, err := newTestClient(t, srv).CreateGroup(context.Background(), "T1", model.CreateGroupForm{
		Name: "Stats", University: "TUM", ImagePath: "/home/me/pics/cover.png",
	})
	require.NoError(t, err)
	if got.ImageURL != "cover.png" {
		t.Errorf("imageUrl = %q, want cover.png", got.ImageURL)
	}
	if created.Name != "Stats" || created.ImageURL != "cover.png" {
		t.Errorf("created = %+v, want form echo", created)
	}
}

// =============================================================================
// ASSISTANT
// =============================================================================

func TestAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != AssistantPath {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req askRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Question != "what is a matrix?" {
			t.Errorf("question = %q", req.Question)
		}
		_, _ = w.Write([]byte(`{"answer":"A grid.","source_documents":[{"page_content":"grid of numbers","metadata":{"source":"la.pdf","page_number":3}}]}`))
	}))
	defer srv.Close()

	answer, err := newTestClient(t, srv).Ask(context.Background(), "what is a matrix?")
	require.NoError(t, err)
	want := model.AssistantAnswer{
		Answer:  "A grid.",
		Sources: []model.SourceRef{{Source: "la.pdf", Page: 3, Excerpt: "grid of numbers"}},
	}
	if diff := cmp.Diff(want, answer); diff != "" {
		t.Errorf("answer mismatch (-want +got):\n%s", diff)
	}
}

func TestAsk_InBandError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"answer":"","source_documents":[],"error":"index not loaded"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(t, srv).Ask(context.Background(), "q")
	if Message(err) != "index not loaded" {
		t.Errorf("err = %v, want in-band error message", err)
	}
}

func TestAsk_Disabled(t *testing.T) {
	cfg := config.Default()
	cfg.API.AssistantURL = ""
	_, err := New(cfg, nil).Ask(context.Background(), "q")
	if !errors.Is(err, ErrAssistantDisabled) {
		t.Errorf("err = %v, want ErrAssistantDisabled", err)
	}
}
