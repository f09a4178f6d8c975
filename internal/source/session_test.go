package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestSession(handler http.Handler) (*Session, *httptest.Server) {
	srv := httptest.NewServer(handler)
	s := NewSession("session-token")
	s.baseURL = srv.URL
	return s, srv
}

func TestSessionListPage(t *testing.T) {
	var gotAuth, gotQuery string
	s, srv := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("q")
		fmt.Fprint(w, `{
			"nextPageToken": "t1",
			"files": [
				{"id": "a", "name": "x.pdf", "mimeType": "application/pdf", "size": "1000"},
				{"id": "b", "name": "y", "mimeType": "application/vnd.google-apps.document"}
			]
		}`)
	}))
	defer srv.Close()

	page, err := s.ListPage(context.Background(), Scope{PageSize: 100}, "")
	if err != nil {
		t.Fatalf("ListPage() returned error: %v", err)
	}

	if gotAuth != "Bearer session-token" {
		t.Errorf("Authorization = %q, want bearer session token", gotAuth)
	}
	if gotQuery == "" {
		t.Error("listing request sent no query")
	}
	if page.NextPageToken != "t1" {
		t.Errorf("NextPageToken = %q, want t1", page.NextPageToken)
	}
	if len(page.Files) != 2 {
		t.Fatalf("got %d files, want 2", len(page.Files))
	}
	if page.Files[0].Size != 1000 {
		t.Errorf("size = %d, want 1000 parsed from string", page.Files[0].Size)
	}
	if page.Files[1].Size != -1 {
		t.Errorf("size = %d, want -1 for missing size", page.Files[1].Size)
	}
}

func TestSessionListPageError(t *testing.T) {
	s, srv := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "invalid_grant"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := s.ListPage(context.Background(), Scope{PageSize: 100}, ""); err == nil {
		t.Fatal("expected error on 401 response")
	}
}

func TestSessionFetch(t *testing.T) {
	s, srv := newTestSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("alt") != "media" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "file bytes")
	}))
	defer srv.Close()

	body, err := s.Fetch(context.Background(), "a")
	if err != nil {
		t.Fatalf("Fetch() returned error: %v", err)
	}
	defer body.Close()

	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if string(b) != "file bytes" {
		t.Errorf("Fetch() body = %q, want file bytes", b)
	}
}
