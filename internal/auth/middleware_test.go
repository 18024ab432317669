package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTokenFromRequest(t *testing.T) {
	header := httptest.NewRequest("GET", "/api/projects", nil)
	header.Header.Set("Authorization", "Bearer abc")
	if tok, err := TokenFromRequest(header); err != nil || tok != "abc" {
		t.Errorf("header token = %q, %v; want abc", tok, err)
	}

	// Websocket upgrades carry the token in the URL instead.
	query := httptest.NewRequest("GET", "/ws/project/proj_x?token=xyz", nil)
	if tok, err := TokenFromRequest(query); err != nil || tok != "xyz" {
		t.Errorf("query token = %q, %v; want xyz", tok, err)
	}

	malformed := httptest.NewRequest("GET", "/api/projects", nil)
	malformed.Header.Set("Authorization", "abc")
	if _, err := TokenFromRequest(malformed); err == nil {
		t.Error("malformed authorization header accepted")
	}

	bare := httptest.NewRequest("GET", "/api/projects", nil)
	if _, err := TokenFromRequest(bare); err == nil {
		t.Error("request without token accepted")
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := NewService(nil, "test-secret")
	token, err := s.issueToken("user_abc123")
	if err != nil {
		t.Fatalf("issueToken: %v", err)
	}

	var gotUserID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
	})
	guarded := s.AuthMiddleware(next)

	req := httptest.NewRequest("GET", "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d with valid header token", rec.Code)
	}
	if gotUserID != "user_abc123" {
		t.Errorf("context user = %q, want user_abc123", gotUserID)
	}

	gotUserID = ""
	req = httptest.NewRequest("GET", "/api/projects?token="+token, nil)
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || gotUserID != "user_abc123" {
		t.Errorf("query token: status = %d, user = %q", rec.Code, gotUserID)
	}

	req = httptest.NewRequest("GET", "/api/projects", nil)
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d without token, want 401", rec.Code)
	}

	req = httptest.NewRequest("GET", "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d with garbage token, want 401", rec.Code)
	}
}
