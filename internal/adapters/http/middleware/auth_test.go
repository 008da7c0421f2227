package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	domainAccount "gymdesk/internal/domain/account"
)

// TestSessionStore_Expiry verifies a session is served until SessionTTL and dropped after.
func TestSessionStore_Expiry(t *testing.T) {
	now := time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)
	ss := NewSessionStore(false)
	ss.now = func() time.Time { return now }

	token := ss.Create("acc-1", "admin", domainAccount.RoleAdmin)
	if len(token) != 26 {
		t.Errorf("token length = %d, want 26", len(token))
	}

	now = now.Add(SessionTTL)
	if s, ok := ss.Get(token); !ok || s.Username != "admin" || !s.IsAdmin() {
		t.Fatalf("Get at TTL = %+v, %v; want live admin session", s, ok)
	}

	now = now.Add(time.Second)
	if _, ok := ss.Get(token); ok {
		t.Fatal("expected session to expire")
	}
	if _, ok := ss.sessions[token]; ok {
		t.Error("expired session still stored")
	}
}

// TestSessionStore_Flashes verifies flashes are delivered once, in order.
func TestSessionStore_Flashes(t *testing.T) {
	ss := NewSessionStore(false)
	token := ss.Create("acc-1", "desk", domainAccount.RoleMember)

	ss.AddFlash(token, Flash{Level: FlashSuccess, Message: "first"})
	ss.AddFlash(token, Flash{Level: FlashWarning, Message: "second"})
	ss.AddFlash("unknown", Flash{Level: FlashError, Message: "dropped"})

	got := ss.PopFlashes(token)
	if len(got) != 2 || got[0].Message != "first" || got[1].Level != FlashWarning {
		t.Fatalf("PopFlashes = %+v", got)
	}
	if again := ss.PopFlashes(token); len(again) != 0 {
		t.Errorf("second PopFlashes = %+v, want empty", again)
	}

	ss.Delete(token)
	if _, ok := ss.Get(token); ok {
		t.Error("session survived Delete")
	}
}

func serveWith(h http.Handler, path, accept string, session *Session) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	if session != nil {
		req = req.WithContext(WithSession(req.Context(), *session))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// TestRequireAdmin covers the anonymous, member and admin paths.
func TestRequireAdmin(t *testing.T) {
	h := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	member := &Session{Username: "desk", Role: domainAccount.RoleMember}
	admin := &Session{Username: "admin", Role: domainAccount.RoleAdmin}

	tests := []struct {
		name     string
		path     string
		accept   string
		session  *Session
		want     int
		location string
	}{
		{"anonymous page", "/members/new", "", nil, http.StatusSeeOther, "/login"},
		{"anonymous api", "/send_reminder/m1", "", nil, http.StatusUnauthorized, ""},
		{"anonymous json accept", "/checkin/m1", "application/json", nil, http.StatusUnauthorized, ""},
		{"member", "/members/new", "", member, http.StatusForbidden, ""},
		{"admin", "/members/new", "", admin, http.StatusNoContent, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveWith(h, tt.path, tt.accept, tt.session)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
			if loc := rec.Header().Get("Location"); loc != tt.location {
				t.Errorf("Location = %q, want %q", loc, tt.location)
			}
		})
	}
}

// TestAuth_ResolvesCookie verifies the session cookie populates the context.
func TestAuth_ResolvesCookie(t *testing.T) {
	ss := NewSessionStore(false)
	token := ss.Create("acc-1", "desk", domainAccount.RoleMember)

	var seen Session
	h := Auth(ss)(RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SessionFrom(r.Context())
		if IsAdmin(r.Context()) {
			t.Error("member session reported as admin")
		}
	})))

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || seen.AccountID != "acc-1" {
		t.Fatalf("status = %d, session = %+v", rec.Code, seen)
	}

	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "stale"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Errorf("stale cookie status = %d, want 303", rec.Code)
	}
}

// TestSessionStore_Logout verifies the session ends and the cookie is expired with the store's Secure flag.
func TestSessionStore_Logout(t *testing.T) {
	ss := NewSessionStore(true)
	token := ss.Create("acc-1", "admin", domainAccount.RoleAdmin)

	rec := httptest.NewRecorder()
	ss.SetCookie(rec, token)
	set := rec.Result().Cookies()
	if len(set) != 1 || set[0].Value != token || !set[0].Secure || !set[0].HttpOnly {
		t.Fatalf("login cookie = %+v", set)
	}

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec = httptest.NewRecorder()
	ss.Logout(rec, req)

	if _, ok := ss.Get(token); ok {
		t.Error("session survived logout")
	}
	cleared := rec.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge >= 0 || cleared[0].Value != "" {
		t.Errorf("logout cookie = %+v", cleared)
	}
}
