package middleware

import (
	"crypto/rand"
	"net/http"
	"sync"
	"time"

	domainAccount "gymdesk/internal/domain/account"
)

// SessionTTL bounds how long a login lasts.
const SessionTTL = 24 * time.Hour

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "gym_session"

// Flash levels, matching the CSS classes of the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Level   string
	Message string
}

// Session is an authenticated front-desk login.
type Session struct {
	Token     string
	AccountID string
	Username  string
	Role      string
	CreatedAt time.Time
}

// IsAdmin reports whether the session may change data.
func (s Session) IsAdmin() bool {
	return s.Role == domainAccount.RoleAdmin
}

type sessionEntry struct {
	Session
	flashes []Flash
}

// SessionStore keeps sessions in memory, so a restart logs everyone out.
type SessionStore struct {
	secure bool
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

// NewSessionStore creates an empty store. secure marks its cookies Secure.
func NewSessionStore(secure bool) *SessionStore {
	return &SessionStore{
		secure:   secure,
		now:      time.Now,
		sessions: make(map[string]*sessionEntry),
	}
}

// Create starts a session and returns its token.
func (ss *SessionStore) Create(accountID, username, role string) string {
	token := rand.Text()
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = &sessionEntry{Session: Session{
		Token:     token,
		AccountID: accountID,
		Username:  username,
		Role:      role,
		CreatedAt: ss.now(),
	}}
	return token
}

// lookup returns the live entry for token, dropping it if it has expired.
// Callers hold ss.mu.
func (ss *SessionStore) lookup(token string) (*sessionEntry, bool) {
	e, ok := ss.sessions[token]
	if !ok {
		return nil, false
	}
	if ss.now().Sub(e.CreatedAt) > SessionTTL {
		delete(ss.sessions, token)
		return nil, false
	}
	return e, true
}

// Get returns the session for token while it is younger than SessionTTL.
func (ss *SessionStore) Get(token string) (Session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	e, ok := ss.lookup(token)
	if !ok {
		return Session{}, false
	}
	return e.Session, true
}

// Delete ends the session for token. Unknown tokens are ignored.
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// AddFlash queues a message for the session's next page.
func (ss *SessionStore) AddFlash(token string, f Flash) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if e, ok := ss.lookup(token); ok {
		e.flashes = append(e.flashes, f)
	}
}

// PopFlashes returns the queued messages in order and clears them.
func (ss *SessionStore) PopFlashes(token string) []Flash {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	e, ok := ss.lookup(token)
	if !ok {
		return nil
	}
	out := e.flashes
	e.flashes = nil
	return out
}

// SetCookie hands token to the browser.
func (ss *SessionStore) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, ss.cookie(token, int(SessionTTL/time.Second)))
}

// Logout ends the request's session, if any, and expires the cookie.
func (ss *SessionStore) Logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		ss.Delete(c.Value)
	}
	http.SetCookie(w, ss.cookie("", -1))
}

func (ss *SessionStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   ss.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
