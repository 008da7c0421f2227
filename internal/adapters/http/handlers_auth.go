package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/application/orchestrators"
	"gymdesk/internal/domain/audit"
)

// handleIndex sends logged-in staff to the dashboard and everyone else to the login form.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.SessionFrom(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleLoginForm handles GET /login
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	// If already logged in, redirect to dashboard
	if _, ok := middleware.SessionFrom(r.Context()); ok {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	s.render(w, r, "login.html", "Login", map[string]any{"Error": "", "Username": ""})
}

// handleLogin handles POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	input := orchestrators.LoginInput{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}
	deps := orchestrators.LoginDeps{
		AccountStore: s.stores.AccountStore,
		Clock:        s.clock,
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
	if err != nil {
		msg := "Invalid username/password"
		switch {
		case errors.Is(err, orchestrators.ErrAccountLocked):
			msg = "Account locked after too many failed attempts. Try again later."
		case !errors.Is(err, orchestrators.ErrInvalidCredentials):
			internalError(w, err)
			return
		}
		s.recordActivity(r, audit.CategoryAccount, audit.ActionLoginFailed, "", "Failed login for "+strings.TrimSpace(input.Username))
		s.renderStatus(w, r, http.StatusUnauthorized, "login.html", "Login", map[string]any{
			"Error":    msg,
			"Username": input.Username,
		})
		return
	}

	token := s.sessions.Create(result.AccountID, result.Username, result.Role)
	s.sessions.SetCookie(w, token)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// handleLogout handles POST /logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := middleware.SessionFrom(r.Context()); ok {
		slog.Info("auth_event", "event", "logout", "username", sess.Username)
	}
	s.sessions.Logout(w, r)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleWhoAmI handles GET /whoami
func (s *Server) handleWhoAmI(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())
	writeText(w, http.StatusOK, "Logged in as: "+sess.Username)
}

// handleChangePasswordForm handles GET /change-password
func (s *Server) handleChangePasswordForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "change_password.html", "Change password", nil)
}

// handleChangePassword handles POST /change-password
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, _ := middleware.SessionFrom(r.Context())
	if !parseForm(w, r) {
		return
	}

	if r.FormValue("new_password") != r.FormValue("confirm_password") {
		s.redirectWithFlash(w, r, "/change-password", middleware.FlashError, "New passwords do not match.")
		return
	}

	err := orchestrators.ExecuteChangePassword(r.Context(), orchestrators.ChangePasswordInput{
		AccountID:       sess.AccountID,
		CurrentPassword: r.FormValue("current_password"),
		NewPassword:     r.FormValue("new_password"),
	}, orchestrators.ChangePasswordDeps{AccountStore: s.stores.AccountStore})
	if err != nil {
		s.failForm(w, r, err, "/change-password")
		return
	}
	s.recordActivity(r, audit.CategoryAccount, audit.ActionPasswordChange, sess.AccountID, "Password changed")
	s.redirectWithFlash(w, r, "/dashboard", middleware.FlashSuccess, "Password changed successfully!")
}
