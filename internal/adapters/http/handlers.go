package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymdesk/internal/adapters/http/middleware"
	"gymdesk/internal/domain/clock"
)

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// renderMarkdown converts a trainer bio to HTML, falling back to escaped text.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

func templateFuncs(clk clock.Clock) template.FuncMap {
	return template.FuncMap{
		"renderMarkdown": renderMarkdown,
		"date":           clock.FormatDate,
		"money":          func(v float64) string { return fmt.Sprintf("R%.2f", v) },
		"localTime":      func(t time.Time) string { return clk.ToLocal(t).Format("15:04:05") },
		"capacity": func(c *int) string {
			if c == nil {
				return ""
			}
			return fmt.Sprintf("%d", *c)
		},
	}
}

// pageData is what layout.html sees; page templates read their own payload from Data.
type pageData struct {
	Title     string
	GymName   string
	Username  string
	LoggedIn  bool
	IsAdmin   bool
	CSRFField template.HTML
	CSRFToken string
	Flashes   []middleware.Flash
	Data      any
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// render executes a page inside the layout with a 200 status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	s.renderStatus(w, r, http.StatusOK, page, title, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	tpl, ok := s.templates[page]
	if !ok {
		internalError(w, fmt.Errorf("unknown template %s", page))
		return
	}

	pd := pageData{
		Title:     title,
		GymName:   s.cfg.GymName,
		CSRFField: csrf.TemplateField(r),
		CSRFToken: csrf.Token(r),
		Data:      data,
	}
	if sess, ok := middleware.SessionFrom(r.Context()); ok {
		pd.Username = sess.Username
		pd.LoggedIn = true
		pd.IsAdmin = sess.IsAdmin()
		pd.Flashes = s.sessions.PopFlashes(sess.Token)
	}

	// Render to a buffer so a template failure never leaves a half-written page.
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, pd); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", page, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// flash queues a message for the current session's next page.
func (s *Server) flash(r *http.Request, level, message string) {
	if sess, ok := middleware.SessionFrom(r.Context()); ok {
		s.sessions.AddFlash(sess.Token, middleware.Flash{Level: level, Message: message})
	}
}

// redirectWithFlash is the post/redirect/get step every form handler ends with.
func (s *Server) redirectWithFlash(w http.ResponseWriter, r *http.Request, to, level, message string) {
	s.flash(r, level, message)
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("internal_error", "error", err.Error())
	}
}

// writeText answers the maintenance endpoints that reply with a plain sentence.
func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}

// parseForm reads the form body; false means a 400 has already been written.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return false
	}
	return true
}

// sentence turns an error into a front-desk message: capitalised, ending in a full stop.
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	runes := []rune(msg)
	runes[0] = unicode.ToUpper(runes[0])
	msg = string(runes)
	if !strings.HasSuffix(msg, ".") && !strings.HasSuffix(msg, "!") {
		msg += "."
	}
	return msg
}

// failForm turns an orchestrator error into the right response for an HTML form:
// validation failures flash and bounce back to the form, missing rows are 404, anything else is a 500.
func (s *Server) failForm(w http.ResponseWriter, r *http.Request, err error, backTo string) {
	switch {
	case isNotFound(err):
		http.Error(w, sentence(err), http.StatusNotFound)
	case isValidation(err):
		s.redirectWithFlash(w, r, backTo, middleware.FlashError, sentence(err))
	default:
		internalError(w, err)
	}
}

// failJSON is failForm for the JSON endpoints.
func failJSON(w http.ResponseWriter, err error) {
	switch {
	case isNotFound(err):
		writeJSON(w, http.StatusNotFound, map[string]any{"success": false, "message": sentence(err)})
	case isValidation(err):
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "message": sentence(err)})
	default:
		slog.Error("internal_error", "error", err.Error())
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "message": "internal server error"})
	}
}

// anyOf reports whether err matches one of the targets.
func anyOf(err error, targets ...error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}
