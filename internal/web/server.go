package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/nao1215/reviewlens/internal/controller"
	"github.com/nao1215/reviewlens/internal/model"
	"github.com/nao1215/reviewlens/internal/notify"
	"golang.org/x/text/language"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// SessionCookieName is the cookie holding the session id.
const SessionCookieName = "reviewlens_session"

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

// ControllerFactory builds the controller for a new session's page.
type ControllerFactory func(elements controller.Elements, notifier notify.Notifier) *controller.Controller

// Server serves the single-page front end. Every browser session gets its
// own page elements and controller.
type Server struct {
	templates *template.Template
	sessions  *sessionStore
	mux       *http.ServeMux
	lang      language.Tag
	logger    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithSessionTTL sets the idle session lifetime. Non-positive values keep
// the default.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.sessions.ttl = ttl
		}
	}
}

// WithLanguage sets the page language attribute.
func WithLanguage(tag language.Tag) Option {
	return func(s *Server) {
		s.lang = tag
	}
}

// NewServer creates a Server whose sessions get controllers from factory.
func NewServer(factory ControllerFactory, opts ...Option) (*Server, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	s := &Server{
		templates: tmpl,
		sessions:  newSessionStore(factory, DefaultSessionTTL),
		mux:       http.NewServeMux(),
		lang:      language.English,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /submit", s.handleSubmit)
	s.mux.HandleFunc("GET /state", s.handleState)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// pageView is the data passed to the index template.
type pageView struct {
	Lang          string
	View          model.ViewState
	Notifications []model.Notification
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)

	data := pageView{
		Lang:          s.lang.String(),
		View:          sess.view.Snapshot(),
		Notifications: sess.notices.Drain(),
	}

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "index", data); err != nil {
		s.logger.Error("failed to render page", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w) //nolint:errcheck // client went away
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	sess := s.session(w, r)

	s.sessions.begin(sess)
	outcome := sess.controller.Submit(r.Context(), r.PostFormValue("url"))
	s.sessions.end(sess)
	s.logger.Debug("submit handled", "session", sess.id, "outcome", outcome)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	writeJSON(w, sess.view.Snapshot())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// session returns the caller's session, starting a new one (and setting
// its cookie) when the cookie is missing or the session expired.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	if c, err := r.Cookie(SessionCookieName); err == nil {
		if sess, ok := s.sessions.get(c.Value); ok {
			return sess
		}
	}

	sess := s.sessions.create()
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.logger.Debug("session started", "session", sess.id)
	return sess
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck // client went away
}
