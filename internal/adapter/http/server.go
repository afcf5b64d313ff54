// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"log/slog"
	"net/http"

	"lotto/internal/app"
)

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	auth     *app.AuthService
	sessions *app.SessionService
	lotto    *app.LottoService
	oidc     *OIDCConfig
	logger   *slog.Logger
}

// New creates a Server wired to the given application services. A nil
// oidc disables SSO; a nil logger falls back to slog.Default.
func New(auth *app.AuthService, sessions *app.SessionService, lotto *app.LottoService, oidc *OIDCConfig, logger *slog.Logger) *Server {
	if oidc == nil {
		oidc = &OIDCConfig{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{auth: auth, sessions: sessions, lotto: lotto, oidc: oidc, logger: logger}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("/signup", s.handleSignup)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/logout", s.handleLogout)
	mux.HandleFunc("/submit-number", s.handleSubmitNumber)
	mux.HandleFunc("/error", s.handleErrorPage)
	mux.HandleFunc("/", s.handleHome)

	mux.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	mux.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	return s.loggingMiddleware(s.sessionMiddleware(s.localeMiddleware(withNoCache(mux))))
}
