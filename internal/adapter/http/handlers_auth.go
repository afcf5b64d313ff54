package adapthttp

import (
	"errors"
	"net/http"

	"lotto/internal/app"
)

const invalidCredentialsMsg = "Invalid username or password."

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	creds, err := parseCredentials(r)
	if err != nil {
		redirectError(w, r, "Error registering new user.")
		return
	}

	// Duplicate usernames and store failures get the same generic message.
	if _, err := s.auth.Signup(r.Context(), creds.Username, creds.Password); err != nil {
		s.logger.Warn("signup failed", "username", creds.Username, "error", err)
		redirectError(w, r, "Error registering new user.")
		return
	}

	// Signing up does not log the user in; an explicit login follows.
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.renderLoginPage(w, r)
	case http.MethodPost:
		s.login(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	creds, err := parseCredentials(r)
	if err != nil {
		redirectError(w, r, invalidCredentialsMsg)
		return
	}

	user, err := s.auth.Authenticate(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, app.ErrUnknownUser) || errors.Is(err, app.ErrBadPassword) {
		// Both failure reasons map to one outward message.
		redirectError(w, r, invalidCredentialsMsg)
		return
	}
	if err != nil {
		s.logger.Error("login failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	token, err := s.sessions.Attach(r.Context(), currentToken(r), user.ID)
	if err != nil {
		s.logger.Error("session attach failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Unconditional: no prior authentication check, and repeat calls are
	// harmless. The session row stays, only the identity is dropped.
	if token := currentToken(r); token != "" {
		if err := s.sessions.Clear(r.Context(), token); err != nil {
			s.logger.Error("logout failed", "error", err)
		}
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// currentToken returns the session token established for this request.
// The session middleware has always resolved one by the time a handler
// runs; the cookie is only a fallback for direct handler tests.
func currentToken(r *http.Request) string {
	if sess := sessionFrom(r.Context()); sess != nil {
		return sess.Token
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		return c.Value
	}
	return ""
}
