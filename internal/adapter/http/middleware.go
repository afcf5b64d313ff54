package adapthttp

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"lotto/internal/domain"
	"lotto/internal/i18n"
)

type contextKey string

const (
	sessionContextKey   contextKey = "session"
	userContextKey      contextKey = "user"
	stringsContextKey   contextKey = "strings"
	requestIDContextKey contextKey = "requestID"
)

// sessionCookie is the cookie carrying the opaque session token.
const sessionCookie = "session"

// sessionMiddleware resolves the session token on every request and puts
// the session plus the authenticated user (if any) into the context. A
// store failure here is fatal for the request: it answers 500, never a
// silent fall back to anonymous.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Probes never need a session row.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		var token string
		if c, err := r.Cookie(sessionCookie); err == nil {
			token = c.Value
		}

		sess, user, err := s.sessions.Resolve(r.Context(), token)
		if err != nil {
			s.logger.Error("session resolve failed", "error", err, "path", r.URL.Path)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if sess.Token != token {
			s.setSessionCookie(w, sess.Token)
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		if user != nil {
			ctx = context.WithValue(ctx, userContextKey, user)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// localeMiddleware attaches the string table matching Accept-Language.
func (s *Server) localeMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		strings := i18n.Match(r.Header.Get("Accept-Language"))
		ctx := context.WithValue(r.Context(), stringsContextKey, strings)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs every request with a generated request id.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.NewString()
		lw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		ctx := context.WithValue(r.Context(), requestIDContextKey, reqID)
		next.ServeHTTP(lw, r.WithContext(ctx))

		s.logger.Info("request",
			"id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", lw.status,
			"duration", time.Since(start),
		)
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(s.sessions.TTL().Seconds()),
	})
}

func sessionFrom(ctx context.Context) *domain.Session {
	sess, _ := ctx.Value(sessionContextKey).(*domain.Session)
	return sess
}

func userFrom(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

func stringsFrom(ctx context.Context) i18n.Strings {
	if s, ok := ctx.Value(stringsContextKey).(i18n.Strings); ok {
		return s
	}
	return i18n.Match("")
}
