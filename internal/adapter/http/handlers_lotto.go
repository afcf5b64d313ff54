package adapthttp

import (
	"net/http"

	"lotto/internal/domain"
)

func (s *Server) handleSubmitNumber(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	user, ok := userFrom(r.Context())
	if !ok {
		// No store mutation happens for anonymous requests.
		redirectError(w, r, "You need to log in to submit a number.")
		return
	}

	numbers, err := parseNumbers(r)
	if err != nil {
		redirectError(w, r, "Error submitting number.")
		return
	}

	if _, err := s.lotto.Submit(r.Context(), user.ID, numbers); err != nil {
		s.logger.Error("submit failed", "user", user.ID, "error", err)
		redirectError(w, r, "Error submitting number.")
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// The home page renders anonymously; identity only personalizes it.
	user, _ := userFrom(r.Context())

	var recent []domain.Submission
	if user != nil {
		var err error
		recent, err = s.lotto.RecentByUser(r.Context(), user.ID, 10)
		if err != nil {
			s.logger.Error("list submissions failed", "user", user.ID, "error", err)
		}
	}

	s.render(w, r, "lotto.html", map[string]any{
		"Title":       "Lotto",
		"User":        user,
		"Submissions": recent,
		"Strings":     stringsFrom(r.Context()),
	})
}

func (s *Server) handleErrorPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	msg := r.URL.Query().Get("message")
	if msg == "" {
		msg = "An error occurred"
	}

	s.render(w, r, "error.html", map[string]any{
		"Title":    "Error",
		"ErrorMsg": msg,
		"Strings":  stringsFrom(r.Context()),
	})
}

func (s *Server) renderLoginPage(w http.ResponseWriter, r *http.Request) {
	strings := stringsFrom(r.Context())
	s.render(w, r, "login.html", map[string]any{
		"Title":      strings.Title,
		"Strings":    strings,
		"SSOEnabled": s.oidc.Enabled,
	})
}
