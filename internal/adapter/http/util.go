package adapthttp

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"lotto/internal/domain"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// parseCredentials accepts a username/password pair as either a JSON body
// or a form-encoded one.
func parseCredentials(r *http.Request) (credentials, error) {
	var creds credentials
	if isJSON(r) {
		if err := parseJSON(r, &creds); err != nil {
			return credentials{}, err
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return credentials{}, fmt.Errorf("invalid form: %w", err)
		}
		creds.Username = r.PostFormValue("username")
		creds.Password = r.PostFormValue("password")
	}
	if creds.Username == "" || creds.Password == "" {
		return credentials{}, fmt.Errorf("missing username or password")
	}
	return creds, nil
}

// parseNumbers accepts the submitted sequence as JSON {"numbers":[1,2,3]}
// or as a form field "numbers" holding "1,2,3".
func parseNumbers(r *http.Request) ([]int, error) {
	if isJSON(r) {
		var body struct {
			Numbers []int `json:"numbers"`
		}
		if err := parseJSON(r, &body); err != nil {
			return nil, err
		}
		if len(body.Numbers) == 0 {
			return nil, fmt.Errorf("missing numbers")
		}
		return body.Numbers, nil
	}

	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("invalid form: %w", err)
	}
	return domain.ParseNumbers(r.PostFormValue("numbers"))
}

func isJSON(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "application/json")
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// redirectError sends the client to the generic error view carrying a
// human-readable message. Raw store errors never travel this path.
func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/error?message="+url.QueryEscape(msg), http.StatusFound)
}

func withNoCache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
