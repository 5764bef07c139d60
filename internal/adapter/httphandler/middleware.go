package httphandler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/niksmo/electrostyle/internal/core/port"
)

func AllowJSON(next http.Handler) http.Handler {
	hf := func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength == 0 {
			next.ServeHTTP(w, r)
			return
		}

		if r.Header.Get("Content-Type") != "application/json" {
			http.Error(w, "invalid media type", http.StatusUnsupportedMediaType)
			return
		}

		next.ServeHTTP(w, r)
	}
	return http.HandlerFunc(hf)
}

type sessionKey struct{}

// SessionConfig controls the session cookie.
type SessionConfig struct {
	CookieName string
	MaxAge     time.Duration
}

// WithSession resolves the client session from its cookie, issuing a new
// session id when the cookie is missing or malformed.
func WithSession(
	opener port.SessionOpener, cfg SessionConfig,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hf := func(w http.ResponseWriter, r *http.Request) {
			id := sessionID(r, cfg.CookieName)
			if id == "" {
				id = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})

			s := opener.Open(r.Context(), id)
			ctx := context.WithValue(r.Context(), sessionKey{}, s)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hf)
	}
}

func sessionID(r *http.Request, cookieName string) string {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return ""
	}
	if err := uuid.Validate(c.Value); err != nil {
		return ""
	}
	return c.Value
}

func sessionFrom(ctx context.Context) port.Session {
	s, _ := ctx.Value(sessionKey{}).(port.Session)
	return s
}
