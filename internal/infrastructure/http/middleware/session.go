package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/mrops-br/storefront-api/internal/app/session"
	"github.com/mrops-br/storefront-api/internal/domain"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/response"
	"github.com/mrops-br/storefront-api/internal/infrastructure/telemetry"
)

// Session resolves the visitor session from its cookie, starting a new
// session when the cookie is missing or refers to an evicted one
func Session(repo session.Repository, cfg config.SessionConfig, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var sess *session.Session
			if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
				found, err := repo.FindByID(ctx, cookie.Value)
				switch {
				case err == nil:
					sess = found
				case !errors.Is(err, domain.ErrSessionNotFound):
					logger.ErrorContext(ctx, "Failed to load session", slog.String("error", err.Error()))
					response.Error(w, http.StatusInternalServerError, err)
					return
				}
			}

			if sess == nil {
				created, err := repo.Create(ctx)
				if err != nil {
					logger.ErrorContext(ctx, "Failed to create session", slog.String("error", err.Error()))
					response.Error(w, http.StatusInternalServerError, err)
					return
				}
				sess = created
				http.SetCookie(w, &http.Cookie{
					Name:     cfg.CookieName,
					Value:    sess.ID,
					Path:     "/",
					HttpOnly: true,
					Secure:   cfg.CookieSecure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			sess.Touch(time.Now())

			ctx = session.WithContext(ctx, sess)
			ctx = telemetry.WithSessionID(ctx, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
