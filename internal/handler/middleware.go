package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/atik94/mobile-resale-market-server/internal/auth"
	"github.com/atik94/mobile-resale-market-server/internal/model"

	"github.com/go-chi/chi/v5/middleware"
)

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Authorize requires "Authorization: Bearer <token>". A missing header is
// 401; anything that fails verification is 403.
func Authorize(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := strings.TrimSpace(r.Header.Get("Authorization"))
			if header == "" {
				writeMessage(w, http.StatusUnauthorized, "unauthorized access")
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") {
				writeMessage(w, http.StatusForbidden, "forbidden access")
				return
			}

			claims, err := tokens.Parse(strings.TrimSpace(token))
			if err != nil {
				writeMessage(w, http.StatusForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

type RoleChecker interface {
	HasRole(ctx context.Context, email string, role model.Role) (bool, error)
}

// RequireRole runs behind Authorize and lets the request through only when
// the token holder is stored with role.
func RequireRole(roles RoleChecker, role model.Role, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok || roles == nil {
				writeMessage(w, http.StatusForbidden, "forbidden access")
				return
			}

			has, err := roles.HasRole(r.Context(), claims.Email, role)
			if err != nil {
				respondError(w, r, log, err)
				return
			}
			if !has {
				writeMessage(w, http.StatusForbidden, "forbidden access")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one line per request once the handler returns.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				log.Info("http",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"latency_ms", time.Since(start).Milliseconds(),
					"req_id", middleware.GetReqID(r.Context()),
					"ip", r.RemoteAddr,
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
