package api

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"log/slog"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/jobdeck/jobdeck/pkg/apperr"
	"github.com/jobdeck/jobdeck/pkg/models"
)

type ctxKey string

const (
	ctxCaller    ctxKey = "caller"
	ctxRequestID ctxKey = "request_id"
)

// package-level logger used by middleware and helpers; can be set via SetLogger from caller
var logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// SetLogger installs a logger for the api package. Passing nil is a no-op.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

// CallerFromContext returns the authenticated caller injected by the JWT
// middleware.
func CallerFromContext(ctx context.Context) (models.Caller, bool) {
	c, ok := ctx.Value(ctxCaller).(models.Caller)
	return c, ok
}

// ContextWithCaller attaches a verified caller to ctx. The JWT middleware is
// the only production caller; tests use it to exercise handlers directly.
func ContextWithCaller(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, ctxCaller, caller)
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)
		logger.Info("request",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
		)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxRequestID, reqID)))
	})
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic", slog.Any("err", err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// JWTAuthMiddlewareWithSecret rejects requests without a valid bearer token
// before any handler runs, and injects the verified caller into the request
// context.
func JWTAuthMiddlewareWithSecret(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
				return
			}

			var tokenString string
			if _, err := fmt.Sscanf(authHeader, "Bearer %s", &tokenString); err != nil || tokenString == "" {
				writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}

				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
				return
			}

			caller, ok := callerFromClaims(token.Claims)
			if !ok {
				writeError(w, apperr.New(apperr.Authentication, "authentication failed"))
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithCaller(r.Context(), caller)))
		})
	}
}

func callerFromClaims(claims jwt.Claims) (models.Caller, bool) {
	mc, ok := claims.(jwt.MapClaims)
	if !ok {
		return models.Caller{}, false
	}

	var caller models.Caller
	switch id := mc["account_id"].(type) {
	case float64:
		caller.ID = int64(id)
	case int64:
		caller.ID = id
	default:
		return models.Caller{}, false
	}

	role, ok := mc["role"].(string)
	if !ok || !models.Role(role).Valid() {
		return models.Caller{}, false
	}
	caller.Role = models.Role(role)

	if name, ok := mc["name"].(string); ok {
		caller.Name = name
	}

	return caller, true
}
