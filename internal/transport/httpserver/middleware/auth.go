package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"kasmoni-app-go/internal/config"
	usersdomain "kasmoni-app-go/internal/domain/users"
)

type TokenValidator interface {
	ValidateToken(token string) (*usersdomain.Claims, error)
}

// JWTAuth validates bearer tokens and puts the authenticated user on the
// request context. SkipAuth mode injects a configured mock user instead, for
// local development without a seeded account.
type JWTAuth struct {
	tokens   TokenValidator
	skipAuth bool
	mockUser User
}

type contextKey int

const userKey contextKey = iota

type User struct {
	ID    int64
	Email string
	Role  string
}

func (u User) IsAdministrator() bool {
	return u.Role == usersdomain.RoleAdministrator
}

func NewJWTAuth(cfg config.AuthConfig, tokens TokenValidator) *JWTAuth {
	return &JWTAuth{
		tokens:   tokens,
		skipAuth: cfg.SkipAuth,
		mockUser: User{
			Email: strings.TrimSpace(cfg.MockUserEmail),
			Role:  strings.TrimSpace(cfg.MockUserRole),
		},
	}
}

// Middleware rejects requests without a valid bearer token.
func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			ctx := WithUser(r.Context(), a.mockUser)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		user, ok := a.userFromRequest(r)
		if !ok {
			unauthorized(w)
			return
		}

		ctx := WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional puts the user on the context when a valid bearer token is present
// but lets anonymous requests through. Used by routes that bootstrap their own
// authorization, such as first-run registration.
func (a *JWTAuth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.skipAuth {
			ctx := WithUser(r.Context(), a.mockUser)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		if user, ok := a.userFromRequest(r); ok {
			r = r.WithContext(WithUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *JWTAuth) userFromRequest(r *http.Request) (User, bool) {
	token, ok := bearerToken(r.Header.Get("Authorization"))
	if !ok {
		return User{}, false
	}

	claims, err := a.tokens.ValidateToken(token)
	if err != nil {
		return User{}, false
	}

	return User{
		ID:    claims.UserID,
		Email: claims.Email,
		Role:  claims.Role,
	}, true
}

// RequireAdmin guards mutating routes. It assumes Middleware already ran.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if !user.IsAdministrator() {
			writeError(w, http.StatusForbidden, "forbidden", "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.Email == "" {
		return User{}, false
	}
	return user, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
