package handler

import (
	"errors"
	"net/http"
	"time"

	usersdomain "kasmoni-app-go/internal/domain/users"
	"kasmoni-app-go/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func toUserResponse(user *usersdomain.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	token, user, err := h.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, usersdomain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password")
			return
		}
		h.log.InternalError("auth.login: login failed", err, "email", req.Email)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token, User: toUserResponse(user)})
}

// Register creates an account. The first account ever is open to anyone so a
// fresh install can bootstrap itself; every later registration requires an
// administrator caller.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	hasUsers, err := h.Users.HasAny(r.Context())
	if err != nil {
		h.log.InternalError("auth.register: count users failed", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}
	if hasUsers {
		user, ok := middleware.UserFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		if !user.IsAdministrator() {
			writeError(w, http.StatusForbidden, "forbidden", "administrator role required")
			return
		}
	}

	user, err := h.Users.Register(r.Context(), usersdomain.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		if errors.Is(err, usersdomain.ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email_taken", "email already registered")
			return
		}
		h.log.BusinessError("auth.register: register failed", err, "email", req.Email)
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	h.recordActivity(r.Context(), "user.register", "user", user.ID, user.Email)
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

func (h *Handlers) AuthMe(w http.ResponseWriter, r *http.Request) {
	ctxUser, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	if ctxUser.ID == 0 {
		// SkipAuth mock user has no backing row.
		writeJSON(w, http.StatusOK, userResponse{Email: ctxUser.Email, Role: ctxUser.Role})
		return
	}

	user, err := h.Users.Get(r.Context(), ctxUser.ID)
	if err != nil {
		if errors.Is(err, usersdomain.ErrUserNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
			return
		}
		h.log.InternalError("auth.me: get user failed", err, "user_id", ctxUser.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}
