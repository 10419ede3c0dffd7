package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/easytech/webapi/internal/services"
	"github.com/easytech/webapi/internal/session"
	"github.com/easytech/webapi/internal/store"
	"github.com/easytech/webapi/types"
	"github.com/go-chi/chi/v5"
)

// Authenticator checks login credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (types.User, error)
}

// SessionManager ties a browser session to a user id.
type SessionManager interface {
	Start(ctx context.Context, w http.ResponseWriter, userID int) error
	Resolve(ctx context.Context, r *http.Request) (int, error)
	End(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// UserLoader loads the account behind a session.
type UserLoader interface {
	GetByID(ctx context.Context, id int) (types.User, error)
}

// AuthHandler provides session login endpoints.
type AuthHandler struct {
	userService   *services.UserService
	authenticator Authenticator
	sessions      SessionManager
}

func NewAuthHandler(userService *services.UserService, authenticator Authenticator, sessions SessionManager) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		authenticator: authenticator,
		sessions:      sessions,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(
	r chi.Router,
	userService *services.UserService,
	authenticator Authenticator,
	sessions SessionManager,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewAuthHandler(userService, authenticator, sessions)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
	r.With(authMiddleware).Get("/user", handler.CurrentUser)
}

// RequireAuth rejects requests without a live session and injects the
// session's user into the request context. A session or user lookup that
// fails for any other reason is a 500.
func RequireAuth(sessions SessionManager, users UserLoader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.Resolve(r.Context(), r)
			if errors.Is(err, session.ErrNoSession) {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if err != nil {
				log.Printf("resolve session: %v", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if err != nil {
				log.Printf("load session user %d: %v", userID, err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

type UserResponse struct {
	Message string     `json:"message,omitempty"`
	User    types.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			writeError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		writeFailure(w, err, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, UserResponse{Message: "User registered successfully", User: user})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		writeFailure(w, err, "Internal server error")
		return
	}

	if err := h.sessions.Start(r.Context(), w, user.ID); err != nil {
		writeFailure(w, err, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, UserResponse{Message: "Login successful", User: user})
}

// Logout always succeeds from the client's point of view; the cookie is
// expired even if the stored session could not be removed.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.End(r.Context(), w, r); err != nil {
		log.Printf("end session: %v", err)
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, UserResponse{User: user})
}
