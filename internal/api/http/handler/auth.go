package handler

import (
	"context"
	"net/http"

	"github.com/dtroode/taskmanager-server/internal/api/http/cookie"
	"github.com/dtroode/taskmanager-server/internal/api/http/response"
	"github.com/dtroode/taskmanager-server/internal/logger"
	"github.com/dtroode/taskmanager-server/internal/metrics"
	"github.com/dtroode/taskmanager-server/internal/model"
)

// AuthService defines registration, login and session operations.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.PublicUser, model.TokenPair, error)
	Login(ctx context.Context, email, plaintext string) (model.PublicUser, model.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	CurrentUser(ctx context.Context, accessToken string) (model.PublicUser, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    model.PublicUser `json:"user"`
}

type messageResponse struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message"`
}

type meResponse struct {
	User model.PublicUser `json:"user"`
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	jar         *cookie.Jar
	metrics     metrics.Recorder
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, jar *cookie.Jar, recorder metrics.Recorder, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		jar:         jar,
		metrics:     recorder,
		logger:      logger,
	}
}

// Register creates an account and starts a session.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := response.Decode(w, r, &req); err != nil {
		h.fail(w, r, "register", err)
		return
	}

	user, pair, err := h.authService.Register(r.Context(), model.RegisterParams{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		h.fail(w, r, "register", err)
		return
	}

	h.metrics.RecordAuthOperation("register", nil)
	h.jar.SetTokens(w, pair)
	response.JSON(w, http.StatusCreated, userResponse{
		Success: true,
		Message: "User created successfully",
		User:    user,
	})
}

// Login checks credentials and starts a session.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := response.Decode(w, r, &req); err != nil {
		h.fail(w, r, "login", err)
		return
	}

	user, pair, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, "login", err)
		return
	}

	h.metrics.RecordAuthOperation("login", nil)
	h.jar.SetTokens(w, pair)
	response.JSON(w, http.StatusOK, userResponse{
		Success: true,
		Message: "Login successful",
		User:    user,
	})
}

// Logout clears both session cookies. It always succeeds.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	_ = h.authService.Logout(r.Context(), cookie.Read(r, cookie.RefreshTokenName))

	h.metrics.RecordAuthOperation("logout", nil)
	h.jar.Clear(w)
	response.JSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Refresh exchanges the refresh cookie for a new token pair.
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	pair, err := h.authService.Refresh(r.Context(), cookie.Read(r, cookie.RefreshTokenName))
	if err != nil {
		h.fail(w, r, "refresh", err)
		return
	}

	h.metrics.RecordAuthOperation("refresh", nil)
	h.jar.SetTokens(w, pair)
	response.JSON(w, http.StatusOK, messageResponse{
		Success: true,
		Message: "Token refreshed successfully",
	})
}

// Me returns the identity behind the access cookie.
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.CurrentUser(r.Context(), cookie.Read(r, cookie.AccessTokenName))
	if err != nil {
		h.fail(w, r, "me", err)
		return
	}

	response.JSON(w, http.StatusOK, meResponse{User: user})
}

func (h *Auth) fail(w http.ResponseWriter, r *http.Request, operation string, err error) {
	h.metrics.RecordAuthOperation(operation, err)
	response.Error(w, r, err, h.logger)
}
