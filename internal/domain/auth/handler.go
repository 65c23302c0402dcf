package auth

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/parkeasy/parkeasy-api/internal/middleware"
	"github.com/parkeasy/parkeasy-api/internal/pkg/response"
	"github.com/parkeasy/parkeasy-api/internal/pkg/session"
	"github.com/parkeasy/parkeasy-api/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrUserAlreadyExists:
			response.Conflict(w, "Username or email already exists")
		default:
			log.Error().
				Err(err).
				Str("username", req.Username).
				Msg("failed to register user")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, result)
}

// Login handles POST /login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid username or password")
		default:
			log.Error().
				Err(err).
				Str("username", req.Username).
				Msg("login failed with internal error")
			response.InternalError(w)
		}
		return
	}

	session.SetCookie(w, result.Token, h.service.sessions.TTL())
	response.OK(w, result)
}

// AdminLogin handles POST /admin/login
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	result, err := h.service.AdminLogin(r.Context(), &req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid admin credentials")
		default:
			log.Error().Err(err).Msg("admin login failed with internal error")
			response.InternalError(w)
		}
		return
	}

	session.SetCookie(w, result.Token, h.service.sessions.TTL())
	response.OK(w, result)
}

// Logout handles GET /logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := session.FromRequest(r)
	_ = h.service.Logout(r.Context(), token)

	session.ClearCookie(w)
	response.NoContent(w)
}

// Me handles GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	user, err := h.service.GetCurrentUser(r.Context(), userID)
	if err != nil {
		response.NotFound(w, "User not found")
		return
	}

	response.OK(w, user)
}
