package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	authService "github.com/ashstar-ai/mainframe/internal/service/auth"
	"github.com/ashstar-ai/mainframe/pkg/utils"
)

// Handler serves the login route.
type Handler struct {
	auth *authService.Service
}

// New creates the auth handler.
func New(auth *authService.Service) *Handler {
	return &Handler{auth: auth}
}

// RegisterRoutes mounts the auth routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.handleLogin)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	u, err := h.auth.Login(r.Context(), payload.Name, payload.Email, payload.Avatar)
	if err != nil {
		if errors.Is(err, authService.ErrEmailRequired) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "login error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, u)
}
