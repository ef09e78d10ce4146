package review

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ashstar-ai/mainframe/internal/model/review"
	"github.com/ashstar-ai/mainframe/internal/store"
	"github.com/ashstar-ai/mainframe/pkg/utils"
)

// Handler serves persona reviews and the admin moderation routes.
type Handler struct {
	records *store.Store
}

// New creates the review handler.
func New(records *store.Store) *Handler {
	return &Handler{records: records}
}

// RegisterRoutes mounts the public review routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/reviews", h.handleCreate)
	r.Get("/reviews/{personaID}", h.handleListByPersona)
}

// RegisterAdminRoutes mounts the moderation routes.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/admin/reviews", h.handleListAll)
	r.Post("/admin/reviews/{reviewID}/reply", h.handleReply)
	r.Delete("/admin/reviews/{reviewID}", h.handleDelete)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PersonaID string `json:"personaId"`
		UserName  string `json:"userName"`
		UserEmail string `json:"userEmail"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}

	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.PersonaID == "" {
		utils.RespondError(w, http.StatusBadRequest, "personaId is required")
		return
	}

	rec := review.Review{
		ID:        uuid.NewString(),
		PersonaID: payload.PersonaID,
		UserName:  payload.UserName,
		UserEmail: payload.UserEmail,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.records.CreateReview(r.Context(), rec); err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "review post error")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleListByPersona(w http.ResponseWriter, r *http.Request) {
	personaID := chi.URLParam(r, "personaID")

	reviews, err := h.records.ListReviewsByPersona(r.Context(), personaID)
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "review fetch error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, reviews)
}

func (h *Handler) handleListAll(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.records.ListReviews(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "review fetch error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, reviews)
}

func (h *Handler) handleReply(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	var payload struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.records.SetReviewReply(r.Context(), reviewID, payload.Reply)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "review not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "review update error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	reviewID := chi.URLParam(r, "reviewID")

	if err := h.records.DeleteReview(r.Context(), reviewID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, http.StatusNotFound, "review not found")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "review delete error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
