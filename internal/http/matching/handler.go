package matching

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
	r.Delete("/{id}", h.forget)
}

type suggestResponse struct {
	RawDescription string `json:"raw_description"`
	Category       string `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	rawDesc := r.URL.Query().Get("raw_description")
	if rawDesc == "" {
		http.Error(w, "raw_description query parameter is required", http.StatusBadRequest)
		return
	}

	cat, err := h.svc.Suggest(r.Context(), respond.UserID(r), rawDesc)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, suggestResponse{
		RawDescription: rawDesc,
		Category:       cat,
	})
}

type mappingResponse struct {
	ID         uuid.UUID `json:"id"`
	RawPattern string    `json:"raw_pattern"`
	Category   string    `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}

func toResponse(m *matching.Mapping) mappingResponse {
	return mappingResponse{
		ID:         m.ID,
		RawPattern: m.RawPattern,
		Category:   m.Category,
		CreatedAt:  m.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	mappings, err := h.svc.List(r.Context(), respond.UserID(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]mappingResponse, 0, len(mappings))
	for _, m := range mappings {
		resp = append(resp, toResponse(m))
	}

	respond.JSON(w, http.StatusOK, resp)
}

type learnRequest struct {
	RawPattern string `json:"raw_pattern"`
	Category   string `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	m, err := h.svc.Learn(r.Context(), respond.UserID(r), req.RawPattern, req.Category)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(m))
}

func (h *Handler) forget(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Forget(r.Context(), respond.UserID(r), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
