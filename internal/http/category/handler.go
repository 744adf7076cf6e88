package category

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/category"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Patch("/{id}", h.rename)
	r.Delete("/{id}", h.delete)
}

type categoryResponse struct {
	ID    uuid.UUID   `json:"id"`
	Name  string      `json:"name"`
	Type  ledger.Type `json:"type"`
	Order int         `json:"order"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Type: c.Type, Order: c.Order}
}

// list seeds the default categories on a user's first visit.
func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter *ledger.Type

	if s := r.URL.Query().Get("type"); s != "" {
		t := ledger.Type(s)
		if !t.Valid() {
			respond.Error(w, r, ledger.ErrInvalidType)
			return
		}

		filter = &t
	}

	cats, err := h.svc.List(r.Context(), respond.UserID(r), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]categoryResponse, 0, len(cats))
	for _, c := range cats {
		resp = append(resp, toResponse(c))
	}

	respond.JSON(w, http.StatusOK, resp)
}

type createRequest struct {
	Name string      `json:"name"`
	Type ledger.Type `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	c, err := h.svc.Create(r.Context(), respond.UserID(r), req.Name, req.Type)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

type renameRequest struct {
	Name string `json:"name"`
}

func (h *Handler) rename(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req renameRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	if err := h.svc.Rename(r.Context(), respond.UserID(r), id, req.Name); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), respond.UserID(r), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
