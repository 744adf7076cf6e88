package ledger

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

const maxListLimit = 500

type Handler struct {
	svc *ledger.Service
}

func NewHandler(svc *ledger.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.post)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	var req PostRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.Params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.Post(r.Context(), respond.UserID(r), params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ToEntryResponse(e))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := ledger.ListFilter{
		Month:  q.Get("month"),
		Search: q.Get("q"),
	}

	if s := q.Get("account_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid account_id", http.StatusBadRequest)
			return
		}

		filter.AccountID = &id
	}

	if s := q.Get("type"); s != "" {
		t := ledger.Type(s)
		if !t.Valid() {
			respond.Error(w, r, ledger.ErrInvalidType)
			return
		}

		filter.Type = &t
	}

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}

		filter.Limit = min(n, maxListLimit)
	}

	entries, err := h.svc.List(r.Context(), respond.UserID(r), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToEntryResponses(entries))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	e, err := h.svc.Get(r.Context(), respond.UserID(r), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToEntryResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := respond.ID(w, r)
	if !ok {
		return
	}

	var req PostRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params, err := req.Params()
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	e, err := h.svc.Update(r.Context(), respond.UserID(r), id, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToEntryResponse(e))
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
