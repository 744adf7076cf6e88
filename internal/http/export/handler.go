package export

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/wealthfolio/internal/budget"
	"github.com/MrJamesThe3rd/wealthfolio/internal/export"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/logger"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{month}", h.summary)
	r.Get("/{month}/download", h.download)
}

type summaryResponse struct {
	Month   string `json:"month"`
	Entries int    `json:"entries"`
	Summary string `json:"summary"`
}

func month(w http.ResponseWriter, r *http.Request) (string, bool) {
	m := chi.URLParam(r, "month")
	if _, err := budget.ParseMonth(m); err != nil {
		respond.Error(w, r, err)
		return "", false
	}

	return m, true
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	m, ok := month(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.Entries(r.Context(), respond.UserID(r), m)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, summaryResponse{
		Month:   m,
		Entries: len(entries),
		Summary: export.Summary(entries, m),
	})
}

// download buffers the archive so a failure can still be reported as an
// error status instead of a truncated zip.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	m, ok := month(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.svc.WriteArchive(r.Context(), respond.UserID(r), m, &buf); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger_%s.zip\"", m))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		logger.FromContext(r.Context()).Error("failed to write archive", "error", err)
	}
}
