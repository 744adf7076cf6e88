package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	httpledger "github.com/MrJamesThe3rd/wealthfolio/internal/http/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/importer"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	importSvc *importer.Service
	ledgerSvc *ledger.Service
}

func NewHandler(importSvc *importer.Service, ledgerSvc *ledger.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		ledgerSvc: ledgerSvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/preview", h.preview)
	r.Post("/confirm", h.confirmImport)
}

type importSuccessResponse struct {
	Imported int                        `json:"imported"`
	Entries  []httpledger.EntryResponse `json:"entries"`
}

type conflictDTO struct {
	Incoming httpledger.PostRequest   `json:"incoming"`
	Existing httpledger.EntryResponse `json:"existing"`
}

type importConflictResponse struct {
	New       []httpledger.PostRequest `json:"new"`
	Conflicts []conflictDTO            `json:"conflicts"`
}

type confirmRequest struct {
	AccountID uuid.UUID                `json:"account_id"`
	Params    []httpledger.PostRequest `json:"params"`
}

type upload struct {
	bank      importer.Bank
	accountID uuid.UUID
}

// readUpload parses the multipart form and leaves the file for the caller.
func readUpload(w http.ResponseWriter, r *http.Request, needAccount bool) (upload, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return upload{}, false
	}

	up := upload{bank: importer.Bank(r.FormValue("bank"))}

	if !needAccount {
		return up, true
	}

	id, err := uuid.Parse(r.FormValue("account_id"))
	if err != nil {
		http.Error(w, "account_id field is required", http.StatusBadRequest)
		return upload{}, false
	}

	up.accountID = id

	return up, true
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	up, ok := readUpload(w, r, true)
	if !ok {
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), respond.UserID(r), up.accountID, up.bank, file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]httpledger.PostRequest, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}

		for _, p := range result.New {
			resp.New = append(resp.New, httpledger.ToPostRequest(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: httpledger.ToPostRequest(c.Incoming),
				Existing: httpledger.ToEntryResponse(c.Existing),
			})
		}

		respond.JSON(w, http.StatusConflict, resp)

		return
	}

	respond.JSON(w, http.StatusCreated, importSuccessResponse{
		Imported: len(result.Imported),
		Entries:  httpledger.ToEntryResponses(result.Imported),
	})
}

// preview parses a statement without posting it.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	up, ok := readUpload(w, r, false)
	if !ok {
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.importSvc.Parse(up.bank, file)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	resp := make([]httpledger.PostRequest, 0, len(rows))
	for _, p := range rows {
		resp = append(resp, httpledger.ToPostRequest(p))
	}

	respond.JSON(w, http.StatusOK, resp)
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if !respond.Decode(w, r, &req) {
		return
	}

	params := make([]ledger.PostParams, 0, len(req.Params))

	for _, p := range req.Params {
		pp, err := p.Params()
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		params = append(params, pp)
	}

	entries, err := h.ledgerSvc.CreateBatch(r.Context(), respond.UserID(r), req.AccountID, params)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, importSuccessResponse{
		Imported: len(entries),
		Entries:  httpledger.ToEntryResponses(entries),
	})
}
