// Package respond writes JSON bodies and maps domain errors to HTTP status
// codes for every handler under /api/v1.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/auth"
	"github.com/MrJamesThe3rd/wealthfolio/internal/budget"
	"github.com/MrJamesThe3rd/wealthfolio/internal/category"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/goal"
	"github.com/MrJamesThe3rd/wealthfolio/internal/importer"
	"github.com/MrJamesThe3rd/wealthfolio/internal/importer/statement"
	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/logger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/matching"
	"github.com/MrJamesThe3rd/wealthfolio/internal/networth"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
)

var badRequest = []error{
	account.ErrMissingField,
	currency.ErrUnsupported,
	ledger.ErrInvalidAmount,
	ledger.ErrInvalidType,
	ledger.ErrMissingAccount,
	ledger.ErrSameAccount,
	ledger.ErrCurrencyMismatch,
	ledger.ErrInvalidMonth,
	portfolio.ErrMissingName,
	portfolio.ErrInvalidTradeType,
	portfolio.ErrInvalidQuantity,
	portfolio.ErrNegativePrice,
	savings.ErrMissingBank,
	savings.ErrInvalidKind,
	savings.ErrInvalidAmount,
	savings.ErrInvalidRate,
	savings.ErrInvalidPeriod,
	insurance.ErrMissingCompany,
	insurance.ErrNegativeAmount,
	insurance.ErrEndBeforeJoin,
	category.ErrMissingName,
	budget.ErrInvalidMonth,
	budget.ErrNegativeAmount,
	goal.ErrInvalidYear,
	goal.ErrNegativeAmount,
	matching.ErrMissingFields,
	networth.ErrNegativeAmount,
	importer.ErrUnknownBank,
	statement.ErrNoFormat,
	statement.ErrMissingDescription,
	ErrInvalidDate,
}

var notFound = []error{
	account.ErrNotFound,
	ledger.ErrNotFound,
	ledger.ErrAccountNotFound,
	portfolio.ErrNotFound,
	savings.ErrNotFound,
	insurance.ErrNotFound,
	category.ErrNotFound,
	budget.ErrNotFound,
	goal.ErrNotFound,
	matching.ErrNotFound,
	networth.ErrNotFound,
}

var conflict = []error{
	category.ErrDuplicate,
	goal.ErrDuplicateYear,
}

// Status maps a service error to its HTTP status code.
func Status(err error) int {
	switch {
	case matchesAny(err, badRequest):
		return http.StatusBadRequest
	case matchesAny(err, notFound):
		return http.StatusNotFound
	case matchesAny(err, conflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func matchesAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}

	return false
}

// Error writes err with its mapped status. Server errors are logged and
// their details are not sent to the client.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

// JSON writes v as the response body with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Decode reads a JSON body into v, answering 400 on failure.
func Decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

// ID parses the {id} URL parameter, answering 400 when it is not a UUID.
func ID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return uuid.Nil, false
	}

	return id, true
}

// UserID returns the authenticated user. Routes are mounted behind the
// auth middleware, so a missing user is a wiring error.
func UserID(r *http.Request) string {
	id, _ := auth.UserID(r.Context())
	return id
}
