package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/http/respond"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

type EntryResponse struct {
	ID             uuid.UUID         `json:"id"`
	Type           ledger.Type       `json:"type"`
	Date           string            `json:"date"`
	Amount         decimal.Decimal   `json:"amount"`
	AccountID      uuid.UUID         `json:"account_id"`
	AccountName    string            `json:"account_name"`
	ToAccountID    *uuid.UUID        `json:"to_account_id,omitempty"`
	ToAccountName  string            `json:"to_account_name,omitempty"`
	Currency       currency.Currency `json:"currency"`
	Category       string            `json:"category"`
	Memo           string            `json:"memo"`
	RawDescription string            `json:"raw_description,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func ToEntryResponse(e *ledger.Entry) EntryResponse {
	return EntryResponse{
		ID:             e.ID,
		Type:           e.Type,
		Date:           e.Date.Format(time.DateOnly),
		Amount:         e.Amount,
		AccountID:      e.AccountID,
		AccountName:    e.AccountName,
		ToAccountID:    e.ToAccountID,
		ToAccountName:  e.ToAccountName,
		Currency:       e.Currency,
		Category:       e.Category,
		Memo:           e.Memo,
		RawDescription: e.RawDescription,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func ToEntryResponses(entries []*ledger.Entry) []EntryResponse {
	resp := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, ToEntryResponse(e))
	}

	return resp
}

// PostRequest is the JSON form of ledger.PostParams.
type PostRequest struct {
	Type           ledger.Type     `json:"type"`
	Date           string          `json:"date"`
	Amount         decimal.Decimal `json:"amount"`
	AccountID      uuid.UUID       `json:"account_id"`
	ToAccountID    *uuid.UUID      `json:"to_account_id,omitempty"`
	Category       string          `json:"category"`
	Memo           string          `json:"memo"`
	RawDescription string          `json:"raw_description,omitempty"`
}

func (p PostRequest) Params() (ledger.PostParams, error) {
	date, err := respond.ParseDate(p.Date)
	if err != nil {
		return ledger.PostParams{}, err
	}

	return ledger.PostParams{
		Type:           p.Type,
		Date:           date,
		Amount:         p.Amount,
		AccountID:      p.AccountID,
		ToAccountID:    p.ToAccountID,
		Category:       p.Category,
		Memo:           p.Memo,
		RawDescription: p.RawDescription,
	}, nil
}

func ToPostRequest(p ledger.PostParams) PostRequest {
	return PostRequest{
		Type:           p.Type,
		Date:           p.Date.Format(time.DateOnly),
		Amount:         p.Amount,
		AccountID:      p.AccountID,
		ToAccountID:    p.ToAccountID,
		Category:       p.Category,
		Memo:           p.Memo,
		RawDescription: p.RawDescription,
	}
}
