package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	GetEntry(ctx context.Context, userID string, id uuid.UUID) (*Entry, error)
	ListEntries(ctx context.Context, userID string, filter ListFilter) ([]*Entry, error)

	BeginPosting(ctx context.Context) (PostingTx, error)
	BeginImport(ctx context.Context, userID string, accountID uuid.UUID) (PostingTx, error)
}

// PostingTx is a database transaction in which balance adjustments and
// ledger writes succeed or fail together.
type PostingTx interface {
	LockAccount(ctx context.Context, userID string, id uuid.UUID) (*account.Account, error)
	AdjustBalance(ctx context.Context, userID string, accountID uuid.UUID, delta decimal.Decimal) error

	LockEntry(ctx context.Context, userID string, id uuid.UUID) (*Entry, error)
	CreateEntry(ctx context.Context, e *Entry) error
	UpdateEntry(ctx context.Context, e *Entry) error
	DeleteEntry(ctx context.Context, userID string, id uuid.UUID) error
	FindDuplicates(ctx context.Context, userID string, accountID uuid.UUID, minDate, maxDate time.Time) ([]*Entry, error)

	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

type PostParams struct {
	Type           Type
	Date           time.Time
	Amount         decimal.Decimal
	AccountID      uuid.UUID
	ToAccountID    *uuid.UUID
	Category       string
	Memo           string
	RawDescription string
}

const MonthLayout = "2006-01"

type ListFilter struct {
	Month     string // YYYY-MM
	AccountID *uuid.UUID
	Type      *Type
	Search    string
	Limit     int
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Entry, error) {
	return s.repo.GetEntry(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]*Entry, error) {
	if filter.Month != "" {
		if _, err := time.Parse(MonthLayout, filter.Month); err != nil {
			return nil, ErrInvalidMonth
		}
	}

	filter.Search = strings.TrimSpace(filter.Search)
	return s.repo.ListEntries(ctx, userID, filter)
}

// Post writes the entry and applies its balance deltas in one transaction.
func (s *Service) Post(ctx context.Context, userID string, params PostParams) (*Entry, error) {
	if err := s.normalize(&params); err != nil {
		return nil, err
	}

	ptx, err := s.repo.BeginPosting(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin posting: %w", err)
	}
	defer ptx.Rollback()

	e, err := s.post(ctx, ptx, userID, params)
	if err != nil {
		return nil, err
	}

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("commit posting: %w", err)
	}

	return e, nil
}

// Delete reverses the entry's balance deltas and removes it in one transaction.
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	ptx, err := s.repo.BeginPosting(ctx)
	if err != nil {
		return fmt.Errorf("begin posting: %w", err)
	}
	defer ptx.Rollback()

	e, err := ptx.LockEntry(ctx, userID, id)
	if err != nil {
		return err
	}

	if _, err := lockAccounts(ctx, ptx, userID, accountsOf(e.AccountID, e.ToAccountID)); err != nil {
		return err
	}

	if err := s.apply(ctx, ptx, userID, Invert(Deltas(e))); err != nil {
		return err
	}

	if err := ptx.DeleteEntry(ctx, userID, id); err != nil {
		return err
	}

	if err := ptx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}

	return nil
}

// Update replaces an entry. The old deltas are reversed and the new ones
// applied in the same transaction, so an edit that changes the amount,
// type or accounts leaves balances consistent.
func (s *Service) Update(ctx context.Context, userID string, id uuid.UUID, params PostParams) (*Entry, error) {
	if err := s.normalize(&params); err != nil {
		return nil, err
	}

	ptx, err := s.repo.BeginPosting(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin posting: %w", err)
	}
	defer ptx.Rollback()

	old, err := ptx.LockEntry(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	ids := append(accountsOf(old.AccountID, old.ToAccountID), accountsOf(params.AccountID, params.ToAccountID)...)

	locked, err := lockAccounts(ctx, ptx, userID, ids)
	if err != nil {
		return nil, err
	}

	if err := s.apply(ctx, ptx, userID, Invert(Deltas(old))); err != nil {
		return nil, err
	}

	e, err := s.write(ctx, ptx, userID, id, params, locked)
	if err != nil {
		return nil, err
	}

	e.CreatedAt = old.CreatedAt

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	return e, nil
}

type ImportResult struct {
	Imported  []*Entry
	New       []PostParams
	Conflicts []Conflict
}

type Conflict struct {
	Incoming PostParams
	Existing *Entry
}

type dupKey struct {
	Date           string
	Amount         string
	Type           Type
	RawDescription string
}

func keyOf(date time.Time, amount decimal.Decimal, t Type, raw string) dupKey {
	return dupKey{
		Date:           date.Format(time.DateOnly),
		Amount:         amount.String(),
		Type:           t,
		RawDescription: raw,
	}
}

// ImportBatch posts statement rows into one account. If any row matches an
// existing entry nothing is written and the conflicts are returned for review.
func (s *Service) ImportBatch(ctx context.Context, userID string, accountID uuid.UUID, params []PostParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	for i := range params {
		params[i].AccountID = accountID
		if err := s.normalize(&params[i]); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	ptx, err := s.repo.BeginImport(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer ptx.Rollback()

	minDate, maxDate := dateRange(params)

	existing, err := ptx.FindDuplicates(ctx, userID, accountID, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Entry, len(existing))
	for _, e := range existing {
		lookup[keyOf(e.Date, e.Amount, e.Type, e.RawDescription)] = e
	}

	var (
		newParams []PostParams
		conflicts []Conflict
	)

	for _, p := range params {
		if e, found := lookup[keyOf(p.Date, p.Amount, p.Type, p.RawDescription)]; found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: e})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	entries, err := s.postAll(ctx, ptx, userID, newParams)
	if err != nil {
		return nil, err
	}

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return &ImportResult{Imported: entries}, nil
}

// CreateBatch posts rows the user confirmed after an import conflict.
func (s *Service) CreateBatch(ctx context.Context, userID string, accountID uuid.UUID, params []PostParams) ([]*Entry, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for i := range params {
		params[i].AccountID = accountID
		if err := s.normalize(&params[i]); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}

	ptx, err := s.repo.BeginImport(ctx, userID, accountID)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer ptx.Rollback()

	entries, err := s.postAll(ctx, ptx, userID, params)
	if err != nil {
		return nil, err
	}

	if err := ptx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	return entries, nil
}

func (s *Service) postAll(ctx context.Context, ptx PostingTx, userID string, params []PostParams) ([]*Entry, error) {
	entries := make([]*Entry, 0, len(params))

	for _, p := range params {
		e, err := s.post(ctx, ptx, userID, p)
		if err != nil {
			return nil, err
		}

		entries = append(entries, e)
	}

	return entries, nil
}

// post locks the accounts, applies the deltas and writes a new entry.
func (s *Service) post(ctx context.Context, ptx PostingTx, userID string, p PostParams) (*Entry, error) {
	locked, err := lockAccounts(ctx, ptx, userID, accountsOf(p.AccountID, p.ToAccountID))
	if err != nil {
		return nil, err
	}

	return s.write(ctx, ptx, userID, uuid.Nil, p, locked)
}

func accountsOf(id uuid.UUID, to *uuid.UUID) []uuid.UUID {
	if to == nil {
		return []uuid.UUID{id}
	}

	return []uuid.UUID{id, *to}
}

// lockAccounts locks ids in ascending order. Callers adjust balances only
// after every account they touch is locked.
func lockAccounts(ctx context.Context, ptx PostingTx, userID string, ids []uuid.UUID) (map[uuid.UUID]*account.Account, error) {
	ids = slices.Clone(ids)
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })
	ids = slices.Compact(ids)

	locked := make(map[uuid.UUID]*account.Account, len(ids))

	for _, id := range ids {
		a, err := ptx.LockAccount(ctx, userID, id)
		if err != nil {
			return nil, err
		}

		locked[id] = a
	}

	return locked, nil
}

// write applies the deltas of p to accounts already locked and stores the
// entry. A non-nil id updates that entry instead of creating one.
func (s *Service) write(ctx context.Context, ptx PostingTx, userID string, id uuid.UUID, p PostParams, locked map[uuid.UUID]*account.Account) (*Entry, error) {
	src := locked[p.AccountID]

	e := &Entry{
		ID:             id,
		UserID:         userID,
		Type:           p.Type,
		Date:           p.Date,
		Amount:         p.Amount,
		AccountID:      p.AccountID,
		AccountName:    src.Label(),
		Currency:       src.Currency,
		Category:       p.Category,
		Memo:           p.Memo,
		RawDescription: p.RawDescription,
	}

	if p.ToAccountID != nil {
		dst := locked[*p.ToAccountID]
		if dst.Currency != src.Currency {
			return nil, ErrCurrencyMismatch
		}

		e.ToAccountID = p.ToAccountID
		e.ToAccountName = dst.Label()
	}

	if err := s.apply(ctx, ptx, userID, Deltas(e)); err != nil {
		return nil, err
	}

	if id == uuid.Nil {
		if err := ptx.CreateEntry(ctx, e); err != nil {
			return nil, err
		}

		return e, nil
	}

	if err := ptx.UpdateEntry(ctx, e); err != nil {
		return nil, err
	}

	return e, nil
}

func (s *Service) apply(ctx context.Context, ptx PostingTx, userID string, adjs []Adjustment) error {
	for _, a := range adjs {
		if err := ptx.AdjustBalance(ctx, userID, a.AccountID, a.Delta); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) normalize(p *PostParams) error {
	if !p.Type.Valid() {
		return ErrInvalidType
	}

	if !p.Amount.IsPositive() {
		return ErrInvalidAmount
	}

	if p.AccountID == uuid.Nil {
		return ErrMissingAccount
	}

	if p.Type == TypeTransfer {
		if p.ToAccountID == nil || *p.ToAccountID == uuid.Nil || *p.ToAccountID == p.AccountID {
			return ErrSameAccount
		}
	} else {
		p.ToAccountID = nil
	}

	if p.Date.IsZero() {
		p.Date = s.now()
	}

	p.Date = time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, time.UTC)
	p.Category = strings.TrimSpace(p.Category)
	p.Memo = strings.TrimSpace(p.Memo)

	return nil
}

func dateRange(params []PostParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}
