package importer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/importer/statement"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/logger"
)

var ErrUnknownBank = errors.New("unknown bank")

//go:generate mockgen -source=service.go -destination=service_mock.go -package=importer
type Categorizer interface {
	Categorize(ctx context.Context, userID string, rows []ledger.PostParams) error
}

type Poster interface {
	ImportBatch(ctx context.Context, userID string, accountID uuid.UUID, params []ledger.PostParams) (*ledger.ImportResult, error)
}

type Service struct {
	importers map[Bank]Importer
	matcher   Categorizer
	ledger    Poster
}

func NewService(matcher Categorizer, poster Poster) *Service {
	importers := map[Bank]Importer{
		BankAuto: statement.NewParser(),
	}

	for _, name := range statement.Names() {
		importers[Bank(name)] = statement.NewParser(name)
	}

	return &Service{
		importers: importers,
		matcher:   matcher,
		ledger:    poster,
	}
}

// Parse turns a statement into ledger rows without touching the database.
func (s *Service) Parse(bank Bank, r io.Reader) ([]ledger.PostParams, error) {
	if bank == "" {
		bank = BankAuto
	}

	imp, ok := s.importers[bank]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBank, bank)
	}

	return imp.Parse(r)
}

// Import parses a statement, pre-fills categories from learned mappings and
// posts every row into the account in one transaction. Rows that match
// existing entries are returned as conflicts instead.
func (s *Service) Import(ctx context.Context, userID string, accountID uuid.UUID, bank Bank, r io.Reader) (*ledger.ImportResult, error) {
	rows, err := s.Parse(bank, r)
	if err != nil {
		return nil, err
	}

	if err := s.matcher.Categorize(ctx, userID, rows); err != nil {
		// A failed lookup leaves rows uncategorized; the import still proceeds.
		logger.FromContext(ctx).Warn("categorize statement rows", "error", err)
	}

	result, err := s.ledger.ImportBatch(ctx, userID, accountID, rows)
	if err != nil {
		return nil, fmt.Errorf("import batch: %w", err)
	}

	logger.FromContext(ctx).Debug("statement imported",
		"bank", bank,
		"rows", len(rows),
		"imported", len(result.Imported),
		"conflicts", len(result.Conflicts),
	)

	return result, nil
}
