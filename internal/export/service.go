package export

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/metrics"
)

type EntryLister interface {
	List(ctx context.Context, userID string, filter ledger.ListFilter) ([]*ledger.Entry, error)
}

// Service renders a month of ledger entries for download.
type Service struct {
	entries EntryLister
	now     func() time.Time
}

func NewService(entries EntryLister) *Service {
	return &Service{entries: entries, now: time.Now}
}

var csvHeader = []string{"date", "type", "account", "to_account", "category", "memo", "amount", "currency"}

// Entries returns every entry dated in month, oldest first.
func (s *Service) Entries(ctx context.Context, userID, month string) ([]*ledger.Entry, error) {
	entries, err := s.entries.List(ctx, userID, ledger.ListFilter{Month: month})
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}

	slices.Reverse(entries)

	return entries, nil
}

// WriteArchive writes a zip holding the month's ledger as CSV and a text summary.
func (s *Service) WriteArchive(ctx context.Context, userID, month string, w io.Writer) error {
	entries, err := s.Entries(ctx, userID, month)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	modified := s.now()

	f, err := zw.CreateHeader(&zip.FileHeader{Name: "ledger-" + month + ".csv", Method: zip.Deflate, Modified: modified})
	if err != nil {
		return fmt.Errorf("creating csv entry: %w", err)
	}

	if err := WriteCSV(f, entries); err != nil {
		return err
	}

	f, err = zw.CreateHeader(&zip.FileHeader{Name: "summary-" + month + ".txt", Method: zip.Deflate, Modified: modified})
	if err != nil {
		return fmt.Errorf("creating summary entry: %w", err)
	}

	if _, err := io.WriteString(f, Summary(entries, month)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("closing archive: %w", err)
	}

	return nil
}

func WriteCSV(w io.Writer, entries []*ledger.Entry) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.Date.Format(time.DateOnly),
			string(e.Type),
			e.AccountName,
			e.ToAccountName,
			e.Category,
			e.Memo,
			e.Amount.String(),
			string(e.Currency),
		}

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Summary renders income, expense and per-category spending for the month,
// one block per currency, followed by one line per entry.
func Summary(entries []*ledger.Entry, month string) string {
	byCurrency := make(map[currency.Currency][]*ledger.Entry)
	for _, e := range entries {
		byCurrency[e.Currency] = append(byCurrency[e.Currency], e)
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "Ledger %s\n", month)

	for _, cur := range slices.Sorted(maps.Keys(byCurrency)) {
		group := byCurrency[cur]
		st := metrics.Month(group, month)

		fmt.Fprintf(&sb, "\n[%s]\n", cur)
		fmt.Fprintf(&sb, "Income:  %s\n", currency.Format(st.Income, cur))
		fmt.Fprintf(&sb, "Expense: %s\n", currency.Format(st.Expense, cur))
		fmt.Fprintf(&sb, "Net:     %s\n", currency.Format(st.Net, cur))

		for _, c := range metrics.ExpenseByCategory(group, month) {
			fmt.Fprintf(&sb, "  %s: %s (%s%%)\n", c.Category, currency.Format(c.Amount, cur), c.Percent.StringFixed(1))
		}
	}

	if len(entries) > 0 {
		sb.WriteString("\nEntries\n")
	}

	for _, e := range entries {
		sign := "-"

		switch e.Type {
		case ledger.TypeIncome:
			sign = "+"
		case ledger.TypeTransfer:
			sign = ""
		}

		desc := e.Memo
		if desc == "" {
			desc = e.Category
		}

		account := e.AccountName
		if e.ToAccountName != "" {
			account += " -> " + e.ToAccountName
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s%s\n", e.Date.Format(time.DateOnly), account, desc, sign, currency.Format(e.Amount, e.Currency))
	}

	return sb.String()
}
