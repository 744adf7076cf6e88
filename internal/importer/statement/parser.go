package statement

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/wealthfolio/internal/encoding"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

var (
	ErrNoFormat           = errors.New("no matching statement format")
	ErrMissingDescription = errors.New("missing description")
)

var delimiters = []rune{',', '\t', ';'}

var dateLayouts = []string{
	"2006.01.02",
	"2006-01-02",
	"2006/01/02",
	"20060102",
	"2006.1.2",
}

// Parser reads bank and card CSV exports and produces ledger rows. The
// format is detected by matching the header row against known profiles.
type Parser struct {
	profiles []Profile
}

// NewParser returns a parser restricted to the named profiles, or one that
// tries every known profile when no names are given.
func NewParser(names ...string) *Parser {
	if len(names) == 0 {
		return &Parser{profiles: profiles}
	}

	var selected []Profile

	for _, p := range profiles {
		if slices.Contains(names, p.Name) {
			selected = append(selected, p)
		}
	}

	return &Parser{profiles: selected}
}

func (p *Parser) Parse(r io.Reader) ([]ledger.PostParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}

	for _, delim := range delimiters {
		rows, err := readRows(data, delim)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := p.detectProfile(rows)
		if profile == nil {
			continue
		}

		return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
	}

	return nil, fmt.Errorf("%w: expected columns for %s", ErrNoFormat, strings.Join(p.names(), ", "))
}

func (p *Parser) names() []string {
	names := make([]string, 0, len(p.profiles))
	for _, pr := range p.profiles {
		names = append(names, pr.Name)
	}

	return names
}

func readRows(data []byte, delim rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	return reader.ReadAll()
}

// colIndex maps column names to their index in the row.
type colIndex map[string]int

func (p *Parser) detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.TrimSpace(cell)
			if name != "" {
				cols[name] = i
			}
		}

		for i := range p.profiles {
			if matchesProfile(&p.profiles[i], cols) {
				return &p.profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows extracts ledger rows after the header. Rows without a readable
// date are footers or subtotals and are skipped.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]ledger.PostParams, error) {
	dateIdx := cols[p.DateCol]
	descIdx := cols[p.DescCol]

	var out []ledger.PostParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 1

		date, ok := parseDate(cellValue(row, dateIdx))
		if !ok {
			continue
		}

		amount, typ, ok := rowAmount(p, cols, row)
		if !ok {
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: %w", rowNum, ErrMissingDescription)
		}

		out = append(out, ledger.PostParams{
			Type:           typ,
			Date:           date,
			Amount:         amount,
			Memo:           desc,
			RawDescription: desc,
		})
	}

	return out, nil
}

// parseDate accepts a date optionally followed by a time of day.
func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	day, _, _ := strings.Cut(s, " ")

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, day); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func rowAmount(p *Profile, cols colIndex, row []string) (decimal.Decimal, ledger.Type, bool) {
	switch p.AmountMode {
	case amountSingle:
		return signedAmount(cellValue(row, cols[p.AmountCol]), false)
	case amountCharge:
		return signedAmount(cellValue(row, cols[p.AmountCol]), true)
	case amountSplit:
		return splitAmount(cellValue(row, cols[p.DebitCol]), cellValue(row, cols[p.CreditCol]))
	}

	return decimal.Zero, "", false
}

// signedAmount maps a signed value to income or expense. For card
// statements the sign is reversed: a positive charge is spending.
func signedAmount(s string, charge bool) (decimal.Decimal, ledger.Type, bool) {
	d, ok := nonZero(s)
	if !ok {
		return decimal.Zero, "", false
	}

	expense := d.IsNegative()
	if charge {
		expense = !expense
	}

	if expense {
		return d.Abs(), ledger.TypeExpense, true
	}

	return d.Abs(), ledger.TypeIncome, true
}

func splitAmount(debit, credit string) (decimal.Decimal, ledger.Type, bool) {
	if d, ok := nonZero(debit); ok {
		return d.Abs(), ledger.TypeExpense, true
	}

	if d, ok := nonZero(credit); ok {
		return d.Abs(), ledger.TypeIncome, true
	}

	return decimal.Zero, "", false
}

func nonZero(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
