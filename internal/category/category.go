package category

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

var (
	ErrNotFound    = errors.New("category not found")
	ErrMissingName = errors.New("category name is required")
	ErrDuplicate   = errors.New("category already exists")
)

type Category struct {
	ID        uuid.UUID
	UserID    string
	Name      string
	Type      ledger.Type
	Order     int
	CreatedAt time.Time
}

// Defaults is the category set every user starts with, in display order.
var Defaults = map[ledger.Type][]string{
	ledger.TypeExpense:  {"Food", "Transport", "Shopping", "Medical", "Leisure", "Living", "Housing", "Etc"},
	ledger.TypeIncome:   {"Salary", "Bonus", "Interest/Dividend", "Side income", "Etc"},
	ledger.TypeTransfer: {"Transfer", "Savings"},
}

func defaultSet(userID string) []*Category {
	var out []*Category

	for _, t := range []ledger.Type{ledger.TypeExpense, ledger.TypeIncome, ledger.TypeTransfer} {
		for i, name := range Defaults[t] {
			out = append(out, &Category{UserID: userID, Name: name, Type: t, Order: i + 1})
		}
	}

	return out
}
