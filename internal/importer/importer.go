package importer

import (
	"io"

	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

// Bank selects the statement format. BankAuto tries every known format.
type Bank string

const (
	BankAuto    Bank = "auto"
	BankKB      Bank = "kb"
	BankShinhan Bank = "shinhan"
	BankCard    Bank = "card"
	BankGeneric Bank = "generic"
)

type Importer interface {
	Parse(r io.Reader) ([]ledger.PostParams, error)
}
