package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSingle is one signed column; negative values are expenses.
	amountSingle amountMode = iota
	// amountSplit is separate withdrawal and deposit columns.
	amountSplit
	// amountCharge is a card statement column where positive values are
	// spending and negative values are refunds.
	amountCharge
)

// Profile describes the column layout of one statement export format.
type Profile struct {
	Name       string
	DateCol    string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // amountSingle and amountCharge
	DebitCol   string // amountSplit
	CreditCol  string // amountSplit
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSingle, amountCharge:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// Known export formats, most specific first.
var profiles = []Profile{
	{
		Name:       "kb",
		DateCol:    "거래일시",
		DescCol:    "적요",
		AmountMode: amountSplit,
		DebitCol:   "출금액",
		CreditCol:  "입금액",
	},
	{
		Name:       "shinhan",
		DateCol:    "거래일자",
		DescCol:    "내용",
		AmountMode: amountSplit,
		DebitCol:   "출금(원)",
		CreditCol:  "입금(원)",
	},
	{
		Name:       "card",
		DateCol:    "이용일",
		DescCol:    "가맹점명",
		AmountMode: amountCharge,
		AmountCol:  "이용금액",
	},
	{
		Name:       "generic",
		DateCol:    "Date",
		DescCol:    "Description",
		AmountMode: amountSingle,
		AmountCol:  "Amount",
	},
}

// Names lists the known profile names.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for _, p := range profiles {
		names = append(names, p.Name)
	}

	return names
}
