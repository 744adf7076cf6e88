package statement_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"

	"github.com/MrJamesThe3rd/wealthfolio/internal/importer/statement"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParser_KB(t *testing.T) {
	csv := `KB국민은행 거래내역조회
계좌번호,123-45-6789
조회기간,2026.03.01 ~ 2026.03.31

거래일시,적요,내용,출금액,입금액,잔액,거래점
2026.03.02 12:30:15,체크카드,스타벅스,"5,600",0,"1,994,400",영업부
2026.03.25 09:00:00,급여,주식회사 예시,0,"3,200,000","5,194,400",영업부
합계,,,"5,600","3,200,000",,
`

	rows, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, date(2026, 3, 2), rows[0].Date)
	assert.Equal(t, "체크카드", rows[0].RawDescription)
	assert.True(t, dec("5600").Equal(rows[0].Amount))
	assert.Equal(t, ledger.TypeExpense, rows[0].Type)

	assert.Equal(t, date(2026, 3, 25), rows[1].Date)
	assert.True(t, dec("3200000").Equal(rows[1].Amount))
	assert.Equal(t, ledger.TypeIncome, rows[1].Type)
}

func TestParser_ShinhanEUCKR(t *testing.T) {
	csv := "거래일자,거래시간,내용,출금(원),입금(원),잔액(원)\n" +
		"2026-03-05,08:10,지하철,1450,,98550\n" +
		"2026-03-06,19:40,이자,,120,98670\n"

	encoded, err := korean.EUCKR.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	rows, err := statement.NewParser("shinhan").Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "지하철", rows[0].RawDescription)
	assert.Equal(t, rows[0].RawDescription, rows[0].Memo)
	assert.Equal(t, ledger.TypeExpense, rows[0].Type)
	assert.True(t, dec("1450").Equal(rows[0].Amount))

	assert.Equal(t, "이자", rows[1].RawDescription)
	assert.Equal(t, ledger.TypeIncome, rows[1].Type)
}

func TestParser_CardCharges(t *testing.T) {
	csv := `이용일,이용카드,가맹점명,이용금액,할부개월
2026/03/10,본인,쿠팡,"32,900원",일시불
2026/03/11,본인,쿠팡 환불,"-12,000원",
`

	rows, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, ledger.TypeExpense, rows[0].Type)
	assert.True(t, dec("32900").Equal(rows[0].Amount))

	assert.Equal(t, ledger.TypeIncome, rows[1].Type)
	assert.True(t, dec("12000").Equal(rows[1].Amount))
}

func TestParser_GenericSemicolon(t *testing.T) {
	csv := "Date;Description;Amount\n2026-03-01;AMAZON.COM;-12.50\n2026-03-02;PAYROLL;(3.00)\n2026-03-03;DIVIDEND;4.25\n"

	rows, err := statement.NewParser("generic").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, ledger.TypeExpense, rows[0].Type)
	assert.True(t, dec("12.5").Equal(rows[0].Amount))
	assert.Equal(t, ledger.TypeExpense, rows[1].Type)
	assert.True(t, dec("3").Equal(rows[1].Amount))
	assert.Equal(t, ledger.TypeIncome, rows[2].Type)
}

func TestParser_DifferentColumnOrder(t *testing.T) {
	csv := `Amount,Ignored,Description,Date
-10.00,x,TEST_ORDER,20260130
`

	rows, err := statement.NewParser().Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "TEST_ORDER", rows[0].RawDescription)
	assert.Equal(t, date(2026, 1, 30), rows[0].Date)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		parser  *statement.Parser
		input   string
		wantErr string
	}{
		{name: "empty file", parser: statement.NewParser(), input: "", wantErr: "no matching statement format"},
		{name: "unknown header", parser: statement.NewParser(), input: "a,b,c\n1,2,3\n", wantErr: "no matching statement format"},
		{
			name:    "profile not selected",
			parser:  statement.NewParser("kb"),
			input:   "Date,Description,Amount\n2026-03-01,X,1\n",
			wantErr: "kb",
		},
		{
			name:    "missing description",
			parser:  statement.NewParser(),
			input:   "Date,Description,Amount\n2026-03-01,,-1\n",
			wantErr: "row 2: missing description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.parser.Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParser_SkipsZeroAndHeaderOnly(t *testing.T) {
	rows, err := statement.NewParser().Parse(strings.NewReader("Date,Description,Amount\n2026-03-01,NOTHING,0\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)

	rows, err = statement.NewParser().Parse(strings.NewReader("거래일시,적요,출금액,입금액\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"kb", "shinhan", "card", "generic"}, statement.Names())
}
