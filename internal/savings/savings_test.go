package savings_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/savings"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDeposit_Mature(t *testing.T) {
	tests := []struct {
		name        string
		deposit     savings.Deposit
		wantPreTax  string
		wantPostTax string
	}{
		{
			name:        "TaxedOneYear",
			deposit:     savings.Deposit{Amount: dec("10000000"), InterestRate: dec("3.5"), PeriodMonths: 12},
			wantPreTax:  "10350000",
			wantPostTax: "10296100",
		},
		{
			name:        "TaxFreeSixMonths",
			deposit:     savings.Deposit{Amount: dec("1000000"), InterestRate: dec("4"), PeriodMonths: 6, TaxFree: true},
			wantPreTax:  "1020000",
			wantPostTax: "1020000",
		},
		{
			name:        "ZeroRate",
			deposit:     savings.Deposit{Amount: dec("500"), PeriodMonths: 24},
			wantPreTax:  "500",
			wantPostTax: "500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.deposit
			d.Mature()

			assert.True(t, dec(tt.wantPreTax).Equal(d.MaturityAmountPreTax), "pre-tax %s", d.MaturityAmountPreTax)
			assert.True(t, dec(tt.wantPostTax).Equal(d.MaturityAmountPostTax), "post-tax %s", d.MaturityAmountPostTax)
			assert.True(t, d.MaturityAmountOriginal.Equal(d.MaturityAmountPreTax))
		})
	}
}

func TestService_Create(t *testing.T) {
	join := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	type testCase struct {
		name      string
		params    savings.Params
		setupMock func(m *savings.MockRepository)
		verify    func(t *testing.T, d *savings.Deposit)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "DefaultsApplied",
			params: savings.Params{BankName: " Woori ", JoinDate: join, InterestRate: dec("3"), Amount: dec("1200000")},
			setupMock: func(m *savings.MockRepository) {
				m.EXPECT().CreateDeposit(gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, d *savings.Deposit) {
				assert.Equal(t, "Woori", d.BankName)
				assert.Equal(t, savings.KindDeposit, d.Kind)
				assert.Equal(t, savings.DefaultPeriodMonths, d.PeriodMonths)
				assert.Equal(t, currency.KRW, d.Currency)
				assert.True(t, d.ExchangeRate.Equal(decimal.NewFromInt(1)))
				require.NotNil(t, d.MaturityDate)
				assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *d.MaturityDate)
				assert.True(t, dec("1236000").Equal(d.MaturityAmountPreTax))
			},
		},
		{
			name:   "USDFallbackRate",
			params: savings.Params{BankName: "Citi", Amount: dec("1000"), Currency: currency.USD, PeriodMonths: 3},
			setupMock: func(m *savings.MockRepository) {
				m.EXPECT().CreateDeposit(gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, d *savings.Deposit) {
				assert.True(t, d.ExchangeRate.Equal(decimal.NewFromInt(1400)))
				assert.Nil(t, d.MaturityDate)
			},
		},
		{
			name:    "MissingBank",
			params:  savings.Params{Amount: dec("1")},
			wantErr: savings.ErrMissingBank,
		},
		{
			name:    "InvalidKind",
			params:  savings.Params{BankName: "A", Kind: "bond", Amount: dec("1")},
			wantErr: savings.ErrInvalidKind,
		},
		{
			name:    "ZeroPrincipal",
			params:  savings.Params{BankName: "A"},
			wantErr: savings.ErrInvalidAmount,
		},
		{
			name:    "NegativeRate",
			params:  savings.Params{BankName: "A", Amount: dec("1"), InterestRate: dec("-1")},
			wantErr: savings.ErrInvalidRate,
		},
		{
			name:    "NegativePeriod",
			params:  savings.Params{BankName: "A", Amount: dec("1"), PeriodMonths: -3},
			wantErr: savings.ErrInvalidPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := savings.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := savings.NewService(repo, decimal.NewFromInt(1400))
			got, err := svc.Create(context.Background(), "user-1", tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}
