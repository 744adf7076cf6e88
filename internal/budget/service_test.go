package budget_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthfolio/internal/budget"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

func TestService_Set(t *testing.T) {
	type testCase struct {
		name      string
		month     string
		amount    decimal.Decimal
		cur       currency.Currency
		setupMock func(m *budget.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			month:  "2025-04",
			amount: decimal.NewFromInt(2000000),
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().
					UpsertBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *budget.Budget) error {
						assert.Equal(t, "2025-04", b.Month)
						assert.Equal(t, currency.KRW, b.Currency)
						return nil
					})
			},
		},
		{
			name:    "BadMonth",
			month:   "2025-13",
			amount:  decimal.NewFromInt(1),
			wantErr: budget.ErrInvalidMonth,
		},
		{
			name:    "FullDate",
			month:   "2025-04-01",
			amount:  decimal.NewFromInt(1),
			wantErr: budget.ErrInvalidMonth,
		},
		{
			name:    "Negative",
			month:   "2025-04",
			amount:  decimal.NewFromInt(-5),
			wantErr: budget.ErrNegativeAmount,
		},
		{
			name:    "UnsupportedCurrency",
			month:   "2025-04",
			amount:  decimal.NewFromInt(5),
			cur:     "JPY",
			wantErr: currency.ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := budget.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := budget.NewService(repo)
			got, err := svc.Set(context.Background(), "user-1", tt.month, tt.amount, tt.cur)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.amount.Equal(got.Amount))
		})
	}
}

func TestService_Get_NotSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := budget.NewMockRepository(ctrl)
	repo.EXPECT().GetBudget(gomock.Any(), "user-1", "2025-01").Return(nil, budget.ErrNotFound)

	svc := budget.NewService(repo)
	_, err := svc.Get(context.Background(), "user-1", "2025-01")

	assert.ErrorIs(t, err, budget.ErrNotFound)
}
