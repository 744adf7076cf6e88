package portfolio_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/portfolio"
)

var fallback = decimal.NewFromInt(1400)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    portfolio.Params
		setupMock func(m *portfolio.MockRepository)
		verify    func(t *testing.T, st *portfolio.Stock)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "USDWithoutRateUsesFallback",
			params: portfolio.Params{
				Name:      "Apple",
				Code:      "aapl",
				UnitPrice: dec("150.5"),
				Quantity:  dec("10"),
				Currency:  currency.USD,
			},
			setupMock: func(m *portfolio.MockRepository) {
				m.EXPECT().CreateStock(gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, st *portfolio.Stock) {
				assert.Equal(t, "AAPL", st.Code)
				assert.Equal(t, portfolio.TradeBuy, st.TradeType)
				assert.True(t, st.ExchangeRate.Equal(fallback))
				assert.True(t, st.CurrentPrice.Equal(dec("150.5")))
				assert.True(t, st.Amount.Equal(dec("1505")))
				assert.True(t, st.AdjustedAvgPrice.Equal(dec("150.5")))
				assert.True(t, st.TotalAmount.Equal(dec("1505")))
				assert.True(t, st.TotalAmountKRW.Equal(dec("2107000")))
				assert.True(t, st.RealizedGain.IsZero())
			},
		},
		{
			name: "KRWForcesUnitRate",
			params: portfolio.Params{
				Name:         "Samsung",
				UnitPrice:    dec("70000"),
				Quantity:     dec("3"),
				Currency:     currency.KRW,
				ExchangeRate: dec("1350"),
				CurrentPrice: dec("72000"),
			},
			setupMock: func(m *portfolio.MockRepository) {
				m.EXPECT().CreateStock(gomock.Any(), gomock.Any()).Return(nil)
			},
			verify: func(t *testing.T, st *portfolio.Stock) {
				assert.True(t, st.ExchangeRate.Equal(decimal.NewFromInt(1)))
				assert.True(t, st.CurrentPrice.Equal(dec("72000")))
				assert.True(t, st.TotalAmountKRW.Equal(dec("210000")))
			},
		},
		{
			name:    "MissingName",
			params:  portfolio.Params{Quantity: dec("1")},
			wantErr: portfolio.ErrMissingName,
		},
		{
			name:    "ZeroQuantity",
			params:  portfolio.Params{Name: "X"},
			wantErr: portfolio.ErrInvalidQuantity,
		},
		{
			name:    "BadTradeType",
			params:  portfolio.Params{Name: "X", Quantity: dec("1"), TradeType: "short"},
			wantErr: portfolio.ErrInvalidTradeType,
		},
		{
			name:    "UnsupportedCurrency",
			params:  portfolio.Params{Name: "X", Quantity: dec("1"), Currency: "EUR"},
			wantErr: currency.ErrUnsupported,
		},
		{
			name:   "RepoError",
			params: portfolio.Params{Name: "X", Quantity: dec("1")},
			setupMock: func(m *portfolio.MockRepository) {
				m.EXPECT().CreateStock(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := portfolio.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := portfolio.NewService(repo, fallback)
			got, err := svc.Create(context.Background(), "user-1", tt.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "user-1", got.UserID)
			assert.False(t, got.PurchaseDate.IsZero())

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	existing := &portfolio.Stock{
		ID:        id,
		UserID:    "user-1",
		Name:      "Tesla",
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	repo := portfolio.NewMockRepository(ctrl)
	repo.EXPECT().GetStock(gomock.Any(), "user-1", id).Return(existing, nil)
	repo.EXPECT().
		UpdateStock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, st *portfolio.Stock) error {
			assert.Equal(t, id, st.ID)
			assert.True(t, st.Amount.Equal(dec("500")))
			return nil
		})

	svc := portfolio.NewService(repo, fallback)
	got, err := svc.Update(context.Background(), "user-1", id, portfolio.Params{
		Name:         "Tesla",
		UnitPrice:    dec("250"),
		Quantity:     dec("2"),
		ExchangeRate: dec("1380"),
	})

	require.NoError(t, err)
	assert.True(t, got.TotalAmountKRW.Equal(dec("690000")))
	assert.Equal(t, existing.CreatedAt, got.CreatedAt)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := portfolio.NewMockRepository(ctrl)
	repo.EXPECT().GetStock(gomock.Any(), "user-1", gomock.Any()).Return(nil, portfolio.ErrNotFound)

	svc := portfolio.NewService(repo, fallback)
	_, err := svc.Update(context.Background(), "user-1", uuid.New(), portfolio.Params{Name: "X", Quantity: dec("1")})

	assert.ErrorIs(t, err, portfolio.ErrNotFound)
}
