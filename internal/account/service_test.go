package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    account.CreateParams
		setupMock func(m *account.MockRepository)
		wantErr   error
		wantBank  string
		wantCur   currency.Currency
	}

	created := func(m *account.MockRepository) {
		m.EXPECT().
			CreateAccount(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, a *account.Account) error {
				a.ID = uuid.New()
				return nil
			})
	}

	tests := []testCase{
		{
			name:      "DefaultsToKRW",
			params:    account.CreateParams{BankName: " Shinhan ", AccountName: "Main", Balance: decimal.NewFromInt(1000)},
			setupMock: created,
			wantBank:  "Shinhan",
			wantCur:   currency.KRW,
		},
		{
			name:      "USD",
			params:    account.CreateParams{BankName: "Chase", AccountName: "Checking", Currency: currency.USD},
			setupMock: created,
			wantBank:  "Chase",
			wantCur:   currency.USD,
		},
		{
			name:    "MissingBank",
			params:  account.CreateParams{AccountName: "Main"},
			wantErr: account.ErrMissingField,
		},
		{
			name:    "BlankAccountName",
			params:  account.CreateParams{BankName: "KB", AccountName: "   "},
			wantErr: account.ErrMissingField,
		},
		{
			name:    "UnsupportedCurrency",
			params:  account.CreateParams{BankName: "B", AccountName: "A", Currency: "EUR"},
			wantErr: currency.ErrUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo)

			got, err := svc.Create(context.Background(), "user-1", tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.wantBank, got.BankName)
			assert.Equal(t, tt.wantCur, got.Currency)
			assert.Equal(t, "user-1", got.UserID)
		})
	}
}

func TestService_ScopedToUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().GetAccount(gomock.Any(), "bob", id).Return(nil, account.ErrNotFound)
	repo.EXPECT().DeleteAccount(gomock.Any(), "bob", id).Return(account.ErrNotFound)
	repo.EXPECT().ListAccounts(gomock.Any(), "alice").Return([]*account.Account{{ID: id, UserID: "alice"}}, nil)

	svc := account.NewService(repo)
	ctx := context.Background()

	_, err := svc.Get(ctx, "bob", id)
	assert.ErrorIs(t, err, account.ErrNotFound)

	err = svc.Delete(ctx, "bob", id)
	assert.ErrorIs(t, err, account.ErrNotFound)

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_Update(t *testing.T) {
	tests := []struct {
		name      string
		acc       *account.Account
		setupMock func(m *account.MockRepository)
		wantErr   error
	}{
		{
			name: "BalanceEdit",
			acc:  &account.Account{ID: uuid.New(), UserID: "alice", BankName: " KB ", AccountName: "Main", Balance: decimal.NewFromInt(5000)},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					UpdateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						assert.True(t, a.Balance.Equal(decimal.NewFromInt(5000)))
						assert.Equal(t, currency.KRW, a.Currency)
						assert.Equal(t, "KB Main", a.Label())

						return nil
					})
			},
		},
		{
			name:    "MissingName",
			acc:     &account.Account{ID: uuid.New(), UserID: "alice", BankName: "KB"},
			wantErr: account.ErrMissingField,
		},
		{
			name: "NotFound",
			acc:  &account.Account{ID: uuid.New(), UserID: "alice", BankName: "KB", AccountName: "Main"},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().UpdateAccount(gomock.Any(), gomock.Any()).Return(account.ErrNotFound)
			},
			wantErr: account.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			err := account.NewService(repo).Update(context.Background(), tt.acc)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
		})
	}
}
