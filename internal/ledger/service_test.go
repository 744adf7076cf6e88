package ledger_test

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthfolio/internal/account"
	"github.com/MrJamesThe3rd/wealthfolio/internal/currency"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

const userID = "user-1"

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func cashAccount(id uuid.UUID, cur currency.Currency) *account.Account {
	return &account.Account{ID: id, UserID: userID, BankName: "Shinhan", AccountName: "Main", Currency: cur}
}

func TestDeltas(t *testing.T) {
	src := uuid.New()
	dst := uuid.New()

	tests := []struct {
		name  string
		entry ledger.Entry
		want  []ledger.Adjustment
	}{
		{
			name:  "Expense",
			entry: ledger.Entry{Type: ledger.TypeExpense, Amount: dec("1000"), AccountID: src},
			want:  []ledger.Adjustment{{AccountID: src, Delta: dec("-1000")}},
		},
		{
			name:  "Income",
			entry: ledger.Entry{Type: ledger.TypeIncome, Amount: dec("2500.5"), AccountID: src},
			want:  []ledger.Adjustment{{AccountID: src, Delta: dec("2500.5")}},
		},
		{
			name:  "Transfer",
			entry: ledger.Entry{Type: ledger.TypeTransfer, Amount: dec("300"), AccountID: src, ToAccountID: &dst},
			want: []ledger.Adjustment{
				{AccountID: src, Delta: dec("-300")},
				{AccountID: dst, Delta: dec("300")},
			},
		},
		{
			name:  "UnknownType",
			entry: ledger.Entry{Type: "refund", Amount: dec("1"), AccountID: src},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.Deltas(&tt.entry)
			require.Len(t, got, len(tt.want))

			for i := range tt.want {
				assert.Equal(t, tt.want[i].AccountID, got[i].AccountID)
				assert.True(t, tt.want[i].Delta.Equal(got[i].Delta), "got %s want %s", got[i].Delta, tt.want[i].Delta)
			}

			for i, inv := range ledger.Invert(got) {
				assert.True(t, inv.Delta.Add(got[i].Delta).IsZero())
			}
		})
	}
}

func TestService_Post_Validation(t *testing.T) {
	acc := uuid.New()
	nilID := uuid.Nil

	tests := []struct {
		name    string
		params  ledger.PostParams
		wantErr error
	}{
		{
			name:    "InvalidType",
			params:  ledger.PostParams{Type: "gift", Amount: dec("10"), AccountID: acc},
			wantErr: ledger.ErrInvalidType,
		},
		{
			name:    "ZeroAmount",
			params:  ledger.PostParams{Type: ledger.TypeExpense, Amount: decimal.Zero, AccountID: acc},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:    "NegativeAmount",
			params:  ledger.PostParams{Type: ledger.TypeIncome, Amount: dec("-5"), AccountID: acc},
			wantErr: ledger.ErrInvalidAmount,
		},
		{
			name:    "MissingAccount",
			params:  ledger.PostParams{Type: ledger.TypeExpense, Amount: dec("10")},
			wantErr: ledger.ErrMissingAccount,
		},
		{
			name:    "TransferWithoutDestination",
			params:  ledger.PostParams{Type: ledger.TypeTransfer, Amount: dec("10"), AccountID: acc},
			wantErr: ledger.ErrSameAccount,
		},
		{
			name:    "TransferToNilAccount",
			params:  ledger.PostParams{Type: ledger.TypeTransfer, Amount: dec("10"), AccountID: acc, ToAccountID: &nilID},
			wantErr: ledger.ErrSameAccount,
		},
		{
			name:    "TransferToSameAccount",
			params:  ledger.PostParams{Type: ledger.TypeTransfer, Amount: dec("10"), AccountID: acc, ToAccountID: &acc},
			wantErr: ledger.ErrSameAccount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No repository call is expected for invalid input.
			repo := ledger.NewMockRepository(ctrl)

			svc := ledger.NewService(repo)
			got, err := svc.Post(context.Background(), userID, tt.params)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, got)
		})
	}
}

func TestService_List_InvalidMonth(t *testing.T) {
	for _, month := range []string{"2024-13", "2024/03", "march"} {
		t.Run(month, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc := ledger.NewService(ledger.NewMockRepository(ctrl))
			got, err := svc.List(context.Background(), userID, ledger.ListFilter{Month: month})

			assert.ErrorIs(t, err, ledger.ErrInvalidMonth)
			assert.Nil(t, got)
		})
	}
}

func TestService_Post_Expense(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	ptx := ledger.NewMockPostingTx(ctrl)

	accID := uuid.New()
	date := time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

	repo.EXPECT().BeginPosting(gomock.Any()).Return(ptx, nil)
	ptx.EXPECT().LockAccount(gomock.Any(), userID, accID).Return(cashAccount(accID, currency.KRW), nil)
	ptx.EXPECT().
		AdjustBalance(gomock.Any(), userID, accID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ uuid.UUID, delta decimal.Decimal) error {
			assert.True(t, delta.Equal(dec("-12000")))
			return nil
		})
	ptx.EXPECT().
		CreateEntry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e *ledger.Entry) error {
			assert.Equal(t, "Shinhan Main", e.AccountName)
			assert.Equal(t, currency.KRW, e.Currency)
			assert.Equal(t, "Food", e.Category)
			assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), e.Date)
			assert.Nil(t, e.ToAccountID)

			e.ID = uuid.New()

			return nil
		})
	ptx.EXPECT().Commit().Return(nil)
	ptx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)
	got, err := svc.Post(context.Background(), userID, ledger.PostParams{
		Type:      ledger.TypeExpense,
		Date:      date,
		Amount:    dec("12000"),
		AccountID: accID,
		Category:  "  Food ",
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID)
}

func TestService_Post_RollsBackOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	ptx := ledger.NewMockPostingTx(ctrl)

	accID := uuid.New()

	repo.EXPECT().BeginPosting(gomock.Any()).Return(ptx, nil)
	ptx.EXPECT().LockAccount(gomock.Any(), userID, accID).Return(cashAccount(accID, currency.KRW), nil)
	ptx.EXPECT().AdjustBalance(gomock.Any(), userID, accID, gomock.Any()).Return(nil)
	ptx.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))
	ptx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)
	got, err := svc.Post(context.Background(), userID, ledger.PostParams{
		Type:      ledger.TypeIncome,
		Amount:    dec("500"),
		AccountID: accID,
	})

	assert.Error(t, err)
	assert.Nil(t, got)
}

func TestService_Post_TransferCurrencyMismatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	ptx := ledger.NewMockPostingTx(ctrl)

	src := uuid.New()
	dst := uuid.New()

	repo.EXPECT().BeginPosting(gomock.Any()).Return(ptx, nil)
	ptx.EXPECT().LockAccount(gomock.Any(), userID, src).Return(cashAccount(src, currency.KRW), nil)
	ptx.EXPECT().LockAccount(gomock.Any(), userID, dst).Return(cashAccount(dst, currency.USD), nil)
	ptx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)
	_, err := svc.Post(context.Background(), userID, ledger.PostParams{
		Type:        ledger.TypeTransfer,
		Amount:      dec("100"),
		AccountID:   src,
		ToAccountID: &dst,
	})

	assert.ErrorIs(t, err, ledger.ErrCurrencyMismatch)
}

func TestService_Delete(t *testing.T) {
	accID := uuid.New()
	entryID := uuid.New()

	type testCase struct {
		name      string
		setupMock func(repo *ledger.MockRepository, ptx *ledger.MockPostingTx)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(repo *ledger.MockRepository, ptx *ledger.MockPostingTx) {
				repo.EXPECT().BeginPosting(gomock.Any()).Return(ptx, nil)
				ptx.EXPECT().LockEntry(gomock.Any(), userID, entryID).Return(&ledger.Entry{
					ID: entryID, Type: ledger.TypeExpense, Amount: dec("700"), AccountID: accID,
				}, nil)
				ptx.EXPECT().LockAccount(gomock.Any(), userID, accID).Return(cashAccount(accID, currency.KRW), nil)
				ptx.EXPECT().
					AdjustBalance(gomock.Any(), userID, accID, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ uuid.UUID, delta decimal.Decimal) error {
						assert.True(t, delta.Equal(dec("700")))
						return nil
					})
				ptx.EXPECT().DeleteEntry(gomock.Any(), userID, entryID).Return(nil)
				ptx.EXPECT().Commit().Return(nil)
				ptx.EXPECT().Rollback().Return(nil)
			},
		},
		{
			name: "NotFound",
			setupMock: func(repo *ledger.MockRepository, ptx *ledger.MockPostingTx) {
				repo.EXPECT().BeginPosting(gomock.Any()).Return(ptx, nil)
				ptx.EXPECT().LockEntry(gomock.Any(), userID, entryID).Return(nil, ledger.ErrNotFound)
				ptx.EXPECT().Rollback().Return(nil)
			},
			wantErr: ledger.ErrNotFound,
		},
		{
			name: "BeginError",
			setupMock: func(repo *ledger.MockRepository, _ *ledger.MockPostingTx) {
				repo.EXPECT().BeginPosting(gomock.Any()).Return(nil, errors.New("pool exhausted"))
			},
			wantErr: errors.New("pool exhausted"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := ledger.NewMockRepository(ctrl)
			ptx := ledger.NewMockPostingTx(ctrl)
			tt.setupMock(repo, ptx)

			svc := ledger.NewService(repo)
			err := svc.Delete(context.Background(), userID, entryID)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_ImportBatch_Conflicts(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	ptx := ledger.NewMockPostingTx(ctrl)

	accID := uuid.New()
	date := time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC)

	existing := &ledger.Entry{
		ID:             uuid.New(),
		Type:           ledger.TypeExpense,
		Date:           date,
		Amount:         dec("10.00"),
		AccountID:      accID,
		RawDescription: "COFFEE",
	}

	repo.EXPECT().BeginImport(gomock.Any(), userID, accID).Return(ptx, nil)
	ptx.EXPECT().FindDuplicates(gomock.Any(), userID, accID, date, date.AddDate(0, 0, 1)).Return([]*ledger.Entry{existing}, nil)
	ptx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)
	res, err := svc.ImportBatch(context.Background(), userID, accID, []ledger.PostParams{
		{Type: ledger.TypeExpense, Date: date, Amount: dec("10.00"), RawDescription: "COFFEE"},
		{Type: ledger.TypeIncome, Date: date.AddDate(0, 0, 1), Amount: dec("50"), RawDescription: "SALARY"},
	})

	require.NoError(t, err)
	assert.Empty(t, res.Imported)
	require.Len(t, res.Conflicts, 1)
	assert.Equal(t, existing.ID, res.Conflicts[0].Existing.ID)
	require.Len(t, res.New, 1)
	assert.Equal(t, "SALARY", res.New[0].RawDescription)
}

func TestService_ImportBatch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := ledger.NewService(ledger.NewMockRepository(ctrl))
	res, err := svc.ImportBatch(context.Background(), userID, uuid.New(), nil)

	require.NoError(t, err)
	assert.Empty(t, res.Imported)
	assert.Empty(t, res.Conflicts)
}

func TestService_Update_LocksAllAccountsInOrderFirst(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	ptx := ledger.NewMockPostingTx(ctrl)

	a, b, c := uuid.New(), uuid.New(), uuid.New()
	entryID := uuid.New()

	var events []string

	repo.EXPECT().BeginPosting(gomock.Any()).Return(ptx, nil)
	ptx.EXPECT().LockEntry(gomock.Any(), userID, entryID).Return(&ledger.Entry{
		ID: entryID, Type: ledger.TypeTransfer, Amount: dec("500"), AccountID: b, ToAccountID: &a,
	}, nil)
	ptx.EXPECT().LockAccount(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, id uuid.UUID) (*account.Account, error) {
			events = append(events, "lock "+id.String())
			return cashAccount(id, currency.KRW), nil
		}).
		Times(3)
	ptx.EXPECT().AdjustBalance(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, id uuid.UUID, _ decimal.Decimal) error {
			events = append(events, "adjust "+id.String())
			return nil
		}).
		Times(4)
	ptx.EXPECT().UpdateEntry(gomock.Any(), gomock.Any()).Return(nil)
	ptx.EXPECT().Commit().Return(nil)
	ptx.EXPECT().Rollback().Return(nil)

	svc := ledger.NewService(repo)
	_, err := svc.Update(context.Background(), userID, entryID, ledger.PostParams{
		Type: ledger.TypeTransfer, Amount: dec("700"), AccountID: a, ToAccountID: &c,
	})
	require.NoError(t, err)

	want := []string{a.String(), b.String(), c.String()}
	slices.Sort(want)

	require.Len(t, events, 7)
	assert.Equal(t, []string{"lock " + want[0], "lock " + want[1], "lock " + want[2]}, events[:3])

	for _, ev := range events[3:] {
		assert.True(t, strings.HasPrefix(ev, "adjust "), ev)
	}
}
