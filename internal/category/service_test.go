package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthfolio/internal/category"
	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
)

func TestService_EnsureDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().
		SeedCategories(gomock.Any(), "user-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, userID string, cats []*category.Category) (bool, error) {
			require.Len(t, cats, 15)

			assert.Equal(t, "Food", cats[0].Name)
			assert.Equal(t, ledger.TypeExpense, cats[0].Type)
			assert.Equal(t, 1, cats[0].Order)

			assert.Equal(t, "Etc", cats[7].Name)
			assert.Equal(t, 8, cats[7].Order)

			assert.Equal(t, "Salary", cats[8].Name)
			assert.Equal(t, ledger.TypeIncome, cats[8].Type)
			assert.Equal(t, 1, cats[8].Order)

			assert.Equal(t, "Savings", cats[14].Name)
			assert.Equal(t, ledger.TypeTransfer, cats[14].Type)
			assert.Equal(t, 2, cats[14].Order)

			for _, c := range cats {
				assert.Equal(t, userID, c.UserID)
			}

			return true, nil
		})

	svc := category.NewService(repo)
	seeded, err := svc.EnsureDefaults(context.Background(), "user-1")

	require.NoError(t, err)
	assert.True(t, seeded)
}

var errSeed = errors.New("seed failed")

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		catName   string
		catType   ledger.Type
		setupMock func(m *category.MockRepository)
		wantOrder int
		wantErr   error
	}

	tests := []testCase{
		{
			name:    "AppendsAfterMax",
			catName: " Pets ",
			catType: ledger.TypeExpense,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().SeedCategories(gomock.Any(), "user-1", gomock.Any()).Return(false, nil)
				m.EXPECT().MaxOrder(gomock.Any(), "user-1", ledger.TypeExpense).Return(8, nil)
				m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantOrder: 9,
		},
		{
			name:    "FirstOfType",
			catName: "Gift",
			catType: ledger.TypeIncome,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().SeedCategories(gomock.Any(), "user-1", gomock.Any()).Return(false, nil)
				m.EXPECT().MaxOrder(gomock.Any(), "user-1", ledger.TypeIncome).Return(0, nil)
				m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantOrder: 1,
		},
		{
			name:    "NewUserSeedsDefaultsFirst",
			catName: "Pets",
			catType: ledger.TypeExpense,
			setupMock: func(m *category.MockRepository) {
				gomock.InOrder(
					m.EXPECT().SeedCategories(gomock.Any(), "user-1", gomock.Len(15)).Return(true, nil),
					m.EXPECT().MaxOrder(gomock.Any(), "user-1", ledger.TypeExpense).Return(8, nil),
					m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
			wantOrder: 9,
		},
		{
			name:    "SeedFails",
			catName: "Pets",
			catType: ledger.TypeExpense,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().SeedCategories(gomock.Any(), "user-1", gomock.Any()).Return(false, errSeed)
			},
			wantErr: errSeed,
		},
		{
			name:    "EmptyName",
			catName: "  ",
			catType: ledger.TypeExpense,
			wantErr: category.ErrMissingName,
		},
		{
			name:    "BadType",
			catName: "X",
			catType: "loan",
			wantErr: ledger.ErrInvalidType,
		},
		{
			name:    "Duplicate",
			catName: "Food",
			catType: ledger.TypeExpense,
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().SeedCategories(gomock.Any(), "user-1", gomock.Any()).Return(false, nil)
				m.EXPECT().MaxOrder(gomock.Any(), "user-1", ledger.TypeExpense).Return(8, nil)
				m.EXPECT().CreateCategory(gomock.Any(), gomock.Any()).Return(category.ErrDuplicate)
			},
			wantErr: category.ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := category.NewService(repo)
			got, err := svc.Create(context.Background(), "user-1", tt.catName, tt.catType)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOrder, got.Order)
			assert.Equal(t, "user-1", got.UserID)
		})
	}
}

func TestService_List_SeedError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := category.NewMockRepository(ctrl)
	repo.EXPECT().SeedCategories(gomock.Any(), "user-1", gomock.Any()).Return(false, errors.New("db down"))

	svc := category.NewService(repo)
	_, err := svc.List(context.Background(), "user-1", nil)

	assert.Error(t, err)
}
