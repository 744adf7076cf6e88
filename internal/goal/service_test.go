package goal_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthfolio/internal/goal"
)

func TestYear_TotalNeeded(t *testing.T) {
	y := goal.Year{
		House:         decimal.NewFromInt(500000000),
		Car:           decimal.NewFromInt(40000000),
		Education:     decimal.NewFromInt(12000000),
		FamilyExpense: decimal.NewFromInt(36000000),
		Etc:           decimal.NewFromInt(2000000),
	}

	assert.True(t, decimal.NewFromInt(590000000).Equal(y.TotalNeeded()))
	assert.True(t, (&goal.Year{}).TotalNeeded().IsZero())
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    goal.Params
		setupMock func(m *goal.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: goal.Params{Year: 2030, Age: 40, House: decimal.NewFromInt(1)},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().CreateYear(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name:    "YearOutOfRange",
			params:  goal.Params{Year: 30},
			wantErr: goal.ErrInvalidYear,
		},
		{
			name:    "NegativeCost",
			params:  goal.Params{Year: 2030, Car: decimal.NewFromInt(-1)},
			wantErr: goal.ErrNegativeAmount,
		},
		{
			name:   "Duplicate",
			params: goal.Params{Year: 2030},
			setupMock: func(m *goal.MockRepository) {
				m.EXPECT().CreateYear(gomock.Any(), gomock.Any()).Return(goal.ErrDuplicateYear)
			},
			wantErr: goal.ErrDuplicateYear,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := goal.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := goal.NewService(repo)
			got, err := svc.Create(context.Background(), "user-1", tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.params.Year, got.Year)
		})
	}
}

func TestService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := goal.NewMockRepository(ctrl)
	repo.EXPECT().GetYear(gomock.Any(), "user-1", id).Return(&goal.Year{ID: id, UserID: "user-1", Year: 2030}, nil)
	repo.EXPECT().UpdateYear(gomock.Any(), gomock.Any()).Return(nil)

	svc := goal.NewService(repo)
	got, err := svc.Update(context.Background(), "user-1", id, goal.Params{Year: 2031, Age: 41})

	require.NoError(t, err)
	assert.Equal(t, 2031, got.Year)
	assert.Equal(t, 41, got.Age)
}
