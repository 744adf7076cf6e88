package insurance_test

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

	"github.com/MrJamesThe3rd/wealthfolio/internal/insurance"
)

func TestService_Create(t *testing.T) {
	join := time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC)
	before := join.AddDate(-1, 0, 0)

	type testCase struct {
		name      string
		params    insurance.Params
		setupMock func(m *insurance.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: insurance.Params{
				Company:        "Samsung Life",
				JoinDate:       join,
				MonthlyPayment: decimal.NewFromInt(80000),
				TotalPayment:   decimal.NewFromInt(4800000),
			},
			setupMock: func(m *insurance.MockRepository) {
				m.EXPECT().
					CreatePolicy(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *insurance.Policy) error {
						p.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "MissingCompany",
			params:  insurance.Params{Company: "   "},
			wantErr: insurance.ErrMissingCompany,
		},
		{
			name:    "NegativePayment",
			params:  insurance.Params{Company: "A", MonthlyPayment: decimal.NewFromInt(-1)},
			wantErr: insurance.ErrNegativeAmount,
		},
		{
			name:    "EndBeforeJoin",
			params:  insurance.Params{Company: "A", JoinDate: join, EndDate: &before},
			wantErr: insurance.ErrEndBeforeJoin,
		},
		{
			name:   "RepoError",
			params: insurance.Params{Company: "A"},
			setupMock: func(m *insurance.MockRepository) {
				m.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := insurance.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := insurance.NewService(repo)
			got, err := svc.Create(context.Background(), "user-1", tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, "user-1", got.UserID)
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := insurance.NewMockRepository(ctrl)
	repo.EXPECT().DeletePolicy(gomock.Any(), "user-1", id).Return(insurance.ErrNotFound)

	svc := insurance.NewService(repo)
	err := svc.Delete(context.Background(), "user-1", id)

	assert.ErrorIs(t, err, insurance.ErrNotFound)
}
