package matching_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/wealthfolio/internal/ledger"
	"github.com/MrJamesThe3rd/wealthfolio/internal/matching"
)

func TestService_Learn(t *testing.T) {
	type testCase struct {
		name      string
		pattern   string
		category  string
		setupMock func(m *matching.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "Success",
			pattern:  " STARBUCKS ",
			category: "Food",
			setupMock: func(m *matching.MockRepository) {
				m.EXPECT().
					CreateMapping(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mp *matching.Mapping) error {
						assert.Equal(t, "STARBUCKS", mp.RawPattern)
						assert.Equal(t, "user-1", mp.UserID)
						return nil
					})
			},
		},
		{
			name:     "MissingPattern",
			category: "Food",
			wantErr:  matching.ErrMissingFields,
		},
		{
			name:    "MissingCategory",
			pattern: "UBER",
			wantErr: matching.ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := matching.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := matching.NewService(repo)
			_, err := svc.Learn(context.Background(), "user-1", tt.pattern, tt.category)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_Categorize(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().FindCategory(gomock.Any(), "user-1", "STARBUCKS GANGNAM").Return("Food", nil)
	repo.EXPECT().FindCategory(gomock.Any(), "user-1", "UNKNOWN SHOP").Return("", nil)

	rows := []ledger.PostParams{
		{RawDescription: "STARBUCKS GANGNAM"},
		{RawDescription: "UNKNOWN SHOP"},
		{RawDescription: "KTX", Category: "Transport"},
		{RawDescription: ""},
	}

	svc := matching.NewService(repo)
	require.NoError(t, svc.Categorize(context.Background(), "user-1", rows))

	assert.Equal(t, "Food", rows[0].Category)
	assert.Empty(t, rows[1].Category)
	assert.Equal(t, "Transport", rows[2].Category)
	assert.Empty(t, rows[3].Category)
}

func TestService_Categorize_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().FindCategory(gomock.Any(), "user-1", "X").Return("", errors.New("db error"))

	svc := matching.NewService(repo)
	err := svc.Categorize(context.Background(), "user-1", []ledger.PostParams{{RawDescription: "X"}})

	assert.Error(t, err)
}

func TestService_Suggest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().FindCategory(gomock.Any(), "user-1", "GS25 역삼점").Return("Food", nil)

	svc := matching.NewService(repo)

	got, err := svc.Suggest(context.Background(), "user-1", "GS25 역삼점")
	require.NoError(t, err)
	assert.Equal(t, "Food", got)

	got, err = svc.Suggest(context.Background(), "user-1", "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Forget(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := matching.NewMockRepository(ctrl)
	repo.EXPECT().DeleteMapping(gomock.Any(), "user-1", id).Return(matching.ErrNotFound)

	svc := matching.NewService(repo)
	assert.ErrorIs(t, svc.Forget(context.Background(), "user-1", id), matching.ErrNotFound)
}
