package license_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/MrJamesThe3rd/cofre/internal/license"
)

func TestAdminService_Issue(t *testing.T) {
	type testCase struct {
		name      string
		params    license.IssueParams
		setupMock func(m *license.MockAdminRepository)
		wantErr   error
	}

	valid := license.IssueParams{
		ClientName:  "Padaria Central",
		Price:       decimal.RequireFromString("197.00"),
		Origin:      "site",
		ProductType: "lifetime",
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *license.MockAdminRepository) {
				m.EXPECT().CreateLicense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, l *license.License) error {
						l.ID = "lic-1"
						return nil
					})
			},
		},
		{
			name:   "RetriesOnKeyCollision",
			params: valid,
			setupMock: func(m *license.MockAdminRepository) {
				gomock.InOrder(
					m.EXPECT().CreateLicense(gomock.Any(), gomock.Any()).Return(license.ErrDuplicateKey),
					m.EXPECT().CreateLicense(gomock.Any(), gomock.Any()).Return(nil),
				)
			},
		},
		{
			name:   "GivesUpAfterRepeatedCollisions",
			params: valid,
			setupMock: func(m *license.MockAdminRepository) {
				m.EXPECT().CreateLicense(gomock.Any(), gomock.Any()).Return(license.ErrDuplicateKey).Times(3)
			},
			wantErr: license.ErrDuplicateKey,
		},
		{
			name:      "MissingClientName",
			params:    license.IssueParams{ClientName: "  "},
			setupMock: func(*license.MockAdminRepository) {},
			wantErr:   license.ErrInvalid,
		},
		{
			name:      "NegativePrice",
			params:    license.IssueParams{ClientName: "X", Price: decimal.NewFromInt(-1)},
			setupMock: func(*license.MockAdminRepository) {},
			wantErr:   license.ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := license.NewMockAdminRepository(ctrl)
			tt.setupMock(repo)

			svc := license.NewAdminService(repo, zap.NewNop())

			lic, err := svc.Issue(context.Background(), tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, license.StatusActive, lic.Status)
			assert.False(t, lic.Bound())
			assert.Nil(t, lic.ActivatedAt)
			assert.Len(t, lic.Key, 19)
			assert.Equal(t, tt.params.ClientName, lic.ClientName)
		})
	}
}

func TestAdminService_Status(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := license.NewMockAdminRepository(ctrl)
	svc := license.NewAdminService(repo, zap.NewNop())
	ctx := context.Background()

	repo.EXPECT().SetStatus(gomock.Any(), testKey, license.StatusBlocked).Return(nil)
	require.NoError(t, svc.Block(ctx, "ab3defghjk2mnpqr"))

	repo.EXPECT().SetStatus(gomock.Any(), testKey, license.StatusActive).Return(nil)
	require.NoError(t, svc.Unblock(ctx, testKey))

	repo.EXPECT().SetStatus(gomock.Any(), testKey, license.StatusBlocked).Return(license.ErrNotFound)
	assert.ErrorIs(t, svc.Block(ctx, testKey), license.ErrNotFound)

	repo.EXPECT().ListLicenses(gomock.Any()).Return(nil, errors.New("boom"))
	_, err := svc.List(ctx)
	assert.Error(t, err)
}
