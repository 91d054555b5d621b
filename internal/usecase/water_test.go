package usecase_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copro-billing/internal/domain"
	"copro-billing/internal/usecase"
	mock_usecase "copro-billing/internal/usecase/mocks"
)

func TestWaterUseCase_RecordReading(t *testing.T) {
	meter := &domain.Meter{ID: "m1", BuildingID: "b1", Type: domain.MeterDivisionary}
	previous := dec("118")

	tests := []struct {
		name            string
		previous        *decimal.Decimal
		last            *domain.Reading
		current         string
		wantPrevious    string
		wantConsumption string
		wantAnomaly     bool
		wantErr         bool
	}{
		{
			name:            "previous index defaults to the last reading",
			last:            &domain.Reading{MeterID: "m1", CurrentIndex: dec("120.500")},
			current:         "135.250",
			wantPrevious:    "120.5",
			wantConsumption: "14.75",
		},
		{
			name:            "first reading starts from zero",
			current:         "12",
			wantPrevious:    "0",
			wantConsumption: "12",
		},
		{
			name:            "explicit previous index",
			previous:        &previous,
			current:         "120",
			wantPrevious:    "118",
			wantConsumption: "2",
		},
		{
			name:            "anomaly is stored and flagged",
			last:            &domain.Reading{MeterID: "m1", CurrentIndex: dec("10")},
			current:         "1500",
			wantPrevious:    "10",
			wantConsumption: "1490",
			wantAnomaly:     true,
		},
		{
			name:    "decreasing index is rejected",
			last:    &domain.Reading{MeterID: "m1", CurrentIndex: dec("50")},
			current: "40",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mWaterRepo := mock_usecase.NewMockWaterRepository(ctrl)
			mWaterRepo.EXPECT().GetMeter(gomock.Any(), "m1").Return(meter, nil)
			if tt.previous == nil {
				if tt.last != nil {
					mWaterRepo.EXPECT().LastReading(gomock.Any(), "m1").Return(tt.last, nil)
				} else {
					mWaterRepo.EXPECT().LastReading(gomock.Any(), "m1").Return(nil, domain.ErrNotFound)
				}
			}
			if !tt.wantErr {
				mWaterRepo.EXPECT().InsertReading(gomock.Any(), gomock.Any()).Return(nil)
			}

			uc := usecase.NewWaterUseCase(nil, nil, mWaterRepo, decimal.Zero, zerolog.Nop())
			got, check, err := uc.RecordReading(context.Background(), "b1", "m1", day(2024, 6, 30), tt.previous, dec(tt.current))

			if tt.wantErr {
				assert.True(t, domain.IsValidation(err))
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assertAmount(t, tt.wantPrevious, got.PreviousIndex)
			assertAmount(t, tt.wantConsumption, check.Consumption)
			assert.Equal(t, tt.wantAnomaly, check.Anomaly)
		})
	}
}

func TestWaterUseCase_Apportion_CollectiveFallsBackToOwners(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mBuildingRepo := mock_usecase.NewMockBuildingRepository(ctrl)
	mOwnerRepo := mock_usecase.NewMockOwnerRepository(ctrl)
	mWaterRepo := mock_usecase.NewMockWaterRepository(ctrl)

	from, to := day(2024, 1, 1), day(2024, 12, 31)
	mBuildingRepo.EXPECT().GetBuilding(gomock.Any(), "b1").
		Return(&domain.Building{ID: "b1", TotalShares: 1000, MeteringMode: domain.MeteringCollective}, nil)
	mWaterRepo.EXPECT().ListMeters(gomock.Any(), "b1").
		Return([]domain.Meter{{ID: "m0", BuildingID: "b1", Type: domain.MeterPrincipal}}, nil)
	mWaterRepo.EXPECT().ListReadings(gomock.Any(), "b1", from, to).
		Return([]domain.Reading{{ID: "r1", MeterID: "m0", Date: day(2024, 6, 30), PreviousIndex: dec("100"), CurrentIndex: dec("150")}}, nil)
	mOwnerRepo.EXPECT().ListOwners(gomock.Any(), "b1").Return(testOwners, nil)

	uc := usecase.NewWaterUseCase(mBuildingRepo, mOwnerRepo, mWaterRepo, decimal.Zero, zerolog.Nop())
	got, err := uc.Apportion(context.Background(), "b1", from, to, domain.Tariff{UnitPrice: dec("4"), FixedFee: dec("10")})
	require.NoError(t, err)

	assertAmount(t, "50", got.TotalConsumption)
	assertAmount(t, "220", got.TotalCost)
	require.Len(t, got.Lines, 2)
	total := decimal.Zero
	for _, l := range got.Lines {
		assertAmount(t, "110", l.Total)
		total = total.Add(l.Total)
	}
	assert.True(t, total.Equal(got.TotalCost))
}

func TestWaterUseCase_Apportion_InvalidPeriod(t *testing.T) {
	uc := usecase.NewWaterUseCase(nil, nil, nil, decimal.Zero, zerolog.Nop())
	_, err := uc.Apportion(context.Background(), "b1", day(2024, 12, 31), day(2024, 1, 1), domain.Tariff{})
	assert.True(t, domain.IsValidation(err))
}

func TestWaterUseCase_SaveMeter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mBuildingRepo := mock_usecase.NewMockBuildingRepository(ctrl)
	mOwnerRepo := mock_usecase.NewMockOwnerRepository(ctrl)
	mWaterRepo := mock_usecase.NewMockWaterRepository(ctrl)

	mBuildingRepo.EXPECT().GetBuilding(gomock.Any(), "b1").Return(&domain.Building{ID: "b1"}, nil).Times(2)
	mOwnerRepo.EXPECT().GetOwner(gomock.Any(), "A").Return(&testOwners[0], nil)
	mWaterRepo.EXPECT().SaveMeter(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewWaterUseCase(mBuildingRepo, mOwnerRepo, mWaterRepo, decimal.Zero, zerolog.Nop())
	got, err := uc.SaveMeter(context.Background(), "b1", domain.Meter{Serial: " 123 ", OwnerID: strPtr("A"), Headcount: 2})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, domain.MeterDivisionary, got.Type)
	assert.Equal(t, "123", got.Serial)

	_, err = uc.SaveMeter(context.Background(), "b1", domain.Meter{Type: "bogus"})
	assert.True(t, domain.IsValidation(err))
}
