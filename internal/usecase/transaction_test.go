package usecase_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"copro-billing/internal/domain"
	"copro-billing/internal/usecase"
	mock_usecase "copro-billing/internal/usecase/mocks"
)

func TestTransactionUseCase_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mTransactionRepo := mock_usecase.NewMockTransactionRepository(ctrl)
	mTransactionRepo.EXPECT().ListTransactions(gomock.Any(), "b1", 0).Return(testTransactions(), nil).Times(2)

	uc := usecase.NewTransactionUseCase(mTransactionRepo, nil, nil)
	got, err := uc.List(context.Background(), "b1", 2024)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	all, err := uc.List(context.Background(), "b1", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestTransactionUseCase_Create(t *testing.T) {
	tests := []struct {
		name       string
		tx         domain.Transaction
		owner      *domain.Owner
		exercise   *domain.Exercise
		wantType   domain.TransactionType
		wantAmount string
		wantErr    bool
		wantLocked bool
	}{
		{
			name:       "type derived from a negative amount",
			tx:         domain.Transaction{Date: day(2024, 5, 1), Amount: dec("-80"), Description: "Jardinier"},
			wantType:   domain.TransactionTypeCharge,
			wantAmount: "-80",
		},
		{
			name:       "positive charge is stored negative",
			tx:         domain.Transaction{Date: day(2024, 5, 1), Amount: dec("80"), Type: domain.TransactionTypeCharge},
			wantType:   domain.TransactionTypeCharge,
			wantAmount: "-80",
		},
		{
			name:       "deposit for an owner",
			tx:         domain.Transaction{Date: day(2024, 5, 1), Amount: dec("250"), OwnerID: strPtr("A")},
			owner:      &testOwners[0],
			wantType:   domain.TransactionTypeDeposit,
			wantAmount: "250",
		},
		{
			name:       "year with an open exercise",
			tx:         domain.Transaction{Date: day(2024, 6, 1), Amount: dec("500"), Counterparty: "LAMBERT MARC"},
			exercise:   &domain.Exercise{Year: 2024, Status: domain.ExerciseOpen},
			wantType:   domain.TransactionTypeDeposit,
			wantAmount: "500",
		},
		{
			name:       "year with a closed exercise",
			tx:         domain.Transaction{Date: day(2024, 6, 1), Amount: dec("500"), Counterparty: "LAMBERT MARC"},
			exercise:   &domain.Exercise{Year: 2024, Status: domain.ExerciseClosed},
			wantErr:    true,
			wantLocked: true,
		},
		{
			name:       "posting date in an archived exercise",
			tx:         domain.Transaction{PostingDate: timePtr(day(2023, 12, 30)), Amount: dec("-40")},
			exercise:   &domain.Exercise{Year: 2023, Status: domain.ExerciseArchived},
			wantErr:    true,
			wantLocked: true,
		},
		{
			name:    "owner of another building",
			tx:      domain.Transaction{Date: day(2024, 5, 1), Amount: dec("250"), OwnerID: strPtr("X")},
			owner:   &domain.Owner{ID: "X", BuildingID: "b2"},
			wantErr: true,
		},
		{
			name:    "zero amount without date",
			tx:      domain.Transaction{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mTransactionRepo := mock_usecase.NewMockTransactionRepository(ctrl)
			mOwnerRepo := mock_usecase.NewMockOwnerRepository(ctrl)
			mExerciseRepo := mock_usecase.NewMockExerciseRepository(ctrl)
			if tt.owner != nil {
				mOwnerRepo.EXPECT().GetOwner(gomock.Any(), tt.owner.ID).Return(tt.owner, nil)
			}
			switch {
			case tt.exercise != nil:
				mExerciseRepo.EXPECT().GetExercise(gomock.Any(), "b1", tt.exercise.Year).Return(tt.exercise, nil)
			case !tt.wantErr:
				mExerciseRepo.EXPECT().GetExercise(gomock.Any(), "b1", 2024).Return(nil, domain.ErrNotFound)
			}
			if !tt.wantErr {
				mTransactionRepo.EXPECT().InsertTransaction(gomock.Any(), gomock.Any()).Return(nil)
			}

			uc := usecase.NewTransactionUseCase(mTransactionRepo, mOwnerRepo, mExerciseRepo)
			got, err := uc.Create(context.Background(), "b1", tt.tx)
			if tt.wantLocked {
				assert.True(t, domain.IsPrecondition(err), "unexpected error %v", err)
				return
			}
			if tt.wantErr {
				assert.True(t, domain.IsValidation(err), "unexpected error %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, got.Type)
			assertAmount(t, tt.wantAmount, got.Amount)
			assert.Equal(t, domain.SourceManual, got.Source)
			assert.Equal(t, "b1", got.BuildingID)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestTransactionUseCase_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mTransactionRepo := mock_usecase.NewMockTransactionRepository(ctrl)
	mOwnerRepo := mock_usecase.NewMockOwnerRepository(ctrl)

	mExerciseRepo := mock_usecase.NewMockExerciseRepository(ctrl)

	stored := testTransactions()[2]
	mTransactionRepo.EXPECT().GetTransaction(gomock.Any(), "d2").Return(&stored, nil)
	mOwnerRepo.EXPECT().GetOwner(gomock.Any(), "B").Return(&testOwners[1], nil)
	mExerciseRepo.EXPECT().GetExercise(gomock.Any(), "b1", 2024).Return(nil, domain.ErrNotFound)
	mTransactionRepo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

	uc := usecase.NewTransactionUseCase(mTransactionRepo, mOwnerRepo, mExerciseRepo)
	category := "provision"
	got, err := uc.Update(context.Background(), "b1", "d2", domain.TransactionPatch{OwnerID: strPtr("B"), Category: &category})
	require.NoError(t, err)
	require.NotNil(t, got.OwnerID)
	assert.Equal(t, "B", *got.OwnerID)
	assert.Equal(t, "provision", got.Category)
	assert.Nil(t, stored.OwnerID, "stored copy is not modified")
}

func TestTransactionUseCase_UpdateSettledYear(t *testing.T) {
	closed := &domain.Exercise{Year: 2024, Status: domain.ExerciseClosed}

	t.Run("owner change is refused", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mTransactionRepo := mock_usecase.NewMockTransactionRepository(ctrl)
		mOwnerRepo := mock_usecase.NewMockOwnerRepository(ctrl)
		mExerciseRepo := mock_usecase.NewMockExerciseRepository(ctrl)

		stored := testTransactions()[2]
		mTransactionRepo.EXPECT().GetTransaction(gomock.Any(), "d2").Return(&stored, nil)
		mOwnerRepo.EXPECT().GetOwner(gomock.Any(), "B").Return(&testOwners[1], nil)
		mExerciseRepo.EXPECT().GetExercise(gomock.Any(), "b1", 2024).Return(closed, nil)

		uc := usecase.NewTransactionUseCase(mTransactionRepo, mOwnerRepo, mExerciseRepo)
		_, err := uc.Update(context.Background(), "b1", "d2", domain.TransactionPatch{OwnerID: strPtr("B")})
		assert.True(t, domain.IsPrecondition(err), "unexpected error %v", err)
	})

	t.Run("category change is allowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mTransactionRepo := mock_usecase.NewMockTransactionRepository(ctrl)
		mExerciseRepo := mock_usecase.NewMockExerciseRepository(ctrl)

		stored := testTransactions()[2]
		mTransactionRepo.EXPECT().GetTransaction(gomock.Any(), "d2").Return(&stored, nil)
		mTransactionRepo.EXPECT().UpdateTransaction(gomock.Any(), gomock.Any()).Return(nil)

		uc := usecase.NewTransactionUseCase(mTransactionRepo, nil, mExerciseRepo)
		category := "provision"
		got, err := uc.Update(context.Background(), "b1", "d2", domain.TransactionPatch{Category: &category})
		require.NoError(t, err)
		assert.Equal(t, "provision", got.Category)
	})
}
