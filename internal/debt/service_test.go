package debt_test

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

	"github.com/kritchasorn/lendger/internal/debt"
)

func TestService_Create(t *testing.T) {
	type args struct {
		params debt.CreateParams
	}

	type testCase struct {
		name      string
		args      args
		setupMock func(m *debt.MockRepository)
		wantErr   error
	}

	dueDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "Success",
			args: args{
				params: debt.CreateParams{
					BorrowerName:    "Somchai",
					PrincipalAmount: decimal.NewFromInt(1000),
					InterestAmount:  decimal.NewFromInt(250),
					DueDate:         dueDate,
				},
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().
					CreateDebt(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d *debt.Debt) error {
						d.ID = uuid.New()
						d.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "MissingBorrower",
			args: args{
				params: debt.CreateParams{
					PrincipalAmount: decimal.NewFromInt(1000),
					InterestAmount:  decimal.NewFromInt(250),
					DueDate:         dueDate,
				},
			},
			wantErr: debt.ErrBorrowerRequired,
		},
		{
			name: "NegativePrincipal",
			args: args{
				params: debt.CreateParams{
					BorrowerName:    "Somchai",
					PrincipalAmount: decimal.NewFromInt(-1),
					DueDate:         dueDate,
				},
			},
			wantErr: debt.ErrNegativeAmount,
		},
		{
			name: "MissingDueDate",
			args: args{
				params: debt.CreateParams{
					BorrowerName:    "Somchai",
					PrincipalAmount: decimal.NewFromInt(1000),
				},
			},
			wantErr: debt.ErrDueDateMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := debt.NewService(repo)
			got, err := svc.Create(context.Background(), tt.args.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			assert.NoError(t, err)
			require.NotNil(t, got)
			assert.NotEmpty(t, got.ID)
			assert.True(t, got.PaidPrincipal.IsZero())
			assert.True(t, got.PaidInterest.IsZero())
			assert.Zero(t, got.InterestOnlyPayments)
		})
	}
}

func TestService_List(t *testing.T) {
	paid := func() *debt.Debt {
		return &debt.Debt{
			ID:              uuid.New(),
			PrincipalAmount: decimal.NewFromInt(1000),
			InterestAmount:  decimal.NewFromInt(250),
			PaidPrincipal:   decimal.NewFromInt(1000),
			PaidInterest:    decimal.NewFromInt(250),
		}
	}
	partial := func() *debt.Debt {
		return &debt.Debt{
			ID:              uuid.New(),
			PrincipalAmount: decimal.NewFromInt(1000),
			InterestAmount:  decimal.NewFromInt(250),
			PaidPrincipal:   decimal.NewFromInt(400),
		}
	}
	unpaid := func() *debt.Debt {
		return &debt.Debt{
			ID:              uuid.New(),
			PrincipalAmount: decimal.NewFromInt(500),
			InterestAmount:  decimal.NewFromInt(50),
		}
	}

	type testCase struct {
		name    string
		filter  debt.ListFilter
		wantLen int
	}

	statusPartial := debt.StatusPartial
	statusUnpaid := debt.StatusUnpaid
	statusPaid := debt.StatusPaid

	tests := []testCase{
		{name: "All", filter: debt.ListFilter{}, wantLen: 3},
		{name: "HidePaid", filter: debt.ListFilter{HidePaid: true}, wantLen: 2},
		{name: "OnlyPartial", filter: debt.ListFilter{Status: &statusPartial}, wantLen: 1},
		{name: "OnlyUnpaid", filter: debt.ListFilter{Status: &statusUnpaid}, wantLen: 1},
		{name: "OnlyPaid", filter: debt.ListFilter{Status: &statusPaid}, wantLen: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			repo.EXPECT().
				ListDebts(gomock.Any()).
				Return([]*debt.Debt{paid(), partial(), unpaid()}, nil)

			svc := debt.NewService(repo)
			got, err := svc.List(context.Background(), tt.filter)

			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}

func TestService_RecordPayment(t *testing.T) {
	debtID := uuid.New()
	newDueDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	stored := func() *debt.Debt {
		return &debt.Debt{
			ID:              debtID,
			BorrowerName:    "Somchai",
			PrincipalAmount: decimal.NewFromInt(1000),
			InterestAmount:  decimal.NewFromInt(250),
			PaidPrincipal:   decimal.Zero,
			PaidInterest:    decimal.Zero,
			DueDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		}
	}

	type testCase struct {
		name      string
		params    debt.RecordPaymentParams
		setupMock func(m *debt.MockRepository)
		wantErr   error
		check     func(t *testing.T, d *debt.Debt, p *debt.Payment)
	}

	tests := []testCase{
		{
			name: "NormalPayment",
			params: debt.RecordPaymentParams{
				Principal: decimal.NewFromInt(400),
				Interest:  decimal.NewFromInt(100),
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(stored(), nil)
				m.EXPECT().
					RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, d *debt.Debt, p *debt.Payment) error {
						p.ID = uuid.New()
						p.CreatedAt = time.Now()
						return nil
					})
			},
			check: func(t *testing.T, d *debt.Debt, p *debt.Payment) {
				assert.Equal(t, "400", d.PaidPrincipal.String())
				assert.Equal(t, "100", d.PaidInterest.String())
				assert.NotEmpty(t, p.ID)
				assert.Equal(t, "600", p.RemainingPrincipal.String())
			},
		},
		{
			name: "InterestOnlyWithDueDate",
			params: debt.RecordPaymentParams{
				Principal:  decimal.Zero,
				Interest:   decimal.NewFromInt(250),
				NewDueDate: &newDueDate,
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(stored(), nil)
				m.EXPECT().
					RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			check: func(t *testing.T, d *debt.Debt, p *debt.Payment) {
				assert.Equal(t, 1, d.InterestOnlyPayments)
				assert.Equal(t, newDueDate, d.DueDate)
				assert.NotEmpty(t, p.Notes)
			},
		},
		{
			name: "InterestOnlyMissingDueDate",
			params: debt.RecordPaymentParams{
				Principal: decimal.Zero,
				Interest:  decimal.NewFromInt(250),
			},
			setupMock: func(m *debt.MockRepository) {
				// Validation fails after the load; nothing is written.
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(stored(), nil)
			},
			wantErr: debt.ErrDueDateRequired,
		},
		{
			name: "DebtMissing",
			params: debt.RecordPaymentParams{
				Principal: decimal.NewFromInt(100),
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(nil, debt.ErrNotFound)
			},
			wantErr: debt.ErrNotFound,
		},
		{
			name: "RepoError",
			params: debt.RecordPaymentParams{
				Principal: decimal.NewFromInt(100),
			},
			setupMock: func(m *debt.MockRepository) {
				m.EXPECT().GetDebt(gomock.Any(), debtID).Return(stored(), nil)
				m.EXPECT().
					RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: nil, // generic wrapped error
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := debt.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := debt.NewService(repo)
			d, p, err := svc.RecordPayment(context.Background(), debtID, tt.params)

			if tt.name == "RepoError" {
				assert.Error(t, err)
				return
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, d)
				assert.Nil(t, p)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, d)
			require.NotNil(t, p)

			if tt.check != nil {
				tt.check(t, d, p)
			}
		})
	}
}

func TestService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := debt.NewMockRepository(ctrl)
	repo.EXPECT().DeleteDebt(gomock.Any(), id).Return(nil)

	svc := debt.NewService(repo)
	assert.NoError(t, svc.Delete(context.Background(), id))
}
