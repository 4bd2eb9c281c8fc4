package debt_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/kritchasorn/lendger/internal/debt"
	debtHandler "github.com/kritchasorn/lendger/internal/http/debt"
)

func newTestServer(t *testing.T) (*debt.MockRepository, *httptest.Server) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := debt.NewMockRepository(ctrl)

	h := debtHandler.NewHandler(debt.NewService(repo))

	router := chi.NewRouter()
	router.Route("/debts", h.Routes)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return repo, ts
}

func TestHandler_Create(t *testing.T) {
	repo, ts := newTestServer(t)

	repo.EXPECT().
		CreateDebt(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *debt.Debt) error {
			d.ID = uuid.New()
			d.CreatedAt = time.Now()
			return nil
		})

	body := `{"borrower_name":"Somchai","principal_amount":1000,"interest_amount":250,"due_date":"2025-06-01"}`

	resp, err := http.Post(ts.URL+"/debts", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, "Somchai", got["borrower_name"])
	assert.Equal(t, "unpaid", got["status"])
	assert.Equal(t, "2025-06-01", got["due_date"])
}

func TestHandler_CreateValidation(t *testing.T) {
	_, ts := newTestServer(t)

	body := `{"principal_amount":1000,"interest_amount":250,"due_date":"2025-06-01"}`

	resp, err := http.Post(ts.URL+"/debts", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_List(t *testing.T) {
	repo, ts := newTestServer(t)

	repo.EXPECT().
		ListDebts(gomock.Any()).
		Return([]*debt.Debt{
			{
				ID:              uuid.New(),
				BorrowerName:    "Somchai",
				PrincipalAmount: decimal.NewFromInt(1000),
				InterestAmount:  decimal.NewFromInt(250),
				PaidPrincipal:   decimal.NewFromInt(400),
				PaidInterest:    decimal.Zero,
				DueDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				CreatedDate:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			},
		}, nil)

	resp, err := http.Get(ts.URL + "/debts")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var got []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got, 1)

	// Decimal amounts marshal as quoted strings.
	assert.Equal(t, "partial", got[0]["status"])
	assert.Equal(t, "600", got[0]["remaining_principal"])
	assert.Equal(t, "250", got[0]["remaining_interest"])
	assert.Equal(t, "1250", got[0]["total_amount"])
}

func TestHandler_GetNotFound(t *testing.T) {
	repo, ts := newTestServer(t)

	id := uuid.New()
	repo.EXPECT().GetDebt(gomock.Any(), id).Return(nil, debt.ErrNotFound)

	resp, err := http.Get(ts.URL + "/debts/" + id.String())
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHandler_RecordPaymentInterestOnlyNeedsDueDate(t *testing.T) {
	repo, ts := newTestServer(t)

	id := uuid.New()
	repo.EXPECT().GetDebt(gomock.Any(), id).Return(&debt.Debt{
		ID:              id,
		BorrowerName:    "Somchai",
		PrincipalAmount: decimal.NewFromInt(1000),
		InterestAmount:  decimal.NewFromInt(250),
	}, nil)

	body := `{"principal_payment":0,"interest_payment":250}`

	resp, err := http.Post(ts.URL+"/debts/"+id.String()+"/payments", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHandler_RecordPayment(t *testing.T) {
	repo, ts := newTestServer(t)

	id := uuid.New()
	repo.EXPECT().GetDebt(gomock.Any(), id).Return(&debt.Debt{
		ID:              id,
		BorrowerName:    "Somchai",
		PrincipalAmount: decimal.NewFromInt(1000),
		InterestAmount:  decimal.NewFromInt(250),
		DueDate:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}, nil)
	repo.EXPECT().
		RecordPayment(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d *debt.Debt, p *debt.Payment) error {
			p.ID = uuid.New()
			p.CreatedAt = time.Now()
			return nil
		})

	body := `{"principal_payment":0,"interest_payment":250,"new_due_date":"2025-07-01"}`

	resp, err := http.Post(ts.URL+"/debts/"+id.String()+"/payments", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var got struct {
		Debt    map[string]any `json:"debt"`
		Payment map[string]any `json:"payment"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))

	assert.Equal(t, "2025-07-01", got.Debt["due_date"])
	assert.Equal(t, float64(1), got.Debt["interest_only_payments"])
	assert.NotEmpty(t, got.Payment["notes"])
}

func TestHandler_Delete(t *testing.T) {
	repo, ts := newTestServer(t)

	id := uuid.New()
	repo.EXPECT().DeleteDebt(gomock.Any(), id).Return(nil)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/debts/"+id.String(), nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
