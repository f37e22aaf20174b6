package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vehicle-market/domain"
	"vehicle-market/repository"
	"vehicle-market/service"
)

func newTestLoanHandler() *LoanHandler {
	repo := repository.NewLoanRepositoryMemory(10)
	cache := repository.NewMemoryCache(time.Minute, time.Minute)
	return NewLoanHandler(service.NewLoanService(repo, cache, time.Minute))
}

func TestCalculateEMIHandler_OK(t *testing.T) {
	handler := newTestLoanHandler()

	body := []byte(`{
		"principal": 100000,
		"rate": 8.5,
		"tenure": 24
	}`)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emi", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CalculateEMI(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp domain.EMIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, domain.EMIResponse{
		EMI:           4546,
		TotalAmount:   109094,
		TotalInterest: 9094,
		Principal:     100000,
		Rate:          8.5,
		Tenure:        24,
	}, resp)
}

func TestCalculateEMIHandler_ZeroRate(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emi",
		bytes.NewBufferString(`{"principal":120000,"rate":0,"tenure":12}`))
	w := httptest.NewRecorder()

	handler.CalculateEMI(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.EMIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 10000.0, resp.EMI)
	assert.Equal(t, 0.0, resp.TotalInterest)
}

func TestCalculateEMIHandler_MethodNotAllowed(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/emi", nil)
	w := httptest.NewRecorder()

	handler.CalculateEMI(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestCalculateEMIHandler_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{invalid-json}`},
		{"negative principal", `{"principal":-5,"rate":10,"tenure":12}`},
		{"negative rate", `{"principal":5000,"rate":-1,"tenure":12}`},
		{"zero tenure", `{"principal":5000,"rate":10,"tenure":0}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestLoanHandler()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/emi", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.CalculateEMI(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var resp errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestScheduleHandler(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/emi/schedule?principal=120000&rate=0&tenure=12", nil)
	w := httptest.NewRecorder()

	handler.Schedule(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Tenure   int                  `json:"tenure"`
		Schedule []domain.Installment `json:"schedule"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Tenure)
	require.Len(t, resp.Schedule, 12)
	assert.Equal(t, 0.0, resp.Schedule[11].Balance)
}

func TestScheduleHandler_BadQuery(t *testing.T) {
	handler := newTestLoanHandler()

	for _, target := range []string{
		"/api/v1/emi/schedule?principal=abc&rate=1&tenure=12",
		"/api/v1/emi/schedule?principal=1000&rate=1",
		"/api/v1/emi/schedule?principal=1000&rate=1&tenure=0",
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()

		handler.Schedule(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
}

func TestTenureOptionsHandler(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emi/tenures",
		bytes.NewBufferString(`{"principal":120000,"rate":0,"tenures":[6,12,24],"maxEmi":10000}`))
	w := httptest.NewRecorder()

	handler.TenureOptions(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Options []domain.TenureOption `json:"options"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Options, 2)
	assert.Equal(t, 12, resp.Options[0].TenureMonths)
	assert.Equal(t, 5000.0, resp.Options[1].MonthlyInstallment)
}

func TestCalculateEMIHandler_FractionalPrincipal(t *testing.T) {
	handler := newTestLoanHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/emi",
		bytes.NewBufferString(`{"principal":100.5,"rate":0,"tenure":1}`))
	w := httptest.NewRecorder()

	handler.CalculateEMI(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp domain.EMIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 101.0, resp.Principal)
	assert.Equal(t, 0.0, resp.TotalInterest)
	assert.Equal(t, resp.TotalAmount-resp.Principal, resp.TotalInterest)
}
