package http

import (
	"fmt"
	"net/http"
	"strconv"

	"vehicle-market/domain"
	"vehicle-market/service"
)

type LoanHandler struct {
	service *service.LoanService
}

func NewLoanHandler(service *service.LoanService) *LoanHandler {
	return &LoanHandler{service: service}
}

// CalculateEMI handles POST /api/v1/emi.
func (h *LoanHandler) CalculateEMI(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.EMIRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	terms := req.Terms()
	result, err := h.service.Calculate(r.Context(), terms)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, domain.NewEMIResponse(service.NormalizeTerms(terms), result))
}

// Schedule handles GET /api/v1/emi/schedule?principal=&rate=&tenure=.
func (h *LoanHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	terms, err := termsFromQuery(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := h.service.Schedule(terms)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	terms = service.NormalizeTerms(terms)

	writeJSON(w, r, http.StatusOK, map[string]any{
		"principal": terms.Principal,
		"rate":      terms.AnnualRatePercent,
		"tenure":    terms.TenureMonths,
		"schedule":  rows,
	})
}

// TenureOptions handles POST /api/v1/emi/tenures.
func (h *LoanHandler) TenureOptions(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}

	var req domain.TenureOptionsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}

	options, err := h.service.TenureOptions(req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"options": options})
}

func termsFromQuery(r *http.Request) (domain.LoanTerms, error) {
	q := r.URL.Query()

	principal, err := strconv.ParseFloat(q.Get("principal"), 64)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("principal: %w", err)
	}
	rate, err := strconv.ParseFloat(q.Get("rate"), 64)
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("rate: %w", err)
	}
	tenure, err := strconv.Atoi(q.Get("tenure"))
	if err != nil {
		return domain.LoanTerms{}, fmt.Errorf("tenure: %w", err)
	}

	return domain.LoanTerms{
		Principal:         principal,
		AnnualRatePercent: rate,
		TenureMonths:      tenure,
	}, nil
}
