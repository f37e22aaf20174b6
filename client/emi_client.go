package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"vehicle-market/domain"
	"vehicle-market/service"
)

const (
	SourceRemote = "remote"
	SourceLocal  = "local"

	defaultTimeout = 5 * time.Second
	fallbackNotice = "EMI service unavailable, showing a locally calculated estimate"
)

// Quote is an EMI result together with where it came from. Warning is set
// when the remote service failed and the result was computed locally.
type Quote struct {
	Result  domain.AmortizationResult
	Source  string
	Warning string
}

// EMIClient calls a remote EMI endpoint and falls back to service.Compute
// when the endpoint cannot produce an answer.
type EMIClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewEMIClient(baseURL string, httpClient *http.Client) *EMIClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &EMIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Calculate never returns an error for transport or server failures; only
// invalid terms are reported as errors.
func (c *EMIClient) Calculate(ctx context.Context, terms domain.LoanTerms) (Quote, error) {
	if err := service.ValidateTerms(terms); err != nil {
		return Quote{}, err
	}

	result, err := c.callRemote(ctx, terms)
	if err == nil {
		return Quote{Result: result, Source: SourceRemote}, nil
	}

	slog.WarnContext(ctx, "remote emi calculation failed, using local formula", "error", err)

	local, err := service.Compute(terms)
	if err != nil {
		return Quote{}, err
	}
	return Quote{Result: local, Source: SourceLocal, Warning: fallbackNotice}, nil
}

func (c *EMIClient) callRemote(ctx context.Context, terms domain.LoanTerms) (domain.AmortizationResult, error) {
	body, err := json.Marshal(domain.EMIRequest{
		Principal: terms.Principal,
		Rate:      terms.AnnualRatePercent,
		Tenure:    terms.TenureMonths,
	})
	if err != nil {
		return domain.AmortizationResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/emi", bytes.NewReader(body))
	if err != nil {
		return domain.AmortizationResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.AmortizationResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.AmortizationResult{}, fmt.Errorf("emi service error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out domain.EMIResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return domain.AmortizationResult{}, fmt.Errorf("decode emi response: %w", err)
	}
	if err := checkResponse(terms, out); err != nil {
		return domain.AmortizationResult{}, err
	}
	return out.Result(), nil
}

// checkResponse rejects a response that does not answer the request that
// was sent or whose amounts are inconsistent with each other.
func checkResponse(terms domain.LoanTerms, out domain.EMIResponse) error {
	want := service.NormalizeTerms(terms)

	switch {
	case out.Tenure != want.TenureMonths:
		return fmt.Errorf("emi response is for tenure %d, requested %d", out.Tenure, want.TenureMonths)
	case out.Principal != want.Principal:
		return fmt.Errorf("emi response is for principal %.0f, requested %.0f", out.Principal, want.Principal)
	case out.EMI < 0 || out.TotalAmount < 0 || out.TotalInterest < 0:
		return errors.New("emi response has negative amounts")
	case want.Principal > 0 && out.EMI == 0:
		return errors.New("emi response has a zero installment for a non-zero principal")
	case out.TotalAmount-out.Principal != out.TotalInterest:
		return errors.New("emi response totals do not add up")
	}
	return nil
}
