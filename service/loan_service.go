package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"vehicle-market/domain"
	"vehicle-market/repository"
)

type LoanService struct {
	repo     repository.LoanRepository
	cache    repository.CacheRepository
	cacheTTL time.Duration
}

// NewLoanService creates a new LoanService. A nil cache disables memoization.
func NewLoanService(
	repo repository.LoanRepository,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
) *LoanService {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &LoanService{repo: repo, cache: cache, cacheTTL: cacheTTL}
}

func emiCacheKey(terms domain.LoanTerms) string {
	return fmt.Sprintf("%s:%s:%s:%d",
		emiCacheKeyPrefix,
		strconv.FormatFloat(terms.Principal, 'f', -1, 64),
		strconv.FormatFloat(terms.AnnualRatePercent, 'f', -1, 64),
		terms.TenureMonths,
	)
}

// Calculate validates terms and returns the amortization result, served
// from the cache when an identical calculation was done recently.
func (s *LoanService) Calculate(
	ctx context.Context,
	terms domain.LoanTerms,
) (domain.AmortizationResult, error) {

	if err := ValidateTerms(terms); err != nil {
		return domain.AmortizationResult{}, err
	}
	terms = NormalizeTerms(terms)

	key := emiCacheKey(terms)
	if cached, ok := s.lookup(ctx, key); ok {
		return cached, nil
	}

	result, err := Compute(terms)
	if err != nil {
		return domain.AmortizationResult{}, err
	}

	s.store(ctx, key, result)

	// Guardar el cálculo (no crítico si falla)
	if s.repo != nil {
		if err := s.repo.Save(ctx, terms, result); err != nil {
			slog.WarnContext(ctx, "failed to save emi calculation", "error", err)
		}
	}

	return result, nil
}

func (s *LoanService) lookup(ctx context.Context, key string) (domain.AmortizationResult, bool) {
	if s.cache == nil {
		return domain.AmortizationResult{}, false
	}
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.AmortizationResult{}, false
	}
	var result domain.AmortizationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		slog.WarnContext(ctx, "discarding unreadable cached emi result", "key", key, "error", err)
		return domain.AmortizationResult{}, false
	}
	return result, true
}

func (s *LoanService) store(ctx context.Context, key string, result domain.AmortizationResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		slog.WarnContext(ctx, "failed to cache emi result", "key", key, "error", err)
	}
}

// Schedule returns the month-by-month amortization table for terms.
func (s *LoanService) Schedule(terms domain.LoanTerms) ([]domain.Installment, error) {
	return Schedule(terms)
}

// TenureOptions returns the installment table for the requested tenures.
func (s *LoanService) TenureOptions(req domain.TenureOptionsRequest) ([]domain.TenureOption, error) {
	return TenureOptions(req.Principal, req.Rate, req.Tenures, req.MaxEMI)
}
