package repository

import (
	"context"
	"sync"

	"vehicle-market/domain"
)

// LoanCalculation is one recorded EMI calculation.
type LoanCalculation struct {
	Terms  domain.LoanTerms
	Result domain.AmortizationResult
}

// LoanRepositoryMemory is an in-memory, bounded implementation of LoanRepository.
type LoanRepositoryMemory struct {
	mu    sync.Mutex
	limit int
	data  []LoanCalculation
}

// NewLoanRepositoryMemory creates a new in-memory loan repository keeping
// at most limit entries. limit <= 0 keeps everything.
func NewLoanRepositoryMemory(limit int) *LoanRepositoryMemory {
	return &LoanRepositoryMemory{
		limit: limit,
		data:  []LoanCalculation{},
	}
}

// Save stores the calculation in memory, evicting the oldest entry when full.
func (r *LoanRepositoryMemory) Save(
	_ context.Context,
	terms domain.LoanTerms,
	result domain.AmortizationResult,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data = append(r.data, LoanCalculation{Terms: terms, Result: result})
	if r.limit > 0 && len(r.data) > r.limit {
		r.data = r.data[len(r.data)-r.limit:]
	}
	return nil
}

// Recent returns up to n calculations, newest first.
func (r *LoanRepositoryMemory) Recent(n int) []LoanCalculation {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= 0 || n > len(r.data) {
		n = len(r.data)
	}
	out := make([]LoanCalculation, 0, n)
	for i := len(r.data) - 1; i >= len(r.data)-n; i-- {
		out = append(out, r.data[i])
	}
	return out
}
