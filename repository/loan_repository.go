package repository

import (
	"context"

	"vehicle-market/domain"
)

//go:generate mockgen -destination=mocks/mock_loan_repository.go -package=mocks -source=loan_repository.go

// LoanRepository records EMI calculations served to clients.
type LoanRepository interface {
	Save(ctx context.Context, terms domain.LoanTerms, result domain.AmortizationResult) error
}
