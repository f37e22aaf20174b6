package service

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"vehicle-market/domain"
)

// roundCurrency rounds to the nearest whole currency unit, halves away from zero.
func roundCurrency(value float64) float64 {
	return decimal.NewFromFloat(value).Round(0).InexactFloat64()
}

// ValidateTerms rejects terms the amortization formula is not defined for.
func ValidateTerms(terms domain.LoanTerms) error {
	switch {
	case math.IsNaN(terms.Principal) || math.IsInf(terms.Principal, 0):
		return fmt.Errorf("%w: principal must be a finite number", domain.ErrInvalidInput)
	case terms.Principal < 0:
		return fmt.Errorf("%w: principal must not be negative", domain.ErrInvalidInput)
	case terms.Principal > MaxPrincipal:
		return fmt.Errorf("%w: principal exceeds the maximum of %.0f", domain.ErrInvalidInput, MaxPrincipal)
	case math.IsNaN(terms.AnnualRatePercent) || math.IsInf(terms.AnnualRatePercent, 0):
		return fmt.Errorf("%w: rate must be a finite number", domain.ErrInvalidInput)
	case terms.AnnualRatePercent < 0:
		return fmt.Errorf("%w: rate must not be negative", domain.ErrInvalidInput)
	case terms.AnnualRatePercent > MaxAnnualRate:
		return fmt.Errorf("%w: rate exceeds the maximum of %.0f%%", domain.ErrInvalidInput, MaxAnnualRate)
	case terms.TenureMonths < MinTenureMonths:
		return fmt.Errorf("%w: tenure must be at least %d month", domain.ErrInvalidInput, MinTenureMonths)
	case terms.TenureMonths > MaxTenureMonths:
		return fmt.Errorf("%w: tenure exceeds the maximum of %d months", domain.ErrInvalidInput, MaxTenureMonths)
	}
	return nil
}

// NormalizeTerms rounds the principal to whole currency units. Every
// amount derived from the terms is then a whole number, so
// TotalPayment - Principal == TotalInterest holds exactly.
func NormalizeTerms(terms domain.LoanTerms) domain.LoanTerms {
	terms.Principal = roundCurrency(terms.Principal)
	return terms
}

func monthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 12 / 100
}

// installment returns the unrounded fixed monthly payment.
func installment(terms domain.LoanTerms) float64 {
	r := monthlyRate(terms.AnnualRatePercent)
	n := float64(terms.TenureMonths)

	if r == 0 {
		return terms.Principal / n
	}

	growth := math.Pow(1+r, n)
	return terms.Principal * r * growth / (growth - 1)
}

// Compute calculates the equated monthly installment for terms. It is the
// only implementation of the formula; the service, the HTTP handler and the
// client fallback all go through it.
func Compute(terms domain.LoanTerms) (domain.AmortizationResult, error) {
	if err := ValidateTerms(terms); err != nil {
		return domain.AmortizationResult{}, err
	}

	terms = NormalizeTerms(terms)
	emi := installment(terms)
	total := roundCurrency(emi * float64(terms.TenureMonths))

	return domain.AmortizationResult{
		MonthlyInstallment: roundCurrency(emi),
		TotalPayment:       total,
		TotalInterest:      total - terms.Principal,
	}, nil
}

// Schedule breaks the loan down month by month. The final row absorbs
// any floating point residue so the closing balance is exactly zero.
func Schedule(terms domain.LoanTerms) ([]domain.Installment, error) {
	if err := ValidateTerms(terms); err != nil {
		return nil, err
	}

	terms = NormalizeTerms(terms)
	r := monthlyRate(terms.AnnualRatePercent)
	emi := installment(terms)
	balance := terms.Principal

	rows := make([]domain.Installment, 0, terms.TenureMonths)
	for month := 1; month <= terms.TenureMonths; month++ {
		interest := balance * r
		principalPart := emi - interest
		payment := emi

		if month == terms.TenureMonths {
			principalPart = balance
			payment = principalPart + interest
		}
		balance -= principalPart
		if balance < 0 {
			balance = 0
		}

		rows = append(rows, domain.Installment{
			Month:     month,
			Payment:   roundCurrency(payment),
			Principal: roundCurrency(principalPart),
			Interest:  roundCurrency(interest),
			Balance:   roundCurrency(balance),
		})
	}

	return rows, nil
}

// TenureOptions computes the installment for each tenure, skipping those
// whose installment is above maxInstallment when maxInstallment > 0.
func TenureOptions(
	principal float64,
	annualRatePercent float64,
	tenures []int,
	maxInstallment float64,
) ([]domain.TenureOption, error) {
	if len(tenures) == 0 {
		tenures = DefaultTenures
	}
	if len(tenures) > MaxTenureOptions {
		return nil, fmt.Errorf("%w: at most %d tenures may be compared", domain.ErrInvalidInput, MaxTenureOptions)
	}
	if maxInstallment < 0 || math.IsNaN(maxInstallment) {
		return nil, fmt.Errorf("%w: maximum installment must not be negative", domain.ErrInvalidInput)
	}

	options := make([]domain.TenureOption, 0, len(tenures))
	for _, tenure := range tenures {
		terms := domain.LoanTerms{
			Principal:         principal,
			AnnualRatePercent: annualRatePercent,
			TenureMonths:      tenure,
		}
		result, err := Compute(terms)
		if err != nil {
			return nil, err
		}
		if maxInstallment > 0 && result.MonthlyInstallment > maxInstallment {
			continue
		}
		options = append(options, domain.TenureOption{
			TenureMonths:       tenure,
			MonthlyInstallment: result.MonthlyInstallment,
			TotalInterest:      result.TotalInterest,
			TotalPayment:       result.TotalPayment,
		})
	}

	return options, nil
}
