package domain

// LoanTerms are the inputs of an EMI calculation.
type LoanTerms struct {
	Principal         float64
	AnnualRatePercent float64
	TenureMonths      int
}

// AmortizationResult holds the derived amounts, rounded to whole currency units.
type AmortizationResult struct {
	MonthlyInstallment float64
	TotalInterest      float64
	TotalPayment       float64
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

type TenureOption struct {
	TenureMonths       int     `json:"tenure"`
	MonthlyInstallment float64 `json:"emi"`
	TotalInterest      float64 `json:"totalInterest"`
	TotalPayment       float64 `json:"totalAmount"`
}

// EMIRequest is the JSON body accepted by the EMI endpoint.
type EMIRequest struct {
	Principal float64 `json:"principal"`
	Rate      float64 `json:"rate"`
	Tenure    int     `json:"tenure"`
}

func (r EMIRequest) Terms() LoanTerms {
	return LoanTerms{
		Principal:         r.Principal,
		AnnualRatePercent: r.Rate,
		TenureMonths:      r.Tenure,
	}
}

// EMIResponse is the JSON body returned by the EMI endpoint.
type EMIResponse struct {
	EMI           float64 `json:"emi"`
	TotalAmount   float64 `json:"totalAmount"`
	TotalInterest float64 `json:"totalInterest"`
	Principal     float64 `json:"principal"`
	Rate          float64 `json:"rate"`
	Tenure        int     `json:"tenure"`
}

func NewEMIResponse(terms LoanTerms, result AmortizationResult) EMIResponse {
	return EMIResponse{
		EMI:           result.MonthlyInstallment,
		TotalAmount:   result.TotalPayment,
		TotalInterest: result.TotalInterest,
		Principal:     terms.Principal,
		Rate:          terms.AnnualRatePercent,
		Tenure:        terms.TenureMonths,
	}
}

func (r EMIResponse) Result() AmortizationResult {
	return AmortizationResult{
		MonthlyInstallment: r.EMI,
		TotalInterest:      r.TotalInterest,
		TotalPayment:       r.TotalAmount,
	}
}

type TenureOptionsRequest struct {
	Principal float64 `json:"principal"`
	Rate      float64 `json:"rate"`
	Tenures   []int   `json:"tenures,omitempty"`
	MaxEMI    float64 `json:"maxEmi,omitempty"`
}
