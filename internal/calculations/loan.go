package calculations

import (
	"math"

	"github.com/devnzo/finance-calc/internal/validators"
)

// loanTerms are the derived quantities shared by ComputeLoan and AmortizationSchedule
type loanTerms struct {
	compoundingPerYear float64
	paymentsPerYear    float64
	years              float64
	numberOfPayments   float64
	ratePerPayment     float64
}

func validateLoan(in LoanInput) (loanTerms, error) {
	if err := validators.RequirePositive("principal", in.Principal); err != nil {
		return loanTerms{}, err
	}
	if err := validators.RequireNonNegative("annualRatePercent", in.AnnualRatePercent); err != nil {
		return loanTerms{}, err
	}
	if in.TermYears < 0 {
		return loanTerms{}, validators.Invalid("termYears", validators.KindOutOfRange, "value must be ≥ 0")
	}
	if in.TermMonths < 0 {
		return loanTerms{}, validators.Invalid("termMonths", validators.KindOutOfRange, "value must be ≥ 0")
	}
	years := in.TotalTermYears()
	if years <= 0 {
		return loanTerms{}, validators.Invalid("term", validators.KindOutOfRange, "total term must be > 0")
	}
	if err := validators.RequireNonNegative("originationFeePercent", in.OriginationFeePercent); err != nil {
		return loanTerms{}, err
	}
	if err := validators.RequireNonNegative("documentationFee", in.DocumentationFee); err != nil {
		return loanTerms{}, err
	}
	if err := validators.RequireNonNegative("otherFees", in.OtherFees); err != nil {
		return loanTerms{}, err
	}

	m, err := in.CompoundingFrequency.PeriodsPerYear()
	if err != nil {
		return loanTerms{}, err
	}
	p, err := in.PaymentFrequency.PaymentsPerYear()
	if err != nil {
		return loanTerms{}, err
	}

	t := loanTerms{
		compoundingPerYear: float64(m),
		paymentsPerYear:    float64(p),
		years:              years,
		numberOfPayments:   years * float64(p),
	}
	// nominal rate compounded m times a year, restated per payment period
	t.ratePerPayment = math.Pow(1.0+in.AnnualRatePercent/100.0/t.compoundingPerYear, t.compoundingPerYear/t.paymentsPerYear) - 1.0
	return t, nil
}

// ComputeLoan computes payment, totals, fees and APR for a loan.
//
// APR here is a linear annualization of interest plus fees over the term,
// not an IRR-based effective rate.
func ComputeLoan(in LoanInput) (*LoanResult, error) {
	t, err := validateLoan(in)
	if err != nil {
		return nil, err
	}

	P := in.Principal
	originationFee := P * in.OriginationFeePercent / 100.0
	totalFees := originationFee + in.DocumentationFee + in.OtherFees

	var payment, totalPayments, totalInterest, numberOfPayments float64

	switch in.PaymentFrequency {
	case PayLumpSumAtEnd:
		periodicRate := in.AnnualRatePercent / 100.0 / t.compoundingPerYear
		totalPayments = P * math.Pow(1.0+periodicRate, t.compoundingPerYear*t.years)
		payment = totalPayments
		totalInterest = totalPayments - P
		numberOfPayments = 1

	case PayInterestOnly:
		// principal is never amortized by these payments
		payment = P * t.ratePerPayment
		totalInterest = payment * t.numberOfPayments
		totalPayments = P + totalInterest
		numberOfPayments = t.numberOfPayments

	default:
		numberOfPayments = t.numberOfPayments
		if t.ratePerPayment == 0.0 {
			payment = P / t.numberOfPayments
			totalPayments = P
			totalInterest = 0
		} else {
			payment = P * t.ratePerPayment / (1.0 - math.Pow(1.0+t.ratePerPayment, -t.numberOfPayments))
			totalPayments = payment * t.numberOfPayments
			totalInterest = totalPayments - P
		}
	}

	apr := ((totalInterest + totalFees) / P) / t.years * 100.0

	totalCost := P + totalInterest + totalFees
	breakdown := Breakdown{
		PrincipalShare: P / totalCost * 100.0,
		InterestShare:  totalInterest / totalCost * 100.0,
		FeeShare:       totalFees / totalCost * 100.0,
	}

	return &LoanResult{
		PaymentPerPeriod: payment,
		NumberOfPayments: numberOfPayments,
		TotalPayments:    totalPayments,
		TotalInterest:    totalInterest,
		OriginationFee:   originationFee,
		TotalFees:        totalFees,
		APR:              apr,
		Breakdown:        breakdown,
	}, nil
}
