package calculations

import (
	"math"

	"github.com/devnzo/finance-calc/internal/validators"
)

// daysPerYear averages leap years
const daysPerYear = 365.25

// ComputeRoi computes the absolute and annualized return of an investment
func ComputeRoi(in RoiInput) (*RoiResult, error) {
	if err := validators.RequirePositive("amountInvested", in.AmountInvested); err != nil {
		return nil, err
	}
	if err := validators.RequireNonNegative("amountReturned", in.AmountReturned); err != nil {
		return nil, err
	}
	if !in.EndDate.After(in.StartDate) {
		return nil, validators.Invalid("endDate", validators.KindDateOrder, "end date must be after start date")
	}

	gain := in.AmountReturned - in.AmountInvested
	roiPercent := gain / in.AmountInvested * 100.0

	days := in.EndDate.Sub(in.StartDate).Hours() / 24.0
	years := days / daysPerYear

	// geometric mean yearly return over the holding period
	var annualized float64
	if years > 0 {
		annualized = (math.Pow(in.AmountReturned/in.AmountInvested, 1.0/years) - 1.0) * 100.0
	}

	return &RoiResult{
		Gain:                 gain,
		RoiPercent:           roiPercent,
		LengthDays:           days,
		LengthYears:          years,
		AnnualizedRoiPercent: annualized,
	}, nil
}
