package calculations

import (
	"fmt"
	"math"

	"github.com/devnzo/finance-calc/internal/validators"
)

// scheduleEpsilon absorbs float noise when turning a fractional payment count into periods
const scheduleEpsilon = 1e-9

// AmortizationSchedule builds the per-period schedule of a loan.
// maxEntries bounds the schedule length; zero means no bound.
func AmortizationSchedule(in LoanInput, maxEntries int) (*ScheduleResult, error) {
	summary, err := ComputeLoan(in)
	if err != nil {
		return nil, err
	}
	t, err := validateLoan(in)
	if err != nil {
		return nil, err
	}

	P := in.Principal

	if in.PaymentFrequency == PayLumpSumAtEnd {
		return &ScheduleResult{
			Summary: *summary,
			Schedule: []ScheduleEntry{{
				Period:              1,
				Payment:             summary.TotalPayments,
				Interest:            summary.TotalInterest,
				PrincipalComponent:  P,
				RemainingPrincipal:  0,
				CumulativeInterest:  summary.TotalInterest,
				CumulativePrincipal: P,
			}},
		}, nil
	}

	n := int(math.Ceil(t.numberOfPayments - scheduleEpsilon))
	if n < 1 {
		n = 1
	}
	if maxEntries > 0 && n > maxEntries {
		return nil, validators.Invalid("term", validators.KindOutOfRange,
			"schedule would have %d periods (max %d)", n, maxEntries)
	}

	r := t.ratePerPayment
	schedule := make([]ScheduleEntry, 0, n)
	remaining := P
	cumI := 0.0
	cumP := 0.0

	partial := t.numberOfPayments < float64(n)
	frac := t.numberOfPayments - float64(n-1)

	for period := 1; period <= n; period++ {
		interest := remaining * r
		var principalComponent, payment float64

		switch {
		case in.PaymentFrequency == PayInterestOnly:
			principalComponent = 0
			payment = summary.PaymentPerPeriod
			if period == n && partial {
				// a trailing partial period accrues only its fraction
				interest *= frac
				payment = interest
			}
		case period == n && partial:
			// the partial period pays its share of the annuity payment,
			// which clears the balance and matches the summary totals
			principalComponent = remaining
			payment = summary.PaymentPerPeriod * frac
			interest = math.Max(payment-principalComponent, 0)
			payment = principalComponent + interest
		case period == n:
			principalComponent = remaining
			payment = principalComponent + interest
		default:
			payment = summary.PaymentPerPeriod
			principalComponent = payment - interest
		}

		remaining -= principalComponent
		cumI += interest
		cumP += principalComponent

		if remaining < -0.01 {
			return nil, fmt.Errorf("numeric error: remaining principal became negative")
		}

		remainingPrincipal := remaining
		if remainingPrincipal < 0 {
			remainingPrincipal = 0.0
		}

		schedule = append(schedule, ScheduleEntry{
			Period:              period,
			Payment:             payment,
			Interest:            interest,
			PrincipalComponent:  principalComponent,
			RemainingPrincipal:  remainingPrincipal,
			CumulativeInterest:  cumI,
			CumulativePrincipal: cumP,
		})
	}

	return &ScheduleResult{
		Summary:  *summary,
		Schedule: schedule,
	}, nil
}
