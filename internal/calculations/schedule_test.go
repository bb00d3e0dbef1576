package calculations

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/devnzo/finance-calc/internal/validators"
)

func TestAmortizationSchedule(t *testing.T) {
	tests := []struct {
		name          string
		input         LoanInput
		maxEntries    int
		wantError     bool
		checkSchedule func(*testing.T, *ScheduleResult)
	}{
		{
			name:  "standard monthly",
			input: scenarioLoan(),
			checkSchedule: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) != 60 {
					t.Fatalf("expected 60 periods, got %d", len(result.Schedule))
				}
				last := result.Schedule[len(result.Schedule)-1]
				if last.RemainingPrincipal != 0 {
					t.Errorf("expected remaining principal 0, got %f", last.RemainingPrincipal)
				}
				if !scalar.EqualWithinRel(last.CumulativeInterest, result.Summary.TotalInterest, 1e-6) {
					t.Errorf("schedule interest %v differs from summary %v", last.CumulativeInterest, result.Summary.TotalInterest)
				}
				if !scalar.EqualWithinRel(last.CumulativePrincipal, 10000, 1e-9) {
					t.Errorf("expected cumulative principal 10000, got %v", last.CumulativePrincipal)
				}
				first := result.Schedule[0]
				if first.Interest <= last.Interest {
					t.Error("interest share should shrink over the term")
				}
			},
		},
		{
			name: "term not a whole number of periods",
			input: LoanInput{
				Principal:            10000,
				AnnualRatePercent:    10,
				CompoundingFrequency: CompoundMonthly,
				TermYears:            1,
				TermMonths:           1,
				PaymentFrequency:     PayQuarterly,
			},
			checkSchedule: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) != 5 {
					t.Fatalf("expected 5 periods, got %d", len(result.Schedule))
				}
				last := result.Schedule[4]
				if last.RemainingPrincipal != 0 {
					t.Errorf("expected remaining principal 0, got %f", last.RemainingPrincipal)
				}
				if !scalar.EqualWithinRel(last.CumulativeInterest, result.Summary.TotalInterest, 1e-9) {
					t.Errorf("schedule interest %v differs from summary %v", last.CumulativeInterest, result.Summary.TotalInterest)
				}
				if !scalar.EqualWithinRel(last.CumulativePrincipal, 10000, 1e-9) {
					t.Errorf("expected cumulative principal 10000, got %v", last.CumulativePrincipal)
				}
				paid := 0.0
				for _, e := range result.Schedule {
					paid += e.Payment
				}
				if !scalar.EqualWithinRel(paid, result.Summary.TotalPayments, 1e-9) {
					t.Errorf("schedule payments %v differ from summary %v", paid, result.Summary.TotalPayments)
				}
				if last.Payment >= result.Schedule[0].Payment {
					t.Errorf("partial period should pay less than a full one, got %v", last.Payment)
				}
			},
		},
		{
			name: "zero rate",
			input: LoanInput{
				Principal:            100000,
				CompoundingFrequency: CompoundMonthly,
				TermMonths:           10,
				PaymentFrequency:     PayMonthly,
			},
			checkSchedule: func(t *testing.T, result *ScheduleResult) {
				for _, e := range result.Schedule {
					if e.Interest != 0 {
						t.Errorf("period %d: expected no interest, got %v", e.Period, e.Interest)
					}
				}
				if result.Summary.PaymentPerPeriod != 10000 {
					t.Errorf("expected payment 10000, got %v", result.Summary.PaymentPerPeriod)
				}
			},
		},
		{
			name: "interest only keeps principal outstanding",
			input: LoanInput{
				Principal:            10000,
				AnnualRatePercent:    12,
				CompoundingFrequency: CompoundMonthly,
				TermYears:            1,
				PaymentFrequency:     PayInterestOnly,
			},
			checkSchedule: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) != 12 {
					t.Fatalf("expected 12 periods, got %d", len(result.Schedule))
				}
				last := result.Schedule[11]
				if last.RemainingPrincipal != 10000 {
					t.Errorf("expected principal 10000 outstanding, got %v", last.RemainingPrincipal)
				}
				if last.CumulativePrincipal != 0 {
					t.Errorf("expected no principal repaid, got %v", last.CumulativePrincipal)
				}
				if !scalar.EqualWithinRel(last.CumulativeInterest, result.Summary.TotalInterest, 1e-9) {
					t.Errorf("schedule interest %v differs from summary %v", last.CumulativeInterest, result.Summary.TotalInterest)
				}
			},
		},
		{
			name: "lump sum is a single entry",
			input: LoanInput{
				Principal:            10000,
				AnnualRatePercent:    6,
				CompoundingFrequency: CompoundQuarterly,
				TermYears:            3,
				PaymentFrequency:     PayLumpSumAtEnd,
			},
			checkSchedule: func(t *testing.T, result *ScheduleResult) {
				if len(result.Schedule) != 1 {
					t.Fatalf("expected 1 entry, got %d", len(result.Schedule))
				}
				if result.Schedule[0].Payment != result.Summary.TotalPayments {
					t.Error("lump sum entry should pay the full total")
				}
			},
		},
		{
			name: "too many periods",
			input: LoanInput{
				Principal:            10000,
				AnnualRatePercent:    5,
				CompoundingFrequency: CompoundDaily,
				TermYears:            30,
				PaymentFrequency:     PayDaily,
			},
			maxEntries: 1000,
			wantError:  true,
		},
		{
			name: "invalid principal",
			input: LoanInput{
				Principal:            -1,
				CompoundingFrequency: CompoundMonthly,
				TermYears:            1,
				PaymentFrequency:     PayMonthly,
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := AmortizationSchedule(tt.input, tt.maxEntries)
			if (err != nil) != tt.wantError {
				t.Errorf("AmortizationSchedule() error = %v, wantError %v", err, tt.wantError)
				return
			}
			if tt.wantError {
				if !errors.Is(err, validators.ErrInvalidInput) {
					t.Errorf("expected invalid input error, got %v", err)
				}
				return
			}
			tt.checkSchedule(t, result)
		})
	}
}
