package calculations

import "testing"

func TestPeriodsPerYear(t *testing.T) {
	want := map[CompoundingFrequency]int{
		CompoundAnnually: 1, CompoundSemiAnnually: 2, CompoundQuarterly: 4, CompoundMonthly: 12,
		CompoundSemiMonthly: 24, CompoundBiweekly: 26, CompoundWeekly: 52, CompoundDaily: 365,
	}
	if len(want) != len(CompoundingFrequencies) {
		t.Fatalf("expected %d compounding frequencies, got %d", len(want), len(CompoundingFrequencies))
	}
	for _, f := range CompoundingFrequencies {
		got, err := f.PeriodsPerYear()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", f, err)
		}
		if got != want[f] {
			t.Errorf("%s: got %d, want %d", f, got, want[f])
		}
	}
	if _, err := CompoundingFrequency("fortnightly").PeriodsPerYear(); err == nil {
		t.Error("expected error for unknown frequency")
	}
}

func TestPaymentsPerYear(t *testing.T) {
	want := map[PaymentFrequency]int{
		PayMonthly: 12, PayDaily: 365, PayWeekly: 52, PayBiweekly: 26, PaySemiMonthly: 24,
		PayQuarterly: 4, PaySemiAnnually: 2, PayAnnually: 1, PayInterestOnly: 12, PayLumpSumAtEnd: 1,
	}
	if len(want) != len(PaymentFrequencies) {
		t.Fatalf("expected %d payment frequencies, got %d", len(want), len(PaymentFrequencies))
	}
	for _, f := range PaymentFrequencies {
		got, err := f.PaymentsPerYear()
		if err != nil {
			t.Fatalf("%s: unexpected error %v", f, err)
		}
		if got != want[f] {
			t.Errorf("%s: got %d, want %d", f, got, want[f])
		}
	}
	if _, err := PaymentFrequency("balloon").PaymentsPerYear(); err == nil {
		t.Error("expected error for unknown frequency")
	}
}
