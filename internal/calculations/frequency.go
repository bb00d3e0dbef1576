package calculations

import "github.com/devnzo/finance-calc/internal/validators"

// CompoundingFrequency is how often interest is added to the balance
type CompoundingFrequency string

const (
	CompoundAnnually     CompoundingFrequency = "annually"
	CompoundSemiAnnually CompoundingFrequency = "semiAnnually"
	CompoundQuarterly    CompoundingFrequency = "quarterly"
	CompoundMonthly      CompoundingFrequency = "monthly"
	CompoundSemiMonthly  CompoundingFrequency = "semiMonthly"
	CompoundBiweekly     CompoundingFrequency = "biweekly"
	CompoundWeekly       CompoundingFrequency = "weekly"
	CompoundDaily        CompoundingFrequency = "daily"
)

// CompoundingFrequencies lists every supported compounding frequency
var CompoundingFrequencies = []CompoundingFrequency{
	CompoundAnnually, CompoundSemiAnnually, CompoundQuarterly, CompoundMonthly,
	CompoundSemiMonthly, CompoundBiweekly, CompoundWeekly, CompoundDaily,
}

// PeriodsPerYear returns the number of compounding periods in a year
func (f CompoundingFrequency) PeriodsPerYear() (int, error) {
	switch f {
	case CompoundAnnually:
		return 1, nil
	case CompoundSemiAnnually:
		return 2, nil
	case CompoundQuarterly:
		return 4, nil
	case CompoundMonthly:
		return 12, nil
	case CompoundSemiMonthly:
		return 24, nil
	case CompoundBiweekly:
		return 26, nil
	case CompoundWeekly:
		return 52, nil
	case CompoundDaily:
		return 365, nil
	}
	return 0, validators.Invalid("compoundingFrequency", validators.KindUnknownOption, "unknown compounding frequency %q", string(f))
}

// PaymentFrequency is the payback mode of a loan
type PaymentFrequency string

const (
	PayMonthly      PaymentFrequency = "monthly"
	PayDaily        PaymentFrequency = "daily"
	PayWeekly       PaymentFrequency = "weekly"
	PayBiweekly     PaymentFrequency = "biweekly"
	PaySemiMonthly  PaymentFrequency = "semiMonthly"
	PayQuarterly    PaymentFrequency = "quarterly"
	PaySemiAnnually PaymentFrequency = "semiAnnually"
	PayAnnually     PaymentFrequency = "annually"
	PayInterestOnly PaymentFrequency = "interestOnly"
	PayLumpSumAtEnd PaymentFrequency = "lumpSumAtEnd"
)

// PaymentFrequencies lists every supported payback mode
var PaymentFrequencies = []PaymentFrequency{
	PayMonthly, PayDaily, PayWeekly, PayBiweekly, PaySemiMonthly,
	PayQuarterly, PaySemiAnnually, PayAnnually, PayInterestOnly, PayLumpSumAtEnd,
}

// PaymentsPerYear returns the number of payment periods in a year.
// Interest-only loans accrue monthly; a lump sum is a single period.
func (f PaymentFrequency) PaymentsPerYear() (int, error) {
	switch f {
	case PayMonthly, PayInterestOnly:
		return 12, nil
	case PayDaily:
		return 365, nil
	case PayWeekly:
		return 52, nil
	case PayBiweekly:
		return 26, nil
	case PaySemiMonthly:
		return 24, nil
	case PayQuarterly:
		return 4, nil
	case PaySemiAnnually:
		return 2, nil
	case PayAnnually, PayLumpSumAtEnd:
		return 1, nil
	}
	return 0, validators.Invalid("paymentFrequency", validators.KindUnknownOption, "unknown payment frequency %q", string(f))
}

// BillingCycle is how a platform plan is billed
type BillingCycle string

const (
	BillingMonthly BillingCycle = "monthly"
	BillingYearly  BillingCycle = "yearly"
)

// yearlyDiscount is the share of the monthly price paid on yearly billing
const yearlyDiscount = 0.75

func (c BillingCycle) validate() error {
	switch c {
	case BillingMonthly, BillingYearly:
		return nil
	}
	return validators.Invalid("billingCycle", validators.KindUnknownOption, "unknown billing cycle %q", string(c))
}
