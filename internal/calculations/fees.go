package calculations

import (
	"fmt"

	"github.com/devnzo/finance-calc/internal/validators"
)

// DefaultFeeTiers returns the plan table shown by the platform fee estimator
func DefaultFeeTiers() []FeeTier {
	return []FeeTier{
		{Name: "Starter", MonthlyBaseFee: 29, CardRatePercent: 2.9, CardRateFixed: 0.30, TransactionFeePercentWhenExternal: 2.0},
		{Name: "Growth", MonthlyBaseFee: 79, CardRatePercent: 2.6, CardRateFixed: 0.30, TransactionFeePercentWhenExternal: 1.0},
		{Name: "Scale", MonthlyBaseFee: 299, CardRatePercent: 2.4, CardRateFixed: 0.30, TransactionFeePercentWhenExternal: 0.5},
	}
}

func validateTier(i int, tier FeeTier) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"monthlyBaseFee", tier.MonthlyBaseFee},
		{"cardRatePercent", tier.CardRatePercent},
		{"cardRateFixed", tier.CardRateFixed},
		{"transactionFeePercentWhenExternal", tier.TransactionFeePercentWhenExternal},
	}
	for _, f := range fields {
		if err := validators.RequireNonNegative(fmt.Sprintf("tiers[%d].%s", i, f.name), f.value); err != nil {
			return err
		}
	}
	return nil
}

// ComputeFees computes the monthly cost of each tier for the given store profile.
// Tiers are independent; results keep the order of tiers.
func ComputeFees(in FeeTierInput, tiers []FeeTier) ([]FeeResult, error) {
	if in.OrdersPerMonth < 0 {
		return nil, validators.Invalid("ordersPerMonth", validators.KindOutOfRange, "value must be ≥ 0")
	}
	if err := validators.RequireNonNegative("avgOrderValue", in.AvgOrderValue); err != nil {
		return nil, err
	}
	if err := in.BillingCycle.validate(); err != nil {
		return nil, err
	}
	if !in.UsesIntegratedPayments {
		if err := validators.RequireNonNegative("externalGatewayPercent", in.ExternalGatewayPercent); err != nil {
			return nil, err
		}
		if err := validators.RequireNonNegative("externalGatewayFixed", in.ExternalGatewayFixed); err != nil {
			return nil, err
		}
	}
	for i, tier := range tiers {
		if err := validateTier(i, tier); err != nil {
			return nil, err
		}
	}

	orders := float64(in.OrdersPerMonth)
	revenue := orders * in.AvgOrderValue

	results := make([]FeeResult, 0, len(tiers))
	for _, tier := range tiers {
		planFee := tier.MonthlyBaseFee
		if in.BillingCycle == BillingYearly {
			planFee = tier.MonthlyBaseFee * 12 * yearlyDiscount / 12
		}

		res := FeeResult{Tier: tier.Name, PlanFee: planFee}
		if in.UsesIntegratedPayments {
			res.IntegratedPaymentFee = revenue*tier.CardRatePercent/100.0 + orders*tier.CardRateFixed
		} else {
			res.ExternalPaymentFee = revenue*in.ExternalGatewayPercent/100.0 + orders*in.ExternalGatewayFixed
			res.PlatformTransactionFee = revenue * tier.TransactionFeePercentWhenExternal / 100.0
		}
		res.TotalCost = res.PlanFee + res.IntegratedPaymentFee + res.ExternalPaymentFee + res.PlatformTransactionFee
		res.AnnualCost = res.TotalCost * 12

		results = append(results, res)
	}

	return results, nil
}

// CheapestTier returns the result with the lowest total cost; the first wins ties.
// ok is false for an empty slice.
func CheapestTier(results []FeeResult) (cheapest FeeResult, ok bool) {
	for i, r := range results {
		if i == 0 || r.TotalCost < cheapest.TotalCost {
			cheapest = r
			ok = true
		}
	}
	return cheapest, ok
}
