package calculations

import "github.com/devnzo/finance-calc/internal/validators"

// ComputeMargin derives sale price, gross profit and margin from a cost and markup
func ComputeMargin(in MarginInput) (*MarginResult, error) {
	if err := validators.RequireNonNegative("cost", in.Cost); err != nil {
		return nil, err
	}
	if err := validators.RequireNonNegative("markupPercent", in.MarkupPercent); err != nil {
		return nil, err
	}

	salePrice := in.Cost * (1.0 + in.MarkupPercent/100.0)
	grossProfit := salePrice - in.Cost

	var marginPercent float64
	if salePrice != 0 {
		marginPercent = grossProfit / salePrice * 100.0
	}

	return &MarginResult{
		SalePrice:     salePrice,
		GrossProfit:   grossProfit,
		MarginPercent: marginPercent,
	}, nil
}
