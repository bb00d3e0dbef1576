package calculations

import (
	"github.com/shopspring/decimal"

	"github.com/devnzo/finance-calc/pkg/utils"
)

// Display views round money and percentages to 2 places for presentation.
// Results keep full precision; only these views are rounded.

// BreakdownView is the rounded percentage split of a loan's total cost.
type BreakdownView struct {
	PrincipalShare decimal.Decimal `json:"principalShare"`
	InterestShare  decimal.Decimal `json:"interestShare"`
	FeeShare       decimal.Decimal `json:"feeShare"`
}

// LoanView is a loan summary rounded for presentation.
type LoanView struct {
	PaymentPerPeriod decimal.Decimal `json:"paymentPerPeriod"`
	NumberOfPayments float64         `json:"numberOfPayments"`
	TotalPayments    decimal.Decimal `json:"totalPayments"`
	TotalInterest    decimal.Decimal `json:"totalInterest"`
	OriginationFee   decimal.Decimal `json:"originationFee"`
	TotalFees        decimal.Decimal `json:"totalFees"`
	APR              decimal.Decimal `json:"apr"`
	Breakdown        BreakdownView   `json:"breakdown"`
}

// Display rounds the loan summary to cents and percentages to 2 places.
func (r LoanResult) Display() LoanView {
	return LoanView{
		PaymentPerPeriod: utils.Money(r.PaymentPerPeriod),
		NumberOfPayments: r.NumberOfPayments,
		TotalPayments:    utils.Money(r.TotalPayments),
		TotalInterest:    utils.Money(r.TotalInterest),
		OriginationFee:   utils.Money(r.OriginationFee),
		TotalFees:        utils.Money(r.TotalFees),
		APR:              utils.Percent(r.APR),
		Breakdown: BreakdownView{
			PrincipalShare: utils.Percent(r.Breakdown.PrincipalShare),
			InterestShare:  utils.Percent(r.Breakdown.InterestShare),
			FeeShare:       utils.Percent(r.Breakdown.FeeShare),
		},
	}
}

// ScheduleEntryView is one amortization period in cents.
type ScheduleEntryView struct {
	Period              int             `json:"period"`
	Payment             decimal.Decimal `json:"payment"`
	Interest            decimal.Decimal `json:"interest"`
	PrincipalComponent  decimal.Decimal `json:"principalComponent"`
	RemainingPrincipal  decimal.Decimal `json:"remainingPrincipal"`
	CumulativeInterest  decimal.Decimal `json:"cumulativeInterest"`
	CumulativePrincipal decimal.Decimal `json:"cumulativePrincipal"`
}

// ScheduleView pairs the rounded summary with its rounded periods.
type ScheduleView struct {
	Summary  LoanView            `json:"summary"`
	Schedule []ScheduleEntryView `json:"schedule"`
}

// Display rounds the summary and every schedule entry.
func (r ScheduleResult) Display() ScheduleView {
	entries := make([]ScheduleEntryView, 0, len(r.Schedule))
	for _, e := range r.Schedule {
		entries = append(entries, ScheduleEntryView{
			Period:              e.Period,
			Payment:             utils.Money(e.Payment),
			Interest:            utils.Money(e.Interest),
			PrincipalComponent:  utils.Money(e.PrincipalComponent),
			RemainingPrincipal:  utils.Money(e.RemainingPrincipal),
			CumulativeInterest:  utils.Money(e.CumulativeInterest),
			CumulativePrincipal: utils.Money(e.CumulativePrincipal),
		})
	}
	return ScheduleView{Summary: r.Summary.Display(), Schedule: entries}
}

// RoiView holds presentation values for a return on investment.
type RoiView struct {
	Gain                 decimal.Decimal `json:"gain"`
	RoiPercent           decimal.Decimal `json:"roiPercent"`
	LengthDays           float64         `json:"lengthDays"`
	LengthYears          decimal.Decimal `json:"lengthYears"`
	AnnualizedRoiPercent decimal.Decimal `json:"annualizedRoiPercent"`
}

// Display rounds the ROI figures. Both percentages must be finite.
func (r RoiResult) Display() RoiView {
	return RoiView{
		Gain:                 utils.Money(r.Gain),
		RoiPercent:           utils.Percent(r.RoiPercent),
		LengthDays:           r.LengthDays,
		LengthYears:          utils.Money(r.LengthYears),
		AnnualizedRoiPercent: utils.Percent(r.AnnualizedRoiPercent),
	}
}

// MarginView is a rounded margin result.
type MarginView struct {
	SalePrice     decimal.Decimal `json:"salePrice"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	MarginPercent decimal.Decimal `json:"marginPercent"`
}

// Display rounds sale price and profit to cents.
func (r MarginResult) Display() MarginView {
	return MarginView{
		SalePrice:     utils.Money(r.SalePrice),
		GrossProfit:   utils.Money(r.GrossProfit),
		MarginPercent: utils.Percent(r.MarginPercent),
	}
}

// FeeView is the rounded monthly and annual cost of one tier.
type FeeView struct {
	Tier                   string          `json:"tier"`
	PlanFee                decimal.Decimal `json:"planFee"`
	IntegratedPaymentFee   decimal.Decimal `json:"integratedPaymentFee"`
	ExternalPaymentFee     decimal.Decimal `json:"externalPaymentFee"`
	PlatformTransactionFee decimal.Decimal `json:"platformTransactionFee"`
	TotalCost              decimal.Decimal `json:"totalCost"`
	AnnualCost             decimal.Decimal `json:"annualCost"`
}

// Display rounds every fee component to cents.
func (r FeeResult) Display() FeeView {
	return FeeView{
		Tier:                   r.Tier,
		PlanFee:                utils.Money(r.PlanFee),
		IntegratedPaymentFee:   utils.Money(r.IntegratedPaymentFee),
		ExternalPaymentFee:     utils.Money(r.ExternalPaymentFee),
		PlatformTransactionFee: utils.Money(r.PlatformTransactionFee),
		TotalCost:              utils.Money(r.TotalCost),
		AnnualCost:             utils.Money(r.AnnualCost),
	}
}
