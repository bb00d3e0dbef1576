package calculations

import "time"

// LoanInput describes a loan as entered in the loan calculator
type LoanInput struct {
	Principal             float64              `json:"principal"`
	AnnualRatePercent     float64              `json:"annualRatePercent"`
	CompoundingFrequency  CompoundingFrequency `json:"compoundingFrequency"`
	TermYears             int                  `json:"termYears"`
	TermMonths            int                  `json:"termMonths"`
	PaymentFrequency      PaymentFrequency     `json:"paymentFrequency"`
	OriginationFeePercent float64              `json:"originationFeePercent"`
	DocumentationFee      float64              `json:"documentationFee"`
	OtherFees             float64              `json:"otherFees"`
}

// TotalTermYears combines years and months into a fractional year count
func (in LoanInput) TotalTermYears() float64 {
	return float64(in.TermYears) + float64(in.TermMonths)/12.0
}

// Breakdown splits the total cost of a loan into percentages
type Breakdown struct {
	PrincipalShare float64 `json:"principalShare"`
	InterestShare  float64 `json:"interestShare"`
	FeeShare       float64 `json:"feeShare"`
}

// LoanResult holds loan figures at full precision
type LoanResult struct {
	PaymentPerPeriod float64   `json:"paymentPerPeriod"`
	NumberOfPayments float64   `json:"numberOfPayments"`
	TotalPayments    float64   `json:"totalPayments"`
	TotalInterest    float64   `json:"totalInterest"`
	OriginationFee   float64   `json:"originationFee"`
	TotalFees        float64   `json:"totalFees"`
	APR              float64   `json:"apr"`
	Breakdown        Breakdown `json:"breakdown"`
}

// ScheduleEntry is one payment period of an amortization schedule
type ScheduleEntry struct {
	Period              int     `json:"period"`
	Payment             float64 `json:"payment"`
	Interest            float64 `json:"interest"`
	PrincipalComponent  float64 `json:"principalComponent"`
	RemainingPrincipal  float64 `json:"remainingPrincipal"`
	CumulativeInterest  float64 `json:"cumulativeInterest"`
	CumulativePrincipal float64 `json:"cumulativePrincipal"`
}

// ScheduleResult is a loan summary together with its per-period schedule
type ScheduleResult struct {
	Summary  LoanResult      `json:"summary"`
	Schedule []ScheduleEntry `json:"schedule"`
}

// RoiInput describes an investment held between two dates
type RoiInput struct {
	AmountInvested float64   `json:"amountInvested"`
	AmountReturned float64   `json:"amountReturned"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
}

// RoiResult holds absolute and annualized return figures
type RoiResult struct {
	Gain                 float64 `json:"gain"`
	RoiPercent           float64 `json:"roiPercent"`
	LengthDays           float64 `json:"lengthDays"`
	LengthYears          float64 `json:"lengthYears"`
	AnnualizedRoiPercent float64 `json:"annualizedRoiPercent"`
}

// MarginInput is a unit cost with a markup applied
type MarginInput struct {
	Cost          float64 `json:"cost"`
	MarkupPercent float64 `json:"markupPercent"`
}

// MarginResult holds sale price, profit and margin
type MarginResult struct {
	SalePrice     float64 `json:"salePrice"`
	GrossProfit   float64 `json:"grossProfit"`
	MarginPercent float64 `json:"marginPercent"`
}

// FeeTierInput describes a store's monthly volume and payment setup
type FeeTierInput struct {
	OrdersPerMonth         int          `json:"ordersPerMonth"`
	AvgOrderValue          float64      `json:"avgOrderValue"`
	BillingCycle           BillingCycle `json:"billingCycle"`
	UsesIntegratedPayments bool         `json:"usesIntegratedPayments"`
	ExternalGatewayPercent float64      `json:"externalGatewayPercent"`
	ExternalGatewayFixed   float64      `json:"externalGatewayFixed"`
}

// FeeTier is the static pricing of one platform plan
type FeeTier struct {
	Name                              string  `json:"name"`
	MonthlyBaseFee                    float64 `json:"monthlyBaseFee"`
	CardRatePercent                   float64 `json:"cardRatePercent"`
	CardRateFixed                     float64 `json:"cardRateFixed"`
	TransactionFeePercentWhenExternal float64 `json:"transactionFeePercentWhenExternal"`
}

// FeeResult is the monthly cost of one tier
type FeeResult struct {
	Tier                   string  `json:"tier"`
	PlanFee                float64 `json:"planFee"`
	IntegratedPaymentFee   float64 `json:"integratedPaymentFee"`
	ExternalPaymentFee     float64 `json:"externalPaymentFee"`
	PlatformTransactionFee float64 `json:"platformTransactionFee"`
	TotalCost              float64 `json:"totalCost"`
	AnnualCost             float64 `json:"annualCost"`
}
