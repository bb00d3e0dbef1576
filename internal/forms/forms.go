// Package forms turns raw calculator widget fields into typed calculator inputs.
//
// Widgets submit text fields, so values arrive as strings; JSON clients may send
// numbers and booleans directly. Both are accepted. Nothing is coerced silently:
// an unparsable or non-finite value is an InvalidInputError naming the field.
package forms

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/devnzo/finance-calc/internal/calculations"
	"github.com/devnzo/finance-calc/internal/validators"
)

// Fields is a decoded form or JSON body
type Fields map[string]any

// DateLayout is the format of date fields
const DateLayout = "2006-01-02"

// ParseLoan builds a LoanInput from form fields
func ParseLoan(f Fields) (calculations.LoanInput, error) {
	var in calculations.LoanInput
	var err error

	if in.Principal, err = f.requiredFloat("principal"); err != nil {
		return in, err
	}
	if in.AnnualRatePercent, err = f.requiredFloat("annualRatePercent"); err != nil {
		return in, err
	}
	compounding, err := f.requiredString("compoundingFrequency")
	if err != nil {
		return in, err
	}
	in.CompoundingFrequency = calculations.CompoundingFrequency(compounding)
	if _, err := in.CompoundingFrequency.PeriodsPerYear(); err != nil {
		return in, err
	}
	payment, err := f.requiredString("paymentFrequency")
	if err != nil {
		return in, err
	}
	in.PaymentFrequency = calculations.PaymentFrequency(payment)
	if _, err := in.PaymentFrequency.PaymentsPerYear(); err != nil {
		return in, err
	}

	if !f.present("termYears") && !f.present("termMonths") {
		return in, validators.Invalid("term", validators.KindRequired, "termYears or termMonths is required")
	}
	if in.TermYears, err = f.optionalInt("termYears"); err != nil {
		return in, err
	}
	if in.TermMonths, err = f.optionalInt("termMonths"); err != nil {
		return in, err
	}

	if in.OriginationFeePercent, err = f.optionalFloat("originationFeePercent"); err != nil {
		return in, err
	}
	if in.DocumentationFee, err = f.optionalFloat("documentationFee"); err != nil {
		return in, err
	}
	if in.OtherFees, err = f.optionalFloat("otherFees"); err != nil {
		return in, err
	}

	return in, nil
}

// ParseRoi builds a RoiInput from form fields
func ParseRoi(f Fields) (calculations.RoiInput, error) {
	var in calculations.RoiInput
	var err error

	if in.AmountInvested, err = f.requiredFloat("amountInvested"); err != nil {
		return in, err
	}
	if in.AmountReturned, err = f.requiredFloat("amountReturned"); err != nil {
		return in, err
	}
	if in.StartDate, err = f.requiredDate("startDate"); err != nil {
		return in, err
	}
	if in.EndDate, err = f.requiredDate("endDate"); err != nil {
		return in, err
	}
	return in, nil
}

// ParseMargin builds a MarginInput from form fields
func ParseMargin(f Fields) (calculations.MarginInput, error) {
	var in calculations.MarginInput
	var err error

	if in.Cost, err = f.requiredFloat("cost"); err != nil {
		return in, err
	}
	if in.MarkupPercent, err = f.requiredFloat("markupPercent"); err != nil {
		return in, err
	}
	return in, nil
}

// ParseFees builds a FeeTierInput from form fields
func ParseFees(f Fields) (calculations.FeeTierInput, error) {
	var in calculations.FeeTierInput
	var err error

	if !f.present("ordersPerMonth") {
		return in, validators.Invalid("ordersPerMonth", validators.KindRequired, "value is required")
	}
	if in.OrdersPerMonth, err = f.optionalInt("ordersPerMonth"); err != nil {
		return in, err
	}
	if in.AvgOrderValue, err = f.requiredFloat("avgOrderValue"); err != nil {
		return in, err
	}
	cycle, err := f.requiredString("billingCycle")
	if err != nil {
		return in, err
	}
	in.BillingCycle = calculations.BillingCycle(cycle)
	if in.UsesIntegratedPayments, err = f.optionalBool("usesIntegratedPayments"); err != nil {
		return in, err
	}
	if in.ExternalGatewayPercent, err = f.optionalFloat("externalGatewayPercent"); err != nil {
		return in, err
	}
	if in.ExternalGatewayFixed, err = f.optionalFloat("externalGatewayFixed"); err != nil {
		return in, err
	}
	return in, nil
}

// present reports whether a field was submitted with a non-blank value
func (f Fields) present(name string) bool {
	v, ok := f[name]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func (f Fields) requiredFloat(name string) (float64, error) {
	if !f.present(name) {
		return 0, validators.Invalid(name, validators.KindRequired, "value is required")
	}
	return f.optionalFloat(name)
}

func (f Fields) optionalFloat(name string) (float64, error) {
	if !f.present(name) {
		return 0, nil
	}
	var value float64
	switch v := f[name].(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, validators.Invalid(name, validators.KindNonNumeric, "%q is not a number", v)
		}
		value = parsed
	default:
		return 0, validators.Invalid(name, validators.KindNonNumeric, "value is not a number")
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, validators.Invalid(name, validators.KindNonNumeric, "value is not a finite number")
	}
	return value, nil
}

func (f Fields) optionalInt(name string) (int, error) {
	value, err := f.optionalFloat(name)
	if err != nil {
		return 0, err
	}
	if value != math.Trunc(value) || math.Abs(value) > math.MaxInt32 {
		return 0, validators.Invalid(name, validators.KindNonNumeric, "value must be a whole number")
	}
	return int(value), nil
}

func (f Fields) requiredString(name string) (string, error) {
	if !f.present(name) {
		return "", validators.Invalid(name, validators.KindRequired, "value is required")
	}
	s, ok := f[name].(string)
	if !ok {
		return "", validators.Invalid(name, validators.KindUnknownOption, "value must be text")
	}
	return strings.TrimSpace(s), nil
}

func (f Fields) optionalBool(name string) (bool, error) {
	if !f.present(name) {
		return false, nil
	}
	switch v := f[name].(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, validators.Invalid(name, validators.KindUnknownOption, "%q is not true or false", v)
		}
		return b, nil
	}
	return false, validators.Invalid(name, validators.KindUnknownOption, "value is not true or false")
}

func (f Fields) requiredDate(name string) (time.Time, error) {
	s, err := f.requiredString(name)
	if err != nil {
		return time.Time{}, err
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, validators.Invalid(name, validators.KindBadFormat, "%q is not a date (YYYY-MM-DD)", s)
	}
	return d, nil
}
