package validators

import (
	"errors"
	"fmt"

	"github.com/devnzo/finance-calc/internal/config"
	"github.com/devnzo/finance-calc/pkg/utils"
)

// Kind classifies why a field was rejected
type Kind string

const (
	KindRequired      Kind = "required"
	KindNonNumeric    Kind = "non_numeric"
	KindOutOfRange    Kind = "out_of_range"
	KindDateOrder     Kind = "date_order"
	KindUnknownOption Kind = "unknown_option"
	KindBadFormat     Kind = "bad_format"
)

// ErrInvalidInput matches every *InvalidInputError via errors.Is
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports the field that failed validation and why
type InvalidInputError struct {
	Field  string
	Kind   Kind
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Invalid builds an InvalidInputError
func Invalid(field string, kind Kind, format string, args ...any) *InvalidInputError {
	return &InvalidInputError{Field: field, Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// ValidatePositiveNumber checks that value is finite and within [minInclusive, maxInclusive]
func ValidatePositiveNumber(name string, value float64, minInclusive, maxInclusive float64) error {
	if !utils.IsFinite(value) {
		return Invalid(name, KindNonNumeric, "value is not a finite number")
	}
	if value < minInclusive {
		return Invalid(name, KindOutOfRange, "value must be ≥ %g", minInclusive)
	}
	if value > maxInclusive {
		return Invalid(name, KindOutOfRange, "value is too large (>%g)", maxInclusive)
	}
	return nil
}

// ValidateIntRange checks that an integer lies within [minInclusive, maxInclusive]
func ValidateIntRange(name string, value int, minInclusive, maxInclusive int) error {
	if value < minInclusive || value > maxInclusive {
		return Invalid(name, KindOutOfRange, "value must be in range [%d; %d]", minInclusive, maxInclusive)
	}
	return nil
}

// RequirePositive checks value > 0 and finite
func RequirePositive(name string, value float64) error {
	if !utils.IsFinite(value) {
		return Invalid(name, KindNonNumeric, "value is not a finite number")
	}
	if value <= 0 {
		return Invalid(name, KindOutOfRange, "value must be > 0")
	}
	return nil
}

// RequireNonNegative checks value ≥ 0 and finite
func RequireNonNegative(name string, value float64) error {
	if !utils.IsFinite(value) {
		return Invalid(name, KindNonNumeric, "value is not a finite number")
	}
	if value < 0 {
		return Invalid(name, KindOutOfRange, "value must be ≥ 0")
	}
	return nil
}

// CheckPrincipal checks the loan amount against the configured cap
func CheckPrincipal(cfg *config.Config, principal float64) error {
	return ValidatePositiveNumber("principal", principal, 1e-9, cfg.MaxPrincipal)
}

// CheckRate checks an annual rate percentage
func CheckRate(cfg *config.Config, rate float64) error {
	return ValidatePositiveNumber("annualRatePercent", rate, 0.0, cfg.MaxRate)
}

// CheckTermYears checks the combined loan term
func CheckTermYears(cfg *config.Config, years float64) error {
	return ValidatePositiveNumber("term", years, 1.0/12.0, float64(cfg.MaxTermYears))
}

// CheckFee checks a flat fee amount
func CheckFee(cfg *config.Config, name string, fee float64) error {
	return ValidatePositiveNumber(name, fee, 0.0, cfg.MaxFee)
}

// CheckAmount checks a monetary amount such as an investment or a unit cost
func CheckAmount(cfg *config.Config, name string, amount float64) error {
	return ValidatePositiveNumber(name, amount, 0.0, cfg.MaxPrincipal)
}

// CheckOrders checks a monthly order volume
func CheckOrders(cfg *config.Config, orders int) error {
	return ValidateIntRange("ordersPerMonth", orders, 0, cfg.MaxOrders)
}

// CheckBalance rejects results that exceed the configured balance cap
func CheckBalance(cfg *config.Config, name string, value float64) error {
	if !utils.IsFinite(value) || value > BalanceCap(cfg) {
		return fmt.Errorf("%s exceeds the balance cap (check rate, term and amounts)", name)
	}
	return nil
}

// BalanceCap returns the largest result value the service will report
func BalanceCap(cfg *config.Config) float64 {
	if cfg == nil {
		return 1e12
	}
	return cfg.BalanceCap()
}
