package validators

import (
	"errors"
	"math"
	"testing"

	"github.com/devnzo/finance-calc/internal/config"
)

func TestValidators(t *testing.T) {
	cfg, _ := config.LoadConfig()

	tests := []struct {
		name      string
		validator func(*config.Config, interface{}) error
		value     interface{}
		wantError bool
	}{
		{
			name:      "valid principal",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     10000.0,
			wantError: false,
		},
		{
			name:      "invalid principal zero",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     0.0,
			wantError: true,
		},
		{
			name:      "invalid principal above cap",
			validator: func(cfg *config.Config, v interface{}) error { return CheckPrincipal(cfg, v.(float64)) },
			value:     1e10,
			wantError: true,
		},
		{
			name:      "valid zero rate",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, v.(float64)) },
			value:     0.0,
			wantError: false,
		},
		{
			name:      "invalid rate negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckRate(cfg, v.(float64)) },
			value:     -1.0,
			wantError: true,
		},
		{
			name:      "valid term",
			validator: func(cfg *config.Config, v interface{}) error { return CheckTermYears(cfg, v.(float64)) },
			value:     5.0,
			wantError: false,
		},
		{
			name:      "invalid term too long",
			validator: func(cfg *config.Config, v interface{}) error { return CheckTermYears(cfg, v.(float64)) },
			value:     51.0,
			wantError: true,
		},
		{
			name:      "valid fee",
			validator: func(cfg *config.Config, v interface{}) error { return CheckFee(cfg, "documentationFee", v.(float64)) },
			value:     750.0,
			wantError: false,
		},
		{
			name:      "invalid orders negative",
			validator: func(cfg *config.Config, v interface{}) error { return CheckOrders(cfg, v.(int)) },
			value:     -1,
			wantError: true,
		},
		{
			name:      "balance over cap",
			validator: func(cfg *config.Config, v interface{}) error { return CheckBalance(cfg, "totalPayments", v.(float64)) },
			value:     math.Inf(1),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validator(cfg, tt.value)
			if (err != nil) != tt.wantError {
				t.Errorf("validator error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestInvalidInputError(t *testing.T) {
	err := RequirePositive("principal", -1)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected errors.Is(err, ErrInvalidInput), got %v", err)
	}

	var inputErr *InvalidInputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected *InvalidInputError, got %T", err)
	}
	if inputErr.Field != "principal" || inputErr.Kind != KindOutOfRange {
		t.Errorf("unexpected error details: %+v", inputErr)
	}

	if err := RequireNonNegative("otherFees", math.NaN()); err == nil {
		t.Error("expected NaN to be rejected")
	} else if err.(*InvalidInputError).Kind != KindNonNumeric {
		t.Errorf("expected non_numeric kind, got %s", err.(*InvalidInputError).Kind)
	}

	balanceErr := CheckBalance(nil, "totalPayments", math.Inf(1))
	if balanceErr == nil || errors.Is(balanceErr, ErrInvalidInput) {
		t.Errorf("expected a non-input balance error, got %v", balanceErr)
	}
}
