package tools

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/devnzo/finance-calc/internal/cache"
	"github.com/devnzo/finance-calc/internal/calculations"
	"github.com/devnzo/finance-calc/internal/config"
	"github.com/devnzo/finance-calc/internal/validators"
)

func testConfig() *config.Config {
	return &config.Config{
		MaxPrincipal:       1e9,
		MaxRate:            200,
		MaxTermYears:       50,
		MaxFee:             1e8,
		MaxOrders:          10_000_000,
		MaxBalanceCap:      1e12,
		MaxScheduleEntries: 20_000,
		CacheTTL:           time.Hour,
	}
}

var tracer = noop.NewTracerProvider().Tracer("test")

func loanParams() map[string]interface{} {
	return map[string]interface{}{
		"principal":            "10000",
		"annualRatePercent":    "10",
		"compoundingFrequency": "monthly",
		"paymentFrequency":     "monthly",
		"termYears":            "5",
	}
}

func TestComputeLoanHandler(t *testing.T) {
	handler := ComputeLoanHandler(testConfig(), tracer, nil)

	out, err := handler(context.Background(), loanParams())
	require.NoError(t, err)

	view, ok := out.(calculations.LoanView)
	require.True(t, ok, "unexpected result type %T", out)
	assert.Equal(t, "212.47", view.PaymentPerPeriod.String())
	assert.Equal(t, "12748.23", view.TotalPayments.String())
	assert.Equal(t, float64(60), view.NumberOfPayments)
}

func TestComputeLoanHandlerInvalid(t *testing.T) {
	handler := ComputeLoanHandler(testConfig(), tracer, nil)

	tests := []struct {
		name  string
		edit  func(map[string]interface{})
		field string
	}{
		{"missing principal", func(p map[string]interface{}) { delete(p, "principal") }, "principal"},
		{"principal over cap", func(p map[string]interface{}) { p["principal"] = "2e9" }, "principal"},
		{"rate over cap", func(p map[string]interface{}) { p["annualRatePercent"] = "250" }, "annualRatePercent"},
		{"term over cap", func(p map[string]interface{}) { p["termYears"] = "60" }, "term"},
		{"unknown frequency", func(p map[string]interface{}) { p["paymentFrequency"] = "hourly" }, "paymentFrequency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := loanParams()
			tt.edit(params)
			_, err := handler(context.Background(), params)
			require.Error(t, err)
			assert.ErrorIs(t, err, validators.ErrInvalidInput)

			var inputErr *validators.InvalidInputError
			require.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.field, inputErr.Field)
		})
	}
}

func TestComputeLoanHandlerOutOfBounds(t *testing.T) {
	handler := ComputeLoanHandler(testConfig(), tracer, nil)

	params := loanParams()
	params["principal"] = "1000000000"
	params["annualRatePercent"] = "200"
	params["compoundingFrequency"] = "annually"
	params["paymentFrequency"] = "lumpSumAtEnd"
	params["termYears"] = "50"

	_, err := handler(context.Background(), params)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResultOutOfBounds)
	assert.NotErrorIs(t, err, validators.ErrInvalidInput)
}

func TestComputeLoanHandlerCache(t *testing.T) {
	store := cache.NewMemory(100)
	handler := ComputeLoanHandler(testConfig(), tracer, store)

	first, err := handler(context.Background(), loanParams())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())

	second, err := handler(context.Background(), loanParams())
	require.NoError(t, err)
	raw, ok := second.(json.RawMessage)
	require.True(t, ok, "expected cached JSON, got %T", second)

	want, err := json.Marshal(first)
	require.NoError(t, err)
	assert.JSONEq(t, string(want), string(raw))
}

func TestLoanScheduleHandler(t *testing.T) {
	handler := LoanScheduleHandler(testConfig(), tracer, nil)

	out, err := handler(context.Background(), loanParams())
	require.NoError(t, err)

	view, ok := out.(calculations.ScheduleView)
	require.True(t, ok, "unexpected result type %T", out)
	require.Len(t, view.Schedule, 60)
	assert.Equal(t, "0", view.Schedule[59].RemainingPrincipal.String())
}

func TestLoanScheduleHandlerTooManyEntries(t *testing.T) {
	cfg := testConfig()
	cfg.MaxScheduleEntries = 12
	handler := LoanScheduleHandler(cfg, tracer, nil)

	_, err := handler(context.Background(), loanParams())
	assert.ErrorIs(t, err, validators.ErrInvalidInput)
}

func TestComputeRoiHandler(t *testing.T) {
	handler := ComputeRoiHandler(testConfig(), tracer, nil)

	out, err := handler(context.Background(), map[string]interface{}{
		"amountInvested": "1000",
		"amountReturned": "2000",
		"startDate":      "2020-01-01",
		"endDate":        "2021-01-01",
	})
	require.NoError(t, err)

	view, ok := out.(calculations.RoiView)
	require.True(t, ok, "unexpected result type %T", out)
	assert.Equal(t, "100", view.RoiPercent.String())
	assert.Equal(t, float64(366), view.LengthDays)

	_, err = handler(context.Background(), map[string]interface{}{
		"amountInvested": "1000",
		"amountReturned": "2000",
		"startDate":      "2021-01-01",
		"endDate":        "2020-01-01",
	})
	assert.ErrorIs(t, err, validators.ErrInvalidInput)
}

func TestResultsBeyondBoundsAreRejected(t *testing.T) {
	tests := []struct {
		name    string
		handler ToolHandler
		params  map[string]interface{}
	}{
		{
			name:    "one day holding annualizes to infinity",
			handler: ComputeRoiHandler(testConfig(), tracer, nil),
			params: map[string]interface{}{
				"amountInvested": "1",
				"amountReturned": "1000",
				"startDate":      "2024-01-01",
				"endDate":        "2024-01-02",
			},
		},
		{
			name:    "roi percent beyond cap",
			handler: ComputeRoiHandler(testConfig(), tracer, nil),
			params: map[string]interface{}{
				"amountInvested": "0.0001",
				"amountReturned": "1000000000",
				"startDate":      "2000-01-01",
				"endDate":        "2040-01-01",
			},
		},
		{
			name:    "sale price beyond cap",
			handler: ComputeMarginHandler(testConfig(), tracer, nil),
			params:  map[string]interface{}{"cost": "1000000000", "markupPercent": "100000"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.handler(context.Background(), tt.params)
			require.Error(t, err, "got result %+v", out)
			assert.ErrorIs(t, err, ErrResultOutOfBounds)
			assert.NotErrorIs(t, err, validators.ErrInvalidInput)
		})
	}
}

func TestComputeMarginHandler(t *testing.T) {
	handler := ComputeMarginHandler(testConfig(), tracer, nil)

	out, err := handler(context.Background(), map[string]interface{}{"cost": "70", "markupPercent": "50"})
	require.NoError(t, err)

	view, ok := out.(calculations.MarginView)
	require.True(t, ok, "unexpected result type %T", out)
	assert.Equal(t, "105", view.SalePrice.String())
	assert.Equal(t, "35", view.GrossProfit.String())
	assert.Equal(t, "33.33", view.MarginPercent.String())

	_, err = handler(context.Background(), map[string]interface{}{"cost": "-1", "markupPercent": "50"})
	assert.ErrorIs(t, err, validators.ErrInvalidInput)
}

func TestComputeFeesHandler(t *testing.T) {
	handler := ComputeFeesHandler(testConfig(), tracer, nil)

	out, err := handler(context.Background(), map[string]interface{}{
		"ordersPerMonth":         "10",
		"avgOrderValue":          "100",
		"billingCycle":           "monthly",
		"usesIntegratedPayments": true,
	})
	require.NoError(t, err)

	comparison, ok := out.(FeeComparison)
	require.True(t, ok, "unexpected result type %T", out)
	require.Len(t, comparison.Tiers, len(calculations.DefaultFeeTiers()))
	assert.Equal(t, "Starter", comparison.Tiers[0].Tier)
	// 29 + 1000*2.9% + 10*0.30, no platform fee with integrated payments
	assert.Equal(t, "61", comparison.Tiers[0].TotalCost.String())
	assert.Equal(t, "0", comparison.Tiers[0].PlatformTransactionFee.String())
	assert.Equal(t, "Starter", comparison.Cheapest)
}

func TestRegistry(t *testing.T) {
	registry := Registry(testConfig(), tracer, nil)

	names := make(map[string]bool)
	for _, tool := range registry {
		require.NotNil(t, tool.Handler, tool.Name)
		assert.NotEmpty(t, tool.Description)
		names[tool.Name] = true
	}
	for _, name := range []string{ToolComputeLoan, ToolLoanSchedule, ToolComputeRoi, ToolComputeMargin, ToolComputeFees} {
		assert.True(t, names[name], "missing tool %s", name)
	}
}
