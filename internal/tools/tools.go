package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/devnzo/finance-calc/internal/cache"
	"github.com/devnzo/finance-calc/internal/calculations"
	"github.com/devnzo/finance-calc/internal/config"
	"github.com/devnzo/finance-calc/internal/forms"
	"github.com/devnzo/finance-calc/internal/logger"
	"github.com/devnzo/finance-calc/internal/metrics"
	"github.com/devnzo/finance-calc/internal/validators"
	"github.com/devnzo/finance-calc/pkg/utils"
)

// ToolHandler runs one calculator on decoded request parameters
type ToolHandler func(ctx context.Context, params map[string]interface{}) (interface{}, error)

// ErrResultOutOfBounds is returned when a result exceeds the configured balance cap
var ErrResultOutOfBounds = errors.New("result out of bounds")

const (
	ToolComputeLoan   = "compute_loan"
	ToolLoanSchedule  = "loan_schedule"
	ToolComputeRoi    = "compute_roi"
	ToolComputeMargin = "compute_margin"
	ToolComputeFees   = "compute_fees"
)

const maxMarkupPercent = 100_000

// Tool is a named calculator exposed by the service
type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Handler     ToolHandler `json:"-"`
}

// Registry returns every calculator tool. store may be nil to disable caching.
func Registry(cfg *config.Config, tracer trace.Tracer, store cache.Cache) []Tool {
	return []Tool{
		{Name: ToolComputeLoan, Description: "Loan payment, totals, fees and APR", Handler: ComputeLoanHandler(cfg, tracer, store)},
		{Name: ToolLoanSchedule, Description: "Per-period loan amortization schedule", Handler: LoanScheduleHandler(cfg, tracer, store)},
		{Name: ToolComputeRoi, Description: "Absolute and annualized return on investment", Handler: ComputeRoiHandler(cfg, tracer, store)},
		{Name: ToolComputeMargin, Description: "Sale price, gross profit and margin from cost and markup", Handler: ComputeMarginHandler(cfg, tracer, store)},
		{Name: ToolComputeFees, Description: "Monthly platform cost per pricing tier", Handler: ComputeFeesHandler(cfg, tracer, store)},
	}
}

// call tracks the span and metrics of one tool invocation
type call struct {
	toolName string
	span     trace.Span
	cfg      *config.Config
	store    cache.Cache
}

func start(ctx context.Context, tracer trace.Tracer, cfg *config.Config, store cache.Cache, toolName string) (context.Context, *call) {
	ctx, span := tracer.Start(ctx, toolName)
	metrics.CalculatorCalls.WithLabelValues(toolName, "started").Inc()
	return ctx, &call{toolName: toolName, span: span, cfg: cfg, store: store}
}

// fail records err against the span and metrics and wraps it for the caller
func (c *call) fail(err error) error {
	var kind string
	var wrapped error
	switch {
	case errors.Is(err, validators.ErrInvalidInput):
		kind = "validation"
		wrapped = fmt.Errorf("invalid parameters: %w", err)
	case errors.Is(err, ErrResultOutOfBounds):
		kind = "bounds"
		wrapped = err
	default:
		kind = "calculation"
		wrapped = fmt.Errorf("calculation failed: %w", err)
	}

	c.span.SetAttributes(attribute.String("error", kind+"_error"))
	c.span.RecordError(err)
	c.span.SetStatus(codes.Error, kind)
	metrics.CalculatorCalls.WithLabelValues(c.toolName, kind+"_error").Inc()
	metrics.CalculationErrors.WithLabelValues(c.toolName, kind).Inc()
	return wrapped
}

func (c *call) succeed(result interface{}) (interface{}, error) {
	c.span.SetAttributes(attribute.Bool("success", true))
	metrics.CalculatorCalls.WithLabelValues(c.toolName, "success").Inc()
	return result, nil
}

// run computes through the result cache. A cache hit returns the stored JSON as json.RawMessage.
func (c *call) run(ctx context.Context, input any, compute func() (interface{}, error)) (interface{}, error) {
	if c.store == nil {
		return c.finish(compute())
	}

	key, err := cache.Key(c.toolName, input)
	if err != nil {
		logger.Get().Warnw("cache key failed", "tool", c.toolName, "error", err)
		return c.finish(compute())
	}

	if raw, ok := c.store.Get(ctx, key); ok {
		metrics.CacheLookups.WithLabelValues(c.toolName, "hit").Inc()
		c.span.SetAttributes(attribute.Bool("cache_hit", true))
		return c.succeed(json.RawMessage(raw))
	}
	metrics.CacheLookups.WithLabelValues(c.toolName, "miss").Inc()

	result, err := compute()
	if err != nil {
		return nil, c.fail(err)
	}

	if data, err := json.Marshal(result); err != nil {
		logger.Get().Warnw("cache encode failed", "tool", c.toolName, "error", err)
	} else if err := c.store.Set(ctx, key, string(data), c.cfg.CacheTTL); err != nil {
		logger.Get().Warnw("cache store failed", "tool", c.toolName, "error", err)
	}
	return c.succeed(result)
}

func (c *call) finish(result interface{}, err error) (interface{}, error) {
	if err != nil {
		return nil, c.fail(err)
	}
	return c.succeed(result)
}

func (c *call) checkBalance(name string, value float64) error {
	if err := validators.CheckBalance(c.cfg, name, value); err != nil {
		return fmt.Errorf("%w: %v", ErrResultOutOfBounds, err)
	}
	return nil
}

func parseLoanParams(cfg *config.Config, params map[string]interface{}) (calculations.LoanInput, error) {
	in, err := forms.ParseLoan(params)
	if err != nil {
		return in, err
	}
	if err := validators.CheckPrincipal(cfg, in.Principal); err != nil {
		return in, err
	}
	if err := validators.CheckRate(cfg, in.AnnualRatePercent); err != nil {
		return in, err
	}
	if err := validators.CheckTermYears(cfg, in.TotalTermYears()); err != nil {
		return in, err
	}
	if err := validators.ValidatePositiveNumber("originationFeePercent", in.OriginationFeePercent, 0, 100); err != nil {
		return in, err
	}
	if err := validators.CheckFee(cfg, "documentationFee", in.DocumentationFee); err != nil {
		return in, err
	}
	if err := validators.CheckFee(cfg, "otherFees", in.OtherFees); err != nil {
		return in, err
	}
	return in, nil
}

func loanAttributes(in calculations.LoanInput) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Float64("principal", in.Principal),
		attribute.Float64("annual_rate_percent", in.AnnualRatePercent),
		attribute.String("compounding_frequency", string(in.CompoundingFrequency)),
		attribute.String("payment_frequency", string(in.PaymentFrequency)),
		attribute.Float64("term_years", in.TotalTermYears()),
	}
}

// ComputeLoanHandler serves the loan calculator
func ComputeLoanHandler(cfg *config.Config, tracer trace.Tracer, store cache.Cache) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := start(ctx, tracer, cfg, store, ToolComputeLoan)
		defer c.span.End()

		in, err := parseLoanParams(cfg, params)
		if err != nil {
			return nil, c.fail(err)
		}
		c.span.SetAttributes(loanAttributes(in)...)

		return c.run(ctx, in, func() (interface{}, error) {
			result, err := calculations.ComputeLoan(in)
			if err != nil {
				return nil, err
			}
			if err := c.checkBalance("totalPayments", result.TotalPayments); err != nil {
				return nil, err
			}
			c.span.SetAttributes(
				attribute.Float64("payment_per_period", utils.Round2(result.PaymentPerPeriod)),
				attribute.Float64("total_payments", utils.Round2(result.TotalPayments)),
			)
			return result.Display(), nil
		})
	}
}

// LoanScheduleHandler serves the amortization schedule
func LoanScheduleHandler(cfg *config.Config, tracer trace.Tracer, store cache.Cache) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := start(ctx, tracer, cfg, store, ToolLoanSchedule)
		defer c.span.End()

		in, err := parseLoanParams(cfg, params)
		if err != nil {
			return nil, c.fail(err)
		}
		c.span.SetAttributes(loanAttributes(in)...)

		return c.run(ctx, in, func() (interface{}, error) {
			result, err := calculations.AmortizationSchedule(in, cfg.MaxScheduleEntries)
			if err != nil {
				return nil, err
			}
			if err := c.checkBalance("totalPayments", result.Summary.TotalPayments); err != nil {
				return nil, err
			}
			c.span.SetAttributes(attribute.Int("periods", len(result.Schedule)))
			return result.Display(), nil
		})
	}
}

// ComputeRoiHandler serves the ROI calculator
func ComputeRoiHandler(cfg *config.Config, tracer trace.Tracer, store cache.Cache) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := start(ctx, tracer, cfg, store, ToolComputeRoi)
		defer c.span.End()

		in, err := forms.ParseRoi(params)
		if err != nil {
			return nil, c.fail(err)
		}
		if err := validators.CheckAmount(cfg, "amountInvested", in.AmountInvested); err != nil {
			return nil, c.fail(err)
		}
		if err := validators.CheckAmount(cfg, "amountReturned", in.AmountReturned); err != nil {
			return nil, c.fail(err)
		}

		c.span.SetAttributes(
			attribute.Float64("amount_invested", in.AmountInvested),
			attribute.Float64("amount_returned", in.AmountReturned),
			attribute.String("start_date", in.StartDate.Format(forms.DateLayout)),
			attribute.String("end_date", in.EndDate.Format(forms.DateLayout)),
		)

		return c.run(ctx, in, func() (interface{}, error) {
			result, err := calculations.ComputeRoi(in)
			if err != nil {
				return nil, err
			}
			// short holdings annualize explosively; +Inf has no presentation
			if err := c.checkBalance("roiPercent", result.RoiPercent); err != nil {
				return nil, err
			}
			if err := c.checkBalance("annualizedRoiPercent", result.AnnualizedRoiPercent); err != nil {
				return nil, err
			}
			return result.Display(), nil
		})
	}
}

// ComputeMarginHandler serves the profit margin calculator
func ComputeMarginHandler(cfg *config.Config, tracer trace.Tracer, store cache.Cache) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := start(ctx, tracer, cfg, store, ToolComputeMargin)
		defer c.span.End()

		in, err := forms.ParseMargin(params)
		if err != nil {
			return nil, c.fail(err)
		}
		if err := validators.CheckAmount(cfg, "cost", in.Cost); err != nil {
			return nil, c.fail(err)
		}
		if err := validators.ValidatePositiveNumber("markupPercent", in.MarkupPercent, 0, maxMarkupPercent); err != nil {
			return nil, c.fail(err)
		}

		c.span.SetAttributes(
			attribute.Float64("cost", in.Cost),
			attribute.Float64("markup_percent", in.MarkupPercent),
		)

		return c.run(ctx, in, func() (interface{}, error) {
			result, err := calculations.ComputeMargin(in)
			if err != nil {
				return nil, err
			}
			if err := c.checkBalance("salePrice", result.SalePrice); err != nil {
				return nil, err
			}
			return result.Display(), nil
		})
	}
}

// FeeComparison is the platform fee estimator response
type FeeComparison struct {
	Tiers    []calculations.FeeView `json:"tiers"`
	Cheapest string                 `json:"cheapest,omitempty"`
}

// ComputeFeesHandler serves the platform fee estimator against the default tier table
func ComputeFeesHandler(cfg *config.Config, tracer trace.Tracer, store cache.Cache) ToolHandler {
	return func(ctx context.Context, params map[string]interface{}) (interface{}, error) {
		ctx, c := start(ctx, tracer, cfg, store, ToolComputeFees)
		defer c.span.End()

		in, err := forms.ParseFees(params)
		if err != nil {
			return nil, c.fail(err)
		}
		if err := validators.CheckOrders(cfg, in.OrdersPerMonth); err != nil {
			return nil, c.fail(err)
		}
		if err := validators.CheckAmount(cfg, "avgOrderValue", in.AvgOrderValue); err != nil {
			return nil, c.fail(err)
		}

		c.span.SetAttributes(
			attribute.Int("orders_per_month", in.OrdersPerMonth),
			attribute.Float64("avg_order_value", in.AvgOrderValue),
			attribute.String("billing_cycle", string(in.BillingCycle)),
			attribute.Bool("integrated_payments", in.UsesIntegratedPayments),
		)

		return c.run(ctx, in, func() (interface{}, error) {
			results, err := calculations.ComputeFees(in, calculations.DefaultFeeTiers())
			if err != nil {
				return nil, err
			}
			comparison := FeeComparison{Tiers: make([]calculations.FeeView, 0, len(results))}
			for _, r := range results {
				if err := c.checkBalance("totalCost", r.TotalCost); err != nil {
					return nil, err
				}
				comparison.Tiers = append(comparison.Tiers, r.Display())
			}
			if cheapest, ok := calculations.CheapestTier(results); ok {
				comparison.Cheapest = cheapest.Tier
			}
			return comparison, nil
		})
	}
}
