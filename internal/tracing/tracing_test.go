package tracing

import (
	"context"
	"testing"
)

func TestInitTracingWithoutEndpoint(t *testing.T) {
	ctx := context.Background()
	tracer, shutdown, err := InitTracing(ctx, "finance-calc-test", "")
	if err != nil {
		t.Fatalf("InitTracing() error = %v", err)
	}

	_, span := tracer.Start(ctx, "compute_loan")
	if !span.SpanContext().IsValid() {
		t.Error("expected a recording span with a valid context")
	}
	span.End()

	if err := shutdown(ctx); err != nil {
		t.Errorf("shutdown error = %v", err)
	}
}
