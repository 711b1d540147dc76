package obsx

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	api "go.opentelemetry.io/otel/metric"

	coreerrors "go.eggybyte.com/jscaffold/core/errors"
)

const (
	// OperationsMetric counts scaffolding operations by operation and outcome.
	OperationsMetric = "jscaffold_operations"
	// DurationMetric records operation latency in seconds.
	DurationMetric = "jscaffold_operation_duration_seconds"

	// OutcomeSuccess labels operations that returned no error.
	OutcomeSuccess = "success"

	meterName = "go.eggybyte.com/jscaffold/scaffold"
)

var durationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// Recorder records one counter increment and one latency sample per operation.
type Recorder struct {
	operations api.Int64Counter
	duration   api.Float64Histogram
}

// NewRecorder creates the operation instruments on the provider's meter.
func NewRecorder(p *Provider) (*Recorder, error) {
	meter := p.Meter(meterName)

	operations, err := meter.Int64Counter(
		OperationsMetric,
		api.WithDescription("Number of scaffolding operations"),
		api.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s counter: %w", OperationsMetric, err)
	}

	duration, err := meter.Float64Histogram(
		DurationMetric,
		api.WithDescription("Duration of scaffolding operations"),
		api.WithUnit("s"),
		api.WithExplicitBucketBoundaries(durationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s histogram: %w", DurationMetric, err)
	}

	return &Recorder{operations: operations, duration: duration}, nil
}

// Record adds one observation for op. The outcome label is "success" or the
// lower-cased error code ("not_found", "internal", ...).
func (r *Recorder) Record(ctx context.Context, op string, elapsed time.Duration, err error) {
	attrs := api.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", Outcome(err)),
	)
	r.operations.Add(ctx, 1, attrs)
	r.duration.Record(ctx, elapsed.Seconds(), attrs)
}

// Outcome maps an operation error to its metric label.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	code := coreerrors.CodeOf(err)
	if code == "" {
		code = coreerrors.CodeInternal
	}
	return strings.ToLower(string(code))
}
