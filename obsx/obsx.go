// Package obsx provides Prometheus-exported OpenTelemetry metrics for jscaffold.
//
// Overview:
//   - Responsibility: Bootstrap the meter provider and record scaffolding operation metrics
//   - Key Types: Options, Provider, Recorder
//   - Concurrency Model: Provider and Recorder are safe for concurrent use
//   - Error Semantics: NewProvider and NewRecorder return errors for initialization failures
//   - Performance Notes: Metrics are aggregated in memory and written on demand
//
// A CLI run is short-lived, so metrics are not scraped; they are written
// once to a textfile for node-exporter's textfile collector.
//
// Usage:
//
//	provider, err := obsx.NewProvider(ctx, obsx.Options{ServiceName: "jscaffold"})
//	recorder, err := obsx.NewRecorder(provider)
//	recorder.Record(ctx, "create_project", time.Since(start), err)
//	err = provider.WriteTextfile("/var/lib/node_exporter/jscaffold.prom")
//	defer provider.Shutdown(ctx)
package obsx

import (
	"context"

	promclient "github.com/prometheus/client_golang/prometheus"
	api "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"

	"go.eggybyte.com/jscaffold/obsx/internal"
)

// Options holds configuration for the metrics provider.
type Options struct {
	ServiceName    string            // Service name for metrics
	ServiceVersion string            // Service version
	ResourceAttrs  map[string]string // Additional resource attributes
}

// Provider manages the OpenTelemetry meter provider with Prometheus export.
// The provider must be shut down when no longer needed.
type Provider struct {
	impl *internal.Provider
}

// NewProvider creates a new metrics provider.
//
// Parameters:
//   - ctx: context for provider initialization
//   - opts: provider configuration options
//
// Returns:
//   - *Provider: initialized provider instance
//   - error: initialization error if any
func NewProvider(ctx context.Context, opts Options) (*Provider, error) {
	impl, err := internal.NewProvider(ctx, internal.ProviderOptions{
		ServiceName:    opts.ServiceName,
		ServiceVersion: opts.ServiceVersion,
		ResourceAttrs:  opts.ResourceAttrs,
	})
	if err != nil {
		return nil, err
	}

	return &Provider{impl: impl}, nil
}

// MeterProvider returns the OpenTelemetry meter provider.
func (p *Provider) MeterProvider() *metric.MeterProvider {
	return p.impl.MeterProvider()
}

// Meter returns an OpenTelemetry Meter for creating custom metrics.
func (p *Provider) Meter(name string) api.Meter {
	return p.impl.MeterProvider().Meter(name)
}

// Gatherer returns the Prometheus gatherer holding exported metrics.
func (p *Provider) Gatherer() promclient.Gatherer {
	return p.impl.Registry()
}

// WriteTextfile writes all metrics in Prometheus text format to path.
//
// Concurrency:
//   - Safe for concurrent use; the file is replaced atomically
func (p *Provider) WriteTextfile(path string) error {
	return p.impl.WriteTextfile(path)
}

// Shutdown gracefully shuts down the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.impl.Shutdown(ctx)
}
