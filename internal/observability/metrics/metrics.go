package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	feedBuilds       metric.Int64Counter
	feedItems        metric.Int64Histogram
	feedCacheHits    metric.Int64Counter
	feedCacheMisses  metric.Int64Counter
	clickouts        metric.Int64Counter
	rateLimitAllowed metric.Int64Counter
	rateLimitDenied  metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "shopshout"
	}
	meter := provider.Meter(name)

	feedBuilds, err := meter.Int64Counter("shopshout_feed_builds_total")
	if err != nil {
		return nil, err
	}
	feedItems, err := meter.Int64Histogram("shopshout_feed_items")
	if err != nil {
		return nil, err
	}
	feedCacheHits, err := meter.Int64Counter("shopshout_feed_cache_hits_total")
	if err != nil {
		return nil, err
	}
	feedCacheMisses, err := meter.Int64Counter("shopshout_feed_cache_misses_total")
	if err != nil {
		return nil, err
	}
	clickouts, err := meter.Int64Counter("shopshout_clickouts_total")
	if err != nil {
		return nil, err
	}
	rateLimitAllowed, err := meter.Int64Counter("shopshout_rate_limit_allowed_total")
	if err != nil {
		return nil, err
	}
	rateLimitDenied, err := meter.Int64Counter("shopshout_rate_limit_denied_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		feedBuilds:       feedBuilds,
		feedItems:        feedItems,
		feedCacheHits:    feedCacheHits,
		feedCacheMisses:  feedCacheMisses,
		clickouts:        clickouts,
		rateLimitAllowed: rateLimitAllowed,
		rateLimitDenied:  rateLimitDenied,
	}, nil
}

// RecordFeedBuild counts a full feed document render.
func (m *Metrics) RecordFeedBuild(ctx context.Context, feed string, items int) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("feed", strings.TrimSpace(feed)))
	m.feedBuilds.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.feedItems.Record(ctx, int64(items), metric.WithAttributes(attrs...))
}

// RecordFeedCacheHit counts a feed served from cache.
func (m *Metrics) RecordFeedCacheHit(ctx context.Context, feed string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("feed", strings.TrimSpace(feed)))
	m.feedCacheHits.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordFeedCacheMiss counts a feed rebuilt on cache miss.
func (m *Metrics) RecordFeedCacheMiss(ctx context.Context, feed string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("feed", strings.TrimSpace(feed)))
	m.feedCacheMisses.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordClickout counts an affiliate redirect.
func (m *Metrics) RecordClickout(ctx context.Context, storeID string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("store_id", strings.TrimSpace(storeID)))
	m.clickouts.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateLimitAllowed increments rate limit allow counts.
func (m *Metrics) RecordRateLimitAllowed(ctx context.Context, endpoint string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("endpoint", strings.TrimSpace(endpoint)))
	m.rateLimitAllowed.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateLimitDenied increments rate limit deny counts.
func (m *Metrics) RecordRateLimitDenied(ctx context.Context, endpoint, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(
		attribute.String("endpoint", strings.TrimSpace(endpoint)),
		attribute.String("reason", strings.TrimSpace(reason)),
	)
	m.rateLimitDenied.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"feed":        {},
	"endpoint":    {},
	"status_code": {},
	"store_id":    {},
	"reason":      {},
	"method":      {},
	"route":       {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
