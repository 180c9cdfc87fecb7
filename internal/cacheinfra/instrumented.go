package cacheinfra

import (
	"context"

	"github.com/goliatone/go-menu-cache/cache"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the cache counters. Every counter is labelled by kind.
type Metrics struct {
	Hits          *prometheus.CounterVec
	Misses        *prometheus.CounterVec
	Sets          *prometheus.CounterVec
	Invalidations *prometheus.CounterVec
	Errors        *prometheus.CounterVec
}

// NewMetrics creates the cache counters and registers them with reg when reg
// is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "menu",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache lookups served from the cache.",
		}, []string{"kind"}),
		Misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "menu",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache lookups that fell through to the store.",
		}, []string{"kind"}),
		Sets: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "menu",
			Subsystem: "cache",
			Name:      "sets_total",
			Help:      "Entries written to the cache.",
		}, []string{"kind"}),
		Invalidations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "menu",
			Subsystem: "cache",
			Name:      "invalidations_total",
			Help:      "Keys deleted from the cache.",
		}, []string{"kind"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "menu",
			Subsystem: "cache",
			Name:      "errors_total",
			Help:      "Cache operations that failed in the backend.",
		}, []string{"kind", "op"}),
	}

	if reg != nil {
		reg.MustRegister(m.Hits, m.Misses, m.Sets, m.Invalidations, m.Errors)
	}
	return m
}

// instrumentedGateway counts gateway traffic without changing its behaviour.
type instrumentedGateway struct {
	next    cache.Gateway
	metrics *Metrics
}

// Instrument decorates a gateway with prometheus counters.
func Instrument(next cache.Gateway, metrics *Metrics) cache.Gateway {
	if metrics == nil {
		return next
	}
	return &instrumentedGateway{next: next, metrics: metrics}
}

func (g *instrumentedGateway) Exists(ctx context.Context, key cache.Key) (bool, error) {
	ok, err := g.next.Exists(ctx, key)
	if err != nil {
		g.metrics.Errors.WithLabelValues(key.Kind.String(), "exists").Inc()
	}
	return ok, err
}

func (g *instrumentedGateway) Get(ctx context.Context, key cache.Key, dst any) (bool, error) {
	found, err := g.next.Get(ctx, key, dst)
	switch {
	case err != nil:
		g.metrics.Errors.WithLabelValues(key.Kind.String(), "get").Inc()
	case found:
		g.metrics.Hits.WithLabelValues(key.Kind.String()).Inc()
	default:
		g.metrics.Misses.WithLabelValues(key.Kind.String()).Inc()
	}
	return found, err
}

func (g *instrumentedGateway) Set(ctx context.Context, key cache.Key, value any) error {
	err := g.next.Set(ctx, key, value)
	if err != nil {
		g.metrics.Errors.WithLabelValues(key.Kind.String(), "set").Inc()
		return err
	}
	g.metrics.Sets.WithLabelValues(key.Kind.String()).Inc()
	return nil
}

func (g *instrumentedGateway) Delete(ctx context.Context, key cache.Key) error {
	err := g.next.Delete(ctx, key)
	if err != nil {
		g.metrics.Errors.WithLabelValues(key.Kind.String(), "delete").Inc()
		return err
	}
	g.metrics.Invalidations.WithLabelValues(key.Kind.String()).Inc()
	return nil
}
