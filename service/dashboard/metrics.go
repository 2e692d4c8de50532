// Package dashboard assembles the admin overview: the metric batch, the
// leaderboards and the recent notifications.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/ericlagergren/decimal"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"gitlab.com/minerex-platform/admin_api/model"
	"gitlab.com/minerex-platform/admin_api/monitor"
)

// DefaultMetricDeadline bounds a single metric query when the config
// does not set one.
const DefaultMetricDeadline = 3 * time.Second

// Spec is one named metric in the batch. Query computes the value for a
// window; Fallback is the neutral value shown when the query fails.
type Spec struct {
	Name     string
	Fallback *decimal.Big
	Query    func(ctx context.Context, window model.Window) (*decimal.Big, error)
}

// Aggregator evaluates a fixed metric table concurrently and fail-soft:
// one slow or broken query degrades its own snapshot and nothing else.
type Aggregator struct {
	specs    []Spec
	deadline time.Duration
}

func NewAggregator(specs []Spec, deadline time.Duration) *Aggregator {
	if deadline <= 0 {
		deadline = DefaultMetricDeadline
	}
	return &Aggregator{specs: specs, deadline: deadline}
}

// Names returns the metric names in batch order.
func (a *Aggregator) Names() []string {
	names := make([]string, len(a.specs))
	for i, spec := range a.specs {
		names[i] = spec.Name
	}
	return names
}

// Collect runs every metric of the batch concurrently and always returns
// exactly one snapshot per spec, in spec order. It never returns an
// error: a failed, timed-out or panicking query yields a degraded
// snapshot carrying the spec's fallback value.
func (a *Aggregator) Collect(ctx context.Context, window model.Window) []model.MetricSnapshot {
	snapshots := make([]model.MetricSnapshot, len(a.specs))

	var wg sync.WaitGroup
	for i, spec := range a.specs {
		wg.Add(1)
		go func(i int, spec Spec) {
			defer wg.Done()
			snapshots[i] = a.collectOne(ctx, spec, window)
		}(i, spec)
	}
	wg.Wait()

	return snapshots
}

func (a *Aggregator) collectOne(ctx context.Context, spec Spec, window model.Window) model.MetricSnapshot {
	deadlined, cancel := context.WithTimeout(ctx, a.deadline)
	defer cancel()

	value, err := a.runQuery(deadlined, spec, window)
	if err != nil {
		log.Warn().Err(err).
			Str("metric", spec.Name).
			Msg("dashboard metric degraded")
		monitor.DegradedMetrics.WithLabelValues(spec.Name).Inc()
		return model.MetricSnapshot{
			Name:   spec.Name,
			Value:  model.NewJSONDecimal(spec.Fallback),
			Status: model.MetricStatus_Degraded,
		}
	}
	return model.MetricSnapshot{
		Name:   spec.Name,
		Value:  model.NewJSONDecimal(value),
		Status: model.MetricStatus_OK,
	}
}

type queryResult struct {
	value *decimal.Big
	err   error
}

// runQuery isolates a single metric query, converting a panic into a
// plain error so the rest of the batch keeps going. A query stuck past
// its deadline is abandoned; its goroutine drains into the buffered
// channel when it eventually returns.
func (a *Aggregator) runQuery(ctx context.Context, spec Spec, window model.Window) (*decimal.Big, error) {
	out := make(chan queryResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				out <- queryResult{err: errors.Errorf("metric %s panicked: %v", spec.Name, r)}
			}
		}()
		value, err := spec.Query(ctx, window)
		out <- queryResult{value: value, err: err}
	}()

	select {
	case res := <-out:
		return res.value, res.err
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "metric %s", spec.Name)
	}
}
