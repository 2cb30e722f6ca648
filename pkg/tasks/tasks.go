// Package tasks holds the periodic and operational jobs that run beside the
// request path: seeding example data, welcome-email fanout, and the metrics
// recompute that publishes analytics snapshots to a sink.
package tasks

import (
	"context"

	"shopcore/pkg/commerce"
	"shopcore/pkg/logger"
)

// MetricsSink receives recomputed metric snapshots.
type MetricsSink interface {
	PublishMetrics(ctx context.Context, metrics map[string]float64) error
}

// Runner executes background jobs against one service instance.
type Runner struct {
	svc       *commerce.Service
	analytics *commerce.Analytics
	sink      MetricsSink
	log       *logger.Logger
}

// NewRunner builds a job runner. sink may be nil, in which case recomputed
// metrics are only returned to the caller.
func NewRunner(svc *commerce.Service, analytics *commerce.Analytics, sink MetricsSink, log *logger.Logger) *Runner {
	return &Runner{svc: svc, analytics: analytics, sink: sink, log: log.With("component", "tasks")}
}

// SeedExampleData creates two fixed sample users. It is idempotent: when any
// active user already exists it does nothing.
func (r *Runner) SeedExampleData() error {
	if len(r.svc.ActiveUsers()) > 0 {
		return nil
	}
	if _, err := r.svc.CreateUser("alice@example.com", "Alice"); err != nil {
		return err
	}
	if _, err := r.svc.CreateUser("bob@example.com", "Bob"); err != nil {
		return err
	}
	r.log.Info("seeded example users")
	return nil
}

// SendWelcomeEmails invokes send once per active user and returns how many
// were sent. The first send failure stops the fanout.
func (r *Runner) SendWelcomeEmails(ctx context.Context, send func(email string) error) (int, error) {
	count := 0
	for _, u := range r.svc.ActiveUsers() {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if err := send(u.Email); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// RecomputeMetrics recalculates the aggregate order metrics and publishes
// the snapshot to the sink, if one is configured.
func (r *Runner) RecomputeMetrics(ctx context.Context) (map[string]float64, error) {
	metrics := map[string]float64{
		"average_order_value": r.analytics.AverageOrderValue(),
		"median_order_value":  r.analytics.MedianOrderValue(),
		"total_revenue":       float64(r.analytics.TotalRevenueCents()) / 100.0,
	}
	if r.sink != nil {
		if err := r.sink.PublishMetrics(ctx, metrics); err != nil {
			return metrics, err
		}
	}
	r.log.Debug("metrics recomputed", "orders", r.analytics.OrdersCount())
	return metrics, nil
}
