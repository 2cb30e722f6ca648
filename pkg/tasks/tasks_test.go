package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"shopcore/pkg/commerce"
	"shopcore/pkg/logger"
)

type memorySink struct {
	published []map[string]float64
	err       error
}

func (s *memorySink) PublishMetrics(_ context.Context, metrics map[string]float64) error {
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, metrics)
	return nil
}

func newTestRunner(t *testing.T, sink MetricsSink) (*Runner, *commerce.Service) {
	t.Helper()
	repo := commerce.NewRepository(commerce.NewStore())
	svc := commerce.NewService(repo, logger.NewNop())
	analytics := commerce.NewAnalytics(repo, svc)
	return NewRunner(svc, analytics, sink, logger.NewNop()), svc
}

func TestSeedExampleData(t *testing.T) {
	runner, svc := newTestRunner(t, nil)

	require.NoError(t, runner.SeedExampleData())
	users := svc.ActiveUsers()
	require.Len(t, users, 2)
	require.Equal(t, "Alice", users[0].Name)
	require.Equal(t, "Bob", users[1].Name)

	// Second run is a no-op.
	require.NoError(t, runner.SeedExampleData())
	require.Len(t, svc.ActiveUsers(), 2)
}

func TestSeedExampleDataSkipsWhenActiveUserExists(t *testing.T) {
	runner, svc := newTestRunner(t, nil)
	_, err := svc.CreateUser("carol@example.com", "Carol")
	require.NoError(t, err)

	require.NoError(t, runner.SeedExampleData())
	require.Len(t, svc.ActiveUsers(), 1)
}

func TestSendWelcomeEmails(t *testing.T) {
	runner, svc := newTestRunner(t, nil)
	require.NoError(t, runner.SeedExampleData())
	u, err := svc.CreateUser("carol@example.com", "Carol")
	require.NoError(t, err)
	svc.DeactivateUser(u.ID)

	var sent []string
	n, err := runner.SendWelcomeEmails(context.Background(), func(email string) error {
		sent = append(sent, email)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, []string{"alice@example.com", "bob@example.com"}, sent)
}

func TestSendWelcomeEmailsStopsOnError(t *testing.T) {
	runner, _ := newTestRunner(t, nil)
	require.NoError(t, runner.SeedExampleData())

	boom := errors.New("smtp down")
	n, err := runner.SendWelcomeEmails(context.Background(), func(string) error { return boom })
	require.ErrorIs(t, err, boom)
	require.Zero(t, n)
}

func TestRecomputeMetricsPublishes(t *testing.T) {
	sink := &memorySink{}
	runner, svc := newTestRunner(t, sink)
	u, err := svc.CreateUser("alice@example.com", "Alice")
	require.NoError(t, err)
	p := svc.AddProduct("Widget", 1000)
	_, err = svc.PlaceOrder(u.ID, []int64{p.ID})
	require.NoError(t, err)
	_, err = svc.PlaceOrder(u.ID, []int64{p.ID, p.ID})
	require.NoError(t, err)

	metrics, err := runner.RecomputeMetrics(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 15.00, metrics["average_order_value"], 1e-9)
	require.InDelta(t, 15.00, metrics["median_order_value"], 1e-9)
	require.InDelta(t, 30.00, metrics["total_revenue"], 1e-9)
	require.Len(t, sink.published, 1)
}

func TestRecomputeMetricsSinkFailure(t *testing.T) {
	boom := errors.New("redis down")
	runner, _ := newTestRunner(t, &memorySink{err: boom})

	metrics, err := runner.RecomputeMetrics(context.Background())
	require.ErrorIs(t, err, boom)
	// The computed snapshot is still returned alongside the publish error.
	require.Contains(t, metrics, "average_order_value")
}
