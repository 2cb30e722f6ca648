package commerce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shopcore/pkg/logger"
)

type analyticsFixture struct {
	store     *Store
	repo      *Repository
	svc       *Service
	analytics *Analytics
	user      User
}

func newAnalyticsFixture(t *testing.T) *analyticsFixture {
	t.Helper()
	store := NewStore()
	repo := NewRepository(store)
	svc := NewService(repo, logger.NewNop())
	u, err := svc.CreateUser("alice@example.com", "Alice")
	require.NoError(t, err)
	return &analyticsFixture{
		store:     store,
		repo:      repo,
		svc:       svc,
		analytics: NewAnalytics(repo, svc),
		user:      u,
	}
}

// placeOrderCents creates one single-product order with the given total.
func (f *analyticsFixture) placeOrderCents(t *testing.T, cents int64) Order {
	t.Helper()
	p := f.svc.AddProduct("item", cents)
	o, err := f.svc.PlaceOrder(f.user.ID, []int64{p.ID})
	require.NoError(t, err)
	return o
}

func TestAverageOrderValue(t *testing.T) {
	f := newAnalyticsFixture(t)
	require.Equal(t, 0.0, f.analytics.AverageOrderValue())

	f.placeOrderCents(t, 1000)
	f.placeOrderCents(t, 2000)
	require.InDelta(t, 15.00, f.analytics.AverageOrderValue(), 1e-9)
}

func TestMedianOrderValue(t *testing.T) {
	f := newAnalyticsFixture(t)
	require.Equal(t, 0.0, f.analytics.MedianOrderValue())

	f.placeOrderCents(t, 300)
	f.placeOrderCents(t, 100)
	require.InDelta(t, 2.00, f.analytics.MedianOrderValue(), 1e-9)

	f2 := newAnalyticsFixture(t)
	f2.placeOrderCents(t, 100)
	f2.placeOrderCents(t, 200)
	f2.placeOrderCents(t, 300)
	require.InDelta(t, 2.00, f2.analytics.MedianOrderValue(), 1e-9)

	f3 := newAnalyticsFixture(t)
	f3.placeOrderCents(t, 100)
	f3.placeOrderCents(t, 200)
	require.InDelta(t, 1.50, f3.analytics.MedianOrderValue(), 1e-9)
}

func TestTotalRevenueAndLifetimeValue(t *testing.T) {
	f := newAnalyticsFixture(t)
	require.Equal(t, int64(0), f.analytics.TotalRevenueCents())
	require.Equal(t, 0.0, f.analytics.UserLifetimeValue(f.user.ID))

	f.placeOrderCents(t, 1000)
	f.placeOrderCents(t, 250)
	other, err := f.svc.CreateUser("bob@example.com", "Bob")
	require.NoError(t, err)
	p := f.svc.AddProduct("other-item", 400)
	_, err = f.svc.PlaceOrder(other.ID, []int64{p.ID})
	require.NoError(t, err)

	require.Equal(t, int64(1650), f.analytics.TotalRevenueCents())
	require.InDelta(t, 12.50, f.analytics.UserLifetimeValue(f.user.ID), 1e-9)
	require.InDelta(t, 4.00, f.analytics.UserLifetimeValue(other.ID), 1e-9)
	require.Equal(t, 0.0, f.analytics.UserLifetimeValue(999))
	require.Equal(t, 3, f.analytics.OrdersCount())
}

func TestTopProducts(t *testing.T) {
	f := newAnalyticsFixture(t)
	a := f.svc.AddProduct("A", 100)
	b := f.svc.AddProduct("B", 200)

	_, err := f.svc.PlaceOrder(f.user.ID, []int64{a.ID, a.ID, b.ID})
	require.NoError(t, err)

	top := f.analytics.TopProducts(1)
	require.Len(t, top, 1)
	require.Equal(t, ProductCount{Name: "A", Count: 2}, top[0])

	top = f.analytics.TopProducts(10)
	require.Equal(t, []ProductCount{{Name: "A", Count: 2}, {Name: "B", Count: 1}}, top)

	require.Empty(t, f.analytics.TopProducts(0))
}

func TestTopProductsTiesKeepFirstEncountered(t *testing.T) {
	f := newAnalyticsFixture(t)
	a := f.svc.AddProduct("A", 100)
	b := f.svc.AddProduct("B", 200)

	_, err := f.svc.PlaceOrder(f.user.ID, []int64{b.ID, a.ID})
	require.NoError(t, err)
	_, err = f.svc.PlaceOrder(f.user.ID, []int64{a.ID, b.ID})
	require.NoError(t, err)

	top := f.analytics.TopProducts(2)
	require.Equal(t, []ProductCount{{Name: "B", Count: 2}, {Name: "A", Count: 2}}, top)
}

func TestTopProductsLabelsUnresolvedIDs(t *testing.T) {
	f := newAnalyticsFixture(t)
	// Dangling reference inserted below the service layer.
	f.repo.AddOrder(Order{ID: f.store.NextOrderID(), UserID: f.user.ID, ProductIDs: []int64{77, 77}})

	top := f.analytics.TopProducts(3)
	require.Equal(t, []ProductCount{{Name: "#77", Count: 2}}, top)
}
