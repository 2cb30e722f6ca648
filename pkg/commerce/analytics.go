package commerce

import (
	"fmt"
	"sort"
)

// Analytics computes read-only aggregates over orders. Monetary results are
// reported in major currency units; everything internal stays in cents.
type Analytics struct {
	repo *Repository
	svc  *Service
}

// NewAnalytics builds an analytics reader sharing the service's repository.
func NewAnalytics(repo *Repository, svc *Service) *Analytics {
	return &Analytics{repo: repo, svc: svc}
}

// ProductCount pairs a product label with its occurrence count.
type ProductCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (a *Analytics) orderTotals() []int64 {
	orders := a.repo.ListOrders()
	totals := make([]int64, 0, len(orders))
	for _, o := range orders {
		totals = append(totals, a.svc.OrderTotalCents(o))
	}
	return totals
}

// AverageOrderValue is the mean per-order total in major units, 0.0 when
// there are no orders.
func (a *Analytics) AverageOrderValue() float64 {
	totals := a.orderTotals()
	if len(totals) == 0 {
		return 0.0
	}
	var sum int64
	for _, t := range totals {
		sum += t
	}
	return float64(sum) / float64(len(totals)) / 100.0
}

// MedianOrderValue is the median per-order total in major units, averaging
// the two middle totals for an even count; 0.0 when there are no orders.
func (a *Analytics) MedianOrderValue() float64 {
	totals := a.orderTotals()
	if len(totals) == 0 {
		return 0.0
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i] < totals[j] })
	mid := len(totals) / 2
	if len(totals)%2 == 1 {
		return float64(totals[mid]) / 100.0
	}
	return float64(totals[mid-1]+totals[mid]) / 200.0
}

// TotalRevenueCents sums every order's total.
func (a *Analytics) TotalRevenueCents() int64 {
	var sum int64
	for _, t := range a.orderTotals() {
		sum += t
	}
	return sum
}

// UserLifetimeValue sums the totals of the user's orders, in major units.
func (a *Analytics) UserLifetimeValue(userID int64) float64 {
	var cents int64
	for _, o := range a.repo.ListOrders() {
		if o.UserID == userID {
			cents += a.svc.OrderTotalCents(o)
		}
	}
	return float64(cents) / 100.0
}

// TopProducts returns the n most frequently ordered products. Every
// occurrence counts, including duplicates within one order. Ties keep the
// first-encountered product first. Ids that no longer resolve are labeled
// "#<id>" rather than omitted.
func (a *Analytics) TopProducts(n int) []ProductCount {
	counts := make(map[int64]int)
	var seen []int64
	for _, o := range a.repo.ListOrders() {
		for _, pid := range o.ProductIDs {
			if _, ok := counts[pid]; !ok {
				seen = append(seen, pid)
			}
			counts[pid]++
		}
	}
	sort.SliceStable(seen, func(i, j int) bool {
		return counts[seen[i]] > counts[seen[j]]
	})
	if n > len(seen) {
		n = len(seen)
	}
	if n < 0 {
		n = 0
	}
	out := make([]ProductCount, 0, n)
	for _, pid := range seen[:n] {
		label := fmt.Sprintf("#%d", pid)
		if p, ok := a.repo.GetProduct(pid); ok {
			label = p.Name
		}
		out = append(out, ProductCount{Name: label, Count: counts[pid]})
	}
	return out
}

// OrdersCount returns the number of orders in the store.
func (a *Analytics) OrdersCount() int {
	return len(a.repo.ListOrders())
}
