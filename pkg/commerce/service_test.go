package commerce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"shopcore/pkg/logger"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewRepository(NewStore()), logger.NewNop())
}

func TestCreateUserAssignsSequentialIDs(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.CreateUser("alice@example.com", "Alice")
	require.NoError(t, err)
	b, err := svc.CreateUser("bob@example.com", "Bob")
	require.NoError(t, err)

	require.Equal(t, int64(1), a.ID)
	require.Equal(t, int64(2), b.ID)
	require.True(t, a.Active)
	require.NotNil(t, a.Metadata)
	require.Empty(t, a.Metadata)
}

func TestCreateUserValidation(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CreateUser("not-an-email", "X")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "email", verr.Field)

	_, err = svc.CreateUser("a@b.co", "")
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "name", verr.Field)

	_, err = svc.CreateUser("a@b.co", "   ")
	require.ErrorAs(t, err, &verr)

	// A failed creation must not consume an id.
	u, err := svc.CreateUser("a@b.co", "Ann")
	require.NoError(t, err)
	require.Equal(t, int64(1), u.ID)
}

func TestSearchUsers(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateUser("alice@example.com", "Alice")
	require.NoError(t, err)
	_, err = svc.CreateUser("bob@example.com", "Bob")
	require.NoError(t, err)

	found, err := svc.SearchUsers("ali")
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, "Alice", found[0].Name)

	_, err = svc.SearchUsers("")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	_, err = svc.SearchUsers("  ")
	require.ErrorAs(t, err, &verr)
}

func TestDeactivateUserIdempotent(t *testing.T) {
	svc := newTestService(t)
	u, err := svc.CreateUser("alice@example.com", "Alice")
	require.NoError(t, err)

	require.False(t, svc.DeactivateUser(999))

	require.True(t, svc.DeactivateUser(u.ID))
	require.True(t, svc.DeactivateUser(u.ID))
	got, ok := svc.User(u.ID)
	require.True(t, ok)
	require.False(t, got.Active)
	require.Empty(t, svc.ActiveUsers())
}

func TestPlaceOrderChecksUserFirst(t *testing.T) {
	svc := newTestService(t)
	// Both user and product are unknown; the user check must win.
	_, err := svc.PlaceOrder(42, []int64{7})
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	require.Equal(t, "user", nferr.Kind)
	require.Equal(t, int64(42), nferr.ID)
}

func TestPlaceOrderReportsFirstMissingProduct(t *testing.T) {
	svc := newTestService(t)
	u, err := svc.CreateUser("alice@example.com", "Alice")
	require.NoError(t, err)
	p := svc.AddProduct("Widget", 500)

	_, err = svc.PlaceOrder(u.ID, []int64{p.ID, 1234})
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	require.Equal(t, "product", nferr.Kind)
	require.Equal(t, int64(1234), nferr.ID)
}

func TestPlaceOrderPreservesDuplicatesAndOrder(t *testing.T) {
	svc := newTestService(t)
	u, err := svc.CreateUser("alice@example.com", "Alice")
	require.NoError(t, err)
	a := svc.AddProduct("A", 500)
	b := svc.AddProduct("B", 300)

	o, err := svc.PlaceOrder(u.ID, []int64{a.ID, b.ID, a.ID})
	require.NoError(t, err)
	require.Equal(t, int64(1), o.ID)
	require.Equal(t, []int64{a.ID, b.ID, a.ID}, o.ProductIDs)
	require.Empty(t, o.Notes)
	require.Equal(t, int64(1300), svc.OrderTotalCents(o))
}

func TestOrderTotalSkipsMissingProducts(t *testing.T) {
	store := NewStore()
	repo := NewRepository(store)
	svc := NewService(repo, logger.NewNop())
	p := svc.AddProduct("A", 500)
	// An order referencing a vanished product is inserted below the service
	// layer; the total silently skips the dangling id.
	repo.AddOrder(Order{ID: store.NextOrderID(), UserID: 1, ProductIDs: []int64{p.ID, 999}})

	o, ok := svc.Order(1)
	require.True(t, ok)
	require.Equal(t, int64(500), svc.OrderTotalCents(o))
}

func TestUpdateOrderNotes(t *testing.T) {
	svc := newTestService(t)
	u, err := svc.CreateUser("alice@example.com", "Alice")
	require.NoError(t, err)
	p := svc.AddProduct("A", 100)
	o, err := svc.PlaceOrder(u.ID, []int64{p.ID})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateOrderNotes(o.ID, "gift wrap"))
	got, ok := svc.Order(o.ID)
	require.True(t, ok)
	require.Equal(t, "gift wrap", got.Notes)

	err = svc.UpdateOrderNotes(999, "x")
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
	require.Equal(t, "order", nferr.Kind)
}

func TestDisplayNameAndSlug(t *testing.T) {
	svc := newTestService(t)

	named := User{Email: "jane.doe@example.com", Name: "Jane Q. Doe"}
	require.Equal(t, "Jane Q. Doe", named.DisplayName())
	require.Equal(t, "jane-q-doe", svc.UserSlug(named))

	unnamed := User{Email: "jane.doe@example.com"}
	require.Equal(t, "jane.doe", unnamed.DisplayName())
	require.Equal(t, "jane-doe", svc.UserSlug(unnamed))
}
