package commerce

import (
	"shopcore/pkg/logger"
	"shopcore/pkg/strutil"
)

// Service enforces the domain invariants on top of a Repository: well-formed
// input on user creation, referential existence on order placement. All
// operations are synchronous in-memory computations.
type Service struct {
	repo *Repository
	log  *logger.Logger
}

// NewService builds a service over the given repository.
func NewService(repo *Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log.With("component", "commerce")}
}

// CreateUser validates email and name, allocates the next user id and stores
// the user as active with empty metadata.
func (s *Service) CreateUser(email, name string) (User, error) {
	if err := requireNonEmpty(name, "name"); err != nil {
		return User{}, err
	}
	if !ValidateEmail(email) {
		return User{}, &ValidationError{Field: "email", Reason: "malformed address"}
	}
	u := User{
		ID:       s.repo.store.NextUserID(),
		Email:    email,
		Name:     name,
		Active:   true,
		Metadata: map[string]string{},
	}
	s.log.Info("user created", "user_id", u.ID)
	return s.repo.AddUser(u), nil
}

// User returns the user with the given id, if present.
func (s *Service) User(id int64) (User, bool) {
	return s.repo.GetUser(id)
}

// ActiveUsers returns all users with active=true, in store order.
func (s *Service) ActiveUsers() []User {
	var out []User
	for _, u := range s.repo.ListUsers() {
		if u.Active {
			out = append(out, u)
		}
	}
	return out
}

// SearchUsers matches users by name, case-insensitive substring. A blank
// query is a ValidationError.
func (s *Service) SearchUsers(query string) ([]User, error) {
	if err := requireNonEmpty(query, "query"); err != nil {
		return nil, err
	}
	return s.repo.FindUsersByName(query), nil
}

// DeactivateUser sets active=false, reporting whether the id exists.
// Deactivating an already-inactive user succeeds again.
func (s *Service) DeactivateUser(id int64) bool {
	ok := s.repo.DeactivateUser(id)
	if ok {
		s.log.Info("user deactivated", "user_id", id)
	}
	return ok
}

// AddProduct allocates the next product id and stores the product. The base
// path performs no validation; boundary layers check name and price before
// calling.
func (s *Service) AddProduct(name string, priceCents int64) Product {
	p := Product{ID: s.repo.store.NextProductID(), Name: name, PriceCents: priceCents}
	return s.repo.AddProduct(p)
}

// Product returns the product with the given id, if present.
func (s *Service) Product(id int64) (Product, bool) {
	return s.repo.GetProduct(id)
}

// Products returns all products in store order.
func (s *Service) Products() []Product {
	return s.repo.ListProducts()
}

// PlaceOrder checks that the user exists, then each product id in the given
// order, failing with a NotFoundError naming the first miss. On success it
// stores the order with the ids preserved verbatim and empty notes.
func (s *Service) PlaceOrder(userID int64, productIDs []int64) (Order, error) {
	if _, ok := s.repo.GetUser(userID); !ok {
		return Order{}, &NotFoundError{Kind: "user", ID: userID}
	}
	for _, pid := range productIDs {
		if _, ok := s.repo.GetProduct(pid); !ok {
			return Order{}, &NotFoundError{Kind: "product", ID: pid}
		}
	}
	o := Order{
		ID:         s.repo.store.NextOrderID(),
		UserID:     userID,
		ProductIDs: append([]int64(nil), productIDs...),
	}
	s.log.Info("order placed", "order_id", o.ID, "user_id", userID, "products", len(productIDs))
	return s.repo.AddOrder(o), nil
}

// Order returns the order with the given id, if present.
func (s *Service) Order(id int64) (Order, bool) {
	return s.repo.GetOrder(id)
}

// Orders returns all orders in store order.
func (s *Service) Orders() []Order {
	return s.repo.ListOrders()
}

// UpdateOrderNotes replaces an order's free-text notes.
func (s *Service) UpdateOrderNotes(id int64, notes string) error {
	if !s.repo.SetOrderNotes(id, notes) {
		return &NotFoundError{Kind: "order", ID: id}
	}
	return nil
}

// OrderTotalCents sums the prices of the order's products. Ids that no
// longer resolve contribute nothing; order references are not re-validated
// after creation, so a vanished product silently reduces the total rather
// than failing.
func (s *Service) OrderTotalCents(o Order) int64 {
	var total int64
	for _, pid := range o.ProductIDs {
		if p, ok := s.repo.GetProduct(pid); ok {
			total += p.PriceCents
		}
	}
	return total
}

// UserSlug returns a URL-safe slug of the user's display name.
func (s *Service) UserSlug(u User) string {
	return strutil.Slugify(u.DisplayName())
}
