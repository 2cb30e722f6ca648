package commerce

import "sync"

// Store owns all domain records. It is purely mechanical: identifiers are
// handed out by monotonic counters, inserts and lookups perform no
// validation. Listings iterate in insertion order so callers see stable
// output. A single mutex serializes counter increments and map mutations;
// construct one Store per isolated unit (test, process) — there is no
// package-level default.
type Store struct {
	mu sync.RWMutex

	users    map[int64]*User
	products map[int64]*Product
	orders   map[int64]*Order

	userIDs    []int64
	productIDs []int64
	orderIDs   []int64

	nextUserID    int64
	nextProductID int64
	nextOrderID   int64
}

// NewStore returns an empty store with all counters at 1.
func NewStore() *Store {
	return &Store{
		users:         make(map[int64]*User),
		products:      make(map[int64]*Product),
		orders:        make(map[int64]*Order),
		nextUserID:    1,
		nextProductID: 1,
		nextOrderID:   1,
	}
}

// NextUserID returns the current user counter and increments it.
func (s *Store) NextUserID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextUserID
	s.nextUserID++
	return id
}

// NextProductID returns the current product counter and increments it.
func (s *Store) NextProductID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextProductID
	s.nextProductID++
	return id
}

// NextOrderID returns the current order counter and increments it.
func (s *Store) NextOrderID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextOrderID
	s.nextOrderID++
	return id
}

// InsertUser stores the user under its id.
func (s *Store) InsertUser(u User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		s.userIDs = append(s.userIDs, u.ID)
	}
	s.users[u.ID] = &u
}

// GetUser returns the user with the given id, if present.
func (s *Store) GetUser(id int64) (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// ListUsers returns all users in insertion order.
func (s *Store) ListUsers() []User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]User, 0, len(s.userIDs))
	for _, id := range s.userIDs {
		out = append(out, *s.users[id])
	}
	return out
}

// InsertProduct stores the product under its id.
func (s *Store) InsertProduct(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; !ok {
		s.productIDs = append(s.productIDs, p.ID)
	}
	s.products[p.ID] = &p
}

// GetProduct returns the product with the given id, if present.
func (s *Store) GetProduct(id int64) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return Product{}, false
	}
	return *p, true
}

// ListProducts returns all products in insertion order.
func (s *Store) ListProducts() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.productIDs))
	for _, id := range s.productIDs {
		out = append(out, *s.products[id])
	}
	return out
}

// InsertOrder stores the order under its id.
func (s *Store) InsertOrder(o Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; !ok {
		s.orderIDs = append(s.orderIDs, o.ID)
	}
	s.orders[o.ID] = &o
}

// GetOrder returns the order with the given id, if present.
func (s *Store) GetOrder(id int64) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.orders[id]
	if !ok {
		return Order{}, false
	}
	return *o, true
}

// ListOrders returns all orders in insertion order.
func (s *Store) ListOrders() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Order, 0, len(s.orderIDs))
	for _, id := range s.orderIDs {
		out = append(out, *s.orders[id])
	}
	return out
}

// setUserActive flips the active flag in place. Used by the repository.
func (s *Store) setUserActive(id int64, active bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return false
	}
	u.Active = active
	return true
}

// setOrderNotes replaces the notes of a stored order. Used by the repository.
func (s *Store) setOrderNotes(id int64, notes string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return false
	}
	o.Notes = notes
	return true
}
