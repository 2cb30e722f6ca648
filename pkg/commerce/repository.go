package commerce

import "strings"

// Repository is a thin accessor layer over a Store. It adds the query and
// mutation helpers the service layer needs but enforces no business rules.
type Repository struct {
	store *Store
}

// NewRepository wraps the given store.
func NewRepository(store *Store) *Repository {
	return &Repository{store: store}
}

func (r *Repository) AddUser(u User) User {
	r.store.InsertUser(u)
	return u
}

func (r *Repository) GetUser(id int64) (User, bool) { return r.store.GetUser(id) }

func (r *Repository) ListUsers() []User { return r.store.ListUsers() }

// FindUsersByName matches users whose name contains query, case-insensitive.
// An empty query matches everyone.
func (r *Repository) FindUsersByName(query string) []User {
	q := strings.ToLower(query)
	var out []User
	for _, u := range r.store.ListUsers() {
		if strings.Contains(strings.ToLower(u.Name), q) {
			out = append(out, u)
		}
	}
	return out
}

// DeactivateUser sets active=false. It returns false for an unknown id and
// true otherwise, including for users that are already inactive.
func (r *Repository) DeactivateUser(id int64) bool {
	return r.store.setUserActive(id, false)
}

func (r *Repository) AddProduct(p Product) Product {
	r.store.InsertProduct(p)
	return p
}

func (r *Repository) GetProduct(id int64) (Product, bool) { return r.store.GetProduct(id) }

func (r *Repository) ListProducts() []Product { return r.store.ListProducts() }

func (r *Repository) AddOrder(o Order) Order {
	r.store.InsertOrder(o)
	return o
}

func (r *Repository) GetOrder(id int64) (Order, bool) { return r.store.GetOrder(id) }

func (r *Repository) ListOrders() []Order { return r.store.ListOrders() }

// SetOrderNotes replaces an order's notes, reporting whether the id exists.
func (r *Repository) SetOrderNotes(id int64, notes string) bool {
	return r.store.setOrderNotes(id, notes)
}
