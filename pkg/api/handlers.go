package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"shopcore/pkg/commerce"
	"shopcore/pkg/otel"
)

type createUserRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type createProductRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

type createOrderRequest struct {
	UserID     int64   `json:"user_id"`
	ProductIDs []int64 `json:"product_ids"`
	Notes      string  `json:"notes"`
}

type userResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Active      bool   `json:"active"`
	DisplayName string `json:"display_name,omitempty"`
}

type productResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	PriceCents   int64   `json:"price_cents"`
	PriceDollars float64 `json:"price_dollars"`
}

type orderResponse struct {
	ID           int64   `json:"id"`
	UserID       int64   `json:"user_id"`
	ProductIDs   []int64 `json:"product_ids"`
	Notes        string  `json:"notes"`
	TotalCents   int64   `json:"total_cents"`
	TotalDollars float64 `json:"total_dollars,omitempty"`
}

func toUserResponse(u commerce.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, Active: u.Active}
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// createUserHandler registers a new user.
// @Summary Create user
// @Accept json
// @Produce json
// @Param user body createUserRequest true "User"
// @Success 201 {object} userResponse
// @Failure 400 {object} errorResponse
// @Router /api/users [post]
func (s *Server) createUserHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createUserHandler")
	defer span.End()

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || !commerce.ValidateEmail(req.Email) {
		respondError(w, http.StatusBadRequest, "invalid email")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	u, err := s.svc.CreateUser(req.Email, req.Name)
	if err != nil {
		s.log.Warn("create user rejected", "error", err, "trace_id", otel.GetTraceID(ctx))
		respondDomainError(w, err)
		return
	}
	respond(w, http.StatusCreated, toUserResponse(u))
}

// getUserHandler returns one user, including the derived display name.
// @Summary Get user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} userResponse
// @Failure 404 {object} errorResponse
// @Router /api/users/{id} [get]
func (s *Server) getUserHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "getUserHandler")
	defer span.End()

	u, ok := s.svc.User(pathID(r))
	if !ok {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	resp := toUserResponse(u)
	resp.DisplayName = u.DisplayName()
	respond(w, http.StatusOK, resp)
}

// listUsersHandler lists active users, or searches by name when q is given.
// @Summary List users
// @Produce json
// @Param q query string false "Name search query"
// @Success 200 {array} userResponse
// @Failure 400 {object} errorResponse
// @Router /api/users [get]
func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "listUsersHandler")
	defer span.End()

	var users []commerce.User
	if q := r.URL.Query().Get("q"); q != "" {
		found, err := s.svc.SearchUsers(q)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		users = found
	} else {
		users = s.svc.ActiveUsers()
	}
	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	respond(w, http.StatusOK, out)
}

// deactivateUserHandler marks a user inactive.
// @Summary Deactivate user
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorResponse
// @Router /api/users/{id} [delete]
func (s *Server) deactivateUserHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "deactivateUserHandler")
	defer span.End()

	if !s.svc.DeactivateUser(pathID(r)) {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respond(w, http.StatusOK, map[string]string{"message": "user deactivated"})
}

// createProductHandler adds a product. The boundary enforces a non-empty
// name and a positive price before the service is called.
// @Summary Create product
// @Accept json
// @Produce json
// @Param product body createProductRequest true "Product"
// @Success 201 {object} productResponse
// @Failure 400 {object} errorResponse
// @Router /api/products [post]
func (s *Server) createProductHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "createProductHandler")
	defer span.End()

	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.PriceCents <= 0 {
		respondError(w, http.StatusBadRequest, "price_cents must be positive")
		return
	}
	p := s.svc.AddProduct(req.Name, req.PriceCents)
	respond(w, http.StatusCreated, productResponse{
		ID:           p.ID,
		Name:         p.Name,
		PriceCents:   p.PriceCents,
		PriceDollars: float64(p.PriceCents) / 100.0,
	})
}

// getProductHandler returns one product.
// @Summary Get product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} productResponse
// @Failure 404 {object} errorResponse
// @Router /api/products/{id} [get]
func (s *Server) getProductHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "getProductHandler")
	defer span.End()

	p, ok := s.svc.Product(pathID(r))
	if !ok {
		respondError(w, http.StatusNotFound, "product not found")
		return
	}
	respond(w, http.StatusOK, productResponse{
		ID:           p.ID,
		Name:         p.Name,
		PriceCents:   p.PriceCents,
		PriceDollars: float64(p.PriceCents) / 100.0,
	})
}

// createOrderHandler places an order for an existing user and products.
// @Summary Create order
// @Accept json
// @Produce json
// @Param order body createOrderRequest true "Order"
// @Success 201 {object} orderResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /api/orders [post]
func (s *Server) createOrderHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "createOrderHandler")
	defer span.End()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == 0 {
		respondError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if len(req.ProductIDs) == 0 {
		respondError(w, http.StatusBadRequest, "at least one product is required")
		return
	}
	o, err := s.svc.PlaceOrder(req.UserID, req.ProductIDs)
	if err != nil {
		s.log.Warn("place order rejected", "error", err, "trace_id", otel.GetTraceID(ctx))
		respondDomainError(w, err)
		return
	}
	if req.Notes != "" {
		if err := s.svc.UpdateOrderNotes(o.ID, req.Notes); err != nil {
			respondDomainError(w, err)
			return
		}
		o.Notes = req.Notes
	}
	total := s.svc.OrderTotalCents(o)
	respond(w, http.StatusCreated, orderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		ProductIDs:   o.ProductIDs,
		Notes:        o.Notes,
		TotalCents:   total,
		TotalDollars: float64(total) / 100.0,
	})
}

// listOrdersHandler lists orders, optionally filtered by user.
// @Summary List orders
// @Produce json
// @Param user_id query int false "Filter by user"
// @Success 200 {array} orderResponse
// @Failure 400 {object} errorResponse
// @Router /api/orders [get]
func (s *Server) listOrdersHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "listOrdersHandler")
	defer span.End()

	orders := s.svc.Orders()
	if filter := r.URL.Query().Get("user_id"); filter != "" {
		uid, err := strconv.ParseInt(filter, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid user_id parameter")
			return
		}
		kept := orders[:0:0]
		for _, o := range orders {
			if o.UserID == uid {
				kept = append(kept, o)
			}
		}
		orders = kept
	}
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, orderResponse{
			ID:         o.ID,
			UserID:     o.UserID,
			ProductIDs: o.ProductIDs,
			Notes:      o.Notes,
			TotalCents: s.svc.OrderTotalCents(o),
		})
	}
	respond(w, http.StatusOK, out)
}

// analyticsOverviewHandler reports store-wide aggregates.
// @Summary Analytics overview
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/analytics/overview [get]
func (s *Server) analyticsOverviewHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "analyticsOverviewHandler")
	defer span.End()

	revenue := s.analytics.TotalRevenueCents()
	respond(w, http.StatusOK, map[string]interface{}{
		"average_order_value":   s.analytics.AverageOrderValue(),
		"median_order_value":    s.analytics.MedianOrderValue(),
		"total_revenue_cents":   revenue,
		"total_revenue_dollars": float64(revenue) / 100.0,
		"active_users_count":    len(s.svc.ActiveUsers()),
		"total_orders_count":    s.analytics.OrdersCount(),
	})
}

// userAnalyticsHandler reports per-user aggregates.
// @Summary User analytics
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errorResponse
// @Router /api/analytics/users/{id} [get]
func (s *Server) userAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "userAnalyticsHandler")
	defer span.End()

	id := pathID(r)
	if _, ok := s.svc.User(id); !ok {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	ltv := s.analytics.UserLifetimeValue(id)
	var count int
	for _, o := range s.svc.Orders() {
		if o.UserID == id {
			count++
		}
	}
	avg := 0.0
	if count > 0 {
		avg = ltv / float64(count)
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"user_id":             id,
		"lifetime_value":      ltv,
		"orders_count":        count,
		"average_order_value": avg,
	})
}

// healthHandler reports service liveness.
// @Summary Health check
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/health [get]
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "shopcore",
		"version": Version,
	})
}
