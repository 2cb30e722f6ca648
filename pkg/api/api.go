// Package api exposes the commerce service over HTTP. It owns request
// decoding, boundary validation and the mapping of domain errors to status
// codes; all business rules live in pkg/commerce.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel/trace"

	"shopcore/pkg/commerce"
	"shopcore/pkg/logger"
	"shopcore/pkg/otel"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Server bundles the handlers' dependencies.
type Server struct {
	svc       *commerce.Service
	analytics *commerce.Analytics
	log       *logger.Logger
	tracer    trace.Tracer
}

// NewServer builds a Server. tracer may be nil when tracing is disabled.
func NewServer(svc *commerce.Service, analytics *commerce.Analytics, log *logger.Logger, tracer trace.Tracer) *Server {
	return &Server{svc: svc, analytics: analytics, log: log.With("component", "api"), tracer: tracer}
}

// Router wires all routes and middleware.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.traceMiddleware, s.logMiddleware)

	apiR := r.PathPrefix("/api").Subrouter()
	apiR.HandleFunc("/users", s.createUserHandler).Methods(http.MethodPost)
	apiR.HandleFunc("/users", s.listUsersHandler).Methods(http.MethodGet)
	apiR.HandleFunc("/users/{id:[0-9]+}", s.getUserHandler).Methods(http.MethodGet)
	apiR.HandleFunc("/users/{id:[0-9]+}", s.deactivateUserHandler).Methods(http.MethodDelete)
	apiR.HandleFunc("/products", s.createProductHandler).Methods(http.MethodPost)
	apiR.HandleFunc("/products/{id:[0-9]+}", s.getProductHandler).Methods(http.MethodGet)
	apiR.HandleFunc("/orders", s.createOrderHandler).Methods(http.MethodPost)
	apiR.HandleFunc("/orders", s.listOrdersHandler).Methods(http.MethodGet)
	apiR.HandleFunc("/analytics/overview", s.analyticsOverviewHandler).Methods(http.MethodGet)
	apiR.HandleFunc("/analytics/users/{id:[0-9]+}", s.userAnalyticsHandler).Methods(http.MethodGet)
	apiR.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-Id")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", rid)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.tracer != nil {
			r = r.WithContext(otel.InjectTracing(r.Context(), s.tracer))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", w.Header().Get("X-Request-Id"),
			"trace_id", otel.GetTraceID(r.Context()),
		)
	})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respond(w, status, errorResponse{Error: msg})
}

// respondDomainError maps typed domain errors to HTTP statuses.
func respondDomainError(w http.ResponseWriter, err error) {
	var verr *commerce.ValidationError
	if errors.As(err, &verr) {
		respondError(w, http.StatusBadRequest, verr.Error())
		return
	}
	var nferr *commerce.NotFoundError
	if errors.As(err, &nferr) {
		respondError(w, http.StatusNotFound, nferr.Error())
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
