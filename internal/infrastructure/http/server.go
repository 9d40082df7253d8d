package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/storefront-api/internal/app/session"
	"github.com/mrops-br/storefront-api/internal/infrastructure/config"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/storefront-api/internal/infrastructure/http/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "storefront-api"

// Handlers groups the route handlers served by the storefront
type Handlers struct {
	Products   *handler.ProductHandler
	Cart       *handler.CartHandler
	Pages      *handler.PageHandler
	Newsletter *handler.NewsletterHandler
}

// Server represents the HTTP server
type Server struct {
	router        *chi.Mux
	config        *config.Config
	handlers      Handlers
	sessions      session.Repository
	logger        *slog.Logger
	meterProvider metric.MeterProvider
	httpServer    *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.Config,
	handlers Handlers,
	sessions session.Repository,
	meterProvider metric.MeterProvider,
	logger *slog.Logger,
) *Server {
	s := &Server{
		router:        chi.NewRouter(),
		config:        cfg,
		handlers:      handlers,
		sessions:      sessions,
		logger:        logger,
		meterProvider: meterProvider,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.HTTPRouteContext())

	meter := s.meterProvider.Meter(meterName)
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	if s.config.Server.DurationMillis {
		s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
	}
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Get("/pages/home", s.handlers.Pages.Home)
	s.router.Post("/newsletter", s.handlers.Newsletter.Subscribe)

	s.router.Route("/products", func(r chi.Router) {
		r.Post("/", s.handlers.Products.CreateProduct)
		r.Get("/", s.handlers.Products.ListProducts)
		r.Get("/featured", s.handlers.Products.ListFeatured)
		r.Get("/{id}", s.handlers.Products.GetProduct)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(middleware.Session(s.sessions, s.config.Session, s.logger))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", s.handlers.Cart.GetCart)
			r.Delete("/", s.handlers.Cart.Clear)
			r.Post("/items", s.handlers.Cart.AddItem)
			r.Put("/items/{productID}", s.handlers.Cart.UpdateQuantity)
			r.Delete("/items/{productID}", s.handlers.Cart.RemoveItem)
			r.Get("/modal", s.handlers.Cart.GetModal)
			r.Post("/modal/open", s.handlers.Cart.OpenModal)
			r.Post("/modal/close", s.handlers.Cart.CloseModal)
			r.Post("/checkout", s.handlers.Cart.Checkout)
		})
		r.Get("/toasts", s.handlers.Cart.Toasts)
	})

	// Health check endpoint
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus metrics endpoint - exposes OpenTelemetry metrics
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Handler returns the router wrapped with otelhttp, which records
// http.server.request.duration and friends and starts the request span
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithMeterProvider(s.meterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{
				attribute.String("http.route", middleware.RoutePattern(r)),
			}
		}),
	)
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
