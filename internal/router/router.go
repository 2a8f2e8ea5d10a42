package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"

	"github.com/pos-manage/api/internal/config"
	"github.com/pos-manage/api/internal/enum"
	"github.com/pos-manage/api/internal/handler"
	mw "github.com/pos-manage/api/internal/middleware"
	"github.com/pos-manage/api/internal/ws"
)

// OrderServicer is everything the floor and manager endpoints need.
// Satisfied by *service.OrderService.
type OrderServicer interface {
	handler.OrderServicer
	handler.OccupancyServicer
	handler.AuditServicer
}

// Deps carries the wired application components.
type Deps struct {
	Config   *config.Config
	Users    handler.AuthStore
	Orders   OrderServicer
	Dispatch handler.DispatchServicer
	Board    handler.KitchenBoard
	Hub      *ws.Hub
	Clock    clockwork.Clock
	Logger   logrus.FieldLogger
}

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(d Deps) chi.Router {
	cfg := d.Config
	log := d.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	authHandler := handler.NewAuthHandler(d.Users, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	if d.Hub != nil {
		r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
			ws.ServeWS(d.Hub, cfg.JWTSecret, w, r)
		})
	}

	orderHandler := handler.NewOrderHandler(d.Orders)
	seatHandler := handler.NewSeatHandler(d.Orders)
	auditHandler := handler.NewAuditHandler(d.Orders)
	kitchenHandler := handler.NewKitchenHandler(d.Dispatch, d.Board, d.Clock, cfg.KitchenUrgentAfter)

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Any staff role
		r.Route("/seats", seatHandler.RegisterRoutes)
		r.Route("/kitchen", func(r chi.Router) {
			kitchenHandler.RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(mw.RequireRole(enum.UserRoleManager, enum.UserRoleKitchen))
				kitchenHandler.RegisterDispatchRoutes(r)
			})
		})

		// Front of house
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.UserRoleManager, enum.UserRoleCashier))
			r.Route("/orders", orderHandler.RegisterRoutes)
		})

		// Manager only
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.UserRoleManager))
			r.Route("/audit", auditHandler.RegisterRoutes)
		})
	})

	log.Info("router initialized")
	return r
}
