package routes

import (
	"net/http"

	"ambulance-backend/internal/handlers"
	"ambulance-backend/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	Handler     *handlers.Handler
	Log         *zap.Logger
	Limiter     *middleware.IPRateLimiter
	Registry    *prometheus.Registry
	CORSOrigins []string
	StaticDir   string
}

// NewRouter builds the engine with the global middleware chain and all routes.
func NewRouter(opts Options) *gin.Engine {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(opts.Registry)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(opts.Log))
	r.Use(metrics.Handler())
	// Inside Logger and metrics so a recovered panic is still logged and counted.
	r.Use(middleware.Recovery(opts.Log))
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))
	if opts.Limiter != nil {
		r.Use(middleware.RateLimitMiddleware(opts.Limiter))
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})))

	SetupRoutes(r, opts.Handler)
	r.NoRoute(StaticFallback(opts.StaticDir))
	return r
}

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	validate := middleware.ValidateJSON
	auth := middleware.AuthMiddleware(h.Tokens)

	for _, path := range []string{"/signup", "/register"} {
		r.POST(path, validate([]string{"name", "email", "password"}, nil), h.Signup)
	}
	r.POST("/login", validate([]string{"email", "password"}, nil), h.Login)
	r.POST("/payment/notification", h.PaymentNotification)

	// Registries
	r.POST("/hospitals", validate([]string{"name"}, []string{"contact_info"}), h.CreateHospital)
	r.GET("/hospitals", h.ListHospitals)
	r.GET("/hospitals/:id", h.GetHospital)
	r.PATCH("/hospitals/:id", validate(nil, []string{"name", "contact_info"}), h.UpdateHospital)
	r.DELETE("/hospitals/:id", h.DeleteHospital)

	r.POST("/drivers", validate([]string{"name", "contact"}, []string{"license_number"}), h.CreateDriver)
	r.GET("/drivers", h.ListDrivers)
	r.GET("/drivers/:id", h.GetDriver)
	r.PATCH("/drivers/:id", validate(nil, []string{"name", "contact", "license_number"}), h.UpdateDriver)
	r.DELETE("/drivers/:id", h.DeleteDriver)
	r.POST("/drivers/:id/ambulances/:ambulance_id", h.AssignAmbulance)
	r.DELETE("/drivers/:id/ambulances/:ambulance_id", h.UnassignAmbulance)

	r.POST("/ambulances", validate([]string{"vehicle_no", "hospital_id"}, nil), h.CreateAmbulance)
	r.GET("/ambulances", h.ListAmbulances)
	r.GET("/ambulances/:id", h.GetAmbulance)
	r.PATCH("/ambulances/:id", validate(nil, nil), h.UpdateAmbulance)
	r.DELETE("/ambulances/:id", h.DeleteAmbulance)

	r.POST("/contact_us", validate([]string{"name", "email", "message"}, nil), h.CreateContact)
	r.GET("/contact_us", h.ListContacts)

	// Everything below acts on behalf of the token's user.
	protected := r.Group("/")
	protected.Use(auth)
	{
		protected.GET("/me", h.Me)
		protected.POST("/logout", h.Logout)
		protected.GET("/users", h.ListUsers)
		protected.GET("/user", h.ListUsers)

		for _, prefix := range []string{"/requests", "/ambulance-requests"} {
			g := protected.Group(prefix)
			g.POST("", validate([]string{"hospital_id"}, []string{"pickup_location", "payment_method"}), h.CreateRequest)
			g.GET("", h.ListRequests)
			g.GET("/:id", h.GetRequest)
			g.PATCH("/:id", validate(nil, []string{"pickup_location", "payment_method"}), h.UpdateRequest)
			g.DELETE("/:id", h.DeleteRequest)
		}
		protected.POST("/request-ambulance", validate([]string{"hospital_name", "payment_method"}, []string{"date"}), h.QuickRequest)

		protected.POST("/ride_history", validate([]string{"hospital_name"}, []string{"payment_method", "date", "feedback"}), h.CreateRideHistory)
		protected.GET("/ride_history", h.ListRideHistory)
		protected.GET("/ride_history/search", h.SearchRideHistory)
		protected.GET("/ride_history/:id", h.GetRideHistory)
		protected.PATCH("/ride_history/:id", validate(nil, []string{"payment_method", "feedback"}), h.UpdateRideHistory)
		protected.DELETE("/ride_history/:id", h.DeleteRideHistory)

		protected.POST("/favorites", validate([]string{"hospital_name"}, nil), h.AddFavorite)
		protected.GET("/favorites", h.ListFavorites)
		protected.DELETE("/favorites", validate([]string{"hospital_name"}, nil), h.RemoveFavorite)
		protected.DELETE("/favorites/:id", h.RemoveFavoriteByID)
	}
}
