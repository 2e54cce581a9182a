package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyport/backoffice/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", handler.Register)
		authGroup.POST("/login", handler.Login)
		authGroup.POST("/refresh", handler.Refresh)
	}

	protected := api.Group("", authMiddleware(handler.authSvc))
	{
		protected.POST("/auth/logout", handler.Logout)
		protected.GET("/auth/profile", handler.Profile)
		protected.PUT("/auth/profile", handler.UpdateProfile)
		protected.PUT("/auth/change-password", handler.ChangePassword)
		protected.GET("/auth/activity", handler.LoginActivity)

		protected.GET("/flights", handler.ListFlights)
		protected.GET("/flights/stats", handler.FlightStats)
		protected.GET("/flights/:id", handler.GetFlight)
		protected.POST("/flights", handler.CreateFlight)
		protected.PUT("/flights/:id", handler.UpdateFlight)
		protected.PATCH("/flights/:id/status", handler.UpdateFlightStatus)
		protected.DELETE("/flights/:id", handler.DeleteFlight)

		protected.GET("/tickets", handler.ListTickets)
		protected.GET("/tickets/stats", handler.TicketStats)
		protected.GET("/tickets/flight/:flightNumber", handler.GetTicketByFlight)
		protected.GET("/tickets/:id", handler.GetTicket)
		protected.POST("/tickets", handler.CreateTicket)
		protected.POST("/tickets/generate-samples", handler.GenerateSampleTickets)
		protected.PUT("/tickets/:id", handler.UpdateTicket)
		protected.PATCH("/tickets/:id/pricing", handler.UpdateTicketPricing)
		protected.DELETE("/tickets/:id", handler.DeleteTicket)

		protected.GET("/weather", handler.HomeWeather)
		protected.GET("/weather/city/:city", handler.CityWeather)
		protected.GET("/weather/forecast/:city", handler.CityForecast)
		protected.POST("/weather/cities", handler.MultiCityWeather)

		protected.GET("/reports/daily", handler.DailyReport)
		protected.GET("/reports/weekly", handler.WeeklyReport)
		protected.GET("/reports/monthly", handler.MonthlyReport)
		protected.GET("/reports/performance", handler.PerformanceReport)
		protected.GET("/reports/financial", handler.FinancialReport)

		protected.POST("/ai/route-safety", handler.RouteSafety)
		protected.POST("/ai/dynamic-pricing", handler.DynamicPricing)
		protected.POST("/ai/delay-prediction", handler.DelayPrediction)
		protected.POST("/ai/passenger-flow", handler.PassengerFlow)
		protected.POST("/ai/maintenance-prediction", handler.MaintenancePrediction)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
