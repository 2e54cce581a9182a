package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyport/backoffice/internal/domain/advisor"
	"github.com/skyport/backoffice/internal/domain/auth"
	"github.com/skyport/backoffice/internal/domain/flight"
	"github.com/skyport/backoffice/internal/domain/report"
	"github.com/skyport/backoffice/internal/domain/ticket"
	"github.com/skyport/backoffice/internal/domain/weather"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	authSvc    auth.Service
	flightSvc  flight.Service
	ticketSvc  ticket.Service
	weatherSvc weather.Service
	reportSvc  report.Service
	advisorSvc advisor.Service
	logger     *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(
	authSvc auth.Service,
	flightSvc flight.Service,
	ticketSvc ticket.Service,
	weatherSvc weather.Service,
	reportSvc report.Service,
	advisorSvc advisor.Service,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		authSvc:    authSvc,
		flightSvc:  flightSvc,
		ticketSvc:  ticketSvc,
		weatherSvc: weatherSvc,
		reportSvc:  reportSvc,
		advisorSvc: advisorSvc,
		logger:     logger.With("component", "http.handler"),
	}
}

// Every successful response carries the same envelope so clients can branch
// on a single field.
func respondData(c *gin.Context, status int, data any) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": true, "message": message})
}

func abortBadJSON(c *gin.Context, err error) {
	abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid request body", err))
}
