package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyport/backoffice/internal/domain/flight"
)

// ListFlights returns a filtered page of flights.
func (h *Handler) ListFlights(c *gin.Context) {
	q := flight.ListQuery{
		Status:      c.Query("status"),
		Origin:      c.Query("origin"),
		Destination: c.Query("destination"),
		Date:        c.Query("date"),
		Page:        queryInt(c, "page", 1),
		Limit:       queryInt(c, "limit", 10),
	}

	result, err := h.flightSvc.List(c.Request.Context(), q)
	if err != nil {
		abortDomainError(c, err, "failed to list flights")
		return
	}

	respondData(c, http.StatusOK, result)
}

// GetFlight returns a single flight by id.
func (h *Handler) GetFlight(c *gin.Context) {
	f, err := h.flightSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDomainError(c, err, "failed to load flight")
		return
	}

	respondData(c, http.StatusOK, f)
}

// CreateFlight schedules a new flight.
func (h *Handler) CreateFlight(c *gin.Context) {
	var params flight.CreateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		abortBadJSON(c, err)
		return
	}

	claims, _ := getClaims(c)
	f, err := h.flightSvc.Create(c.Request.Context(), params, claims.UserID)
	if err != nil {
		abortDomainError(c, err, "failed to create flight")
		return
	}

	respondData(c, http.StatusCreated, f)
}

// UpdateFlight applies partial changes to a flight.
func (h *Handler) UpdateFlight(c *gin.Context) {
	var params flight.UpdateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		abortBadJSON(c, err)
		return
	}

	f, err := h.flightSvc.Update(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		abortDomainError(c, err, "failed to update flight")
		return
	}

	respondData(c, http.StatusOK, f)
}

// UpdateFlightStatus transitions a flight through its lifecycle.
func (h *Handler) UpdateFlightStatus(c *gin.Context) {
	var update flight.StatusUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		abortBadJSON(c, err)
		return
	}

	f, err := h.flightSvc.UpdateStatus(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		abortDomainError(c, err, "failed to update flight status")
		return
	}

	respondData(c, http.StatusOK, f)
}

// DeleteFlight removes a flight.
func (h *Handler) DeleteFlight(c *gin.Context) {
	if err := h.flightSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortDomainError(c, err, "failed to delete flight")
		return
	}

	respondMessage(c, http.StatusOK, "Flight deleted successfully")
}

// FlightStats summarizes the fleet for the dashboard.
func (h *Handler) FlightStats(c *gin.Context) {
	stats, err := h.flightSvc.Stats(c.Request.Context())
	if err != nil {
		abortDomainError(c, err, "failed to load flight stats")
		return
	}

	respondData(c, http.StatusOK, stats)
}
