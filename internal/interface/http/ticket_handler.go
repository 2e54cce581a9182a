package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skyport/backoffice/internal/domain/ticket"
)

// ListTickets returns a filtered page of fare sheets.
func (h *Handler) ListTickets(c *gin.Context) {
	q := ticket.ListQuery{
		Route:    c.Query("route"),
		Aircraft: c.Query("aircraft"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 10),
	}
	if raw := c.Query("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			q.Active = &active
		}
	}

	result, err := h.ticketSvc.List(c.Request.Context(), q)
	if err != nil {
		abortDomainError(c, err, "failed to list tickets")
		return
	}

	respondData(c, http.StatusOK, result)
}

// GetTicket returns a single fare sheet by id.
func (h *Handler) GetTicket(c *gin.Context) {
	t, err := h.ticketSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortDomainError(c, err, "failed to load ticket")
		return
	}

	respondData(c, http.StatusOK, t)
}

// GetTicketByFlight returns the active fare sheet for a flight number.
func (h *Handler) GetTicketByFlight(c *gin.Context) {
	t, err := h.ticketSvc.GetByFlightNumber(c.Request.Context(), c.Param("flightNumber"))
	if err != nil {
		abortDomainError(c, err, "failed to load ticket")
		return
	}

	respondData(c, http.StatusOK, t)
}

// CreateTicket opens a fare sheet for an existing flight.
func (h *Handler) CreateTicket(c *gin.Context) {
	var params ticket.CreateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		abortBadJSON(c, err)
		return
	}

	claims, _ := getClaims(c)
	t, err := h.ticketSvc.Create(c.Request.Context(), params, claims.UserID)
	if err != nil {
		abortDomainError(c, err, "failed to create ticket")
		return
	}

	respondData(c, http.StatusCreated, t)
}

// UpdateTicket applies partial changes to a fare sheet.
func (h *Handler) UpdateTicket(c *gin.Context) {
	var params ticket.UpdateParams
	if err := c.ShouldBindJSON(&params); err != nil {
		abortBadJSON(c, err)
		return
	}

	claims, _ := getClaims(c)
	t, err := h.ticketSvc.Update(c.Request.Context(), c.Param("id"), params, claims.UserID)
	if err != nil {
		abortDomainError(c, err, "failed to update ticket")
		return
	}

	respondData(c, http.StatusOK, t)
}

// UpdateTicketPricing replaces the pricing block of a fare sheet.
func (h *Handler) UpdateTicketPricing(c *gin.Context) {
	var req struct {
		Pricing ticket.Pricing `json:"pricing"`
		Factors ticket.Factors `json:"factors"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	claims, _ := getClaims(c)
	t, err := h.ticketSvc.UpdatePricing(c.Request.Context(), c.Param("id"), req.Pricing, req.Factors, claims.UserID)
	if err != nil {
		abortDomainError(c, err, "failed to update pricing")
		return
	}

	respondData(c, http.StatusOK, t)
}

// DeleteTicket removes a fare sheet.
func (h *Handler) DeleteTicket(c *gin.Context) {
	if err := h.ticketSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		abortDomainError(c, err, "failed to delete ticket")
		return
	}

	respondMessage(c, http.StatusOK, "Ticket deleted successfully")
}

// TicketStats aggregates fare sheets for the dashboard.
func (h *Handler) TicketStats(c *gin.Context) {
	stats, err := h.ticketSvc.Stats(c.Request.Context())
	if err != nil {
		abortDomainError(c, err, "failed to load ticket stats")
		return
	}

	respondData(c, http.StatusOK, stats)
}

// GenerateSampleTickets seeds fare sheets for flights without one.
func (h *Handler) GenerateSampleTickets(c *gin.Context) {
	claims, _ := getClaims(c)
	created, err := h.ticketSvc.GenerateSamples(c.Request.Context(), claims.UserID)
	if err != nil {
		abortDomainError(c, err, "failed to generate tickets")
		return
	}

	respondData(c, http.StatusCreated, gin.H{"created": len(created), "tickets": created})
}
