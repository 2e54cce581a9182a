package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyport/backoffice/internal/domain/advisor"
)

// RouteSafety scores a route from live weather and stored flight history.
func (h *Handler) RouteSafety(c *gin.Context) {
	var req advisor.RouteSafetyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	analysis, err := h.advisorSvc.AnalyzeRouteSafety(c.Request.Context(), req)
	if err != nil {
		abortDomainError(c, err, "route safety analysis failed")
		return
	}

	respondData(c, http.StatusOK, analysis)
}

// DynamicPricing produces a pricing recommendation from simulated market data.
func (h *Handler) DynamicPricing(c *gin.Context) {
	var req advisor.PricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	analysis, err := h.advisorSvc.GenerateDynamicPricing(c.Request.Context(), req)
	if err != nil {
		abortDomainError(c, err, "pricing analysis failed")
		return
	}

	respondData(c, http.StatusOK, analysis)
}

// DelayPrediction estimates delay probability for an upcoming departure.
func (h *Handler) DelayPrediction(c *gin.Context) {
	var req advisor.DelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	prediction, err := h.advisorSvc.PredictFlightDelay(c.Request.Context(), req)
	if err != nil {
		abortDomainError(c, err, "delay prediction failed")
		return
	}

	respondData(c, http.StatusOK, prediction)
}

// PassengerFlow sizes terminal resources for an expected load.
func (h *Handler) PassengerFlow(c *gin.Context) {
	var req advisor.FlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	plan, err := h.advisorSvc.OptimizePassengerFlow(c.Request.Context(), req)
	if err != nil {
		abortDomainError(c, err, "passenger flow analysis failed")
		return
	}

	respondData(c, http.StatusOK, plan)
}

// MaintenancePrediction projects component wear for an aircraft.
func (h *Handler) MaintenancePrediction(c *gin.Context) {
	var req advisor.MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	outlook, err := h.advisorSvc.PredictMaintenance(c.Request.Context(), req)
	if err != nil {
		abortDomainError(c, err, "maintenance prediction failed")
		return
	}

	respondData(c, http.StatusOK, outlook)
}
