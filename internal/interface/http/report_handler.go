package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DailyReport summarizes today's operations.
func (h *Handler) DailyReport(c *gin.Context) {
	report, err := h.reportSvc.Daily(c.Request.Context())
	if err != nil {
		abortDomainError(c, err, "failed to build daily report")
		return
	}

	respondData(c, http.StatusOK, report)
}

// WeeklyReport summarizes the trailing seven days.
func (h *Handler) WeeklyReport(c *gin.Context) {
	report, err := h.reportSvc.Weekly(c.Request.Context())
	if err != nil {
		abortDomainError(c, err, "failed to build weekly report")
		return
	}

	respondData(c, http.StatusOK, report)
}

// MonthlyReport summarizes the trailing month.
func (h *Handler) MonthlyReport(c *gin.Context) {
	report, err := h.reportSvc.Monthly(c.Request.Context())
	if err != nil {
		abortDomainError(c, err, "failed to build monthly report")
		return
	}

	respondData(c, http.StatusOK, report)
}

// PerformanceReport breaks down punctuality by aircraft and route.
func (h *Handler) PerformanceReport(c *gin.Context) {
	report, err := h.reportSvc.Performance(c.Request.Context())
	if err != nil {
		abortDomainError(c, err, "failed to build performance report")
		return
	}

	respondData(c, http.StatusOK, report)
}

// FinancialReport estimates revenue from fare sheets and passenger counts.
func (h *Handler) FinancialReport(c *gin.Context) {
	report, err := h.reportSvc.Financial(c.Request.Context())
	if err != nil {
		abortDomainError(c, err, "failed to build financial report")
		return
	}

	respondData(c, http.StatusOK, report)
}
