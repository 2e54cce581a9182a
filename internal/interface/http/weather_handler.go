package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HomeWeather returns current conditions at the home airport city.
func (h *Handler) HomeWeather(c *gin.Context) {
	report, err := h.weatherSvc.Home(c.Request.Context())
	if err != nil {
		abortDomainError(c, err, "weather data unavailable")
		return
	}

	respondData(c, http.StatusOK, report)
}

// CityWeather returns current conditions for an arbitrary city.
func (h *Handler) CityWeather(c *gin.Context) {
	report, err := h.weatherSvc.City(c.Request.Context(), c.Param("city"))
	if err != nil {
		abortDomainError(c, err, "weather data unavailable")
		return
	}

	respondData(c, http.StatusOK, report)
}

// CityForecast returns the next day of three-hour slots for a city.
func (h *Handler) CityForecast(c *gin.Context) {
	forecast, err := h.weatherSvc.CityForecast(c.Request.Context(), c.Param("city"))
	if err != nil {
		abortDomainError(c, err, "weather forecast unavailable")
		return
	}

	respondData(c, http.StatusOK, forecast)
}

// MultiCityWeather fans out lookups for a batch of cities. Failed cities
// degrade to in-place error entries.
func (h *Handler) MultiCityWeather(c *gin.Context) {
	var req struct {
		Cities []string `json:"cities"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadJSON(c, err)
		return
	}

	results, err := h.weatherSvc.Cities(c.Request.Context(), req.Cities)
	if err != nil {
		abortDomainError(c, err, "weather data unavailable")
		return
	}

	respondData(c, http.StatusOK, results)
}
