package advisor

import "time"

// Risk tiers derived from the composite safety score.
const (
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskCritical = "Critical"
)

// WeatherSnapshot is the normalized per-city weather reading the scoring
// engine consumes. Immutable once fetched.
type WeatherSnapshot struct {
	Condition    string  `json:"condition"`
	VisibilityKm float64 `json:"visibilityKm"`
	WindSpeedKmh float64 `json:"windSpeedKmh"`
	TemperatureC float64 `json:"temperatureC"`
}

// RouteWeather pairs the two legs of a route.
type RouteWeather struct {
	Origin      WeatherSnapshot `json:"origin"`
	Destination WeatherSnapshot `json:"destination"`
}

// RouteHistory aggregates stored flight records for a city pair over a
// trailing window.
type RouteHistory struct {
	TotalFlights        int     `json:"totalFlights"`
	OnTimeRatePct       float64 `json:"onTimeRate"`
	DelayRatePct        float64 `json:"delayRate"`
	CancellationRatePct float64 `json:"cancellationRate"`
	AverageDelayMinutes float64 `json:"averageDelay"`
}

// AirspaceAssessment classifies a route's security and conflict exposure.
type AirspaceAssessment struct {
	SecurityLevel             string   `json:"securityLevel"`
	RiskFactors               []string `json:"riskFactors"`
	AirspaceRestrictions      string   `json:"airspaceRestrictions"`
	AlternativeRoutesRequired bool     `json:"alternativeRoutesRequired"`
}

// RouteSafetyRequest is the payload for the route safety endpoint.
type RouteSafetyRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	Aircraft      string `json:"aircraft"`
}

// SafetyAnalysis is the full route safety response. Created fresh per
// request, never persisted.
type SafetyAnalysis struct {
	Route             string             `json:"route"`
	SafetyScore       int                `json:"safetyScore"`
	RiskLevel         string             `json:"riskLevel"`
	Analysis          CategoryBreakdown  `json:"analysis"`
	Recommendations   []string           `json:"recommendations"`
	AlternativeRoutes []AlternativeRoute `json:"alternativeRoutes"`
	GeneratedAt       time.Time          `json:"generatedAt"`
}

// CategoryBreakdown exposes per-dimension scores alongside the composite.
type CategoryBreakdown struct {
	Weather      WeatherCategory      `json:"weather"`
	AirTraffic   AirTrafficCategory   `json:"airTraffic"`
	Geopolitical GeopoliticalCategory `json:"geopolitical"`
	Technical    TechnicalCategory    `json:"technical"`
	Historical   HistoricalCategory   `json:"historical"`
}

// WeatherCategory reports the weather sub-score and narrative impacts.
type WeatherCategory struct {
	Score           float64  `json:"score"`
	Impact          []string `json:"impact"`
	Recommendations []string `json:"recommendations"`
}

// AirTrafficCategory is display-only congestion context; its score never
// feeds the composite.
type AirTrafficCategory struct {
	Score           float64  `json:"score"`
	CongestionLevel string   `json:"congestionLevel"`
	PeakHours       []string `json:"peakHours"`
}

// GeopoliticalCategory mirrors the airspace assessment.
type GeopoliticalCategory struct {
	Score     float64  `json:"score"`
	RiskLevel string   `json:"riskLevel"`
	Factors   []string `json:"factors"`
}

// TechnicalCategory reports aircraft reliability context.
type TechnicalCategory struct {
	Score               float64 `json:"score"`
	AircraftReliability int     `json:"aircraftReliability"`
	MaintenanceStatus   string  `json:"maintenanceStatus"`
}

// HistoricalCategory reports the route history sub-score.
type HistoricalCategory struct {
	Score               float64 `json:"score"`
	OnTimeRate          float64 `json:"onTimeRate"`
	AverageDelayMinutes float64 `json:"averageDelay"`
}

// AlternativeRoute proposes a transit routing around a low-safety direct
// itinerary.
type AlternativeRoute struct {
	Route           string   `json:"route"`
	SafetyScore     float64  `json:"safetyScore"`
	AdditionalHours float64  `json:"additionalTime"`
	Cost            string   `json:"cost"`
	Advantages      []string `json:"advantages"`
}

// PricingRequest is the payload for the dynamic pricing endpoint.
type PricingRequest struct {
	FlightNumber  string `json:"flightNumber"`
	Route         string `json:"route"`
	Aircraft      string `json:"aircraft"`
	DepartureDate string `json:"departureDate"`
	CurrentDemand string `json:"currentDemand"`
}

// MarketSnapshot is the simulated market input to the pricing engine.
type MarketSnapshot struct {
	Seasonality     string  `json:"seasonality"`
	Competition     int     `json:"competition"`
	MarketSharePct  float64 `json:"marketShare"`
	PriceElasticity float64 `json:"priceElasticity"`
}

// CompetitorSnapshot is a simulated per-airline fare observation.
type CompetitorSnapshot struct {
	Airline         string  `json:"airline"`
	EconomyPrice    float64 `json:"economyPrice"`
	BusinessPrice   float64 `json:"businessPrice"`
	FirstClassPrice float64 `json:"firstClassPrice"`
	MarketPosition  string  `json:"marketPosition"`
}

// DemandForecast is the simulated demand prediction.
type DemandForecast struct {
	Predicted  float64  `json:"predicted"`
	Confidence float64  `json:"confidence"`
	Factors    []string `json:"factors"`
	PeakDays   []string `json:"peakDays"`
}

// MarketInsights is the qualitative market section of the pricing response.
type MarketInsights struct {
	Competitiveness string   `json:"competitiveness"`
	Positioning     string   `json:"positioning"`
	Opportunities   []string `json:"opportunities"`
}

// ClassPrices holds one integer fare per cabin class.
type ClassPrices struct {
	Economy    int `json:"economy"`
	Business   int `json:"business"`
	FirstClass int `json:"firstClass"`
}

// RevenueProjection is a low/expected/high revenue triple.
type RevenueProjection struct {
	Low      int    `json:"low"`
	Expected int    `json:"expected"`
	High     int    `json:"high"`
	Currency string `json:"currency"`
}

// PricingAnalysis is the dynamic pricing response.
type PricingAnalysis struct {
	FlightNumber           string               `json:"flightNumber"`
	Route                  string               `json:"route"`
	PricingRecommendations []string             `json:"pricingRecommendations"`
	MarketAnalysis         MarketInsights       `json:"marketAnalysis"`
	DemandForecast         DemandForecast       `json:"demandForecast"`
	CompetitorInsights     []CompetitorSnapshot `json:"competitorInsights"`
	PriceOptimization      ClassPrices          `json:"priceOptimization"`
	RevenueProjection      RevenueProjection    `json:"revenueProjection"`
	GeneratedAt            time.Time            `json:"generatedAt"`
}

// DelayRequest is the payload for the delay prediction endpoint.
type DelayRequest struct {
	FlightNumber  string `json:"flightNumber"`
	DepartureTime string `json:"departureTime"`
	Aircraft      string `json:"aircraft"`
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
}

// DelayPrediction is the delay prediction response.
type DelayPrediction struct {
	FlightNumber       string    `json:"flightNumber"`
	DelayProbability   float64   `json:"delayProbability"`
	ExpectedMinutes    float64   `json:"expectedDelay"`
	ConfidenceLevel    float64   `json:"confidenceLevel"`
	RiskFactors        []string  `json:"riskFactors"`
	Recommendations    []string  `json:"recommendations"`
	Mitigation         []string  `json:"mitigation"`
	AlternativeOptions []string  `json:"alternativeOptions"`
	GeneratedAt        time.Time `json:"generatedAt"`
}

// FlowRequest is the payload for the passenger flow endpoint.
type FlowRequest struct {
	TerminalID         string   `json:"terminalId"`
	TimeSlot           string   `json:"timeSlot"`
	ExpectedPassengers int      `json:"expectedPassengers"`
	FlightSchedule     []string `json:"flightSchedule"`
}

// ResourceAllocation sizes terminal staffing from predicted load.
type ResourceAllocation struct {
	CheckInCounters int `json:"checkInCounters"`
	SecurityLanes   int `json:"securityLanes"`
	StaffRequired   int `json:"staffRequired"`
}

// FlowPlan is the passenger flow response.
type FlowPlan struct {
	TerminalID          string             `json:"terminalId"`
	TimeSlot            string             `json:"timeSlot"`
	CapacityUtilization float64            `json:"capacityUtilization"`
	BottleneckAreas     []string           `json:"bottleneckPrediction"`
	ResourceAllocation  ResourceAllocation `json:"resourceAllocation"`
	Recommendations     []string           `json:"recommendations"`
	EstimatedWaitTimes  map[string]string  `json:"estimatedWaitTimes"`
	OptimizationScore   float64            `json:"optimizationScore"`
	GeneratedAt         time.Time          `json:"generatedAt"`
}

// MaintenanceRequest is the payload for the maintenance prediction endpoint.
type MaintenanceRequest struct {
	Aircraft        string  `json:"aircraft"`
	FlightHours     float64 `json:"flightHours"`
	LastMaintenance string  `json:"lastMaintenance"`
}

// ComponentWear is the predicted wear of a single aircraft component.
type ComponentWear struct {
	Component         string  `json:"component"`
	WearLevelPct      float64 `json:"wearLevel"`
	DaysToMaintenance int     `json:"timeToMaintenance"`
	CriticalLevel     string  `json:"criticalLevel"`
}

// MaintenanceOutlook is the maintenance prediction response.
type MaintenanceOutlook struct {
	Aircraft           string          `json:"aircraft"`
	MaintenanceScore   int             `json:"maintenanceScore"`
	UrgencyLevel       string          `json:"urgencyLevel"`
	PredictedIssues    []ComponentWear `json:"predictedIssues"`
	RecommendedActions []string        `json:"recommendedActions"`
	CostEstimate       float64         `json:"costEstimate"`
	Timeframe          string          `json:"timeframe"`
	RiskAssessment     []string        `json:"riskAssessment"`
	GeneratedAt        time.Time       `json:"generatedAt"`
}

// Config wires runtime settings for the advisor domain.
type Config struct {
	HistoryWindow time.Duration
}
