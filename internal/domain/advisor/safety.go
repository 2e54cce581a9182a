package advisor

import "math"

const (
	weatherScoreFloor  = 30
	airspaceScoreFloor = 40
)

// scoreSafety combines the weather, historical and airspace sub-scores
// multiplicatively: a single degraded dimension suppresses the composite more
// than an additive model would.
func (s *service) scoreSafety(weather RouteWeather, history RouteHistory, airspace AirspaceAssessment, aircraft string) SafetyAnalysis {
	weatherScore := weatherSubScore(weather)
	airspaceScore := airspaceSubScore(airspace)
	historyScore := history.OnTimeRatePct
	if historyScore == 0 {
		historyScore = 90
	}

	score := 100.0
	score *= weatherScore / 100
	score *= historyScore / 100
	score *= airspaceScore / 100
	overall := int(math.Round(score))

	return SafetyAnalysis{
		SafetyScore: overall,
		RiskLevel:   riskLevelFor(overall),
		Analysis: CategoryBreakdown{
			Weather: WeatherCategory{
				Score:           weatherScore,
				Impact:          weatherImpacts(weather),
				Recommendations: weatherRecommendations(weather),
			},
			AirTraffic: AirTrafficCategory{
				// Display-only congestion estimate; never feeds the composite.
				Score:           85 + s.randFloat()*10,
				CongestionLevel: "Moderate",
				PeakHours:       []string{"07:00-09:00", "17:00-19:00"},
			},
			Geopolitical: GeopoliticalCategory{
				Score:     airspaceScore,
				RiskLevel: airspace.SecurityLevel,
				Factors:   airspace.RiskFactors,
			},
			Technical: TechnicalCategory{
				Score:               92,
				AircraftReliability: aircraftReliability(aircraft),
				MaintenanceStatus:   "Good",
			},
			Historical: HistoricalCategory{
				Score:               historyScore,
				OnTimeRate:          history.OnTimeRatePct,
				AverageDelayMinutes: history.AverageDelayMinutes,
			},
		},
		Recommendations: safetyRecommendations(overall, weather, history, airspace),
	}
}

// weatherSubScore penalizes each leg independently with the same rule set
// and clamps the sum to the floor.
func weatherSubScore(weather RouteWeather) float64 {
	score := 100.0
	score -= legPenalty(weather.Origin)
	score -= legPenalty(weather.Destination)
	return math.Max(score, weatherScoreFloor)
}

func legPenalty(leg WeatherSnapshot) float64 {
	penalty := 0.0
	switch leg.Condition {
	case "Rain":
		penalty += 10
	case "Thunderstorm":
		penalty += 25
	case "Snow":
		penalty += 20
	}
	if leg.VisibilityKm < 5 {
		penalty += 15
	}
	if leg.WindSpeedKmh > 15 {
		penalty += 10
	}
	return penalty
}

func airspaceSubScore(airspace AirspaceAssessment) float64 {
	score := 100.0
	switch airspace.SecurityLevel {
	case SecurityHigh:
		score -= 30
	case SecurityMedium:
		score -= 15
	}
	if airspace.AlternativeRoutesRequired {
		score -= 20
	}
	score -= float64(len(airspace.RiskFactors)) * 10
	return math.Max(score, airspaceScoreFloor)
}

// riskLevelFor is a total, non-overlapping step function of the score.
func riskLevelFor(score int) string {
	switch {
	case score >= 85:
		return RiskLow
	case score >= 70:
		return RiskMedium
	case score >= 50:
		return RiskHigh
	default:
		return RiskCritical
	}
}

func weatherImpacts(weather RouteWeather) []string {
	var impacts []string
	if weather.Origin.Condition == "Thunderstorm" || weather.Destination.Condition == "Thunderstorm" {
		impacts = append(impacts, "Possible thunderstorm delays")
	}
	if weather.Origin.VisibilityKm < 3 || weather.Destination.VisibilityKm < 3 {
		impacts = append(impacts, "Low visibility conditions")
	}
	if weather.Origin.WindSpeedKmh > 20 || weather.Destination.WindSpeedKmh > 20 {
		impacts = append(impacts, "Strong crosswinds possible")
	}
	if len(impacts) == 0 {
		return []string{"Favorable weather conditions"}
	}
	return impacts
}

func weatherRecommendations(weather RouteWeather) []string {
	var recs []string
	if weather.Origin.Condition == "Thunderstorm" {
		recs = append(recs, "Monitor departure airport for storm activity")
	}
	if weather.Destination.Condition == "Thunderstorm" {
		recs = append(recs, "Have alternate destination ready")
	}
	if weather.Origin.VisibilityKm < 5 || weather.Destination.VisibilityKm < 5 {
		recs = append(recs, "Ensure ILS approach capability")
	}
	if len(recs) == 0 {
		return []string{"Proceed with normal operations"}
	}
	return recs
}

// safetyRecommendations applies independent rule checks; the result is never
// empty.
func safetyRecommendations(score int, weather RouteWeather, history RouteHistory, airspace AirspaceAssessment) []string {
	var recs []string
	if score < 70 {
		recs = append(recs, "Consider delaying departure or using alternative route")
	}
	if weather.Origin.Condition == "Thunderstorm" || weather.Destination.Condition == "Thunderstorm" {
		recs = append(recs, "Wait for weather to clear before departure")
	}
	if airspace.AlternativeRoutesRequired {
		recs = append(recs, "Use alternative routing to avoid restricted airspace")
	}
	if history.OnTimeRatePct < 80 {
		recs = append(recs, "Allow extra time for this route due to historical delays")
	}
	if len(recs) == 0 {
		return []string{"Route approved for normal operations"}
	}
	return recs
}

var reliabilityRatings = map[string]int{
	"Boeing 737":  94,
	"Boeing 777":  96,
	"Boeing 787":  92,
	"Airbus A320": 95,
	"Airbus A330": 93,
	"Airbus A350": 97,
}

func aircraftReliability(aircraft string) int {
	if rating, ok := reliabilityRatings[aircraft]; ok {
		return rating
	}
	return 90
}
