package advisor

import (
	"context"
	"math"
)

func (s *service) PredictFlightDelay(ctx context.Context, req DelayRequest) (DelayPrediction, error) {
	forecast := s.simulateForecast()
	traffic := s.simulateTraffic()
	historical := s.simulateHistoricalDelays(req.Aircraft)

	probability := 0.1
	if forecast.departureCondition != "Clear" {
		probability += 0.2
	}
	if traffic.congestion == "High" {
		probability += 0.15
	}
	if historical.averageDelay > 20 {
		probability += 0.1
	}
	probability = math.Min(probability, 0.8)

	prediction := DelayPrediction{
		FlightNumber:     req.FlightNumber,
		DelayProbability: probability,
		ExpectedMinutes:  probability * 45,
		ConfidenceLevel:  0.75,
		RiskFactors:      []string{"Weather conditions", "Air traffic", "Historical patterns"},
		Recommendations:  []string{"Monitor weather closely", "Consider earlier departure"},
		Mitigation:       []string{"Have backup aircraft ready", "Notify passengers early"},
		AlternativeOptions: []string{
			"Delay by 2 hours",
			"Use different aircraft",
			"Cancel if necessary",
		},
		GeneratedAt: s.now().UTC(),
	}

	s.logger.Info("delay predicted",
		"flight", req.FlightNumber,
		"probability", prediction.DelayProbability,
		"expected_minutes", prediction.ExpectedMinutes)
	return prediction, nil
}

type forecastSignal struct {
	departureCondition string
	arrivalCondition   string
	turbulence         string
}

// simulateForecast stands in for an en-route forecast feed.
func (s *service) simulateForecast() forecastSignal {
	return forecastSignal{
		departureCondition: "Clear",
		arrivalCondition:   "Partly Cloudy",
		turbulence:         "Light",
	}
}

type trafficSignal struct {
	congestion       string
	delayProbability float64
}

func (s *service) simulateTraffic() trafficSignal {
	congestion := "Medium"
	if s.randFloat() > 0.7 {
		congestion = "High"
	}
	return trafficSignal{
		congestion:       congestion,
		delayProbability: 0.1 + s.randFloat()*0.2,
	}
}

type delayHistorySignal struct {
	averageDelay float64
	reliability  int
}

func (s *service) simulateHistoricalDelays(aircraft string) delayHistorySignal {
	return delayHistorySignal{
		averageDelay: 12 + s.randFloat()*18,
		reliability:  aircraftReliability(aircraft),
	}
}
