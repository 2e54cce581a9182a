package advisor

import (
	"context"
	"math"
	"strings"
)

var competitorAirlines = []string{"Emirates", "Qatar Airways", "Turkish Airlines", "Singapore Airlines"}

func (s *service) GenerateDynamicPricing(ctx context.Context, req PricingRequest) (PricingAnalysis, error) {
	if strings.TrimSpace(req.CurrentDemand) == "" {
		req.CurrentDemand = "Medium"
	}

	market := s.simulateMarket()
	competitors := s.simulateCompetitors()
	demand := s.forecastDemand()

	// Base fares are simulated baselines; the demand multiplier applies
	// uniformly across all three classes.
	baseEconomy := 30000 + s.randFloat()*20000
	baseBusiness := 90000 + s.randFloat()*40000
	baseFirstClass := 180000 + s.randFloat()*80000
	multiplier := demandMultiplier(demand.Predicted)

	analysis := PricingAnalysis{
		FlightNumber: req.FlightNumber,
		Route:        req.Route,
		PricingRecommendations: []string{
			"Increase economy pricing by 8%",
			"Maintain business class rates",
			"Reduce first class by 5%",
		},
		MarketAnalysis: MarketInsights{
			Competitiveness: "Strong",
			Positioning:     "Premium",
			Opportunities:   []string{"Early bird discounts", "Group booking incentives"},
		},
		DemandForecast:     demand,
		CompetitorInsights: competitors,
		PriceOptimization: ClassPrices{
			Economy:    int(math.Round(baseEconomy * multiplier)),
			Business:   int(math.Round(baseBusiness * multiplier)),
			FirstClass: int(math.Round(baseFirstClass * multiplier)),
		},
		// Intentionally a fixed triple independent of the computed fares;
		// kept for parity with the established report format.
		RevenueProjection: RevenueProjection{
			Low:      2500000,
			Expected: 3200000,
			High:     4100000,
			Currency: "BDT",
		},
		GeneratedAt: s.now().UTC(),
	}

	s.logger.Info("dynamic pricing generated",
		"flight", req.FlightNumber,
		"route", req.Route,
		"seasonality", market.Seasonality,
		"demand", demand.Predicted,
		"economy", analysis.PriceOptimization.Economy)
	return analysis, nil
}

// demandMultiplier scales base fares linearly with forecasted demand.
func demandMultiplier(predicted float64) float64 {
	return 0.8 + predicted*0.4
}

func (s *service) simulateMarket() MarketSnapshot {
	seasonality := "Off-Peak"
	if s.randFloat() > 0.5 {
		seasonality = "Peak"
	}
	return MarketSnapshot{
		Seasonality:     seasonality,
		Competition:     3 + int(s.randFloat()*5),
		MarketSharePct:  15 + s.randFloat()*20,
		PriceElasticity: 0.7 + s.randFloat()*0.6,
	}
}

func (s *service) simulateCompetitors() []CompetitorSnapshot {
	out := make([]CompetitorSnapshot, 0, len(competitorAirlines))
	for _, airline := range competitorAirlines {
		position := "Budget"
		if s.randFloat() > 0.5 {
			position = "Premium"
		}
		out = append(out, CompetitorSnapshot{
			Airline:         airline,
			EconomyPrice:    25000 + s.randFloat()*50000,
			BusinessPrice:   80000 + s.randFloat()*100000,
			FirstClassPrice: 150000 + s.randFloat()*150000,
			MarketPosition:  position,
		})
	}
	return out
}

func (s *service) forecastDemand() DemandForecast {
	baseline := 0.6 + s.randFloat()*0.3
	seasonal := 0.8
	if s.randFloat() > 0.7 {
		seasonal = 1.2
	} else if s.randFloat() > 0.3 {
		seasonal = 1.0
	}
	return DemandForecast{
		Predicted:  baseline * seasonal,
		Confidence: 0.75 + s.randFloat()*0.2,
		Factors:    []string{"Seasonal patterns", "Historical booking data", "Economic indicators"},
		PeakDays:   []string{"Friday", "Sunday", "Monday"},
	}
}
