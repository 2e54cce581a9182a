package advisor

import "context"

var aircraftComponents = []string{"Engine", "Landing Gear", "Avionics", "Hydraulics"}

func (s *service) PredictMaintenance(ctx context.Context, req MaintenanceRequest) (MaintenanceOutlook, error) {
	issues := make([]ComponentWear, 0, len(aircraftComponents))
	highPriority := 0
	for _, component := range aircraftComponents {
		critical := "Medium"
		if s.randFloat() > 0.8 {
			critical = "High"
			highPriority++
		}
		issues = append(issues, ComponentWear{
			Component:         component,
			WearLevelPct:      s.randFloat() * 100,
			DaysToMaintenance: 30 + int(s.randFloat()*180),
			CriticalLevel:     critical,
		})
	}

	score, urgency := 95, "Medium"
	if highPriority > 0 {
		score, urgency = 85, "High"
	}

	outlook := MaintenanceOutlook{
		Aircraft:         req.Aircraft,
		MaintenanceScore: score,
		UrgencyLevel:     urgency,
		PredictedIssues:  issues,
		RecommendedActions: []string{
			"Schedule engine inspection",
			"Check hydraulic fluid levels",
			"Update avionics software",
		},
		CostEstimate: 250000 + s.randFloat()*500000,
		Timeframe:    "7-14 days",
		RiskAssessment: []string{
			"Potential engine efficiency degradation",
			"Landing gear inspection due",
		},
		GeneratedAt: s.now().UTC(),
	}

	s.logger.Info("maintenance predicted",
		"aircraft", req.Aircraft,
		"score", outlook.MaintenanceScore,
		"urgency", outlook.UrgencyLevel)
	return outlook, nil
}
