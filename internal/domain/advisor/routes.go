package advisor

import (
	"fmt"
	"math"
)

// transitHubs is the fixed candidate list for rerouting proposals.
var transitHubs = []string{"Dubai", "Istanbul", "Doha", "Singapore", "Frankfurt", "London"}

// alternativeRoutes proposes up to three transit routings when the direct
// score is low. This is a randomized simulation, not a pathfinding search:
// hubs are drawn with replacement, so duplicates across proposals can occur.
func (s *service) alternativeRoutes(origin, destination string, safetyScore int) []AlternativeRoute {
	alternatives := []AlternativeRoute{}
	if safetyScore >= 80 {
		return alternatives
	}

	attempts := len(transitHubs)
	if attempts > 3 {
		attempts = 3
	}
	for i := 0; i < attempts; i++ {
		transit := transitHubs[int(s.randFloat()*float64(len(transitHubs)))%len(transitHubs)]
		if transit == origin || transit == destination {
			continue
		}
		alternatives = append(alternatives, AlternativeRoute{
			Route:           fmt.Sprintf("%s → %s → %s", origin, transit, destination),
			SafetyScore:     math.Min(95, float64(safetyScore)+10+s.randFloat()*10),
			AdditionalHours: 2 + s.randFloat()*4,
			Cost:            "Medium",
			Advantages: []string{
				"Avoids primary risk factors",
				"Better weather conditions",
				"Lower air traffic density",
			},
		})
	}
	return alternatives
}
