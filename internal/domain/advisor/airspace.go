package advisor

import "strings"

// Airspace security levels.
const (
	SecurityLow    = "Low"
	SecurityMedium = "Medium"
	SecurityHigh   = "High"
)

// conflictZones drive the static restricted-route match.
var conflictZones = []string{"Syria", "Ukraine", "Afghanistan", "Iraq"}

// assessAirspace is a simulated classification: a randomized security-level
// draw combined with static conflict-zone matching on the endpoints.
func (s *service) assessAirspace(origin, destination string) AirspaceAssessment {
	var riskFactors []string

	securityLevel := SecurityLow
	if s.randFloat() > 0.8 {
		securityLevel = SecurityHigh
	} else if s.randFloat() > 0.5 {
		securityLevel = SecurityMedium
	}
	if securityLevel == SecurityHigh {
		riskFactors = append(riskFactors, "Heightened security measures")
	}

	conflictRoute := false
	for _, zone := range conflictZones {
		lower := strings.ToLower(zone)
		if strings.Contains(strings.ToLower(origin), lower) || strings.Contains(strings.ToLower(destination), lower) {
			conflictRoute = true
			break
		}
	}
	if conflictRoute {
		riskFactors = append(riskFactors, "Route passes through conflict zone")
	}

	restrictions := "Low"
	if len(riskFactors) > 0 {
		restrictions = "Moderate"
	}

	return AirspaceAssessment{
		SecurityLevel:             securityLevel,
		RiskFactors:               riskFactors,
		AirspaceRestrictions:      restrictions,
		AlternativeRoutesRequired: conflictRoute,
	}
}
