package flight

import "time"

// Flight statuses.
const (
	StatusScheduled = "Scheduled"
	StatusOnTime    = "On Time"
	StatusDelayed   = "Delayed"
	StatusCancelled = "Cancelled"
	StatusBoarding  = "Boarding"
	StatusDeparted  = "Departed"
	StatusArrived   = "Arrived"
)

// Statuses enumerates every valid flight status.
var Statuses = []string{
	StatusScheduled, StatusOnTime, StatusDelayed, StatusCancelled,
	StatusBoarding, StatusDeparted, StatusArrived,
}

// AircraftTypes enumerates the supported fleet.
var AircraftTypes = []string{
	"Boeing 737", "Boeing 777", "Boeing 787",
	"Airbus A320", "Airbus A330", "Airbus A350",
}

// DelayReasons enumerates accepted delay causes.
var DelayReasons = []string{"Weather", "Technical", "Air Traffic", "Security", "Crew", "Other"}

// FuelStatuses enumerates ground fueling states.
var FuelStatuses = []string{"Pending", "Fueling", "Fueled", "Not Required"}

// Delay captures an incurred delay on a flight.
type Delay struct {
	DurationMinutes int    `json:"duration"`
	Reason          string `json:"reason"`
}

// Passengers breaks the manifest down by cabin class.
type Passengers struct {
	Total      int `json:"total"`
	Economy    int `json:"economy"`
	Business   int `json:"business"`
	FirstClass int `json:"firstClass"`
}

// Flight is a persisted flight record.
type Flight struct {
	ID            string     `json:"id"`
	FlightNumber  string     `json:"flightNumber"`
	Airline       string     `json:"airline"`
	Aircraft      string     `json:"aircraft"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	TransitPoints []string   `json:"transitPoints,omitempty"`
	DepartureTime time.Time  `json:"departureTime"`
	ArrivalTime   time.Time  `json:"arrivalTime"`
	Platform      string     `json:"platform"`
	Status        string     `json:"status"`
	Delay         *Delay     `json:"delay,omitempty"`
	Passengers    Passengers `json:"passengers"`
	FuelStatus    string     `json:"fuelStatus"`
	CreatedBy     int64      `json:"createdBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// DurationMinutes derives the scheduled block time.
func (f Flight) DurationMinutes() int {
	if f.DepartureTime.IsZero() || f.ArrivalTime.IsZero() {
		return 0
	}
	return int(f.ArrivalTime.Sub(f.DepartureTime).Minutes())
}

// CreateParams is the allow-listed creation payload.
type CreateParams struct {
	FlightNumber  string     `json:"flightNumber"`
	Airline       string     `json:"airline"`
	Aircraft      string     `json:"aircraft"`
	Origin        string     `json:"origin"`
	Destination   string     `json:"destination"`
	TransitPoints []string   `json:"transitPoints"`
	DepartureTime time.Time  `json:"departureTime"`
	ArrivalTime   time.Time  `json:"arrivalTime"`
	Platform      string     `json:"platform"`
	Status        string     `json:"status"`
	Delay         *Delay     `json:"delay"`
	Passengers    Passengers `json:"passengers"`
	FuelStatus    string     `json:"fuelStatus"`
}

// UpdateParams carries only the fields a caller is allowed to change;
// nil means "leave unchanged". Client payloads are never merged blindly.
type UpdateParams struct {
	Airline       *string     `json:"airline"`
	Aircraft      *string     `json:"aircraft"`
	Origin        *string     `json:"origin"`
	Destination   *string     `json:"destination"`
	TransitPoints *[]string   `json:"transitPoints"`
	DepartureTime *time.Time  `json:"departureTime"`
	ArrivalTime   *time.Time  `json:"arrivalTime"`
	Platform      *string     `json:"platform"`
	Status        *string     `json:"status"`
	Delay         *Delay      `json:"delay"`
	Passengers    *Passengers `json:"passengers"`
	FuelStatus    *string     `json:"fuelStatus"`
}

// StatusUpdate is the payload for the status transition endpoint.
type StatusUpdate struct {
	Status string `json:"status"`
	Delay  *Delay `json:"delay"`
}

// ListQuery carries list filters and pagination.
type ListQuery struct {
	Status      string
	Origin      string
	Destination string
	Date        string
	Page        int
	Limit       int
}

// Pagination describes a page of results.
type Pagination struct {
	Current      int `json:"current"`
	TotalPages   int `json:"total"`
	Count        int `json:"count"`
	TotalRecords int `json:"totalRecords"`
}

// ListResult bundles a page of flights with its pagination envelope.
type ListResult struct {
	Flights    []Flight   `json:"flights"`
	Pagination Pagination `json:"pagination"`
}

// Stats summarizes the fleet for the dashboard.
type Stats struct {
	TotalFlights      int            `json:"totalFlights"`
	TodayFlights      int            `json:"todayFlights"`
	StatusBreakdown   map[string]int `json:"statusBreakdown"`
	TotalPassengers   int            `json:"totalPassengers"`
	AircraftBreakdown map[string]int `json:"aircraftBreakdown"`
}
