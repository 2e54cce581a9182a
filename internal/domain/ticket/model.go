package ticket

import "time"

// DemandLevels enumerates demand factor values.
var DemandLevels = []string{"Low", "Medium", "High"}

// Seasons enumerates season factor values.
var Seasons = []string{"Peak", "Off-Peak", "Regular"}

// DefaultCurrency is applied when a class price omits one.
const DefaultCurrency = "BDT"

// ClassPrice is the fare for one cabin class.
type ClassPrice struct {
	Base     float64 `json:"base"`
	Current  float64 `json:"current"`
	Currency string  `json:"currency"`
}

// Pricing holds fares for all cabin classes.
type Pricing struct {
	Economy    ClassPrice `json:"economy"`
	Business   ClassPrice `json:"business"`
	FirstClass ClassPrice `json:"firstClass"`
}

// Factors records the inputs that shaped a fare.
type Factors struct {
	DistanceKm float64 `json:"distance"`
	Demand     string  `json:"demand"`
	Season     string  `json:"season"`
	FuelCost   float64 `json:"fuelCost"`
}

// Route is the city pair a fare applies to.
type Route struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

// Ticket is a fare sheet for one flight.
type Ticket struct {
	ID           string    `json:"id"`
	FlightNumber string    `json:"flightNumber"`
	Route        Route     `json:"route"`
	Aircraft     string    `json:"aircraft"`
	Pricing      Pricing   `json:"pricing"`
	Factors      Factors   `json:"factors"`
	ValidFrom    time.Time `json:"validFrom"`
	ValidUntil   time.Time `json:"validUntil"`
	IsActive     bool      `json:"isActive"`
	LastUpdated  time.Time `json:"lastUpdated"`
	UpdatedBy    int64     `json:"updatedBy,omitempty"`
}

// PriceChangePct reports the percentage drift of current over base.
func (p ClassPrice) PriceChangePct() float64 {
	if p.Base <= 0 {
		return 0
	}
	return (p.Current - p.Base) / p.Base * 100
}

// ValidAt reports whether the fare sheet is usable at the given instant.
func (t Ticket) ValidAt(at time.Time) bool {
	return t.IsActive && !at.Before(t.ValidFrom) && !at.After(t.ValidUntil)
}

// CreateParams is the allow-listed creation payload.
type CreateParams struct {
	FlightNumber string     `json:"flightNumber"`
	Route        *Route     `json:"route"`
	Aircraft     string     `json:"aircraft"`
	Pricing      Pricing    `json:"pricing"`
	Factors      Factors    `json:"factors"`
	ValidFrom    *time.Time `json:"validFrom"`
	ValidUntil   *time.Time `json:"validUntil"`
}

// UpdateParams carries only the fields a caller may change; nil leaves a
// field untouched.
type UpdateParams struct {
	Route      *Route     `json:"route"`
	Aircraft   *string    `json:"aircraft"`
	Pricing    *Pricing   `json:"pricing"`
	Factors    *Factors   `json:"factors"`
	ValidFrom  *time.Time `json:"validFrom"`
	ValidUntil *time.Time `json:"validUntil"`
	IsActive   *bool      `json:"isActive"`
}

// ListQuery carries list filters and pagination. Route matches either
// endpoint of the city pair.
type ListQuery struct {
	Route    string
	Aircraft string
	Active   *bool
	Page     int
	Limit    int
}

// Pagination describes a page of results.
type Pagination struct {
	Current      int `json:"current"`
	TotalPages   int `json:"total"`
	Count        int `json:"count"`
	TotalRecords int `json:"totalRecords"`
}

// ListResult bundles a page of tickets with its pagination envelope.
type ListResult struct {
	Tickets    []Ticket   `json:"tickets"`
	Pagination Pagination `json:"pagination"`
}

// RouteStats averages current fares over one city pair.
type RouteStats struct {
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Count           int     `json:"count"`
	AvgEconomy      float64 `json:"avgEconomyPrice"`
	AvgBusiness     float64 `json:"avgBusinessPrice"`
	AvgFirstClass   float64 `json:"avgFirstClassPrice"`
}

// Stats summarizes the fare catalog.
type Stats struct {
	TotalTickets      int            `json:"totalTickets"`
	ActiveTickets     int            `json:"activeTickets"`
	RouteBreakdown    []RouteStats   `json:"routeBreakdown"`
	AircraftBreakdown map[string]int `json:"aircraftBreakdown"`
	DemandBreakdown   map[string]int `json:"demandAnalysis"`
}
