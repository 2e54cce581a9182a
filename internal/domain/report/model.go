package report

import "time"

// Period is an inclusive-from, exclusive-to reporting window.
type Period struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ClassTotals breaks passenger counts down by cabin class.
type ClassTotals struct {
	Total      int `json:"total"`
	Economy    int `json:"economy"`
	Business   int `json:"business"`
	FirstClass int `json:"firstClass"`
}

// LoginSummary counts login attempts.
type LoginSummary struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
}

// TicketSummary counts fare sheets.
type TicketSummary struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// DailyFlights counts flights per status for one day.
type DailyFlights struct {
	Total     int `json:"total"`
	Scheduled int `json:"scheduled"`
	OnTime    int `json:"onTime"`
	Delayed   int `json:"delayed"`
	Cancelled int `json:"cancelled"`
	Departed  int `json:"departed"`
}

// DailyReport covers the current day.
type DailyReport struct {
	Date            string        `json:"date"`
	Flights         DailyFlights  `json:"flights"`
	Passengers      ClassTotals   `json:"passengers"`
	LoginActivities LoginSummary  `json:"loginActivities"`
	Tickets         TicketSummary `json:"tickets"`
	Performance     Performance   `json:"performance"`
	GeneratedAt     time.Time     `json:"generatedAt"`
}

// Performance carries the on-time headline numbers.
type Performance struct {
	OnTimePercentage    int `json:"onTimePercentage"`
	AverageDelayMinutes int `json:"averageDelay,omitempty"`
}

// WeeklyFlights summarizes a week of flights.
type WeeklyFlights struct {
	Total           int            `json:"total"`
	DailyAverage    int            `json:"dailyAverage"`
	StatusBreakdown map[string]int `json:"statusBreakdown"`
}

// WeeklyPassengers summarizes a week of passengers.
type WeeklyPassengers struct {
	Total        int `json:"total"`
	DailyAverage int `json:"dailyAverage"`
}

// WeeklyReport covers the trailing seven days.
type WeeklyReport struct {
	Period      Period           `json:"period"`
	Flights     WeeklyFlights    `json:"flights"`
	Passengers  WeeklyPassengers `json:"passengers"`
	Performance Performance      `json:"performance"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// MonthlyFlights summarizes a month of flights.
type MonthlyFlights struct {
	Total             int            `json:"total"`
	StatusBreakdown   map[string]int `json:"statusBreakdown"`
	AircraftBreakdown map[string]int `json:"aircraftBreakdown"`
}

// MonthlyPassengers summarizes a month of passengers.
type MonthlyPassengers struct {
	Total          int         `json:"total"`
	ClassBreakdown ClassTotals `json:"classBreakdown"`
}

// MonthlyReport covers the trailing calendar month.
type MonthlyReport struct {
	Period      Period            `json:"period"`
	Flights     MonthlyFlights    `json:"flights"`
	Passengers  MonthlyPassengers `json:"passengers"`
	Performance Performance       `json:"performance"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// GroupPerformance counts outcomes for one aircraft type or route.
type GroupPerformance struct {
	Total            int `json:"total"`
	OnTime           int `json:"onTime"`
	Delayed          int `json:"delayed"`
	Cancelled        int `json:"cancelled"`
	OnTimePercentage int `json:"onTimePercentage"`
}

// OverallPerformance is the fleet-wide headline.
type OverallPerformance struct {
	TotalFlights     int `json:"totalFlights"`
	OnTimePercentage int `json:"onTimePercentage"`
	CancellationRate int `json:"cancellationRate"`
}

// Trends is a placeholder until enough history accumulates.
type Trends struct {
	Last7Days  []int  `json:"last7Days"`
	Last30Days []int  `json:"last30Days"`
	Note       string `json:"note"`
}

// PerformanceReport slices on-time performance by aircraft and route.
type PerformanceReport struct {
	Overall     OverallPerformance          `json:"overall"`
	ByAircraft  map[string]GroupPerformance `json:"byAircraft"`
	ByRoute     map[string]GroupPerformance `json:"byRoute"`
	Trends      Trends                      `json:"trends"`
	GeneratedAt time.Time                   `json:"generatedAt"`
}

// RevenueByClass breaks estimated revenue down by cabin class.
type RevenueByClass struct {
	Economy    float64 `json:"economy"`
	Business   float64 `json:"business"`
	FirstClass float64 `json:"firstClass"`
}

// Revenue is the estimated takings over active fare sheets.
type Revenue struct {
	Total    float64        `json:"total"`
	ByClass  RevenueByClass `json:"byClass"`
	Currency string         `json:"currency"`
}

// AveragePrices holds per-class mean current fares.
type AveragePrices struct {
	Economy    int `json:"economy"`
	Business   int `json:"business"`
	FirstClass int `json:"firstClass"`
}

// TicketFinancials summarizes the fare catalog for the financial report.
type TicketFinancials struct {
	Total        int           `json:"total"`
	AveragePrice AveragePrices `json:"averagePrice"`
}

// FinancialReport estimates revenue from fares and passenger manifests.
type FinancialReport struct {
	Revenue     Revenue          `json:"revenue"`
	Tickets     TicketFinancials `json:"tickets"`
	GeneratedAt time.Time        `json:"generatedAt"`
}
