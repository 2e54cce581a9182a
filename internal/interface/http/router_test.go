package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skyport/backoffice/internal/domain/advisor"
	"github.com/skyport/backoffice/internal/domain/auth"
	"github.com/skyport/backoffice/internal/domain/flight"
	"github.com/skyport/backoffice/internal/domain/report"
	"github.com/skyport/backoffice/internal/domain/ticket"
	"github.com/skyport/backoffice/internal/domain/weather"
	"github.com/skyport/backoffice/internal/infra/config"
	apperrors "github.com/skyport/backoffice/pkg/errors"
)

func TestRouter_LoginSuccess(t *testing.T) {
	stubs := newStubs()
	stubs.auth.loginFn = func(ctx context.Context, req auth.LoginRequest, client auth.ClientInfo) (auth.LoginResponse, error) {
		require.Equal(t, "admin@skyport.io", req.Email)
		require.NotEmpty(t, client.IPAddress)
		return auth.LoginResponse{Token: "access", RefreshToken: "refresh"}, nil
	}

	rec := performRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"admin@skyport.io","password":"secret"}`, "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	require.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	require.Equal(t, "access", data["token"])
}

func TestRouter_LoginThrottled(t *testing.T) {
	stubs := newStubs()
	stubs.auth.loginFn = func(ctx context.Context, req auth.LoginRequest, client auth.ClientInfo) (auth.LoginResponse, error) {
		return auth.LoginResponse{}, apperrors.Wrap("too_many_attempts", "too many failed attempts, try again later", nil)
	}

	rec := performRequest(http.MethodPost, "/api/v1/auth/login", `{"email":"admin@skyport.io","password":"bad"}`, "", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	require.Equal(t, false, body["success"])
	require.Equal(t, "too many failed attempts, try again later", body["message"])
}

func TestRouter_ProtectedRouteRequiresToken(t *testing.T) {
	rec := performRequest(http.MethodGet, "/api/v1/flights", "", "", newRouterUnderTest(t, newStubs()))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	require.Equal(t, false, body["success"])
}

func TestRouter_ListFlightsPassesQuery(t *testing.T) {
	stubs := newStubs()
	stubs.flight.listFn = func(ctx context.Context, q flight.ListQuery) (flight.ListResult, error) {
		require.Equal(t, "Delayed", q.Status)
		require.Equal(t, 2, q.Page)
		require.Equal(t, 5, q.Limit)
		return flight.ListResult{
			Flights:    []flight.Flight{{ID: "f-1", FlightNumber: "BG101"}},
			Pagination: flight.Pagination{Current: 2, TotalPages: 3, Count: 1, TotalRecords: 11},
		}, nil
	}

	rec := performRequest(http.MethodGet, "/api/v1/flights?status=Delayed&page=2&limit=5", "", "token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	require.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	flights := data["flights"].([]any)
	require.Len(t, flights, 1)
}

func TestRouter_GetFlightNotFound(t *testing.T) {
	stubs := newStubs()
	stubs.flight.getFn = func(ctx context.Context, id string) (flight.Flight, error) {
		return flight.Flight{}, apperrors.Wrap("not_found", "flight not found", nil)
	}

	rec := performRequest(http.MethodGet, "/api/v1/flights/missing", "", "token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	require.Equal(t, false, body["success"])
	require.Equal(t, "flight not found", body["message"])
}

func TestRouter_CreateFlightInvalidJSON(t *testing.T) {
	rec := performRequest(http.MethodPost, "/api/v1/flights", `{"flightNumber":123}`, "token", newRouterUnderTest(t, newStubs()))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_CreateFlightCarriesUserID(t *testing.T) {
	stubs := newStubs()
	stubs.flight.createFn = func(ctx context.Context, params flight.CreateParams, createdBy int64) (flight.Flight, error) {
		require.Equal(t, int64(42), createdBy)
		require.Equal(t, "BG101", params.FlightNumber)
		return flight.Flight{ID: "f-1", FlightNumber: "BG101"}, nil
	}

	rec := performRequest(http.MethodPost, "/api/v1/flights", `{"flightNumber":"BG101"}`, "token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestRouter_DuplicateTicketConflict(t *testing.T) {
	stubs := newStubs()
	stubs.ticket.createFn = func(ctx context.Context, params ticket.CreateParams, updatedBy int64) (ticket.Ticket, error) {
		return ticket.Ticket{}, apperrors.Wrap("duplicate_ticket", "ticket already exists for this flight", nil)
	}

	rec := performRequest(http.MethodPost, "/api/v1/tickets", `{"flightNumber":"BG101"}`, "token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_WeatherCityNotFound(t *testing.T) {
	stubs := newStubs()
	stubs.weather.cityFn = func(ctx context.Context, city string) (weather.Report, error) {
		require.Equal(t, "Atlantis", city)
		return weather.Report{}, apperrors.Wrap("city_not_found", "city not found", nil)
	}

	rec := performRequest(http.MethodGet, "/api/v1/weather/city/Atlantis", "", "token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RouteSafety(t *testing.T) {
	stubs := newStubs()
	stubs.advisor.routeSafetyFn = func(ctx context.Context, req advisor.RouteSafetyRequest) (advisor.SafetyAnalysis, error) {
		require.Equal(t, "Dhaka", req.Origin)
		return advisor.SafetyAnalysis{Route: "Dhaka to London", SafetyScore: 87, RiskLevel: "Low"}, nil
	}

	rec := performRequest(http.MethodPost, "/api/v1/ai/route-safety", `{"origin":"Dhaka","destination":"London"}`, "token", newRouterUnderTest(t, stubs))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec.Body.Bytes())
	data := body["data"].(map[string]any)
	require.Equal(t, "Dhaka to London", data["route"])
}

func TestRouter_HealthIsPublic(t *testing.T) {
	rec := performRequest(http.MethodGet, "/health", "", "", newRouterUnderTest(t, newStubs()))
	require.Equal(t, http.StatusOK, rec.Code)
}

func performRequest(method, path, body, token string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, stubs *stubServices) *http.Server {
	t.Helper()
	handler := NewHandler(stubs.auth, stubs.flight, stubs.ticket, stubs.weather, stubs.report, stubs.advisor, newTestLogger())
	cfg := &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
	}
	return NewRouter(cfg, handler)
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func decodeBody(t *testing.T, raw []byte) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubServices struct {
	auth    *stubAuthService
	flight  *stubFlightService
	ticket  *stubTicketService
	weather *stubWeatherService
	report  *stubReportService
	advisor *stubAdvisorService
}

// newStubs returns services whose token validation accepts any bearer token
// as user 42 so protected routes can be exercised directly.
func newStubs() *stubServices {
	return &stubServices{
		auth:    &stubAuthService{},
		flight:  &stubFlightService{},
		ticket:  &stubTicketService{},
		weather: &stubWeatherService{},
		report:  &stubReportService{},
		advisor: &stubAdvisorService{},
	}
}

type stubAuthService struct {
	loginFn func(ctx context.Context, req auth.LoginRequest, client auth.ClientInfo) (auth.LoginResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, req auth.RegisterRequest) (auth.UserView, error) {
	return auth.UserView{}, nil
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest, client auth.ClientInfo) (auth.LoginResponse, error) {
	if s.loginFn != nil {
		return s.loginFn(ctx, req, client)
	}
	return auth.LoginResponse{}, nil
}

func (s *stubAuthService) ValidateToken(ctx context.Context, token string) (auth.Claims, error) {
	if token == "" {
		return auth.Claims{}, apperrors.Wrap("invalid_token", "token missing", nil)
	}
	return auth.Claims{UserID: 42, Email: "admin@skyport.io", Role: auth.RoleAdmin, TokenType: "access"}, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (auth.LoginResponse, error) {
	return auth.LoginResponse{}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, claims auth.Claims) error { return nil }

func (s *stubAuthService) Profile(ctx context.Context, userID int64) (auth.UserView, error) {
	return auth.UserView{ID: userID}, nil
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID int64, params auth.UpdateProfileParams) (auth.UserView, error) {
	return auth.UserView{ID: userID}, nil
}

func (s *stubAuthService) ChangePassword(ctx context.Context, userID int64, req auth.ChangePasswordRequest) error {
	return nil
}

func (s *stubAuthService) LoginActivity(ctx context.Context, q auth.ActivityQuery) (auth.ActivityList, error) {
	return auth.ActivityList{}, nil
}

type stubFlightService struct {
	listFn   func(ctx context.Context, q flight.ListQuery) (flight.ListResult, error)
	getFn    func(ctx context.Context, id string) (flight.Flight, error)
	createFn func(ctx context.Context, params flight.CreateParams, createdBy int64) (flight.Flight, error)
}

func (s *stubFlightService) List(ctx context.Context, q flight.ListQuery) (flight.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, q)
	}
	return flight.ListResult{}, nil
}

func (s *stubFlightService) Get(ctx context.Context, id string) (flight.Flight, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return flight.Flight{ID: id}, nil
}

func (s *stubFlightService) Create(ctx context.Context, params flight.CreateParams, createdBy int64) (flight.Flight, error) {
	if s.createFn != nil {
		return s.createFn(ctx, params, createdBy)
	}
	return flight.Flight{}, nil
}

func (s *stubFlightService) Update(ctx context.Context, id string, params flight.UpdateParams) (flight.Flight, error) {
	return flight.Flight{ID: id}, nil
}

func (s *stubFlightService) Delete(ctx context.Context, id string) error { return nil }

func (s *stubFlightService) UpdateStatus(ctx context.Context, id string, update flight.StatusUpdate) (flight.Flight, error) {
	return flight.Flight{ID: id}, nil
}

func (s *stubFlightService) Stats(ctx context.Context) (flight.Stats, error) {
	return flight.Stats{}, nil
}

func (s *stubFlightService) RouteHistory(ctx context.Context, origin, destination string, window time.Duration) (advisor.RouteHistory, error) {
	return advisor.RouteHistory{}, nil
}

type stubTicketService struct {
	createFn func(ctx context.Context, params ticket.CreateParams, updatedBy int64) (ticket.Ticket, error)
}

func (s *stubTicketService) List(ctx context.Context, q ticket.ListQuery) (ticket.ListResult, error) {
	return ticket.ListResult{}, nil
}

func (s *stubTicketService) Get(ctx context.Context, id string) (ticket.Ticket, error) {
	return ticket.Ticket{ID: id}, nil
}

func (s *stubTicketService) GetByFlightNumber(ctx context.Context, flightNumber string) (ticket.Ticket, error) {
	return ticket.Ticket{FlightNumber: flightNumber}, nil
}

func (s *stubTicketService) Create(ctx context.Context, params ticket.CreateParams, updatedBy int64) (ticket.Ticket, error) {
	if s.createFn != nil {
		return s.createFn(ctx, params, updatedBy)
	}
	return ticket.Ticket{}, nil
}

func (s *stubTicketService) Update(ctx context.Context, id string, params ticket.UpdateParams, updatedBy int64) (ticket.Ticket, error) {
	return ticket.Ticket{ID: id}, nil
}

func (s *stubTicketService) UpdatePricing(ctx context.Context, id string, pricing ticket.Pricing, factors ticket.Factors, updatedBy int64) (ticket.Ticket, error) {
	return ticket.Ticket{ID: id}, nil
}

func (s *stubTicketService) Delete(ctx context.Context, id string) error { return nil }

func (s *stubTicketService) Stats(ctx context.Context) (ticket.Stats, error) {
	return ticket.Stats{}, nil
}

func (s *stubTicketService) GenerateSamples(ctx context.Context, updatedBy int64) ([]ticket.Ticket, error) {
	return nil, nil
}

type stubWeatherService struct {
	cityFn func(ctx context.Context, city string) (weather.Report, error)
}

func (s *stubWeatherService) Home(ctx context.Context) (weather.Report, error) {
	return weather.Report{}, nil
}

func (s *stubWeatherService) City(ctx context.Context, city string) (weather.Report, error) {
	if s.cityFn != nil {
		return s.cityFn(ctx, city)
	}
	return weather.Report{}, nil
}

func (s *stubWeatherService) CityForecast(ctx context.Context, city string) (weather.Forecast, error) {
	return weather.Forecast{}, nil
}

func (s *stubWeatherService) Cities(ctx context.Context, cities []string) ([]weather.CityResult, error) {
	return nil, nil
}

func (s *stubWeatherService) Snapshot(ctx context.Context, city string) (advisor.WeatherSnapshot, error) {
	return advisor.WeatherSnapshot{}, nil
}

type stubReportService struct{}

func (s *stubReportService) Daily(ctx context.Context) (report.DailyReport, error) {
	return report.DailyReport{}, nil
}

func (s *stubReportService) Weekly(ctx context.Context) (report.WeeklyReport, error) {
	return report.WeeklyReport{}, nil
}

func (s *stubReportService) Monthly(ctx context.Context) (report.MonthlyReport, error) {
	return report.MonthlyReport{}, nil
}

func (s *stubReportService) Performance(ctx context.Context) (report.PerformanceReport, error) {
	return report.PerformanceReport{}, nil
}

func (s *stubReportService) Financial(ctx context.Context) (report.FinancialReport, error) {
	return report.FinancialReport{}, nil
}

type stubAdvisorService struct {
	routeSafetyFn func(ctx context.Context, req advisor.RouteSafetyRequest) (advisor.SafetyAnalysis, error)
}

func (s *stubAdvisorService) AnalyzeRouteSafety(ctx context.Context, req advisor.RouteSafetyRequest) (advisor.SafetyAnalysis, error) {
	if s.routeSafetyFn != nil {
		return s.routeSafetyFn(ctx, req)
	}
	return advisor.SafetyAnalysis{}, nil
}

func (s *stubAdvisorService) GenerateDynamicPricing(ctx context.Context, req advisor.PricingRequest) (advisor.PricingAnalysis, error) {
	return advisor.PricingAnalysis{}, nil
}

func (s *stubAdvisorService) PredictFlightDelay(ctx context.Context, req advisor.DelayRequest) (advisor.DelayPrediction, error) {
	return advisor.DelayPrediction{}, nil
}

func (s *stubAdvisorService) OptimizePassengerFlow(ctx context.Context, req advisor.FlowRequest) (advisor.FlowPlan, error) {
	return advisor.FlowPlan{}, nil
}

func (s *stubAdvisorService) PredictMaintenance(ctx context.Context, req advisor.MaintenanceRequest) (advisor.MaintenanceOutlook, error) {
	return advisor.MaintenanceOutlook{}, nil
}
