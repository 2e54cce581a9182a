//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/skyport/backoffice/internal/bootstrap"
	"github.com/skyport/backoffice/internal/domain/advisor"
	"github.com/skyport/backoffice/internal/domain/auth"
	"github.com/skyport/backoffice/internal/domain/flight"
	"github.com/skyport/backoffice/internal/domain/report"
	"github.com/skyport/backoffice/internal/domain/ticket"
	"github.com/skyport/backoffice/internal/domain/weather"
	"github.com/skyport/backoffice/internal/infra/config"
	"github.com/skyport/backoffice/internal/infra/weather/openweather"
	httpiface "github.com/skyport/backoffice/internal/interface/http"
	"github.com/skyport/backoffice/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideAuthConfig,
		provideWeatherConfig,
		provideAdvisorConfig,
		providePgxPool,
		provideFlightRepository,
		provideTicketRepository,
		provideUserRepository,
		provideActivityRepository,
		provideWeatherClient,
		provideWeatherCache,
		provideFlightCatalog,
		provideReportFlights,
		provideReportTickets,
		provideReportActivities,
		provideAdvisorWeather,
		provideAdvisorHistory,
		flight.NewService,
		ticket.NewService,
		auth.NewService,
		weather.NewService,
		report.NewService,
		advisor.NewService,
		wire.Bind(new(weather.Provider), new(*openweather.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
