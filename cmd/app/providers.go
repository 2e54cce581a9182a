package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/skyport/backoffice/internal/domain/advisor"
	"github.com/skyport/backoffice/internal/domain/auth"
	"github.com/skyport/backoffice/internal/domain/flight"
	"github.com/skyport/backoffice/internal/domain/report"
	"github.com/skyport/backoffice/internal/domain/ticket"
	"github.com/skyport/backoffice/internal/domain/weather"
	"github.com/skyport/backoffice/internal/infra/config"
	"github.com/skyport/backoffice/internal/infra/flightrepo"
	"github.com/skyport/backoffice/internal/infra/loginrepo"
	"github.com/skyport/backoffice/internal/infra/ticketrepo"
	"github.com/skyport/backoffice/internal/infra/userrepo"
	"github.com/skyport/backoffice/internal/infra/weather/openweather"
	"github.com/skyport/backoffice/internal/infra/weathercache"
)

func provideAuthConfig(cfg *config.Config) auth.Config {
	return auth.Config{
		Secret:            cfg.Auth.Secret,
		TokenTTL:          cfg.Auth.TokenTTL,
		RefreshTokenTTL:   cfg.Auth.RefreshTokenTTL,
		MaxFailedAttempts: cfg.Auth.MaxFailedAttempts,
		AttemptWindow:     cfg.Auth.AttemptWindow,
	}
}

func provideWeatherConfig(cfg *config.Config) weather.Config {
	return weather.Config{
		HomeCity: cfg.Weather.HomeCity,
		CacheTTL: cfg.Weather.CacheTTL,
	}
}

func provideAdvisorConfig(cfg *config.Config) advisor.Config {
	return advisor.Config{
		HistoryWindow: time.Duration(cfg.Advisor.HistoryWindowDays) * 24 * time.Hour,
	}
}

// providePgxPool builds a shared connection pool, or nil when the DSN is
// unset or the database is unreachable. Repositories fall back to memory.
func providePgxPool(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	dsn := strings.TrimSpace(cfg.Postgres.DSN)
	if dsn == "" {
		logger.Info("postgres dsn not set, using memory repositories")
		return nil
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repositories", "error", err)
		return nil
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repositories", "error", err)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repositories", "error", err)
		pool.Close()
		return nil
	}
	logger.Info("postgres repositories enabled")
	return pool
}

func provideFlightRepository(pool *pgxpool.Pool) flight.Repository {
	if pool == nil {
		return flightrepo.NewMemoryRepository()
	}
	return flightrepo.NewPostgresRepository(pool)
}

func provideTicketRepository(pool *pgxpool.Pool) ticket.Repository {
	if pool == nil {
		return ticketrepo.NewMemoryRepository()
	}
	return ticketrepo.NewPostgresRepository(pool)
}

func provideUserRepository(pool *pgxpool.Pool) auth.Repository {
	if pool == nil {
		return userrepo.NewMemoryRepository()
	}
	return userrepo.NewPostgresRepository(pool)
}

func provideActivityRepository(pool *pgxpool.Pool) auth.ActivityRepository {
	if pool == nil {
		return loginrepo.NewMemoryRepository()
	}
	return loginrepo.NewPostgresRepository(pool)
}

func provideWeatherClient(cfg *config.Config) *openweather.Client {
	return openweather.NewClient(cfg.Weather.BaseURL, cfg.Weather.APIKey, cfg.Weather.HTTPTimeout)
}

func provideWeatherCache(cfg *config.Config, logger *slog.Logger) weather.Cache {
	if cfg.Weather.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return weathercache.NewMemoryStore()
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return weathercache.NewMemoryStore()
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		} else {
			logger.Info("weather valkey cache enabled", "addr", cfg.Weather.Valkey.Addr)
			return weathercache.NewValkeyStore(client, "weather")
		}
	}
	return weathercache.NewMemoryStore()
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Weather.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Weather.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Weather.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}

// The flight store doubles as the catalog tickets validate against and the
// source reports read from; these adapters keep the domain interfaces narrow.

func provideFlightCatalog(repo flight.Repository) ticket.FlightCatalog {
	return repo
}

func provideReportFlights(repo flight.Repository) report.FlightSource {
	return repo
}

func provideReportTickets(repo ticket.Repository) report.TicketSource {
	return repo
}

func provideReportActivities(repo auth.ActivityRepository) report.ActivitySource {
	return repo
}

func provideAdvisorWeather(svc weather.Service) advisor.WeatherProvider {
	return svc
}

func provideAdvisorHistory(svc flight.Service) advisor.HistoryProvider {
	return svc
}
