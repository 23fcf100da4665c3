package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/restodash/restodash/internal/clientdata"
	"github.com/restodash/restodash/internal/clients/forecast"
	staffingclient "github.com/restodash/restodash/internal/clients/staffing"
	"github.com/restodash/restodash/internal/config"
	"github.com/restodash/restodash/internal/database"
	"github.com/restodash/restodash/internal/events"
	"github.com/restodash/restodash/internal/modules/charts"
	chartshandlers "github.com/restodash/restodash/internal/modules/charts/handlers"
	"github.com/restodash/restodash/internal/modules/ingredients"
	ingredientshandlers "github.com/restodash/restodash/internal/modules/ingredients/handlers"
	"github.com/restodash/restodash/internal/modules/menu"
	menuhandlers "github.com/restodash/restodash/internal/modules/menu/handlers"
	"github.com/restodash/restodash/internal/modules/orders"
	ordershandlers "github.com/restodash/restodash/internal/modules/orders/handlers"
	"github.com/restodash/restodash/internal/modules/scenario"
	scenariohandlers "github.com/restodash/restodash/internal/modules/scenario/handlers"
	"github.com/restodash/restodash/internal/modules/staffing"
	staffinghandlers "github.com/restodash/restodash/internal/modules/staffing/handlers"
	"github.com/restodash/restodash/internal/scheduler"
	"github.com/restodash/restodash/internal/server"
	"github.com/restodash/restodash/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Int("port", cfg.Port).Bool("dev_mode", cfg.DevMode).Msg("Starting RestoDash")

	// Cache database for upstream responses.
	cacheDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "cache.db"),
		Profile: database.ProfileCache,
		Name:    "cache",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open cache database")
	}
	defer cacheDB.Close()

	cacheRepo := clientdata.NewRepository(cacheDB.Conn())
	if err := cacheRepo.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize cache schema")
	}

	// Upstream clients.
	forecastClient := forecast.NewClient(cfg.ForecastServiceURL, cacheRepo, log)
	staffingClient := staffingclient.NewClient(cfg.StaffingServiceURL, cacheRepo, log)

	// Events.
	eventBus := events.NewBus()
	eventManager := events.NewManager(eventBus, log)

	// Services.
	chartService := charts.NewService(log)
	menuService := menu.NewService(forecastClient, eventManager, log)
	ordersService := orders.NewService(forecastClient, chartService, eventManager, log)
	ingredientsService := ingredients.NewService(forecastClient, log)
	staffingService := staffing.NewService(staffingClient, eventManager, log)
	scenarioService := scenario.NewService(log)

	// Slider edits arrive in bursts; the recalculator settles them into a
	// single event stream broadcast.
	scenarioRecalc := scenario.NewRecalculator(scenarioService, func(params scenario.Params, result scenario.Result) {
		eventManager.EmitTyped(events.ScenarioEvaluated, "scenario", &events.ScenarioEvaluatedData{
			EventKey:   params.EventKey,
			WeatherKey: params.WeatherKey,
			Revenue:    result.Revenue,
			Orders:     result.Orders,
		})
	}, log)

	// Background jobs.
	refreshJob := scheduler.NewRefreshJob(menuService, ordersService, ingredientsService, staffingService, eventManager, log)
	cleanupJob := clientdata.NewCleanupJob(cacheRepo, log)

	sched := scheduler.New(log)
	if err := sched.Register(cfg.RefreshSpec, refreshJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register refresh job")
	}
	if err := sched.Register(cfg.CleanupSpec, cleanupJob); err != nil {
		log.Fatal().Err(err).Msg("Failed to register cleanup job")
	}

	// HTTP server.
	systemHandlers := server.NewSystemHandlers(log, cacheDB, cfg.DataDir, refreshJob, ordersService, staffingService, forecastClient, eventManager)

	srv := server.New(server.Config{
		Log:            log,
		Cfg:            cfg,
		EventBus:       eventBus,
		SystemHandlers: systemHandlers,
		Handlers: []server.RouteRegistrar{
			menuhandlers.NewMenuHandler(menuService, log),
			ordershandlers.NewOrdersHandler(ordersService, log),
			ingredientshandlers.NewHandler(ingredientsService, chartService, log),
			staffinghandlers.NewStaffingHandler(staffingService, log),
			scenariohandlers.NewHandler(scenarioService, scenarioRecalc, log),
			chartshandlers.NewHandler(chartService, log),
		},
	})

	sched.Start()

	// Warm the caches so the first dashboard load is fast. Failures are fine,
	// requests fall back to on-demand fetches.
	go func() {
		if err := refreshJob.Run(); err != nil {
			log.Warn().Err(err).Msg("Initial refresh incomplete")
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	case err := <-errChan:
		if err != nil {
			log.Error().Err(err).Msg("Server error")
		}
	}

	sched.Stop()
	scenarioRecalc.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("RestoDash stopped")
}
