package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/wolfman30/practice-booking/cmd/mainconfig"
	"github.com/wolfman30/practice-booking/internal/api/router"
	"github.com/wolfman30/practice-booking/internal/app/bootstrap"
	appconfig "github.com/wolfman30/practice-booking/internal/config"
	"github.com/wolfman30/practice-booking/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/practice-booking/internal/http/middleware"
	"github.com/wolfman30/practice-booking/internal/notify"
	"github.com/wolfman30/practice-booking/internal/observability/metrics"
	"github.com/wolfman30/practice-booking/internal/observability/tracing"
	"github.com/wolfman30/practice-booking/internal/timeslots"
	"github.com/wolfman30/practice-booking/internal/web"
	"github.com/wolfman30/practice-booking/pkg/logging"
)

const serviceName = "practice-booking"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting practice booking server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
	fmt.Println("Server exited gracefully")
}

func run(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:     cfg.OTelEnabled,
		ServiceName: serviceName,
		Endpoint:    cfg.OTelEndpoint,
		SampleRatio: cfg.OTelSampleRatio,
	})
	if err != nil {
		return fmt.Errorf("tracing: %w", err)
	}

	sessions := bootstrap.BuildSessionStore(ctx, cfg, logger)
	defer func() {
		if err := sessions.Close(); err != nil {
			logger.Warn("failed to close session store", "error", err)
		}
	}()
	go sessions.Run(ctx)

	app, err := buildApp(ctx, cfg, logger, sessions)
	if err != nil {
		return err
	}
	go app.limiter.Run(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(app.handler, serviceName),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Warn("tracer shutdown failed", "error", err)
	}
	logger.Info("server stopped")
	return nil
}

type app struct {
	handler http.Handler
	limiter *httpmiddleware.RateLimiter
	metrics *metrics.BookingMetrics
}

func buildApp(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger, sessions bootstrap.Sessions) (*app, error) {
	site := web.Site{
		PracticeName:      cfg.PracticeName,
		PractitionerName:  cfg.PractitionerName,
		PractitionerTitle: cfg.PractitionerTitle,
	}
	renderer, err := web.NewRenderer(site)
	if err != nil {
		return nil, err
	}

	var ses notify.SESAPI
	if cfg.EmailProvider == bootstrap.EmailProviderSES {
		client, err := mainconfig.NewSESClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		ses = client
	}
	sender, err := bootstrap.BuildEmailSender(cfg, ses, logger)
	if err != nil {
		return nil, err
	}
	notifier := notify.NewConfirmationNotifier(sender, notify.Practice{
		Name:              cfg.PracticeName,
		PractitionerName:  cfg.PractitionerName,
		PractitionerTitle: cfg.PractitionerTitle,
	}, logger)

	metricsHandler, bookingMetrics := setupBookingMetrics()
	slots := timeslots.NewMockProvider(cfg.SlotFetchDelay)
	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	handler := router.New(&router.Config{
		Logger: logger,
		Booking: handlers.NewBookingHandler(handlers.BookingConfig{
			Store:    sessions.Store,
			Slots:    slots,
			Renderer: renderer,
			Notifier: notifier,
			Metrics:  bookingMetrics,
			Logger:   logger,
		}),
		Pages:              handlers.NewPagesHandler(sessions.Store, renderer, logger),
		Slots:              handlers.NewSlotsHandler(slots, bookingMetrics, logger),
		Health:             handlers.Health(sessions.Pinger),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        limiter,
		SecureCookies:      cfg.CookieSecure || cfg.IsProduction(),
	})
	return &app{handler: handler, limiter: limiter, metrics: bookingMetrics}, nil
}

// setupBookingMetrics registers the booking collectors on a private
// registry alongside the Go runtime collectors.
func setupBookingMetrics() (http.Handler, *metrics.BookingMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewBookingMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), m
}
