package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/corray333/order-bridge/internal/config"
	"github.com/corray333/order-bridge/internal/dal/interfaces/itrackingrepo"
	"github.com/corray333/order-bridge/internal/dal/mailer"
	"github.com/corray333/order-bridge/internal/dal/partnerapi"
	"github.com/corray333/order-bridge/internal/dal/postgres"
	"github.com/corray333/order-bridge/internal/dal/rabbitmq"
	orderrepo "github.com/corray333/order-bridge/internal/dal/repositories/order/postgres"
	trackingrepo "github.com/corray333/order-bridge/internal/dal/repositories/tracking/postgres"
	"github.com/corray333/order-bridge/internal/otel"
	"github.com/corray333/order-bridge/internal/service/services/syncsvc"
	"github.com/corray333/order-bridge/internal/service/services/tracksvc"
	"github.com/corray333/order-bridge/internal/transport/consumer"
	httptransport "github.com/corray333/order-bridge/internal/transport/http"
	"github.com/spf13/viper"
)

// App represents the application.
type App struct {
	syncSvc        *syncsvc.SyncService
	trackSvc       *tracksvc.TrackService
	consumerTransp *consumer.Consumer
	httpTransp     *httptransport.HTTPTransport
	rabbitMqClient *rabbitmq.Client
	postgresClient *postgres.Client
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()
	rabbitMqClient := rabbitmq.MustNewClient()
	postgresClient := postgres.MustNewClient()

	creds := config.LoadCredentials()
	if !creds.IsComplete() {
		slog.Warn("Partner credentials not fully configured, order sync is disabled")
	}

	orderRepository := orderrepo.NewPostgresOrderRepository(postgresClient.DB())

	// The tracking capability is optional; without it inbound add and
	// delete requests fail with no side effects.
	var trackingRepository itrackingrepo.ITrackingRepository
	if viper.GetBool("tracking.enabled") {
		trackingRepository = trackingrepo.NewPostgresTrackingRepository(postgresClient.DB())
	}

	syncSvc := syncsvc.MustNewSyncService(
		syncsvc.WithOrderRepository(orderRepository),
		syncsvc.WithDeliverer(partnerapi.NewClient()),
		syncsvc.WithMailSender(mailer.MustNewMailer()),
		syncsvc.WithCredentials(creds),
	)

	trackSvc := tracksvc.MustNewTrackService(
		tracksvc.WithOrderRepository(orderRepository),
		tracksvc.WithTrackingRepository(trackingRepository),
		tracksvc.WithCredentials(creds),
	)

	consumerTransp := consumer.NewConsumer(rabbitMqClient, syncSvc)

	httpTransp := httptransport.NewHTTPTransport(trackSvc)
	httpTransp.RegisterRoutes()

	return &App{
		syncSvc:        syncSvc,
		trackSvc:       trackSvc,
		consumerTransp: consumerTransp,
		httpTransp:     httpTransp,
		rabbitMqClient: rabbitMqClient,
		postgresClient: postgresClient,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		slog.Info("Starting consumer")
		if err := a.consumerTransp.Run(ctx); err != nil {
			slog.Error("Consumer error", "error", err)
		}
	}()

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.httpTransp.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")
	cancel()

	a.gracefulShutdown()
}

// gracefulShutdown performs graceful shutdown of all application
// components: HTTP server, consumer, RabbitMQ, PostgreSQL, OpenTelemetry.
func (a *App) gracefulShutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpTransp.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	if err := a.consumerTransp.Shutdown(); err != nil {
		slog.Error("Consumer shutdown error", "error", err)
	} else {
		slog.Info("Consumer stopped gracefully")
	}

	if err := a.rabbitMqClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Otel trace provider connection close error", "error", err)
	} else {
		slog.Info("Otel trace provider connection closed gracefully")
	}

	slog.Info("Application shutdown complete")
}
