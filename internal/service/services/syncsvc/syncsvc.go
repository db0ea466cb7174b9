package syncsvc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/corray333/order-bridge/internal/config"
	"github.com/corray333/order-bridge/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/order-bridge/internal/service/models/delivery"
	"github.com/corray333/order-bridge/internal/service/models/payload"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

// deliverer sends one payload to the partner API.
type deliverer interface {
	Deliver(ctx context.Context, creds config.Credentials, pl payload.Payload) delivery.Result
}

// mailSender dispatches plaintext mail, best-effort.
type mailSender interface {
	Send(to, subject, body string) error
}

// SyncService pushes orders entering processing to the partner API and
// reports delivery failures by mail.
type SyncService struct {
	orderRepo   iorderrepo.IOrderRepository
	deliverer   deliverer
	mailSender  mailSender
	creds       config.Credentials
	storeName   string
	siteURL     string
	reportEmail string
}

// option is a function that configures the SyncService.
type option func(*SyncService)

// MustNewSyncService creates a new SyncService.
func MustNewSyncService(opts ...option) *SyncService {
	s := &SyncService{
		storeName:   viper.GetString("site.name"),
		siteURL:     viper.GetString("site.url"),
		reportEmail: viper.GetString("partner.report_email"),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderRepository sets the order repository for the SyncService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(orderRepo iorderrepo.IOrderRepository) option {
	return func(s *SyncService) {
		s.orderRepo = orderRepo
	}
}

// WithDeliverer sets the partner API client for the SyncService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDeliverer(d deliverer) option {
	return func(s *SyncService) {
		s.deliverer = d
	}
}

// WithMailSender sets the failure report mailer for the SyncService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMailSender(m mailSender) option {
	return func(s *SyncService) {
		s.mailSender = m
	}
}

// WithCredentials sets the partner API credentials for the SyncService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCredentials(creds config.Credentials) option {
	return func(s *SyncService) {
		s.creds = creds
	}
}

// SyncOrder loads an order, maps it onto the partner schema and delivers
// it. Delivery failures are reported by mail and absorbed: the triggering
// event always completes normally. An error is returned only when the
// order cannot be loaded from the store.
func (s *SyncService) SyncOrder(ctx context.Context, orderID int64) error {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.SyncOrder")
	defer span.End()

	if !s.creds.IsComplete() {
		slog.Info("Partner credentials not configured, skipping order sync", "order_id", orderID)

		return nil
	}

	ord, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order %d: %w", orderID, err)
	}
	if ord == nil {
		slog.Info("Order not found, skipping sync", "order_id", orderID)

		return nil
	}

	pl := payload.FromOrder(*ord, s.storeName)

	result := s.deliverer.Deliver(ctx, s.creds, pl)
	if result.OK() {
		slog.Info("Order delivered to partner", "order_id", orderID)

		return nil
	}

	slog.Error("Order delivery to partner failed",
		"order_id", orderID,
		"kind", result.Kind,
		"message", result.Message,
	)
	s.report(result, pl)

	return nil
}

// report mails the failure details to the operator. A mail error is
// logged and dropped, there is no secondary alert channel.
func (s *SyncService) report(result delivery.Result, pl payload.Payload) {
	body := "Partner API call failed. Please review the details below:\r\n" +
		"Error: " + result.Message + "\r\n" +
		"Store URL: " + s.siteURL + "\r\n" +
		fmt.Sprintf("Order id: %d\r\n", pl.PoNum) +
		fmt.Sprintf("Customer id: %d\r\n", pl.WcCustomerID) +
		"Order Total: " + pl.Total + "\r\n"

	if err := s.mailSender.Send(s.reportEmail, "Alert: API Call Failed", body); err != nil {
		slog.Error("Failed to send delivery failure report", "error", err)
	}
}
