package tracksvc

import (
	"context"
	"log/slog"

	"github.com/corray333/order-bridge/internal/config"
	"github.com/corray333/order-bridge/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/order-bridge/internal/dal/interfaces/itrackingrepo"
	"github.com/corray333/order-bridge/internal/service/models/order"
	"github.com/corray333/order-bridge/internal/service/models/tracking"
	"go.opentelemetry.io/otel"
)

// Acknowledgment messages returned to the partner. The partner matches on
// these strings, do not reword them.
const (
	MsgAddSuccess    = "Shipment tracking number successfully added."
	MsgDeleteSuccess = "Shipment tracking number successfully deleted."
	MsgAddFailed     = "Failed to add shipment tracking number."
	MsgDeleteFailed  = "Failed to delete shipment tracking number."
	MsgInvalidAction = "Invalid action specified."
	MsgNoAction      = "Action not specified."
	MsgVerifyFailed  = "Failed to verify the request."
)

// Result is the acknowledgment of one tracking-update request. Every
// request terminates in exactly one result carrying one message.
type Result struct {
	OK      bool
	Message string
}

// TrackService applies partner-pushed shipment tracking updates to the
// local order store.
type TrackService struct {
	orderRepo    iorderrepo.IOrderRepository
	trackingRepo itrackingrepo.ITrackingRepository
	creds        config.Credentials
}

// option is a function that configures the TrackService.
type option func(*TrackService)

// MustNewTrackService creates a new TrackService.
func MustNewTrackService(opts ...option) *TrackService {
	s := &TrackService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithOrderRepository sets the order repository for the TrackService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithOrderRepository(orderRepo iorderrepo.IOrderRepository) option {
	return func(s *TrackService) {
		s.orderRepo = orderRepo
	}
}

// WithTrackingRepository sets the tracking repository for the
// TrackService. A nil repository means the tracking capability is not
// installed; add and delete requests then fail without side effects.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithTrackingRepository(trackingRepo itrackingrepo.ITrackingRepository) option {
	return func(s *TrackService) {
		s.trackingRepo = trackingRepo
	}
}

// WithCredentials sets the API credentials the partner must present.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithCredentials(creds config.Credentials) option {
	return func(s *TrackService) {
		s.creds = creds
	}
}

// UpdateTracking authenticates and dispatches one tracking-update request.
// Failure precedence: authentication, then action presence, then action
// validity, then field completeness and capability. A failed request has
// no partial effects.
func (s *TrackService) UpdateTracking(ctx context.Context, actionType string, req tracking.UpdateRequest) Result {
	ctx, span := otel.Tracer("service").Start(ctx, "Service.UpdateTracking")
	defer span.End()

	if !s.verify(req) {
		return Result{Message: MsgVerifyFailed}
	}

	if actionType == "" {
		return Result{Message: MsgNoAction}
	}

	action, err := tracking.ParseAction(actionType)
	if err != nil {
		return Result{Message: MsgInvalidAction}
	}

	switch action {
	case tracking.ActionAdd:
		if !s.addTracking(ctx, req) {
			return Result{Message: MsgAddFailed}
		}

		return Result{OK: true, Message: MsgAddSuccess}
	case tracking.ActionDelete:
		if !s.deleteTracking(ctx, req) {
			return Result{Message: MsgDeleteFailed}
		}

		return Result{OK: true, Message: MsgDeleteSuccess}
	default:
		return Result{Message: MsgInvalidAction}
	}
}

// verify checks the request credential pair against the stored pair with
// exact string equality. Which field mismatched is never disclosed.
func (s *TrackService) verify(req tracking.UpdateRequest) bool {
	return req.Username == s.creds.APIKey && req.Password == s.creds.APIPass
}

// addTracking records a tracking number and completes the order. A
// tracking number already recorded for the order is not inserted again;
// the request still completes the order and acknowledges success.
func (s *TrackService) addTracking(ctx context.Context, req tracking.UpdateRequest) bool {
	if req.OrderID == 0 || req.TrackingNumber == "" || req.Provider == "" || s.trackingRepo == nil {
		return false
	}

	existing, err := s.trackingRepo.ListByOrder(ctx, req.OrderID)
	if err != nil {
		slog.Error("Failed to list tracking records", "order_id", req.OrderID, "error", err)

		return false
	}

	if !containsTrackingNumber(existing, req.TrackingNumber) {
		err := s.trackingRepo.Add(ctx, tracking.Shipment{
			OrderID:        req.OrderID,
			TrackingNumber: req.TrackingNumber,
			Provider:       req.Provider,
			DateShipped:    req.DateShipped,
			CustomURL:      req.CustomURL,
		})
		if err != nil {
			slog.Error("Failed to add tracking record", "order_id", req.OrderID, "error", err)

			return false
		}
	}

	if err := s.orderRepo.UpdateStatus(ctx, req.OrderID, order.StatusCompleted); err != nil {
		slog.Error("Failed to complete order after tracking add", "order_id", req.OrderID, "error", err)

		return false
	}

	return true
}

func containsTrackingNumber(shipments []tracking.Shipment, trackingNumber string) bool {
	for _, shipment := range shipments {
		if shipment.TrackingNumber == trackingNumber {
			return true
		}
	}

	return false
}

// deleteTracking removes a tracking record. Provider is optional; empty
// means no provider filter.
func (s *TrackService) deleteTracking(ctx context.Context, req tracking.UpdateRequest) bool {
	if req.OrderID == 0 || req.TrackingNumber == "" || s.trackingRepo == nil {
		return false
	}

	if err := s.trackingRepo.Delete(ctx, req.OrderID, req.TrackingNumber, req.Provider); err != nil {
		slog.Error("Failed to delete tracking record", "order_id", req.OrderID, "error", err)

		return false
	}

	return true
}
