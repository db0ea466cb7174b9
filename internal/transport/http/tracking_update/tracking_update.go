package trackingupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/corray333/order-bridge/internal/service/models/tracking"
	"github.com/corray333/order-bridge/internal/service/services/tracksvc"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	UpdateTracking(ctx context.Context, actionType string, req tracking.UpdateRequest) tracksvc.Result
}

// trackingUpdateRequest represents a tracking update request. Credentials
// and tracking fields arrive as form fields, the action type as a query
// parameter. The date and URL fields are free-form and pass through to
// storage uninterpreted.
type trackingUpdateRequest struct {
	Username       string `validate:"max=255"`
	Password       string `validate:"max=255"`
	OrderID        string `validate:"omitempty,numeric"`
	TrackingNumber string `validate:"max=255"`
	Provider       string `validate:"max=255"`
	DateShipped    string `validate:"max=255"`
	CustomURL      string `validate:"max=255"`
}

// Validate validates the tracking update request.
func (r *trackingUpdateRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts trackingUpdateRequest to tracking.UpdateRequest. An
// absent order id maps to zero and fails field checks downstream.
func (r *trackingUpdateRequest) toModel() tracking.UpdateRequest {
	orderID, _ := strconv.ParseInt(r.OrderID, 10, 64)

	return tracking.UpdateRequest{
		Username:       r.Username,
		Password:       r.Password,
		OrderID:        orderID,
		TrackingNumber: r.TrackingNumber,
		Provider:       r.Provider,
		DateShipped:    r.DateShipped,
		CustomURL:      r.CustomURL,
	}
}

// envelope is the acknowledgment format expected by the partner.
type envelope struct {
	Success bool         `json:"success"`
	Data    envelopeData `json:"data"`
}

type envelopeData struct {
	Message string `json:"message"`
}

// TrackingUpdate handles a shipment tracking update pushed by the partner.
func TrackingUpdate(w http.ResponseWriter, r *http.Request, service service) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error parsing tracking update form", "error", err)

		return
	}

	req := trackingUpdateRequest{
		Username:       r.PostFormValue("username"),
		Password:       r.PostFormValue("password"),
		OrderID:        r.PostFormValue("order_id"),
		TrackingNumber: r.PostFormValue("tracking_number"),
		Provider:       r.PostFormValue("provider"),
		DateShipped:    r.PostFormValue("date_shipped"),
		CustomURL:      r.PostFormValue("custom_url"),
	}

	if err := req.Validate(); err != nil {
		writeEnvelope(w, tracksvc.Result{Message: "Invalid request parameters."})
		slog.Error("Error validating tracking update request", "error", err)

		return
	}

	actionType := r.URL.Query().Get("action_type")
	result := service.UpdateTracking(r.Context(), actionType, req.toModel())

	writeEnvelope(w, result)
}

func writeEnvelope(w http.ResponseWriter, result tracksvc.Result) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(envelope{
		Success: result.OK,
		Data:    envelopeData{Message: result.Message},
	}); err != nil {
		slog.Error("Error sending tracking update response", "error", err)
	}
}
