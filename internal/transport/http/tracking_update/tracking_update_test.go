package trackingupdate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/corray333/order-bridge/internal/config"
	"github.com/corray333/order-bridge/internal/service/models/tracking"
	"github.com/corray333/order-bridge/internal/service/services/tracksvc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	result     tracksvc.Result
	actionType string
	req        tracking.UpdateRequest
	calls      int
}

func (f *fakeService) UpdateTracking(_ context.Context, actionType string, req tracking.UpdateRequest) tracksvc.Result {
	f.actionType = actionType
	f.req = req
	f.calls++

	return f.result
}

func postForm(t *testing.T, svc service, target string, form url.Values) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	TrackingUpdate(rec, req, svc)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return rec, env
}

func TestTrackingUpdate_PassesFieldsToService(t *testing.T) {
	svc := &fakeService{result: tracksvc.Result{OK: true, Message: tracksvc.MsgAddSuccess}}

	form := url.Values{
		"username":        {"key"},
		"password":        {"pass"},
		"order_id":        {"5"},
		"tracking_number": {"ABC123"},
		"provider":        {"UPS"},
		"date_shipped":    {"2026-08-01"},
	}
	rec, env := postForm(t, svc, "/api/tracking?action_type=add", form)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, env.Success)
	assert.Equal(t, tracksvc.MsgAddSuccess, env.Data.Message)

	assert.Equal(t, "add", svc.actionType)
	assert.Equal(t, tracking.UpdateRequest{
		Username:       "key",
		Password:       "pass",
		OrderID:        5,
		TrackingNumber: "ABC123",
		Provider:       "UPS",
		DateShipped:    "2026-08-01",
	}, svc.req)
}

func TestTrackingUpdate_AuthFailureEnvelope(t *testing.T) {
	svc := &fakeService{result: tracksvc.Result{Message: tracksvc.MsgVerifyFailed}}

	form := url.Values{
		"username":        {"WRONG"},
		"password":        {"right"},
		"order_id":        {"5"},
		"tracking_number": {"ABC123"},
		"provider":        {"UPS"},
	}
	_, env := postForm(t, svc, "/api/tracking?action_type=add", form)

	assert.False(t, env.Success)
	assert.Equal(t, "Failed to verify the request.", env.Data.Message)
}

func TestTrackingUpdate_MissingActionType(t *testing.T) {
	svc := &fakeService{result: tracksvc.Result{Message: tracksvc.MsgNoAction}}

	_, env := postForm(t, svc, "/api/tracking", url.Values{
		"username": {"key"},
		"password": {"pass"},
	})

	assert.Equal(t, "", svc.actionType)
	assert.False(t, env.Success)
	assert.Equal(t, "Action not specified.", env.Data.Message)
}

func TestTrackingUpdate_EmptyProviderPassedThrough(t *testing.T) {
	svc := &fakeService{result: tracksvc.Result{OK: true, Message: tracksvc.MsgDeleteSuccess}}

	form := url.Values{
		"username":        {"key"},
		"password":        {"pass"},
		"order_id":        {"7"},
		"tracking_number": {"ABC123"},
		"provider":        {""},
	}
	_, env := postForm(t, svc, "/api/tracking?action_type=delete", form)

	assert.True(t, env.Success)
	assert.Equal(t, "", svc.req.Provider)
	assert.Equal(t, int64(7), svc.req.OrderID)
}

func TestTrackingUpdate_NonNumericOrderID(t *testing.T) {
	svc := &fakeService{result: tracksvc.Result{Message: tracksvc.MsgAddFailed}}

	form := url.Values{
		"username":        {"key"},
		"password":        {"pass"},
		"order_id":        {"5"},
		"tracking_number": {"ABC123"},
		"provider":        {"UPS"},
	}
	form.Set("order_id", "not-a-number")
	_, env := postForm(t, svc, "/api/tracking?action_type=add", form)

	assert.False(t, env.Success)
	assert.Equal(t, 0, svc.calls, "validation rejects non-numeric order ids before dispatch")
	assert.Equal(t, "Invalid request parameters.", env.Data.Message)
}

func TestTrackingUpdate_FreeFormDateAndURLPassedThrough(t *testing.T) {
	svc := &fakeService{result: tracksvc.Result{OK: true, Message: tracksvc.MsgAddSuccess}}

	form := url.Values{
		"username":        {"key"},
		"password":        {"pass"},
		"order_id":        {"5"},
		"tracking_number": {"ABC123"},
		"provider":        {"UPS"},
		"date_shipped":    {"2026-08-01 10:00:00"},
		"custom_url":      {"track.example/ABC123"},
	}
	_, env := postForm(t, svc, "/api/tracking?action_type=add", form)

	assert.True(t, env.Success)
	assert.Equal(t, 1, svc.calls)
	assert.Equal(t, "2026-08-01 10:00:00", svc.req.DateShipped)
	assert.Equal(t, "track.example/ABC123", svc.req.CustomURL)
}

func TestTrackingUpdate_AuthCheckedBeforeFieldContent(t *testing.T) {
	svc := tracksvc.MustNewTrackService(tracksvc.WithCredentials(config.Credentials{
		APIKey:  "key",
		APIPass: "pass",
	}))

	form := url.Values{
		"username":        {"WRONG"},
		"password":        {"pass"},
		"order_id":        {"5"},
		"tracking_number": {"ABC123"},
		"provider":        {"UPS"},
		"date_shipped":    {"08/01/2026"},
	}
	_, env := postForm(t, svc, "/api/tracking?action_type=add", form)

	assert.False(t, env.Success)
	assert.Equal(t, "Failed to verify the request.", env.Data.Message)
}
