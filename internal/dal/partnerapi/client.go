package partnerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/corray333/order-bridge/internal/config"
	"github.com/corray333/order-bridge/internal/service/models/delivery"
	"github.com/corray333/order-bridge/internal/service/models/payload"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

// Client talks to the partner order-intake API.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// insertRequest is the body of the partner insert endpoint. The credential
// pair travels in the body alongside the orders.
type insertRequest struct {
	Username string            `json:"username"`
	Password string            `json:"password"`
	Orders   []payload.Payload `json:"orders"`
}

// insertResponse is the partner response envelope. Only the error marker
// matters to the bridge.
type insertResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewClient creates a new partner API client.
func NewClient() *Client {
	apiURL := viper.GetString("partner.api_url")
	if apiURL == "" {
		panic("partner.api_url is not set in config")
	}

	return &Client{
		httpClient: http.DefaultClient,
		apiURL:     apiURL,
	}
}

// NewClientWithURL creates a client against an explicit endpoint.
func NewClientWithURL(apiURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		httpClient: httpClient,
		apiURL:     apiURL,
	}
}

// Deliver sends one order payload to the partner insert endpoint and
// classifies the outcome. Exactly one synchronous POST is made per call;
// there is no retry.
func (c *Client) Deliver(ctx context.Context, creds config.Credentials, pl payload.Payload) delivery.Result {
	ctx, span := otel.Tracer("partnerapi").Start(ctx, "Client.Deliver")
	defer span.End()

	body, err := json.Marshal(insertRequest{
		Username: creds.APIKey,
		Password: creds.APIPass,
		Orders:   []payload.Payload{pl},
	})
	if err != nil {
		return delivery.TransportError(fmt.Sprintf("failed to encode request body: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return delivery.TransportError(fmt.Sprintf("failed to build request: %v", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// An empty Expect header avoids 100-continue stalls on bodies over 1024
	// bytes when the partner sits behind a proxy.
	req.Header.Set("Expect", "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return delivery.TransportError(err.Error())
	}
	defer resp.Body.Close()

	return classify(resp)
}

// classify maps an HTTP response onto exactly one delivery result kind.
func classify(resp *http.Response) delivery.Result {
	if resp.StatusCode != http.StatusOK {
		return delivery.HTTPStatusError(
			fmt.Sprintf("%d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		)
	}

	var result insertResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return delivery.ParseError("API response JSON error: " + err.Error())
	}

	if result.Type == "error" {
		message := result.Message
		if message == "" {
			message = "Unknown error"
		}

		return delivery.APIError(message)
	}

	return delivery.Success()
}
