package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const (
	fast2smsEndpoint = "https://www.fast2sms.com/dev/bulkV2"
	requestTimeout   = 10 * time.Second
)

// LogGateway writes outbound messages to the log instead of a provider.
// Used whenever no provider API key is configured.
type LogGateway struct {
	log zerolog.Logger
}

func NewLogGateway(log zerolog.Logger) *LogGateway {
	return &LogGateway{log: log}
}

func (g *LogGateway) Send(_ context.Context, number, message string) error {
	g.log.Info().
		Str("number", number).
		Str("message", message).
		Msg("sms gateway (log mode)")
	return nil
}

// Fast2SMSGateway sends messages through the Fast2SMS bulk endpoint.
type Fast2SMSGateway struct {
	apiKey string
	client *http.Client
}

func NewFast2SMSGateway(apiKey string) *Fast2SMSGateway {
	return &Fast2SMSGateway{
		apiKey: apiKey,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type fast2smsRequest struct {
	Route   string `json:"route"`
	Message string `json:"message"`
	Numbers string `json:"numbers"`
}

type fast2smsResponse struct {
	Return  bool   `json:"return"`
	Message any    `json:"message"`
	Request string `json:"request_id"`
}

func (g *Fast2SMSGateway) Send(ctx context.Context, number, message string) error {
	body, err := json.Marshal(fast2smsRequest{
		Route:   "q",
		Message: message,
		Numbers: number,
	})
	if err != nil {
		return fmt.Errorf("encode sms request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fast2smsEndpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("send sms: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	var out fast2smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fmt.Errorf("decode sms response: %w", err)
	}
	if !out.Return {
		return fmt.Errorf("sms provider rejected message: %v", out.Message)
	}
	return nil
}
