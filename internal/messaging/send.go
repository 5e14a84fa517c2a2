package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/farmfast/platform/pkg/logging"
)

var sendTracer = otel.Tracer("farmfast.internal.messaging.send")

// WhatsAppSender posts WhatsApp messages using Twilio's REST API.
type WhatsAppSender struct {
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewWhatsAppSender builds a sender with sane defaults. from is the Twilio
// WhatsApp-enabled number, with or without the whatsapp: prefix.
func NewWhatsAppSender(accountSID, authToken, from string, logger *logging.Logger) *WhatsAppSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &WhatsAppSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Send dispatches a single WhatsApp text message, retrying transient failures.
// mediaURL is optional; pass "" for text-only messages.
func (s *WhatsAppSender) Send(ctx context.Context, to, body, mediaURL string) error {
	if s.accountSID == "" || s.authToken == "" {
		return errors.New("messaging: twilio credentials missing")
	}
	if to == "" {
		return errors.New("messaging: to required")
	}
	if strings.TrimSpace(body) == "" {
		return errors.New("messaging: body required")
	}

	ctx, span := sendTracer.Start(ctx, "messaging.whatsapp.send")
	defer span.End()
	span.SetAttributes(attribute.String("farmfast.to", to))

	payload := url.Values{}
	payload.Set("To", whatsAppAddress(to))
	payload.Set("From", whatsAppAddress(s.from))
	payload.Set("Body", body)
	if mediaURL != "" {
		payload.Set("MediaUrl", mediaURL)
	}

	endpoint := fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", s.accountSID)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
		if err != nil {
			lastErr = err
			break
		}
		req.SetBasicAuth(s.accountSID, s.authToken)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				s.logger.Info("whatsapp message sent", "to", to)
				return nil
			}
			lastErr = fmt.Errorf("whatsapp send failed: %s", formatTwilioError(resp.StatusCode, respBody))
			// Don't retry non-rate-limit 4xx errors.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != 429 {
				break
			}
		}

		if attempt < 3 {
			sleep := time.Duration(200+rand.Intn(300)) * time.Millisecond
			time.Sleep(sleep)
		}
	}

	if lastErr != nil {
		span.RecordError(lastErr)
	}
	return lastErr
}

// whatsAppAddress ensures the whatsapp: channel prefix Twilio expects.
func whatsAppAddress(number string) string {
	if strings.HasPrefix(number, "whatsapp:") {
		return number
	}
	return "whatsapp:" + number
}

type twilioAPIError struct {
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
	Status   int    `json:"status"`
}

func formatTwilioError(status int, body []byte) string {
	body = []byte(strings.TrimSpace(string(body)))
	if len(body) == 0 {
		return fmt.Sprintf("status %d", status)
	}
	var parsed twilioAPIError
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		if parsed.Code != 0 {
			return fmt.Sprintf("status %d code %d: %s", status, parsed.Code, parsed.Message)
		}
		return fmt.Sprintf("status %d: %s", status, parsed.Message)
	}
	// Fallback: return raw body (truncated by ReadAll limit).
	return fmt.Sprintf("status %d: %s", status, string(body))
}
