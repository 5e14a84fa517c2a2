package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmfast/platform/internal/chat"
)

type recordingEngine struct {
	inbound []chat.Inbound
	err     error
}

func (e *recordingEngine) HandleMessage(ctx context.Context, in chat.Inbound) error {
	e.inbound = append(e.inbound, in)
	return e.err
}

func webhookForm(values map[string]string) *http.Request {
	form := url.Values{}
	for k, v := range values {
		form.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, "/webhooks/twilio/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestWebhookAcksAndNormalizesPhone(t *testing.T) {
	engine := &recordingEngine{}
	handler := NewWhatsAppWebhookHandler(WhatsAppWebhookConfig{Engine: engine})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, webhookForm(map[string]string{
		"From":     "whatsapp:+919876543210",
		"Body":     "नमस्ते",
		"NumMedia": "0",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	require.Len(t, engine.inbound, 1)
	assert.Equal(t, "+919876543210", engine.inbound[0].From)
	assert.Equal(t, "नमस्ते", engine.inbound[0].Body)
	assert.Empty(t, engine.inbound[0].MediaURL)
}

func TestWebhookPassesMediaURL(t *testing.T) {
	engine := &recordingEngine{}
	handler := NewWhatsAppWebhookHandler(WhatsAppWebhookConfig{Engine: engine})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, webhookForm(map[string]string{
		"From":              "whatsapp:09876543210",
		"NumMedia":          "1",
		"MediaUrl0":         "https://api.twilio.com/media/abc",
		"MediaContentType0": "image/jpeg",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, engine.inbound, 1)
	assert.Equal(t, "+919876543210", engine.inbound[0].From)
	assert.Equal(t, "https://api.twilio.com/media/abc", engine.inbound[0].MediaURL)
}

func TestWebhookAcksDespiteEngineFailure(t *testing.T) {
	engine := &recordingEngine{err: errors.New("db down")}
	handler := NewWhatsAppWebhookHandler(WhatsAppWebhookConfig{Engine: engine})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, webhookForm(map[string]string{
		"From": "whatsapp:+919876543210",
		"Body": "500",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}

func TestWebhookAcksUnparseablePayload(t *testing.T) {
	engine := &recordingEngine{}
	handler := NewWhatsAppWebhookHandler(WhatsAppWebhookConfig{Engine: engine})

	// Missing From.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, webhookForm(map[string]string{"Body": "hello"}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, engine.inbound)
}

func TestWebhookRejectsInvalidSignature(t *testing.T) {
	engine := &recordingEngine{}
	handler := NewWhatsAppWebhookHandler(WhatsAppWebhookConfig{
		Engine:     engine,
		AuthToken:  "secret-token",
		WebhookURL: "https://api.farmfast.in/webhooks/twilio/whatsapp",
	})

	req := webhookForm(map[string]string{
		"From": "whatsapp:+919876543210",
		"Body": "hello",
	})
	req.Header.Set("X-Twilio-Signature", "bogus")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, engine.inbound)
}
