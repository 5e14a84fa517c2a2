package messaging

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// ValidateTwilioSignature validates that a request came from Twilio
func ValidateTwilioSignature(r *http.Request, authToken, webhookURL string) bool {
	signature := r.Header.Get("X-Twilio-Signature")
	if signature == "" {
		return false
	}

	if err := r.ParseForm(); err != nil {
		return false
	}

	payload := buildSignaturePayload(webhookURL, r.PostForm)
	expectedSignature := computeSignature(payload, authToken)

	return hmac.Equal([]byte(signature), []byte(expectedSignature))
}

// buildSignaturePayload creates the payload string for signature verification
func buildSignaturePayload(url string, params url.Values) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var payload strings.Builder
	payload.WriteString(url)

	for _, key := range keys {
		for _, value := range params[key] {
			payload.WriteString(key)
			payload.WriteString(value)
		}
	}

	return payload.String()
}

// computeSignature computes the HMAC-SHA1 signature
func computeSignature(data, key string) string {
	h := hmac.New(sha1.New, []byte(key))
	h.Write([]byte(data))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// WhatsAppWebhookRequest represents an incoming Twilio WhatsApp webhook
type WhatsAppWebhookRequest struct {
	MessageSid       string
	AccountSid       string
	From             string
	To               string
	Body             string
	NumMedia         int
	MediaURL         string
	MediaContentType string
}

// HasMedia reports whether the message carried at least one media item.
func (w *WhatsAppWebhookRequest) HasMedia() bool {
	return w.NumMedia > 0 && w.MediaURL != ""
}

// ParseWhatsAppWebhook parses a Twilio WhatsApp webhook request
func ParseWhatsAppWebhook(r *http.Request) (*WhatsAppWebhookRequest, error) {
	if err := r.ParseForm(); err != nil {
		return nil, fmt.Errorf("failed to parse form: %w", err)
	}

	numMedia, _ := strconv.Atoi(strings.TrimSpace(r.FormValue("NumMedia")))

	webhook := &WhatsAppWebhookRequest{
		MessageSid: strings.TrimSpace(r.FormValue("MessageSid")),
		AccountSid: strings.TrimSpace(r.FormValue("AccountSid")),
		From:       strings.TrimSpace(r.FormValue("From")),
		To:         strings.TrimSpace(r.FormValue("To")),
		Body:       strings.TrimSpace(r.FormValue("Body")),
		NumMedia:   numMedia,
	}
	if numMedia > 0 {
		webhook.MediaURL = strings.TrimSpace(r.FormValue("MediaUrl0"))
		webhook.MediaContentType = strings.TrimSpace(r.FormValue("MediaContentType0"))
	}

	if webhook.From == "" {
		return nil, fmt.Errorf("missing From field")
	}

	return webhook, nil
}
