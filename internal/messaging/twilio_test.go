package messaging

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestValidateTwilioSignature(t *testing.T) {
	authToken := "test_token"
	webhookURL := "https://example.com/webhooks/twilio/whatsapp"

	formData := url.Values{}
	formData.Set("MessageSid", "SM123")
	formData.Set("From", "whatsapp:+919876543210")
	formData.Set("Body", "Ramesh")

	req := httptest.NewRequest(http.MethodPost, webhookURL, strings.NewReader(formData.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	payload := buildSignaturePayload(webhookURL, formData)
	req.Header.Set("X-Twilio-Signature", computeSignature(payload, authToken))

	if !ValidateTwilioSignature(req, authToken, webhookURL) {
		t.Error("expected signature validation to pass")
	}
}

func TestValidateTwilioSignature_Invalid(t *testing.T) {
	webhookURL := "https://example.com/webhooks/twilio/whatsapp"

	formData := url.Values{}
	formData.Set("MessageSid", "SM123")

	req := httptest.NewRequest(http.MethodPost, webhookURL, strings.NewReader(formData.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Twilio-Signature", "invalid_signature")

	if ValidateTwilioSignature(req, "test_token", webhookURL) {
		t.Error("expected signature validation to fail")
	}
}

func TestValidateTwilioSignature_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if ValidateTwilioSignature(req, "test_token", "https://example.com/webhook") {
		t.Error("expected signature validation to fail without signature header")
	}
}

func TestParseWhatsAppWebhook(t *testing.T) {
	formData := url.Values{}
	formData.Set("MessageSid", "SM123")
	formData.Set("AccountSid", "AC456")
	formData.Set("From", "whatsapp:+919876543210")
	formData.Set("To", "whatsapp:+14155238886")
	formData.Set("Body", "500")
	formData.Set("NumMedia", "0")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(formData.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	webhook, err := ParseWhatsAppWebhook(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if webhook.From != "whatsapp:+919876543210" {
		t.Errorf("unexpected From: %s", webhook.From)
	}
	if webhook.Body != "500" {
		t.Errorf("unexpected Body: %s", webhook.Body)
	}
	if webhook.HasMedia() {
		t.Error("expected no media")
	}
}

func TestParseWhatsAppWebhook_WithMedia(t *testing.T) {
	formData := url.Values{}
	formData.Set("MessageSid", "SM124")
	formData.Set("From", "whatsapp:+919876543210")
	formData.Set("Body", "")
	formData.Set("NumMedia", "1")
	formData.Set("MediaUrl0", "https://api.twilio.com/media/ME123")
	formData.Set("MediaContentType0", "image/jpeg")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(formData.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	webhook, err := ParseWhatsAppWebhook(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !webhook.HasMedia() {
		t.Fatal("expected media")
	}
	if webhook.MediaURL != "https://api.twilio.com/media/ME123" {
		t.Errorf("unexpected MediaURL: %s", webhook.MediaURL)
	}
	if webhook.MediaContentType != "image/jpeg" {
		t.Errorf("unexpected MediaContentType: %s", webhook.MediaContentType)
	}
}

func TestParseWhatsAppWebhook_MissingFrom(t *testing.T) {
	formData := url.Values{}
	formData.Set("Body", "hello")

	req := httptest.NewRequest(http.MethodPost, "/webhook", strings.NewReader(formData.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if _, err := ParseWhatsAppWebhook(req); err == nil {
		t.Error("expected error for missing From")
	}
}

func TestIsSystemMessage(t *testing.T) {
	system := []string{
		"join orange-tiger",
		"STOP",
		"Twilio Sandbox: you can send messages now",
		"You are all set! Your sandbox is ready.",
	}
	for _, body := range system {
		if !IsSystemMessage(body) {
			t.Errorf("expected %q to be a system message", body)
		}
	}

	normal := []string{"Ramesh", "411001", "500", "माल दे दिया"}
	for _, body := range normal {
		if IsSystemMessage(body) {
			t.Errorf("expected %q to be farmer input", body)
		}
	}
}

func TestWhatsAppAddress(t *testing.T) {
	if got := whatsAppAddress("+919876543210"); got != "whatsapp:+919876543210" {
		t.Errorf("whatsAppAddress = %q", got)
	}
	if got := whatsAppAddress("whatsapp:+919876543210"); got != "whatsapp:+919876543210" {
		t.Errorf("whatsAppAddress should be idempotent, got %q", got)
	}
}
