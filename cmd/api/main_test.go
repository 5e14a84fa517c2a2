package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appconfig "github.com/farmfast/platform/internal/config"
	"github.com/farmfast/platform/pkg/logging"
)

func TestSetupConversationMetricsExposesMetrics(t *testing.T) {
	handler, convMetrics := setupConversationMetrics()
	if handler == nil || convMetrics == nil {
		t.Fatalf("expected non-nil handler and metrics")
	}

	convMetrics.ObserveInbound("message", "ok")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "farmfast_whatsapp_inbound_webhook_total") {
		t.Fatalf("expected inbound counter to be exported")
	}
}

func TestConnectPostgresEmptyURLReturnsNil(t *testing.T) {
	logger := logging.New("error")
	if db := connectPostgres("", logger); db != nil {
		t.Fatalf("expected nil db for empty URL")
	}
}

func TestConnectRedisEmptyAddrReturnsNil(t *testing.T) {
	logger := logging.New("error")
	if rdb := connectRedis(&appconfig.Config{}, logger); rdb != nil {
		t.Fatalf("expected nil client without an address")
	}
}
