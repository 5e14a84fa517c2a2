package metrics

import "github.com/prometheus/client_golang/prometheus"

// ConversationMetrics exposes counters/histograms for the WhatsApp flows.
type ConversationMetrics struct {
	inboundTotal   *prometheus.CounterVec
	gradesTotal    *prometheus.CounterVec
	offersTotal    *prometheus.CounterVec
	webhookLatency *prometheus.HistogramVec
}

func NewConversationMetrics(reg prometheus.Registerer) *ConversationMetrics {
	m := &ConversationMetrics{
		inboundTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farmfast",
			Subsystem: "whatsapp",
			Name:      "inbound_webhook_total",
			Help:      "Total inbound WhatsApp webhooks",
		}, []string{"kind", "status"}),
		gradesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farmfast",
			Subsystem: "grading",
			Name:      "grades_total",
			Help:      "Total produce grading attempts",
		}, []string{"grade", "status"}),
		offersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farmfast",
			Subsystem: "offers",
			Name:      "offers_total",
			Help:      "Total buyer offers received",
		}, []string{"status"}),
		webhookLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "farmfast",
			Subsystem: "whatsapp",
			Name:      "webhook_latency_seconds",
			Help:      "Latency of WhatsApp webhook processing",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.inboundTotal, m.gradesTotal, m.offersTotal, m.webhookLatency)
	return m
}

func (m *ConversationMetrics) ObserveInbound(kind, status string) {
	if m == nil {
		return
	}
	m.inboundTotal.WithLabelValues(kind, status).Inc()
}

func (m *ConversationMetrics) ObserveGrade(grade, status string) {
	if m == nil {
		return
	}
	m.gradesTotal.WithLabelValues(grade, status).Inc()
}

func (m *ConversationMetrics) ObserveOffer(status string) {
	if m == nil {
		return
	}
	m.offersTotal.WithLabelValues(status).Inc()
}

func (m *ConversationMetrics) ObserveWebhookLatency(kind string, seconds float64) {
	if m == nil {
		return
	}
	m.webhookLatency.WithLabelValues(kind).Observe(seconds)
}
