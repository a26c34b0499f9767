package logging

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes drain statistics for the logger.
type Metrics struct {
	EventsSeen    prometheus.Counter
	EventsLost    prometheus.Counter
	Drains        prometheus.Counter
	ColdOccupancy prometheus.Gauge
}

// NewMetrics creates and registers all logger metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsSeen: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kan_log_events_seen_total",
			Help: "Total log records accepted by the hot ring",
		}),
		EventsLost: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kan_log_events_lost_total",
			Help: "Total log records overwritten before a drain",
		}),
		Drains: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kan_log_drains_total",
			Help: "Total hot to cold drains that moved records",
		}),
		ColdOccupancy: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "kan_log_cold_records",
			Help: "Current number of records in the cold ring",
		}),
	}
	reg.MustRegister(m.EventsSeen, m.EventsLost, m.Drains, m.ColdOccupancy)
	return m
}

func (m *Metrics) observeDrain(stats DrainStats, coldLen int) {
	if m == nil {
		return
	}
	m.Drains.Inc()
	m.EventsSeen.Add(float64(stats.Total))
	m.EventsLost.Add(float64(stats.Lost()))
	m.ColdOccupancy.Set(float64(coldLen))
}
