package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

var venueLabelNames = []string{
	// venue label as reported by Amm.Label
	"venue",
	"outcome",
}

// Metrics records venue lifecycle outcomes.
type Metrics interface {
	ObserveConstruct(venue string, err error)
	ObserveRefresh(venue string, err error)
	ObserveQuote(venue string, err error)
	SetVenues(n int)
	SetClockSlot(slot uint64)
}

var _ Metrics = (*promMetrics)(nil)

type promMetrics struct {
	constructs *prometheus.CounterVec
	refreshes  *prometheus.CounterVec
	quotes     *prometheus.CounterVec
	venues     prometheus.Gauge
	clockSlot  prometheus.Gauge
}

// New registers the collectors on reg under namespace.
func New(namespace string, reg prometheus.Registerer) Metrics {
	factory := promauto.With(reg)
	return &promMetrics{
		constructs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "venue_constructions_total",
			Help:      "Venue constructions from keyed accounts by outcome.",
		}, venueLabelNames),
		refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "venue_refreshes_total",
			Help:      "Venue state refreshes by outcome.",
		}, venueLabelNames),
		quotes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "venue_quotes_total",
			Help:      "Venue quotes by outcome.",
		}, venueLabelNames),
		venues: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "venues",
			Help:      "Venues currently loaded.",
		}),
		clockSlot: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "clock_slot",
			Help:      "Slot of the shared clock snapshot.",
		}),
	}
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}
	return outcomeOK
}

func (m *promMetrics) ObserveConstruct(venue string, err error) {
	m.constructs.WithLabelValues(venue, outcome(err)).Inc()
}

func (m *promMetrics) ObserveRefresh(venue string, err error) {
	m.refreshes.WithLabelValues(venue, outcome(err)).Inc()
}

func (m *promMetrics) ObserveQuote(venue string, err error) {
	m.quotes.WithLabelValues(venue, outcome(err)).Inc()
}

func (m *promMetrics) SetVenues(n int)          { m.venues.Set(float64(n)) }
func (m *promMetrics) SetClockSlot(slot uint64) { m.clockSlot.Set(float64(slot)) }

// Nop discards everything.
func Nop() Metrics { return nop{} }

type nop struct{}

func (nop) ObserveConstruct(string, error) {}
func (nop) ObserveRefresh(string, error)   {}
func (nop) ObserveQuote(string, error)     {}
func (nop) SetVenues(int)                  {}
func (nop) SetClockSlot(uint64)            {}
