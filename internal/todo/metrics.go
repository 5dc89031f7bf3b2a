package todo

import "github.com/prometheus/client_golang/prometheus"

var (
	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obsui",
			Subsystem: "todo",
			Name:      "events_total",
			Help:      "Total number of published todo events",
		},
		[]string{"event"},
	)

	savesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "obsui",
			Subsystem: "todo",
			Name:      "saves_total",
			Help:      "Total number of list saves by result",
		},
		[]string{"result"},
	)

	itemsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "obsui",
			Subsystem: "todo",
			Name:      "items",
			Help:      "Todos in the list by state",
		},
		[]string{"state"},
	)
)

func init() {
	prometheus.MustRegister(eventsTotal, savesTotal, itemsGauge)
}
