package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	libraryLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apitoast",
			Name:      "notify_library_loads_total",
			Help:      "Notification library resolutions, by result.",
		},
		[]string{"result"},
	)

	toastsShownTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "apitoast",
			Name:      "toasts_shown_total",
			Help:      "Toasts handed to the notification library, by kind.",
		},
		[]string{"kind"},
	)

	toastsDismissedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "apitoast",
			Name:      "toasts_dismissed_total",
			Help:      "Toasts dismissed, including deduplication.",
		},
	)
)
