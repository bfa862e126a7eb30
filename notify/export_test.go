package notify

import "github.com/prometheus/client_golang/prometheus"

// Unregister exposes unregister to external tests.
var Unregister = unregister

// ToastsShown returns the shown counter for kind.
func ToastsShown(kind Kind) prometheus.Counter {
	return toastsShownTotal.WithLabelValues(string(kind))
}
