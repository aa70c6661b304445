package pagination

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RequestedPage tracks how deep clients page into each listing.
var RequestedPage = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "blogful_catalog_requested_page",
		Help:    "Page numbers requested from paged catalog listings",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
	},
	[]string{"resource"},
)

// RecordRequest observes one request for page of resource.
func RecordRequest(resource string, page int) {
	RequestedPage.WithLabelValues(resource).Observe(float64(page))
}
