package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type WizardMetrics struct {
	CustomerSearches prometheus.Counter
	ProductSearches  prometheus.Counter
	Submissions      *prometheus.CounterVec // status: ok | rejected | failed
}

func NewWizardMetrics(service string) *WizardMetrics {
	custSearches := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: service,
		Name:      "customer_searches_total",
		Help:      "Total number of customer directory searches issued.",
	})
	prodSearches := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: service,
		Name:      "product_searches_total",
		Help:      "Total number of catalog searches issued.",
	})
	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: service,
		Name:      "order_submissions_total",
		Help:      "Total number of manual order submission attempts.",
	}, []string{"status"})

	prometheus.MustRegister(custSearches, prodSearches, submissions)
	return &WizardMetrics{
		CustomerSearches: custSearches,
		ProductSearches:  prodSearches,
		Submissions:      submissions,
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
