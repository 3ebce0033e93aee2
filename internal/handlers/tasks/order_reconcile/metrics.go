package order_reconcile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FulfillmentFailedOrders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_fulfillment_failed",
			Help: "Paid orders whose operator notification failed",
		},
	)

	StaleCreatedOrders = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "orders_stale_created",
			Help: "Orders still awaiting payment past the stale threshold",
		},
	)
)
