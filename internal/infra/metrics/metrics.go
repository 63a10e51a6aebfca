package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Quotes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "quotes_total",
		Help:      "Price quotes computed.",
	})

	Checkouts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "checkouts_total",
		Help:      "Checkout attempts by provider and result.",
	}, []string{"provider", "result"})

	Payments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "payment_confirmations_total",
		Help:      "Payment confirmations by provider and result.",
	}, []string{"provider", "result"})

	// NeedsSupport оплата прошла, бронь не создалась.
	NeedsSupport = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "booking",
		Name:      "needs_support_total",
		Help:      "Payments captured without a booking record.",
	})

	BookingValue = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "booking",
		Name:      "total_price",
		Help:      "Total price of created bookings.",
		Buckets:   prometheus.ExponentialBuckets(1000, 2, 10),
	})
)

const (
	ResultOK       = "ok"
	ResultInvalid  = "invalid"
	ResultError    = "error"
	ResultRejected = "rejected"
)
