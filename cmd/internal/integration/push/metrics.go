package push

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
	resultGone    = "gone"
)

var notificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "agenda",
		Name:      "push_notifications_total",
		Help:      "Push notifications handled by the dispatcher, by outcome.",
	},
	[]string{"result"},
)
