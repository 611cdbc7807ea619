package videogame

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.dedis.ch/gamenews"
)

// defines prometheus metrics
var (
	promLeaks = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gamenews_leaks_total",
		Help: "total number of leaks published",
	})

	promNotifications = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gamenews_notifications_total",
		Help: "total number of notifications sent to the observers",
	})

	promState = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gamenews_state",
		Help: "severity of the latest leak",
	})

	promObservers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "gamenews_observers",
		Help: "number of attached observers",
	})

	promReactions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gamenews_reactions_total",
		Help: "total number of reactions by kind of gamer",
	}, []string{"gamer"})
)

func init() {
	gamenews.PromCollectors = append(gamenews.PromCollectors, promLeaks,
		promNotifications, promState, promObservers, promReactions)
}
