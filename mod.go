// Package gamenews defines the globals shared by the packages of the module:
// the logger and the list of Prometheus collectors.
package gamenews

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

var logout = zerolog.ConsoleWriter{
	Out:        os.Stdout,
	TimeFormat: time.RFC3339,
}

// Logger is a globally available logger instance.
var Logger = zerolog.New(logout).
	With().Timestamp().Logger().
	With().Caller().Logger().
	Level(zerolog.InfoLevel)

// PromCollectors exposes the collectors of the packages so that a registry can
// gather them. Packages append their collectors in their init function.
var PromCollectors []prometheus.Collector
