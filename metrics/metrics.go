// Package metrics exposes the control loop's prometheus counters.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "actuation",
		Subsystem: "controller",
		Name:      "cycles_total",
		Help:      "Total control cycles executed",
	})

	MessagesEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "actuation",
		Subsystem: "controller",
		Name:      "messages_emitted_total",
		Help:      "Outgoing messages by frame name",
	}, []string{"frame"})

	SteerRateClamps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "actuation",
		Subsystem: "controller",
		Name:      "steer_rate_clamps_total",
		Help:      "Cycles where the steering rate limiter clamped the request",
	})

	ResumePresses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "actuation",
		Subsystem: "controller",
		Name:      "resume_presses_total",
		Help:      "Resume button presses injected at standstill",
	})

	FusionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "actuation",
		Subsystem: "controller",
		Name:      "fusion_fallbacks_total",
		Help:      "Cycles where fusion failed and the limiter output was emitted",
	})

	CounterSeedFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "actuation",
		Subsystem: "controller",
		Name:      "counter_seed_fallbacks_total",
		Help:      "First-cycle counter seeds taken from defaults instead of vehicle echoes",
	})
)
