/*
Copyright 2026 The KubeNexus Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics declares the Prometheus collectors the driver updates once
// per tick. The decision engine itself stays instrumentation-free: it is a
// pure function and has nothing to report that the driver doesn't already
// observe from its plan.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TickDuration tracks wall-clock time spent building a snapshot,
	// invoking the engine, and applying its plan.
	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "custom_scheduler_tick_duration_seconds",
			Help:    "Duration of a full scheduling tick (snapshot, decide, apply).",
			Buckets: prometheus.DefBuckets,
		},
	)

	// ActionsApplied tracks per-action outcomes, labeled by action kind
	// (bind, evict) and result (applied, conflict or error for binds;
	// applied, gone or error for evicts).
	ActionsApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custom_scheduler_actions_total",
			Help: "Total number of plan actions the driver attempted to apply.",
		},
		[]string{"kind", "result"},
	)

	// GangAborts counts ticks where a gang's tentative placement fell short
	// of its min-available and was discarded entirely.
	GangAborts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "custom_scheduler_gang_aborts_total",
			Help: "Number of gang placement attempts discarded for insufficient capacity.",
		},
		[]string{"group"},
	)

	// PodGroupSize observes the pending size of a gang each time it is
	// considered.
	PodGroupSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "custom_scheduler_pod_group_size",
			Help:    "Size of pending gang members considered per tick.",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
	)
)
