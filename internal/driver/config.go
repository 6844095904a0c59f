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

// Package driver polls the cluster API, builds a Snapshot, invokes the pure
// decision engine, and applies the Plan it returns. No scheduling
// algorithm lives here — only cluster-API plumbing, retries, and logging.
package driver

import "time"

// Config holds the process-environment values needed to run the poll loop
// against a real cluster.
type Config struct {
	// SchedulerName is matched against each pod's scheduler-name claim.
	SchedulerName string

	// Namespace the process runs in. Informational only — the engine and
	// the driver's List calls are cluster-wide.
	Namespace string

	// Kubeconfig, when set, is loaded via clientcmd instead of the
	// in-cluster config (for local development).
	Kubeconfig string

	// TickPeriod is the interval between scheduling ticks; New replaces a
	// zero value with DefaultTickPeriod.
	TickPeriod time.Duration

	// MetricsAddr is the address the Prometheus /metrics handler listens
	// on, empty to disable.
	MetricsAddr string
}

// DefaultTickPeriod is long enough to tolerate the cluster API's eventual
// consistency after a bind, short enough that pending work doesn't wait
// long for the next tick.
const DefaultTickPeriod = 5 * time.Second
