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

package driver

import (
	"github.com/kube-nexus/custom-scheduler/internal/metrics"
	"github.com/kube-nexus/custom-scheduler/internal/model"
)

// observeGangMetrics derives gang-level observability from the same
// Snapshot and Plan the engine already produced, without re-implementing
// its placement decisions: it only re-derives group membership (via the
// exported model primitives the engine itself is built on) to report the
// size of each gang considered this tick and whether it was discarded for
// insufficient capacity. The engine stays instrumentation-free; this is
// purely a driver-side observation of the engine's output.
func observeGangMetrics(snap model.Snapshot, plan model.Plan) {
	var pending, boundActive []model.Pod
	for _, p := range snap.Pods {
		if !model.ClaimsScheduler(p, snap.SchedulerName) {
			continue
		}
		switch model.Classify(p) {
		case model.ClassPendingUnbound:
			pending = append(pending, p)
		case model.ClassBoundActive:
			boundActive = append(boundActive, p)
		}
	}

	groups := model.GroupPods(pending, boundActive)
	if len(groups) == 0 {
		return
	}

	bound := make(map[model.PodID]bool)
	for _, a := range plan.Binds() {
		bound[a.Pod] = true
	}

	for name, g := range groups {
		if len(g.Pending) == 0 {
			continue
		}
		metrics.PodGroupSize.Observe(float64(len(g.Pending)))

		need := g.MinAvailable() - g.RunningCount
		if need <= 0 {
			continue
		}

		placed := false
		for _, p := range g.Pending {
			if bound[p.ID] {
				placed = true
				break
			}
		}
		if !placed {
			metrics.GangAborts.WithLabelValues(name).Inc()
		}
	}
}
