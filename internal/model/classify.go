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

package model

// Class is a pod's classification for the purposes of the decision engine.
type Class int

const (
	ClassIgnored Class = iota
	ClassPendingUnbound
	ClassBoundActive
)

// Classify derives a pod's Class from its phase and assigned-node.
// Unknown-phase pods with an assigned node are conservatively treated as
// Bound-active.
func Classify(p Pod) Class {
	switch p.Phase {
	case PodPending:
		if p.Bound() {
			return ClassBoundActive
		}
		return ClassPendingUnbound
	case PodRunning:
		if p.Bound() {
			return ClassBoundActive
		}
		return ClassIgnored
	case PodSucceeded, PodFailed:
		return ClassIgnored
	case PodUnknown:
		if p.Bound() {
			return ClassBoundActive
		}
		return ClassIgnored
	default:
		return ClassIgnored
	}
}

// ClaimsScheduler reports whether a pod's scheduler-name claim matches the
// scheduler running the engine. Pods that do not match are invisible to the
// engine.
func ClaimsScheduler(p Pod, schedulerName string) bool {
	return p.SchedulerName == schedulerName
}
