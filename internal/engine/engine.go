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

// Package engine implements the scheduling decision core: a pure function
// from a cluster Snapshot to a Plan of Bind/Evict actions. It performs no
// I/O, holds no state across calls, and never errors: it absorbs malformed
// input with the conservative defaults defined in internal/model.
package engine

import (
	"sort"

	"github.com/kube-nexus/custom-scheduler/internal/model"
)

// run carries the mutable working state of a single Schedule call: the set
// of nodes still free, the binds and evictions committed so far, and the
// nodes/pods already claimed by those commitments. It is discarded at the
// end of the call; nothing here survives between Schedule invocations.
type run struct {
	freeNodes map[string]bool // node name -> still free
	allNodes  map[string]model.Node

	plannedBinds     map[string]model.PodID // node name -> bound pod
	plannedEvictions map[model.PodID]bool

	boundActiveByNode map[string]model.Pod // node name -> occupant (for preemption candidates)

	// groups gives every bound-active pod's gang (if any) its group's
	// effective priority, so preemption never judges a gang member by its
	// own priority alone: a gang never preempts a member of itself, or of
	// another gang whose priority is not strictly lower.
	groups map[string]*model.Group

	// committedEvicts and committedBinds accumulate in commitment order;
	// the final Plan concatenates evicts then binds.
	committedEvicts []model.Action
	committedBinds  []model.Action
}

// effectivePriority returns a bound-active pod's priority for preemption
// purposes: its group's priority if it is a gang member, else its own.
func (r *run) effectivePriority(p model.Pod) int32 {
	if p.GroupName != "" {
		if g, ok := r.groups[p.GroupName]; ok {
			return g.Priority()
		}
	}
	return p.EffectivePriority()
}

// Schedule computes a Plan from a Snapshot: partition pods by claim and
// state, order pending pods, then place or gang-place each in turn,
// preempting lower-priority occupants when capacity is short. Given the
// same Snapshot it always returns an identical Plan.
func Schedule(snap model.Snapshot) model.Plan {
	r := newRun(snap)

	pending, boundActive := partition(snap, r)
	groups := model.GroupPods(pending, boundActive)
	r.groups = groups
	ordered := orderPending(pending, groups)

	handledGroup := make(map[string]bool)

	for _, p := range ordered {
		if p.GroupName != "" {
			if handledGroup[p.GroupName] {
				continue
			}
			handledGroup[p.GroupName] = true
			g := groups[p.GroupName]
			r.scheduleGroup(*g)
			continue
		}
		r.scheduleUngrouped(p, p.EffectivePriority())
	}

	actions := make([]model.Action, 0, len(r.committedEvicts)+len(r.committedBinds))
	actions = append(actions, r.committedEvicts...)
	actions = append(actions, r.committedBinds...)
	return model.Plan{Actions: actions}
}

func newRun(snap model.Snapshot) *run {
	r := &run{
		freeNodes:         make(map[string]bool),
		allNodes:          make(map[string]model.Node),
		plannedBinds:      make(map[string]model.PodID),
		plannedEvictions:  make(map[model.PodID]bool),
		boundActiveByNode: make(map[string]model.Pod),
	}
	for _, n := range snap.Nodes {
		r.allNodes[n.Name] = n
		if n.Eligible() {
			r.freeNodes[n.Name] = true
		}
	}
	return r
}

// partition filters pods by scheduler-name claim, classifies the rest, and
// marks nodes occupied by bound-active pods as no longer free. When two
// bound-active pods claim the same node, the first one encountered under a
// deterministic ordering wins the node and the second is still counted as
// bound-active but ignored for placement.
func partition(snap model.Snapshot, r *run) (pending, boundActive []model.Pod) {
	var claimed []model.Pod
	for _, p := range snap.Pods {
		if !model.ClaimsScheduler(p, snap.SchedulerName) {
			continue
		}
		claimed = append(claimed, p)
	}

	// Deterministic order for resolving duplicate-occupancy conflicts: by
	// pod id, so the conflict resolution itself is reproducible.
	sort.Slice(claimed, func(i, j int) bool {
		return claimed[i].ID.Less(claimed[j].ID)
	})

	for _, p := range claimed {
		switch model.Classify(p) {
		case model.ClassPendingUnbound:
			pending = append(pending, p)
		case model.ClassBoundActive:
			boundActive = append(boundActive, p)
			if _, taken := r.boundActiveByNode[p.NodeName]; !taken {
				r.boundActiveByNode[p.NodeName] = p
				delete(r.freeNodes, p.NodeName)
			}
			// else: duplicate occupancy, node already claimed by the
			// earlier pod in the deterministic order; this pod is ignored
			// for placement but still counted as bound-active above.
		}
	}
	return pending, boundActive
}

// orderPending sorts pending-unbound pods: higher effective priority first
// (group priority for grouped pods), then earlier creation timestamp, then
// lexicographic (namespace, name).
func orderPending(pending []model.Pod, groups map[string]*model.Group) []model.Pod {
	effPriority := func(p model.Pod) int32 {
		if p.GroupName != "" {
			return groups[p.GroupName].Priority()
		}
		return p.EffectivePriority()
	}

	ordered := make([]model.Pod, len(pending))
	copy(ordered, pending)

	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i], ordered[j]
		ei, ej := effPriority(pi), effPriority(pj)
		if ei != ej {
			return ei > ej
		}
		if !pi.CreationTime.Equal(pj.CreationTime) {
			return pi.CreationTime.Before(pj.CreationTime)
		}
		return pi.ID.Less(pj.ID)
	})
	return ordered
}
