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

package engine

import (
	"sort"

	"github.com/kube-nexus/custom-scheduler/internal/model"
)

// placement is a single tentative bind decision: the pod to bind, the node
// it lands on, and the victim it displaces (nil if the node was simply
// free).
type placement struct {
	pod    model.Pod
	node   string
	victim *model.Pod
}

// availableNode returns the lexicographically smallest free node not yet
// claimed by a planned bind, for deterministic node selection.
func (r *run) availableNode() (string, bool) {
	var best string
	found := false
	for name := range r.freeNodes {
		if _, taken := r.plannedBinds[name]; taken {
			continue
		}
		if !found || name < best {
			best = name
			found = true
		}
	}
	return best, found
}

// preemptionVictim selects the lowest-priority bound-active pod with
// effective priority strictly below requiredPriority, among nodes not
// already claimed by a planned bind and pods not already evicted. A
// candidate's effective priority is its gang's priority when it belongs to
// one, so a gang is never judged cheaper to evict than its individual
// members' own priorities suggest. excludeGroup, when non-empty, removes
// bound-active members of that same group from consideration — a gang never
// preempts one of its own, nor another gang whose priority is not strictly
// lower. Ties break by later creation timestamp, then lexicographic id, so
// the cheapest victim is chosen deterministically.
func (r *run) preemptionVictim(requiredPriority int32, excludeGroup string) (model.Pod, bool) {
	var candidates []model.Pod
	for node, occupant := range r.boundActiveByNode {
		if _, taken := r.plannedBinds[node]; taken {
			continue
		}
		if r.plannedEvictions[occupant.ID] {
			continue
		}
		if excludeGroup != "" && occupant.GroupName == excludeGroup {
			continue
		}
		if r.effectivePriority(occupant) >= requiredPriority {
			continue
		}
		candidates = append(candidates, occupant)
	}
	if len(candidates) == 0 {
		return model.Pod{}, false
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		pa, pb := r.effectivePriority(a), r.effectivePriority(b)
		if pa != pb {
			return pa < pb
		}
		if !a.CreationTime.Equal(b.CreationTime) {
			return a.CreationTime.After(b.CreationTime)
		}
		return a.ID.Less(b.ID)
	})
	return candidates[0], true
}

// attemptPlacement tries to place a single pod using the ungrouped rule: an
// available node first, preemption second. It does not mutate the run's
// committed state or planned maps — callers do
// that via claim and commit, so the same logic can be used for tentative gang
// placements that might be discarded. excludeGroup is the pod's own
// group-name (empty for ungrouped pods), passed through to preemptionVictim.
func (r *run) attemptPlacement(p model.Pod, priority int32, excludeGroup string) (placement, bool) {
	if node, ok := r.availableNode(); ok {
		return placement{pod: p, node: node}, true
	}
	if victim, ok := r.preemptionVictim(priority, excludeGroup); ok {
		return placement{pod: p, node: victim.NodeName, victim: &victim}, true
	}
	return placement{}, false
}

// claim marks a placement's node and victim as taken in the run's planned
// maps so subsequent attempts (within the same Schedule call) see them as
// unavailable, without yet committing the actions to the output plan.
func (r *run) claim(pl placement) {
	r.plannedBinds[pl.node] = pl.pod.ID
	if pl.victim != nil {
		r.plannedEvictions[pl.victim.ID] = true
	}
}

// commit appends a placement's actions to the plan in commitment order.
func (r *run) commit(pl placement) {
	if pl.victim != nil {
		r.committedEvicts = append(r.committedEvicts, model.Evict(pl.victim.ID))
	}
	r.committedBinds = append(r.committedBinds, model.Bind(pl.pod.ID, pl.node))
}

// scheduleUngrouped binds a single pod to a free node if one exists, else
// tries to preempt a strictly-lower-priority bound-active pod, else skips
// it for this tick.
func (r *run) scheduleUngrouped(p model.Pod, priority int32) {
	pl, ok := r.attemptPlacement(p, priority, p.GroupName)
	if !ok {
		return
	}
	r.claim(pl)
	r.commit(pl)
}

// scheduleGroup places an entire gang atomically. All pending members of
// the group are handled together the first time any member is encountered.
func (r *run) scheduleGroup(g model.Group) {
	need := g.MinAvailable() - g.RunningCount
	if need <= 0 {
		// Capacity already satisfied: every pending member is individually
		// bindable using the ungrouped rule, in priority order.
		for _, p := range orderGroupMembers(g.Pending) {
			r.scheduleUngrouped(p, g.Priority())
		}
		return
	}

	// Tentative scratch state: a shadow run sharing the same free-node and
	// occupancy view, so tentative claims don't leak into the real plan
	// unless committed.
	scratch := r.fork()

	var tentative []placement
	ordered := orderGroupMembers(g.Pending)
	for _, p := range ordered {
		if len(tentative) >= need {
			break
		}
		pl, ok := scratch.attemptPlacement(p, g.Priority(), g.Name)
		if !ok {
			continue
		}
		scratch.claim(pl)
		tentative = append(tentative, pl)
	}

	if len(tentative) < need {
		// Discard entirely: no member of the group is scheduled, no
		// preemption is performed on its behalf.
		return
	}

	for _, pl := range tentative {
		r.claim(pl)
		r.commit(pl)
	}
}

// orderGroupMembers sorts a group's pending members by the same total order
// used for the outer pending-pod sort, so tentative placement within a gang
// is itself deterministic.
func orderGroupMembers(members []model.Pod) []model.Pod {
	ordered := make([]model.Pod, len(members))
	copy(ordered, members)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i], ordered[j]
		if !pi.CreationTime.Equal(pj.CreationTime) {
			return pi.CreationTime.Before(pj.CreationTime)
		}
		return pi.ID.Less(pj.ID)
	})
	return ordered
}

// fork returns a shadow run sharing the same node/occupancy maps by value
// copy, so tentative claims during gang evaluation can be discarded without
// mutating the real run's planned state.
func (r *run) fork() *run {
	freeNodes := make(map[string]bool, len(r.freeNodes))
	for k, v := range r.freeNodes {
		freeNodes[k] = v
	}
	plannedBinds := make(map[string]model.PodID, len(r.plannedBinds))
	for k, v := range r.plannedBinds {
		plannedBinds[k] = v
	}
	plannedEvictions := make(map[model.PodID]bool, len(r.plannedEvictions))
	for k, v := range r.plannedEvictions {
		plannedEvictions[k] = v
	}
	return &run{
		freeNodes:         freeNodes,
		allNodes:          r.allNodes,
		plannedBinds:      plannedBinds,
		plannedEvictions:  plannedEvictions,
		boundActiveByNode: r.boundActiveByNode,
		groups:            r.groups,
	}
}
