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

// Group is the derived entity keyed by group-name. It is never constructed
// directly; build one with GroupPods.
type Group struct {
	Name string

	// Pending holds the group's pending-unbound members, in no particular
	// order; engine.Schedule imposes its own ordering over them.
	Pending []Pod

	// RunningCount is the number of bound-active members.
	RunningCount int

	// runningPriority is the highest priority among bound-active members, or
	// nil if the group has none. Kept separate from Pending because
	// bound-active members contribute to Priority() but not to Pending.
	runningPriority *int32
}

// Priority is the group's effective priority: the max priority across all
// members, pending and bound-active alike.
func (g Group) Priority() int32 {
	max := g.runningPriority
	for _, p := range g.Pending {
		pr := p.EffectivePriority()
		if max == nil || pr > *max {
			max = &pr
		}
	}
	if max == nil {
		return 0
	}
	return *max
}

// MinAvailable is the max min-available declared by any pending member; if
// no pending member declares one the group is non-blocking (effectively 1).
// Running members never contribute.
func (g Group) MinAvailable() int {
	max := 0
	for _, p := range g.Pending {
		if p.MinAvailable > max {
			max = p.MinAvailable
		}
	}
	if max == 0 {
		return 1
	}
	return max
}

// groupBuild accumulates per-group state while scanning a snapshot's pods.
type groupBuild struct {
	pending         []Pod
	runningCount    int
	runningPriority *int32
}

// GroupPods partitions pending-unbound and bound-active pods by group-name,
// returning a map keyed by group name. Ungrouped pods (GroupName == "") are
// never included; callers handle them individually.
func GroupPods(pending, boundActive []Pod) map[string]*Group {
	builds := make(map[string]*groupBuild)

	get := func(name string) *groupBuild {
		b, ok := builds[name]
		if !ok {
			b = &groupBuild{}
			builds[name] = b
		}
		return b
	}

	for _, p := range pending {
		if p.GroupName == "" {
			continue
		}
		b := get(p.GroupName)
		b.pending = append(b.pending, p)
	}

	for _, p := range boundActive {
		if p.GroupName == "" {
			continue
		}
		b := get(p.GroupName)
		b.runningCount++
		pr := p.EffectivePriority()
		if b.runningPriority == nil || pr > *b.runningPriority {
			b.runningPriority = &pr
		}
	}

	groups := make(map[string]*Group, len(builds))
	for name, b := range builds {
		groups[name] = &Group{
			Name:            name,
			Pending:         b.pending,
			RunningCount:    b.runningCount,
			runningPriority: b.runningPriority,
		}
	}
	return groups
}
