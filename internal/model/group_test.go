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

import "testing"

func priorityPtr(v int32) *int32 { return &v }

func TestGroupPriorityIsMaxOfMembers(t *testing.T) {
	pending := []Pod{
		{ID: PodID{Name: "p1"}, GroupName: "G", Priority: priorityPtr(3)},
		{ID: PodID{Name: "p2"}, GroupName: "G", Priority: priorityPtr(9)},
	}
	boundActive := []Pod{
		{ID: PodID{Name: "r1"}, GroupName: "G", Priority: priorityPtr(1)},
	}
	groups := GroupPods(pending, boundActive)
	g, ok := groups["G"]
	if !ok {
		t.Fatal("expected group G to exist")
	}
	if got := g.Priority(); got != 9 {
		t.Errorf("Priority() = %d, want 9 (max of 3, 9, 1)", got)
	}
}

func TestGroupPriorityFromRunningOnly(t *testing.T) {
	boundActive := []Pod{
		{ID: PodID{Name: "r1"}, GroupName: "G", Priority: priorityPtr(42)},
	}
	groups := GroupPods(nil, boundActive)
	g := groups["G"]
	if got := g.Priority(); got != 42 {
		t.Errorf("Priority() = %d, want 42", got)
	}
}

func TestGroupMinAvailableIsMaxOfPending(t *testing.T) {
	pending := []Pod{
		{ID: PodID{Name: "p1"}, GroupName: "G", MinAvailable: 2},
		{ID: PodID{Name: "p2"}, GroupName: "G", MinAvailable: 5},
	}
	groups := GroupPods(pending, nil)
	g := groups["G"]
	if got := g.MinAvailable(); got != 5 {
		t.Errorf("MinAvailable() = %d, want 5", got)
	}
}

func TestGroupMinAvailableDefaultsToOneWhenUndeclared(t *testing.T) {
	pending := []Pod{
		{ID: PodID{Name: "p1"}, GroupName: "G"},
	}
	groups := GroupPods(pending, nil)
	g := groups["G"]
	if got := g.MinAvailable(); got != 1 {
		t.Errorf("MinAvailable() = %d, want 1 (non-blocking default)", got)
	}
}

func TestGroupPodsIgnoresUngrouped(t *testing.T) {
	pending := []Pod{{ID: PodID{Name: "p1"}}}
	boundActive := []Pod{{ID: PodID{Name: "r1"}}}
	groups := GroupPods(pending, boundActive)
	if len(groups) != 0 {
		t.Errorf("expected no groups for ungrouped pods, got %v", groups)
	}
}

func TestGroupRunningCount(t *testing.T) {
	boundActive := []Pod{
		{ID: PodID{Name: "r1"}, GroupName: "G"},
		{ID: PodID{Name: "r2"}, GroupName: "G"},
		{ID: PodID{Name: "r3"}, GroupName: "H"},
	}
	groups := GroupPods(nil, boundActive)
	if got := groups["G"].RunningCount; got != 2 {
		t.Errorf("G.RunningCount = %d, want 2", got)
	}
	if got := groups["H"].RunningCount; got != 1 {
		t.Errorf("H.RunningCount = %d, want 1", got)
	}
}
