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
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	fakeclientset "k8s.io/client-go/kubernetes/fake"

	"github.com/kube-nexus/custom-scheduler/internal/model"
)

func TestBuildSnapshotTranslatesNodesAndPods(t *testing.T) {
	node := &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "n1"},
		Spec:       corev1.NodeSpec{Unschedulable: false},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionTrue},
			},
		},
	}

	priority := int32(10)
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{
			Name:      "p1",
			Namespace: "default",
			Annotations: map[string]string{
				model.GroupNameAnnotation:    "G",
				model.MinAvailableAnnotation: "2",
			},
		},
		Spec: corev1.PodSpec{
			SchedulerName: "custom-scheduler",
			Priority:      &priority,
		},
		Status: corev1.PodStatus{Phase: corev1.PodPending},
	}

	client := fakeclientset.NewSimpleClientset(node, pod)

	snap, err := BuildSnapshot(context.Background(), client, "custom-scheduler")
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}

	if len(snap.Nodes) != 1 || !snap.Nodes[0].Eligible() {
		t.Fatalf("expected one eligible node, got %+v", snap.Nodes)
	}

	if len(snap.Pods) != 1 {
		t.Fatalf("expected one pod, got %+v", snap.Pods)
	}
	got := snap.Pods[0]
	if got.ID.Namespace != "default" || got.ID.Name != "p1" {
		t.Errorf("unexpected pod id: %+v", got.ID)
	}
	if got.GroupName != "G" || got.MinAvailable != 2 {
		t.Errorf("expected gang annotations parsed, got group=%q min=%d", got.GroupName, got.MinAvailable)
	}
	if got.EffectivePriority() != 10 {
		t.Errorf("expected priority 10, got %d", got.EffectivePriority())
	}
	if got.Phase != model.PodPending {
		t.Errorf("expected phase Pending, got %v", got.Phase)
	}
}

func TestBuildSnapshotUnreadyNodeIsIneligible(t *testing.T) {
	node := &corev1.Node{
		ObjectMeta: metav1.ObjectMeta{Name: "n1"},
		Status: corev1.NodeStatus{
			Conditions: []corev1.NodeCondition{
				{Type: corev1.NodeReady, Status: corev1.ConditionFalse},
			},
		},
	}
	client := fakeclientset.NewSimpleClientset(node)

	snap, err := BuildSnapshot(context.Background(), client, "custom-scheduler")
	if err != nil {
		t.Fatalf("BuildSnapshot() error = %v", err)
	}
	if snap.Nodes[0].Eligible() {
		t.Error("expected not-ready node to be ineligible")
	}
}
