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

func TestApplyPlanIssuesBindAndEvict(t *testing.T) {
	pod := &corev1.Pod{
		ObjectMeta: metav1.ObjectMeta{Name: "victim", Namespace: "default"},
	}
	client := fakeclientset.NewSimpleClientset(pod)

	plan := model.Plan{Actions: []model.Action{
		model.Evict(model.PodID{Namespace: "default", Name: "victim"}),
		model.Bind(model.PodID{Namespace: "default", Name: "newcomer"}, "n1"),
	}}

	// ApplyPlan never returns an error and never aborts a tick because of a
	// single failed action: the bind target pod doesn't exist in the fake
	// clientset (a realistic not-found case the driver logs and moves past),
	// yet both requests are still issued, the eviction first.
	ApplyPlan(context.Background(), client, plan)

	var subresources []string
	for _, a := range client.Actions() {
		if a.GetVerb() == "create" {
			subresources = append(subresources, a.GetSubresource())
		}
	}
	if len(subresources) != 2 || subresources[0] != "eviction" || subresources[1] != "binding" {
		t.Errorf("expected an eviction then a binding request, got create subresources %v", subresources)
	}
}
