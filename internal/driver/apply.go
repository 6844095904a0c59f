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

	corev1 "k8s.io/api/core/v1"
	policyv1 "k8s.io/api/policy/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/klog/v2"

	"github.com/kube-nexus/custom-scheduler/internal/metrics"
	"github.com/kube-nexus/custom-scheduler/internal/model"
)

// ApplyPlan issues one API call per action: a binding request for each Bind
// and an eviction request for each Evict. Evicts are applied before binds;
// a single failed action is logged and skipped, and the rest of the plan
// is still attempted.
func ApplyPlan(ctx context.Context, client kubernetes.Interface, plan model.Plan) {
	for _, a := range plan.Evictions() {
		applyEvict(ctx, client, a)
	}
	for _, a := range plan.Binds() {
		applyBind(ctx, client, a)
	}
}

func applyBind(ctx context.Context, client kubernetes.Interface, a model.Action) {
	binding := &corev1.Binding{
		ObjectMeta: metav1.ObjectMeta{
			Name:      a.Pod.Name,
			Namespace: a.Pod.Namespace,
		},
		Target: corev1.ObjectReference{
			Kind: "Node",
			Name: a.NodeName,
		},
	}

	err := client.CoreV1().Pods(a.Pod.Namespace).Bind(ctx, binding, metav1.CreateOptions{})
	switch {
	case err == nil:
		metrics.ActionsApplied.WithLabelValues("bind", "applied").Inc()
		klog.InfoS("bound pod", "pod", a.Pod.String(), "node", a.NodeName)
	case apierrors.IsConflict(err):
		// Target node already bound by a concurrent actor: logged, skipped,
		// next tick re-evaluates.
		metrics.ActionsApplied.WithLabelValues("bind", "conflict").Inc()
		klog.ErrorS(err, "bind conflict, node already occupied", "pod", a.Pod.String(), "node", a.NodeName)
	default:
		metrics.ActionsApplied.WithLabelValues("bind", "error").Inc()
		klog.ErrorS(err, "bind failed", "pod", a.Pod.String(), "node", a.NodeName)
	}
}

func applyEvict(ctx context.Context, client kubernetes.Interface, a model.Action) {
	eviction := &policyv1.Eviction{
		ObjectMeta: metav1.ObjectMeta{
			Name:      a.Pod.Name,
			Namespace: a.Pod.Namespace,
		},
	}

	err := client.PolicyV1().Evictions(a.Pod.Namespace).Evict(ctx, eviction)
	switch {
	case err == nil:
		metrics.ActionsApplied.WithLabelValues("evict", "applied").Inc()
		klog.InfoS("evicted pod", "pod", a.Pod.String())
	case apierrors.IsNotFound(err):
		// Pod already gone by the time we got to it: nothing to do.
		metrics.ActionsApplied.WithLabelValues("evict", "gone").Inc()
		klog.V(3).InfoS("eviction target already gone", "pod", a.Pod.String())
	default:
		metrics.ActionsApplied.WithLabelValues("evict", "error").Inc()
		klog.ErrorS(err, "eviction failed", "pod", a.Pod.String())
	}
}
