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
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/kube-nexus/custom-scheduler/internal/model"
)

// BuildSnapshot lists every node and pod the cluster API currently reports
// and translates them into the engine's pure model. Filtering by
// scheduler-name is the engine's job, not this function's, to keep the
// driver trivial.
func BuildSnapshot(ctx context.Context, client kubernetes.Interface, schedulerName string) (model.Snapshot, error) {
	nodeList, err := client.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("listing nodes: %w", err)
	}
	podList, err := client.CoreV1().Pods(metav1.NamespaceAll).List(ctx, metav1.ListOptions{})
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("listing pods: %w", err)
	}

	nodes := make([]model.Node, 0, len(nodeList.Items))
	for _, n := range nodeList.Items {
		nodes = append(nodes, translateNode(n))
	}

	pods := make([]model.Pod, 0, len(podList.Items))
	for _, p := range podList.Items {
		pods = append(pods, translatePod(p))
	}

	return model.Snapshot{
		SchedulerName: schedulerName,
		Nodes:         nodes,
		Pods:          pods,
	}, nil
}

func translateNode(n corev1.Node) model.Node {
	ready := false
	for _, cond := range n.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			ready = cond.Status == corev1.ConditionTrue
			break
		}
	}
	return model.Node{
		Name:          n.Name,
		Ready:         ready,
		Unschedulable: n.Spec.Unschedulable,
	}
}

func translatePod(p corev1.Pod) model.Pod {
	groupName, minAvailable := model.ParseGangAnnotations(p.Annotations)

	var priority *int32
	if p.Spec.Priority != nil {
		v := *p.Spec.Priority
		priority = &v
	}

	return model.Pod{
		ID:            model.PodID{Namespace: p.Namespace, Name: p.Name},
		SchedulerName: p.Spec.SchedulerName,
		NodeName:      p.Spec.NodeName,
		Phase:         translatePhase(p.Status.Phase),
		Priority:      priority,
		GroupName:     groupName,
		MinAvailable:  minAvailable,
		CreationTime:  p.CreationTimestamp.Time,
	}
}

func translatePhase(phase corev1.PodPhase) model.Phase {
	switch phase {
	case corev1.PodPending:
		return model.PodPending
	case corev1.PodRunning:
		return model.PodRunning
	case corev1.PodSucceeded:
		return model.PodSucceeded
	case corev1.PodFailed:
		return model.PodFailed
	default:
		return model.PodUnknown
	}
}
