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

import "strconv"

const (
	// GroupNameAnnotation is the bit-exact annotation key carrying a pod's
	// gang identity.
	GroupNameAnnotation = "custom-scheduling.k8s.io/group-name"
	// MinAvailableAnnotation is the bit-exact annotation key carrying a pod's
	// declared gang minimum.
	MinAvailableAnnotation = "custom-scheduling.k8s.io/min-available"

	// legacyGroupNameAnnotation and legacyMinAvailableAnnotation widen what's
	// accepted without touching the primary contract above: new key first,
	// fall back to the old one.
	legacyGroupNameAnnotation    = "pod-group.scheduling.sigs.k8s.io/name"
	legacyMinAvailableAnnotation = "pod-group.scheduling.sigs.k8s.io/min-available"
)

// ParseGangAnnotations extracts group-name and min-available from a pod's
// annotation map. Parsing is lenient: absence or a malformed min-available
// means "no gang constraint from this annotation" rather than an error —
// the caller never sees a parse failure, only the zero values.
func ParseGangAnnotations(annotations map[string]string) (groupName string, minAvailable int) {
	if annotations == nil {
		return "", 0
	}

	groupName = annotations[GroupNameAnnotation]
	if groupName == "" {
		groupName = annotations[legacyGroupNameAnnotation]
	}
	if groupName == "" {
		return "", 0
	}

	raw := annotations[MinAvailableAnnotation]
	if raw == "" {
		raw = annotations[legacyMinAvailableAnnotation]
	}
	if raw == "" {
		return groupName, 0
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		// Malformed or non-positive: no gang constraint from this pod, but
		// the pod is still a member of the group by name.
		return groupName, 0
	}
	return groupName, n
}
