// Package v1alpha1 contains API types for drbdvol.cofront.xyz/v1alpha1
//
// Field names and JSON tags follow the Kubernetes object conventions so a
// storage definition reads like any other manifest.
package v1alpha1

import "time"

// TypeMeta carries the kind and API version of a document.
type TypeMeta struct {
	Kind       string `json:"kind,omitempty" yaml:"kind,omitempty"`
	APIVersion string `json:"apiVersion,omitempty" yaml:"apiVersion,omitempty"`
}

// ObjectMeta identifies one storage definition.
type ObjectMeta struct {
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Set by NewDRBDStorage; read-only afterwards
	UID               string    `json:"uid,omitempty" yaml:"uid,omitempty"`
	CreationTimestamp time.Time `json:"creationTimestamp,omitzero" yaml:"creationTimestamp,omitempty"`
	Generation        int64     `json:"generation,omitempty" yaml:"generation,omitempty"`
}

// Condition is one observed aspect of the resource state.
type Condition struct {
	Type               string          `json:"type" yaml:"type"`
	Status             ConditionStatus `json:"status" yaml:"status"`
	ObservedGeneration int64           `json:"observedGeneration,omitempty" yaml:"observedGeneration,omitempty"`

	// LastTransitionTime changes only when Status does.
	LastTransitionTime time.Time `json:"lastTransitionTime,omitzero" yaml:"lastTransitionTime,omitempty"`
	Reason             string    `json:"reason,omitempty" yaml:"reason,omitempty"`
	Message            string    `json:"message,omitempty" yaml:"message,omitempty"`
}

// ConditionStatus is True, False or Unknown.
type ConditionStatus string

const (
	ConditionTrue    ConditionStatus = "True"
	ConditionFalse   ConditionStatus = "False"
	ConditionUnknown ConditionStatus = "Unknown"
)
