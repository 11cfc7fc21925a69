// Package status derives DRBDStorage status fields, phase and conditions,
// from the live state of the replicated resource.
package status

import (
	"time"

	"github.com/jbweber/drbdvol/api/v1alpha1"
)

// SetCondition adds or updates a condition in the storage status.
// The LastTransitionTime is only updated if the status changes.
func SetCondition(s *v1alpha1.DRBDStorage, condType string, status v1alpha1.ConditionStatus, reason, message string) {
	now := time.Now()

	for i := range s.Status.Conditions {
		if s.Status.Conditions[i].Type == condType {
			existing := &s.Status.Conditions[i]

			if existing.Status != status {
				existing.LastTransitionTime = now
			}

			existing.Status = status
			existing.Reason = reason
			existing.Message = message
			existing.ObservedGeneration = s.Generation
			return
		}
	}

	s.Status.Conditions = append(s.Status.Conditions, v1alpha1.Condition{
		Type:               condType,
		Status:             status,
		ObservedGeneration: s.Generation,
		LastTransitionTime: now,
		Reason:             reason,
		Message:            message,
	})
}

// GetCondition returns a condition by type, or nil if not found.
func GetCondition(s *v1alpha1.DRBDStorage, condType string) *v1alpha1.Condition {
	for i := range s.Status.Conditions {
		if s.Status.Conditions[i].Type == condType {
			return &s.Status.Conditions[i]
		}
	}
	return nil
}

// IsConditionTrue returns true if the condition exists and has status True.
func IsConditionTrue(s *v1alpha1.DRBDStorage, condType string) bool {
	cond := GetCondition(s, condType)
	return cond != nil && cond.Status == v1alpha1.ConditionTrue
}

// boolCondition sets a condition to True or False with the matching reason.
func boolCondition(s *v1alpha1.DRBDStorage, condType string, ok bool, trueReason, falseReason, message string) {
	if ok {
		SetCondition(s, condType, v1alpha1.ConditionTrue, trueReason, message)
		return
	}
	SetCondition(s, condType, v1alpha1.ConditionFalse, falseReason, message)
}
