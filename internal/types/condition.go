package types

import (
	"time"

	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Condition represents a Kubernetes-style condition from status.conditions
type Condition struct {
	Type               string
	Status             string // "True", "False", "Unknown"
	Reason             string
	Message            string
	LastTransitionTime time.Time
}

// IsReady returns true if this is a "Ready" condition with status "True"
func (c Condition) IsReady() bool {
	return (c.Type == "Ready" || c.Type == "Available" || c.Type == "Healthy") && c.Status == "True"
}

// ConditionsOf extracts status.conditions from an unstructured object
func ConditionsOf(obj *unstructured.Unstructured) []Condition {
	raw, found, err := unstructured.NestedSlice(obj.Object, "status", "conditions")
	if err != nil || !found {
		return nil
	}

	var conditions []Condition
	for _, c := range raw {
		m, ok := c.(map[string]interface{})
		if !ok {
			continue
		}

		condition := Condition{
			Type:    stringField(m, "type"),
			Status:  stringField(m, "status"),
			Reason:  stringField(m, "reason"),
			Message: stringField(m, "message"),
		}
		if ts := stringField(m, "lastTransitionTime"); ts != "" {
			if t, err := time.Parse(time.RFC3339, ts); err == nil {
				condition.LastTransitionTime = t
			}
		}

		conditions = append(conditions, condition)
	}

	return conditions
}

// ReadyStatus summarizes conditions as "Ready", "NotReady", "Progressing" or
// "Unknown"
func ReadyStatus(conditions []Condition) string {
	var ready, notReady, progressing bool

	for _, c := range conditions {
		switch c.Type {
		case "Ready", "Available", "Healthy", "Synced":
			if c.Status == "True" {
				ready = true
			} else if c.Status == "False" {
				notReady = true
			}
		case "Reconciling", "Progressing":
			if c.Status == "True" {
				progressing = true
			}
		}
	}

	if progressing {
		return "Progressing"
	}
	if ready && !notReady {
		return "Ready"
	}
	if notReady {
		return "NotReady"
	}
	return "Unknown"
}

func stringField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
