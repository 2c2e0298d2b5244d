package types

import "time"

// Event represents a Kubernetes event
type Event struct {
	Namespace     string    `json:"namespace"`
	Object        string    `json:"object"`
	Type          string    `json:"type"`
	Reason        string    `json:"reason"`
	Message       string    `json:"message"`
	LastTimestamp time.Time `json:"lastTimestamp"`
	Count         int32     `json:"count"`
}

// PodLog is the log output of one container
type PodLog struct {
	Namespace string `json:"namespace"`
	Name      string `json:"name"`
	Container string `json:"container"`
	Log       string `json:"log"`
}
