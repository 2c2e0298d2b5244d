package k8s

import (
	"context"
	"fmt"
	"sort"

	"github.com/pteich/kubeq/internal/types"
	"go.uber.org/zap"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
)

// EventService handles Kubernetes event operations
type EventService struct {
	client corev1client.EventsGetter
	log    *zap.SugaredLogger
}

// NewEventService creates a new EventService
func NewEventService(client corev1client.EventsGetter, log *zap.SugaredLogger) *EventService {
	return &EventService{
		client: client,
		log:    log,
	}
}

// List returns the events of the given namespaces, oldest first. No
// namespaces means all namespaces.
func (s *EventService) List(ctx context.Context, namespaces []string) ([]types.Event, error) {
	if len(namespaces) == 0 {
		namespaces = []string{metav1.NamespaceAll}
	}

	var events []types.Event
	for _, ns := range namespaces {
		list, err := s.client.Events(ns).List(ctx, metav1.ListOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to list events in %q: %w", ns, err)
		}
		for _, item := range list.Items {
			events = append(events, toEvent(item))
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].LastTimestamp.Before(events[j].LastTimestamp)
	})
	return events, nil
}

// ForResource fetches events for a specific resource
func (s *EventService) ForResource(ctx context.Context, namespace, uid string) ([]types.Event, error) {
	// Filter events by involvedObject.uid
	list, err := s.client.Events(namespace).List(ctx, metav1.ListOptions{
		FieldSelector: fmt.Sprintf("involvedObject.uid=%s", uid),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	var events []types.Event
	for _, item := range list.Items {
		events = append(events, toEvent(item))
	}

	return events, nil
}

func toEvent(item corev1.Event) types.Event {
	return types.Event{
		Namespace:     item.Namespace,
		Object:        item.InvolvedObject.Kind + "/" + item.InvolvedObject.Name,
		Type:          item.Type,
		Reason:        item.Reason,
		Message:       item.Message,
		LastTimestamp: item.LastTimestamp.Time,
		Count:         item.Count,
	}
}
