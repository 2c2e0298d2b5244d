package k8s

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/sets"
	corev1client "k8s.io/client-go/kubernetes/typed/core/v1"
)

// AllNamespaces is the sentinel expanding to every namespace of the cluster
const AllNamespaces = "all"

// NamespaceResolver expands the "all" sentinel into the live namespace list
type NamespaceResolver struct {
	client corev1client.NamespaceInterface
	log    *zap.SugaredLogger
}

// NewNamespaceResolver creates a new NamespaceResolver
func NewNamespaceResolver(client corev1client.NamespaceInterface, log *zap.SugaredLogger) *NamespaceResolver {
	return &NamespaceResolver{
		client: client,
		log:    log,
	}
}

// List returns the names of all namespaces
func (r *NamespaceResolver) List(ctx context.Context) ([]string, error) {
	list, err := r.client.List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(list.Items))
	for _, ns := range list.Items {
		names = append(names, ns.Name)
	}
	return names, nil
}

// Resolve returns requested unchanged unless it holds "all". Then the live
// namespaces are merged in and the sentinel removed. A failed listing is
// logged and counts as no namespaces.
func (r *NamespaceResolver) Resolve(ctx context.Context, requested sets.Set[string]) sets.Set[string] {
	if !requested.Has(AllNamespaces) {
		return requested
	}

	resolved := requested.Clone()
	resolved.Delete(AllNamespaces)

	names, err := r.List(ctx)
	if err != nil {
		r.log.Errorw("Failed to expand namespaces", "error", err)
		return resolved
	}
	return resolved.Insert(names...)
}
