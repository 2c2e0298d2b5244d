package k8s

import (
	"context"
	"fmt"
	"strings"

	"github.com/pteich/kubeq/internal/types"
	"go.uber.org/zap"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/discovery"
)

// DiscoveryService enumerates the resource types served by the cluster
type DiscoveryService struct {
	client discovery.DiscoveryInterface
	log    *zap.SugaredLogger
}

// NewDiscoveryService creates a new DiscoveryService
func NewDiscoveryService(client discovery.DiscoveryInterface, log *zap.SugaredLogger) *DiscoveryService {
	return &DiscoveryService{
		client: client,
		log:    log,
	}
}

// ResourceTypesFor returns the listable resource types of one group/version
// in the order the server reports them. Subresources are skipped.
func (s *DiscoveryService) ResourceTypesFor(ctx context.Context, gv types.APIGroupVersion) ([]types.APIResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.log.Debugw("Discovering resource types", "groupVersion", gv.GroupVersion)
	list, err := s.client.ServerResourcesForGroupVersion(gv.GroupVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to discover resources of %s: %w", gv.GroupVersion, err)
	}

	return toAPIResources(list, true), nil
}

// ServerAPIResources returns the preferred version of every resource type on
// the server. Groups that fail discovery are logged and left out.
func (s *DiscoveryService) ServerAPIResources(ctx context.Context) ([]types.APIResource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resourceLists, err := discovery.ServerPreferredResources(s.client)
	if err != nil {
		if !discovery.IsGroupDiscoveryFailedError(err) {
			return nil, fmt.Errorf("failed to discover resources: %w", err)
		}
		s.log.Warnw("Some API groups could not be discovered", "error", err)
	}

	var resources []types.APIResource
	for _, rl := range resourceLists {
		resources = append(resources, toAPIResources(rl, false)...)
	}
	return resources, nil
}

func toAPIResources(list *metav1.APIResourceList, listableOnly bool) []types.APIResource {
	if list == nil {
		return nil
	}

	resources := make([]types.APIResource, 0, len(list.APIResources))
	for _, r := range list.APIResources {
		if strings.Contains(r.Name, "/") {
			continue
		}

		res := types.APIResource{
			GroupVersion: list.GroupVersion,
			Kind:         r.Kind,
			Plural:       r.Name,
			Namespaced:   r.Namespaced,
			Verbs:        r.Verbs,
		}
		if listableOnly && !res.HasVerb("list") {
			continue
		}
		resources = append(resources, res)
	}
	return resources
}
