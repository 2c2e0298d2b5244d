package k8s

import (
	"context"

	"github.com/pteich/kubeq/internal/resource"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

type manifestOp func(ctx context.Context, coords resource.Coordinates, obj *unstructured.Unstructured) (*unstructured.Unstructured, error)

// CreateManifests resolves and creates each manifest in order. The first
// failure stops the batch; the responses collected so far are returned with
// the error.
func (s *ResourceService) CreateManifests(ctx context.Context, objs []*unstructured.Unstructured) ([]*unstructured.Unstructured, error) {
	return s.each(ctx, objs, s.Create)
}

// DeleteManifests resolves and deletes each manifest in order, with the same
// failure behavior as CreateManifests
func (s *ResourceService) DeleteManifests(ctx context.Context, objs []*unstructured.Unstructured) ([]*unstructured.Unstructured, error) {
	return s.each(ctx, objs, s.Delete)
}

// ReplaceManifests resolves and replaces each manifest in order
func (s *ResourceService) ReplaceManifests(ctx context.Context, objs []*unstructured.Unstructured) ([]*unstructured.Unstructured, error) {
	return s.each(ctx, objs, s.Replace)
}

func (s *ResourceService) each(ctx context.Context, objs []*unstructured.Unstructured, op manifestOp) ([]*unstructured.Unstructured, error) {
	responses := make([]*unstructured.Unstructured, 0, len(objs))
	for _, obj := range objs {
		if err := ctx.Err(); err != nil {
			return responses, err
		}

		coords, err := s.resolver.ResolveManifest(obj)
		if err != nil {
			return responses, err
		}

		resp, err := op(ctx, coords, obj)
		if err != nil {
			return responses, err
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
