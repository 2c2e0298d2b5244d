package k8s

import (
	"context"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/pteich/kubeq/internal/resource"
	"go.uber.org/zap"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/dynamic"
)

// ResourceService performs generic CRUD operations addressed purely by
// coordinates. An empty namespace in the coordinates always selects the
// cluster-scoped endpoint, whatever the real scope of the type is.
type ResourceService struct {
	client   dynamic.Interface
	resolver *resource.Resolver
	log      *zap.SugaredLogger
}

// NewResourceService creates a new ResourceService
func NewResourceService(client dynamic.Interface, resolver *resource.Resolver, log *zap.SugaredLogger) *ResourceService {
	return &ResourceService{
		client:   client,
		resolver: resolver,
		log:      log,
	}
}

// Resolver returns the resolver used for manifests
func (s *ResourceService) Resolver() *resource.Resolver {
	return s.resolver
}

func (s *ResourceService) resourceFor(coords resource.Coordinates) dynamic.ResourceInterface {
	nri := s.client.Resource(coords.GroupVersionResource())
	if coords.ClusterScoped() {
		return nri
	}
	return nri.Namespace(coords.Namespace)
}

// Create creates obj at coords
func (s *ResourceService) Create(ctx context.Context, coords resource.Coordinates, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	if err := requireTypeMeta(obj); err != nil {
		return nil, err
	}

	s.log.Debugw("Creating resource", "resource", coords.String())
	created, err := s.resourceFor(coords).Create(ctx, obj, metav1.CreateOptions{})
	if err != nil {
		return nil, &resource.BackendError{Op: "create", Coordinates: coords, Err: err}
	}
	return orEmpty(created), nil
}

// Delete deletes the object named by obj's metadata.name
func (s *ResourceService) Delete(ctx context.Context, coords resource.Coordinates, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	if obj == nil || obj.GetName() == "" {
		return nil, &resource.ValidationError{Field: "metadata.name", Reason: "must not be empty"}
	}

	s.log.Debugw("Deleting resource", "resource", coords.WithName(obj.GetName()).String())
	if err := s.resourceFor(coords).Delete(ctx, obj.GetName(), metav1.DeleteOptions{}); err != nil {
		return nil, &resource.BackendError{Op: "delete", Coordinates: coords, Err: err}
	}
	return orEmpty(nil), nil
}

// Get reads the object named by coords
func (s *ResourceService) Get(ctx context.Context, coords resource.Coordinates) (*unstructured.Unstructured, error) {
	if coords.Name == "" {
		return nil, &resource.ValidationError{Field: "metadata.name", Reason: "must not be empty"}
	}

	s.log.Debugw("Getting resource", "resource", coords.String())
	obj, err := s.resourceFor(coords).Get(ctx, coords.Name, metav1.GetOptions{})
	if err != nil {
		return nil, &resource.BackendError{Op: "get", Coordinates: coords, Err: err}
	}
	return orEmpty(obj), nil
}

// List returns the backend's list envelope unchanged
func (s *ResourceService) List(ctx context.Context, coords resource.Coordinates) (*unstructured.UnstructuredList, error) {
	s.log.Debugw("Listing resources", "resource", coords.String())
	list, err := s.resourceFor(coords).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &resource.BackendError{Op: "list", Coordinates: coords, Err: err}
	}
	if list == nil {
		list = &unstructured.UnstructuredList{Object: map[string]interface{}{}}
	}
	return list, nil
}

// Replace performs a full body update of obj
func (s *ResourceService) Replace(ctx context.Context, coords resource.Coordinates, obj *unstructured.Unstructured) (*unstructured.Unstructured, error) {
	if err := requireTypeMeta(obj); err != nil {
		return nil, err
	}
	if obj.GetName() == "" {
		return nil, &resource.ValidationError{Field: "metadata.name", Reason: "must not be empty"}
	}

	s.log.Debugw("Replacing resource", "resource", coords.WithName(obj.GetName()).String())
	updated, err := s.resourceFor(coords).Update(ctx, obj, metav1.UpdateOptions{})
	if err != nil {
		return nil, &resource.BackendError{Op: "replace", Coordinates: coords, Err: err}
	}
	return orEmpty(updated), nil
}

// Patch applies a JSON Patch document to the object named by coords
func (s *ResourceService) Patch(ctx context.Context, coords resource.Coordinates, patch []byte) (*unstructured.Unstructured, error) {
	if coords.Name == "" {
		return nil, &resource.ValidationError{Field: "metadata.name", Reason: "must not be empty"}
	}
	if _, err := jsonpatch.DecodePatch(patch); err != nil {
		return nil, &resource.ValidationError{Field: "patch", Reason: "is not a valid JSON Patch: " + err.Error()}
	}

	s.log.Debugw("Patching resource", "resource", coords.String())
	patched, err := s.resourceFor(coords).Patch(ctx, coords.Name, types.JSONPatchType, patch, metav1.PatchOptions{})
	if err != nil {
		return nil, &resource.BackendError{Op: "patch", Coordinates: coords, Err: err}
	}
	return orEmpty(patched), nil
}

func requireTypeMeta(obj *unstructured.Unstructured) error {
	if obj == nil || obj.GetKind() == "" {
		return &resource.ValidationError{Field: "kind", Reason: "must not be empty"}
	}
	if obj.GetAPIVersion() == "" {
		return &resource.ValidationError{Field: "apiVersion", Reason: "must not be empty"}
	}
	return nil
}

// orEmpty turns a missing response body into an empty object
func orEmpty(obj *unstructured.Unstructured) *unstructured.Unstructured {
	if obj == nil || obj.Object == nil {
		return &unstructured.Unstructured{Object: map[string]interface{}{}}
	}
	return obj
}
