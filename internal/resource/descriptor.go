package resource

import (
	"strings"

	"github.com/pteich/kubeq/internal/search"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

// Resolver turns manifests and symbolic references into Coordinates. It is a
// pure function of its input and the registry it was built with.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver backed by registry
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{
		registry: registry,
	}
}

// Registry returns the registry the resolver consults
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// ResolveManifest derives coordinates from a manifest. apiVersion and kind
// must be non-empty strings; metadata.namespace and metadata.name are copied
// when present.
func (r *Resolver) ResolveManifest(obj *unstructured.Unstructured) (Coordinates, error) {
	if obj == nil || obj.Object == nil {
		return Coordinates{}, &ValidationError{Field: "apiVersion", Reason: "is required"}
	}
	return r.resolve(obj.Object)
}

// ResolveRef resolves "Kind" (registered kinds only) or "group/version:Kind"
func (r *Resolver) ResolveRef(ref string) (Coordinates, error) {
	if entry, ok := r.registry.Lookup(ref); ok {
		return r.resolve(map[string]interface{}{
			"apiVersion": entry.GroupVersion,
			"kind":       entry.Kind,
		})
	}

	if strings.Count(ref, ":") != 1 {
		return Coordinates{}, &NotFoundError{
			Ref:         ref,
			Suggestions: search.SuggestKinds(ref, r.registry.Kinds()),
		}
	}

	groupVersion, kind, _ := strings.Cut(ref, ":")
	return r.resolve(map[string]interface{}{
		"apiVersion": groupVersion,
		"kind":       kind,
	})
}

func (r *Resolver) resolve(object map[string]interface{}) (Coordinates, error) {
	groupVersion, err := requiredString(object, "apiVersion")
	if err != nil {
		return Coordinates{}, err
	}
	kind, err := requiredString(object, "kind")
	if err != nil {
		return Coordinates{}, err
	}

	group, version := splitGroupVersion(groupVersion)
	coords := Coordinates{
		APIGroup:        group,
		APIVersion:      version,
		APIGroupVersion: groupVersion,
		Kind:            kind,
		Plural:          strings.ToLower(kind) + "s",
	}

	// the registry is authoritative for built-in core kinds, whatever group
	// the manifest claims. Unregistered kinds keep their group.
	if entry, ok := r.registry.Lookup(kind); ok {
		if entry.Core() {
			coords.APIGroup = ""
			coords.APIGroupVersion = version
		}
		if entry.Plural != "" {
			coords.Plural = entry.Plural
		}
	}

	if metadata, ok := object["metadata"].(map[string]interface{}); ok {
		if ns, ok := metadata["namespace"].(string); ok {
			coords.Namespace = ns
		}
		if name, ok := metadata["name"].(string); ok {
			coords.Name = name
		}
	}

	return coords, nil
}

func requiredString(object map[string]interface{}, field string) (string, error) {
	raw, found := object[field]
	if !found || raw == nil {
		return "", &ValidationError{Field: field, Reason: "is required"}
	}
	value, ok := raw.(string)
	if !ok {
		return "", &ValidationError{Field: field, Reason: "must be a string"}
	}
	if value == "" {
		return "", &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return value, nil
}
