package resource

import (
	"strings"

	"k8s.io/apimachinery/pkg/runtime/schema"
)

// Coordinates holds everything needed to address a resource type, or one
// object of it, over REST. An empty Namespace means the request is made
// cluster-scoped, an empty Name addresses the collection.
type Coordinates struct {
	APIGroup        string
	APIVersion      string
	APIGroupVersion string
	Kind            string
	Plural          string
	Namespace       string
	Name            string
}

// splitGroupVersion splits on the first "/". Without a "/" the whole string
// is the version.
func splitGroupVersion(groupVersion string) (group, version string) {
	group, version, found := strings.Cut(groupVersion, "/")
	if !found {
		return "", groupVersion
	}
	return group, version
}

// GroupVersionResource returns the GVR used by the backend
func (c Coordinates) GroupVersionResource() schema.GroupVersionResource {
	return schema.GroupVersionResource{
		Group:    c.APIGroup,
		Version:  c.APIVersion,
		Resource: c.Plural,
	}
}

// GroupVersionKind returns the GVK of the addressed type
func (c Coordinates) GroupVersionKind() schema.GroupVersionKind {
	return schema.GroupVersionKind{
		Group:   c.APIGroup,
		Version: c.APIVersion,
		Kind:    c.Kind,
	}
}

// ClusterScoped reports whether requests go to the cluster-scoped endpoint
func (c Coordinates) ClusterScoped() bool {
	return c.Namespace == ""
}

// InNamespace returns a copy addressing namespace
func (c Coordinates) InNamespace(namespace string) Coordinates {
	c.Namespace = namespace
	return c
}

// WithName returns a copy addressing the named object
func (c Coordinates) WithName(name string) Coordinates {
	c.Name = name
	return c
}

func (c Coordinates) String() string {
	resource := c.Plural
	if len(c.APIGroup) > 0 {
		resource = resource + "." + c.APIGroup
	}
	return resource + "/" + c.Name + "[" + c.Namespace + "]"
}
