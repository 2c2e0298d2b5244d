package types

import "k8s.io/apimachinery/pkg/runtime/schema"

// APIGroupVersion identifies one served API group/version
type APIGroupVersion struct {
	Version      string `json:"version"`
	Group        string `json:"group"`
	GroupVersion string `json:"groupVersion"`
}

// NewAPIGroupVersion builds the triple for a group and version, group may be empty
func NewAPIGroupVersion(group, version string) APIGroupVersion {
	gv := version
	if group != "" {
		gv = group + "/" + version
	}
	return APIGroupVersion{
		Version:      version,
		Group:        group,
		GroupVersion: gv,
	}
}

// APIResource is a concrete resource type found through discovery
type APIResource struct {
	GroupVersion string   `json:"groupVersion"`
	Kind         string   `json:"kind"`
	Plural       string   `json:"name"`
	Namespaced   bool     `json:"namespaced"`
	Verbs        []string `json:"verbs,omitempty"`
}

// Scope returns Namespaced or Cluster
func (r APIResource) Scope() string {
	if r.Namespaced {
		return "Namespaced"
	}
	return "Cluster"
}

// GVR returns the GroupVersionResource addressing this type
func (r APIResource) GVR() schema.GroupVersionResource {
	gv, _ := schema.ParseGroupVersion(r.GroupVersion)
	return gv.WithResource(r.Plural)
}

// HasVerb reports whether the type supports verb. Types without reported verbs
// are assumed to support everything.
func (r APIResource) HasVerb(verb string) bool {
	if len(r.Verbs) == 0 {
		return true
	}
	for _, v := range r.Verbs {
		if v == verb {
			return true
		}
	}
	return false
}
