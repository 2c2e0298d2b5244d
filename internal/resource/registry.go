package resource

import (
	"sort"

	"github.com/pteich/kubeq/internal/types"
)

// Entry maps a well-known Kind to the group/version that serves it
type Entry struct {
	Kind         string
	GroupVersion string
	// Plural is set only for kinds whose plural is not lowercase(Kind)+"s"
	Plural     string
	Namespaced bool
}

// Group returns the API group of the entry, empty for core kinds
func (e Entry) Group() string {
	group, _ := splitGroupVersion(e.GroupVersion)
	return group
}

// Core reports whether the kind is served by the groupless core API
func (e Entry) Core() bool {
	return e.Group() == ""
}

// Registry is a read-only lookup table of built-in kinds plus the ordered list
// of built-in API group/versions. It is never mutated after construction.
type Registry struct {
	entries map[string]Entry
	kinds   []string
	apis    []types.APIGroupVersion
}

// NewRegistry builds a registry from entries and the API table. The first
// entry for a kind wins.
func NewRegistry(entries []Entry, apis []types.APIGroupVersion) *Registry {
	r := &Registry{
		entries: make(map[string]Entry, len(entries)),
		apis:    append([]types.APIGroupVersion(nil), apis...),
	}
	for _, e := range entries {
		if _, exists := r.entries[e.Kind]; exists {
			continue
		}
		r.entries[e.Kind] = e
		r.kinds = append(r.kinds, e.Kind)
	}
	sort.Strings(r.kinds)
	return r
}

// DefaultRegistry returns a new registry holding the built-in Kubernetes kinds
func DefaultRegistry() *Registry {
	return NewRegistry(builtinKinds(), builtinAPIs())
}

// Lookup returns the entry registered for kind. Matching is exact.
func (r *Registry) Lookup(kind string) (Entry, bool) {
	e, ok := r.entries[kind]
	return e, ok
}

// Kinds returns all registered kinds, sorted
func (r *Registry) Kinds() []string {
	return append([]string(nil), r.kinds...)
}

// APIs returns the built-in API group/versions in table order
func (r *Registry) APIs() []types.APIGroupVersion {
	return append([]types.APIGroupVersion(nil), r.apis...)
}

func builtinKinds() []Entry {
	return []Entry{
		// core/v1
		{Kind: "Pod", GroupVersion: "v1", Namespaced: true},
		{Kind: "Service", GroupVersion: "v1", Namespaced: true},
		{Kind: "ReplicationController", GroupVersion: "v1", Namespaced: true},
		{Kind: "Namespace", GroupVersion: "v1"},
		{Kind: "Node", GroupVersion: "v1"},
		{Kind: "ConfigMap", GroupVersion: "v1", Namespaced: true},
		{Kind: "Secret", GroupVersion: "v1", Namespaced: true},
		{Kind: "PersistentVolume", GroupVersion: "v1"},
		{Kind: "PersistentVolumeClaim", GroupVersion: "v1", Namespaced: true},
		{Kind: "ServiceAccount", GroupVersion: "v1", Namespaced: true},
		{Kind: "Endpoints", GroupVersion: "v1", Plural: "endpoints", Namespaced: true},
		{Kind: "Event", GroupVersion: "v1", Namespaced: true},
		{Kind: "LimitRange", GroupVersion: "v1", Namespaced: true},
		{Kind: "ResourceQuota", GroupVersion: "v1", Namespaced: true},
		{Kind: "PodTemplate", GroupVersion: "v1", Namespaced: true},

		// apps/v1
		{Kind: "Deployment", GroupVersion: "apps/v1", Namespaced: true},
		{Kind: "StatefulSet", GroupVersion: "apps/v1", Namespaced: true},
		{Kind: "DaemonSet", GroupVersion: "apps/v1", Namespaced: true},
		{Kind: "ReplicaSet", GroupVersion: "apps/v1", Namespaced: true},
		{Kind: "ControllerRevision", GroupVersion: "apps/v1", Namespaced: true},

		// batch/v1
		{Kind: "Job", GroupVersion: "batch/v1", Namespaced: true},
		{Kind: "CronJob", GroupVersion: "batch/v1", Namespaced: true},

		{Kind: "HorizontalPodAutoscaler", GroupVersion: "autoscaling/v2", Namespaced: true},

		// networking.k8s.io/v1
		{Kind: "Ingress", GroupVersion: "networking.k8s.io/v1", Plural: "ingresses", Namespaced: true},
		{Kind: "IngressClass", GroupVersion: "networking.k8s.io/v1", Plural: "ingressclasses"},
		{Kind: "NetworkPolicy", GroupVersion: "networking.k8s.io/v1", Plural: "networkpolicies", Namespaced: true},

		// rbac.authorization.k8s.io/v1
		{Kind: "Role", GroupVersion: "rbac.authorization.k8s.io/v1", Namespaced: true},
		{Kind: "ClusterRole", GroupVersion: "rbac.authorization.k8s.io/v1"},
		{Kind: "RoleBinding", GroupVersion: "rbac.authorization.k8s.io/v1", Namespaced: true},
		{Kind: "ClusterRoleBinding", GroupVersion: "rbac.authorization.k8s.io/v1"},

		// storage.k8s.io/v1
		{Kind: "StorageClass", GroupVersion: "storage.k8s.io/v1", Plural: "storageclasses"},
		{Kind: "CSIDriver", GroupVersion: "storage.k8s.io/v1"},
		{Kind: "CSINode", GroupVersion: "storage.k8s.io/v1"},
		{Kind: "VolumeAttachment", GroupVersion: "storage.k8s.io/v1"},

		{Kind: "PodDisruptionBudget", GroupVersion: "policy/v1", Namespaced: true},
		{Kind: "CustomResourceDefinition", GroupVersion: "apiextensions.k8s.io/v1"},
		{Kind: "MutatingWebhookConfiguration", GroupVersion: "admissionregistration.k8s.io/v1"},
		{Kind: "ValidatingWebhookConfiguration", GroupVersion: "admissionregistration.k8s.io/v1"},
		{Kind: "APIService", GroupVersion: "apiregistration.k8s.io/v1"},
		{Kind: "CertificateSigningRequest", GroupVersion: "certificates.k8s.io/v1"},
		{Kind: "Lease", GroupVersion: "coordination.k8s.io/v1", Namespaced: true},
		{Kind: "EndpointSlice", GroupVersion: "discovery.k8s.io/v1", Namespaced: true},
		{Kind: "PriorityClass", GroupVersion: "scheduling.k8s.io/v1", Plural: "priorityclasses"},
		{Kind: "RuntimeClass", GroupVersion: "node.k8s.io/v1", Plural: "runtimeclasses"},
		{Kind: "FlowSchema", GroupVersion: "flowcontrol.apiserver.k8s.io/v1"},
		{Kind: "PriorityLevelConfiguration", GroupVersion: "flowcontrol.apiserver.k8s.io/v1"},
	}
}

func builtinAPIs() []types.APIGroupVersion {
	return []types.APIGroupVersion{
		types.NewAPIGroupVersion("", "v1"),
		types.NewAPIGroupVersion("apps", "v1"),
		types.NewAPIGroupVersion("batch", "v1"),
		types.NewAPIGroupVersion("autoscaling", "v1"),
		types.NewAPIGroupVersion("autoscaling", "v2"),
		types.NewAPIGroupVersion("networking.k8s.io", "v1"),
		types.NewAPIGroupVersion("rbac.authorization.k8s.io", "v1"),
		types.NewAPIGroupVersion("storage.k8s.io", "v1"),
		types.NewAPIGroupVersion("policy", "v1"),
		types.NewAPIGroupVersion("apiextensions.k8s.io", "v1"),
		types.NewAPIGroupVersion("admissionregistration.k8s.io", "v1"),
		types.NewAPIGroupVersion("apiregistration.k8s.io", "v1"),
		types.NewAPIGroupVersion("certificates.k8s.io", "v1"),
		types.NewAPIGroupVersion("coordination.k8s.io", "v1"),
		types.NewAPIGroupVersion("discovery.k8s.io", "v1"),
		types.NewAPIGroupVersion("events.k8s.io", "v1"),
		types.NewAPIGroupVersion("node.k8s.io", "v1"),
		types.NewAPIGroupVersion("scheduling.k8s.io", "v1"),
		types.NewAPIGroupVersion("flowcontrol.apiserver.k8s.io", "v1"),
		types.NewAPIGroupVersion("authentication.k8s.io", "v1"),
		types.NewAPIGroupVersion("authorization.k8s.io", "v1"),
	}
}
