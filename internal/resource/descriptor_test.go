package resource

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
)

func manifest(object map[string]interface{}) *unstructured.Unstructured {
	return &unstructured.Unstructured{Object: object}
}

func TestResolver_ResolveManifest_CoreKinds(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())

	for _, kind := range resolver.Registry().Kinds() {
		entry, _ := resolver.Registry().Lookup(kind)
		if !entry.Core() {
			continue
		}
		coords, err := resolver.ResolveManifest(manifest(map[string]interface{}{
			"kind":       kind,
			"apiVersion": "v1",
			"metadata":   map[string]interface{}{},
		}))
		require.NoError(t, err, kind)
		assert.Empty(t, coords.APIGroup, kind)
		assert.Equal(t, "v1", coords.APIVersion, kind)
		assert.Equal(t, "v1", coords.APIGroupVersion, kind)
	}
}

func TestResolver_ResolveManifest(t *testing.T) {
	tests := []struct {
		name     string
		object   map[string]interface{}
		expected Coordinates
	}{
		{
			name: "namespaced deployment",
			object: map[string]interface{}{
				"apiVersion": "apps/v1",
				"kind":       "Deployment",
				"metadata": map[string]interface{}{
					"name":      "web",
					"namespace": "shop",
				},
			},
			expected: Coordinates{
				APIGroup:        "apps",
				APIVersion:      "v1",
				APIGroupVersion: "apps/v1",
				Kind:            "Deployment",
				Plural:          "deployments",
				Namespace:       "shop",
				Name:            "web",
			},
		},
		{
			name: "registry overrides group of core kind",
			object: map[string]interface{}{
				"apiVersion": "example.com/v1",
				"kind":       "Pod",
			},
			expected: Coordinates{
				APIVersion:      "v1",
				APIGroupVersion: "v1",
				Kind:            "Pod",
				Plural:          "pods",
			},
		},
		{
			name: "custom kind keeps its group",
			object: map[string]interface{}{
				"apiVersion": "stable.example.com/v1",
				"kind":       "CronTab",
				"metadata": map[string]interface{}{
					"name": "my-new-cron-object",
				},
			},
			expected: Coordinates{
				APIGroup:        "stable.example.com",
				APIVersion:      "v1",
				APIGroupVersion: "stable.example.com/v1",
				Kind:            "CronTab",
				Plural:          "crontabs",
				Name:            "my-new-cron-object",
			},
		},
		{
			name: "irregular plural from registry",
			object: map[string]interface{}{
				"apiVersion": "networking.k8s.io/v1",
				"kind":       "Ingress",
			},
			expected: Coordinates{
				APIGroup:        "networking.k8s.io",
				APIVersion:      "v1",
				APIGroupVersion: "networking.k8s.io/v1",
				Kind:            "Ingress",
				Plural:          "ingresses",
			},
		},
		{
			name: "non-string metadata is ignored",
			object: map[string]interface{}{
				"apiVersion": "v1",
				"kind":       "ConfigMap",
				"metadata": map[string]interface{}{
					"name":      42,
					"namespace": true,
				},
			},
			expected: Coordinates{
				APIVersion:      "v1",
				APIGroupVersion: "v1",
				Kind:            "ConfigMap",
				Plural:          "configmaps",
			},
		},
	}

	resolver := NewResolver(DefaultRegistry())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coords, err := resolver.ResolveManifest(manifest(tt.object))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, coords)
		})
	}
}

func TestResolver_ResolveManifest_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		object map[string]interface{}
		field  string
	}{
		{
			name:   "missing apiVersion",
			object: map[string]interface{}{"kind": "Pod"},
			field:  "apiVersion",
		},
		{
			name:   "empty apiVersion",
			object: map[string]interface{}{"kind": "Pod", "apiVersion": ""},
			field:  "apiVersion",
		},
		{
			name:   "missing kind",
			object: map[string]interface{}{"apiVersion": "v1"},
			field:  "kind",
		},
		{
			name:   "non-string kind",
			object: map[string]interface{}{"apiVersion": "v1", "kind": 7},
			field:  "kind",
		},
		{
			name:   "empty kind",
			object: map[string]interface{}{"apiVersion": "v1", "kind": ""},
			field:  "kind",
		},
	}

	resolver := NewResolver(DefaultRegistry())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolver.ResolveManifest(manifest(tt.object))
			require.Error(t, err)
			assert.True(t, IsValidation(err))

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	_, err := resolver.ResolveManifest(nil)
	assert.True(t, IsValidation(err))
}

func TestResolver_ResolveManifest_Idempotent(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())
	obj := manifest(map[string]interface{}{
		"apiVersion": "batch/v1",
		"kind":       "Job",
		"metadata": map[string]interface{}{
			"name":      "backup",
			"namespace": "ops",
		},
	})

	first, err := resolver.ResolveManifest(obj)
	require.NoError(t, err)
	second, err := resolver.ResolveManifest(obj)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, "batch/v1", obj.GetAPIVersion())
}

func TestResolver_ResolveRef(t *testing.T) {
	resolver := NewResolver(DefaultRegistry())

	t.Run("registered kind matches manifest form", func(t *testing.T) {
		fromRef, err := resolver.ResolveRef("Pod")
		require.NoError(t, err)
		fromManifest, err := resolver.ResolveManifest(manifest(map[string]interface{}{
			"kind":       "Pod",
			"apiVersion": "v1",
		}))
		require.NoError(t, err)
		assert.Equal(t, fromManifest, fromRef)
	})

	t.Run("group version kind", func(t *testing.T) {
		for _, ref := range []string{"stable.example.com/v1:CronTab", "apps/v1:Deployment", "example.io/v1beta1:Widget"} {
			coords, err := resolver.ResolveRef(ref)
			require.NoError(t, err, ref)

			groupVersion, kind, _ := strings.Cut(ref, ":")
			assert.Equal(t, groupVersion, coords.APIGroupVersion, ref)
			assert.Equal(t, kind, coords.Kind, ref)
		}
	})

	t.Run("core version kind", func(t *testing.T) {
		coords, err := resolver.ResolveRef("v1:Secret")
		require.NoError(t, err)
		assert.Empty(t, coords.APIGroup)
		assert.Equal(t, "secrets", coords.Plural)
	})

	t.Run("unknown kind without separator", func(t *testing.T) {
		_, err := resolver.ResolveRef("Deploy")
		require.Error(t, err)
		assert.True(t, IsNotFound(err))

		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "Deploy", nf.Ref)
		assert.Contains(t, nf.Suggestions, "Deployment")
		assert.Contains(t, err.Error(), `"Deploy"`)
	})

	t.Run("too many separators", func(t *testing.T) {
		_, err := resolver.ResolveRef("a/v1:B:C")
		assert.True(t, IsNotFound(err))
	})

	t.Run("empty kind", func(t *testing.T) {
		_, err := resolver.ResolveRef("apps/v1:")
		assert.True(t, IsValidation(err))
	})
}
