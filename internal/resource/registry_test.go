package resource

import (
	"testing"

	"github.com/pteich/kubeq/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	reg := DefaultRegistry()

	entry, ok := reg.Lookup("Deployment")
	require.True(t, ok)
	assert.Equal(t, "apps/v1", entry.GroupVersion)
	assert.Equal(t, "apps", entry.Group())
	assert.False(t, entry.Core())
	assert.True(t, entry.Namespaced)

	entry, ok = reg.Lookup("Namespace")
	require.True(t, ok)
	assert.True(t, entry.Core())
	assert.False(t, entry.Namespaced)

	_, ok = reg.Lookup("deployment")
	assert.False(t, ok, "lookup is case sensitive")
}

func TestRegistry_KindsSortedAndCopied(t *testing.T) {
	reg := DefaultRegistry()

	kinds := reg.Kinds()
	require.NotEmpty(t, kinds)
	assert.IsIncreasing(t, kinds)

	kinds[0] = "Mutated"
	assert.NotEqual(t, "Mutated", reg.Kinds()[0])
}

func TestRegistry_APIsStartWithCore(t *testing.T) {
	apis := DefaultRegistry().APIs()
	require.NotEmpty(t, apis)
	assert.Equal(t, types.APIGroupVersion{Version: "v1", Group: "", GroupVersion: "v1"}, apis[0])
	assert.Equal(t, "apps/v1", apis[1].GroupVersion)
}

func TestNewRegistry_FirstEntryWins(t *testing.T) {
	reg := NewRegistry([]Entry{
		{Kind: "Widget", GroupVersion: "example.com/v1"},
		{Kind: "Widget", GroupVersion: "example.com/v2"},
	}, nil)

	entry, ok := reg.Lookup("Widget")
	require.True(t, ok)
	assert.Equal(t, "example.com/v1", entry.GroupVersion)
	assert.Equal(t, []string{"Widget"}, reg.Kinds())
	assert.Empty(t, reg.APIs())
}

func TestCoordinates(t *testing.T) {
	coords := Coordinates{
		APIGroup:        "apps",
		APIVersion:      "v1",
		APIGroupVersion: "apps/v1",
		Kind:            "Deployment",
		Plural:          "deployments",
	}

	assert.True(t, coords.ClusterScoped())
	assert.Equal(t, "apps", coords.GroupVersionResource().Group)
	assert.Equal(t, "deployments", coords.GroupVersionResource().Resource)
	assert.Equal(t, "Deployment", coords.GroupVersionKind().Kind)

	scoped := coords.InNamespace("shop").WithName("web")
	assert.False(t, scoped.ClusterScoped())
	assert.Equal(t, "deployments.apps/web[shop]", scoped.String())
	assert.Empty(t, coords.Name, "copies do not mutate the receiver")
}

func TestSplitGroupVersion(t *testing.T) {
	tests := []struct {
		in      string
		group   string
		version string
	}{
		{"v1", "", "v1"},
		{"apps/v1", "apps", "v1"},
		{"a/b/c", "a", "b/c"},
	}
	for _, tt := range tests {
		group, version := splitGroupVersion(tt.in)
		assert.Equal(t, tt.group, group, tt.in)
		assert.Equal(t, tt.version, version, tt.in)
	}
}
