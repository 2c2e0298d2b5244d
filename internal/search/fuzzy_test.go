package search

import (
	"testing"

	"github.com/pteich/kubeq/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestMatchAPIResources(t *testing.T) {
	resources := []types.APIResource{
		{GroupVersion: "v1", Kind: "Pod", Plural: "pods", Namespaced: true},
		{GroupVersion: "apps/v1", Kind: "Deployment", Plural: "deployments", Namespaced: true},
		{GroupVersion: "cert-manager.io/v1", Kind: "Certificate", Plural: "certificates", Namespaced: true},
	}

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"empty query", "", []string{"Pod", "Deployment", "Certificate"}},
		{"by kind", "deploy", []string{"Deployment"}},
		{"by group", "cert-manager", []string{"Certificate"}},
		{"case insensitive", "POD", []string{"Pod"}},
		{"no match", "zzz", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var kinds []string
			for _, r := range MatchAPIResources(tt.query, resources) {
				kinds = append(kinds, r.Kind)
			}
			assert.Equal(t, tt.expected, kinds)
		})
	}
}

func TestSuggestKinds(t *testing.T) {
	kinds := []string{"Pod", "Deployment", "DaemonSet", "Service"}

	assert.Equal(t, []string{"Deployment"}, SuggestKinds("deploy", kinds))
	assert.Empty(t, SuggestKinds("", kinds))
	assert.Empty(t, SuggestKinds("xyz", kinds))
}
