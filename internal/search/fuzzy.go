package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pteich/kubeq/internal/types"
)

// maxSuggestions caps the "did you mean" list
const maxSuggestions = 3

// MatchAPIResources filters discovered resource types using fuzzy search on
// Kind, plural name and group/version
func MatchAPIResources(query string, resources []types.APIResource) []types.APIResource {
	if query == "" {
		return resources
	}

	var matched []types.APIResource
	for _, res := range resources {
		if fuzzy.MatchFold(query, res.Kind) ||
			fuzzy.MatchFold(query, res.Plural) ||
			fuzzy.MatchFold(query, res.GroupVersion) {
			matched = append(matched, res)
		}
	}
	return matched
}

// SuggestKinds returns the kinds closest to term, best match first
func SuggestKinds(term string, kinds []string) []string {
	if term == "" {
		return nil
	}

	ranks := fuzzy.RankFindFold(term, kinds)
	sort.Stable(ranks)

	var suggestions []string
	for _, r := range ranks {
		suggestions = append(suggestions, r.Target)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}
