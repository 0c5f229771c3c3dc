package gazetteer

import (
	"fmt"
	"sort"
	"strings"
)

// AggregateGazetteer folds every category's entries and tokens into two
// shared tries, annotating each stored string with the sorted set of
// categories it belongs to. It answers the cross-category questions: how
// close is this phrase to any known name, and which categories does the
// closest name belong to. Read-only after construction.
type AggregateGazetteer struct {
	entriesTrie *Trie
	tokensTrie  *Trie

	// entryCategories and tokenCategories hold, per stored string, the
	// categories it appears under, sorted once after loading so rendered
	// type strings are deterministic.
	entryCategories map[string][]string
	tokenCategories map[string][]string

	norm normalizer
	cfg  *Config
}

// NewAggregateGazetteer builds the merged view from a category to source
// path mapping. Categories are loaded in sorted order; a failure on any
// file aborts the whole construction.
func NewAggregateGazetteer(sources map[string]string, opts ...Option) (*AggregateGazetteer, error) {
	cfg := applyOptions(opts)
	a := &AggregateGazetteer{
		entriesTrie:     NewTrie(),
		tokensTrie:      NewTrie(),
		entryCategories: make(map[string][]string),
		tokenCategories: make(map[string][]string),
		norm:            normalizer{fold: cfg.FoldDiacritics},
		cfg:             cfg,
	}

	categories := sortedKeys(sources)

	entrySets := make(map[string]map[string]struct{})
	tokenSets := make(map[string]map[string]struct{})

	for _, category := range categories {
		err := eachSourceLine(sources[category], a.norm, func(fields []string) {
			for _, field := range fields {
				a.entriesTrie.Insert(field)
				addCategory(entrySets, field, category)
				for _, token := range strings.Fields(field) {
					a.tokensTrie.Insert(token)
					addCategory(tokenSets, token, category)
				}
			}
		})
		if err != nil {
			return nil, fmt.Errorf("loading aggregate gazetteer %q: %w", category, err)
		}
	}

	a.entryCategories = sortCategorySets(entrySets)
	a.tokenCategories = sortCategorySets(tokenSets)
	return a, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func addCategory(sets map[string]map[string]struct{}, key, category string) {
	set, ok := sets[key]
	if !ok {
		set = make(map[string]struct{})
		sets[key] = set
	}
	set[category] = struct{}{}
}

func sortCategorySets(sets map[string]map[string]struct{}) map[string][]string {
	out := make(map[string][]string, len(sets))
	for key, set := range sets {
		categories := make([]string, 0, len(set))
		for category := range set {
			categories = append(categories, category)
		}
		sort.Strings(categories)
		out[key] = categories
	}
	return out
}

// MinimumDistanceToEntry returns the length-normalized distance from
// phrase to the nearest entry of any category, or NoMatch.
func (a *AggregateGazetteer) MinimumDistanceToEntry(phrase string) float64 {
	return minimumDistance(a.entriesTrie, a.norm.normalize(phrase))
}

// MinimumDistanceToToken returns the length-normalized distance from
// phrase to the nearest token of any category, or NoMatch.
func (a *AggregateGazetteer) MinimumDistanceToToken(phrase string) float64 {
	return minimumDistance(a.tokensTrie, a.norm.normalize(phrase))
}

// ClosestEntryTypes finds the entry nearest to phrase within the edit
// budget and renders its categories sorted and joined with "_", e.g.
// "characters_parks". Returns None when nothing matches or the matched
// entry has no recorded categories.
func (a *AggregateGazetteer) ClosestEntryTypes(phrase string) string {
	return a.closestTypes(a.entriesTrie, a.entryCategories, phrase)
}

// ClosestTokenTypes is ClosestEntryTypes over the token index.
func (a *AggregateGazetteer) ClosestTokenTypes(phrase string) string {
	return a.closestTypes(a.tokensTrie, a.tokenCategories, phrase)
}

func (a *AggregateGazetteer) closestTypes(t *Trie, categories map[string][]string, phrase string) string {
	q := a.norm.normalize(phrase)
	best, ok := bestResult(searchWithinBudget(t, q))
	if !ok {
		return None
	}
	matched := categories[best.Word]
	if len(matched) == 0 {
		return None
	}
	return strings.Join(matched, "_")
}

// EntryCount and TokenCount report the sizes of the merged tries.
func (a *AggregateGazetteer) EntryCount() int { return a.entriesTrie.Len() }

func (a *AggregateGazetteer) TokenCount() int { return a.tokensTrie.Len() }
