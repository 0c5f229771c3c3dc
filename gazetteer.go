// Package gazetteer answers whether a string, or a near-misspelling of it,
// is a known entity name, and of which category. Names come from curated
// plain-text lists ("gazetteers"): one entity per line, comma-separated
// fields, first field the canonical name and the rest synonyms. All matching
// is case-insensitive; fuzzy queries run a bounded Levenshtein search over
// prefix tries with an edit budget of 30% of the query length.
//
// Everything is built eagerly at construction and is read-only afterwards,
// so an already-built Gazetteer or AggregateGazetteer may be shared across
// goroutines. The Cache is not safe for concurrent use; each worker that
// wants memoization owns its own instance.
package gazetteer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	// NoMatch is the sentinel distance ratio returned when no stored string
	// falls within the edit budget.
	NoMatch = 1.0

	// None is the sentinel returned by the Closest* operations when nothing
	// matched within budget.
	None = "NONE"

	// distancePercentage sets the edit budget relative to query length:
	// max(1, floor(0.30 * runes)).
	distancePercentage = 0.30
)

// Config holds construction options shared by Gazetteer and
// AggregateGazetteer.
type Config struct {
	// FoldDiacritics strips combining marks at load and query time, so
	// "Chloé" and "Chloe" collide. Off by default.
	FoldDiacritics bool

	// CacheSize is the capacity handed to Cache instances created for
	// feature generators built on top of this gazetteer.
	CacheSize int
}

// Option is a functional option for gazetteer construction.
type Option func(*Config)

// WithDiacriticFolding enables Unicode diacritic folding during
// normalization.
func WithDiacriticFolding() Option {
	return func(c *Config) { c.FoldDiacritics = true }
}

// WithCacheSize sets the memoization cache capacity used by feature
// generators.
func WithCacheSize(n int) Option {
	return func(c *Config) { c.CacheSize = n }
}

func defaultConfig() *Config {
	return &Config{CacheSize: defaultCacheSize}
}

func applyOptions(opts []Option) *Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Gazetteer holds one category's name list: official names, every
// comma-separated synonym, and the whitespace-split tokens of each, all
// indexed for exact and bounded fuzzy lookup. Read-only after construction.
type Gazetteer struct {
	category string

	officialNames map[string]struct{}
	synonyms      map[string]struct{}

	officialNamesTrie *Trie
	synonymsTrie      *Trie
	tokensTrie        *Trie

	// synonymToOfficial maps every field back to the first field of its
	// line. tokenPosition maps a token to its zero-based position within
	// the field it was parsed from. Both keep the value from the most
	// recently processed line when a synonym or token recurs; that
	// precedence is inherited data behavior, deliberately preserved.
	synonymToOfficial map[string]string
	tokenPosition     map[string]int

	norm normalizer
	cfg  *Config
}

// NewGazetteer reads the source file at path and builds the category's
// tries and maps in one pass. A missing or unreadable file is fatal; there
// is no partial load. Blank lines are skipped.
func NewGazetteer(category, path string, opts ...Option) (*Gazetteer, error) {
	cfg := applyOptions(opts)
	g := &Gazetteer{
		category:          category,
		officialNames:     make(map[string]struct{}),
		synonyms:          make(map[string]struct{}),
		officialNamesTrie: NewTrie(),
		synonymsTrie:      NewTrie(),
		tokensTrie:        NewTrie(),
		synonymToOfficial: make(map[string]string),
		tokenPosition:     make(map[string]int),
		norm:              normalizer{fold: cfg.FoldDiacritics},
		cfg:               cfg,
	}
	if err := eachSourceLine(path, g.norm, g.addLine); err != nil {
		return nil, fmt.Errorf("loading gazetteer %q: %w", category, err)
	}
	return g, nil
}

// addLine indexes one parsed source line. fields[0] is the canonical name.
func (g *Gazetteer) addLine(fields []string) {
	canonical := fields[0]
	g.officialNames[canonical] = struct{}{}
	g.officialNamesTrie.Insert(canonical)

	for _, field := range fields {
		g.synonyms[field] = struct{}{}
		g.synonymsTrie.Insert(field)
		g.synonymToOfficial[field] = canonical
		for i, token := range strings.Fields(field) {
			g.tokensTrie.Insert(token)
			g.tokenPosition[token] = i
		}
	}
}

// Category returns the label this gazetteer was built under.
func (g *Gazetteer) Category() string { return g.category }

// ContainsAsOfficialName reports whether phrase is one of the canonical
// names, case-insensitively.
func (g *Gazetteer) ContainsAsOfficialName(phrase string) bool {
	_, ok := g.officialNames[g.norm.normalize(phrase)]
	return ok
}

// ContainsAsSynonym reports whether phrase is any loaded name variant,
// canonical names included.
func (g *Gazetteer) ContainsAsSynonym(phrase string) bool {
	_, ok := g.synonyms[g.norm.normalize(phrase)]
	return ok
}

// MinimumDistanceToOfficialName returns the smallest edit distance from
// phrase to any canonical name, normalized by the phrase's rune length.
// Returns NoMatch when nothing lies within the edit budget.
func (g *Gazetteer) MinimumDistanceToOfficialName(phrase string) float64 {
	return minimumDistance(g.officialNamesTrie, g.norm.normalize(phrase))
}

// MinimumDistanceToSynonym is MinimumDistanceToOfficialName over the full
// synonym list.
func (g *Gazetteer) MinimumDistanceToSynonym(phrase string) float64 {
	return minimumDistance(g.synonymsTrie, g.norm.normalize(phrase))
}

// MinimumDistanceToToken is MinimumDistanceToOfficialName over the
// single-word token index.
func (g *Gazetteer) MinimumDistanceToToken(phrase string) float64 {
	return minimumDistance(g.tokensTrie, g.norm.normalize(phrase))
}

// ClosestOfficialName finds the synonym nearest to phrase within the edit
// budget and resolves it to its canonical name. Ties go to the
// lexicographically smallest synonym. Returns None when nothing matches.
func (g *Gazetteer) ClosestOfficialName(phrase string) string {
	q := g.norm.normalize(phrase)
	best, ok := bestResult(searchWithinBudget(g.synonymsTrie, q))
	if !ok {
		return None
	}
	official, ok := g.synonymToOfficial[best.Word]
	if !ok {
		return None
	}
	return official
}

// ClosestToken returns the stored token nearest to phrase within the edit
// budget, or None.
func (g *Gazetteer) ClosestToken(phrase string) string {
	q := g.norm.normalize(phrase)
	best, ok := bestResult(searchWithinBudget(g.tokensTrie, q))
	if !ok {
		return None
	}
	return best.Word
}

// TokenPositionInName returns the zero-based position the token last
// occupied within a name field, or -1 if the token was never loaded.
func (g *Gazetteer) TokenPositionInName(token string) int {
	pos, ok := g.tokenPosition[g.norm.normalize(token)]
	if !ok {
		return -1
	}
	return pos
}

// maxDistanceFor derives the edit budget for a query of n runes.
func maxDistanceFor(n int) int {
	d := int(float64(n) * distancePercentage)
	if d < 1 {
		d = 1
	}
	return d
}

// searchWithinBudget runs the bounded search with the length-derived
// budget. A zero-length phrase never matches.
func searchWithinBudget(t *Trie, phrase string) []SearchResult {
	n := utf8.RuneCountInString(phrase)
	if n == 0 {
		return nil
	}
	return t.Search(phrase, maxDistanceFor(n))
}

// minimumDistance runs the bounded search and reports the best distance as
// a ratio of the phrase's rune length, in [0,1]. NoMatch when the search
// comes back empty, including for the zero-length phrase.
func minimumDistance(t *Trie, phrase string) float64 {
	best, ok := bestResult(searchWithinBudget(t, phrase))
	if !ok {
		return NoMatch
	}
	return float64(best.Distance) / float64(utf8.RuneCountInString(phrase))
}

// eachSourceLine streams one category source file: per line, normalize,
// split on commas, trim each field, and hand non-empty field lists to
// visit. Lines whose canonical field is empty are skipped as data hygiene,
// not reported as errors.
func eachSourceLine(path string, norm normalizer, visit func(fields []string)) error {
	fi, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer fi.Close()

	scanner := bufio.NewScanner(fi)
	scanner.Split(bufio.ScanLines)

	for scanner.Scan() {
		line := norm.normalize(scanner.Text())

		raw := strings.Split(line, ",")
		fields := make([]string, 0, len(raw))
		for _, f := range raw {
			if f = strings.TrimSpace(f); f != "" {
				fields = append(fields, f)
			}
		}
		if len(fields) == 0 {
			continue
		}
		visit(fields)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	return nil
}
