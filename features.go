package gazetteer

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is one word of a text window.
type Token struct {
	Word string
}

// Window is a span of consecutive tokens handed to the feature generators,
// typically a sentence or a sliding context around one.
type Window struct {
	Tokens []Token
}

// NewWindow builds a Window from plain words.
func NewWindow(words ...string) Window {
	tokens := make([]Token, len(words))
	for i, w := range words {
		tokens[i] = Token{Word: w}
	}
	return Window{Tokens: tokens}
}

// FeatureGenerator converts a window of tokens into labeled feature
// strings, one list per token. Each list may hold any number of features,
// each of the form "name=value". The strings feed an external sequence
// labeler; the exact names are part of the trained-model contract.
type FeatureGenerator interface {
	ConvertWindow(w Window) [][]string
}

// bucketizeMinimumDistance maps a normalized distance ratio in [0,1] onto
// 21 integer buckets so it can serve as a categorical feature.
func bucketizeMinimumDistance(v float64) int {
	return int(v * 20)
}

// ngrams returns every run of n consecutive tokens; empty when the window
// is shorter than n.
func ngrams(tokens []Token, n int) [][]Token {
	if n <= 0 || len(tokens) < n {
		return nil
	}
	out := make([][]Token, 0, len(tokens)-n+1)
	for i := 0; i+n <= len(tokens); i++ {
		out = append(out, tokens[i:i+n])
	}
	return out
}

func joinWords(tokens []Token) string {
	words := make([]string, len(tokens))
	for i, t := range tokens {
		words[i] = t.Word
	}
	return strings.Join(words, " ")
}

// perToken lifts a per-word feature function to a FeatureGenerator.
func perToken(w Window, f func(word string) string) [][]string {
	result := make([][]string, len(w.Tokens))
	for i, t := range w.Tokens {
		result[i] = []string{f(t.Word)}
	}
	return result
}

// StartsWithUppercaseFeature emits whether a token starts with an
// uppercase letter.
type StartsWithUppercaseFeature struct{}

func (StartsWithUppercaseFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		r, _ := utf8.DecodeRuneInString(word)
		return fmt.Sprintf("swu=%d", boolToInt(r != utf8.RuneError && unicode.IsUpper(r)))
	})
}

// TokenLengthFeature emits the rune length of a token, capped at
// MaxLength so feature cardinality stays bounded.
type TokenLengthFeature struct {
	MaxLength int
}

func NewTokenLengthFeature() TokenLengthFeature {
	return TokenLengthFeature{MaxLength: 30}
}

func (f TokenLengthFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		n := utf8.RuneCountInString(word)
		if n > f.MaxLength {
			n = f.MaxLength
		}
		return fmt.Sprintf("l=%d", n)
	})
}

var (
	regexpContainsDigits = regexp.MustCompile(`[0-9]+`)
	regexpOnlyDigits     = regexp.MustCompile(`^[0-9]+$`)
	regexpContainsPunct  = regexp.MustCompile(`[\.\,\:\;\(\)\[\]\?\!]+`)
	regexpOnlyPunct      = regexp.MustCompile(`^[\.\,\:\;\(\)\[\]\?\!]+$`)
	regexpAffixNonLetter = regexp.MustCompile(`[^a-zA-ZäöüÄÖÜß\.\,\!\?]`)
)

// ContainsDigitsFeature emits whether a token contains any digit.
type ContainsDigitsFeature struct{}

func (ContainsDigitsFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		return fmt.Sprintf("cD=%d", boolToInt(regexpContainsDigits.MatchString(word)))
	})
}

// ContainsPunctuationFeature emits whether a token contains punctuation.
type ContainsPunctuationFeature struct{}

func (ContainsPunctuationFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		return fmt.Sprintf("cP=%d", boolToInt(regexpContainsPunct.MatchString(word)))
	})
}

// OnlyDigitsFeature emits whether a token is digits only.
type OnlyDigitsFeature struct{}

func (OnlyDigitsFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		return fmt.Sprintf("oD=%d", boolToInt(regexpOnlyDigits.MatchString(word)))
	})
}

// OnlyPunctuationFeature emits whether a token is punctuation only.
type OnlyPunctuationFeature struct{}

func (OnlyPunctuationFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		return fmt.Sprintf("oP=%d", boolToInt(regexpOnlyPunct.MatchString(word)))
	})
}

// WordFeature emits the token itself.
type WordFeature struct{}

func (WordFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		return "word_feature=" + word
	})
}

// wordPatternSteps compresses a word to a coarse shape: uppercase runs to
// "A+", lowercase to "a+", digits stay per-digit so years keep their
// width, punctuation classes collapse, everything else becomes "#".
var wordPatternSteps = []struct {
	re *regexp.Regexp
	to string
}{
	{regexp.MustCompile(`[A-ZÄÖÜ]`), "A"},
	{regexp.MustCompile(`[a-zäöüß]`), "a"},
	{regexp.MustCompile(`[0-9]`), "9"},
	{regexp.MustCompile(`[\.\!\?\,\;]`), "."},
	{regexp.MustCompile(`[\(\)\[\]\{\}]`), "("},
	{regexp.MustCompile(`[^Aa9\.\(]`), "#"},
	{regexp.MustCompile(`[A]{2,}`), "A+"},
	{regexp.MustCompile(`[a]{2,}`), "a+"},
	{regexp.MustCompile(`[\.]{2,}`), ".+"},
	{regexp.MustCompile(`[\(]{2,}`), "(+"},
	{regexp.MustCompile(`[#]{2,}`), "#+"},
}

// WordPatternFeature emits the coarse shape of a token, e.g. "John" ->
// "Aa+", "DARPA" -> "A+", "2055" -> "9999".
type WordPatternFeature struct {
	MaxLength int
}

func NewWordPatternFeature() WordPatternFeature {
	return WordPatternFeature{MaxLength: 15}
}

func (f WordPatternFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		pattern := word
		for _, step := range wordPatternSteps {
			pattern = step.re.ReplaceAllString(pattern, step.to)
		}
		if runes := []rune(pattern); len(runes) > f.MaxLength {
			pattern = string(runes[:f.MaxLength]) + "~"
		}
		return "wp=" + pattern
	})
}

// PrefixFeature emits the first three characters of a token, with
// non-letter characters masked as "#".
type PrefixFeature struct{}

func (PrefixFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		runes := []rune(word)
		if len(runes) > 3 {
			runes = runes[:3]
		}
		return "pf=" + regexpAffixNonLetter.ReplaceAllString(string(runes), "#")
	})
}

// SuffixFeature emits the last three characters of a token, with
// non-letter characters masked as "#".
type SuffixFeature struct{}

func (SuffixFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		runes := []rune(word)
		if len(runes) > 3 {
			runes = runes[len(runes)-3:]
		}
		return "sf=" + regexpAffixNonLetter.ReplaceAllString(string(runes), "#")
	})
}

// GazetteerOfficialNameFeature emits per-category canonical-name
// membership.
type GazetteerOfficialNameFeature struct {
	G *Gazetteer
}

func (f GazetteerOfficialNameFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		return fmt.Sprintf("g_official_%s=%d", f.G.Category(), boolToInt(f.G.ContainsAsOfficialName(word)))
	})
}

// GazetteerSynonymFeature emits per-category synonym membership.
type GazetteerSynonymFeature struct {
	G *Gazetteer
}

func (f GazetteerSynonymFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		return fmt.Sprintf("g_synonym_%s=%d", f.G.Category(), boolToInt(f.G.ContainsAsSynonym(word)))
	})
}

// GazetteerMinimumDistanceTokenFeature emits the bucketized distance from
// a token to the category's nearest token, memoized because every trie
// search is expensive.
type GazetteerMinimumDistanceTokenFeature struct {
	g     *Gazetteer
	cache *Cache[int]
}

func NewGazetteerMinimumDistanceTokenFeature(g *Gazetteer) *GazetteerMinimumDistanceTokenFeature {
	return &GazetteerMinimumDistanceTokenFeature{g: g, cache: NewCache[int](g.cfg.CacheSize)}
}

func (f *GazetteerMinimumDistanceTokenFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		bucket, ok := f.cache.Lookup(word)
		if !ok {
			bucket = bucketizeMinimumDistance(f.g.MinimumDistanceToToken(word))
			f.cache.Set(word, bucket)
		}
		return fmt.Sprintf("g_token_distance_%s=%d", f.g.Category(), bucket)
	})
}

// GazetteerClosestTokenFeature emits the category's stored token closest
// to each window token.
type GazetteerClosestTokenFeature struct {
	g     *Gazetteer
	cache *Cache[string]
}

func NewGazetteerClosestTokenFeature(g *Gazetteer) *GazetteerClosestTokenFeature {
	return &GazetteerClosestTokenFeature{g: g, cache: NewCache[string](g.cfg.CacheSize)}
}

func (f *GazetteerClosestTokenFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		closest, ok := f.cache.Lookup(word)
		if !ok {
			closest = f.g.ClosestToken(word)
			f.cache.Set(word, closest)
		}
		return fmt.Sprintf("g_closest_%s=%s", f.g.Category(), closest)
	})
}

// GazetteerTokenPositionFeature emits the stored position of the closest
// token within its name, -1 when nothing matched.
type GazetteerTokenPositionFeature struct {
	g     *Gazetteer
	cache *Cache[int]
}

func NewGazetteerTokenPositionFeature(g *Gazetteer) *GazetteerTokenPositionFeature {
	return &GazetteerTokenPositionFeature{g: g, cache: NewCache[int](g.cfg.CacheSize)}
}

func (f *GazetteerTokenPositionFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		pos, ok := f.cache.Lookup(word)
		if !ok {
			pos = f.g.TokenPositionInName(f.g.ClosestToken(word))
			f.cache.Set(word, pos)
		}
		return fmt.Sprintf("g_token_position_%s=%d", f.g.Category(), pos)
	})
}

// AggregateMinimumDistanceTokenFeature emits the bucketized distance from
// a token to the nearest token of any category.
type AggregateMinimumDistanceTokenFeature struct {
	ag    *AggregateGazetteer
	cache *Cache[int]
}

func NewAggregateMinimumDistanceTokenFeature(ag *AggregateGazetteer) *AggregateMinimumDistanceTokenFeature {
	return &AggregateMinimumDistanceTokenFeature{ag: ag, cache: NewCache[int](ag.cfg.CacheSize)}
}

func (f *AggregateMinimumDistanceTokenFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		bucket, ok := f.cache.Lookup(word)
		if !ok {
			bucket = bucketizeMinimumDistance(f.ag.MinimumDistanceToToken(word))
			f.cache.Set(word, bucket)
		}
		return fmt.Sprintf("g_minimum_distance_token=%d", bucket)
	})
}

// AggregateMinimumDistanceEntryFeature emits the bucketized distance from
// a token to the nearest full entry of any category.
type AggregateMinimumDistanceEntryFeature struct {
	ag    *AggregateGazetteer
	cache *Cache[int]
}

func NewAggregateMinimumDistanceEntryFeature(ag *AggregateGazetteer) *AggregateMinimumDistanceEntryFeature {
	return &AggregateMinimumDistanceEntryFeature{ag: ag, cache: NewCache[int](ag.cfg.CacheSize)}
}

func (f *AggregateMinimumDistanceEntryFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		bucket, ok := f.cache.Lookup(word)
		if !ok {
			bucket = bucketizeMinimumDistance(f.ag.MinimumDistanceToEntry(word))
			f.cache.Set(word, bucket)
		}
		return fmt.Sprintf("g_minimum_distance_entry=%d", bucket)
	})
}

// AggregateClosestEntryTypesFeature emits the category set of the entry
// closest to each token.
type AggregateClosestEntryTypesFeature struct {
	ag    *AggregateGazetteer
	cache *Cache[string]
}

func NewAggregateClosestEntryTypesFeature(ag *AggregateGazetteer) *AggregateClosestEntryTypesFeature {
	return &AggregateClosestEntryTypesFeature{ag: ag, cache: NewCache[string](ag.cfg.CacheSize)}
}

func (f *AggregateClosestEntryTypesFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		types, ok := f.cache.Lookup(word)
		if !ok {
			types = f.ag.ClosestEntryTypes(word)
			f.cache.Set(word, types)
		}
		return "g_types_entry=" + types
	})
}

// AggregateClosestTokenTypesFeature emits the category set of the token
// closest to each window token.
type AggregateClosestTokenTypesFeature struct {
	ag    *AggregateGazetteer
	cache *Cache[string]
}

func NewAggregateClosestTokenTypesFeature(ag *AggregateGazetteer) *AggregateClosestTokenTypesFeature {
	return &AggregateClosestTokenTypesFeature{ag: ag, cache: NewCache[string](ag.cfg.CacheSize)}
}

func (f *AggregateClosestTokenTypesFeature) ConvertWindow(w Window) [][]string {
	return perToken(w, func(word string) string {
		types, ok := f.cache.Lookup(word)
		if !ok {
			types = f.ag.ClosestTokenTypes(word)
			f.cache.Set(word, types)
		}
		return "g_types_token=" + types
	})
}

// AggregateClosestTypesNGramFeature slides an n-token window over the
// tokens and emits the category set of the entry closest to each n-gram
// phrase. The trailing tokens that do not start a full n-gram are padded
// with the sentinel so every token still receives one feature.
type AggregateClosestTypesNGramFeature struct {
	ag    *AggregateGazetteer
	n     int
	cache *Cache[string]
}

func NewAggregateClosestTypesNGramFeature(ag *AggregateGazetteer, n int) *AggregateClosestTypesNGramFeature {
	return &AggregateClosestTypesNGramFeature{ag: ag, n: n, cache: NewCache[string](ag.cfg.CacheSize)}
}

func (f *AggregateClosestTypesNGramFeature) ConvertWindow(w Window) [][]string {
	grams := ngrams(w.Tokens, f.n)
	result := make([][]string, 0, len(w.Tokens))
	for _, gram := range grams {
		phrase := joinWords(gram)
		types, ok := f.cache.Lookup(phrase)
		if !ok {
			types = f.ag.ClosestEntryTypes(phrase)
			f.cache.Set(phrase, types)
		}
		result = append(result, []string{fmt.Sprintf("g_%dgram_types=%s", f.n, types)})
	}
	for i := len(grams); i < len(w.Tokens); i++ {
		result = append(result, []string{fmt.Sprintf("g_%dgram_types=%s", f.n, None)})
	}
	return result
}

// AggregateMinimumDistanceNGramFeature is the distance counterpart of
// AggregateClosestTypesNGramFeature, against full entries.
type AggregateMinimumDistanceNGramFeature struct {
	ag    *AggregateGazetteer
	n     int
	cache *Cache[int]
}

func NewAggregateMinimumDistanceNGramFeature(ag *AggregateGazetteer, n int) *AggregateMinimumDistanceNGramFeature {
	return &AggregateMinimumDistanceNGramFeature{ag: ag, n: n, cache: NewCache[int](ag.cfg.CacheSize)}
}

func (f *AggregateMinimumDistanceNGramFeature) ConvertWindow(w Window) [][]string {
	grams := ngrams(w.Tokens, f.n)
	result := make([][]string, 0, len(w.Tokens))
	for _, gram := range grams {
		phrase := joinWords(gram)
		bucket, ok := f.cache.Lookup(phrase)
		if !ok {
			bucket = bucketizeMinimumDistance(f.ag.MinimumDistanceToEntry(phrase))
			f.cache.Set(phrase, bucket)
		}
		result = append(result, []string{fmt.Sprintf("g_%dgram_distance=%d", f.n, bucket)})
	}
	for i := len(grams); i < len(w.Tokens); i++ {
		result = append(result, []string{fmt.Sprintf("g_%dgram_distance=%d", f.n, bucketizeMinimumDistance(NoMatch))})
	}
	return result
}

// CreateFeatures assembles the standard generator list over an aggregate
// view and its per-category gazetteers.
func CreateFeatures(ag *AggregateGazetteer, gazetteers []*Gazetteer) []FeatureGenerator {
	generators := []FeatureGenerator{
		StartsWithUppercaseFeature{},
		NewTokenLengthFeature(),
		ContainsDigitsFeature{},
		ContainsPunctuationFeature{},
		OnlyDigitsFeature{},
		OnlyPunctuationFeature{},
		NewWordPatternFeature(),
		PrefixFeature{},
		SuffixFeature{},
		WordFeature{},
		NewAggregateMinimumDistanceTokenFeature(ag),
		NewAggregateClosestTokenTypesFeature(ag),
	}
	for _, g := range gazetteers {
		generators = append(generators,
			GazetteerOfficialNameFeature{G: g},
			GazetteerSynonymFeature{G: g},
		)
	}
	return generators
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
