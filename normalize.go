package gazetteer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizer canonicalizes strings before they enter a trie or a query.
// Lower-casing is always applied; diacritic folding is opt-in so that the
// default behavior is plain case-insensitive matching.
type normalizer struct {
	fold bool
}

// foldTransformer strips combining marks: decompose, drop Mn runes,
// recompose.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func (n normalizer) normalize(s string) string {
	if n.fold {
		if folded, _, err := transform.String(foldTransformer, s); err == nil {
			s = folded
		}
	}
	return strings.ToLower(s)
}
