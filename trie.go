package gazetteer

import "sort"

// trieNode is one node of a rune-keyed prefix tree. A node stores the full
// word it terminates; non-terminal nodes keep word empty.
type trieNode struct {
	children map[rune]*trieNode
	word     string
}

// Trie is a prefix tree over runes supporting idempotent insertion and
// bounded edit-distance search. It is built once at load time and is safe
// for concurrent readers only because nothing mutates it afterwards.
type Trie struct {
	root *trieNode
	size int
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return &Trie{root: &trieNode{children: make(map[rune]*trieNode)}}
}

// Insert stores word in the trie. Words sharing a prefix share the
// corresponding node path. Inserting a word that is already present is a
// no-op. The empty string is ignored.
func (t *Trie) Insert(word string) {
	if word == "" {
		return
	}
	node := t.root
	for _, r := range word {
		child, ok := node.children[r]
		if !ok {
			child = &trieNode{children: make(map[rune]*trieNode)}
			node.children[r] = child
		}
		node = child
	}
	if node.word == "" {
		t.size++
	}
	node.word = word
}

// Len returns the number of distinct words stored.
func (t *Trie) Len() int { return t.size }

// SearchResult pairs a stored word with its Levenshtein distance to the
// query it was found for.
type SearchResult struct {
	Word     string
	Distance int
}

// searchFrame is one pending node of the iterative trie walk, carrying the
// dynamic-programming row for the path from the root to that node.
type searchFrame struct {
	node *trieNode
	row  []int
}

// Search returns every stored word whose Levenshtein distance to query is
// at most maxCost. Result order follows the traversal (children visited in
// ascending rune order); callers needing a single winner use bestResult.
//
// Along each root-to-node path one DP row of length len(query)+1 is kept,
// where row[j] is the edit distance between the path label and the first j
// runes of the query. A subtree is skipped entirely once the minimum of its
// row exceeds maxCost, which keeps the walk proportional to the size of the
// edit-distance ball rather than the trie. The walk uses an explicit stack
// so pathological word lengths cannot exhaust goroutine stack space.
func (t *Trie) Search(query string, maxCost int) []SearchResult {
	q := []rune(query)
	cols := len(q) + 1

	row := make([]int, cols)
	for j := range row {
		row[j] = j
	}

	var results []SearchResult
	stack := []searchFrame{{node: t.root, row: row}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		last := f.row[cols-1]
		if f.node.word != "" && last <= maxCost {
			results = append(results, SearchResult{Word: f.node.word, Distance: last})
		}

		if minOf(f.row) > maxCost {
			continue
		}

		// Push in descending rune order so the stack pops ascending.
		for _, r := range childRunesDesc(f.node) {
			stack = append(stack, searchFrame{
				node: f.node.children[r],
				row:  nextRow(f.row, r, q),
			})
		}
	}
	return results
}

// nextRow derives the DP row for a child edge labeled c from its parent's
// row, using the standard Levenshtein recurrence.
func nextRow(prev []int, c rune, query []rune) []int {
	cur := make([]int, len(prev))
	cur[0] = prev[0] + 1
	for j := 1; j < len(prev); j++ {
		insertCost := cur[j-1] + 1
		deleteCost := prev[j] + 1
		substCost := prev[j-1]
		if query[j-1] != c {
			substCost++
		}
		cur[j] = min3(insertCost, deleteCost, substCost)
	}
	return cur
}

func childRunesDesc(n *trieNode) []rune {
	rs := make([]rune, 0, len(n.children))
	for r := range n.children {
		rs = append(rs, r)
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i] > rs[j] })
	return rs
}

func minOf(row []int) int {
	m := row[0]
	for _, v := range row[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

// bestResult picks the winner among search results: smallest distance,
// ties broken by the lexicographically smallest word. This replaces the
// traversal-order tie-breaking a recursive walk would exhibit with a rule
// that is stable across runs.
func bestResult(results []SearchResult) (SearchResult, bool) {
	if len(results) == 0 {
		return SearchResult{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.Distance < best.Distance ||
			(r.Distance == best.Distance && r.Word < best.Word) {
			best = r
		}
	}
	return best, true
}
