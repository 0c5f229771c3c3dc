// Command gazetteer loads one or more category name lists and answers
// fuzzy-match queries against them, either one-off (query, stats) or as a
// stream annotator emitting feature strings per token (annotate).
//
// Usage:
//
//	gazetteer --config gazetteers.toml query mickeey
//	echo "mickey visited the safari" | gazetteer --config gazetteers.toml annotate
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
