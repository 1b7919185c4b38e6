package argv

import "github.com/dzonerzy/go-argv/internal/fuzzy"

// suggest keeps the candidates within half the offending token's length in
// edit distance, preserving candidate order
func suggest(offending string, candidates []string) []string {
	return fuzzy.Suggest(offending, candidates)
}
