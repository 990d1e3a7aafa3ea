package identity

import (
	"math"
	"sort"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// A bare-token hit ("Jon" inside "Jon Smith") is strong evidence but not a
// full-name confirmation, so the token pass never reaches the unique range.
const partialTokenScale = 0.9

// Similarity scores a query name against a stored name on a 0-100 scale.
// Jaro-Winkler over the token-sorted full strings tolerates swapped word
// order ("Doe Jane"); the damped per-token pass lets a bare first name
// ("Jon") reach profiles like "Jon Smith" and "Jonathan Lee".
func Similarity(query, candidate string) float64 {
	q := normalizeName(query)
	c := normalizeName(candidate)
	if q == "" || c == "" {
		return 0
	}
	if q == c {
		return 100
	}

	jw := metrics.NewJaroWinkler()
	best := strutil.Similarity(sortTokens(q), sortTokens(c), jw)
	for _, tok := range strings.Fields(c) {
		if s := strutil.Similarity(q, tok, jw) * partialTokenScale; s > best {
			best = s
		}
	}
	return math.Round(best*10000) / 100
}

func normalizeName(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
