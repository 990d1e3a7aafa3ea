// Package identity resolves free-text person names against the profile store
// with a two-threshold fuzzy scheme: candidates at or above the base cutoff
// survive, and a single candidate above the unique cutoff wins outright.
package identity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dewansh3255/SPARK/internal/profilestore"
)

// Verdict classifies the outcome of a name resolution.
type Verdict int

const (
	NoMatch Verdict = iota
	Unique
	Ambiguous
)

// Match couples a candidate profile with its similarity score (0-100).
type Match struct {
	Profile profilestore.Profile
	Score   float64
}

// Resolution is the full outcome of resolving a name. Unique carries exactly
// one candidate; Ambiguous carries every surviving candidate, best first.
type Resolution struct {
	Verdict    Verdict
	Candidates []Match
}

// Directory is the slice of the profile store the resolver needs.
type Directory interface {
	ProfileNames(ctx context.Context) ([]profilestore.ProfileRef, error)
	ProfilesByID(ctx context.Context, ids []int64) ([]profilestore.Profile, error)
}

// Resolver scores stored names against a query string.
type Resolver struct {
	dir          Directory
	baseCutoff   float64
	uniqueCutoff float64
}

// NewResolver builds a Resolver with the given cutoffs; non-positive values
// fall back to the defaults (80 base, 95 unique).
func NewResolver(dir Directory, baseCutoff, uniqueCutoff float64) *Resolver {
	if baseCutoff <= 0 {
		baseCutoff = 80
	}
	if uniqueCutoff <= 0 {
		uniqueCutoff = 95
	}
	return &Resolver{dir: dir, baseCutoff: baseCutoff, uniqueCutoff: uniqueCutoff}
}

// Resolve scores every stored name against the query. Ties are broken by
// profile id, so repeated calls with the same store state agree.
func (r *Resolver) Resolve(ctx context.Context, name string) (Resolution, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Resolution{Verdict: NoMatch}, nil
	}

	refs, err := r.dir.ProfileNames(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("listing profile names: %w", err)
	}

	type scored struct {
		id    int64
		score float64
	}
	var survivors []scored
	for _, ref := range refs {
		if s := Similarity(name, ref.FullName); s >= r.baseCutoff {
			survivors = append(survivors, scored{id: ref.ID, score: s})
		}
	}
	if len(survivors) == 0 {
		return Resolution{Verdict: NoMatch}, nil
	}

	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].score != survivors[j].score {
			return survivors[i].score > survivors[j].score
		}
		return survivors[i].id < survivors[j].id
	})

	// A confident top score settles the question even with runners-up.
	if survivors[0].score > r.uniqueCutoff {
		survivors = survivors[:1]
	}

	ids := make([]int64, len(survivors))
	for i, s := range survivors {
		ids[i] = s.id
	}
	profiles, err := r.dir.ProfilesByID(ctx, ids)
	if err != nil {
		return Resolution{}, fmt.Errorf("fetching candidate profiles: %w", err)
	}
	byID := make(map[int64]profilestore.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	matches := make([]Match, 0, len(survivors))
	for _, s := range survivors {
		p, ok := byID[s.id]
		if !ok {
			continue
		}
		matches = append(matches, Match{Profile: p, Score: s.score})
	}
	if len(matches) == 0 {
		return Resolution{Verdict: NoMatch}, nil
	}

	verdict := Ambiguous
	if len(matches) == 1 {
		verdict = Unique
	}
	return Resolution{Verdict: verdict, Candidates: matches}, nil
}
