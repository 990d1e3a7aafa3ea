package identity

import (
	"context"
	"testing"

	"github.com/dewansh3255/SPARK/internal/profilestore"
)

type fakeDirectory struct {
	profiles []profilestore.Profile
}

func (d *fakeDirectory) ProfileNames(ctx context.Context) ([]profilestore.ProfileRef, error) {
	refs := make([]profilestore.ProfileRef, len(d.profiles))
	for i, p := range d.profiles {
		refs[i] = profilestore.ProfileRef{ID: p.ID, FullName: p.FullName}
	}
	return refs, nil
}

func (d *fakeDirectory) ProfilesByID(ctx context.Context, ids []int64) ([]profilestore.Profile, error) {
	var out []profilestore.Profile
	for _, id := range ids {
		for _, p := range d.profiles {
			if p.ID == id {
				out = append(out, p)
			}
		}
	}
	return out, nil
}

func newTestResolver(names ...string) *Resolver {
	dir := &fakeDirectory{}
	for i, n := range names {
		dir.profiles = append(dir.profiles, profilestore.Profile{ID: int64(i + 1), FullName: n})
	}
	return NewResolver(dir, 80, 95)
}

func TestResolveExactNameIsUnique(t *testing.T) {
	r := newTestResolver("Jane Doe", "John Smith")

	res, err := r.Resolve(context.Background(), "Jane Doe")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Verdict != Unique {
		t.Fatalf("verdict = %v, want Unique", res.Verdict)
	}
	if len(res.Candidates) != 1 || res.Candidates[0].Profile.FullName != "Jane Doe" {
		t.Errorf("candidates = %+v, want Jane Doe alone", res.Candidates)
	}
	if res.Candidates[0].Score != 100 {
		t.Errorf("exact-name score = %v, want 100", res.Candidates[0].Score)
	}
}

func TestResolveSwappedWordOrder(t *testing.T) {
	r := newTestResolver("Jane Doe", "John Smith")

	res, err := r.Resolve(context.Background(), "Doe Jane")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Verdict != Unique {
		t.Errorf("verdict = %v, want Unique for swapped word order", res.Verdict)
	}
}

func TestResolveShortNameIsAmbiguous(t *testing.T) {
	r := newTestResolver("Jon Smith", "Jonathan Lee")

	res, err := r.Resolve(context.Background(), "Jon")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Verdict != Ambiguous {
		t.Fatalf("verdict = %v, want Ambiguous (both plausible, neither certain)", res.Verdict)
	}
	if len(res.Candidates) != 2 {
		t.Fatalf("candidates = %+v, want both", res.Candidates)
	}
	// "Jon" matches "Jon Smith" token-exactly and outranks the partial.
	if res.Candidates[0].Profile.FullName != "Jon Smith" {
		t.Errorf("best candidate = %q, want Jon Smith first", res.Candidates[0].Profile.FullName)
	}
}

func TestResolveNoMatch(t *testing.T) {
	r := newTestResolver("Jane Doe")

	res, err := r.Resolve(context.Background(), "Zebulon Quartz")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Verdict != NoMatch || len(res.Candidates) != 0 {
		t.Errorf("got %+v, want NoMatch with no candidates", res)
	}
}

func TestResolveEmptyName(t *testing.T) {
	r := newTestResolver("Jane Doe")

	res, err := r.Resolve(context.Background(), "   ")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if res.Verdict != NoMatch {
		t.Errorf("verdict = %v, want NoMatch for blank input", res.Verdict)
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := newTestResolver("Jon Smith", "Jonathan Lee")

	first, err := r.Resolve(context.Background(), "Jon")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	second, err := r.Resolve(context.Background(), "Jon")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if first.Verdict != second.Verdict || len(first.Candidates) != len(second.Candidates) {
		t.Fatalf("repeated resolution diverged: %+v vs %+v", first, second)
	}
	for i := range first.Candidates {
		if first.Candidates[i].Profile.ID != second.Candidates[i].Profile.ID {
			t.Errorf("candidate order diverged at %d", i)
		}
	}
}

func TestSimilarityBounds(t *testing.T) {
	if s := Similarity("", "Jane Doe"); s != 0 {
		t.Errorf("empty query scored %v, want 0", s)
	}
	if s := Similarity("jane doe", "JANE DOE"); s != 100 {
		t.Errorf("case-only difference scored %v, want 100", s)
	}
	if s := Similarity("Jon", "Jon Smith"); s < 80 || s >= 95 {
		t.Errorf("bare first name scored %v, want within [80, 95)", s)
	}
	if s := Similarity("Jon", "Jonathan Lee"); s < 80 || s >= 95 {
		t.Errorf("partial first-name score = %v, want within [80, 95)", s)
	}
}
