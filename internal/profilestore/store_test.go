package profilestore

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustCreate(t *testing.T, s *Store, in ProfileInput) {
	t.Helper()
	if err := s.CreateProfile(context.Background(), in); err != nil {
		t.Fatalf("CreateProfile(%q): %v", in.FullName, err)
	}
}

func TestCreateProfileRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, s, ProfileInput{
		FullName:   "Jane Doe",
		Headline:   "Data Scientist",
		Experience: 6,
		Company:    "Innovate Inc.",
		Location:   "Berlin",
		Skills:     []string{"Python", "SQL", "Machine Learning"},
	})

	rows, err := s.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d profiles, want 1", len(rows))
	}
	p := rows[0]
	if p.FullName != "Jane Doe" || p.Company != "Innovate Inc." || p.Experience != 6 {
		t.Errorf("unexpected profile row: %+v", p)
	}

	got, err := s.SkillsForProfile(ctx, p.ID)
	if err != nil {
		t.Fatalf("SkillsForProfile: %v", err)
	}
	want := []string{"Machine Learning", "Python", "SQL"}
	if len(got) != len(want) {
		t.Fatalf("skills = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("skills[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCreateProfileUpsertsNewSkillNames(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, s, ProfileInput{FullName: "A", Skills: []string{"Zig"}})
	mustCreate(t, s, ProfileInput{FullName: "B", Skills: []string{"zig", "Go"}})

	names, err := s.SkillNames(ctx)
	if err != nil {
		t.Fatalf("SkillNames: %v", err)
	}
	// "zig" must not create a second vocabulary entry next to "Zig".
	if len(names) != 2 {
		t.Fatalf("skill vocabulary = %v, want 2 entries", names)
	}

	count, err := s.CountProfilesWithSkill(ctx, "ZIG")
	if err != nil {
		t.Fatalf("CountProfilesWithSkill: %v", err)
	}
	if count != 2 {
		t.Errorf("holders of zig = %d, want 2", count)
	}
}

func TestUpdateProfileReplacesSkills(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, s, ProfileInput{FullName: "Jane Doe", Skills: []string{"Python", "SQL"}})
	refs, err := s.ProfileNames(ctx)
	if err != nil || len(refs) != 1 {
		t.Fatalf("ProfileNames: %v (%d refs)", err, len(refs))
	}
	id := refs[0].ID

	err = s.UpdateProfile(ctx, id, ProfileInput{
		FullName:   "Jane Doe",
		Experience: 7,
		Skills:     []string{"Go"},
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	got, err := s.SkillsForProfile(ctx, id)
	if err != nil {
		t.Fatalf("SkillsForProfile: %v", err)
	}
	if len(got) != 1 || got[0] != "Go" {
		t.Errorf("skills after update = %v, want [Go]", got)
	}

	p, err := s.GetProfile(ctx, id)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if p.Experience != 7 {
		t.Errorf("experience = %d, want 7", p.Experience)
	}
}

func TestUpdateMissingProfile(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateProfile(context.Background(), 999, ProfileInput{FullName: "Ghost"})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateProfile(missing) = %v, want ErrNotFound", err)
	}
}

func TestDeleteProfileCascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustCreate(t, s, ProfileInput{FullName: "Jane Doe", Skills: []string{"Python"}})
	refs, _ := s.ProfileNames(ctx)
	id := refs[0].ID

	if err := s.DeleteProfile(ctx, id); err != nil {
		t.Fatalf("DeleteProfile: %v", err)
	}
	if _, err := s.GetProfile(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetProfile after delete = %v, want ErrNotFound", err)
	}
	if err := s.DeleteProfile(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteProfile = %v, want ErrNotFound", err)
	}

	count, err := s.CountProfilesWithSkill(ctx, "Python")
	if err != nil {
		t.Fatalf("CountProfilesWithSkill: %v", err)
	}
	if count != 0 {
		t.Errorf("skill mappings survived the cascade: count = %d", count)
	}
}

func seedPeople(t *testing.T, s *Store) {
	t.Helper()
	mustCreate(t, s, ProfileInput{FullName: "Ann", Company: "Innovate Inc.", Location: "Berlin", Experience: 8, Skills: []string{"Python", "Machine Learning"}})
	mustCreate(t, s, ProfileInput{FullName: "Ben", Company: "Innovate Inc.", Location: "Berlin", Experience: 3, Skills: []string{"Python"}})
	mustCreate(t, s, ProfileInput{FullName: "Cleo", Company: "DataWorks", Location: "Paris", Experience: 10, Skills: []string{"Python", "Machine Learning", "TensorFlow"}})
	mustCreate(t, s, ProfileInput{FullName: "Dax", Company: "DataWorks", Location: "Lyon", Experience: 2, Skills: []string{"JavaScript"}})
}

func TestFindPeopleContainsAllSkills(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)

	rows, err := s.FindPeople(context.Background(), PeopleFilter{Skills: []string{"python", "machine learning"}})
	if err != nil {
		t.Fatalf("FindPeople: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d people, want 2 (Ann, Cleo): %+v", len(rows), rows)
	}
	if rows[0].FullName != "Ann" || rows[1].FullName != "Cleo" {
		t.Errorf("unexpected order: %q, %q", rows[0].FullName, rows[1].FullName)
	}
}

func TestFindPeopleExcludeCompanyAndExperience(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)

	rows, err := s.FindPeople(context.Background(), PeopleFilter{
		ExcludeCompany: "Innovate",
		MinExperience:  5,
	})
	if err != nil {
		t.Fatalf("FindPeople: %v", err)
	}
	if len(rows) != 1 || rows[0].FullName != "Cleo" {
		t.Errorf("got %+v, want only Cleo", rows)
	}
}

func TestFindPeopleLocationsMatchAny(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)

	rows, err := s.FindPeople(context.Background(), PeopleFilter{Locations: []string{"Paris", "Lyon"}})
	if err != nil {
		t.Fatalf("FindPeople: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("got %d people, want 2: %+v", len(rows), rows)
	}
}

func TestCountProfiles(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)
	ctx := context.Background()

	count, err := s.CountProfiles(ctx, []string{"Python"}, "")
	if err != nil {
		t.Fatalf("CountProfiles: %v", err)
	}
	if count != 3 {
		t.Errorf("python holders = %d, want 3", count)
	}

	count, err = s.CountProfiles(ctx, []string{"Python"}, "DataWorks")
	if err != nil {
		t.Fatalf("CountProfiles: %v", err)
	}
	if count != 1 {
		t.Errorf("python holders at DataWorks = %d, want 1", count)
	}
}

func TestMatchCandidatesRanksByOverlap(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)

	cands, err := s.MatchCandidates(context.Background(), []string{"Python", "Machine Learning", "TensorFlow"})
	if err != nil {
		t.Fatalf("MatchCandidates: %v", err)
	}
	if len(cands) != 3 {
		t.Fatalf("got %d candidates, want 3: %+v", len(cands), cands)
	}
	if cands[0].FullName != "Cleo" || cands[0].Matched != 3 {
		t.Errorf("top candidate = %+v, want Cleo with 3 matches", cands[0])
	}
	if cands[1].FullName != "Ann" || cands[1].Matched != 2 {
		t.Errorf("second candidate = %+v, want Ann with 2 matches", cands[1])
	}
}

func TestSkillAuditRequiresTwoMatches(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)

	rows, err := s.SkillAudit(context.Background(), "innovate inc.", []string{"Python", "Machine Learning", "TensorFlow"})
	if err != nil {
		t.Fatalf("SkillAudit: %v", err)
	}
	// Ben holds only one target skill and must not appear.
	if len(rows) != 1 || rows[0].FullName != "Ann" {
		t.Fatalf("audit rows = %+v, want only Ann", rows)
	}
	if rows[0].Matched != 2 {
		t.Errorf("Ann matched = %d, want 2", rows[0].Matched)
	}
	if !strings.Contains(rows[0].Skills, "Python") {
		t.Errorf("audit skills %q should list Python", rows[0].Skills)
	}
}

func TestAvgExperienceForSkill(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)
	ctx := context.Background()

	avg, ok, err := s.AvgExperienceForSkill(ctx, "machine learning")
	if err != nil {
		t.Fatalf("AvgExperienceForSkill: %v", err)
	}
	if !ok || avg != 9 {
		t.Errorf("avg = %v (ok=%v), want 9", avg, ok)
	}

	_, ok, err = s.AvgExperienceForSkill(ctx, "COBOL")
	if err != nil {
		t.Fatalf("AvgExperienceForSkill: %v", err)
	}
	if ok {
		t.Error("unknown skill should report no holders")
	}
}

func TestTopCompanies(t *testing.T) {
	s := newTestStore(t)
	seedPeople(t, s)

	top, err := s.TopCompanies(context.Background(), 3, 5)
	if err != nil {
		t.Fatalf("TopCompanies: %v", err)
	}
	// Ann (8) at Innovate, Cleo (10) at DataWorks clear the floor; tie broken by name.
	if len(top) != 2 {
		t.Fatalf("got %d companies, want 2: %+v", len(top), top)
	}
	if top[0].Company != "DataWorks" || top[0].Count != 1 {
		t.Errorf("top company = %+v", top[0])
	}
}
