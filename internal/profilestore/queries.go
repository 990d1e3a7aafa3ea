package profilestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const profileColumns = `p.profile_id, p.full_name, COALESCE(p.headline, ''),
	p.years_of_experience, COALESCE(p.company_name, ''), COALESCE(p.location, '')`

// ProfileNames returns every (id, full name) pair for fuzzy resolution.
func (s *Store) ProfileNames(ctx context.Context) ([]ProfileRef, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT profile_id, full_name FROM profiles ORDER BY profile_id")
	if err != nil {
		return nil, fmt.Errorf("listing profile names: %w", err)
	}
	defer rows.Close()

	var refs []ProfileRef
	for rows.Next() {
		var ref ProfileRef
		if err := rows.Scan(&ref.ID, &ref.FullName); err != nil {
			return nil, fmt.Errorf("scanning profile name: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

// ProfilesByID fetches the given profiles; missing ids are skipped.
func (s *Store) ProfilesByID(ctx context.Context, ids []int64) ([]Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := fmt.Sprintf("SELECT %s FROM profiles p WHERE p.profile_id IN (%s) ORDER BY p.profile_id",
		profileColumns, placeholders(len(ids)))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching profiles: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Headline, &p.Experience, &p.Company, &p.Location); err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// GetProfile fetches one profile by id.
func (s *Store) GetProfile(ctx context.Context, id int64) (Profile, error) {
	var p Profile
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM profiles p WHERE p.profile_id = ?", profileColumns), id).
		Scan(&p.ID, &p.FullName, &p.Headline, &p.Experience, &p.Company, &p.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return Profile{}, ErrNotFound
	}
	if err != nil {
		return Profile{}, fmt.Errorf("fetching profile %d: %w", id, err)
	}
	return p, nil
}

// SkillsForProfile lists a profile's skills sorted by name.
func (s *Store) SkillsForProfile(ctx context.Context, id int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.skill_name
		 FROM skills s
		 JOIN profile_skills ps ON ps.skill_id = s.skill_id
		 WHERE ps.profile_id = ?
		 ORDER BY s.skill_name`, id)
	if err != nil {
		return nil, fmt.Errorf("listing skills of profile %d: %w", id, err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// ListProfiles returns every profile with an aggregated skill column.
func (s *Store) ListProfiles(ctx context.Context) ([]ProfileRow, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s, COALESCE(GROUP_CONCAT(s.skill_name, ', '), '')
		 FROM profiles p
		 LEFT JOIN profile_skills ps ON ps.profile_id = p.profile_id
		 LEFT JOIN skills s ON s.skill_id = ps.skill_id
		 GROUP BY p.profile_id
		 ORDER BY p.full_name, p.profile_id`, profileColumns))
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()
	return scanProfileRows(rows)
}

// SkillNames lists the store's distinct skill vocabulary sorted by name.
func (s *Store) SkillNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT skill_name FROM skills ORDER BY skill_name")
	if err != nil {
		return nil, fmt.Errorf("listing skill names: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// FindPeople returns profiles matching the filter. Skills are contains-all;
// locations match any; company filters are substrings.
func (s *Store) FindPeople(ctx context.Context, f PeopleFilter) ([]ProfileRow, error) {
	var where []string
	var args []any

	if f.Company != "" {
		where = append(where, "p.company_name LIKE ?")
		args = append(args, "%"+f.Company+"%")
	}
	if f.ExcludeCompany != "" {
		where = append(where, "(p.company_name IS NULL OR p.company_name NOT LIKE ?)")
		args = append(args, "%"+f.ExcludeCompany+"%")
	}
	if f.MinExperience > 0 {
		where = append(where, "p.years_of_experience >= ?")
		args = append(args, f.MinExperience)
	}
	if len(f.Locations) > 0 {
		ors := make([]string, len(f.Locations))
		for i, loc := range f.Locations {
			ors[i] = "p.location LIKE ?"
			args = append(args, "%"+loc+"%")
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	query := fmt.Sprintf(
		`SELECT %s, COALESCE(GROUP_CONCAT(s.skill_name, ', '), '')
		 FROM profiles p
		 LEFT JOIN profile_skills ps ON ps.profile_id = p.profile_id
		 LEFT JOIN skills s ON s.skill_id = ps.skill_id`, profileColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " GROUP BY p.profile_id"
	if len(f.Skills) > 0 {
		query += fmt.Sprintf(
			" HAVING COUNT(DISTINCT CASE WHEN lower(s.skill_name) IN (%s) THEN lower(s.skill_name) END) = ?",
			placeholders(len(f.Skills)))
		args = append(args, loweredArgs(f.Skills)...)
		args = append(args, len(distinctLower(f.Skills)))
	}
	query += " ORDER BY p.full_name, p.profile_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding people: %w", err)
	}
	defer rows.Close()
	return scanProfileRows(rows)
}

// CountProfiles counts distinct profiles holding all the given skills and,
// optionally, working at a company matching the substring.
func (s *Store) CountProfiles(ctx context.Context, skills []string, company string) (int, error) {
	var where []string
	var args []any
	if company != "" {
		where = append(where, "p.company_name LIKE ?")
		args = append(args, "%"+company+"%")
	}

	inner := `SELECT p.profile_id
		 FROM profiles p
		 LEFT JOIN profile_skills ps ON ps.profile_id = p.profile_id
		 LEFT JOIN skills s ON s.skill_id = ps.skill_id`
	if len(where) > 0 {
		inner += " WHERE " + strings.Join(where, " AND ")
	}
	inner += " GROUP BY p.profile_id"
	if len(skills) > 0 {
		inner += fmt.Sprintf(
			" HAVING COUNT(DISTINCT CASE WHEN lower(s.skill_name) IN (%s) THEN lower(s.skill_name) END) = ?",
			placeholders(len(skills)))
		args = append(args, loweredArgs(skills)...)
		args = append(args, len(distinctLower(skills)))
	}

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM ("+inner+")", args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting profiles: %w", err)
	}
	return count, nil
}

// MatchCandidates ranks profiles holding at least one target skill by how
// many of the targets they hold.
func (s *Store) MatchCandidates(ctx context.Context, target []string) ([]Candidate, error) {
	if len(target) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(
		`SELECT %s, COUNT(DISTINCT lower(s.skill_name)) AS matched
		 FROM profiles p
		 JOIN profile_skills ps ON ps.profile_id = p.profile_id
		 JOIN skills s ON s.skill_id = ps.skill_id
		 WHERE lower(s.skill_name) IN (%s)
		 GROUP BY p.profile_id
		 ORDER BY matched DESC, p.full_name, p.profile_id`,
		profileColumns, placeholders(len(target)))

	rows, err := s.db.QueryContext(ctx, query, loweredArgs(target)...)
	if err != nil {
		return nil, fmt.Errorf("matching candidates: %w", err)
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.FullName, &c.Headline, &c.Experience, &c.Company, &c.Location, &c.Matched); err != nil {
			return nil, fmt.Errorf("scanning candidate: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SkillAudit lists employees of a company holding at least two of the target
// skills, strongest first, capped at ten rows.
func (s *Store) SkillAudit(ctx context.Context, company string, target []string) ([]AuditRow, error) {
	if company == "" || len(target) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(
		`SELECT p.full_name, GROUP_CONCAT(s.skill_name, ', '),
		        COUNT(DISTINCT lower(s.skill_name)) AS matched
		 FROM profiles p
		 JOIN profile_skills ps ON ps.profile_id = p.profile_id
		 JOIN skills s ON s.skill_id = ps.skill_id
		 WHERE lower(p.company_name) = lower(?) AND lower(s.skill_name) IN (%s)
		 GROUP BY p.profile_id, p.full_name
		 HAVING matched >= 2
		 ORDER BY matched DESC, p.full_name
		 LIMIT 10`, placeholders(len(target)))

	args := append([]any{company}, loweredArgs(target)...)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("auditing skills at %q: %w", company, err)
	}
	defer rows.Close()

	var out []AuditRow
	for rows.Next() {
		var r AuditRow
		if err := rows.Scan(&r.FullName, &r.Skills, &r.Matched); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AvgExperienceForSkill averages years of experience across holders of a
// skill. The boolean is false when nobody holds it.
func (s *Store) AvgExperienceForSkill(ctx context.Context, skill string) (float64, bool, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT AVG(p.years_of_experience)
		 FROM profiles p
		 JOIN profile_skills ps ON ps.profile_id = p.profile_id
		 JOIN skills s ON s.skill_id = ps.skill_id
		 WHERE lower(s.skill_name) = lower(?)`, skill).Scan(&avg)
	if err != nil {
		return 0, false, fmt.Errorf("averaging experience for %q: %w", skill, err)
	}
	if !avg.Valid {
		return 0, false, nil
	}
	return avg.Float64, true, nil
}

// TopCompanies ranks companies by headcount of profiles at or above the
// experience floor.
func (s *Store) TopCompanies(ctx context.Context, minExperience, limit int) ([]CompanyCount, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.company_name, COUNT(*) AS headcount
		 FROM profiles p
		 WHERE p.years_of_experience >= ? AND p.company_name IS NOT NULL AND p.company_name != ''
		 GROUP BY p.company_name
		 ORDER BY headcount DESC, p.company_name
		 LIMIT ?`, minExperience, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking companies: %w", err)
	}
	defer rows.Close()

	var out []CompanyCount
	for rows.Next() {
		var c CompanyCount
		if err := rows.Scan(&c.Company, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning company count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountProfilesWithSkill counts distinct profiles holding the skill.
func (s *Store) CountProfilesWithSkill(ctx context.Context, skill string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT ps.profile_id)
		 FROM profile_skills ps
		 JOIN skills s ON s.skill_id = ps.skill_id
		 WHERE lower(s.skill_name) = lower(?)`, skill).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting holders of %q: %w", skill, err)
	}
	return count, nil
}

func scanProfileRows(rows *sql.Rows) ([]ProfileRow, error) {
	var out []ProfileRow
	for rows.Next() {
		var r ProfileRow
		if err := rows.Scan(&r.ID, &r.FullName, &r.Headline, &r.Experience, &r.Company, &r.Location, &r.Skills); err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning string column: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// placeholders renders n comma-separated SQL placeholders.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// loweredArgs lowercases names for the lower(...) IN comparisons.
func loweredArgs(names []string) []any {
	out := make([]any, len(names))
	for i, n := range names {
		out[i] = strings.ToLower(strings.TrimSpace(n))
	}
	return out
}

func distinctLower(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		key := strings.ToLower(strings.TrimSpace(n))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, key)
	}
	return out
}
