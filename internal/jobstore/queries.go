package jobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dewansh3255/SPARK/internal/skills"
)

const jobColumns = `j.job_id, j.job_title, COALESCE(j.company_name, ''), COALESCE(j.location, '')`

// FindJobs returns postings matching the filter. Skills are contains-all;
// locations match any; company and title are substring filters.
func (s *Store) FindJobs(ctx context.Context, f JobFilter) ([]JobRow, error) {
	var where []string
	var args []any

	if f.Company != "" {
		where = append(where, "j.company_name LIKE ?")
		args = append(args, "%"+f.Company+"%")
	}
	if f.Title != "" {
		where = append(where, "j.job_title LIKE ?")
		args = append(args, "%"+f.Title+"%")
	}
	if len(f.Locations) > 0 {
		ors := make([]string, len(f.Locations))
		for i, loc := range f.Locations {
			ors[i] = "j.location LIKE ?"
			args = append(args, "%"+loc+"%")
		}
		where = append(where, "("+strings.Join(ors, " OR ")+")")
	}

	query := fmt.Sprintf(
		`SELECT %s, COALESCE(GROUP_CONCAT(s.skill_name, ', '), '')
		 FROM jobs j
		 LEFT JOIN job_skills js ON js.job_id = j.job_id
		 LEFT JOIN skills s ON s.skill_id = js.skill_id`, jobColumns)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " GROUP BY j.job_id"
	if len(f.Skills) > 0 {
		query += fmt.Sprintf(
			" HAVING COUNT(DISTINCT CASE WHEN lower(s.skill_name) IN (%s) THEN lower(s.skill_name) END) = ?",
			placeholders(len(f.Skills)))
		args = append(args, loweredArgs(f.Skills)...)
		args = append(args, len(distinctLower(f.Skills)))
	}
	query += " ORDER BY j.job_title, j.job_id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding jobs: %w", err)
	}
	defer rows.Close()
	return scanJobRows(rows)
}

// ListJobs returns every posting with an aggregated skill column.
func (s *Store) ListJobs(ctx context.Context) ([]JobRow, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		`SELECT %s, COALESCE(GROUP_CONCAT(s.skill_name, ', '), '')
		 FROM jobs j
		 LEFT JOIN job_skills js ON js.job_id = j.job_id
		 LEFT JOIN skills s ON s.skill_id = js.skill_id
		 GROUP BY j.job_id
		 ORDER BY j.job_title, j.job_id`, jobColumns))
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}
	defer rows.Close()
	return scanJobRows(rows)
}

// GetJob fetches one posting by id.
func (s *Store) GetJob(ctx context.Context, id int64) (Job, error) {
	var j Job
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM jobs j WHERE j.job_id = ?", jobColumns), id).
		Scan(&j.ID, &j.Title, &j.Company, &j.Location)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, ErrNotFound
	}
	if err != nil {
		return Job{}, fmt.Errorf("fetching job %d: %w", id, err)
	}
	return j, nil
}

// Titles lists the distinct posting titles.
func (s *Store) Titles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT job_title FROM jobs ORDER BY job_title")
	if err != nil {
		return nil, fmt.Errorf("listing titles: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
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

// RequiredSkills lists the requirements of the posting matching title and
// company exactly (case-insensitive).
func (s *Store) RequiredSkills(ctx context.Context, title, company string) ([]skills.Required, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.skill_name, js.importance
		 FROM jobs j
		 JOIN job_skills js ON js.job_id = j.job_id
		 JOIN skills s ON s.skill_id = js.skill_id
		 WHERE lower(j.job_title) = lower(?) AND lower(COALESCE(j.company_name, '')) = lower(?)
		 ORDER BY js.importance, s.skill_name`, title, company)
	if err != nil {
		return nil, fmt.Errorf("listing requirements of %q at %q: %w", title, company, err)
	}
	defer rows.Close()

	var out []skills.Required
	for rows.Next() {
		var r skills.Required
		if err := rows.Scan(&r.Name, &r.Importance); err != nil {
			return nil, fmt.Errorf("scanning requirement: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RequirementsForJob lists one posting's requirements by id, mandatory tier
// first.
func (s *Store) RequirementsForJob(ctx context.Context, id int64) ([]skills.Required, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.skill_name, js.importance
		 FROM job_skills js
		 JOIN skills s ON s.skill_id = js.skill_id
		 WHERE js.job_id = ?
		 ORDER BY js.importance, s.skill_name`, id)
	if err != nil {
		return nil, fmt.Errorf("listing requirements of job %d: %w", id, err)
	}
	defer rows.Close()

	var out []skills.Required
	for rows.Next() {
		var r skills.Required
		if err := rows.Scan(&r.Name, &r.Importance); err != nil {
			return nil, fmt.Errorf("scanning requirement: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// SkillsForTitle is the distinct union of skills ever required by postings
// whose title contains the given string.
func (s *Store) SkillsForTitle(ctx context.Context, title string) ([]string, error) {
	return s.titleSkills(ctx, title, false)
}

// MandatorySkillsForTitle narrows SkillsForTitle to the Mandatory tier.
func (s *Store) MandatorySkillsForTitle(ctx context.Context, title string) ([]string, error) {
	return s.titleSkills(ctx, title, true)
}

func (s *Store) titleSkills(ctx context.Context, title string, mandatoryOnly bool) ([]string, error) {
	query := `SELECT DISTINCT s.skill_name
		 FROM jobs j
		 JOIN job_skills js ON js.job_id = j.job_id
		 JOIN skills s ON s.skill_id = js.skill_id
		 WHERE j.job_title LIKE ?`
	args := []any{"%" + title + "%"}
	if mandatoryOnly {
		query += " AND js.importance = ?"
		args = append(args, skills.ImportanceMandatory)
	}
	query += " ORDER BY s.skill_name"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing skills for title %q: %w", title, err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// MatchJobs scores every posting against the user's skills and returns those
// at or above minPct, best first, capped at 50. Postings with no skill
// overlap (and postings requiring no skills at all) never appear.
func (s *Store) MatchJobs(ctx context.Context, userSkills []string, minPct float64) ([]JobMatch, error) {
	if len(userSkills) == 0 {
		return nil, nil
	}
	in := placeholders(len(userSkills))
	query := fmt.Sprintf(
		`SELECT j.job_title, COALESCE(j.company_name, ''), COALESCE(j.location, ''),
		        COUNT(DISTINCT CASE WHEN lower(s.skill_name) IN (%s) THEN lower(s.skill_name) END) AS matched,
		        ROUND(100.0 * COUNT(DISTINCT CASE WHEN lower(s.skill_name) IN (%s) THEN lower(s.skill_name) END)
		              / COUNT(DISTINCT js.skill_id), 2) AS pct
		 FROM jobs j
		 JOIN job_skills js ON js.job_id = j.job_id
		 JOIN skills s ON s.skill_id = js.skill_id
		 GROUP BY j.job_id
		 HAVING matched > 0 AND pct >= ?
		 ORDER BY pct DESC, j.job_title, j.job_id
		 LIMIT 50`, in, in)

	args := loweredArgs(userSkills)
	args = append(args, loweredArgs(userSkills)...)
	args = append(args, minPct)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("matching jobs: %w", err)
	}
	defer rows.Close()

	var out []JobMatch
	for rows.Next() {
		var m JobMatch
		var matched int
		if err := rows.Scan(&m.Title, &m.Company, &m.Location, &matched, &m.Pct); err != nil {
			return nil, fmt.Errorf("scanning job match: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// TopSkills lists the most demanded skills across all postings.
func (s *Store) TopSkills(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 3
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.skill_name
		 FROM skills s
		 JOIN job_skills js ON js.skill_id = s.skill_id
		 GROUP BY s.skill_id, s.skill_name
		 ORDER BY COUNT(js.job_id) DESC, s.skill_name
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking demanded skills: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// InDemandMandatorySkills ranks the Mandatory skills for a title by how many
// postings require them.
func (s *Store) InDemandMandatorySkills(ctx context.Context, title string, limit int) ([]SkillCount, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.skill_name, COUNT(js.job_id) AS demand
		 FROM skills s
		 JOIN job_skills js ON js.skill_id = s.skill_id
		 JOIN jobs j ON j.job_id = js.job_id
		 WHERE j.job_title LIKE ? AND js.importance = ?
		 GROUP BY s.skill_id, s.skill_name
		 ORDER BY demand DESC, s.skill_name
		 LIMIT ?`, "%"+title+"%", skills.ImportanceMandatory, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking mandatory skills for %q: %w", title, err)
	}
	defer rows.Close()

	var out []SkillCount
	for rows.Next() {
		var c SkillCount
		if err := rows.Scan(&c.Skill, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning skill demand: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// TopLocationsForTitle ranks posting locations for a title.
func (s *Store) TopLocationsForTitle(ctx context.Context, title string, limit int) ([]LocationCount, error) {
	if limit <= 0 {
		limit = 3
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT j.location, COUNT(*) AS postings
		 FROM jobs j
		 WHERE j.job_title LIKE ? AND j.location IS NOT NULL AND j.location != ''
		 GROUP BY j.location
		 ORDER BY postings DESC, j.location
		 LIMIT ?`, "%"+title+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("ranking locations for %q: %w", title, err)
	}
	defer rows.Close()

	var out []LocationCount
	for rows.Next() {
		var c LocationCount
		if err := rows.Scan(&c.Location, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning location count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// PostingsByTitle counts open postings per distinct title.
func (s *Store) PostingsByTitle(ctx context.Context, limit int) ([]TitleCount, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT j.job_title, COUNT(*) AS postings
		 FROM jobs j
		 GROUP BY j.job_title
		 ORDER BY postings DESC, j.job_title
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("counting postings by title: %w", err)
	}
	defer rows.Close()

	var out []TitleCount
	for rows.Next() {
		var c TitleCount
		if err := rows.Scan(&c.Title, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning title count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// MarketAnalysis summarizes demand for a role: open-posting count plus the
// three most frequent locations.
func (s *Store) MarketAnalysis(ctx context.Context, title string) (MarketStats, error) {
	var stats MarketStats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM jobs WHERE job_title LIKE ?", "%"+title+"%").Scan(&stats.OpenJobs)
	if err != nil {
		return MarketStats{}, fmt.Errorf("counting postings for %q: %w", title, err)
	}

	locations, err := s.TopLocationsForTitle(ctx, title, 3)
	if err != nil {
		return MarketStats{}, err
	}
	for _, l := range locations {
		stats.TopLocations = append(stats.TopLocations, l.Location)
	}
	return stats, nil
}

// CountJobsRequiringSkill counts distinct postings requiring the skill.
func (s *Store) CountJobsRequiringSkill(ctx context.Context, skill string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT js.job_id)
		 FROM job_skills js
		 JOIN skills s ON s.skill_id = js.skill_id
		 WHERE lower(s.skill_name) = lower(?)`, skill).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting postings requiring %q: %w", skill, err)
	}
	return count, nil
}

func scanJobRows(rows *sql.Rows) ([]JobRow, error) {
	var out []JobRow
	for rows.Next() {
		var r JobRow
		if err := rows.Scan(&r.ID, &r.Title, &r.Company, &r.Location, &r.Skills); err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
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
