package jobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dewansh3255/SPARK/internal/skills"
)

// CreateJob inserts a posting and links its required skills in one
// transaction. Unknown skill names are added to the vocabulary.
func (s *Store) CreateJob(ctx context.Context, in JobInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("job title is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO jobs (job_title, company_name, location) VALUES (?, ?, ?)",
		strings.TrimSpace(in.Title), nullable(in.Company), nullable(in.Location))
	if err != nil {
		return fmt.Errorf("inserting job: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading job id: %w", err)
	}

	if err := linkRequirements(ctx, tx, id, in.Skills); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateJob replaces a posting's fields and its full requirement set.
// Repeating the same input yields the same rows: the (job, skill) primary key
// plus the conflict upsert keep one importance per skill.
func (s *Store) UpdateJob(ctx context.Context, id int64, in JobInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("job title is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"UPDATE jobs SET job_title = ?, company_name = ?, location = ? WHERE job_id = ?",
		strings.TrimSpace(in.Title), nullable(in.Company), nullable(in.Location), id)
	if err != nil {
		return fmt.Errorf("updating job %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of job %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM job_skills WHERE job_id = ?", id); err != nil {
		return fmt.Errorf("clearing requirements of job %d: %w", id, err)
	}
	if err := linkRequirements(ctx, tx, id, in.Skills); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteJob removes a posting; requirement mappings cascade.
func (s *Store) DeleteJob(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM jobs WHERE job_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting job %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of job %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// linkRequirements upserts each skill and maps it to the job with its
// importance. A duplicate skill in the input overwrites the earlier tier
// instead of creating a second mapping row.
func linkRequirements(ctx context.Context, tx *sql.Tx, jobID int64, reqs []SkillRequirement) error {
	for _, req := range reqs {
		name := strings.TrimSpace(req.Name)
		if name == "" {
			continue
		}
		importance, err := normalizeImportance(req.Importance)
		if err != nil {
			return err
		}

		skillID, err := upsertSkill(ctx, tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO job_skills (job_id, skill_id, importance) VALUES (?, ?, ?)
			 ON CONFLICT(job_id, skill_id) DO UPDATE SET importance = excluded.importance`,
			jobID, skillID, importance); err != nil {
			return fmt.Errorf("linking requirement %q: %w", name, err)
		}
	}
	return nil
}

func normalizeImportance(importance string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(importance)) {
	case "", "preferred":
		return skills.ImportancePreferred, nil
	case "mandatory":
		return skills.ImportanceMandatory, nil
	default:
		return "", fmt.Errorf("invalid importance %q", importance)
	}
}

// upsertSkill returns the id for a skill name, inserting it when absent.
// The lookup is case-insensitive via the column's NOCASE collation.
func upsertSkill(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, "SELECT skill_id FROM skills WHERE skill_name = ?", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("looking up skill %q: %w", name, err)
	}
	res, err := tx.ExecContext(ctx, "INSERT INTO skills (skill_name) VALUES (?)", name)
	if err != nil {
		return 0, fmt.Errorf("inserting skill %q: %w", name, err)
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading skill id for %q: %w", name, err)
	}
	return id, nil
}

// nullable maps an empty string to NULL so optional columns stay unset.
func nullable(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return s
}
