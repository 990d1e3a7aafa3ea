package profilestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// CreateProfile inserts a profile and links its skills in one transaction.
// Unknown skill names are added to the vocabulary so a created profile always
// lists exactly the skills it was given.
func (s *Store) CreateProfile(ctx context.Context, in ProfileInput) error {
	if strings.TrimSpace(in.FullName) == "" {
		return errors.New("full name is required")
	}
	if in.Experience < 0 {
		return errors.New("years of experience cannot be negative")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO profiles (full_name, headline, years_of_experience, company_name, location)
		 VALUES (?, ?, ?, ?, ?)`,
		strings.TrimSpace(in.FullName), nullable(in.Headline), in.Experience,
		nullable(in.Company), nullable(in.Location))
	if err != nil {
		return fmt.Errorf("inserting profile: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading profile id: %w", err)
	}

	if err := linkSkills(ctx, tx, id, in.Skills); err != nil {
		return err
	}
	return tx.Commit()
}

// UpdateProfile replaces a profile's fields and its full skill mapping set.
func (s *Store) UpdateProfile(ctx context.Context, id int64, in ProfileInput) error {
	if strings.TrimSpace(in.FullName) == "" {
		return errors.New("full name is required")
	}
	if in.Experience < 0 {
		return errors.New("years of experience cannot be negative")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE profiles
		 SET full_name = ?, headline = ?, years_of_experience = ?, company_name = ?, location = ?
		 WHERE profile_id = ?`,
		strings.TrimSpace(in.FullName), nullable(in.Headline), in.Experience,
		nullable(in.Company), nullable(in.Location), id)
	if err != nil {
		return fmt.Errorf("updating profile %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update of profile %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM profile_skills WHERE profile_id = ?", id); err != nil {
		return fmt.Errorf("clearing skills of profile %d: %w", id, err)
	}
	if err := linkSkills(ctx, tx, id, in.Skills); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteProfile removes a profile; skill mappings cascade.
func (s *Store) DeleteProfile(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE profile_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting profile %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete of profile %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// linkSkills upserts each skill name and maps it to the profile. Duplicate
// names in the input collapse to one mapping.
func linkSkills(ctx context.Context, tx *sql.Tx, profileID int64, names []string) error {
	seen := map[string]bool{}
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true

		skillID, err := upsertSkill(ctx, tx, name)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO profile_skills (profile_id, skill_id) VALUES (?, ?)",
			profileID, skillID); err != nil {
			return fmt.Errorf("linking skill %q: %w", name, err)
		}
	}
	return nil
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
