package navigator

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/jobstore"
	"github.com/dewansh3255/SPARK/internal/profilestore"
	"github.com/dewansh3255/SPARK/internal/skills"
)

// The CRUD surface reports success as a boolean; failures are logged and
// never propagated as errors to callers.

func (n *Navigator) CreateProfile(ctx context.Context, in profilestore.ProfileInput) bool {
	if err := n.profiles.CreateProfile(ctx, in); err != nil {
		n.log.Error("create profile failed", zap.Error(err), zap.String("name", in.FullName))
		return false
	}
	return true
}

func (n *Navigator) UpdateProfile(ctx context.Context, id int64, in profilestore.ProfileInput) bool {
	if err := n.profiles.UpdateProfile(ctx, id, in); err != nil {
		n.log.Error("update profile failed", zap.Error(err), zap.Int64("id", id))
		return false
	}
	return true
}

func (n *Navigator) DeleteProfile(ctx context.Context, id int64) bool {
	if err := n.profiles.DeleteProfile(ctx, id); err != nil {
		n.log.Error("delete profile failed", zap.Error(err), zap.Int64("id", id))
		return false
	}
	return true
}

func (n *Navigator) CreateJob(ctx context.Context, in jobstore.JobInput) bool {
	if err := n.jobs.CreateJob(ctx, in); err != nil {
		n.log.Error("create job failed", zap.Error(err), zap.String("title", in.Title))
		return false
	}
	return true
}

func (n *Navigator) UpdateJob(ctx context.Context, id int64, in jobstore.JobInput) bool {
	if err := n.jobs.UpdateJob(ctx, id, in); err != nil {
		n.log.Error("update job failed", zap.Error(err), zap.Int64("id", id))
		return false
	}
	return true
}

func (n *Navigator) DeleteJob(ctx context.Context, id int64) bool {
	if err := n.jobs.DeleteJob(ctx, id); err != nil {
		n.log.Error("delete job failed", zap.Error(err), zap.Int64("id", id))
		return false
	}
	return true
}

// GetProfile fetches one profile with its skill list. ok is false when the
// profile does not exist or the store fails.
func (n *Navigator) GetProfile(ctx context.Context, id int64) (profilestore.Profile, []string, bool) {
	p, err := n.profiles.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, profilestore.ErrNotFound) {
			n.log.Error("get profile failed", zap.Error(err), zap.Int64("id", id))
		}
		return profilestore.Profile{}, nil, false
	}
	held, err := n.profiles.SkillsForProfile(ctx, id)
	if err != nil {
		n.log.Error("profile skills failed", zap.Error(err), zap.Int64("id", id))
		return profilestore.Profile{}, nil, false
	}
	return p, held, true
}

// GetJob fetches one posting with its requirements. ok is false when the
// posting does not exist or the store fails.
func (n *Navigator) GetJob(ctx context.Context, id int64) (jobstore.Job, []skills.Required, bool) {
	j, err := n.jobs.GetJob(ctx, id)
	if err != nil {
		if !errors.Is(err, jobstore.ErrNotFound) {
			n.log.Error("get job failed", zap.Error(err), zap.Int64("id", id))
		}
		return jobstore.Job{}, nil, false
	}
	reqs, err := n.jobs.RequirementsForJob(ctx, id)
	if err != nil {
		n.log.Error("job requirements failed", zap.Error(err), zap.Int64("id", id))
		return jobstore.Job{}, nil, false
	}
	return j, reqs, true
}

// ListProfiles returns every profile with aggregated skills, or nil on failure.
func (n *Navigator) ListProfiles(ctx context.Context) []profilestore.ProfileRow {
	rows, err := n.profiles.ListProfiles(ctx)
	if err != nil {
		n.log.Error("list profiles failed", zap.Error(err))
		return nil
	}
	return rows
}

// ListJobs returns every posting with aggregated skills, or nil on failure.
func (n *Navigator) ListJobs(ctx context.Context) []jobstore.JobRow {
	rows, err := n.jobs.ListJobs(ctx)
	if err != nil {
		n.log.Error("list jobs failed", zap.Error(err))
		return nil
	}
	return rows
}

// ListAllSkillNames merges both stores' vocabularies, deduplicated
// case-insensitively and sorted. A failing store contributes nothing.
func (n *Navigator) ListAllSkillNames(ctx context.Context) []string {
	var all []string
	if names, err := n.profiles.SkillNames(ctx); err != nil {
		n.log.Error("profile skill names failed", zap.Error(err))
	} else {
		all = append(all, names...)
	}
	if names, err := n.jobs.SkillNames(ctx); err != nil {
		n.log.Error("job skill names failed", zap.Error(err))
	} else {
		all = append(all, names...)
	}

	seen := map[string]bool{}
	var out []string
	for _, name := range all {
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
