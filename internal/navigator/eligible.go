package navigator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/intent"
)

func (n *Navigator) eligibleJobs(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	if strings.TrimSpace(t.PersonName) == "" {
		return Result{Message: `Please tell me whose profile to check, e.g. "which jobs fit Jane Doe".`}
	}

	person, fail, ok := n.resolvePerson(ctx, log, t.PersonName)
	if !ok {
		return fail
	}

	held, err := n.profiles.SkillsForProfile(ctx, person.ID)
	if err != nil {
		log.Error("loading person skills failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(held) == 0 {
		return Result{Message: fmt.Sprintf("%s has no skills on record yet, so I can't match jobs.", person.FullName)}
	}

	matches, err := n.jobs.MatchJobs(ctx, held, n.cfg.EligibilityThreshold)
	if err != nil {
		log.Error("job matching failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(matches) == 0 {
		msg := fmt.Sprintf("No current openings reach a %.0f%% match with %s's skills.",
			n.cfg.EligibilityThreshold, person.FullName)
		if top, err := n.jobs.TopSkills(ctx, 3); err == nil && len(top) > 0 {
			msg += fmt.Sprintf(" The most in-demand skills right now are %s; picking one of those up would open more doors.", joinNatural(top))
		}
		return Result{Message: msg}
	}

	table := &Table{Columns: []string{"Job Title", "Company", "Location", "Match %"}}
	for _, m := range matches {
		table.Rows = append(table.Rows, []string{m.Title, m.Company, m.Location, fmt.Sprintf("%.2f", m.Pct)})
	}
	return Result{
		Message: fmt.Sprintf("Found %d %s that fit %s's skills:", len(matches), plural(len(matches), "job", "jobs"), person.FullName),
		Table:   table,
	}
}
