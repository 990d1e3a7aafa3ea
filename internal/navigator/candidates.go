package navigator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/identity"
	"github.com/dewansh3255/SPARK/internal/intent"
	"github.com/dewansh3255/SPARK/internal/skills"
)

// Below this similarity a stored title is not considered a plausible
// reading of what the user typed.
const titleMatchCutoff = 60

func (n *Navigator) candidateSearch(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	title := strings.TrimSpace(t.JobTitle)
	if title == "" {
		return Result{Message: "Please name the role to search candidates for."}
	}

	target, err := n.jobs.SkillsForTitle(ctx, title)
	if err != nil {
		log.Error("loading role skills failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}

	note := ""
	if len(target) == 0 {
		titles, err := n.jobs.Titles(ctx)
		if err != nil {
			log.Error("listing titles failed", zap.Error(err))
			return Result{Message: msgStoreError}
		}
		best, score := closestTitle(title, titles)
		if best == "" || score < titleMatchCutoff {
			return Result{Message: fmt.Sprintf("I couldn't find any posting titled %q or anything close to it.", title)}
		}
		log.Info("fuzzy title resolution", zap.String("query", title), zap.String("resolved", best), zap.Float64("score", score))
		note = fmt.Sprintf(" (interpreting %q as %q)", title, best)
		title = best

		target, err = n.jobs.SkillsForTitle(ctx, title)
		if err != nil {
			log.Error("loading role skills failed", zap.Error(err))
			return Result{Message: msgStoreError}
		}
	}
	if len(target) == 0 {
		return Result{Message: fmt.Sprintf("The %q postings don't list any required skills, so I can't rank candidates.", title)}
	}

	cands, err := n.profiles.MatchCandidates(ctx, target)
	if err != nil {
		log.Error("candidate matching failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}

	table := &Table{Columns: []string{"Name", "Headline", "Company", "Experience", "Match %"}}
	for _, c := range cands {
		pct := skills.Percent(c.Matched, len(target))
		if !skills.MeetsThreshold(pct, n.cfg.CandidateThreshold) {
			continue
		}
		table.Rows = append(table.Rows, []string{
			c.FullName, c.Headline, c.Company,
			strconv.Itoa(c.Experience), fmt.Sprintf("%.2f", pct),
		})
	}
	if len(table.Rows) == 0 {
		return Result{Message: fmt.Sprintf("Nobody reaches a %.0f%% skill match for the %s role%s.",
			n.cfg.CandidateThreshold, title, note)}
	}
	return Result{
		Message: fmt.Sprintf("Found %d %s for the %s role%s:",
			len(table.Rows), plural(len(table.Rows), "candidate", "candidates"), title, note),
		Table: table,
	}
}

func closestTitle(query string, titles []string) (string, float64) {
	var best string
	var bestScore float64
	for _, title := range titles {
		if s := identity.Similarity(query, title); s > bestScore {
			best, bestScore = title, s
		}
	}
	return best, bestScore
}
