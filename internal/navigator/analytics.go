package navigator

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/intent"
)

// analytics routes a numeric question by its (metric, target, group-by)
// triple. An unrecognized combination gets an explicit refusal instead of a
// guessed answer.
func (n *Navigator) analytics(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	metric := strings.ToLower(strings.TrimSpace(t.Metric))
	target := strings.ToLower(strings.TrimSpace(t.Target))
	groupBy := strings.ToLower(strings.TrimSpace(t.GroupBy))

	switch {
	case metric == "average_experience" && target == "profiles":
		return n.averageExperience(ctx, log, t)
	case metric == "headcount" && target == "profiles" && groupBy == "company":
		return n.headcountByCompany(ctx, log, t)
	case metric == "headcount" && target == "jobs" && groupBy == "title":
		return n.postingsByTitle(ctx, log, t)
	case metric == "in_demand_skills" && target == "jobs":
		return n.inDemandSkills(ctx, log, t)
	case metric == "top_locations" && target == "jobs":
		return n.topLocations(ctx, log, t)
	case metric == "supply_demand":
		if len(t.Skills) == 0 {
			return Result{Message: "Tell me which skill to compare supply and demand for."}
		}
		return n.supplyDemand(ctx, log, t.Skills[0])
	default:
		return Result{Message: fmt.Sprintf("I don't have a calculation for metric %q on %q grouped by %q.",
			t.Metric, t.Target, t.GroupBy)}
	}
}

func (n *Navigator) averageExperience(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	if len(t.Skills) == 0 {
		return Result{Message: "Tell me which skill to average experience over."}
	}
	skill := t.Skills[0]

	avg, ok, err := n.profiles.AvgExperienceForSkill(ctx, skill)
	if err != nil {
		log.Error("experience average failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if !ok {
		return Result{Message: fmt.Sprintf("Nobody in the profile store knows %s yet.", skill)}
	}
	return Result{Message: fmt.Sprintf("People who know %s have %.1f years of experience on average.", skill, avg)}
}

func (n *Navigator) headcountByCompany(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	top, err := n.profiles.TopCompanies(ctx, t.MinExperience, t.Limit)
	if err != nil {
		log.Error("company ranking failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(top) == 0 {
		return Result{Message: "No company matches that experience floor."}
	}

	table := &Table{Columns: []string{"Company", "People"}}
	for _, c := range top {
		table.Rows = append(table.Rows, []string{c.Company, strconv.Itoa(c.Count)})
	}
	msg := "Companies ranked by headcount:"
	if t.MinExperience > 0 {
		msg = fmt.Sprintf("Companies ranked by people with at least %d years of experience:", t.MinExperience)
	}
	return Result{Message: msg, Table: table}
}

func (n *Navigator) postingsByTitle(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	rows, err := n.jobs.PostingsByTitle(ctx, t.Limit)
	if err != nil {
		log.Error("posting count failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(rows) == 0 {
		return Result{Message: "There are no open postings in the job store."}
	}

	table := &Table{Columns: []string{"Job Title", "Open Postings"}}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{r.Title, strconv.Itoa(r.Count)})
	}
	return Result{Message: "Open postings by job title:", Table: table}
}

func (n *Navigator) inDemandSkills(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	title := strings.TrimSpace(t.JobTitle)
	if title == "" {
		return Result{Message: "Tell me which job title to rank in-demand skills for."}
	}

	demand, err := n.jobs.InDemandMandatorySkills(ctx, title, t.Limit)
	if err != nil {
		log.Error("skill demand ranking failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(demand) == 0 {
		return Result{Message: fmt.Sprintf("No posting for %q marks any skill as mandatory.", title)}
	}

	table := &Table{Columns: []string{"Skill", "Postings Requiring It"}}
	for _, d := range demand {
		table.Rows = append(table.Rows, []string{d.Skill, strconv.Itoa(d.Count)})
	}
	return Result{Message: fmt.Sprintf("Most demanded mandatory skills for %s roles:", title), Table: table}
}

func (n *Navigator) topLocations(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	title := strings.TrimSpace(t.JobTitle)
	if title == "" {
		return Result{Message: "Tell me which job title to rank locations for."}
	}

	locations, err := n.jobs.TopLocationsForTitle(ctx, title, t.Limit)
	if err != nil {
		log.Error("location ranking failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(locations) == 0 {
		return Result{Message: fmt.Sprintf("No posting for %q lists a location.", title)}
	}

	table := &Table{Columns: []string{"Location", "Open Postings"}}
	for _, l := range locations {
		table.Rows = append(table.Rows, []string{l.Location, strconv.Itoa(l.Count)})
	}
	return Result{Message: fmt.Sprintf("Top locations hiring for %s roles:", title), Table: table}
}
