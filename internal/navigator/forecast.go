package navigator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dewansh3255/SPARK/internal/intent"
	"github.com/dewansh3255/SPARK/internal/jobstore"
	"github.com/dewansh3255/SPARK/internal/profilestore"
)

// skillForecast answers "should this company build or buy talent for this
// role". Both stores are read concurrently; a failed branch degrades to
// empty data rather than aborting the forecast.
func (n *Navigator) skillForecast(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	company := strings.TrimSpace(t.Company)
	title := strings.TrimSpace(t.JobTitle)
	if company == "" || title == "" {
		return Result{Message: "To build a forecast I need both the company and the target job title."}
	}

	target, err := n.jobs.MandatorySkillsForTitle(ctx, title)
	if err != nil {
		log.Warn("mandatory skill lookup failed", zap.Error(err))
	}
	if len(target) == 0 {
		// No posting marks anything mandatory; fall back to every required skill.
		target, err = n.jobs.SkillsForTitle(ctx, title)
		if err != nil {
			log.Warn("skill union lookup failed", zap.Error(err))
		}
	}
	if len(target) == 0 {
		return Result{Message: fmt.Sprintf("I have no skill data for %q, so I can't produce a forecast.", title)}
	}

	var internal []profilestore.AuditRow
	var market jobstore.MarketStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := n.profiles.SkillAudit(gctx, company, target)
		if err != nil {
			log.Warn("internal skill audit failed", zap.Error(err))
			return nil
		}
		internal = rows
		return nil
	})
	g.Go(func() error {
		stats, err := n.jobs.MarketAnalysis(gctx, title)
		if err != nil {
			log.Warn("market analysis failed", zap.Error(err))
			return nil
		}
		market = stats
		return nil
	})
	// Branches swallow their own failures; Wait only orders the writes.
	_ = g.Wait()

	text, err := n.llm.Complete(ctx, buildForecastPrompt(company, title, internal, market))
	if err != nil {
		log.Warn("forecast generation failed", zap.Error(err))
		return Result{Message: forecastFallback(company, title, internal, market)}
	}
	return Result{Message: text}
}

// supplyDemand compares how many people hold a skill against how many open
// postings require it.
func (n *Navigator) supplyDemand(ctx context.Context, log *zap.Logger, skill string) Result {
	var supply, demand int

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		c, err := n.profiles.CountProfilesWithSkill(gctx, skill)
		if err != nil {
			log.Warn("supply count failed", zap.Error(err))
			return nil
		}
		supply = c
		return nil
	})
	g.Go(func() error {
		c, err := n.jobs.CountJobsRequiringSkill(gctx, skill)
		if err != nil {
			log.Warn("demand count failed", zap.Error(err))
			return nil
		}
		demand = c
		return nil
	})
	_ = g.Wait()

	label := "shortage"
	if supply > demand {
		label = "surplus"
	}
	return Result{Message: fmt.Sprintf("%d people hold %s while %d open %s require it. That is a talent %s.",
		supply, skill, demand, plural(demand, "posting", "postings"), label)}
}

// forecastFallback summarizes the gathered data when the model is unavailable.
func forecastFallback(company, title string, internal []profilestore.AuditRow, market jobstore.MarketStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Forecast data for %s at %s.", title, company)
	if len(internal) == 0 {
		b.WriteString(" No employees hold two or more of the role's key skills.")
	} else {
		names := make([]string, len(internal))
		for i, row := range internal {
			names[i] = row.FullName
		}
		fmt.Fprintf(&b, " Internal candidates with overlapping skills: %s.", joinNatural(names))
	}
	fmt.Fprintf(&b, " The market lists %d open %s", market.OpenJobs, plural(market.OpenJobs, "posting", "postings"))
	if len(market.TopLocations) > 0 {
		fmt.Fprintf(&b, ", mostly in %s", joinNatural(market.TopLocations))
	}
	b.WriteString(".")
	return b.String()
}
