package navigator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/intent"
	"github.com/dewansh3255/SPARK/internal/skills"
)

func (n *Navigator) careerPath(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	name := strings.TrimSpace(t.PersonName)
	title := strings.TrimSpace(t.JobTitle)
	company := strings.TrimSpace(t.Company)
	if name == "" || title == "" || company == "" {
		return Result{Message: "To chart a career path I need a person, a target job title, and a company."}
	}

	person, fail, ok := n.resolvePerson(ctx, log, name)
	if !ok {
		return fail
	}

	current, err := n.profiles.SkillsForProfile(ctx, person.ID)
	if err != nil {
		log.Error("loading person skills failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}

	required, err := n.jobs.RequiredSkills(ctx, title, company)
	if err != nil {
		log.Error("loading role requirements failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(required) == 0 {
		return Result{Message: fmt.Sprintf("Sorry, I have no skill data for %q at %q.", title, company)}
	}

	gap := skills.AnalyzeGap(current, required)
	if gap.Empty() {
		return Result{Message: fmt.Sprintf("Good news: %s already has every skill required for %s at %s.",
			person.FullName, title, company)}
	}

	text, err := n.llm.Complete(ctx, buildLearningPathPrompt(person.FullName, title, company, gap))
	if err != nil {
		log.Warn("learning path generation failed", zap.Error(err))
		return Result{Message: gapFallback(person.FullName, title, company, gap)}
	}
	return Result{Message: text}
}

// gapFallback renders the already-computed gap when the model is unavailable.
func gapFallback(name, title, company string, gap skills.Gap) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is what %s still needs for %s at %s.", name, title, company)
	if len(gap.Mandatory) > 0 {
		fmt.Fprintf(&b, " Mandatory: %s.", joinNatural(gap.Mandatory))
	}
	if len(gap.Preferred) > 0 {
		fmt.Fprintf(&b, " Preferred: %s.", joinNatural(gap.Preferred))
	}
	return b.String()
}
