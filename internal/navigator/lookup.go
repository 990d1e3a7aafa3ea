package navigator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/intent"
	"github.com/dewansh3255/SPARK/internal/skills"
)

func (n *Navigator) skillLookup(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	title := strings.TrimSpace(t.JobTitle)
	company := strings.TrimSpace(t.Company)
	if title == "" || company == "" {
		return Result{Message: "Please name both the job title and the company to look up its required skills."}
	}

	required, err := n.jobs.RequiredSkills(ctx, title, company)
	if err != nil {
		log.Error("loading role requirements failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(required) == 0 {
		return Result{Message: fmt.Sprintf("Sorry, I have no skill data for %q at %q.", title, company)}
	}

	var mandatory, preferred []string
	for _, r := range required {
		if r.Importance == skills.ImportanceMandatory {
			mandatory = append(mandatory, r.Name)
		} else {
			preferred = append(preferred, r.Name)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The %s role at %s requires:", title, company)
	if len(mandatory) > 0 {
		fmt.Fprintf(&b, " Mandatory: %s.", joinNatural(mandatory))
	}
	if len(preferred) > 0 {
		fmt.Fprintf(&b, " Preferred: %s.", joinNatural(preferred))
	}
	return Result{Message: b.String()}
}

func (n *Navigator) userSkillLookup(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	if strings.TrimSpace(t.PersonName) == "" {
		return Result{Message: "Please tell me whose skills to look up."}
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
		return Result{Message: fmt.Sprintf("%s has no skills on record yet.", person.FullName)}
	}
	return Result{Message: fmt.Sprintf("%s knows %s.", person.FullName, joinNatural(held))}
}
