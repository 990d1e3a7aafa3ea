package navigator

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/intent"
)

func (n *Navigator) profileAggregation(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	company := strings.TrimSpace(t.Company)
	if len(t.Skills) == 0 && company == "" {
		return Result{Message: "Tell me which skills or which company to count people for."}
	}

	count, err := n.profiles.CountProfiles(ctx, t.Skills, company)
	if err != nil {
		log.Error("profile aggregation failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}

	var criteria []string
	if len(t.Skills) > 0 {
		criteria = append(criteria, "know "+joinNatural(t.Skills))
	}
	if company != "" {
		criteria = append(criteria, "work at "+company)
	}

	if count == 1 {
		return Result{Message: fmt.Sprintf("There is 1 person who %s.", strings.Join(criteria, " and "))}
	}
	return Result{Message: fmt.Sprintf("There are %d people who %s.", count, strings.Join(criteria, " and "))}
}
