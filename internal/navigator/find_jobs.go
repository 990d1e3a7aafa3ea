package navigator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/intent"
	"github.com/dewansh3255/SPARK/internal/jobstore"
)

func (n *Navigator) findJobs(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	filter := jobstore.JobFilter{
		Company:   t.Company,
		Title:     t.JobTitle,
		Locations: t.Locations,
		Skills:    t.Skills,
	}
	if filter.Empty() {
		return Result{Message: "Please give me something to search jobs by: a company, a job title, a location, or skills."}
	}

	rows, err := n.jobs.FindJobs(ctx, filter)
	if err != nil {
		log.Error("job search failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(rows) == 0 {
		return Result{Message: "No open jobs match those criteria."}
	}

	table := &Table{Columns: []string{"Job Title", "Company", "Location", "Required Skills"}}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{r.Title, r.Company, r.Location, r.Skills})
	}
	return Result{
		Message: fmt.Sprintf("Found %d open %s:", len(rows), plural(len(rows), "job", "jobs")),
		Table:   table,
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
