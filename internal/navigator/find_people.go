package navigator

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/intent"
	"github.com/dewansh3255/SPARK/internal/profilestore"
)

func (n *Navigator) findPeople(ctx context.Context, log *zap.Logger, t intent.Task) Result {
	filter := profilestore.PeopleFilter{
		Skills:         t.Skills,
		Company:        t.Company,
		ExcludeCompany: t.ExcludeCompany,
		MinExperience:  t.MinExperience,
		Locations:      t.Locations,
	}
	if filter.Empty() {
		return Result{Message: "Please give me something to search people by: skills, a company, a location, or minimum experience."}
	}

	rows, err := n.profiles.FindPeople(ctx, filter)
	if err != nil {
		log.Error("people search failed", zap.Error(err))
		return Result{Message: msgStoreError}
	}
	if len(rows) == 0 {
		return Result{Message: "Nobody matches those criteria."}
	}

	table := &Table{Columns: []string{"Name", "Headline", "Company", "Location", "Experience", "Skills"}}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{
			r.FullName, r.Headline, r.Company, r.Location,
			strconv.Itoa(r.Experience), r.Skills,
		})
	}
	return Result{
		Message: fmt.Sprintf("Found %d %s matching those criteria:", len(rows), plural(len(rows), "person", "people")),
		Table:   table,
	}
}
