package navigator

import (
	_ "embed"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/dewansh3255/SPARK/internal/jobstore"
	"github.com/dewansh3255/SPARK/internal/profilestore"
	"github.com/dewansh3255/SPARK/internal/skills"
)

//go:embed learning_path.md
var learningPathTemplate string

//go:embed forecast.md
var forecastTemplate string

func buildLearningPathPrompt(name, title, company string, gap skills.Gap) string {
	r := strings.NewReplacer(
		"{{NAME}}", name,
		"{{TITLE}}", title,
		"{{COMPANY}}", company,
		"{{MANDATORY}}", listOrNone(gap.Mandatory),
		"{{PREFERRED}}", listOrNone(gap.Preferred),
	)
	return r.Replace(learningPathTemplate)
}

func buildForecastPrompt(company, title string, internal []profilestore.AuditRow, market jobstore.MarketStats) string {
	r := strings.NewReplacer(
		"{{COMPANY}}", company,
		"{{TITLE}}", title,
		"{{INTERNAL}}", auditJSON(internal),
		"{{OPEN_JOBS}}", strconv.Itoa(market.OpenJobs),
		"{{LOCATIONS}}", listOrNone(market.TopLocations),
	)
	return r.Replace(forecastTemplate)
}

// auditJSON serializes the internal audit compactly for the prompt.
func auditJSON(rows []profilestore.AuditRow) string {
	type promptRow struct {
		Name           string `json:"name"`
		MatchingSkills string `json:"matching_skills"`
		Matched        int    `json:"matched"`
	}
	out := make([]promptRow, len(rows))
	for i, r := range rows {
		out[i] = promptRow{Name: r.FullName, MatchingSkills: r.Skills, Matched: r.Matched}
	}
	b, err := json.Marshal(out)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
