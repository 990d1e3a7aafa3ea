// Package intent turns a free-text utterance into typed Tasks via the
// language model: prompt construction on one side, strict parsing of the
// model's JSON on the other.
package intent

// Intent tags the decomposition model may emit.
const (
	IntentCareerPath         = "CAREER_PATH"
	IntentFindJobs           = "FIND_JOBS"
	IntentEligibleJobs       = "ELIGIBLE_JOBS"
	IntentCandidateSearch    = "CANDIDATE_SEARCH"
	IntentFindPeople         = "FIND_PEOPLE"
	IntentAnalytics          = "ANALYTICS"
	IntentProfileAggregation = "PROFILE_AGGREGATION"
	IntentSkillForecast      = "SKILL_FORECAST"
	IntentSkillLookup        = "SKILL_LOOKUP"
	IntentUserSkillLookup    = "USER_SKILL_LOOKUP"
	IntentUnknown            = "UNKNOWN"
)

// Task is one decomposed unit of user intent. Every slot except Intent is
// optional; the model sends null for absent slots and the zero value stands
// in after decoding.
type Task struct {
	Intent         string   `mapstructure:"intent"`
	PersonName     string   `mapstructure:"person_name"`
	Company        string   `mapstructure:"company_name"`
	JobTitle       string   `mapstructure:"job_title"`
	Locations      []string `mapstructure:"locations"`
	Skills         []string `mapstructure:"skills"`
	MinExperience  int      `mapstructure:"min_experience"`
	ExcludeCompany string   `mapstructure:"exclude_company"`
	Metric         string   `mapstructure:"metric"`
	Target         string   `mapstructure:"target"`
	GroupBy        string   `mapstructure:"group_by"`
	Limit          int      `mapstructure:"limit"`
}
