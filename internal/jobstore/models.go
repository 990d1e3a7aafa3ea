package jobstore

// Job is one stored posting.
type Job struct {
	ID       int64
	Title    string
	Company  string
	Location string
}

// JobRow is a posting with its required skills aggregated for display.
type JobRow struct {
	Job
	Skills string
}

// SkillRequirement is one required skill with its importance tier.
type SkillRequirement struct {
	Name       string `json:"name"`
	Importance string `json:"importance"`
}

// JobInput carries the fields accepted by create and update.
type JobInput struct {
	Title    string             `json:"job_title"`
	Company  string             `json:"company_name"`
	Location string             `json:"location"`
	Skills   []SkillRequirement `json:"skills"`
}

// JobFilter narrows a posting search. Skills must all be required by the
// posting; Locations match any; Company and Title are substring filters.
type JobFilter struct {
	Company   string
	Title     string
	Locations []string
	Skills    []string
}

// Empty reports whether no filter criteria were supplied.
func (f JobFilter) Empty() bool {
	return f.Company == "" && f.Title == "" && len(f.Locations) == 0 && len(f.Skills) == 0
}

// JobMatch is a posting scored against a person's skill set.
type JobMatch struct {
	Title    string
	Company  string
	Location string
	Pct      float64
}

// SkillCount is a skill with the number of postings requiring it.
type SkillCount struct {
	Skill string
	Count int
}

// LocationCount is a location with its posting count.
type LocationCount struct {
	Location string
	Count    int
}

// TitleCount is a job title with its posting count.
type TitleCount struct {
	Title string
	Count int
}

// MarketStats summarizes external demand for a role.
type MarketStats struct {
	OpenJobs     int
	TopLocations []string
}
