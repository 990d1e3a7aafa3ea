package profilestore

// Profile is one stored person.
type Profile struct {
	ID         int64
	FullName   string
	Headline   string
	Experience int
	Company    string
	Location   string
}

// ProfileRef is the (id, name) pair the identity resolver scores against.
type ProfileRef struct {
	ID       int64
	FullName string
}

// ProfileRow is a profile with its skills aggregated for display.
type ProfileRow struct {
	Profile
	Skills string
}

// ProfileInput carries the fields accepted by create and update.
type ProfileInput struct {
	FullName   string   `json:"full_name"`
	Headline   string   `json:"headline"`
	Experience int      `json:"years_of_experience"`
	Company    string   `json:"company_name"`
	Location   string   `json:"location"`
	Skills     []string `json:"skills"`
}

// PeopleFilter narrows a people search. Skills must all be held; Locations
// match any; Company and ExcludeCompany are substring filters.
type PeopleFilter struct {
	Skills         []string
	Company        string
	ExcludeCompany string
	MinExperience  int
	Locations      []string
}

// Empty reports whether no filter criteria were supplied.
func (f PeopleFilter) Empty() bool {
	return len(f.Skills) == 0 && f.Company == "" && f.ExcludeCompany == "" &&
		f.MinExperience <= 0 && len(f.Locations) == 0
}

// Candidate is a profile ranked by how many target skills it holds.
type Candidate struct {
	ID         int64
	FullName   string
	Headline   string
	Company    string
	Location   string
	Experience int
	Matched    int
}

// AuditRow is one employee surfaced by the internal skill audit: the matching
// skills they hold and how many of the target set that is.
type AuditRow struct {
	FullName string
	Skills   string
	Matched  int
}

// CompanyCount is a company with its profile headcount.
type CompanyCount struct {
	Company string
	Count   int
}
