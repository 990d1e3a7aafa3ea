// Package seed fills both stores with a synthetic corpus of profiles and
// postings built from role archetypes, so the query engine has realistic
// data to work against out of the box.
package seed

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/dewansh3255/SPARK/internal/jobstore"
	"github.com/dewansh3255/SPARK/internal/profilestore"
	"github.com/dewansh3255/SPARK/internal/skills"
)

type archetype struct {
	titles    []string
	core      []string
	secondary []string
}

var skillsList = []string{
	"Python", "Java", "Go", "JavaScript", "C++", "C#", "TypeScript", "PHP", "Ruby", "Swift", "Kotlin", "R", "Scala",
	"React", "Angular", "Vue.js", "Node.js", "Django", "Flask", "Spring Boot", "ASP.NET", "HTML5", "CSS3",
	"SQL", "NoSQL", "MongoDB", "PostgreSQL", "MySQL", "SQL Server", "Oracle", "Redis", "Cassandra", "Elasticsearch",
	"Machine Learning", "Statistics", "Deep Learning", "TensorFlow", "PyTorch", "Scikit-learn", "Pandas", "NumPy", "NLP", "Computer Vision",
	"Data Warehousing", "ETL", "Cloud (AWS)", "Cloud (Azure)", "Cloud (GCP)", "Docker", "Kubernetes", "CI/CD", "Terraform", "Ansible", "Jenkins",
	"Git", "PowerBI", "Tableau", "Qlik Sense", "Looker", "Data Visualization", "Agile", "Scrum", "JIRA", "Communication", "Project Management",
	"Stakeholder Management", "Kanban", "Microservices", "REST APIs", "System Design", "Object-Oriented Programming (OOP)", "Data Structures & Algorithms",
}

var companies = []string{
	"Google", "Microsoft", "Amazon", "Salesforce", "Adobe", "Oracle", "SAP", "VMware", "Intel", "IBM",
	"TCS", "Infosys", "Wipro", "HCL Tech", "Tech Mahindra", "Capgemini", "Accenture", "Deloitte",
	"Flipkart", "Swiggy", "Zomato", "Paytm", "Ola Cabs", "BYJU'S", "Zerodha", "PhonePe", "Razorpay",
	"Freshworks", "Zoho", "Myntra", "Publicis Sapient", "IIIT-D", "DTU", "IIT Delhi", "NSUT",
}

var cities = []string{"Bangalore", "Pune", "Hyderabad", "Mumbai", "Chennai", "Delhi", "Gurgaon", "Noida", "Kolkata"}

var firstNames = []string{
	"Aarav", "Vivaan", "Aditya", "Arjun", "Ishaan", "Rohan", "Kabir", "Dhruv", "Rahul", "Siddharth",
	"Ananya", "Diya", "Ishita", "Kavya", "Meera", "Priya", "Riya", "Sneha", "Tanvi", "Zara",
}

var lastNames = []string{
	"Sharma", "Verma", "Gupta", "Mehta", "Iyer", "Nair", "Reddy", "Singh", "Kapoor", "Joshi",
	"Chopra", "Malhotra", "Bhatt", "Rao", "Das", "Mukherjee", "Banerjee", "Kulkarni", "Desai", "Patel",
}

var archetypes = []archetype{
	{
		titles:    []string{"Data Scientist", "AI/ML Engineer", "Machine Learning Scientist"},
		core:      []string{"Python", "SQL", "Machine Learning", "Pandas", "Scikit-learn", "Statistics"},
		secondary: []string{"TensorFlow", "PyTorch", "NLP", "Deep Learning", "Tableau", "PowerBI"},
	},
	{
		titles:    []string{"Backend Engineer", "Software Engineer (Backend)", "API Developer"},
		core:      []string{"Python", "Java", "Go", "Node.js", "SQL", "PostgreSQL", "REST APIs", "System Design"},
		secondary: []string{"Django", "Flask", "Spring Boot", "Microservices", "Docker", "Kubernetes", "Redis", "NoSQL"},
	},
	{
		titles:    []string{"Frontend Developer", "UI Engineer", "Web Developer"},
		core:      []string{"JavaScript", "React", "HTML5", "CSS3", "Git"},
		secondary: []string{"Angular", "Vue.js", "TypeScript", "Node.js", "REST APIs", "CI/CD"},
	},
	{
		titles:    []string{"Cloud Engineer", "DevOps Engineer", "SRE"},
		core:      []string{"Cloud (AWS)", "Docker", "Kubernetes", "CI/CD", "Terraform", "Jenkins", "Ansible"},
		secondary: []string{"Cloud (Azure)", "Cloud (GCP)", "Go", "Python", "System Design", "Microservices"},
	},
	{
		titles:    []string{"Data Analyst", "Business Intelligence Analyst", "BI Developer"},
		core:      []string{"SQL", "Tableau", "PowerBI", "Data Visualization", "Pandas", "Communication"},
		secondary: []string{"Python", "R", "Statistics", "ETL", "Data Warehousing", "Scikit-learn"},
	},
	{
		titles:    []string{"Product Manager", "Engineering Manager", "Project Manager"},
		core:      []string{"Agile", "Scrum", "JIRA", "Project Management", "Communication", "Stakeholder Management"},
		secondary: []string{"System Design", "Kanban", "CI/CD", "Git"},
	},
}

// Run generates numProfiles synthetic profiles and numJobs synthetic
// postings and writes them through the store CRUD paths. A nil rng gets a
// fixed-seed source so repeated runs produce the same corpus.
func Run(ctx context.Context, profiles *profilestore.Store, jobs *jobstore.Store, numProfiles, numJobs int, rng *rand.Rand) error {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	for i := 0; i < numProfiles; i++ {
		arch := archetypes[rng.Intn(len(archetypes))]
		in := profilestore.ProfileInput{
			FullName:   randomName(rng),
			Headline:   pick(rng, arch.titles),
			Experience: rng.Intn(16),
			Company:    pick(rng, companies),
			Location:   pick(rng, cities),
			Skills:     profileSkills(rng, arch),
		}
		if err := profiles.CreateProfile(ctx, in); err != nil {
			return fmt.Errorf("seeding profile %d: %w", i+1, err)
		}
	}

	for i := 0; i < numJobs; i++ {
		arch := archetypes[rng.Intn(len(archetypes))]
		in := jobstore.JobInput{
			Title:    pick(rng, arch.titles),
			Company:  pick(rng, companies),
			Location: pick(rng, cities),
			Skills:   jobSkills(rng, arch),
		}
		if err := jobs.CreateJob(ctx, in); err != nil {
			return fmt.Errorf("seeding job %d: %w", i+1, err)
		}
	}
	return nil
}

// profileSkills draws a core slice, a secondary slice, and a few skills from
// the wider corpus, mirroring how real profiles mix specialization with
// scattered extras.
func profileSkills(rng *rand.Rand, arch archetype) []string {
	numCore := 3 + rng.Intn(len(arch.core)-2)
	numSecondary := 2 + rng.Intn(len(arch.secondary)-1)

	picked := map[string]bool{}
	var out []string
	for _, s := range sample(rng, arch.core, numCore) {
		picked[s] = true
		out = append(out, s)
	}
	for _, s := range sample(rng, arch.secondary, numSecondary) {
		if !picked[s] {
			picked[s] = true
			out = append(out, s)
		}
	}

	var rest []string
	for _, s := range skillsList {
		if !picked[s] {
			rest = append(rest, s)
		}
	}
	out = append(out, sample(rng, rest, rng.Intn(4))...)
	return out
}

// jobSkills marks core picks Mandatory and secondary picks Preferred.
func jobSkills(rng *rand.Rand, arch archetype) []jobstore.SkillRequirement {
	numMandatory := 2 + rng.Intn(len(arch.core)-1)
	numPreferred := 1 + rng.Intn(len(arch.secondary))

	seen := map[string]bool{}
	var out []jobstore.SkillRequirement
	for _, s := range sample(rng, arch.core, numMandatory) {
		seen[s] = true
		out = append(out, jobstore.SkillRequirement{Name: s, Importance: skills.ImportanceMandatory})
	}
	for _, s := range sample(rng, arch.secondary, numPreferred) {
		if !seen[s] {
			out = append(out, jobstore.SkillRequirement{Name: s, Importance: skills.ImportancePreferred})
		}
	}
	return out
}

func randomName(rng *rand.Rand) string {
	return pick(rng, firstNames) + " " + pick(rng, lastNames)
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}

func sample(rng *rand.Rand, items []string, n int) []string {
	if n >= len(items) {
		n = len(items)
	}
	idx := rng.Perm(len(items))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = items[j]
	}
	return out
}
