// Package skills holds the pure skill-gap and match-percentage arithmetic
// shared by the query handlers. It performs no I/O.
package skills

import (
	"math"
	"sort"
	"strings"
)

// Importance tiers a job posting can attach to a required skill.
const (
	ImportanceMandatory = "Mandatory"
	ImportancePreferred = "Preferred"
)

// Required is one skill requirement attached to a job posting.
type Required struct {
	Name       string
	Importance string
}

// Gap lists what a person is missing for a role, split by importance.
// Both slices are deduplicated and sorted; a skill never appears in both.
type Gap struct {
	Mandatory []string
	Preferred []string
}

// Empty reports whether the person already holds every required skill.
func (g Gap) Empty() bool {
	return len(g.Mandatory) == 0 && len(g.Preferred) == 0
}

// AnalyzeGap compares a person's current skills against a job's requirements.
// Membership is case-insensitive; the returned names keep the casing they had
// in the requirements list. Mandatory gaps take precedence: a skill required
// at both tiers is reported only under Mandatory.
func AnalyzeGap(current []string, required []Required) Gap {
	have := nameSet(current)

	mandatory := map[string]string{}
	preferred := map[string]string{}
	for _, r := range required {
		key := normalize(r.Name)
		if key == "" || have[key] {
			continue
		}
		if r.Importance == ImportanceMandatory {
			if _, ok := mandatory[key]; !ok {
				mandatory[key] = strings.TrimSpace(r.Name)
			}
		} else {
			if _, ok := preferred[key]; !ok {
				preferred[key] = strings.TrimSpace(r.Name)
			}
		}
	}
	for key := range mandatory {
		delete(preferred, key)
	}

	return Gap{
		Mandatory: sortedValues(mandatory),
		Preferred: sortedValues(preferred),
	}
}

// MatchPercent is the share of wanted skills present in the have list, as a
// percentage rounded to two decimals. An empty want list scores 0.
func MatchPercent(have, want []string) float64 {
	wanted := nameSet(want)
	if len(wanted) == 0 {
		return 0
	}

	held := nameSet(have)
	matched := 0
	for key := range wanted {
		if held[key] {
			matched++
		}
	}
	return Percent(matched, len(wanted))
}

// Percent converts a matched/total pair into a two-decimal percentage.
// A zero total scores 0, never a division fault.
func Percent(matched, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(matched)/float64(total)*100*100) / 100
}

// MeetsThreshold reports whether pct clears min; ties count as a pass.
func MeetsThreshold(pct, min float64) bool {
	return pct >= min
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if key := normalize(n); key != "" {
			set[key] = true
		}
	}
	return set
}

func sortedValues(m map[string]string) []string {
	if len(m) == 0 {
		return nil
	}
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
