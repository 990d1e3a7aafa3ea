package skills

import "testing"

func TestAnalyzeGapSplitsByImportance(t *testing.T) {
	current := []string{"Python", "SQL"}
	required := []Required{
		{Name: "Python", Importance: ImportanceMandatory},
		{Name: "Machine Learning", Importance: ImportanceMandatory},
		{Name: "TensorFlow", Importance: ImportanceMandatory},
		{Name: "SQL", Importance: ImportancePreferred},
		{Name: "Docker", Importance: ImportancePreferred},
	}

	gap := AnalyzeGap(current, required)

	wantMandatory := []string{"Machine Learning", "TensorFlow"}
	if len(gap.Mandatory) != len(wantMandatory) {
		t.Fatalf("mandatory gap = %v, want %v", gap.Mandatory, wantMandatory)
	}
	for i, s := range wantMandatory {
		if gap.Mandatory[i] != s {
			t.Errorf("mandatory[%d] = %q, want %q", i, gap.Mandatory[i], s)
		}
	}
	if len(gap.Preferred) != 1 || gap.Preferred[0] != "Docker" {
		t.Errorf("preferred gap = %v, want [Docker]", gap.Preferred)
	}
}

func TestAnalyzeGapCaseInsensitive(t *testing.T) {
	gap := AnalyzeGap(
		[]string{"python", "KUBERNETES"},
		[]Required{
			{Name: "Python", Importance: ImportanceMandatory},
			{Name: "Kubernetes", Importance: ImportancePreferred},
			{Name: "Go", Importance: ImportanceMandatory},
		},
	)
	if len(gap.Mandatory) != 1 || gap.Mandatory[0] != "Go" {
		t.Errorf("mandatory gap = %v, want [Go]", gap.Mandatory)
	}
	if len(gap.Preferred) != 0 {
		t.Errorf("preferred gap = %v, want empty", gap.Preferred)
	}
}

func TestAnalyzeGapMandatoryWinsOverPreferred(t *testing.T) {
	gap := AnalyzeGap(nil, []Required{
		{Name: "Rust", Importance: ImportancePreferred},
		{Name: "Rust", Importance: ImportanceMandatory},
	})
	if len(gap.Mandatory) != 1 || gap.Mandatory[0] != "Rust" {
		t.Errorf("mandatory gap = %v, want [Rust]", gap.Mandatory)
	}
	if len(gap.Preferred) != 0 {
		t.Errorf("Rust reported twice: preferred gap = %v", gap.Preferred)
	}
}

func TestAnalyzeGapEmptyWhenFullyQualified(t *testing.T) {
	gap := AnalyzeGap(
		[]string{"Go", "Docker"},
		[]Required{
			{Name: "Go", Importance: ImportanceMandatory},
			{Name: "Docker", Importance: ImportancePreferred},
		},
	)
	if !gap.Empty() {
		t.Errorf("gap = %+v, want empty", gap)
	}
}

func TestMatchPercent(t *testing.T) {
	tests := []struct {
		name string
		have []string
		want []string
		pct  float64
	}{
		{"exact half", []string{"Python", "SQL"}, []string{"Python", "SQL", "Go", "Rust"}, 50},
		{"full match", []string{"Go"}, []string{"go"}, 100},
		{"no overlap", []string{"Go"}, []string{"Rust"}, 0},
		{"empty want", []string{"Go"}, nil, 0},
		{"empty have", nil, []string{"Go"}, 0},
		{"third rounded", []string{"Go"}, []string{"Go", "Rust", "SQL"}, 33.33},
		{"two thirds rounded", []string{"Go", "Rust"}, []string{"Go", "Rust", "SQL"}, 66.67},
		{"duplicate want counted once", []string{"Go"}, []string{"Go", "go", "Rust"}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchPercent(tt.have, tt.want); got != tt.pct {
				t.Errorf("MatchPercent(%v, %v) = %v, want %v", tt.have, tt.want, got, tt.pct)
			}
		})
	}
}

func TestMeetsThresholdInclusive(t *testing.T) {
	if !MeetsThreshold(40, 40) {
		t.Error("score equal to the threshold must pass")
	}
	if MeetsThreshold(39.99, 40) {
		t.Error("score below the threshold must fail")
	}
}
