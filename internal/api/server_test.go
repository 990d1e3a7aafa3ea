package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/identity"
	"github.com/dewansh3255/SPARK/internal/jobstore"
	"github.com/dewansh3255/SPARK/internal/navigator"
	"github.com/dewansh3255/SPARK/internal/profilestore"
)

type scriptedCompleter struct {
	responses []string
	calls     int
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	i := s.calls
	s.calls++
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func newTestHandler(t *testing.T, llm navigator.Completer) http.Handler {
	t.Helper()

	profiles, err := profilestore.Open(":memory:")
	if err != nil {
		t.Fatalf("opening profile store: %v", err)
	}
	t.Cleanup(func() { profiles.Close() })

	jobs, err := jobstore.Open(":memory:")
	if err != nil {
		t.Fatalf("opening job store: %v", err)
	}
	t.Cleanup(func() { jobs.Close() })

	resolver := identity.NewResolver(profiles, 80, 95)
	nav := navigator.New(profiles, jobs, resolver, llm, zap.NewNop(), navigator.Config{})
	return NewHandler(Deps{Navigator: nav, Log: zap.NewNop()})
}

func doJSON(t *testing.T, h http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestHealth(t *testing.T) {
	h := newTestHandler(t, &scriptedCompleter{})

	w := doJSON(t, h, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want %q", body["status"], "ok")
	}
}

func TestQueryEndpoint(t *testing.T) {
	llm := &scriptedCompleter{responses: []string{
		`[{"intent": "FIND_JOBS", "company_name": "Innovate Inc."}]`,
	}}
	h := newTestHandler(t, llm)

	create := doJSON(t, h, http.MethodPost, "/jobs", `{
		"job_title": "Data Scientist",
		"company_name": "Innovate Inc.",
		"location": "Berlin",
		"skills": [{"name": "Python", "importance": "Mandatory"}]
	}`)
	if create.Code != http.StatusOK {
		t.Fatalf("create job status = %d: %s", create.Code, create.Body)
	}

	w := doJSON(t, h, http.MethodPost, "/query", `{"query": "Find jobs at Innovate Inc."}`)
	if w.Code != http.StatusOK {
		t.Fatalf("query status = %d: %s", w.Code, w.Body)
	}
	var body struct {
		Results []navigator.Result `json:"results"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(body.Results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(body.Results), body.Results)
	}
	if body.Results[0].Table == nil || len(body.Results[0].Table.Rows) != 1 {
		t.Errorf("result should carry the Innovate posting: %+v", body.Results[0])
	}
}

func TestQueryRejectsMissingQuery(t *testing.T) {
	h := newTestHandler(t, &scriptedCompleter{})

	w := doJSON(t, h, http.MethodPost, "/query", `{}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	w = doJSON(t, h, http.MethodPost, "/query", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", w.Code)
	}
}

func TestProfileCRUDRoundTrip(t *testing.T) {
	h := newTestHandler(t, &scriptedCompleter{})

	w := doJSON(t, h, http.MethodPost, "/profiles", `{
		"full_name": "Jane Doe",
		"headline": "Data Scientist",
		"years_of_experience": 6,
		"company_name": "Innovate Inc.",
		"location": "Berlin",
		"skills": ["Python", "SQL"]
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d: %s", w.Code, w.Body)
	}
	assertOK(t, w, true)

	w = doJSON(t, h, http.MethodGet, "/profiles", "")
	var listed []struct {
		ID       int64  `json:"id"`
		FullName string `json:"full_name"`
		Skills   string `json:"skills"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decoding list: %v", err)
	}
	if len(listed) != 1 || listed[0].FullName != "Jane Doe" {
		t.Fatalf("listed = %+v, want Jane Doe", listed)
	}
	if !strings.Contains(listed[0].Skills, "Python") {
		t.Errorf("skills = %q, want Python included", listed[0].Skills)
	}

	id := listed[0].ID
	w = doJSON(t, h, http.MethodGet, "/profiles/"+itoa(id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d: %s", w.Code, w.Body)
	}
	var got struct {
		FullName string   `json:"full_name"`
		Skills   []string `json:"skills"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding profile: %v", err)
	}
	if got.FullName != "Jane Doe" || len(got.Skills) != 2 {
		t.Errorf("got %+v, want Jane Doe with 2 skills", got)
	}

	w = doJSON(t, h, http.MethodPut, "/profiles/"+itoa(id), `{
		"full_name": "Jane Doe",
		"years_of_experience": 7,
		"skills": ["Go"]
	}`)
	assertOK(t, w, true)

	w = doJSON(t, h, http.MethodDelete, "/profiles/"+itoa(id), "")
	assertOK(t, w, true)

	// Deleting a gone row reports failure, not an HTTP error.
	w = doJSON(t, h, http.MethodDelete, "/profiles/"+itoa(id), "")
	if w.Code != http.StatusOK {
		t.Fatalf("repeat delete status = %d, want 200", w.Code)
	}
	assertOK(t, w, false)
}

func TestJobCRUDReportsFailure(t *testing.T) {
	h := newTestHandler(t, &scriptedCompleter{})

	w := doJSON(t, h, http.MethodPost, "/jobs", `{
		"job_title": "Data Scientist",
		"skills": [{"name": "Python", "importance": "Critical"}]
	}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with ok:false", w.Code)
	}
	assertOK(t, w, false)

	w = doJSON(t, h, http.MethodPut, "/jobs/999", `{"job_title": "Data Scientist"}`)
	assertOK(t, w, false)
}

func TestGetJobReturnsRequirements(t *testing.T) {
	h := newTestHandler(t, &scriptedCompleter{})

	doJSON(t, h, http.MethodPost, "/jobs", `{
		"job_title": "Data Scientist",
		"company_name": "Innovate Inc.",
		"skills": [
			{"name": "Python", "importance": "Mandatory"},
			{"name": "Tableau", "importance": "Preferred"}
		]
	}`)

	w := doJSON(t, h, http.MethodGet, "/jobs/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d: %s", w.Code, w.Body)
	}
	var got struct {
		Title  string `json:"job_title"`
		Skills []struct {
			Name       string `json:"name"`
			Importance string `json:"importance"`
		} `json:"skills"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding job: %v", err)
	}
	if got.Title != "Data Scientist" || len(got.Skills) != 2 {
		t.Fatalf("got %+v, want Data Scientist with 2 requirements", got)
	}
	// Mandatory tier sorts first.
	if got.Skills[0].Name != "Python" || got.Skills[0].Importance != "Mandatory" {
		t.Errorf("first requirement = %+v, want mandatory Python", got.Skills[0])
	}

	w = doJSON(t, h, http.MethodGet, "/jobs/42", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("missing job status = %d, want 404", w.Code)
	}
}

func TestInvalidIDRejected(t *testing.T) {
	h := newTestHandler(t, &scriptedCompleter{})

	for _, path := range []string{"/profiles/abc", "/jobs/0", "/profiles/-3"} {
		w := doJSON(t, h, http.MethodDelete, path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("DELETE %s status = %d, want 400", path, w.Code)
		}
	}
}

func TestSkillsEndpointMergesStores(t *testing.T) {
	h := newTestHandler(t, &scriptedCompleter{})

	doJSON(t, h, http.MethodPost, "/profiles", `{"full_name": "Ann", "skills": ["Python", "SQL"]}`)
	doJSON(t, h, http.MethodPost, "/jobs", `{"job_title": "Analyst", "skills": [{"name": "sql"}, {"name": "Tableau"}]}`)

	w := doJSON(t, h, http.MethodGet, "/skills", "")
	var names []string
	if err := json.Unmarshal(w.Body.Bytes(), &names); err != nil {
		t.Fatalf("decoding skills: %v", err)
	}
	if len(names) != 3 {
		t.Fatalf("names = %v, want 3 entries with SQL deduplicated", names)
	}
}

func assertOK(t *testing.T, w *httptest.ResponseRecorder, want bool) {
	t.Helper()
	var body map[string]bool
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body %q: %v", w.Body, err)
	}
	if body["ok"] != want {
		t.Errorf("ok = %v, want %v", body["ok"], want)
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
