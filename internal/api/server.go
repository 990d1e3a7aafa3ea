// Package api exposes the query engine over HTTP (chi) and MCP.
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/dewansh3255/SPARK/internal/jobstore"
	"github.com/dewansh3255/SPARK/internal/navigator"
	"github.com/dewansh3255/SPARK/internal/profilestore"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Deps holds the handler dependencies.
type Deps struct {
	Navigator *navigator.Navigator
	Log       *zap.Logger
}

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	Query string `json:"query"`
}

// NewHandler builds the HTTP routing tree.
func NewHandler(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	})

	r.Post("/query", handleQuery(deps))

	r.Get("/profiles", handleListProfiles(deps))
	r.Post("/profiles", handleCreateProfile(deps))
	r.Get("/profiles/{id}", handleGetProfile(deps))
	r.Put("/profiles/{id}", handleUpdateProfile(deps))
	r.Delete("/profiles/{id}", handleDeleteProfile(deps))

	r.Get("/jobs", handleListJobs(deps))
	r.Post("/jobs", handleCreateJob(deps))
	r.Get("/jobs/{id}", handleGetJob(deps))
	r.Put("/jobs/{id}", handleUpdateJob(deps))
	r.Delete("/jobs/{id}", handleDeleteJob(deps))

	r.Get("/skills", handleListSkills(deps))

	return r
}

func handleQuery(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		var req QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}
		if req.Query == "" {
			httpError(w, http.StatusBadRequest, "query is required")
			return
		}

		results := deps.Navigator.ExecuteQuery(r.Context(), req.Query)
		writeJSON(w, map[string]any{"results": results})
	}
}

func handleListProfiles(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := deps.Navigator.ListProfiles(r.Context())
		if rows == nil {
			rows = []profilestore.ProfileRow{}
		}

		type profileJSON struct {
			ID         int64  `json:"id"`
			FullName   string `json:"full_name"`
			Headline   string `json:"headline"`
			Experience int    `json:"years_of_experience"`
			Company    string `json:"company_name"`
			Location   string `json:"location"`
			Skills     string `json:"skills"`
		}
		out := make([]profileJSON, len(rows))
		for i, p := range rows {
			out[i] = profileJSON{
				ID: p.ID, FullName: p.FullName, Headline: p.Headline,
				Experience: p.Experience, Company: p.Company,
				Location: p.Location, Skills: p.Skills,
			}
		}
		writeJSON(w, out)
	}
}

func handleGetProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		p, held, ok := deps.Navigator.GetProfile(r.Context(), id)
		if !ok {
			httpError(w, http.StatusNotFound, "profile %d not found", id)
			return
		}
		if held == nil {
			held = []string{}
		}
		writeJSON(w, map[string]any{
			"id":                  p.ID,
			"full_name":           p.FullName,
			"headline":            p.Headline,
			"years_of_experience": p.Experience,
			"company_name":        p.Company,
			"location":            p.Location,
			"skills":              held,
		})
	}
}

func handleCreateProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		var in profilestore.ProfileInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}
		writeJSON(w, map[string]bool{"ok": deps.Navigator.CreateProfile(r.Context(), in)})
	}
}

func handleUpdateProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		var in profilestore.ProfileInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}
		writeJSON(w, map[string]bool{"ok": deps.Navigator.UpdateProfile(r.Context(), id, in)})
	}
}

func handleDeleteProfile(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		writeJSON(w, map[string]bool{"ok": deps.Navigator.DeleteProfile(r.Context(), id)})
	}
}

func handleListJobs(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows := deps.Navigator.ListJobs(r.Context())
		if rows == nil {
			rows = []jobstore.JobRow{}
		}

		type jobJSON struct {
			ID       int64  `json:"id"`
			Title    string `json:"job_title"`
			Company  string `json:"company_name"`
			Location string `json:"location"`
			Skills   string `json:"skills"`
		}
		out := make([]jobJSON, len(rows))
		for i, j := range rows {
			out[i] = jobJSON{ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location, Skills: j.Skills}
		}
		writeJSON(w, out)
	}
}

func handleGetJob(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		j, reqs, ok := deps.Navigator.GetJob(r.Context(), id)
		if !ok {
			httpError(w, http.StatusNotFound, "job %d not found", id)
			return
		}

		type reqJSON struct {
			Name       string `json:"name"`
			Importance string `json:"importance"`
		}
		out := make([]reqJSON, len(reqs))
		for i, req := range reqs {
			out[i] = reqJSON{Name: req.Name, Importance: req.Importance}
		}
		writeJSON(w, map[string]any{
			"id":           j.ID,
			"job_title":    j.Title,
			"company_name": j.Company,
			"location":     j.Location,
			"skills":       out,
		})
	}
}

func handleCreateJob(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		var in jobstore.JobInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}
		writeJSON(w, map[string]bool{"ok": deps.Navigator.CreateJob(r.Context(), in)})
	}
}

func handleUpdateJob(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

		var in jobstore.JobInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			httpError(w, http.StatusBadRequest, "invalid request body: %v", err)
			return
		}
		writeJSON(w, map[string]bool{"ok": deps.Navigator.UpdateJob(r.Context(), id, in)})
	}
}

func handleDeleteJob(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r)
		if !ok {
			return
		}
		writeJSON(w, map[string]bool{"ok": deps.Navigator.DeleteJob(r.Context(), id)})
	}
}

func handleListSkills(deps Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		names := deps.Navigator.ListAllSkillNames(r.Context())
		if names == nil {
			names = []string{}
		}
		writeJSON(w, names)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, format string, args ...any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": fmt.Sprintf(format, args...)})
}
