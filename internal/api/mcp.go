package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer exposes the query engine and both stores as MCP tools for
// agent clients over stdio.
func NewMCPServer(deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"spark",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions("SPARK answers natural-language questions about people profiles, job postings, skills, and hiring analytics."),
		server.WithRecovery(),
	)

	s.AddTool(
		mcp.NewTool("career_query",
			mcp.WithDescription("Answer a natural-language question about people, jobs, skills, career paths, or hiring forecasts. Returns an ordered list of results, each a message optionally with a table."),
			mcp.WithString("query", mcp.Description("The question, in plain language"), mcp.Required()),
		),
		mcpCareerQuery(deps),
	)

	s.AddTool(
		mcp.NewTool("list_profiles",
			mcp.WithDescription("List every stored person profile with aggregated skills."),
		),
		mcpListProfiles(deps),
	)

	s.AddTool(
		mcp.NewTool("list_jobs",
			mcp.WithDescription("List every stored job posting with aggregated required skills."),
		),
		mcpListJobs(deps),
	)

	return s
}

func mcpCareerQuery(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpError("query is required"), nil
		}

		results := deps.Navigator.ExecuteQuery(ctx, query)
		b, err := json.Marshal(results)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal results: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpListProfiles(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rows := deps.Navigator.ListProfiles(ctx)

		type profileResult struct {
			ID         int64  `json:"id"`
			FullName   string `json:"full_name"`
			Headline   string `json:"headline,omitempty"`
			Experience int    `json:"years_of_experience"`
			Company    string `json:"company_name,omitempty"`
			Location   string `json:"location,omitempty"`
			Skills     string `json:"skills,omitempty"`
		}
		out := make([]profileResult, len(rows))
		for i, p := range rows {
			out[i] = profileResult{
				ID: p.ID, FullName: p.FullName, Headline: p.Headline,
				Experience: p.Experience, Company: p.Company,
				Location: p.Location, Skills: p.Skills,
			}
		}

		b, err := json.Marshal(out)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal profiles: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpListJobs(deps Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rows := deps.Navigator.ListJobs(ctx)

		type jobResult struct {
			ID       int64  `json:"id"`
			Title    string `json:"job_title"`
			Company  string `json:"company_name,omitempty"`
			Location string `json:"location,omitempty"`
			Skills   string `json:"skills,omitempty"`
		}
		out := make([]jobResult, len(rows))
		for i, j := range rows {
			out[i] = jobResult{ID: j.ID, Title: j.Title, Company: j.Company, Location: j.Location, Skills: j.Skills}
		}

		b, err := json.Marshal(out)
		if err != nil {
			return mcpError(fmt.Sprintf("failed to marshal jobs: %v", err)), nil
		}
		return mcpText(string(b)), nil
	}
}

func mcpText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

func mcpError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: msg},
		},
		IsError: true,
	}
}
