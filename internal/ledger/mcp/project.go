package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/thekedar/labourbook/internal/ledger/service"
	"github.com/thekedar/labourbook/internal/ledger/storage"
)

// ProjectCreateInput represents the MCP tool input for project creation.
type ProjectCreateInput struct {
	UserID      int64  `json:"user_id" jsonschema:"owning user identifier"`
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description,omitempty" jsonschema:"optional project description"`
}

// ProjectUpdateInput represents the MCP tool input for project updates.
type ProjectUpdateInput struct {
	ProjectID   int64  `json:"project_id" jsonschema:"project identifier"`
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description,omitempty" jsonschema:"project description"`
}

// ProjectDeleteInput represents the MCP tool input for project deletion.
type ProjectDeleteInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"project identifier"`
}

// ProjectListInput represents the MCP tool input for listing a user's projects.
type ProjectListInput struct {
	UserID int64 `json:"user_id" jsonschema:"owning user identifier"`
}

// ProjectResult represents the MCP tool output for a single project.
type ProjectResult struct {
	ID          int64  `json:"id" jsonschema:"project identifier"`
	UserID      int64  `json:"user_id" jsonschema:"owning user identifier"`
	Name        string `json:"name" jsonschema:"project name"`
	Description string `json:"description" jsonschema:"project description"`
	Active      bool   `json:"active" jsonschema:"false when the project is soft-deleted"`
	CreatedAt   string `json:"created_at" jsonschema:"RFC3339 timestamp when the project was created"`
}

// ProjectListEntry represents one project with its ledger aggregates.
type ProjectListEntry struct {
	ProjectResult
	LabourCount      int     `json:"labour_count" jsonschema:"number of labours under the project"`
	TotalPendingDues float64 `json:"total_pending_dues" jsonschema:"sum of positive labour balances; overpayments never offset other workers"`
}

// ProjectListResult represents the MCP tool output for project listings.
type ProjectListResult struct {
	Projects []ProjectListEntry `json:"projects"`
}

func ProjectCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_create",
		Description: "Creates an active project for a user.",
	}
}

func ProjectUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_update",
		Description: "Overwrites a project's name and description.",
	}
}

func ProjectDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_delete",
		Description: "Soft-deletes a project. Its labours and their ledger rows stay in place and addressable by id.",
	}
}

func ProjectListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "project_list",
		Description: "Lists a user's active projects, newest first, with labour counts and total pending dues.",
	}
}

// ProjectCreateHandler executes a project creation request.
func ProjectCreateHandler(svc *service.Service) mcp.ToolHandlerFor[ProjectCreateInput, ProjectResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectCreateInput) (*mcp.CallToolResult, ProjectResult, error) {
		project, err := svc.CreateProject(ctx, input.UserID, input.Name, input.Description)
		if err != nil {
			return nil, ProjectResult{}, fmt.Errorf("project create failed: %w", err)
		}
		return nil, projectToResult(project), nil
	}
}

// ProjectUpdateHandler executes a project update request.
func ProjectUpdateHandler(svc *service.Service) mcp.ToolHandlerFor[ProjectUpdateInput, ProjectResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectUpdateInput) (*mcp.CallToolResult, ProjectResult, error) {
		if err := svc.UpdateProject(ctx, input.ProjectID, input.Name, input.Description); err != nil {
			return nil, ProjectResult{}, fmt.Errorf("project update failed: %w", err)
		}
		project, err := svc.GetProject(ctx, input.ProjectID)
		if err != nil {
			return nil, ProjectResult{}, fmt.Errorf("project reload failed: %w", err)
		}
		return nil, projectToResult(project), nil
	}
}

// ProjectDeleteHandler executes a project soft-delete request.
func ProjectDeleteHandler(svc *service.Service) mcp.ToolHandlerFor[ProjectDeleteInput, ProjectResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectDeleteInput) (*mcp.CallToolResult, ProjectResult, error) {
		if err := svc.DeleteProject(ctx, input.ProjectID); err != nil {
			return nil, ProjectResult{}, fmt.Errorf("project delete failed: %w", err)
		}
		project, err := svc.GetProject(ctx, input.ProjectID)
		if err != nil {
			return nil, ProjectResult{}, fmt.Errorf("project reload failed: %w", err)
		}
		return nil, projectToResult(project), nil
	}
}

// ProjectListHandler executes a project listing request.
func ProjectListHandler(svc *service.Service) mcp.ToolHandlerFor[ProjectListInput, ProjectListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ProjectListInput) (*mcp.CallToolResult, ProjectListResult, error) {
		projects, err := svc.ListProjects(ctx, input.UserID)
		if err != nil {
			return nil, ProjectListResult{}, fmt.Errorf("project list failed: %w", err)
		}
		result := ProjectListResult{Projects: make([]ProjectListEntry, 0, len(projects))}
		for _, project := range projects {
			result.Projects = append(result.Projects, ProjectListEntry{
				ProjectResult:    projectToResult(project.Project),
				LabourCount:      project.LabourCount,
				TotalPendingDues: project.TotalPendingDues,
			})
		}
		return nil, result, nil
	}
}

func projectToResult(project storage.Project) ProjectResult {
	return ProjectResult{
		ID:          project.ID,
		UserID:      project.UserID,
		Name:        project.Name,
		Description: project.Description,
		Active:      project.Active,
		CreatedAt:   formatTimestamp(project.CreatedAt),
	}
}
