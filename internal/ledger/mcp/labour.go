package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/thekedar/labourbook/internal/ledger/service"
	"github.com/thekedar/labourbook/internal/ledger/storage"
)

// LabourCreateInput represents the MCP tool input for adding a worker.
type LabourCreateInput struct {
	ProjectID int64   `json:"project_id" jsonschema:"owning project identifier"`
	Name      string  `json:"name" jsonschema:"worker name"`
	Phone     string  `json:"phone,omitempty" jsonschema:"optional 10-digit phone number"`
	DailyWage float64 `json:"daily_wage" jsonschema:"daily wage, non-negative"`
}

// LabourUpdateInput represents the MCP tool input for updating a worker.
type LabourUpdateInput struct {
	LabourID  int64   `json:"labour_id" jsonschema:"labour identifier"`
	Name      string  `json:"name" jsonschema:"worker name"`
	Phone     string  `json:"phone,omitempty" jsonschema:"optional 10-digit phone number"`
	DailyWage float64 `json:"daily_wage" jsonschema:"daily wage, non-negative; changes reprice all historical attendance"`
}

// LabourGetInput represents the MCP tool input for fetching one worker.
type LabourGetInput struct {
	LabourID int64 `json:"labour_id" jsonschema:"labour identifier"`
}

// LabourDeleteInput represents the MCP tool input for deleting a worker.
type LabourDeleteInput struct {
	LabourID int64 `json:"labour_id" jsonschema:"labour identifier"`
}

// LabourListInput represents the MCP tool input for listing a project's workers.
type LabourListInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"owning project identifier"`
}

// LabourResult represents one worker augmented with ledger aggregates.
type LabourResult struct {
	ID              int64   `json:"id" jsonschema:"labour identifier"`
	ProjectID       int64   `json:"project_id" jsonschema:"owning project identifier"`
	Name            string  `json:"name" jsonschema:"worker name"`
	Phone           string  `json:"phone,omitempty" jsonschema:"phone number if recorded"`
	DailyWage       float64 `json:"daily_wage" jsonschema:"current daily wage"`
	TotalEarned     float64 `json:"total_earned" jsonschema:"sum over attendance at the current daily wage"`
	TotalPaid       float64 `json:"total_paid" jsonschema:"sum of recorded payments"`
	Balance         float64 `json:"balance" jsonschema:"total earned minus total paid; negative means overpaid"`
	AttendanceCount int     `json:"attendance_count" jsonschema:"number of recorded attendance days"`
	CreatedAt       string  `json:"created_at" jsonschema:"RFC3339 timestamp when the worker was added"`
}

// LabourDeleteResult confirms a cascading delete.
type LabourDeleteResult struct {
	LabourID int64 `json:"labour_id" jsonschema:"deleted labour identifier"`
	Deleted  bool  `json:"deleted" jsonschema:"true when the labour and all its ledger rows were removed"`
}

// LabourListResult represents the MCP tool output for worker listings.
type LabourListResult struct {
	Labours []LabourResult `json:"labours"`
}

func LabourCreateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "labour_create",
		Description: "Adds a worker to a project with a daily wage.",
	}
}

func LabourUpdateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "labour_update",
		Description: "Overwrites a worker's name, phone and daily wage. A wage change retroactively reprices all historical attendance.",
	}
}

func LabourGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "labour_get",
		Description: "Fetches one worker with earned, paid, balance and attendance count, recomputed from current rows.",
	}
}

func LabourDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "labour_delete",
		Description: "Hard-deletes a worker along with all of its attendance and payment rows. Irreversible.",
	}
}

func LabourListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "labour_list",
		Description: "Lists a project's workers with ledger aggregates, ordered by name.",
	}
}

// LabourCreateHandler executes a worker creation request.
func LabourCreateHandler(svc *service.Service) mcp.ToolHandlerFor[LabourCreateInput, LabourResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LabourCreateInput) (*mcp.CallToolResult, LabourResult, error) {
		labour, err := svc.CreateLabour(ctx, input.ProjectID, input.Name, input.Phone, input.DailyWage)
		if err != nil {
			return nil, LabourResult{}, fmt.Errorf("labour create failed: %w", err)
		}
		return nil, labourToResult(storage.LabourWithStats{Labour: labour}), nil
	}
}

// LabourUpdateHandler executes a worker update request.
func LabourUpdateHandler(svc *service.Service) mcp.ToolHandlerFor[LabourUpdateInput, LabourResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LabourUpdateInput) (*mcp.CallToolResult, LabourResult, error) {
		if err := svc.UpdateLabour(ctx, input.LabourID, input.Name, input.Phone, input.DailyWage); err != nil {
			return nil, LabourResult{}, fmt.Errorf("labour update failed: %w", err)
		}
		labour, err := svc.GetLabour(ctx, input.LabourID)
		if err != nil {
			return nil, LabourResult{}, fmt.Errorf("labour reload failed: %w", err)
		}
		return nil, labourToResult(labour), nil
	}
}

// LabourGetHandler executes a worker fetch request.
func LabourGetHandler(svc *service.Service) mcp.ToolHandlerFor[LabourGetInput, LabourResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LabourGetInput) (*mcp.CallToolResult, LabourResult, error) {
		labour, err := svc.GetLabour(ctx, input.LabourID)
		if err != nil {
			return nil, LabourResult{}, fmt.Errorf("labour get failed: %w", err)
		}
		return nil, labourToResult(labour), nil
	}
}

// LabourDeleteHandler executes a cascading worker delete request.
func LabourDeleteHandler(svc *service.Service) mcp.ToolHandlerFor[LabourDeleteInput, LabourDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LabourDeleteInput) (*mcp.CallToolResult, LabourDeleteResult, error) {
		if err := svc.DeleteLabour(ctx, input.LabourID); err != nil {
			return nil, LabourDeleteResult{}, fmt.Errorf("labour delete failed: %w", err)
		}
		return nil, LabourDeleteResult{LabourID: input.LabourID, Deleted: true}, nil
	}
}

// LabourListHandler executes a worker listing request.
func LabourListHandler(svc *service.Service) mcp.ToolHandlerFor[LabourListInput, LabourListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input LabourListInput) (*mcp.CallToolResult, LabourListResult, error) {
		labours, err := svc.ListLabours(ctx, input.ProjectID)
		if err != nil {
			return nil, LabourListResult{}, fmt.Errorf("labour list failed: %w", err)
		}
		result := LabourListResult{Labours: make([]LabourResult, 0, len(labours))}
		for _, labour := range labours {
			result.Labours = append(result.Labours, labourToResult(labour))
		}
		return nil, result, nil
	}
}

func labourToResult(labour storage.LabourWithStats) LabourResult {
	return LabourResult{
		ID:              labour.ID,
		ProjectID:       labour.ProjectID,
		Name:            labour.Name,
		Phone:           labour.Phone,
		DailyWage:       labour.DailyWage,
		TotalEarned:     labour.TotalEarned,
		TotalPaid:       labour.TotalPaid,
		Balance:         labour.Balance,
		AttendanceCount: labour.AttendanceCount,
		CreatedAt:       formatTimestamp(labour.CreatedAt),
	}
}
