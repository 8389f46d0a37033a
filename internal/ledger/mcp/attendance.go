package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/thekedar/labourbook/internal/ledger/service"
	"github.com/thekedar/labourbook/internal/ledger/storage"
)

// AttendanceMarkInput represents the MCP tool input for marking a worked day.
type AttendanceMarkInput struct {
	LabourID int64  `json:"labour_id" jsonschema:"labour identifier"`
	Date     string `json:"date" jsonschema:"calendar date, YYYY-MM-DD"`
	WorkType string `json:"work_type" jsonschema:"full or half"`
	Notes    string `json:"notes,omitempty" jsonschema:"optional free-text notes"`
}

// AttendanceRemoveInput represents the MCP tool input for removing a worked day.
type AttendanceRemoveInput struct {
	LabourID int64  `json:"labour_id" jsonschema:"labour identifier"`
	Date     string `json:"date" jsonschema:"calendar date, YYYY-MM-DD"`
}

// AttendanceListInput represents the MCP tool input for listing a worker's attendance.
type AttendanceListInput struct {
	LabourID int64 `json:"labour_id" jsonschema:"labour identifier"`
}

// AttendanceByDateInput represents the MCP tool input for a per-date project view.
type AttendanceByDateInput struct {
	ProjectID int64  `json:"project_id" jsonschema:"project identifier"`
	Date      string `json:"date" jsonschema:"calendar date, YYYY-MM-DD"`
}

// AttendanceResult represents one attendance record.
type AttendanceResult struct {
	ID         int64  `json:"id" jsonschema:"attendance identifier"`
	LabourID   int64  `json:"labour_id" jsonschema:"labour identifier"`
	Date       string `json:"date" jsonschema:"calendar date"`
	WorkType   string `json:"work_type" jsonschema:"full or half"`
	Notes      string `json:"notes,omitempty" jsonschema:"notes if recorded"`
	LabourName string `json:"labour_name,omitempty" jsonschema:"worker name, set on per-date listings"`
}

// AttendanceRemoveResult confirms a removal.
type AttendanceRemoveResult struct {
	LabourID int64  `json:"labour_id" jsonschema:"labour identifier"`
	Date     string `json:"date" jsonschema:"calendar date"`
	Removed  bool   `json:"removed" jsonschema:"always true; removing an absent record is a no-op"`
}

// AttendanceListResult represents the MCP tool output for attendance listings.
type AttendanceListResult struct {
	Attendance []AttendanceResult `json:"attendance"`
}

func AttendanceMarkTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "attendance_mark",
		Description: "Marks a worker's attendance for one date as a full or half day. Re-marking the same date overwrites the earlier record.",
	}
}

func AttendanceRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "attendance_remove",
		Description: "Removes a worker's attendance record for one date if present.",
	}
}

func AttendanceListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "attendance_list",
		Description: "Lists a worker's attendance records, newest date first.",
	}
}

func AttendanceByDateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "attendance_by_date",
		Description: "Lists every attendance record across a project's workers for one date, ordered by worker name.",
	}
}

// AttendanceMarkHandler executes an attendance upsert request.
func AttendanceMarkHandler(svc *service.Service) mcp.ToolHandlerFor[AttendanceMarkInput, AttendanceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AttendanceMarkInput) (*mcp.CallToolResult, AttendanceResult, error) {
		record, err := svc.MarkAttendance(ctx, input.LabourID, input.Date, storage.WorkType(input.WorkType), input.Notes)
		if err != nil {
			return nil, AttendanceResult{}, fmt.Errorf("attendance mark failed: %w", err)
		}
		return nil, attendanceToResult(record), nil
	}
}

// AttendanceRemoveHandler executes an attendance removal request.
func AttendanceRemoveHandler(svc *service.Service) mcp.ToolHandlerFor[AttendanceRemoveInput, AttendanceRemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AttendanceRemoveInput) (*mcp.CallToolResult, AttendanceRemoveResult, error) {
		if err := svc.RemoveAttendance(ctx, input.LabourID, input.Date); err != nil {
			return nil, AttendanceRemoveResult{}, fmt.Errorf("attendance remove failed: %w", err)
		}
		return nil, AttendanceRemoveResult{LabourID: input.LabourID, Date: input.Date, Removed: true}, nil
	}
}

// AttendanceListHandler executes a per-worker attendance listing request.
func AttendanceListHandler(svc *service.Service) mcp.ToolHandlerFor[AttendanceListInput, AttendanceListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AttendanceListInput) (*mcp.CallToolResult, AttendanceListResult, error) {
		records, err := svc.ListAttendance(ctx, input.LabourID)
		if err != nil {
			return nil, AttendanceListResult{}, fmt.Errorf("attendance list failed: %w", err)
		}
		result := AttendanceListResult{Attendance: make([]AttendanceResult, 0, len(records))}
		for _, record := range records {
			result.Attendance = append(result.Attendance, attendanceToResult(record))
		}
		return nil, result, nil
	}
}

// AttendanceByDateHandler executes a per-date project attendance request.
func AttendanceByDateHandler(svc *service.Service) mcp.ToolHandlerFor[AttendanceByDateInput, AttendanceListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AttendanceByDateInput) (*mcp.CallToolResult, AttendanceListResult, error) {
		records, err := svc.ListAttendanceByDate(ctx, input.ProjectID, input.Date)
		if err != nil {
			return nil, AttendanceListResult{}, fmt.Errorf("attendance by date failed: %w", err)
		}
		result := AttendanceListResult{Attendance: make([]AttendanceResult, 0, len(records))}
		for _, record := range records {
			entry := attendanceToResult(record.Attendance)
			entry.LabourName = record.LabourName
			result.Attendance = append(result.Attendance, entry)
		}
		return nil, result, nil
	}
}

func attendanceToResult(record storage.Attendance) AttendanceResult {
	return AttendanceResult{
		ID:       record.ID,
		LabourID: record.LabourID,
		Date:     record.Date,
		WorkType: string(record.WorkType),
		Notes:    record.Notes,
	}
}
