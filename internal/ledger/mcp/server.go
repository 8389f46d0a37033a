// Package mcp exposes the labour ledger as MCP tools over stdio.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/thekedar/labourbook/internal/ledger/service"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	serverName    = "labourbook"
	serverVersion = "1.0.0"
	tracerName    = "github.com/thekedar/labourbook/internal/ledger/mcp"
)

// Server hosts the ledger MCP tool surface over a single service instance.
type Server struct {
	mcpServer *mcp.Server
}

// NewServer builds an MCP server with every ledger tool registered.
func NewServer(svc *service.Service) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("ledger service is required")
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	tracer := otel.Tracer(tracerName)

	mcp.AddTool(mcpServer, UserRegisterTool(), traced(tracer, "user_register", UserRegisterHandler(svc)))
	mcp.AddTool(mcpServer, UserLookupTool(), traced(tracer, "user_lookup", UserLookupHandler(svc)))

	mcp.AddTool(mcpServer, ProjectCreateTool(), traced(tracer, "project_create", ProjectCreateHandler(svc)))
	mcp.AddTool(mcpServer, ProjectUpdateTool(), traced(tracer, "project_update", ProjectUpdateHandler(svc)))
	mcp.AddTool(mcpServer, ProjectDeleteTool(), traced(tracer, "project_delete", ProjectDeleteHandler(svc)))
	mcp.AddTool(mcpServer, ProjectListTool(), traced(tracer, "project_list", ProjectListHandler(svc)))

	mcp.AddTool(mcpServer, LabourCreateTool(), traced(tracer, "labour_create", LabourCreateHandler(svc)))
	mcp.AddTool(mcpServer, LabourUpdateTool(), traced(tracer, "labour_update", LabourUpdateHandler(svc)))
	mcp.AddTool(mcpServer, LabourGetTool(), traced(tracer, "labour_get", LabourGetHandler(svc)))
	mcp.AddTool(mcpServer, LabourDeleteTool(), traced(tracer, "labour_delete", LabourDeleteHandler(svc)))
	mcp.AddTool(mcpServer, LabourListTool(), traced(tracer, "labour_list", LabourListHandler(svc)))

	mcp.AddTool(mcpServer, AttendanceMarkTool(), traced(tracer, "attendance_mark", AttendanceMarkHandler(svc)))
	mcp.AddTool(mcpServer, AttendanceRemoveTool(), traced(tracer, "attendance_remove", AttendanceRemoveHandler(svc)))
	mcp.AddTool(mcpServer, AttendanceListTool(), traced(tracer, "attendance_list", AttendanceListHandler(svc)))
	mcp.AddTool(mcpServer, AttendanceByDateTool(), traced(tracer, "attendance_by_date", AttendanceByDateHandler(svc)))

	mcp.AddTool(mcpServer, PaymentAddTool(), traced(tracer, "payment_add", PaymentAddHandler(svc)))
	mcp.AddTool(mcpServer, PaymentDeleteTool(), traced(tracer, "payment_delete", PaymentDeleteHandler(svc)))
	mcp.AddTool(mcpServer, PaymentListTool(), traced(tracer, "payment_list", PaymentListHandler(svc)))

	return &Server{mcpServer: mcpServer}, nil
}

// Serve starts the MCP server on stdio and blocks until it stops or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// traced wraps a tool handler in a span named after the tool so operations
// show up in traces when the process opts into telemetry.
func traced[I, O any](tracer trace.Tracer, name string, handler mcp.ToolHandlerFor[I, O]) mcp.ToolHandlerFor[I, O] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input I) (*mcp.CallToolResult, O, error) {
		ctx, span := tracer.Start(ctx, name)
		defer span.End()
		result, output, err := handler(ctx, req, input)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return result, output, err
	}
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
