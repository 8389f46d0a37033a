package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/thekedar/labourbook/internal/ledger/service"
	"github.com/thekedar/labourbook/internal/ledger/storage"
)

// UserRegisterInput represents the MCP tool input for account registration.
type UserRegisterInput struct {
	Phone string `json:"phone" jsonschema:"registered phone number, digits only"`
	Name  string `json:"name" jsonschema:"display name"`
}

// UserLookupInput represents the MCP tool input for account lookup by phone.
type UserLookupInput struct {
	Phone string `json:"phone" jsonschema:"registered phone number"`
}

// UserResult represents the MCP tool output for account operations.
type UserResult struct {
	ID        int64  `json:"id" jsonschema:"user identifier"`
	Phone     string `json:"phone" jsonschema:"registered phone number"`
	Name      string `json:"name" jsonschema:"display name"`
	CreatedAt string `json:"created_at" jsonschema:"RFC3339 timestamp when the account was created"`
}

func UserRegisterTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "user_register",
		Description: "Registers a contractor account keyed by phone number. Fails when the phone is already registered.",
	}
}

func UserLookupTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "user_lookup",
		Description: "Looks up a contractor account by its registered phone number.",
	}
}

// UserRegisterHandler executes an account registration request.
func UserRegisterHandler(svc *service.Service) mcp.ToolHandlerFor[UserRegisterInput, UserResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UserRegisterInput) (*mcp.CallToolResult, UserResult, error) {
		user, err := svc.RegisterUser(ctx, input.Phone, input.Name)
		if err != nil {
			return nil, UserResult{}, fmt.Errorf("user register failed: %w", err)
		}
		return nil, userToResult(user), nil
	}
}

// UserLookupHandler executes an account lookup request.
func UserLookupHandler(svc *service.Service) mcp.ToolHandlerFor[UserLookupInput, UserResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input UserLookupInput) (*mcp.CallToolResult, UserResult, error) {
		user, err := svc.GetUserByPhone(ctx, input.Phone)
		if err != nil {
			return nil, UserResult{}, fmt.Errorf("user lookup failed: %w", err)
		}
		return nil, userToResult(user), nil
	}
}

func userToResult(user storage.User) UserResult {
	return UserResult{
		ID:        user.ID,
		Phone:     user.Phone,
		Name:      user.Name,
		CreatedAt: formatTimestamp(user.CreatedAt),
	}
}
