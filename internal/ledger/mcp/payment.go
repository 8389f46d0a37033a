package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/thekedar/labourbook/internal/ledger/service"
	"github.com/thekedar/labourbook/internal/ledger/storage"
)

// PaymentAddInput represents the MCP tool input for recording a disbursement.
type PaymentAddInput struct {
	LabourID int64   `json:"labour_id" jsonschema:"labour identifier"`
	Amount   float64 `json:"amount" jsonschema:"payment amount, greater than zero"`
	Date     string  `json:"date" jsonschema:"calendar date, YYYY-MM-DD"`
	Type     string  `json:"type" jsonschema:"advance or settlement; both reduce balance the same way"`
	Notes    string  `json:"notes,omitempty" jsonschema:"optional free-text notes"`
}

// PaymentDeleteInput represents the MCP tool input for deleting a disbursement.
type PaymentDeleteInput struct {
	PaymentID int64 `json:"payment_id" jsonschema:"payment identifier"`
}

// PaymentListInput represents the MCP tool input for listing a worker's payments.
type PaymentListInput struct {
	LabourID int64 `json:"labour_id" jsonschema:"labour identifier"`
}

// PaymentResult represents one disbursement.
type PaymentResult struct {
	ID       int64   `json:"id" jsonschema:"payment identifier"`
	LabourID int64   `json:"labour_id" jsonschema:"labour identifier"`
	Amount   float64 `json:"amount" jsonschema:"payment amount"`
	Date     string  `json:"date" jsonschema:"calendar date"`
	Type     string  `json:"type" jsonschema:"advance or settlement"`
	Notes    string  `json:"notes,omitempty" jsonschema:"notes if recorded"`
}

// PaymentDeleteResult confirms a deletion.
type PaymentDeleteResult struct {
	PaymentID int64 `json:"payment_id" jsonschema:"deleted payment identifier"`
	Deleted   bool  `json:"deleted" jsonschema:"true when the payment row was removed"`
}

// PaymentListResult represents the MCP tool output for payment listings.
type PaymentListResult struct {
	Payments []PaymentResult `json:"payments"`
}

func PaymentAddTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "payment_add",
		Description: "Records a payment to a worker. Overpaying is permitted and produces a negative balance.",
	}
}

func PaymentDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "payment_delete",
		Description: "Deletes one payment record.",
	}
}

func PaymentListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "payment_list",
		Description: "Lists a worker's payments, newest date first.",
	}
}

// PaymentAddHandler executes a payment insertion request.
func PaymentAddHandler(svc *service.Service) mcp.ToolHandlerFor[PaymentAddInput, PaymentResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PaymentAddInput) (*mcp.CallToolResult, PaymentResult, error) {
		payment, err := svc.AddPayment(ctx, input.LabourID, input.Amount, input.Date, storage.PaymentType(input.Type), input.Notes)
		if err != nil {
			return nil, PaymentResult{}, fmt.Errorf("payment add failed: %w", err)
		}
		return nil, paymentToResult(payment), nil
	}
}

// PaymentDeleteHandler executes a payment deletion request.
func PaymentDeleteHandler(svc *service.Service) mcp.ToolHandlerFor[PaymentDeleteInput, PaymentDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PaymentDeleteInput) (*mcp.CallToolResult, PaymentDeleteResult, error) {
		if err := svc.DeletePayment(ctx, input.PaymentID); err != nil {
			return nil, PaymentDeleteResult{}, fmt.Errorf("payment delete failed: %w", err)
		}
		return nil, PaymentDeleteResult{PaymentID: input.PaymentID, Deleted: true}, nil
	}
}

// PaymentListHandler executes a payment listing request.
func PaymentListHandler(svc *service.Service) mcp.ToolHandlerFor[PaymentListInput, PaymentListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input PaymentListInput) (*mcp.CallToolResult, PaymentListResult, error) {
		payments, err := svc.ListPayments(ctx, input.LabourID)
		if err != nil {
			return nil, PaymentListResult{}, fmt.Errorf("payment list failed: %w", err)
		}
		result := PaymentListResult{Payments: make([]PaymentResult, 0, len(payments))}
		for _, payment := range payments {
			result.Payments = append(result.Payments, paymentToResult(payment))
		}
		return nil, result, nil
	}
}

func paymentToResult(payment storage.Payment) PaymentResult {
	return PaymentResult{
		ID:       payment.ID,
		LabourID: payment.LabourID,
		Amount:   payment.Amount,
		Date:     payment.Date,
		Type:     string(payment.Type),
		Notes:    payment.Notes,
	}
}
