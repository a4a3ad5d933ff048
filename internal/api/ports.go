package api

import (
	"context"
	"io"

	"spendlog/internal/core"
)

// TokenSource supplies the bearer credential attached to every request.
// The session object implements it.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// Ports consumed by the ledger and draft layers.
type (
	ExpenseService interface {
		// ListExpenses returns the user's expenses in server order.
		ListExpenses(ctx context.Context) ([]core.Expense, error)

		// CreateExpense sends the payload and returns the created record
		// with its server-assigned id and owner.
		CreateExpense(ctx context.Context, p core.Payload) (core.Expense, error)

		// UpdateExpense sends a full-replacement payload.
		UpdateExpense(ctx context.Context, id string, p core.Payload) (core.Expense, error)

		// DeleteExpense removes the record. Success is status-code-only.
		DeleteExpense(ctx context.Context, id string) error
	}

	SummaryService interface {
		// Summary returns the server-derived dashboard aggregate.
		Summary(ctx context.Context) (core.DashboardSummary, error)
	}

	ReceiptService interface {
		// UploadReceipt sends a receipt image and returns the extraction
		// result produced by the remote OCR service.
		UploadReceipt(ctx context.Context, filename string, image io.Reader) (Extraction, error)
	}
)

// Extraction is the receipt-OCR response. Guesses may be empty or zero
// when the service could not read the receipt; ExtractedText always holds
// whatever raw text was recognized.
type Extraction struct {
	Amount        float64 `json:"amount"`
	Category      string  `json:"category"`
	Description   string  `json:"description"`
	Date          string  `json:"date"`
	ExtractedText string  `json:"extracted_text"`
}
