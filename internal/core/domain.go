package core

import (
	"strings"
	"time"
)

const (
	Food     Category = "Food"
	Travel   Category = "Travel"
	Shopping Category = "Shopping"
	Bills    Category = "Bills"
	Misc     Category = "Misc"
)

type (
	// Category is the closed set of spending categories the remote store accepts.
	Category string

	// Expense is a single confirmed transaction as known to the ledger.
	// ID and OwnerID are assigned by the remote store and never change.
	Expense struct {
		ID          string    `json:"id"`
		Amount      Money     `json:"amount"`
		Category    Category  `json:"category"`
		Date        time.Time `json:"date"`
		Description string    `json:"description"`
		OwnerID     string    `json:"owner_id"`
	}

	// Payload is the body of a create or full-replacement update call.
	Payload struct {
		Amount      Money     `json:"amount"`
		Category    Category  `json:"category"`
		Date        time.Time `json:"date"`
		Description string    `json:"description"`
	}

	// DashboardSummary is the server-derived aggregate from /insights/summary.
	// The client never mutates it.
	DashboardSummary struct {
		TotalExpenses    Money `json:"total_expenses"`
		MonthExpenses    Money `json:"month_expenses"`
		TransactionCount int   `json:"transaction_count"`
	}

	// Profile identifies the logged-in user.
	Profile struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}

	// Draft is a provisional expense candidate, usually seeded by receipt
	// extraction. Each field is individually present or absent; ExtractedText
	// keeps the raw extraction output verbatim for user audit. A Draft has no
	// ID or owner until promoted through the ledger's create path.
	Draft struct {
		Amount        *Money
		Category      *Category
		Date          *time.Time
		Description   *string
		ExtractedText string
	}
)

// Categories returns the closed enumeration in display order.
func Categories() []Category {
	return []Category{Food, Travel, Shopping, Bills, Misc}
}

// Valid reports whether c is a member of the closed enumeration.
func (c Category) Valid() bool {
	switch c {
	case Food, Travel, Shopping, Bills, Misc:
		return true
	default:
		return false
	}
}

// Color returns the display hint associated with the category.
func (c Category) Color() string {
	switch c {
	case Food:
		return "#FF6B6B"
	case Travel:
		return "#4ECDC4"
	case Shopping:
		return "#45B7D1"
	case Bills:
		return "#96CEB4"
	default:
		return "#FFEAA7"
	}
}

// ParseCategory matches s against the closed enumeration, ignoring case
// and surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Validate checks a payload against the rules shared by the manual-entry
// and receipt paths. It reports every offending field at once.
func (p Payload) Validate() error {
	var fields []string
	if p.Amount.Cents <= 0 {
		fields = append(fields, FieldAmount)
	}
	if !p.Category.Valid() {
		fields = append(fields, FieldCategory)
	}
	if p.Date.IsZero() {
		fields = append(fields, FieldDate)
	}
	if strings.TrimSpace(p.Description) == "" {
		fields = append(fields, FieldDescription)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Equal reports whether two expenses carry the same field values.
// Reconciliation relies on it to make a second application of the same
// remote response a no-op.
func (e Expense) Equal(o Expense) bool {
	return e.ID == o.ID &&
		e.Amount == o.Amount &&
		e.Category == o.Category &&
		e.Date.Equal(o.Date) &&
		e.Description == o.Description &&
		e.OwnerID == o.OwnerID
}
