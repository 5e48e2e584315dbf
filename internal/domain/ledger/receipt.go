package ledger

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ReceiptImage is an uploaded receipt photo
type ReceiptImage struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ReceiptSuggestion is a best-effort guess extracted from a receipt. Any
// field may be missing. It seeds an expense form and never overrides what
// the user typed.
type ReceiptSuggestion struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *ExpenseCategory
	// Degraded is set when extraction failed and the caller should fall
	// back to manual entry.
	Degraded bool
}

// IsEmpty reports whether the suggestion carries no fields
func (s *ReceiptSuggestion) IsEmpty() bool {
	return s == nil || (s.Description == nil && s.Amount == nil && s.Category == nil)
}

// truncateRunes cuts s to at most n characters without splitting one
func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return strings.TrimSpace(s[:pos])
		}
		i++
	}
	return s
}

// Sanitize drops suggested values that could never pass expense validation
func (s *ReceiptSuggestion) Sanitize() {
	if s.Description != nil {
		d := strings.TrimSpace(*s.Description)
		if d == "" {
			s.Description = nil
		} else {
			d = truncateRunes(d, maxDescriptionLength)
			s.Description = &d
		}
	}
	if s.Amount != nil {
		a := RoundMoney(s.Amount.Abs())
		if a.IsZero() {
			s.Amount = nil
		} else {
			s.Amount = &a
		}
	}
	if s.Category != nil {
		c, err := ParseExpenseCategory(string(*s.Category))
		if err != nil {
			s.Category = nil
		} else {
			s.Category = &c
		}
	}
}

// ExpenseDraft is the user's half-filled expense form
type ExpenseDraft struct {
	Description string
	Amount      *decimal.Decimal
	Category    string
}

// ApplyTo fills the draft's empty fields from the suggestion. Fields the
// user already entered are left alone.
func (s *ReceiptSuggestion) ApplyTo(draft *ExpenseDraft) {
	if s == nil || draft == nil {
		return
	}
	if strings.TrimSpace(draft.Description) == "" && s.Description != nil {
		draft.Description = *s.Description
	}
	if draft.Amount == nil && s.Amount != nil {
		a := *s.Amount
		draft.Amount = &a
	}
	if strings.TrimSpace(draft.Category) == "" && s.Category != nil {
		draft.Category = string(*s.Category)
	}
}

// ReceiptExtractor is the boundary to an external OCR or vision service
type ReceiptExtractor interface {
	Extract(ctx context.Context, image ReceiptImage) (*ReceiptSuggestion, error)
}
