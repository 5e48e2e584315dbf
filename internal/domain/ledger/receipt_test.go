package ledger_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func catPtr(c ledger.ExpenseCategory) *ledger.ExpenseCategory { return &c }

func TestReceiptSuggestion_ApplyToFillsOnlyEmptyFields(t *testing.T) {
	s := &ledger.ReceiptSuggestion{
		Description: strPtr("O'Reilly Auto Parts"),
		Amount:      decPtr("64.10"),
		Category:    catPtr(ledger.ExpenseCategoryParts),
	}

	t.Run("empty draft is filled", func(t *testing.T) {
		draft := &ledger.ExpenseDraft{}
		s.ApplyTo(draft)
		assert.Equal(t, "O'Reilly Auto Parts", draft.Description)
		require.NotNil(t, draft.Amount)
		assert.True(t, dec("64.10").Equal(*draft.Amount))
		assert.Equal(t, "Parts", draft.Category)
	})

	t.Run("user input is kept", func(t *testing.T) {
		draft := &ledger.ExpenseDraft{Description: "Oil filter", Amount: decPtr("12"), Category: "Repair"}
		s.ApplyTo(draft)
		assert.Equal(t, "Oil filter", draft.Description)
		assert.True(t, dec("12").Equal(*draft.Amount))
		assert.Equal(t, "Repair", draft.Category)
	})

	t.Run("partial suggestion", func(t *testing.T) {
		partial := &ledger.ReceiptSuggestion{Amount: decPtr("9.99")}
		draft := &ledger.ExpenseDraft{Description: "Wipers"}
		partial.ApplyTo(draft)
		assert.Equal(t, "Wipers", draft.Description)
		assert.True(t, dec("9.99").Equal(*draft.Amount))
		assert.Empty(t, draft.Category)
	})

	t.Run("nil suggestion is a no-op", func(t *testing.T) {
		var none *ledger.ReceiptSuggestion
		draft := &ledger.ExpenseDraft{}
		none.ApplyTo(draft)
		assert.Empty(t, draft.Description)
		assert.True(t, none.IsEmpty())
	})
}

func TestReceiptSuggestion_Sanitize(t *testing.T) {
	s := &ledger.ReceiptSuggestion{
		Description: strPtr("   "),
		Amount:      decPtr("-42.555"),
		Category:    catPtr("groceries"),
	}
	s.Sanitize()

	assert.Nil(t, s.Description)
	require.NotNil(t, s.Amount)
	assert.True(t, dec("42.56").Equal(*s.Amount))
	assert.Nil(t, s.Category)

	long := &ledger.ReceiptSuggestion{Description: strPtr(strings.Repeat("a", 600)), Category: catPtr("FUEL")}
	long.Sanitize()
	assert.Len(t, *long.Description, 500)
	assert.Equal(t, ledger.ExpenseCategoryFuel, *long.Category)
}

func TestReceiptSuggestion_SanitizeKeepsValidUTF8(t *testing.T) {
	s := &ledger.ReceiptSuggestion{Description: strPtr(strings.Repeat("a", 499) + "é tail")}
	s.Sanitize()

	require.NotNil(t, s.Description)
	assert.True(t, utf8.ValidString(*s.Description))
	assert.Equal(t, 500, utf8.RuneCountInString(*s.Description))
	assert.True(t, strings.HasSuffix(*s.Description, "é"))

	cyrillic := &ledger.ReceiptSuggestion{Description: strPtr(strings.Repeat("ж", 700))}
	cyrillic.Sanitize()
	assert.Equal(t, 500, utf8.RuneCountInString(*cyrillic.Description))

	vehicle := newTestVehicle(t, "8000", "12500")
	var draft ledger.ExpenseDraft
	cyrillic.ApplyTo(&draft)
	_, err := ledger.NewManualExpense(vehicle, ledger.ManualExpenseInput{
		Description: draft.Description,
		Amount:      decPtr("12"),
	})
	assert.NoError(t, err)
}
