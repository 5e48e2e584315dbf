package receipt

import (
	"regexp"
	"strings"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/shopspring/decimal"
)

var (
	totalLineRE = regexp.MustCompile(`(?i)\b(grand\s+total|total\s+due|amount\s+due|balance\s+due|total)\b[^0-9\-]*(-?\$?\s*[0-9]{1,3}(?:,[0-9]{3})*(?:\.[0-9]{2})|-?\$?\s*[0-9]+(?:\.[0-9]{2})?)`)
	moneyRE     = regexp.MustCompile(`\$?\s*([0-9]{1,3}(?:,[0-9]{3})*\.[0-9]{2}|[0-9]+\.[0-9]{2})\b`)
	subtotalRE  = regexp.MustCompile(`(?i)\bsub\s*-?\s*total\b`)
)

// keyword hints for the category, checked in order
var categoryHints = []struct {
	category ledger.ExpenseCategory
	words    []string
}{
	{ledger.ExpenseCategoryFuel, []string{"gasoline", "unleaded", "diesel", "fuel", "gallons", "pump #", "shell", "chevron", "exxon"}},
	{ledger.ExpenseCategoryInspection, []string{"inspection", "emissions", "smog"}},
	{ledger.ExpenseCategoryTransport, []string{"towing", "tow ", "transport", "hauling", "shipping"}},
	{ledger.ExpenseCategoryDetail, []string{"detail", "car wash", "wax", "shampoo"}},
	{ledger.ExpenseCategoryParts, []string{"autozone", "o'reilly", "napa", "advance auto", "part #", "parts"}},
	{ledger.ExpenseCategoryRepair, []string{"labor", "repair", "service", "brake", "alignment"}},
}

// ParseReceiptText pulls a suggestion out of free receipt text. It is the
// fallback when the vision model answers in prose instead of JSON.
func ParseReceiptText(text string) (*ledger.ReceiptSuggestion, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoFields
	}

	s := &ledger.ReceiptSuggestion{}
	if merchant := firstTextLine(text); merchant != "" {
		s.Description = &merchant
	}
	if amount, ok := parseTotal(text); ok {
		s.Amount = &amount
	}
	if c, ok := guessCategory(text); ok {
		s.Category = &c
	}
	if s.IsEmpty() {
		return nil, ErrNoFields
	}
	return s, nil
}

func firstTextLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || moneyRE.MatchString(line) {
			continue
		}
		if strings.IndexFunc(line, isLetter) < 0 {
			continue
		}
		return line
	}
	return ""
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// parseTotal prefers the last line labelled as a total, skipping subtotals,
// and otherwise takes the largest amount on the receipt.
func parseTotal(text string) (decimal.Decimal, bool) {
	var found *decimal.Decimal
	for _, line := range strings.Split(text, "\n") {
		if subtotalRE.MatchString(line) {
			continue
		}
		m := totalLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if d, ok := parseMoney(m[2]); ok {
			found = &d
		}
	}
	if found != nil {
		return *found, true
	}

	var largest decimal.Decimal
	ok := false
	for _, m := range moneyRE.FindAllStringSubmatch(text, -1) {
		d, parsed := parseMoney(m[1])
		if parsed && (!ok || d.GreaterThan(largest)) {
			largest, ok = d, true
		}
	}
	return largest, ok
}

func parseMoney(raw string) (decimal.Decimal, bool) {
	raw = strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	d = d.Abs()
	if d.IsZero() {
		return decimal.Zero, false
	}
	return d, true
}

func guessCategory(text string) (ledger.ExpenseCategory, bool) {
	lower := strings.ToLower(text)
	for _, hint := range categoryHints {
		for _, w := range hint.words {
			if strings.Contains(lower, w) {
				return hint.category, true
			}
		}
	}
	return "", false
}
