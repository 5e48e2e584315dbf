package export

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const defaultCurrency = money.USD

// currencyFor returns the ISO currency, defaulting unknown codes to USD
func currencyFor(code string) *money.Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	if c := money.GetCurrency(code); c != nil {
		return c
	}
	return money.GetCurrency(defaultCurrency)
}

// formatMoney renders d in the currency's display form, e.g. "$4,050.00"
func formatMoney(d decimal.Decimal, cur *money.Currency) string {
	minor := d.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
