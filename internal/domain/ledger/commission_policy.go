package ledger

import (
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// RateResolution is the outcome of resolving a payout rate
type RateResolution struct {
	Rate         decimal.Decimal
	IsSpecialist bool
}

// ResolveRate picks the payout rate for an employee on a role.
//
// The specialist flag is true when one of the employee's role names matches
// the role, case-insensitively. It is computed even when an override is given
// so the grant records it. An override percent wins over both tiers. A nil
// role never fails; it resolves to rate 0 unless an override is given.
func ResolveRate(role *CommissionRole, employeeRoleNames []string, overridePercent *decimal.Decimal) RateResolution {
	isSpecialist := false
	if role != nil {
		for _, name := range employeeRoleNames {
			if role.Matches(name) {
				isSpecialist = true
				break
			}
		}
	}

	switch {
	case overridePercent != nil:
		return RateResolution{Rate: overridePercent.Div(hundred), IsSpecialist: isSpecialist}
	case role == nil:
		return RateResolution{Rate: decimal.Zero}
	case isSpecialist:
		return RateResolution{Rate: role.SpecialistRate, IsSpecialist: true}
	default:
		return RateResolution{Rate: role.HelperRate}
	}
}

// ValidateOverridePercent rejects an override outside 0..100
func ValidateOverridePercent(overridePercent *decimal.Decimal) error {
	if overridePercent == nil {
		return nil
	}
	if overridePercent.IsNegative() || overridePercent.GreaterThan(hundred) {
		return shared.NewDomainError(shared.CodeInvalidRate, "Override percent must be between 0 and 100")
	}
	return nil
}
