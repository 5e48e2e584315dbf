package ledger

import (
	"strings"
	"unicode/utf8"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRole defines the two payout tiers for a job on a sale
type CommissionRole struct {
	shared.BaseEntity
	DealerID       uuid.UUID
	RoleName       string
	HelperRate     decimal.Decimal
	SpecialistRate decimal.Decimal
}

// NewCommissionRole creates a role. Rates are fractions in [0, 1] and the
// specialist tier may not pay less than the helper tier.
func NewCommissionRole(dealerID uuid.UUID, roleName string, helperRate, specialistRate decimal.Decimal) (*CommissionRole, error) {
	if dealerID == uuid.Nil {
		return nil, shared.NewValidationError("Dealer is required")
	}
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return nil, shared.NewValidationError("Role name is required")
	}
	if utf8.RuneCountInString(roleName) > 100 {
		return nil, shared.NewValidationError("Role name cannot exceed 100 characters")
	}
	if err := validateRates(helperRate, specialistRate); err != nil {
		return nil, err
	}
	return &CommissionRole{
		BaseEntity:     shared.NewBaseEntity(),
		DealerID:       dealerID,
		RoleName:       roleName,
		HelperRate:     helperRate,
		SpecialistRate: specialistRate,
	}, nil
}

// UpdateRates replaces both tiers. Commissions already granted keep the
// rate they were granted at.
func (r *CommissionRole) UpdateRates(helperRate, specialistRate decimal.Decimal) error {
	if err := validateRates(helperRate, specialistRate); err != nil {
		return err
	}
	r.HelperRate = helperRate
	r.SpecialistRate = specialistRate
	r.Touch()
	return nil
}

// Matches reports whether roleName names this role, ignoring case and
// surrounding whitespace
func (r *CommissionRole) Matches(roleName string) bool {
	return strings.EqualFold(strings.TrimSpace(roleName), strings.TrimSpace(r.RoleName))
}

func validateRates(helperRate, specialistRate decimal.Decimal) error {
	one := decimal.NewFromInt(1)
	if helperRate.IsNegative() || helperRate.GreaterThan(one) {
		return shared.NewDomainError(shared.CodeInvalidRate, "Helper rate must be between 0 and 1")
	}
	if specialistRate.IsNegative() || specialistRate.GreaterThan(one) {
		return shared.NewDomainError(shared.CodeInvalidRate, "Specialist rate must be between 0 and 1")
	}
	if specialistRate.LessThan(helperRate) {
		return shared.NewDomainError(shared.CodeRateInversion, "Specialist rate cannot be lower than helper rate")
	}
	return nil
}
