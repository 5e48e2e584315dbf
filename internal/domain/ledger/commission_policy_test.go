package ledger_test

import (
	"testing"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/ledger"
	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func salesRole(t *testing.T) *ledger.CommissionRole {
	t.Helper()
	role, err := ledger.NewCommissionRole(uuid.New(), "Sales", dec("0.05"), dec("0.10"))
	require.NoError(t, err)
	return role
}

func TestResolveRate(t *testing.T) {
	role := salesRole(t)

	tests := []struct {
		name           string
		role           *ledger.CommissionRole
		employeeRoles  []string
		override       *decimal.Decimal
		wantRate       string
		wantSpecialist bool
	}{
		{
			name:           "specialist gets specialist rate",
			role:           role,
			employeeRoles:  []string{"Finance", "Sales"},
			wantRate:       "0.10",
			wantSpecialist: true,
		},
		{
			name:           "match ignores case and whitespace",
			role:           role,
			employeeRoles:  []string{"  sALes "},
			wantRate:       "0.10",
			wantSpecialist: true,
		},
		{
			name:          "helper gets helper rate",
			role:          role,
			employeeRoles: []string{"Detail"},
			wantRate:      "0.05",
		},
		{
			name:     "no employee roles gets helper rate",
			role:     role,
			wantRate: "0.05",
		},
		{
			name:           "override wins for specialist and flag is kept",
			role:           role,
			employeeRoles:  []string{"Sales"},
			override:       decPtr("7.5"),
			wantRate:       "0.075",
			wantSpecialist: true,
		},
		{
			name:          "override wins for helper",
			role:          role,
			employeeRoles: []string{"Detail"},
			override:      decPtr("25"),
			wantRate:      "0.25",
		},
		{
			name:          "missing role resolves to zero",
			employeeRoles: []string{"Sales"},
			wantRate:      "0",
		},
		{
			name:     "missing role with override uses override",
			override: decPtr("3"),
			wantRate: "0.03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ledger.ResolveRate(tt.role, tt.employeeRoles, tt.override)
			assert.True(t, dec(tt.wantRate).Equal(got.Rate), "rate = %s", got.Rate)
			assert.Equal(t, tt.wantSpecialist, got.IsSpecialist)
		})
	}
}

func TestValidateOverridePercent(t *testing.T) {
	assert.NoError(t, ledger.ValidateOverridePercent(nil))
	assert.NoError(t, ledger.ValidateOverridePercent(decPtr("0")))
	assert.NoError(t, ledger.ValidateOverridePercent(decPtr("100")))

	err := ledger.ValidateOverridePercent(decPtr("-1"))
	assert.True(t, shared.IsCode(err, shared.CodeInvalidRate))
	err = ledger.ValidateOverridePercent(decPtr("100.01"))
	assert.True(t, shared.IsCode(err, shared.CodeInvalidRate))
}

func TestNewCommissionRole(t *testing.T) {
	dealerID := uuid.New()

	tests := []struct {
		name       string
		roleName   string
		helper     string
		specialist string
		wantCode   string
	}{
		{name: "valid", roleName: "Sales", helper: "0.05", specialist: "0.10"},
		{name: "equal tiers allowed", roleName: "Detail", helper: "0.02", specialist: "0.02"},
		{name: "blank name", roleName: "  ", helper: "0.05", specialist: "0.10", wantCode: shared.CodeValidation},
		{name: "helper above one", roleName: "Sales", helper: "1.5", specialist: "1.5", wantCode: shared.CodeInvalidRate},
		{name: "negative specialist", roleName: "Sales", helper: "0", specialist: "-0.1", wantCode: shared.CodeInvalidRate},
		{name: "inverted tiers", roleName: "Sales", helper: "0.10", specialist: "0.05", wantCode: shared.CodeRateInversion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, err := ledger.NewCommissionRole(dealerID, tt.roleName, dec(tt.helper), dec(tt.specialist))
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, shared.IsCode(err, tt.wantCode), "got %v", err)
				assert.Nil(t, role)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dealerID, role.DealerID)
		})
	}
}

func TestCommissionRole_UpdateRatesRejectsInversion(t *testing.T) {
	role := salesRole(t)

	err := role.UpdateRates(dec("0.20"), dec("0.10"))
	assert.True(t, shared.IsCode(err, shared.CodeRateInversion))
	assert.True(t, dec("0.05").Equal(role.HelperRate))

	require.NoError(t, role.UpdateRates(dec("0.06"), dec("0.12")))
	assert.True(t, dec("0.12").Equal(role.SpecialistRate))
}

func TestResolveRate_StoredInvertedRowStillResolves(t *testing.T) {
	// Rows written before the inversion check existed are read as-is.
	role := &ledger.CommissionRole{RoleName: "Porter", HelperRate: dec("0.08"), SpecialistRate: dec("0.04")}

	got := ledger.ResolveRate(role, []string{"porter"}, nil)
	assert.True(t, dec("0.04").Equal(got.Rate))
	assert.True(t, got.IsSpecialist)
}
