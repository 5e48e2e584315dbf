package ledger

import (
	"strconv"
	"strings"

	"github.com/bryce-dotcom/og-dealer-app-sub001/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VehicleFallbackLabel is used wherever a vehicle has no year, make or model
const VehicleFallbackLabel = "Vehicle"

// MoneyPlaces is the currency minor unit precision used for stored amounts
const MoneyPlaces int32 = 2

// RoundMoney rounds an amount to the currency minor unit
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// RatePlaces matches the stored precision of commission rates
const RatePlaces int32 = 6

// RoundRate rounds a fractional rate to the stored precision
func RoundRate(d decimal.Decimal) decimal.Decimal {
	return d.Round(RatePlaces)
}

// Vehicle is an inventory unit held for resale. Prices are edited outside
// the ledger; the ledger only reads them.
type Vehicle struct {
	shared.BaseEntity
	DealerID      uuid.UUID
	Year          int
	Make          string
	Model         string
	VIN           string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
}

// NewVehicle registers a vehicle for a dealership
func NewVehicle(dealerID uuid.UUID, year int, vehicleMake, model, vin string, purchasePrice, salePrice decimal.Decimal) (*Vehicle, error) {
	if dealerID == uuid.Nil {
		return nil, shared.NewValidationError("Dealer is required")
	}
	if year < 0 || year > 9999 {
		return nil, shared.NewDomainError(shared.CodeValidation, "Year must be between 0 and 9999")
	}
	if err := validatePrices(purchasePrice, salePrice); err != nil {
		return nil, err
	}
	return &Vehicle{
		BaseEntity:    shared.NewBaseEntity(),
		DealerID:      dealerID,
		Year:          year,
		Make:          strings.TrimSpace(vehicleMake),
		Model:         strings.TrimSpace(model),
		VIN:           strings.ToUpper(strings.TrimSpace(vin)),
		PurchasePrice: RoundMoney(purchasePrice),
		SalePrice:     RoundMoney(salePrice),
	}, nil
}

// UpdatePrices changes purchase and/or sale price. Nil leaves a price unchanged.
func (v *Vehicle) UpdatePrices(purchasePrice, salePrice *decimal.Decimal) error {
	purchase, sale := v.PurchasePrice, v.SalePrice
	if purchasePrice != nil {
		purchase = *purchasePrice
	}
	if salePrice != nil {
		sale = *salePrice
	}
	if err := validatePrices(purchase, sale); err != nil {
		return err
	}
	v.PurchasePrice = RoundMoney(purchase)
	v.SalePrice = RoundMoney(sale)
	v.Touch()
	return nil
}

func validatePrices(purchase, sale decimal.Decimal) error {
	if purchase.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Purchase price cannot be negative")
	}
	if sale.IsNegative() {
		return shared.NewDomainError(shared.CodeInvalidAmount, "Sale price cannot be negative")
	}
	return nil
}

// DisplayName returns "{year} {make} {model}" with blank parts skipped,
// or VehicleFallbackLabel when all three are blank. Safe on a nil receiver.
func (v *Vehicle) DisplayName() string {
	if v == nil {
		return VehicleFallbackLabel
	}
	parts := make([]string, 0, 3)
	if v.Year > 0 {
		parts = append(parts, strconv.Itoa(v.Year))
	}
	if m := strings.TrimSpace(v.Make); m != "" {
		parts = append(parts, m)
	}
	if m := strings.TrimSpace(v.Model); m != "" {
		parts = append(parts, m)
	}
	if len(parts) == 0 {
		return VehicleFallbackLabel
	}
	return strings.Join(parts, " ")
}

// RawProfit is sale price minus purchase price, ignoring expenses.
// Commission amounts are computed from this figure.
func (v *Vehicle) RawProfit() decimal.Decimal {
	return v.SalePrice.Sub(v.PurchasePrice)
}
