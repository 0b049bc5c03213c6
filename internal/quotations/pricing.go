package quotations

import (
	"github.com/shopspring/decimal"

	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
)

// PriceInput is what a dealer submits for one request.
type PriceInput struct {
	ExShowroom  decimal.Decimal
	RTO         decimal.Decimal
	Insurance   decimal.Decimal
	Accessories decimal.Decimal
	Discount    decimal.Decimal
	Notes       string
	// ExpectedVersion, when set, must equal the request's stored version.
	ExpectedVersion *int
}

// Breakdown is the computed on-road and final price.
type Breakdown struct {
	Base  decimal.Decimal
	Final decimal.Decimal
}

// ValidatePrice rejects negative monetary inputs.
func ValidatePrice(in PriceInput) error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"ex_showroom_price", in.ExShowroom},
		{"rto_charges", in.RTO},
		{"insurance", in.Insurance},
		{"accessories", in.Accessories},
		{"discount", in.Discount},
	}
	var negative []string
	for _, f := range fields {
		if f.value.IsNegative() {
			negative = append(negative, f.name)
		}
	}
	if len(negative) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "prices must not be negative").
			WithDetails(map[string]any{"fields": negative})
	}
	return nil
}

// ComputePrice sums the four cost components and subtracts the discount.
// A discount larger than the base yields a negative final price.
func ComputePrice(in PriceInput) Breakdown {
	base := in.ExShowroom.Add(in.RTO).Add(in.Insurance).Add(in.Accessories)
	return Breakdown{Base: base, Final: base.Sub(in.Discount)}
}
