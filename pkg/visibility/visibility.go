package visibility

import (
	"github.com/agriquote/agriquote-backend/pkg/db/models"
	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
)

// DealerEligible reports whether a dealer may see or quote on any request at all.
func DealerEligible(dealer *models.User) bool {
	return dealer != nil && dealer.IsDealer() && dealer.IsApproved && len(dealer.Brands) > 0
}

// DealerCanSee applies the marketplace visibility rule: an eligible dealer sees a request when
// the snapshot brand is one of theirs and the district matches. Both comparisons are exact.
func DealerCanSee(dealer *models.User, req models.QuotationRequest) bool {
	if !DealerEligible(dealer) {
		return false
	}
	return req.District == dealer.Address.District && dealer.SellsBrand(req.TractorSnapshot.Brand)
}

// EnsureDealerCanQuote returns a typed error explaining why dealer is gated from quoting.
func EnsureDealerCanQuote(dealer *models.User) error {
	if dealer == nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "dealer required")
	}
	if !dealer.IsDealer() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only dealers can submit quotes")
	}
	if !dealer.IsApproved {
		return pkgerrors.New(pkgerrors.CodeForbidden, "dealer not approved")
	}
	return nil
}
