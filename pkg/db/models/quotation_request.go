package models

import (
	"time"

	"github.com/agriquote/agriquote-backend/pkg/enums"
)

// QuotationRequest is a customer's ask for prices on one tractor in one district.
type QuotationRequest struct {
	ID              string              `json:"id"`
	CustomerID      string              `json:"customer_id"`
	CustomerName    string              `json:"customer_name"`
	TractorID       string              `json:"tractor_id"`
	TractorSnapshot Tractor             `json:"tractor_snapshot"`
	District        string              `json:"district"`
	Status          enums.RequestStatus `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	Quotes          []Quote             `json:"quotes"`
	Version         int                 `json:"version"`
}

func (r QuotationRequest) Key() string { return r.ID }

// QuoteIndexForDealer returns the position of dealerID's quote or -1.
func (r QuotationRequest) QuoteIndexForDealer(dealerID string) int {
	for i := range r.Quotes {
		if r.Quotes[i].DealerID == dealerID {
			return i
		}
	}
	return -1
}

// FindQuote looks a quote up by id.
func (r QuotationRequest) FindQuote(quoteID string) (*Quote, bool) {
	for i := range r.Quotes {
		if r.Quotes[i].ID == quoteID {
			q := r.Quotes[i]
			return &q, true
		}
	}
	return nil, false
}

// Clone deep-copies the quote list.
func (r QuotationRequest) Clone() QuotationRequest {
	out := r
	out.Quotes = append([]Quote{}, r.Quotes...)
	return out
}
