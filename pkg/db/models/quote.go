package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Quote is one dealer's priced offer on a request. Dealer fields are a snapshot taken at submission.
type Quote struct {
	ID           string          `json:"id"`
	RequestID    string          `json:"request_id"`
	DealerID     string          `json:"dealer_id"`
	DealerName   string          `json:"dealer_name"`
	DealerPhone  string          `json:"dealer_phone"`
	ShowroomName string          `json:"showroom_name"`
	ExShowroom   decimal.Decimal `json:"ex_showroom_price"`
	RTO          decimal.Decimal `json:"rto_charges"`
	Insurance    decimal.Decimal `json:"insurance"`
	Accessories  decimal.Decimal `json:"accessories"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Discount     decimal.Decimal `json:"discount"`
	FinalPrice   decimal.Decimal `json:"final_price"`
	Notes        string          `json:"notes,omitempty"`
	SubmittedAt  time.Time       `json:"submitted_at"`
}
