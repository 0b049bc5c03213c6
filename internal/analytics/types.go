package analytics

// Count is one bucket of a grouped tally.
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Overview is the admin dashboard snapshot.
type Overview struct {
	TotalRequests       int     `json:"total_requests"`
	TotalQuotes         int     `json:"total_quotes"`
	TotalTractors       int     `json:"total_tractors"`
	TotalDealers        int     `json:"total_dealers"`
	ApprovedDealers     int     `json:"approved_dealers"`
	ApprovalRate        int     `json:"approval_rate_percent"`
	RequestsPerBrand    []Count `json:"requests_per_brand"`
	RequestsPerDistrict []Count `json:"requests_per_district"`
}

// DealerSummary backs the dealer dashboard counters.
type DealerSummary struct {
	VisibleRequests int `json:"visible_requests"`
	QuotedRequests  int `json:"quoted_requests"`
	// PendingRequests are visible requests without this dealer's quote.
	PendingRequests int `json:"pending_requests"`
}
