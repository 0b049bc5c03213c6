package enums

import "fmt"

// RequestStatus tracks a quotation request's lifecycle.
type RequestStatus string

const (
	RequestStatusOpen   RequestStatus = "OPEN"
	RequestStatusClosed RequestStatus = "CLOSED"
)

var validRequestStatuses = []RequestStatus{
	RequestStatusOpen,
	RequestStatusClosed,
}

// String implements fmt.Stringer.
func (s RequestStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RequestStatus.
func (s RequestStatus) IsValid() bool {
	for _, candidate := range validRequestStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseRequestStatus converts raw input into a RequestStatus.
func ParseRequestStatus(value string) (RequestStatus, error) {
	for _, candidate := range validRequestStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid request status %q", value)
}
