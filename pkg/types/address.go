package types

import "strings"

// Address locates a user inside the district/taluka hierarchy.
type Address struct {
	// Locality is the village or at-post line.
	Locality    string `json:"locality,omitempty"`
	SubDistrict string `json:"sub_district,omitempty"`
	District    string `json:"district"`
}

// Normalize trims every component.
func (a Address) Normalize() Address {
	return Address{
		Locality:    strings.TrimSpace(a.Locality),
		SubDistrict: strings.TrimSpace(a.SubDistrict),
		District:    strings.TrimSpace(a.District),
	}
}
