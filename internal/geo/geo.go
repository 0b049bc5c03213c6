// Package geo holds the district and taluka directory served to registration forms.
package geo

import (
	"fmt"
	"strings"

	pkgerrors "github.com/agriquote/agriquote-backend/pkg/errors"
)

// District is one supported district with its talukas.
type District struct {
	Name         string   `json:"name"`
	SubDistricts []string `json:"sub_districts"`
}

var directory = []District{
	{Name: "Satara", SubDistricts: []string{"Satara", "Karad", "Wai", "Mahabaleshwar", "Phaltan", "Man", "Khatav", "Koregaon", "Patan", "Jaoli", "Khandala"}},
	{Name: "Pune", SubDistricts: []string{"Pune City", "Haveli", "Khed", "Baramati", "Junnar", "Shirur", "Indapur", "Daund", "Maval", "Mulshi", "Bhor", "Velhe", "Purandar", "Ambegaon"}},
	{Name: "Sangli", SubDistricts: []string{"Miraj", "Tasgaon", "Kavathe Mahankal", "Jat", "Walwa", "Khanapur", "Shirala", "Atpadi", "Palus", "Kadegaon"}},
	{Name: "Kolhapur", SubDistricts: []string{"Karvir", "Panhala", "Shahuwadi", "Kagal", "Hatkanangale", "Shirol", "Radhanagari", "Gaganbavada", "Bhudargad", "Gadhinglaj", "Chandgad", "Ajara"}},
	{Name: "Nashik", SubDistricts: []string{"Nashik", "Baglan", "Malegaon", "Sinnar", "Niphad", "Dindori", "Igatpuri", "Trimbakeshwar", "Kalwan", "Deola", "Surgana", "Peint", "Chandwad", "Nandgaon", "Yeola"}},
}

// Directory returns a copy of every district with its talukas.
func Directory() []District {
	out := make([]District, 0, len(directory))
	for _, d := range directory {
		out = append(out, District{Name: d.Name, SubDistricts: append([]string(nil), d.SubDistricts...)})
	}
	return out
}

// Districts lists the district names in display order.
func Districts() []string {
	names := make([]string, 0, len(directory))
	for _, d := range directory {
		names = append(names, d.Name)
	}
	return names
}

// SubDistricts returns the talukas of district, or nil when the district is unknown.
func SubDistricts(district string) []string {
	for _, d := range directory {
		if d.Name == district {
			return append([]string(nil), d.SubDistricts...)
		}
	}
	return nil
}

// Validate checks that district is known and that subDistrict, when set, belongs to it.
func Validate(district, subDistrict string) error {
	district = strings.TrimSpace(district)
	if district == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "district is required")
	}
	talukas := SubDistricts(district)
	if talukas == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown district %q", district)).
			WithDetails(map[string]any{"field": "district", "allowed": Districts()})
	}

	subDistrict = strings.TrimSpace(subDistrict)
	if subDistrict == "" {
		return nil
	}
	for _, t := range talukas {
		if t == subDistrict {
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%q is not a taluka of %s", subDistrict, district)).
		WithDetails(map[string]any{"field": "sub_district"})
}
