package models

import (
	"time"

	"github.com/agriquote/agriquote-backend/pkg/enums"
	"github.com/agriquote/agriquote-backend/pkg/types"
)

// User is a customer, dealer or admin account. Dealer-only fields stay empty for other roles.
type User struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Phone        string        `json:"phone"`
	Role         enums.Role    `json:"role"`
	Address      types.Address `json:"address"`
	ShowroomName string        `json:"showroom_name,omitempty"`
	Brands       []string      `json:"brands,omitempty"`
	IsApproved   bool          `json:"is_approved"`
	CreatedAt    time.Time     `json:"created_at"`
}

func (u User) Key() string { return u.ID }

func (u User) IsDealer() bool { return u.Role == enums.RoleDealer }

// SellsBrand reports an exact match against the dealer's brand set.
func (u User) SellsBrand(brand string) bool {
	for _, b := range u.Brands {
		if b == brand {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	out := u
	if u.Brands != nil {
		out.Brands = append([]string(nil), u.Brands...)
	}
	return out
}
