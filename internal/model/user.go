package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// ParseRole accepts the canonical role names and the plural forms
// ("buyers", "sellers") that older clients store.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "buyer", "buyers":
		return RoleBuyer, nil
	case "seller", "sellers":
		return RoleSeller, nil
	case "admin", "admins":
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*r = RoleBuyer
		return nil
	}
	role, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

type SellerStatus string

const (
	StatusPending  SellerStatus = "pending"
	StatusVerified SellerStatus = "verified"
)

type User struct {
	ID        uuid.UUID    `json:"_id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      Role         `json:"role"`
	Status    SellerStatus `json:"status,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}
