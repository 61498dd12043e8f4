package domain

import (
	"fmt"
	"strings"
)

// Role is the authorization level of a user
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// DefaultRole applies when a user has no role record
const DefaultRole = RoleUser

// ParseRole parses a role name, case-insensitively
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", NewValidationError("role", fmt.Sprintf("unknown role %q", s))
	}
}

// Capability names a gated action
type Capability string

const (
	CapRegisterMembers  Capability = "register_members"
	CapAddDeliveries    Capability = "add_deliveries"
	CapManagePayments   Capability = "manage_payments"
	CapCaptureSnapshots Capability = "capture_snapshots"
)

// Capabilities is the set of gated actions available to a principal
type Capabilities struct {
	Role                Role `json:"role"`
	IsAdmin             bool `json:"is_admin"`
	CanRegisterMembers  bool `json:"can_register_members"`
	CanAddDeliveries    bool `json:"can_add_deliveries"`
	CanManagePayments   bool `json:"can_manage_payments"`
	CanCaptureSnapshots bool `json:"can_capture_snapshots"`
}

// CapabilitiesFor derives the capability set of a role
func CapabilitiesFor(r Role) Capabilities {
	admin := r == RoleAdmin
	if !admin {
		r = RoleUser
	}
	return Capabilities{
		Role:                r,
		IsAdmin:             admin,
		CanRegisterMembers:  admin,
		CanAddDeliveries:    admin,
		CanManagePayments:   admin,
		CanCaptureSnapshots: admin,
	}
}

// Allows reports whether the capability set grants want
func (c Capabilities) Allows(want Capability) bool {
	switch want {
	case CapRegisterMembers:
		return c.CanRegisterMembers
	case CapAddDeliveries:
		return c.CanAddDeliveries
	case CapManagePayments:
		return c.CanManagePayments
	case CapCaptureSnapshots:
		return c.CanCaptureSnapshots
	default:
		return false
	}
}
