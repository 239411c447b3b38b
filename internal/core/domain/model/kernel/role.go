package kernel

import (
	"fmt"

	"qatmarket/internal/pkg/errs"
)

// Role identifies the party acting on an order or a wallet.
// Every state transition is authorized against the acting role,
// so handlers must resolve the caller's role before invoking the domain.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	// This value (0) helps catch uninitialized Role values.
	RoleUnknown Role = iota

	// RoleBuyer places orders and pays for them from the wallet balance.
	RoleBuyer

	// RoleSeller owns the products and prepares confirmed orders.
	RoleSeller

	// RoleWasher runs the washing station that processes orders requesting washing.
	RoleWasher

	// RoleDriver picks up prepared orders and delivers them to the buyer.
	RoleDriver

	// RoleAdmin operates the platform and may cancel or refund orders.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "unknown",
		RoleBuyer:   "buyer",
		RoleSeller:  "seller",
		RoleWasher:  "washer",
		RoleDriver:  "driver",
		RoleAdmin:   "admin",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleBuyer:  "buyer",
		RoleSeller: "seller",
		RoleWasher: "washer",
		RoleDriver: "driver",
		RoleAdmin:  "admin",
	}
}

// RoleFromString parses a role from its wire representation.
// Returns an error for anything that is not one of the five known roles.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is one of the five known roles.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire name of the role.
// This method implements the fmt.Stringer interface and is safe
// to call on any Role value, including invalid ones.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}
