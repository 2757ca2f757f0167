// Package auth implements capability checks decoupled from any particular
// identity-provider representation. A capability maps 1:1 onto a stored role
// name; what counts is the explicit (user, capability) -> bool contract.
package auth

import "context"

// Capability names a permission a user may hold.
type Capability string

// CapabilityEditor permits creating and editing catalog entries.
const CapabilityEditor Capability = "editor"

// RoleSource answers role-membership queries. *repository.UsersRepository
// satisfies it.
type RoleSource interface {
	HasRole(ctx context.Context, userID, role string) (bool, error)
}

// Has reports whether the user holds the required capability. An empty user id
// never holds any capability.
func Has(ctx context.Context, src RoleSource, userID string, c Capability) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return src.HasRole(ctx, userID, string(c))
}
