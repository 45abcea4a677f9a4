// Package authz implements the authorization policy: who may act on a
// resource, given the caller's role and the resource owner.
package authz

import (
	"github.com/jobdeck/jobdeck/pkg/apperr"
	"github.com/jobdeck/jobdeck/pkg/models"
)

// CheckPermission permits the action when the caller's role is in the
// privileged set, or when the caller owns the resource. Anything else is a
// terminal Unauthorized rejection. Update and delete paths call this with
// identical arguments; there is no per-route special casing.
func CheckPermission(caller models.Caller, resourceOwnerID int64, privileged ...models.Role) error {
	for _, role := range privileged {
		if caller.Role == role {
			return nil
		}
	}
	if caller.ID == resourceOwnerID {
		return nil
	}
	return apperr.New(apperr.Unauthorized, "not authorized to access this resource")
}

// RequireRole permits the action only for callers holding one of the given
// roles, regardless of ownership. Used to gate job creation.
func RequireRole(caller models.Caller, roles ...models.Role) error {
	for _, role := range roles {
		if caller.Role == role {
			return nil
		}
	}
	return apperr.New(apperr.Unauthorized, "not authorized to perform this action")
}
