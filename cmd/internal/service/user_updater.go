package service

import (
	"listingdesk/cmd/internal/domain/entity"
	"listingdesk/cmd/internal/utils/apierror"
)

// userUpdater acts as a "Change Set" context.
// It accumulates errors and tracks if a save is actually needed.
type userUpdater struct {
	actor  *entity.User
	target *entity.User

	// State
	err   apierror.ErrorResponse
	dirty bool
}

func (u *userUpdater) setUsername(newVal *string) {
	if u.err != nil || newVal == nil {
		return
	}

	if *newVal == u.target.Username {
		return
	}

	if !u.canManageTarget() {
		u.err = apierror.PermissionDeniedError
		return
	}

	u.target.Username = *newVal
	u.dirty = true
}

// setPermissions handles the permission bitmask. Only administrators can hand
// out bits, and no one modifies another administrator.
func (u *userUpdater) setPermissions(newVal *int64) {
	if u.err != nil || newVal == nil {
		return
	}

	newPerms := entity.Permission(*newVal)
	if u.target.Permissions == newPerms {
		return
	}

	if !u.actor.Permissions.Has(entity.PermissionAdministrator) || u.targetIsOtherAdmin() {
		u.err = apierror.PermissionDeniedError
		return
	}

	u.target.Permissions = newPerms
	u.dirty = true
}

func (u *userUpdater) setSuspended(newVal *bool) {
	if u.err != nil || newVal == nil {
		return
	}

	if u.target.Suspended == *newVal {
		return
	}

	if !u.actor.Permissions.HasEffective(entity.PermissionManageUsers) || u.targetIsOtherAdmin() {
		u.err = apierror.PermissionDeniedError
		return
	}

	u.target.Suspended = *newVal
	u.dirty = true
}

// canManageTarget: users edit themselves; managers edit everyone except
// administrators they are not.
func (u *userUpdater) canManageTarget() bool {
	if u.actor.ID == u.target.ID {
		return true
	}
	return u.actor.Permissions.HasEffective(entity.PermissionManageUsers) && !u.targetIsOtherAdmin()
}

func (u *userUpdater) targetIsOtherAdmin() bool {
	return u.target.Permissions.Has(entity.PermissionAdministrator) && u.actor.ID != u.target.ID
}
