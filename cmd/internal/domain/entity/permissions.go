package entity

// Permission is a custom type for bitwise flags
type Permission int64

const (
	// PermissionAdministrator grants god-mode.
	// Admins are immune to all restrictions and cannot be modified via API.
	PermissionAdministrator Permission = 1 << iota

	// PermissionCreateListings allows creating and submitting own listings.
	PermissionCreateListings

	// PermissionManageListings allows editing, archiving and deleting listings
	// owned by OTHER users. This is the elevated role every ownership check
	// falls back to.
	PermissionManageListings

	// PermissionReviewListings allows moving pending listings to
	// published/rejected. The review flow itself lives outside this service;
	// the bit exists so reviewer accounts can be provisioned here.
	PermissionReviewListings

	// PermissionUploadAssets allows uploading images and documents.
	PermissionUploadAssets

	// PermissionManageUsers allows modifying mutable fields of other users.
	// It does NOT grant the ability to change permissions or delete users.
	PermissionManageUsers
)

// Has checks if the permission bitmask contains ALL bits
// requested in 'target'. It ignores Administrator status.
// Logic: (p & target) == target
func (p Permission) Has(target Permission) bool {
	return (p & target) == target
}

// HasAny returns true if the user has ANY of the target permissions
func (p Permission) HasAny(target Permission) bool {
	return (p & target) > 0
}

// Add appends a permission to the bitmask
func (p Permission) Add(perm Permission) Permission {
	return p | perm
}

// Remove clears a permission from the bitmask
func (p Permission) Remove(perm Permission) Permission {
	return p &^ perm
}

// HasEffective checks if the permission bitmask contains the target bits
// OR if the permission includes Administrator
func (p Permission) HasEffective(target Permission) bool {
	return p.Has(PermissionAdministrator) || p.Has(target)
}
