package entity

// User is an authenticated actor of the admin console. Listings reference
// users through their ownerId field; the listing records themselves live in
// the document store, not in this table.
type User struct {
	ID            int64      `gorm:"primaryKey"`
	SubUUID       string     `gorm:"not null;uniqueIndex"`
	Username      string     `gorm:"not null"`
	Email         string     `gorm:"not null"`
	EmailVerified bool       `gorm:"not null"`
	Permissions   Permission `gorm:"not null;type:bigint;default:0"`
	Active        bool       `gorm:"not null;default:true"`
	Suspended     bool       `gorm:"not null;default:false"`
	CreatedAt     int64      `gorm:"not null"`
	UpdatedAt     int64      `gorm:"not null;autoUpdateTime:false"`
}

// IsElevated reports whether the user may act on listings they do not own.
func (u *User) IsElevated() bool {
	return u.Permissions.HasEffective(PermissionManageListings)
}
