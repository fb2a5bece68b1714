package domain

type User struct {
	ID           int64  `gorm:"primaryKey" json:"id"`
	Email        string `gorm:"uniqueIndex" json:"email"`
	PasswordHash string `json:"-"`
	IsSuperuser  bool   `json:"is_superuser"`
	// nil means platform-level superuser scope, otherwise the user is bound
	// to one supplier.
	SupplierID *int64 `gorm:"index" json:"supplier_id"`
	// CurrentToken holds the single valid session token. Issuing a new one
	// supersedes whatever is stored here, regardless of signature validity.
	CurrentToken string `json:"-"`
}

// CanAccess reports whether the user may touch resources of the given
// supplier. Superusers pass unconditionally; scoped users only within their
// own supplier; everything else is denied.
func (u *User) CanAccess(supplierID int64) bool {
	if u.IsSuperuser {
		return true
	}
	return u.SupplierID != nil && *u.SupplierID == supplierID
}
