// internal/domain/auth/entity.go
package auth

const (
	AccountTypeUser  = "user"
	AccountTypeAdmin = "admin"
)

// Viewer is the identity attached to a request by the auth middleware.
// A nil *Viewer is an anonymous caller.
type Viewer struct {
	UserID      int64  `json:"user_id"`
	AccountType string `json:"account_type"`
	JTI         string `json:"-"`
}

// IsAdmin is the only elevated-privilege check in the service.
func (v *Viewer) IsAdmin() bool {
	return v != nil && v.AccountType == AccountTypeAdmin
}

// Owns reports whether the viewer is the given owner.
func (v *Viewer) Owns(ownerID int64) bool {
	return v != nil && v.UserID == ownerID
}

// CanManage is true for the owner and for admins.
func (v *Viewer) CanManage(ownerID int64) bool {
	return v.Owns(ownerID) || v.IsAdmin()
}
