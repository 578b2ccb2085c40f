// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

const (
	PurposeAccess = "access"

	AccountTypeAdmin = "admin"
	AccountTypeUser  = "user"
)

// Claims carries the account id and type next to the registered claims.
type Claims struct {
	UserID      int64  `json:"user_id"`
	AccountType string `json:"account_type"`
	Purpose     string `json:"purpose"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c.AccountType == AccountTypeAdmin
}
