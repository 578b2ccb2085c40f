// internal/pkg/session/types.go
package session

import "time"

type SessionData struct {
	JTI         string    `json:"jti"`
	UserID      int64     `json:"user_id"`
	AccountType string    `json:"account_type"`
	Email       string    `json:"email"`
	IPAddress   string    `json:"ip_address"`
	UserAgent   string    `json:"user_agent"`
	LoginAt     time.Time `json:"login_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}
