// internal/domain/user/entity.go
package user

import "time"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password"`
	AccountType  string    `json:"account_type" db:"acctype"`
	Active       bool      `json:"active" db:"active"`
	RegDate      time.Time `json:"regdate" db:"regdate"`
}
