// internal/domain/user/repository.go
package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) (int64, error)
	FindByID(ctx context.Context, id int64) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	SearchByEmail(ctx context.Context, fragment string) ([]User, error)
	SetActive(ctx context.Context, id int64, active bool) (bool, error)
}
