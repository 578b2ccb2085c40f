// internal/repository/sqldb/user_repo.go
package sqldb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"carmarket-service/internal/db"
	"carmarket-service/internal/domain/user"
	xerrors "carmarket-service/internal/pkg/errors"
)

const userColumns = `id, name, email, phone, password, acctype, active, regdate`

type UserRepository struct {
	db db.Executor
}

func NewUserRepository(exec db.Executor) *UserRepository {
	return &UserRepository{db: exec}
}

func scanUser(s scanner) (*user.User, error) {
	var u user.User
	var reg db.Time
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.PasswordHash, &u.AccountType, &u.Active, &reg); err != nil {
		return nil, err
	}
	u.RegDate = reg.Time
	return &u, nil
}

// Create inserts a user. A taken email yields xerrors.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u *user.User) (int64, error) {
	query := `
		INSERT INTO users (name, email, phone, password, acctype, active)
		VALUES (?, ?, ?, ?, ?, ?)`

	id, err := r.db.Insert(ctx, query, "id", u.Name, u.Email, u.Phone, u.PasswordHash, u.AccountType, u.Active)
	if err != nil {
		return 0, conflict(err, "user")
	}
	u.ID = id
	return id, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepository) findOne(ctx context.Context, query string, arg any) (*user.User, error) {
	u, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, db.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

// SearchByEmail matches a case-insensitive email substring.
func (r *UserRepository) SearchByEmail(ctx context.Context, fragment string) ([]user.User, error) {
	pattern := "%" + strings.ToLower(fragment) + "%"

	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE LOWER(email) LIKE ? ORDER BY id ASC`, pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) (bool, error) {
	n, err := r.db.Exec(ctx, `UPDATE users SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return false, fmt.Errorf("failed to update user %d: %w", id, err)
	}
	return n > 0, nil
}
