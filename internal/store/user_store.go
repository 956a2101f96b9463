package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/vinayk98/mini-crm/internal/model"
)

// CreateUser stores an account with a bcrypt hash of password. A zero ID
// lets SQLite assign the next integer.
func (s *SQLiteStore) CreateUser(ctx context.Context, u model.User, password string) (*model.User, error) {
	if strings.TrimSpace(u.Email) == "" {
		return nil, fmt.Errorf("user email must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password for %s: %w", u.Email, err)
	}

	var id interface{}
	if u.ID != 0 {
		id = u.ID
	}
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, role) VALUES (?, ?, ?, ?)",
		id, strings.ToLower(u.Email), string(hash), u.Role,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user %s: %w", u.Email, err)
	}
	if u.ID == 0 {
		newID, err := result.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("reading user id: %w", err)
		}
		u.ID = int(newID)
	}
	u.Email = strings.ToLower(u.Email)
	return &u, nil
}

// FindUser returns the account whose email and password match. Unknown
// emails and wrong passwords both yield model.ErrNotFound.
func (s *SQLiteStore) FindUser(ctx context.Context, email, password string) (*model.User, error) {
	var row struct {
		model.User
		PasswordHash string `db:"password_hash"`
	}
	err := s.db.GetContext(ctx, &row,
		"SELECT id, email, role, password_hash FROM users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, model.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user %s: %w", email, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)) != nil {
		return nil, fmt.Errorf("user %s: %w", email, model.ErrNotFound)
	}
	return &row.User, nil
}

// CountUsers returns the number of stored accounts.
func (s *SQLiteStore) CountUsers(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM users"); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}
