package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrUserNotFound = errors.New("user not found")

// User is an account in the review system. LeaderID and BossID define who
// evaluates this user.
type User struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	LeaderID *string `json:"leaderId,omitempty"`
	BossID   *string `json:"bossId,omitempty"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) UserByEmail(ctx context.Context, email string) (User, string, error) {
	var user User
	var passwordHash string
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role, leader_id, boss_id, password_hash
    FROM users WHERE email = $1
  `, email).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.LeaderID, &user.BossID, &passwordHash)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, "", ErrUserNotFound
	}
	if err != nil {
		return User{}, "", err
	}
	return user, passwordHash, nil
}

func (s *Store) UserByID(ctx context.Context, id string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, name, email, role, leader_id, boss_id
    FROM users WHERE id = $1
  `, id).Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.LeaderID, &user.BossID)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *Store) ListEmployees(ctx context.Context) ([]User, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, name, email, role, leader_id, boss_id
    FROM users WHERE role != $1 ORDER BY name
  `, RoleAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.LeaderID, &user.BossID); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
