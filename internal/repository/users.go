package repository

import (
	"github.com/sysu-ecnc-dev/complaint-tracker/backend/internal/domain"
)

func (r *Repository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{user.Name, user.Email, user.PasswordHash, user.Role}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT name, email, password_hash, role, created_at
		FROM users WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	dst := []any{&user.Name, &user.Email, &user.PasswordHash, &user.Role, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByEmail(email string) (*domain.User, error) {
	query := `
		SELECT id, name, password_hash, role, created_at
		FROM users WHERE email = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	user := &domain.User{
		Email: email,
	}

	dst := []any{&user.ID, &user.Name, &user.PasswordHash, &user.Role, &user.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, email).Scan(dst...); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			name = $1,
			email = $2,
			password_hash = $3,
			role = $4
		WHERE id = $5
		RETURNING created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{user.Name, user.Email, user.PasswordHash, user.Role, user.ID}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.CreatedAt); err != nil {
		return err
	}

	return nil
}
