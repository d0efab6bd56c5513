package pg

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	internal_errors "github.com/peerpods-dev/peerpods/internal/errors"
	"github.com/peerpods-dev/peerpods/shared/domain"
	shared_errors "github.com/peerpods-dev/peerpods/shared/errors"
)

const pqUniqueViolation = "23505"

func (s *Storage) CreateUser(data domain.UserCreationData) (domain.UserId, error) {
	var id domain.UserId
	err := s.db.QueryRow(`
	INSERT INTO users(username, bio, pass_hash)
	VALUES($1, $2, $3)
	RETURNING id`,
		data.Username, data.Bio, data.PassHash).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return 0, &shared_errors.ErrorWithStatusCode{Message: "Username already taken", StatusCode: 409}
		}
		return 0, err
	}
	return id, nil
}

func (s *Storage) GetUser(id domain.UserId) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
	SELECT id, username, bio, pass_hash, created_at
	FROM users
	WHERE id = $1`, id).Scan(&user.Id, &user.Username, &user.Bio, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.UserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) GetUserByUsername(username domain.Username) (*domain.User, error) {
	var user domain.User
	err := s.db.QueryRow(`
	SELECT id, username, bio, pass_hash, created_at
	FROM users
	WHERE username = $1`, username).Scan(&user.Id, &user.Username, &user.Bio, &user.PassHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, internal_errors.UserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Storage) UpdateUserBio(id domain.UserId, bio domain.Bio) error {
	result, err := s.db.Exec(`UPDATE users SET bio = $1 WHERE id = $2`, bio, id)
	if err != nil {
		return err
	}
	updated, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if updated == 0 {
		return internal_errors.UserNotFound
	}
	return nil
}
