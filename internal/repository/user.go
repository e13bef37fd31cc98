package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/delta/codecharacter/api/internal/database"
	"github.com/delta/codecharacter/api/internal/model"
)

const userFields = `record::id(id) AS id, username, email, hash, is_admin, created_at`

// UserRepository handles user data access
type UserRepository struct {
	db  database.Database
	seq *SequenceRepository
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.Database, seq *SequenceRepository) *UserRepository {
	return &UserRepository{db: db, seq: seq}
}

// Create creates a new user. Email and username collisions surface as
// database.ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	id, err := r.seq.Next(ctx, TableUser)
	if err != nil {
		return err
	}

	query := `
		CREATE ONLY type::thing('user', $id) CONTENT {
			username: $username,
			email: $email,
			hash: $hash,
			is_admin: $is_admin,
			created_at: time::now()
		}
		RETURN ` + userFields
	vars := map[string]interface{}{
		"id":       id,
		"username": user.Username,
		"email":    strings.ToLower(user.Email),
		"hash":     user.Hash,
		"is_admin": user.IsAdmin,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	data, err := asMap(result)
	if err != nil {
		return err
	}
	*user = *parseUser(data)
	return nil
}

// GetByID retrieves a user by id. Returns nil, nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	query := `SELECT ` + userFields + ` FROM ONLY type::thing('user', $id)`
	return r.getOne(ctx, query, map[string]interface{}{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userFields + ` FROM user WHERE email = $email LIMIT 1`
	return r.getOne(ctx, query, map[string]interface{}{"email": strings.ToLower(email)})
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userFields + ` FROM user WHERE username = $username LIMIT 1`
	return r.getOne(ctx, query, map[string]interface{}{"username": username})
}

// GetByIDs loads several users at once, keyed by id. Unknown ids are skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []int) (map[int]*model.User, error) {
	users := make(map[int]*model.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	query := `SELECT ` + userFields + ` FROM user WHERE record::id(id) IN $ids`

	results, err := r.db.Query(ctx, query, map[string]interface{}{"ids": intsToAny(ids)})
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	for _, data := range rowMaps(statementRows(results, 0)) {
		user := parseUser(data)
		users[user.ID] = user
	}
	return users, nil
}

func (r *UserRepository) getOne(ctx context.Context, query string, vars map[string]interface{}) (*model.User, error) {
	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	data, err := asMap(result)
	if err != nil {
		return nil, err
	}
	return parseUser(data), nil
}

func parseUser(data map[string]interface{}) *model.User {
	return &model.User{
		ID:        getInt(data, "id"),
		Username:  getString(data, "username"),
		Email:     getString(data, "email"),
		Hash:      getString(data, "hash"),
		IsAdmin:   getBool(data, "is_admin"),
		CreatedAt: getTime(data, "created_at"),
	}
}
