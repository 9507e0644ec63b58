package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/utils"
)

// ErrEmailExists is returned when registering with an email that another
// user already holds.
var ErrEmailExists = errors.New("email already exists")

// UserRepo manages User nodes.
type UserRepo struct{}

// NewUserRepo constructs a UserRepo.
func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

const userColumns = `u.id AS id, u.name AS name, u.email AS email, u.role AS role,
       u.passwordHash AS passwordHash,
       coalesce(u.lastActive, '') AS lastActive,
       coalesce(u.activityScore, 0) AS activityScore`

func userFromRecord(rec *neo4j.Record) *model.User {
	return &model.User{
		ID:            recString(rec, "id"),
		Name:          recString(rec, "name"),
		Email:         recString(rec, "email"),
		Role:          recString(rec, "role"),
		PasswordHash:  recString(rec, "passwordHash"),
		LastActive:    recString(rec, "lastActive"),
		ActivityScore: recInt(rec, "activityScore"),
	}
}

// Create registers a user with the USER role. The email is normalized to
// lower case and must be unique; a taken email yields ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, run database.Runner, name, email, password string, bcryptCost int) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const check = `MATCH (u:User {email: $email}) RETURN u.id AS id LIMIT 1`
	recs, err := run.Run(ctx, check, map[string]any{"email": email})
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		return nil, ErrEmailExists
	}
	hash, err := utils.HashPassword(password, bcryptCost)
	if err != nil {
		return nil, err
	}
	u := &model.User{
		ID:         uuid.NewString(),
		Name:       name,
		Email:      email,
		Role:       model.RoleUser,
		LastActive: time.Now().UTC().Format(time.RFC3339),
	}
	const create = `CREATE (:User {id: $id, name: $name, email: $email, role: $role,
passwordHash: $passwordHash, lastActive: $lastActive, activityScore: 0})`
	_, err = run.Run(ctx, create, map[string]any{
		"id": u.ID, "name": u.Name, "email": u.Email, "role": u.Role,
		"passwordHash": hash, "lastActive": u.LastActive,
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email, password hash included.
func (r *UserRepo) GetByEmail(ctx context.Context, run database.Runner, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	const q = `MATCH (u:User {email: $email}) RETURN ` + userColumns
	recs, err := run.Run(ctx, q, map[string]any{"email": email})
	if err != nil {
		return nil, err
	}
	rec, err := single(recs)
	if err != nil {
		return nil, err
	}
	return userFromRecord(rec), nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, run database.Runner, id string) (*model.User, error) {
	const q = `MATCH (u:User {id: $id}) RETURN ` + userColumns
	recs, err := run.Run(ctx, q, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	rec, err := single(recs)
	if err != nil {
		return nil, err
	}
	return userFromRecord(rec), nil
}

// TouchActivity bumps the user's activity score and refreshes the
// last-active timestamp. Called from every mutating use case; a missing
// user is ignored rather than failing the surrounding operation.
func (r *UserRepo) TouchActivity(ctx context.Context, run database.Runner, id string) error {
	const q = `MATCH (u:User {id: $id})
SET u.lastActive = $now, u.activityScore = coalesce(u.activityScore, 0) + 1`
	_, err := run.Run(ctx, q, map[string]any{
		"id": id, "now": time.Now().UTC().Format(time.RFC3339),
	})
	return err
}

// MostActive returns the user with the highest activity score, ties
// broken by id. ErrNotFound when no users exist.
func (r *UserRepo) MostActive(ctx context.Context, run database.Runner) (*model.User, error) {
	const q = `MATCH (u:User)
RETURN ` + userColumns + `
ORDER BY activityScore DESC, u.id ASC
LIMIT 1`
	recs, err := run.Run(ctx, q, nil)
	if err != nil {
		return nil, err
	}
	rec, err := single(recs)
	if err != nil {
		return nil, err
	}
	u := userFromRecord(rec)
	u.PasswordHash = ""
	return u, nil
}
