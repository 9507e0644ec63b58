package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

// ReviewRepo manages REVIEWED relationships (id, integer score) from
// users to movies. A user holds at most one review per movie, enforced by
// an existence check before the create inside the caller's transaction
// (see RelationRepo for the race caveat).
type ReviewRepo struct{}

// NewReviewRepo constructs a ReviewRepo.
func NewReviewRepo() *ReviewRepo {
	return &ReviewRepo{}
}

// Add creates the user's review of a movie. ErrConflict when the user
// already reviewed it, ErrNotFound when the movie does not exist.
func (r *ReviewRepo) Add(ctx context.Context, run database.Runner, userID, movieID string, score int) (*model.UserReview, error) {
	const check = `MATCH (:User {id: $userId})-[rev:REVIEWED]->(:Movie {id: $movieId}) RETURN rev LIMIT 1`
	recs, err := run.Run(ctx, check, map[string]any{"userId": userID, "movieId": movieID})
	if err != nil {
		return nil, err
	}
	if len(recs) > 0 {
		return nil, fmt.Errorf("%w: movie already reviewed", ErrConflict)
	}
	id := uuid.NewString()
	const create = `MATCH (u:User {id: $userId}), (m:Movie {id: $movieId})
CREATE (u)-[:REVIEWED {id: $id, score: $score}]->(m)
RETURN m.id AS movieId`
	recs, err = run.Run(ctx, create, map[string]any{
		"userId": userID, "movieId": movieID, "id": id, "score": score,
	})
	if err != nil {
		return nil, err
	}
	if _, err := single(recs); err != nil {
		return nil, err
	}
	return &model.UserReview{ID: id, Score: score}, nil
}

// Update changes the score of the caller's own review. The match is
// anchored on both the review id and the caller, so updating someone
// else's review reports ErrNotFound rather than revealing it exists.
func (r *ReviewRepo) Update(ctx context.Context, run database.Runner, userID, reviewID string, score int) error {
	const q = `MATCH (:User {id: $userId})-[rev:REVIEWED {id: $id}]->(:Movie)
SET rev.score = $score
RETURN rev.id AS id`
	recs, err := run.Run(ctx, q, map[string]any{"userId": userID, "id": reviewID, "score": score})
	if err != nil {
		return err
	}
	_, err = single(recs)
	return err
}

// Delete removes a review. Admins may delete any review; other callers
// only their own.
func (r *ReviewRepo) Delete(ctx context.Context, run database.Runner, userID, role, reviewID string) error {
	q := `MATCH (:User {id: $userId})-[rev:REVIEWED {id: $id}]->(:Movie)
WITH rev, 1 AS found
DELETE rev
RETURN found`
	params := map[string]any{"userId": userID, "id": reviewID}
	if role == model.RoleAdmin {
		q = `MATCH (:User)-[rev:REVIEWED {id: $id}]->(:Movie)
WITH rev, 1 AS found
DELETE rev
RETURN found`
		params = map[string]any{"id": reviewID}
	}
	recs, err := run.Run(ctx, q, params)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return ErrNotFound
	}
	return nil
}
