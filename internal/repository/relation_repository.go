package repository

import (
	"context"
	"fmt"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
)

// Relation kinds accepted by RelationRepo and MovieRepo.ListByRelation.
const (
	RelationWatchlist = "watchlist"
	RelationFavourite = "favourite"
	RelationIgnores   = "ignores"
)

// relationTypes whitelists the unlabelled-data relationship types a user
// can toggle on a movie. The map doubles as an injection guard: only these
// tokens are ever interpolated into Cypher.
var relationTypes = map[string]string{
	RelationWatchlist: "WATCHLIST",
	RelationFavourite: "FAVOURITE",
	RelationIgnores:   "IGNORES",
}

// RelationRepo toggles the watchlist/favourite/ignores relationships. The
// existence of the edge is the fact; the edges carry no properties. All
// three kinds share one query body, parameterized by relationship type.
//
// At-most-one edge per (user, movie) pair is enforced by an existence
// check before the create, inside the caller's transaction. Two write
// transactions racing on the same pair can both pass the check; the store
// carries no structural uniqueness constraint to stop them.
type RelationRepo struct{}

// NewRelationRepo constructs a RelationRepo.
func NewRelationRepo() *RelationRepo {
	return &RelationRepo{}
}

func relType(kind string) (string, error) {
	rel, ok := relationTypes[kind]
	if !ok {
		return "", fmt.Errorf("unknown relation kind %q", kind)
	}
	return rel, nil
}

// Add creates the relationship from user to movie. ErrConflict when the
// edge already exists, ErrNotFound when the movie (or user) does not.
func (r *RelationRepo) Add(ctx context.Context, run database.Runner, userID, movieID, kind string) error {
	rel, err := relType(kind)
	if err != nil {
		return err
	}
	check := fmt.Sprintf(
		`MATCH (:User {id: $userId})-[rel:%s]->(:Movie {id: $movieId}) RETURN rel LIMIT 1`, rel)
	recs, err := run.Run(ctx, check, map[string]any{"userId": userID, "movieId": movieID})
	if err != nil {
		return err
	}
	if len(recs) > 0 {
		return fmt.Errorf("%w: movie already on %s", ErrConflict, kind)
	}
	create := fmt.Sprintf(
		`MATCH (u:User {id: $userId}), (m:Movie {id: $movieId})
CREATE (u)-[:%s]->(m)
RETURN m.id AS id`, rel)
	recs, err = run.Run(ctx, create, map[string]any{"userId": userID, "movieId": movieID})
	if err != nil {
		return err
	}
	_, err = single(recs)
	return err
}

// Remove deletes the relationship. ErrNotFound when no such edge exists.
func (r *RelationRepo) Remove(ctx context.Context, run database.Runner, userID, movieID, kind string) error {
	rel, err := relType(kind)
	if err != nil {
		return err
	}
	q := fmt.Sprintf(
		`MATCH (:User {id: $userId})-[rel:%s]->(:Movie {id: $movieId})
WITH rel, 1 AS found
DELETE rel
RETURN found`, rel)
	recs, err := run.Run(ctx, q, map[string]any{"userId": userID, "movieId": movieID})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return ErrNotFound
	}
	return nil
}
