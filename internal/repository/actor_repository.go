package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

// ActorRepo manages Actor nodes.
type ActorRepo struct{}

// NewActorRepo constructs an ActorRepo.
func NewActorRepo() *ActorRepo {
	return &ActorRepo{}
}

const actorColumns = `a.id AS id, a.firstName AS firstName, a.lastName AS lastName,
       a.dateOfBirth AS dateOfBirth, a.biography AS biography, a.pictureUri AS pictureUri`

func actorFromRecord(rec *neo4j.Record) model.Actor {
	return model.Actor{
		ID:          recString(rec, "id"),
		FirstName:   recString(rec, "firstName"),
		LastName:    recString(rec, "lastName"),
		DateOfBirth: recString(rec, "dateOfBirth"),
		Biography:   recString(rec, "biography"),
		PictureURI:  recStringPtr(rec, "pictureUri"),
	}
}

// Create inserts an Actor node, assigning the generated id back to a.
func (r *ActorRepo) Create(ctx context.Context, run database.Runner, a *model.Actor) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	const q = `CREATE (:Actor {id: $id, firstName: $firstName, lastName: $lastName,
dateOfBirth: $dateOfBirth, biography: $biography,
pictureUri: $pictureUri, picturePublicId: $picturePublicId})`
	_, err := run.Run(ctx, q, map[string]any{
		"id": a.ID, "firstName": a.FirstName, "lastName": a.LastName,
		"dateOfBirth": a.DateOfBirth, "biography": a.Biography,
		"pictureUri": nullable(a.PictureURI), "picturePublicId": nullable(a.PicturePublicID),
	})
	return err
}

// Update rewrites an actor's properties. ErrNotFound when absent.
func (r *ActorRepo) Update(ctx context.Context, run database.Runner, a *model.Actor) error {
	const q = `MATCH (a:Actor {id: $id})
SET a.firstName = $firstName, a.lastName = $lastName,
    a.dateOfBirth = $dateOfBirth, a.biography = $biography
RETURN a.id AS id`
	recs, err := run.Run(ctx, q, map[string]any{
		"id": a.ID, "firstName": a.FirstName, "lastName": a.LastName,
		"dateOfBirth": a.DateOfBirth, "biography": a.Biography,
	})
	if err != nil {
		return err
	}
	_, err = single(recs)
	return err
}

// UpdatePicture stores the URL and public id handed back by the external
// photo service. Passing nils clears the picture. Update deliberately
// leaves the picture properties alone; this is the only write path for
// them after create.
func (r *ActorRepo) UpdatePicture(ctx context.Context, run database.Runner, id string, uri, publicID *string) error {
	const q = `MATCH (a:Actor {id: $id})
SET a.pictureUri = $pictureUri, a.picturePublicId = $picturePublicId
RETURN a.id AS id`
	recs, err := run.Run(ctx, q, map[string]any{
		"id": id, "pictureUri": nullable(uri), "picturePublicId": nullable(publicID),
	})
	if err != nil {
		return err
	}
	_, err = single(recs)
	return err
}

// Delete removes an actor and its PLAYED_IN edges.
func (r *ActorRepo) Delete(ctx context.Context, run database.Runner, id string) error {
	const q = `MATCH (a:Actor {id: $id})
WITH a, a.id AS deletedId
DETACH DELETE a
RETURN deletedId`
	recs, err := run.Run(ctx, q, map[string]any{"id": id})
	if err != nil {
		return err
	}
	_, err = single(recs)
	return err
}

// GetByID fetches one actor.
func (r *ActorRepo) GetByID(ctx context.Context, run database.Runner, id string) (*model.Actor, error) {
	const q = `MATCH (a:Actor {id: $id}) RETURN ` + actorColumns
	recs, err := run.Run(ctx, q, map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	rec, err := single(recs)
	if err != nil {
		return nil, err
	}
	a := actorFromRecord(rec)
	return &a, nil
}

// List returns all actors ordered by last then first name.
func (r *ActorRepo) List(ctx context.Context, run database.Runner) ([]model.Actor, error) {
	const q = `MATCH (a:Actor)
RETURN ` + actorColumns + `
ORDER BY a.lastName ASC, a.firstName ASC, a.id ASC`
	recs, err := run.Run(ctx, q, nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.Actor, 0, len(recs))
	for _, rec := range recs {
		out = append(out, actorFromRecord(rec))
	}
	return out, nil
}
