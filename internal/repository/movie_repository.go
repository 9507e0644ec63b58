package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

// MovieRepo manages Movie nodes and their PLAYED_IN / IS relationships.
// Listing queries live in movie_search.go.
type MovieRepo struct{}

// NewMovieRepo constructs a MovieRepo.
func NewMovieRepo() *MovieRepo {
	return &MovieRepo{}
}

// nullable passes an optional property through as a driver null instead of
// an empty string.
func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// anyStrings converts a string slice into the []any shape the driver
// serializes for UNWIND parameters. The result is never nil.
func anyStrings(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

// lowered returns the lower-cased copy used for case-insensitive genre
// matching.
func lowered(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, strings.ToLower(s))
	}
	return out
}

// Create inserts a Movie node plus PLAYED_IN edges to the supplied actor
// ids and IS edges to the supplied genre names. References that do not
// resolve to an existing node are skipped silently; a create is never
// rejected because of an unresolvable actor or genre. The generated id is
// assigned back to m.
func (r *MovieRepo) Create(ctx context.Context, run database.Runner, m *model.Movie, actorIDs, genreNames []string) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	const q = `CREATE (:Movie {id: $id, title: $title, description: $description,
releaseDate: $releaseDate, minimumAge: $minimumAge, inTheaters: $inTheaters,
pictureUri: $pictureUri, picturePublicId: $picturePublicId,
trailerUri: $trailerUri, popularity: 0})`
	_, err := run.Run(ctx, q, map[string]any{
		"id":              m.ID,
		"title":           m.Title,
		"description":     m.Description,
		"releaseDate":     m.ReleaseDate,
		"minimumAge":      m.MinimumAge,
		"inTheaters":      m.InTheaters,
		"pictureUri":      nullable(m.PictureURI),
		"picturePublicId": nullable(m.PicturePublicID),
		"trailerUri":      nullable(m.TrailerURI),
	})
	if err != nil {
		return err
	}
	if err := r.mergeActors(ctx, run, m.ID, actorIDs); err != nil {
		return err
	}
	return r.mergeGenres(ctx, run, m.ID, genreNames)
}

// Update rewrites the movie's properties and reconciles its actor and
// genre edge sets against the desired sets: extra edges are removed,
// missing ones are created (MERGE), so applying the same sets twice is a
// no-op. Returns ErrNotFound when the movie does not exist.
func (r *MovieRepo) Update(ctx context.Context, run database.Runner, m *model.Movie, actorIDs, genreNames []string) error {
	const q = `MATCH (m:Movie {id: $id})
SET m.title = $title, m.description = $description, m.releaseDate = $releaseDate,
    m.minimumAge = $minimumAge, m.inTheaters = $inTheaters, m.trailerUri = $trailerUri
RETURN m.id AS id`
	recs, err := run.Run(ctx, q, map[string]any{
		"id":          m.ID,
		"title":       m.Title,
		"description": m.Description,
		"releaseDate": m.ReleaseDate,
		"minimumAge":  m.MinimumAge,
		"inTheaters":  m.InTheaters,
		"trailerUri":  nullable(m.TrailerURI),
	})
	if err != nil {
		return err
	}
	if _, err := single(recs); err != nil {
		return err
	}

	// Drop edges outside the desired sets before merging the desired ones.
	const dropActors = `MATCH (a:Actor)-[rel:PLAYED_IN]->(m:Movie {id: $id})
WHERE NOT a.id IN $actorIds
DELETE rel`
	if _, err := run.Run(ctx, dropActors, map[string]any{"id": m.ID, "actorIds": anyStrings(actorIDs)}); err != nil {
		return err
	}
	if err := r.mergeActors(ctx, run, m.ID, actorIDs); err != nil {
		return err
	}
	const dropGenres = `MATCH (m:Movie {id: $id})-[rel:IS]->(g:Genre)
WHERE NOT toLower(g.name) IN $genreNames
DELETE rel`
	if _, err := run.Run(ctx, dropGenres, map[string]any{"id": m.ID, "genreNames": lowered(genreNames)}); err != nil {
		return err
	}
	return r.mergeGenres(ctx, run, m.ID, genreNames)
}

// UpdatePicture stores the URL and public id handed back by the external
// photo service. Passing nils clears the picture.
func (r *MovieRepo) UpdatePicture(ctx context.Context, run database.Runner, id string, uri, publicID *string) error {
	const q = `MATCH (m:Movie {id: $id})
SET m.pictureUri = $pictureUri, m.picturePublicId = $picturePublicId
RETURN m.id AS id`
	recs, err := run.Run(ctx, q, map[string]any{
		"id": id, "pictureUri": nullable(uri), "picturePublicId": nullable(publicID),
	})
	if err != nil {
		return err
	}
	_, err = single(recs)
	return err
}

func (r *MovieRepo) mergeActors(ctx context.Context, run database.Runner, movieID string, actorIDs []string) error {
	if len(actorIDs) == 0 {
		return nil
	}
	const q = `MATCH (m:Movie {id: $id})
UNWIND $actorIds AS actorId
MATCH (a:Actor {id: actorId})
MERGE (a)-[:PLAYED_IN]->(m)`
	_, err := run.Run(ctx, q, map[string]any{"id": movieID, "actorIds": anyStrings(actorIDs)})
	return err
}

func (r *MovieRepo) mergeGenres(ctx context.Context, run database.Runner, movieID string, genreNames []string) error {
	if len(genreNames) == 0 {
		return nil
	}
	const q = `MATCH (m:Movie {id: $id})
UNWIND $genreNames AS name
MATCH (g:Genre) WHERE toLower(g.name) = name
MERGE (m)-[:IS]->(g)`
	_, err := run.Run(ctx, q, map[string]any{"id": movieID, "genreNames": lowered(genreNames)})
	return err
}

// Delete removes the movie and every incident relationship. Reviews,
// watchlist/favourite/ignore edges, comments and the notifications fanned
// out for those comments all start or end at the movie node, so the
// detach covers the whole cascade.
func (r *MovieRepo) Delete(ctx context.Context, run database.Runner, id string) error {
	const q = `MATCH (m:Movie {id: $id})
WITH m, m.id AS deletedId
DETACH DELETE m
RETURN deletedId`
	recs, err := run.Run(ctx, q, map[string]any{"id": id})
	if err != nil {
		return err
	}
	_, err = single(recs)
	return err
}

// detailColumns are the movie property columns of the detail query.
const detailColumns = `m.id AS id, m.title AS title, m.description AS description,
       m.releaseDate AS releaseDate, m.minimumAge AS minimumAge,
       m.inTheaters AS inTheaters, m.pictureUri AS pictureUri,
       m.trailerUri AS trailerUri, m.popularity AS popularity,
       reviewsCount, averageReviewScore, genres, actors, comments`

// GetDetail fetches one movie with its full actor, comment and genre
// collections plus the aggregates and, when viewerID is non-empty, the
// viewer overlay. The popularity counter is incremented in the same MATCH
// that fetches the movie, which is why callers must run this inside a
// write transaction: an aborted fetch never leaves a stray increment.
func (r *MovieRepo) GetDetail(ctx context.Context, run database.Runner, id, viewerID string) (*model.MovieDetail, error) {
	q := `MATCH (m:Movie {id: $id})
SET m.popularity = coalesce(m.popularity, 0) + 1
WITH m
` + aggregateStage + `
OPTIONAL MATCH (m)<-[:PLAYED_IN]-(a:Actor)
WITH m, reviewsCount, averageReviewScore, genres,
     collect(DISTINCT a {.id, .firstName, .lastName, .dateOfBirth, .biography, .pictureUri}) AS actors
OPTIONAL MATCH (m)<-[c:COMMENTED]-(cu:User)
WITH m, reviewsCount, averageReviewScore, genres, actors,
     collect(DISTINCT CASE WHEN c IS NULL THEN null
             ELSE {id: c.id, userId: cu.id, username: cu.name, text: c.text,
                   createdAt: c.createdAt, isEdited: c.isEdited} END) AS comments
`
	params := map[string]any{"id": id}
	if viewerID != "" {
		params["viewerId"] = viewerID
		q += `OPTIONAL MATCH (m)<-[ur:REVIEWED]-(:User {id: $viewerId})
RETURN ` + detailColumns + `,
       ur.id AS userReviewId, ur.score AS userReviewScore,
       EXISTS { MATCH (:User {id: $viewerId})-[:WATCHLIST]->(m) } AS onWatchlist,
       EXISTS { MATCH (:User {id: $viewerId})-[:FAVOURITE]->(m) } AS isFavourite`
	} else {
		q += "RETURN " + detailColumns
	}

	recs, err := run.Run(ctx, q, params)
	if err != nil {
		return nil, err
	}
	rec, err := single(recs)
	if err != nil {
		return nil, err
	}
	return detailFromRecord(rec, id), nil
}

func detailFromRecord(rec *neo4j.Record, movieID string) *model.MovieDetail {
	d := &model.MovieDetail{
		MovieSummary: summaryFromRecord(rec),
		Description:  recString(rec, "description"),
		InTheaters:   recBool(rec, "inTheaters"),
		TrailerURI:   recStringPtr(rec, "trailerUri"),
		ReleaseDate:  recString(rec, "releaseDate"),
		Popularity:   recInt(rec, "popularity"),
		Actors:       []model.Actor{},
		Comments:     []model.Comment{},
	}
	for _, a := range recMaps(rec, "actors") {
		d.Actors = append(d.Actors, model.Actor{
			ID:          mapString(a, "id"),
			FirstName:   mapString(a, "firstName"),
			LastName:    mapString(a, "lastName"),
			DateOfBirth: mapString(a, "dateOfBirth"),
			Biography:   mapString(a, "biography"),
			PictureURI:  mapStringPtr(a, "pictureUri"),
		})
	}
	for _, c := range recMaps(rec, "comments") {
		d.Comments = append(d.Comments, model.Comment{
			ID:        mapString(c, "id"),
			MovieID:   movieID,
			UserID:    mapString(c, "userId"),
			Username:  mapString(c, "username"),
			Text:      mapString(c, "text"),
			CreatedAt: mapString(c, "createdAt"),
			IsEdited:  mapBool(c, "isEdited"),
		})
	}
	return d
}

// MostPopular returns the movie with the highest popularity counter, ties
// broken by id. ErrNotFound when the catalog is empty.
func (r *MovieRepo) MostPopular(ctx context.Context, run database.Runner) (*model.Movie, error) {
	const q = `MATCH (m:Movie)
RETURN m.id AS id, m.title AS title, m.description AS description,
       m.releaseDate AS releaseDate, m.minimumAge AS minimumAge,
       m.inTheaters AS inTheaters, m.pictureUri AS pictureUri,
       m.trailerUri AS trailerUri, coalesce(m.popularity, 0) AS popularity
ORDER BY popularity DESC, m.id ASC
LIMIT 1`
	recs, err := run.Run(ctx, q, nil)
	if err != nil {
		return nil, err
	}
	rec, err := single(recs)
	if err != nil {
		return nil, err
	}
	return &model.Movie{
		ID:          recString(rec, "id"),
		Title:       recString(rec, "title"),
		Description: recString(rec, "description"),
		ReleaseDate: recString(rec, "releaseDate"),
		MinimumAge:  int(recInt(rec, "minimumAge")),
		InTheaters:  recBool(rec, "inTheaters"),
		PictureURI:  recStringPtr(rec, "pictureUri"),
		TrailerURI:  recStringPtr(rec, "trailerUri"),
		Popularity:  recInt(rec, "popularity"),
	}, nil
}
