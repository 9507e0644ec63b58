package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

// sortKeys whitelists the sortable fields and maps them to Cypher sort
// expressions. averageReviewScore refers to the aggregate computed by the
// listing query itself, so the order is applied to the full candidate set
// before SKIP/LIMIT, never to an already-sliced page.
var sortKeys = map[string]string{
	model.SortByTitle:              "m.title",
	model.SortByReleaseDate:        "m.releaseDate",
	model.SortByMinimumAge:         "m.minimumAge",
	model.SortByAverageReviewScore: "averageReviewScore",
}

// buildMovieFilter composes the WHERE clauses of a movie listing. All
// clauses are conjunctive and absent optional filters contribute no
// clause: an empty title substring matches everything, an unknown actor
// id simply matches no movie. When excludeIgnored is set and a viewer is
// known, movies on the viewer's ignore list are subtracted from the
// candidate set; the same condition is reused verbatim by the total-count
// query so both agree.
func buildMovieFilter(q model.MovieQuery, viewerID string, excludeIgnored bool) (string, map[string]any) {
	params := map[string]any{"title": q.Title}
	var clauses []string

	if viewerID != "" {
		params["viewerId"] = viewerID
		if excludeIgnored {
			clauses = append(clauses, "NOT EXISTS { MATCH (:User {id: $viewerId})-[:IGNORES]->(m) }")
		}
	}
	clauses = append(clauses, "toLower(m.title) CONTAINS toLower($title)")
	if q.ActorID != "" {
		clauses = append(clauses, "EXISTS { MATCH (:Actor {id: $actorId})-[:PLAYED_IN]->(m) }")
		params["actorId"] = q.ActorID
	}
	if q.GenreName != "" {
		clauses = append(clauses, "EXISTS { MATCH (m)-[:IS]->(g:Genre) WHERE toLower(g.name) = toLower($genreName) }")
		params["genreName"] = q.GenreName
	}
	if q.InTheaters != nil {
		clauses = append(clauses, "m.inTheaters = $inTheaters")
		params["inTheaters"] = *q.InTheaters
	}
	return strings.Join(clauses, "\n  AND "), params
}

// orderClause renders the ORDER BY for a normalized query. Ties on the
// sort key fall back to m.id ascending so pagination windows are stable
// across requests regardless of store iteration order.
func orderClause(q model.MovieQuery) string {
	dir := "ASC"
	if q.SortOrder == model.SortDescending {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, m.id ASC", sortKeys[q.SortBy], dir)
}

// aggregateStage computes the movie-global aggregates for every candidate
// row: review count, average score (0.0 when unreviewed, never null) and
// the deduplicated genre name list (empty when untagged).
const aggregateStage = `OPTIONAL MATCH (m)<-[r:REVIEWED]-(:User)
WITH m, count(r) AS reviewsCount, coalesce(avg(r.score), 0.0) AS averageReviewScore
OPTIONAL MATCH (m)-[:IS]->(g:Genre)
WITH m, reviewsCount, averageReviewScore, collect(DISTINCT g.name) AS genres`

// summaryColumns are the movie-global output columns shared by the
// anonymous and personalized listings.
const summaryColumns = `m.id AS id, m.title AS title, m.pictureUri AS pictureUri,
       m.minimumAge AS minimumAge, reviewsCount, averageReviewScore, genres`

// overlayStage joins in the viewer's own review edge and relationship
// flags. The review pattern is anchored on $viewerId so the overlay can
// only ever surface the viewer's edge, no matter how many other users
// reviewed the movie.
const overlayStage = `OPTIONAL MATCH (m)<-[ur:REVIEWED]-(:User {id: $viewerId})
RETURN ` + summaryColumns + `,
       ur.id AS userReviewId, ur.score AS userReviewScore,
       EXISTS { MATCH (:User {id: $viewerId})-[:WATCHLIST]->(m) } AS onWatchlist,
       EXISTS { MATCH (:User {id: $viewerId})-[:FAVOURITE]->(m) } AS isFavourite`

// List returns one page of the anonymous movie listing. No ignore-list
// exclusion is applied and the per-viewer overlay fields keep their
// defaults; they are not computed at all.
func (r *MovieRepo) List(ctx context.Context, run database.Runner, q model.MovieQuery) (*model.PagedMovies, error) {
	return r.list(ctx, run, q, "MATCH (m:Movie)", "", false)
}

// ListForUser returns one page of the personalized listing for viewerID:
// the viewer's ignored movies are excluded before filtering and the
// overlay fields are computed against the viewer's own relationships.
func (r *MovieRepo) ListForUser(ctx context.Context, run database.Runner, viewerID string, q model.MovieQuery) (*model.PagedMovies, error) {
	if viewerID == "" {
		return r.list(ctx, run, q, "MATCH (m:Movie)", "", false)
	}
	return r.list(ctx, run, q, "MATCH (m:Movie)", viewerID, true)
}

// ListByRelation returns one page of the movies the viewer put on their
// watchlist, favourites or ignore list. The candidate set is constrained
// by the relationship itself, so no ignore-list exclusion applies, but
// filtering, aggregation, overlays and pagination are the exact same
// pipeline as the main listing.
func (r *MovieRepo) ListByRelation(ctx context.Context, run database.Runner, viewerID, kind string, q model.MovieQuery) (*model.PagedMovies, error) {
	rel, ok := relationTypes[kind]
	if !ok {
		return nil, fmt.Errorf("unknown relation kind %q", kind)
	}
	head := fmt.Sprintf("MATCH (:User {id: $viewerId})-[:%s]->(m:Movie)", rel)
	return r.list(ctx, run, q, head, viewerID, false)
}

// list is the shared listing pipeline: candidate MATCH head, composed
// predicate, total count, aggregation, optional viewer overlay, sort and
// page slice. The count statement runs through the same runner, hence the
// same transaction, as the page statement.
func (r *MovieRepo) list(ctx context.Context, run database.Runner, q model.MovieQuery, head, viewerID string, excludeIgnored bool) (*model.PagedMovies, error) {
	q.Normalize()
	cond, params := buildMovieFilter(q, viewerID, excludeIgnored)

	countRecs, err := run.Run(ctx, head+"\nWHERE "+cond+"\nRETURN count(m) AS total", params)
	if err != nil {
		return nil, err
	}
	if len(countRecs) != 1 {
		return nil, fmt.Errorf("%w: count query returned %d records", ErrUnexpectedState, len(countRecs))
	}
	total := recInt(countRecs[0], "total")

	var b strings.Builder
	b.WriteString(head)
	b.WriteString("\nWHERE ")
	b.WriteString(cond)
	b.WriteString("\n")
	b.WriteString(aggregateStage)
	b.WriteString("\n")
	if viewerID != "" {
		b.WriteString(overlayStage)
	} else {
		b.WriteString("RETURN " + summaryColumns)
	}
	b.WriteString("\n")
	b.WriteString(orderClause(q))
	b.WriteString("\nSKIP $skip LIMIT $limit")

	pageParams := make(map[string]any, len(params)+2)
	for k, v := range params {
		pageParams[k] = v
	}
	pageParams["skip"] = q.Offset()
	pageParams["limit"] = q.PageSize

	recs, err := run.Run(ctx, b.String(), pageParams)
	if err != nil {
		return nil, err
	}
	items := make([]model.MovieSummary, 0, len(recs))
	for _, rec := range recs {
		items = append(items, summaryFromRecord(rec))
	}
	return &model.PagedMovies{
		Items: items,
		Meta:  model.NewPageMeta(q.PageNumber, q.PageSize, total),
	}, nil
}

// summaryFromRecord maps one listing row. Missing overlay columns (the
// anonymous listing does not return them) fall back to false/nil and a
// movie without reviews maps to count 0 and average 0.
func summaryFromRecord(rec *neo4j.Record) model.MovieSummary {
	s := model.MovieSummary{
		ID:                 recString(rec, "id"),
		Title:              recString(rec, "title"),
		PictureURI:         recStringPtr(rec, "pictureUri"),
		MinimumAge:         int(recInt(rec, "minimumAge")),
		OnWatchlist:        recBool(rec, "onWatchlist"),
		IsFavourite:        recBool(rec, "isFavourite"),
		ReviewsCount:       recInt(rec, "reviewsCount"),
		AverageReviewScore: recFloat(rec, "averageReviewScore"),
		Genres:             recStrings(rec, "genres"),
	}
	if id := recStringPtr(rec, "userReviewId"); id != nil {
		s.UserReview = &model.UserReview{ID: *id, Score: int(recInt(rec, "userReviewScore"))}
	}
	return s
}
