package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

func TestCreateAssignsIDAndLinks(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{},
		{},
		{},
	}}
	m := &model.Movie{Title: "Solaris"}
	err := NewMovieRepo().Create(context.Background(), run, m, []string{"a1"}, []string{"Drama"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.ID == "" {
		t.Fatalf("generated id not assigned back")
	}
	if !strings.Contains(run.calls[0].cypher, "popularity: 0") {
		t.Fatalf("new movie must start at popularity 0:\n%s", run.calls[0].cypher)
	}
	if !strings.Contains(run.calls[1].cypher, "MERGE (a)-[:PLAYED_IN]->(m)") {
		t.Fatalf("actor link statement:\n%s", run.calls[1].cypher)
	}
	if !strings.Contains(run.calls[2].cypher, "MERGE (m)-[:IS]->(g)") {
		t.Fatalf("genre link statement:\n%s", run.calls[2].cypher)
	}
	if run.calls[2].params["genreNames"].([]any)[0] != "drama" {
		t.Fatalf("genre names must be matched case-insensitively, got %v", run.calls[2].params["genreNames"])
	}
}

func TestCreateWithoutLinksRunsSingleStatement(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	m := &model.Movie{Title: "Solaris"}
	if err := NewMovieRepo().Create(context.Background(), run, m, nil, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(run.calls) != 1 {
		t.Fatalf("empty link sets must not issue link statements, got %d", len(run.calls))
	}
}

func TestUpdateReconcilesEdgeSets(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("id", "m1")},
		{},
		{},
		{},
		{},
	}}
	m := &model.Movie{ID: "m1", Title: "Solaris"}
	err := NewMovieRepo().Update(context.Background(), run, m, []string{"a1", "a2"}, []string{"Drama"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(run.calls) != 5 {
		t.Fatalf("expected props + 2 drops + 2 merges, got %d", len(run.calls))
	}
	dropActors := run.calls[1]
	if !strings.Contains(dropActors.cypher, "WHERE NOT a.id IN $actorIds") ||
		!strings.Contains(dropActors.cypher, "DELETE rel") {
		t.Fatalf("actor drop statement:\n%s", dropActors.cypher)
	}
	if got := dropActors.params["actorIds"].([]any); len(got) != 2 {
		t.Fatalf("actor drop must keep the desired set, got %v", got)
	}
	if !strings.Contains(run.calls[2].cypher, "MERGE (a)-[:PLAYED_IN]->(m)") {
		t.Fatalf("actor merge statement:\n%s", run.calls[2].cypher)
	}
	if !strings.Contains(run.calls[3].cypher, "WHERE NOT toLower(g.name) IN $genreNames") {
		t.Fatalf("genre drop statement:\n%s", run.calls[3].cypher)
	}
	if !strings.Contains(run.calls[4].cypher, "MERGE (m)-[:IS]->(g)") {
		t.Fatalf("genre merge statement:\n%s", run.calls[4].cypher)
	}
}

func TestUpdateUnknownMovie(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	err := NewMovieRepo().Update(context.Background(), run, &model.Movie{ID: "ghost"}, nil, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(run.calls) != 1 {
		t.Fatalf("no edge statements for a missing movie, got %d calls", len(run.calls))
	}
}

func TestDeleteDetaches(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("deletedId", "m1")},
	}}
	if err := NewMovieRepo().Delete(context.Background(), run, "m1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !strings.Contains(run.calls[0].cypher, "DETACH DELETE m") {
		t.Fatalf("delete statement:\n%s", run.calls[0].cypher)
	}
}

func TestDeleteUnknownMovie(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	if err := NewMovieRepo().Delete(context.Background(), run, "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGetDetailBumpsPopularityAndMapsCollections(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec(
			"id", "m1", "title", "Solaris", "description", "d",
			"releaseDate", "1972-03-20", "minimumAge", int64(12),
			"inTheaters", false, "pictureUri", nil, "trailerUri", nil,
			"popularity", int64(7),
			"reviewsCount", int64(1), "averageReviewScore", 5.0,
			"genres", []any{"Drama"},
			"actors", []any{map[string]any{"id": "a1", "firstName": "Donatas", "lastName": "Banionis"}},
			"comments", []any{map[string]any{"id": "c1", "userId": "u2", "username": "x", "text": "hi", "isEdited": false}},
		)},
	}}
	d, err := NewMovieRepo().GetDetail(context.Background(), run, "m1", "")
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if !strings.Contains(run.calls[0].cypher, "SET m.popularity = coalesce(m.popularity, 0) + 1") {
		t.Fatalf("detail fetch must bump popularity:\n%s", run.calls[0].cypher)
	}
	if strings.Contains(run.calls[0].cypher, "$viewerId") {
		t.Fatalf("anonymous detail must not reference a viewer:\n%s", run.calls[0].cypher)
	}
	if d.Popularity != 7 || len(d.Actors) != 1 || len(d.Comments) != 1 {
		t.Fatalf("detail = %+v", d)
	}
	if d.Comments[0].MovieID != "m1" {
		t.Fatalf("comment movie id = %q", d.Comments[0].MovieID)
	}
}

func TestGetDetailViewerOverlay(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec(
			"id", "m1", "title", "Solaris", "description", "d",
			"releaseDate", "1972-03-20", "minimumAge", int64(12),
			"inTheaters", false, "pictureUri", nil, "trailerUri", nil,
			"popularity", int64(1),
			"reviewsCount", int64(1), "averageReviewScore", 5.0,
			"genres", []any{}, "actors", []any{}, "comments", []any{},
			"userReviewId", "r1", "userReviewScore", int64(5),
			"onWatchlist", true, "isFavourite", true,
		)},
	}}
	d, err := NewMovieRepo().GetDetail(context.Background(), run, "m1", "u1")
	if err != nil {
		t.Fatalf("GetDetail: %v", err)
	}
	if run.calls[0].params["viewerId"] != "u1" {
		t.Fatalf("viewerId = %v", run.calls[0].params["viewerId"])
	}
	if !d.OnWatchlist || !d.IsFavourite || d.UserReview == nil {
		t.Fatalf("overlay = %+v", d.MovieSummary)
	}
}

func TestMostPopularOrdersByCounter(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("id", "m1", "title", "T", "popularity", int64(9))},
	}}
	m, err := NewMovieRepo().MostPopular(context.Background(), run)
	if err != nil {
		t.Fatalf("MostPopular: %v", err)
	}
	if !strings.Contains(run.calls[0].cypher, "ORDER BY popularity DESC, m.id ASC") {
		t.Fatalf("order clause:\n%s", run.calls[0].cypher)
	}
	if m.Popularity != 9 {
		t.Fatalf("popularity = %d", m.Popularity)
	}
}

func TestMostPopularEmptyCatalog(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	if _, err := NewMovieRepo().MostPopular(context.Background(), run); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
