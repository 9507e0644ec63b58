package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestRelationAdd(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{},
		{rec("id", "m1")},
	}}
	if err := NewRelationRepo().Add(context.Background(), run, "u1", "m1", RelationWatchlist); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(run.calls) != 2 {
		t.Fatalf("expected existence check + create, got %d calls", len(run.calls))
	}
	if !strings.Contains(run.calls[1].cypher, "CREATE (u)-[:WATCHLIST]->(m)") {
		t.Fatalf("create statement:\n%s", run.calls[1].cypher)
	}
}

func TestRelationAddDuplicate(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("rel", nil)},
	}}
	err := NewRelationRepo().Add(context.Background(), run, "u1", "m1", RelationFavourite)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if len(run.calls) != 1 {
		t.Fatalf("duplicate must not create a second edge, got %d calls", len(run.calls))
	}
}

func TestRelationAddUnknownMovie(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{},
		{},
	}}
	err := NewRelationRepo().Add(context.Background(), run, "u1", "ghost", RelationIgnores)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRelationAddUnknownKind(t *testing.T) {
	run := &fakeRunner{}
	if err := NewRelationRepo().Add(context.Background(), run, "u1", "m1", "liked"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if len(run.calls) != 0 {
		t.Fatalf("unknown kind must never reach the store")
	}
}

func TestRelationRemove(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("found", int64(1))},
	}}
	if err := NewRelationRepo().Remove(context.Background(), run, "u1", "m1", RelationIgnores); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !strings.Contains(run.calls[0].cypher, "[rel:IGNORES]") {
		t.Fatalf("remove statement:\n%s", run.calls[0].cypher)
	}
}

func TestRelationRemoveMissingEdge(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	err := NewRelationRepo().Remove(context.Background(), run, "u1", "m1", RelationWatchlist)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
