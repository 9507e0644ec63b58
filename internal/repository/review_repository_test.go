package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

func TestReviewAdd(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{},
		{rec("movieId", "m1")},
	}}
	rev, err := NewReviewRepo().Add(context.Background(), run, "u1", "m1", 4)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if rev.ID == "" || rev.Score != 4 {
		t.Fatalf("review = %+v", rev)
	}
	if run.calls[1].params["score"] != 4 {
		t.Fatalf("score param = %v", run.calls[1].params["score"])
	}
}

func TestReviewAddTwice(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("rev", nil)},
	}}
	_, err := NewReviewRepo().Add(context.Background(), run, "u1", "m1", 4)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if len(run.calls) != 1 {
		t.Fatalf("a second review must not be created, got %d calls", len(run.calls))
	}
}

func TestReviewUpdateAnchorsOnOwner(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("id", "r1")},
	}}
	if err := NewReviewRepo().Update(context.Background(), run, "u1", "r1", 2); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !strings.Contains(run.calls[0].cypher, "{id: $userId}") {
		t.Fatalf("update must anchor on the caller:\n%s", run.calls[0].cypher)
	}
}

func TestReviewUpdateForeignReviewIsNotFound(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	err := NewReviewRepo().Update(context.Background(), run, "intruder", "r1", 2)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReviewDeleteAsAdmin(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("found", int64(1))},
	}}
	if err := NewReviewRepo().Delete(context.Background(), run, "admin", model.RoleAdmin, "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if strings.Contains(run.calls[0].cypher, "$userId") {
		t.Fatalf("admin delete must not anchor on the caller:\n%s", run.calls[0].cypher)
	}
}
