package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

func TestNotificationListJoinsCommentContent(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec(
			"id", "n1", "isRead", false, "createdAt", "2026-02-01T10:00:00Z",
			"commentUsername", "wiki", "commentText", "great",
			"movieId", "m1", "movieTitle", "Stalker",
		)},
	}}
	list, err := NewNotificationRepo().ListForUser(context.Background(), run, "u1")
	if err != nil {
		t.Fatalf("ListForUser: %v", err)
	}
	q := run.calls[0].cypher
	if !strings.Contains(q, "c.id = n.relatedEntityId") {
		t.Fatalf("content must be joined from the referenced comment:\n%s", q)
	}
	if !strings.Contains(q, "ORDER BY n.createdAt DESC, n.id ASC") {
		t.Fatalf("order clause:\n%s", q)
	}
	if len(list) != 1 {
		t.Fatalf("len = %d", len(list))
	}
	n := list[0]
	if n.CommentUsername != "wiki" || n.CommentText != "great" || n.MovieTitle != "Stalker" || n.IsRead {
		t.Fatalf("notification = %+v", n)
	}
}

func TestNotificationMarkReadForeignIsNotFound(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	err := NewNotificationRepo().MarkRead(context.Background(), run, "intruder", "n1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestNotificationDeleteAllScopedToUser(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	if err := NewNotificationRepo().DeleteAll(context.Background(), run, "u1"); err != nil {
		t.Fatalf("DeleteAll: %v", err)
	}
	if !strings.Contains(run.calls[0].cypher, `(:User {id: $userId})`) {
		t.Fatalf("delete-all must be scoped to the user:\n%s", run.calls[0].cypher)
	}
}
