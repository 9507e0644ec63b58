package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

func TestPostFansOutToFavouritesExceptAuthor(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("title", "Stalker")},
		{rec("username", "wiki")},
		// The author shows up in the favourites result to prove the
		// guard drops them even if the store-side filter did not.
		{rec("id", "author"), rec("id", "fan1"), rec("id", "fan2")},
		{},
	}}
	out, err := NewCommentRepo().Post(context.Background(), run, "author", "m1", "great movie")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if out.MovieTitle != "Stalker" {
		t.Fatalf("MovieTitle = %q", out.MovieTitle)
	}
	if out.Comment.Username != "wiki" || out.Comment.Text != "great movie" || out.Comment.IsEdited {
		t.Fatalf("comment = %+v", out.Comment)
	}
	if len(out.Recipients) != 2 || out.Recipients[0] != "fan1" || out.Recipients[1] != "fan2" {
		t.Fatalf("recipients = %v", out.Recipients)
	}

	if len(run.calls) != 4 {
		t.Fatalf("expected 4 statements, got %d", len(run.calls))
	}
	notify := run.calls[3]
	if !strings.Contains(notify.cypher, "UNWIND $notifications") ||
		!strings.Contains(notify.cypher, "isRead: false") {
		t.Fatalf("notify statement:\n%s", notify.cypher)
	}
	if notify.params["commentId"] != out.Comment.ID {
		t.Fatalf("notifications must reference the comment, got %v", notify.params["commentId"])
	}
	batch := notify.params["notifications"].([]any)
	if len(batch) != 2 {
		t.Fatalf("notification batch size = %d, want 2", len(batch))
	}
	for _, n := range batch {
		if n.(map[string]any)["userId"] == "author" {
			t.Fatalf("author must never receive a notification")
		}
	}
}

func TestPostWithoutFavouritesSkipsFanout(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("title", "Stalker")},
		{rec("username", "wiki")},
		{},
	}}
	out, err := NewCommentRepo().Post(context.Background(), run, "u1", "m1", "hi")
	if err != nil {
		t.Fatalf("Post: %v", err)
	}
	if out.Recipients == nil || len(out.Recipients) != 0 {
		t.Fatalf("recipients should be empty, got %#v", out.Recipients)
	}
	if len(run.calls) != 3 {
		t.Fatalf("no notification statement should run, got %d calls", len(run.calls))
	}
}

func TestPostUnknownMovie(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	_, err := NewCommentRepo().Post(context.Background(), run, "u1", "nope", "hi")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if len(run.calls) != 1 {
		t.Fatalf("nothing should be created, got %d calls", len(run.calls))
	}
}

func TestEditOwnerOnly(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("id", "c1", "movieId", "m1", "userId", "u1", "username", "wiki",
			"text", "new", "createdAt", "2026-01-01T00:00:00Z", "isEdited", true)},
	}}
	cm, err := NewCommentRepo().Edit(context.Background(), run, "u1", model.RoleUser, "c1", "new")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if !cm.IsEdited || cm.Text != "new" {
		t.Fatalf("comment = %+v", cm)
	}
	call := run.calls[0]
	if !strings.Contains(call.cypher, "{id: $userId}") {
		t.Fatalf("non-admin edit must anchor on the caller:\n%s", call.cypher)
	}
	if call.params["userId"] != "u1" {
		t.Fatalf("params = %v", call.params)
	}
}

func TestEditAsAdminMatchesAnyOwner(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("id", "c1", "movieId", "m1", "userId", "other", "username", "x",
			"text", "new", "createdAt", "2026-01-01T00:00:00Z", "isEdited", true)},
	}}
	if _, err := NewCommentRepo().Edit(context.Background(), run, "admin", model.RoleAdmin, "c1", "new"); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	call := run.calls[0]
	if strings.Contains(call.cypher, "$userId") {
		t.Fatalf("admin edit must not anchor on the caller:\n%s", call.cypher)
	}
	if _, ok := call.params["userId"]; ok {
		t.Fatalf("params = %v", call.params)
	}
}

func TestEditForeignCommentIsNotFound(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	_, err := NewCommentRepo().Edit(context.Background(), run, "intruder", model.RoleUser, "c1", "new")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCascadesNotificationsFirst(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{
		{rec("id", "c1")},
		{},
		{},
	}}
	if err := NewCommentRepo().Delete(context.Background(), run, "u1", model.RoleUser, "c1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(run.calls) != 3 {
		t.Fatalf("expected ownership check + 2 deletes, got %d", len(run.calls))
	}
	if !strings.Contains(run.calls[1].cypher, "NOTIFICATION") ||
		!strings.Contains(run.calls[1].cypher, "relatedEntityId = $id") {
		t.Fatalf("second statement must delete the notifications:\n%s", run.calls[1].cypher)
	}
	if !strings.Contains(run.calls[2].cypher, "COMMENTED") {
		t.Fatalf("third statement must delete the comment:\n%s", run.calls[2].cypher)
	}
}

func TestDeleteForeignCommentIsNotFound(t *testing.T) {
	run := &fakeRunner{responses: [][]*neo4j.Record{{}}}
	err := NewCommentRepo().Delete(context.Background(), run, "intruder", model.RoleUser, "c1")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	if len(run.calls) != 1 {
		t.Fatalf("nothing should be deleted, got %d calls", len(run.calls))
	}
}
