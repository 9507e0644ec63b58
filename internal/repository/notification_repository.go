package repository

import (
	"context"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

// NotificationRepo reads and mutates NOTIFICATION relationships. The
// relationship stores only (id, isRead, relatedEntityId, createdAt); the
// commenter name, comment text and movie title are joined in at read time
// from the comment the notification references. Comment deletion cascades
// to its notifications, so the join below cannot be orphaned.
type NotificationRepo struct{}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo() *NotificationRepo {
	return &NotificationRepo{}
}

// ListForUser returns the user's notifications, newest first.
func (r *NotificationRepo) ListForUser(ctx context.Context, run database.Runner, userID string) ([]model.Notification, error) {
	const q = `MATCH (m:Movie)-[n:NOTIFICATION]->(:User {id: $userId})
MATCH (cu:User)-[c:COMMENTED]->(m)
WHERE c.id = n.relatedEntityId
RETURN n.id AS id, n.isRead AS isRead, n.createdAt AS createdAt,
       cu.name AS commentUsername, c.text AS commentText,
       m.id AS movieId, m.title AS movieTitle
ORDER BY n.createdAt DESC, n.id ASC`
	recs, err := run.Run(ctx, q, map[string]any{"userId": userID})
	if err != nil {
		return nil, err
	}
	out := make([]model.Notification, 0, len(recs))
	for _, rec := range recs {
		out = append(out, model.Notification{
			ID:              recString(rec, "id"),
			IsRead:          recBool(rec, "isRead"),
			CreatedAt:       recString(rec, "createdAt"),
			CommentUsername: recString(rec, "commentUsername"),
			CommentText:     recString(rec, "commentText"),
			MovieID:         recString(rec, "movieId"),
			MovieTitle:      recString(rec, "movieTitle"),
		})
	}
	return out, nil
}

// MarkRead flags one of the user's notifications as read. ErrNotFound
// when the notification does not exist or belongs to someone else.
func (r *NotificationRepo) MarkRead(ctx context.Context, run database.Runner, userID, id string) error {
	const q = `MATCH (:Movie)-[n:NOTIFICATION {id: $id}]->(:User {id: $userId})
SET n.isRead = true
RETURN n.id AS id`
	recs, err := run.Run(ctx, q, map[string]any{"userId": userID, "id": id})
	if err != nil {
		return err
	}
	_, err = single(recs)
	return err
}

// MarkAllRead flags every notification of the user as read.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, run database.Runner, userID string) error {
	const q = `MATCH (:Movie)-[n:NOTIFICATION]->(:User {id: $userId})
SET n.isRead = true`
	_, err := run.Run(ctx, q, map[string]any{"userId": userID})
	return err
}

// Delete removes one of the user's notifications.
func (r *NotificationRepo) Delete(ctx context.Context, run database.Runner, userID, id string) error {
	const q = `MATCH (:Movie)-[n:NOTIFICATION {id: $id}]->(:User {id: $userId})
WITH n, 1 AS found
DELETE n
RETURN found`
	recs, err := run.Run(ctx, q, map[string]any{"userId": userID, "id": id})
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAll removes every notification of the user.
func (r *NotificationRepo) DeleteAll(ctx context.Context, run database.Runner, userID string) error {
	const q = `MATCH (:Movie)-[n:NOTIFICATION]->(:User {id: $userId})
DELETE n`
	_, err := run.Run(ctx, q, map[string]any{"userId": userID})
	return err
}
