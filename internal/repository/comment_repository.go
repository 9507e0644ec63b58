package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

// CommentRepo manages COMMENTED relationships and the notification
// fan-out they trigger. Every method issues all of its statements through
// the caller's runner, so a comment and its notifications are created or
// removed atomically with the surrounding transaction.
type CommentRepo struct{}

// NewCommentRepo constructs a CommentRepo.
func NewCommentRepo() *CommentRepo {
	return &CommentRepo{}
}

// CommentFanout is the result of posting a comment: the created comment,
// the movie title for transport payloads, and the ids of the users a
// notification was created for. Recipients is empty, not nil, when nobody
// but the commenter favourited the movie.
type CommentFanout struct {
	Comment    model.Comment
	MovieTitle string
	Recipients []string
}

// Post creates a comment on the movie and fans out one NOTIFICATION edge
// per user who favourited the movie, excluding the author. The
// notifications carry relatedEntityId = the comment id and isRead=false;
// their rendered content is derived by join at read time. Commenting on a
// nonexistent movie is ErrConflict.
func (r *CommentRepo) Post(ctx context.Context, run database.Runner, userID, movieID, text string) (*CommentFanout, error) {
	const movieQ = `MATCH (m:Movie {id: $movieId}) RETURN m.title AS title`
	recs, err := run.Run(ctx, movieQ, map[string]any{"movieId": movieID})
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: movie does not exist", ErrConflict)
	}
	rec, err := single(recs)
	if err != nil {
		return nil, err
	}
	title := recString(rec, "title")

	commentID := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339)
	const createQ = `MATCH (u:User {id: $userId}), (m:Movie {id: $movieId})
CREATE (u)-[:COMMENTED {id: $id, text: $text, createdAt: $createdAt, isEdited: false}]->(m)
RETURN u.name AS username`
	recs, err = run.Run(ctx, createQ, map[string]any{
		"userId": userID, "movieId": movieID,
		"id": commentID, "text": text, "createdAt": createdAt,
	})
	if err != nil {
		return nil, err
	}
	rec, err = single(recs)
	if err != nil {
		return nil, err
	}

	out := &CommentFanout{
		Comment: model.Comment{
			ID:        commentID,
			MovieID:   movieID,
			UserID:    userID,
			Username:  recString(rec, "username"),
			Text:      text,
			CreatedAt: createdAt,
			IsEdited:  false,
		},
		MovieTitle: title,
		Recipients: []string{},
	}

	const favQ = `MATCH (f:User)-[:FAVOURITE]->(:Movie {id: $movieId})
WHERE f.id <> $userId
RETURN DISTINCT f.id AS id`
	recs, err = run.Run(ctx, favQ, map[string]any{"movieId": movieID, "userId": userID})
	if err != nil {
		return nil, err
	}
	notifications := make([]any, 0, len(recs))
	for _, fr := range recs {
		rid := recString(fr, "id")
		if rid == "" || rid == userID {
			continue
		}
		out.Recipients = append(out.Recipients, rid)
		notifications = append(notifications, map[string]any{"id": uuid.NewString(), "userId": rid})
	}
	if len(notifications) == 0 {
		return out, nil
	}

	const notifyQ = `MATCH (m:Movie {id: $movieId})
UNWIND $notifications AS n
MATCH (u:User {id: n.userId})
CREATE (m)-[:NOTIFICATION {id: n.id, relatedEntityId: $commentId, isRead: false, createdAt: $createdAt}]->(u)`
	_, err = run.Run(ctx, notifyQ, map[string]any{
		"movieId": movieID, "notifications": notifications,
		"commentId": commentID, "createdAt": createdAt,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Edit updates a comment's text and marks it edited. Admins may edit any
// comment; other callers only their own. A comment the caller may not
// touch reports ErrNotFound, same as one that does not exist.
func (r *CommentRepo) Edit(ctx context.Context, run database.Runner, userID, role, commentID, text string) (*model.Comment, error) {
	q := `MATCH (u:User {id: $userId})-[c:COMMENTED {id: $id}]->(m:Movie)
SET c.text = $text, c.isEdited = true
RETURN c.id AS id, m.id AS movieId, u.id AS userId, u.name AS username,
       c.text AS text, c.createdAt AS createdAt, c.isEdited AS isEdited`
	params := map[string]any{"userId": userID, "id": commentID, "text": text}
	if role == model.RoleAdmin {
		q = `MATCH (u:User)-[c:COMMENTED {id: $id}]->(m:Movie)
SET c.text = $text, c.isEdited = true
RETURN c.id AS id, m.id AS movieId, u.id AS userId, u.name AS username,
       c.text AS text, c.createdAt AS createdAt, c.isEdited AS isEdited`
		params = map[string]any{"id": commentID, "text": text}
	}
	recs, err := run.Run(ctx, q, params)
	if err != nil {
		return nil, err
	}
	rec, err := single(recs)
	if err != nil {
		return nil, err
	}
	return &model.Comment{
		ID:        recString(rec, "id"),
		MovieID:   recString(rec, "movieId"),
		UserID:    recString(rec, "userId"),
		Username:  recString(rec, "username"),
		Text:      recString(rec, "text"),
		CreatedAt: recString(rec, "createdAt"),
		IsEdited:  recBool(rec, "isEdited"),
	}, nil
}

// Delete removes a comment and, in the same transaction, every
// notification whose relatedEntityId matches the comment's id, whoever
// owns it. Without the cascade those notifications would join against a
// comment that no longer exists and become unreadable.
func (r *CommentRepo) Delete(ctx context.Context, run database.Runner, userID, role, commentID string) error {
	ownQ := `MATCH (u:User {id: $userId})-[c:COMMENTED {id: $id}]->(:Movie) RETURN c.id AS id`
	params := map[string]any{"userId": userID, "id": commentID}
	if role == model.RoleAdmin {
		ownQ = `MATCH (:User)-[c:COMMENTED {id: $id}]->(:Movie) RETURN c.id AS id`
		params = map[string]any{"id": commentID}
	}
	recs, err := run.Run(ctx, ownQ, params)
	if err != nil {
		return err
	}
	if _, err := single(recs); err != nil {
		return err
	}

	const notifQ = `MATCH ()-[n:NOTIFICATION]->()
WHERE n.relatedEntityId = $id
DELETE n`
	if _, err := run.Run(ctx, notifQ, map[string]any{"id": commentID}); err != nil {
		return err
	}
	const commentQ = `MATCH ()-[c:COMMENTED {id: $id}]->()
DELETE c`
	_, err = run.Run(ctx, commentQ, map[string]any{"id": commentID})
	return err
}
