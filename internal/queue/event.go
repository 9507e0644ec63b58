package queue

// CommentPostedEvent is published once per notification recipient after a
// comment-post transaction commits. The transport layer re-derives one
// payload per recipient rather than assuming a single representative
// payload covers the whole fan-out.
type CommentPostedEvent struct {
	RecipientID     string `json:"recipient_id"`
	CommentID       string `json:"comment_id"`
	CommentUsername string `json:"comment_username"`
	CommentText     string `json:"comment_text"`
	MovieID         string `json:"movie_id"`
	MovieTitle      string `json:"movie_title"`
	PostedAt        string `json:"posted_at"`
}
