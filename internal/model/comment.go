package model

// Comment represents a COMMENTED relationship from a User to a Movie.
// Username is the commenter's display name joined in at read time so
// clients never need a second lookup. CreatedAt is an RFC 3339 UTC
// timestamp. IsEdited flips to true on the first edit and stays true.
type Comment struct {
	ID        string `json:"id"`
	MovieID   string `json:"movieId"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
	IsEdited  bool   `json:"isEdited"`
}

// Notification is the read shape of a NOTIFICATION relationship from a
// Movie to a User. The commenter name, comment text and movie title are
// not stored on the relationship; they are derived by joining against the
// comment referenced by relatedEntityId. Deleting a comment therefore
// cascades to its notifications so no orphaned join can surface here.
type Notification struct {
	ID              string `json:"id"`
	IsRead          bool   `json:"isRead"`
	CreatedAt       string `json:"createdAt"`
	CommentUsername string `json:"commentUsername"`
	CommentText     string `json:"commentText"`
	MovieID         string `json:"movieId"`
	MovieTitle      string `json:"movieTitle"`
}
