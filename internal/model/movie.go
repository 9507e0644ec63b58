package model

// Movie represents a Movie node in the graph. Optional media fields are
// pointers so that absent properties survive a round trip as null rather
// than empty strings. ReleaseDate is stored as "2006-01-02" (UTC date only).
//
// Popularity is a monotonically incrementing counter bumped every time the
// movie detail is fetched; it is never decremented.
type Movie struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	ReleaseDate     string  `json:"releaseDate"`
	MinimumAge      int     `json:"minimumAge"`
	InTheaters      bool    `json:"inTheaters"`
	PictureURI      *string `json:"pictureUri"`
	PicturePublicID *string `json:"-"`
	TrailerURI      *string `json:"trailerUri"`
	Popularity      int64   `json:"popularity"`
}

// UserReview is the requesting viewer's own review of a movie, shown as an
// overlay on listings and details. It never carries another user's review.
type UserReview struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// MovieSummary is one row of a movie listing: movie-global aggregates
// (review count/average, genre names) plus the per-viewer overlay fields.
// For anonymous listings the overlay fields keep their zero values.
type MovieSummary struct {
	ID                 string      `json:"id"`
	Title              string      `json:"title"`
	PictureURI         *string     `json:"pictureUri"`
	MinimumAge         int         `json:"minimumAge"`
	OnWatchlist        bool        `json:"onWatchlist"`
	IsFavourite        bool        `json:"isFavourite"`
	UserReview         *UserReview `json:"userReview"`
	ReviewsCount       int64       `json:"reviewsCount"`
	AverageReviewScore float64     `json:"averageReviewScore"`
	Genres             []string    `json:"genres"`
}

// MovieDetail extends a summary with the full nested collections shown on
// a single movie page.
type MovieDetail struct {
	MovieSummary
	Description string    `json:"description"`
	InTheaters  bool      `json:"inTheaters"`
	TrailerURI  *string   `json:"trailerUri"`
	ReleaseDate string    `json:"releaseDate"`
	Popularity  int64     `json:"popularity"`
	Actors      []Actor   `json:"actors"`
	Comments    []Comment `json:"comments"`
}
