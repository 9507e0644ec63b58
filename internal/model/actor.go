package model

// Actor represents an Actor node. Actors relate to movies through the
// PLAYED_IN relationship (many-to-many). DateOfBirth uses the same
// "2006-01-02" format as Movie.ReleaseDate.
type Actor struct {
	ID              string  `json:"id"`
	FirstName       string  `json:"firstName"`
	LastName        string  `json:"lastName"`
	DateOfBirth     string  `json:"dateOfBirth"`
	Biography       string  `json:"biography"`
	PictureURI      *string `json:"pictureUri"`
	PicturePublicID *string `json:"-"`
}

// Genre represents a Genre node. Genres are identified by their unique
// name; the set is seeded at startup and treated as immutable afterwards.
type Genre struct {
	Name string `json:"name"`
}
