package model

import "strings"

// Sort fields accepted by the movie listing. AverageReviewScore sorts on
// the aggregate computed inside the listing query, not a stored property,
// so the ordering is applied before pagination slices the result.
const (
	SortByTitle              = "title"
	SortByReleaseDate        = "releaseDate"
	SortByMinimumAge         = "minimumAge"
	SortByAverageReviewScore = "averageReviewScore"
)

// Sort directions.
const (
	SortAscending  = "ascending"
	SortDescending = "descending"
)

// DefaultPageSize applies when the caller does not supply a page size.
const DefaultPageSize = 10

// MovieQuery carries the filter, sort and pagination parameters of a movie
// listing. Empty Title matches every movie; empty ActorID/GenreName and a
// nil InTheaters mean "no constraint".
type MovieQuery struct {
	Title      string
	ActorID    string
	GenreName  string
	InTheaters *bool
	SortBy     string
	SortOrder  string
	PageNumber int
	PageSize   int
}

// Normalize fills defaults and clamps out-of-range values so repositories
// can rely on a well-formed query: sortBy=title, sortOrder=ascending,
// pageNumber>=1, pageSize>=1.
func (q *MovieQuery) Normalize() {
	switch q.SortBy {
	case SortByTitle, SortByReleaseDate, SortByMinimumAge, SortByAverageReviewScore:
	default:
		q.SortBy = SortByTitle
	}
	if !strings.EqualFold(q.SortOrder, SortDescending) {
		q.SortOrder = SortAscending
	} else {
		q.SortOrder = SortDescending
	}
	if q.PageNumber < 1 {
		q.PageNumber = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
}

// Offset returns the number of rows to skip for the requested page.
func (q MovieQuery) Offset() int {
	return (q.PageNumber - 1) * q.PageSize
}

// PageMeta is the out-of-band pagination metadata returned with every
// listing page. TotalCount is computed by re-running the same
// predicate+exclusion without skip/limit inside the same transaction.
type PageMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalCount  int64 `json:"totalCount"`
	TotalPages  int64 `json:"totalPages"`
}

// NewPageMeta computes metadata for one page. TotalPages is the ceiling of
// totalCount / pageSize.
func NewPageMeta(page, size int, total int64) PageMeta {
	pages := total / int64(size)
	if total%int64(size) != 0 {
		pages++
	}
	return PageMeta{CurrentPage: page, PageSize: size, TotalCount: total, TotalPages: pages}
}

// PagedMovies is one listing page plus its metadata.
type PagedMovies struct {
	Items []MovieSummary `json:"items"`
	Meta  PageMeta       `json:"meta"`
}
