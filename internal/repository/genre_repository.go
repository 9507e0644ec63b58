package repository

import (
	"context"

	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/database"
	"github.com/UniversityOfGdanskProjects/projektprogramistyczny-Wikator-sub000/internal/model"
)

// GenreRepo reads the Genre nodes. The set is small, seeded at startup
// and effectively immutable; movies reference genres by name.
type GenreRepo struct{}

// NewGenreRepo constructs a GenreRepo.
func NewGenreRepo() *GenreRepo {
	return &GenreRepo{}
}

// Seed merges the given genre names so the pre-seeded set survives
// restarts without duplicating nodes.
func (r *GenreRepo) Seed(ctx context.Context, run database.Runner, names []string) error {
	const q = `UNWIND $names AS name
MERGE (:Genre {name: name})`
	_, err := run.Run(ctx, q, map[string]any{"names": anyStrings(names)})
	return err
}

// List returns all genres ordered by name.
func (r *GenreRepo) List(ctx context.Context, run database.Runner) ([]model.Genre, error) {
	const q = `MATCH (g:Genre) RETURN g.name AS name ORDER BY g.name ASC`
	recs, err := run.Run(ctx, q, nil)
	if err != nil {
		return nil, err
	}
	out := make([]model.Genre, 0, len(recs))
	for _, rec := range recs {
		out = append(out, model.Genre{Name: recString(rec, "name")})
	}
	return out, nil
}
