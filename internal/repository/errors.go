// Package repository contains the Cypher query layer of the application.
// Repositories are stateless; every method receives the caller's
// transactional query runner so that all statements of one logical
// operation execute inside a single transaction. This file defines the
// sentinel errors shared across repositories. Handlers translate them
// into HTTP status codes.
package repository

import "errors"

// ErrNotFound is returned when a referenced movie, comment, review or
// notification does not exist. It is also returned when the entity exists
// but the caller lacks ownership or admin rights to act on it; the two
// cases are deliberately indistinguishable so responses do not leak
// whether an entity exists. Handlers map it to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when creating a review/watchlist/favourite/
// ignores relationship that already exists for the (user, movie) pair, or
// when commenting on a nonexistent movie. Handlers map it to HTTP 400/409.
var ErrConflict = errors.New("conflict")

// ErrUnexpectedState is returned when a query expected to yield exactly
// one record yields more. It is not recoverable; the surrounding
// transaction is rolled back and handlers map it to HTTP 500.
var ErrUnexpectedState = errors.New("unexpected state")
