package database

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Runner is the transactional query runner shared by all repositories: run
// one parameterized Cypher statement inside the caller's transaction and
// collect its records. Every statement issued through one Runner executes
// in the same transaction, so a listing's count query and page query see
// the same snapshot. Repositories never open transactions themselves; the
// handler owns the session and its commit/rollback.
type Runner interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

// txRunner adapts a managed transaction to the Runner interface.
type txRunner struct {
	tx neo4j.ManagedTransaction
}

// NewTxRunner wraps a managed transaction obtained from
// session.ExecuteRead or session.ExecuteWrite.
func NewTxRunner(tx neo4j.ManagedTransaction) Runner {
	return &txRunner{tx: tx}
}

func (r *txRunner) Run(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := r.tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return res.Collect(ctx)
}
