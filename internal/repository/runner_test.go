package repository

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// fakeRunner replays canned record sets in order and captures every
// statement it was asked to run.
type fakeRunner struct {
	responses [][]*neo4j.Record
	calls     []runnerCall
	err       error
}

type runnerCall struct {
	cypher string
	params map[string]any
}

func (f *fakeRunner) Run(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	f.calls = append(f.calls, runnerCall{cypher: cypher, params: params})
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, fmt.Errorf("unexpected statement: %s", cypher)
	}
	recs := f.responses[0]
	f.responses = f.responses[1:]
	return recs, nil
}

// rec builds a record from alternating key, value pairs.
func rec(kv ...any) *neo4j.Record {
	r := &neo4j.Record{}
	for i := 0; i+1 < len(kv); i += 2 {
		r.Keys = append(r.Keys, kv[i].(string))
		r.Values = append(r.Values, kv[i+1])
	}
	return r
}
