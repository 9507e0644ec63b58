package repository

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Helpers for pulling typed values out of Neo4j records. The driver hands
// back int64/float64/bool/string/[]any/map[string]any; absent properties
// come back as nil. Each helper returns the documented default on nil so
// aggregation code never has to special-case missing relationships.

// single asserts that a statement produced exactly one record. Zero
// records map to ErrNotFound, more than one to ErrUnexpectedState.
func single(records []*neo4j.Record) (*neo4j.Record, error) {
	switch len(records) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return records[0], nil
	default:
		return nil, fmt.Errorf("%w: expected one record, got %d", ErrUnexpectedState, len(records))
	}
}

func recString(rec *neo4j.Record, key string) string {
	v, _ := rec.Get(key)
	s, _ := v.(string)
	return s
}

// recStringPtr keeps null properties null instead of collapsing them to "".
func recStringPtr(rec *neo4j.Record, key string) *string {
	v, _ := rec.Get(key)
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func recInt(rec *neo4j.Record, key string) int64 {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

// recFloat accepts both int64 and float64 because avg() over integer
// scores yields a float while coalesce(..., 0) may yield an integer zero.
func recFloat(rec *neo4j.Record, key string) float64 {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func recBool(rec *neo4j.Record, key string) bool {
	v, _ := rec.Get(key)
	b, _ := v.(bool)
	return b
}

// recStrings converts a collected list of strings. The result is always
// non-nil so JSON renders [] rather than null.
func recStrings(rec *neo4j.Record, key string) []string {
	out := []string{}
	v, _ := rec.Get(key)
	items, _ := v.([]any)
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// recMaps converts a collected list of map projections.
func recMaps(rec *neo4j.Record, key string) []map[string]any {
	var out []map[string]any
	v, _ := rec.Get(key)
	items, _ := v.([]any)
	for _, it := range items {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func mapString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func mapStringPtr(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok {
		return &s
	}
	return nil
}

func mapBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
