// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Required variables are enforced by must();
// missing values abort startup with a fatal log message.
type Config struct {
	Env          string // application environment (e.g. "dev", "prod")
	Port         string // HTTP port to listen on
	Neo4jURI     string // bolt/neo4j URI of the graph store
	Neo4jUser    string // graph store username
	Neo4jPass    string // graph store password (empty allowed for auth-less setups)
	JWTSecret    string // secret used to sign JWTs
	AccessTTLMin int    // access token time-to-live in minutes
	BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables.
func Load() Config {
	return Config{
		Env:          must("APP_ENV"),
		Port:         must("APP_PORT"),
		Neo4jURI:     must("NEO4J_URI"),
		Neo4jUser:    must("NEO4J_USER"),
		Neo4jPass:    os.Getenv("NEO4J_PASS"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:   mustInt("BCRYPT_COST"),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
