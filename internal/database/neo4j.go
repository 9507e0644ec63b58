package database

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Open connects to Neo4j and verifies the connection before returning the
// driver. The driver is safe for concurrent use and holds its own
// connection pool; callers open short-lived sessions per request.
func Open(uri, user, pass string) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, pass, ""))
	if err != nil {
		return nil, err
	}

	// Verify with timeout so a misconfigured URI fails fast at startup.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(context.Background())
		return nil, err
	}
	return driver, nil
}
