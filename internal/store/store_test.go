package store_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/persistorai/graphkernel/internal/db"
	"github.com/persistorai/graphkernel/internal/db/migrations"
	"github.com/persistorai/graphkernel/internal/dbpool"
	"github.com/persistorai/graphkernel/internal/models"
	"github.com/persistorai/graphkernel/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL, dbpool.Options{MaxConns: 4})
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("migrating test DB: %v", err)
	}

	sharedEnv = &testEnv{pool: pool, log: log}

	return sharedEnv
}

// setupTestBase returns a Base and an ID prefix unique to the test. Every
// row whose ID starts with the prefix is removed after the test.
func setupTestBase(t *testing.T) (store.Base, string) {
	t.Helper()

	env := getTestEnv(t)
	prefix := "t" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12] + "-"

	t.Cleanup(func() {
		ctx := context.Background()
		env.pool.Exec(ctx, "DELETE FROM kg_edges WHERE id LIKE $1", prefix+"%") //nolint:errcheck // best-effort cleanup
		env.pool.Exec(ctx, "DELETE FROM kg_nodes WHERE id LIKE $1", prefix+"%") //nolint:errcheck // best-effort cleanup
	})

	return store.Base{Pool: env.pool, Log: env.log}, prefix
}

func createTestNode(t *testing.T, ns *store.NodeStore, id string, labels ...string) *models.Node {
	t.Helper()

	req := models.CreateNodeRequest{ID: id, Labels: labels}
	if err := req.Validate(); err != nil {
		t.Fatalf("validating node %s: %v", id, err)
	}

	n, err := ns.CreateNode(context.Background(), req)
	if err != nil {
		t.Fatalf("createTestNode(%s): %v", id, err)
	}

	return n
}

func createTestEdge(t *testing.T, es *store.EdgeStore, id, typ, source, target string) *models.Edge {
	t.Helper()

	e, err := es.CreateEdge(context.Background(), models.CreateEdgeRequest{ID: id, Type: typ, Source: source, Target: target})
	if err != nil {
		t.Fatalf("createTestEdge(%s): %v", id, err)
	}

	return e
}
