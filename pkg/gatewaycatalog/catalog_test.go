package gatewaycatalog

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
)

// Exercising TenantRepo/NamespaceRepo against the real queries needs a
// live Postgres instance; these tests run only when KVSTORE_TEST_DSN
// points at one (matching the pack's convention of skipping integration
// tests absent external infrastructure).
func testDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("KVSTORE_TEST_DSN")
	if dsn == "" {
		t.Skip("KVSTORE_TEST_DSN not set; skipping catalog integration test")
	}
	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestTenantRepoGetUnknownTenant(t *testing.T) {
	db := testDB(t)
	repo := NewTenantRepo(db)

	_, err := repo.Get(context.Background(), "does-not-exist-"+uuid.New().String())
	if err == nil {
		t.Fatal("expected error for unknown tenant")
	}
}

func TestNamespaceRepoExistsFalseForUnknownPair(t *testing.T) {
	db := testDB(t)
	repo := NewNamespaceRepo(db)

	exists := repo.Exists(context.Background(), uuid.New(), "no-such-namespace")
	if exists {
		t.Fatal("expected Exists to be false for an unknown tenant/namespace pair")
	}
}
