// Package gatewaycatalog implements the gateway's relational tenant and
// namespace catalog: tenant lookup by name (for token issuance) and
// namespace ownership checks (before proxying storage operations), per
// spec §4.5. The schema itself is out of scope (spec §1 Non-goals); this
// package only specifies the queries the gateway issues against it.
package gatewaycatalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Tenant is an external principal identified by name and UUID.
type Tenant struct {
	Name string
	ID   uuid.UUID
}

// TenantRepo looks tenants up by name.
type TenantRepo struct {
	db *sql.DB
}

// NewTenantRepo builds a TenantRepo over db.
func NewTenantRepo(db *sql.DB) *TenantRepo {
	return &TenantRepo{db: db}
}

// Get fetches the tenant named name, used by the token-issuance endpoint
// to resolve the subject UUID a JWT is minted for (spec §4.5).
func (r *TenantRepo) Get(ctx context.Context, name string) (Tenant, error) {
	row := r.db.QueryRowContext(ctx, `SELECT name, id FROM tenants WHERE name = $1`, name)

	var t Tenant
	var idText string
	if err := row.Scan(&t.Name, &idText); err != nil {
		return Tenant{}, fmt.Errorf("lookup tenant %q: %w", name, err)
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return Tenant{}, fmt.Errorf("tenant %q has malformed id: %w", name, err)
	}
	t.ID = id
	return t, nil
}
