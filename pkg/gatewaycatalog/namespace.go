package gatewaycatalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/cuemby/kvstore/pkg/log"
)

// Namespace belongs to exactly one tenant.
type Namespace struct {
	Name string
	ID   uuid.UUID
}

// NamespaceRepo answers ownership and listing queries for a tenant's
// namespaces.
type NamespaceRepo struct {
	db *sql.DB
}

// NewNamespaceRepo builds a NamespaceRepo over db.
func NewNamespaceRepo(db *sql.DB) *NamespaceRepo {
	return &NamespaceRepo{db: db}
}

// Exists reports whether tenantID owns a namespace named name. Spec §4.5
// requires this check before proxying any storage operation; a query
// failure is logged and treated as non-existence, matching the original
// implementation's fail-closed behavior.
func (r *NamespaceRepo) Exists(ctx context.Context, tenantID uuid.UUID, name string) bool {
	row := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(
			SELECT 1 FROM namespaces
			JOIN tenants ON namespaces.tenant_id = tenants.id
			WHERE tenants.id = $1 AND namespaces.name = $2
		)`, tenantID.String(), name)

	var exists bool
	if err := row.Scan(&exists); err != nil {
		log.WithComponent("gatewaycatalog").Error().Err(err).
			Str("tenant_id", tenantID.String()).Str("namespace", name).
			Msg("failed to determine if namespace exists")
		return false
	}
	return exists
}

// Get fetches the namespace named name owned by tenantID.
func (r *NamespaceRepo) Get(ctx context.Context, tenantID uuid.UUID, name string) (Namespace, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT ns.name, ns.id FROM namespaces AS ns
		 JOIN tenants ON ns.tenant_id = tenants.id
		 WHERE tenants.id = $1 AND ns.name = $2`, tenantID.String(), name)

	var ns Namespace
	var idText string
	if err := row.Scan(&ns.Name, &idText); err != nil {
		return Namespace{}, fmt.Errorf("lookup namespace %q for tenant %s: %w", name, tenantID, err)
	}

	id, err := uuid.Parse(idText)
	if err != nil {
		return Namespace{}, fmt.Errorf("namespace %q has malformed id: %w", name, err)
	}
	ns.ID = id
	return ns, nil
}

// List returns all namespaces owned by tenantID.
func (r *NamespaceRepo) List(ctx context.Context, tenantID uuid.UUID) ([]Namespace, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT ns.name, ns.id FROM namespaces AS ns
		 JOIN tenants ON ns.tenant_id = tenants.id
		 WHERE tenants.id = $1`, tenantID.String())
	if err != nil {
		return nil, fmt.Errorf("list namespaces for tenant %s: %w", tenantID, err)
	}
	defer rows.Close()

	var namespaces []Namespace
	for rows.Next() {
		var ns Namespace
		var idText string
		if err := rows.Scan(&ns.Name, &idText); err != nil {
			return nil, fmt.Errorf("scan namespace row: %w", err)
		}
		id, err := uuid.Parse(idText)
		if err != nil {
			return nil, fmt.Errorf("namespace %q has malformed id: %w", ns.Name, err)
		}
		ns.ID = id
		namespaces = append(namespaces, ns)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate namespace rows: %w", err)
	}
	return namespaces, nil
}
