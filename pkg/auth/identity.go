// Package auth implements RS256 JWT issuance and validation for kvstore:
// the gateway issues tokens naming a tenant, the storage node's RPC
// interceptor validates them and recovers the tenant's identity.
package auth

import "github.com/google/uuid"

// Issuer is the fixed "iss" claim value kvstore issues and expects.
const Issuer = "kvstore"

// Identity is a verified token's tenant identity. It carries no session
// state beyond the tenant UUID; expiration is deliberately not enforced in
// the baseline (see JwtValidator).
type Identity struct {
	TenantID uuid.UUID
}
