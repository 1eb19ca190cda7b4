package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// pairKey identifies the (tenant, namespace) pair a partition sequence
// belongs to. It implements encoding.TextMarshaler/TextUnmarshaler so
// encoding/json can use it directly as a map key, producing the
// "<namespace_id>::<tenant_id>" string the catalog file format requires
// (spec §6).
type pairKey struct {
	TenantID    uuid.UUID
	NamespaceID uuid.UUID
}

func (k pairKey) MarshalText() ([]byte, error) {
	return []byte(fmt.Sprintf("%s::%s", k.NamespaceID, k.TenantID)), nil
}

func (k *pairKey) UnmarshalText(text []byte) error {
	parts := strings.SplitN(string(text), "::", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid persisted pair key %q", text)
	}

	namespaceID, err := uuid.Parse(parts[0])
	if err != nil {
		return fmt.Errorf("invalid namespace_id in pair key %q: %w", text, err)
	}
	tenantID, err := uuid.Parse(parts[1])
	if err != nil {
		return fmt.Errorf("invalid tenant_id in pair key %q: %w", text, err)
	}

	k.NamespaceID = namespaceID
	k.TenantID = tenantID
	return nil
}
