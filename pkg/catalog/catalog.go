// Package catalog implements PartitionLookup: the thread-safe, durable
// registry mapping (tenant, namespace) pairs to an ordered sequence of
// partitions, and the consistent-hash routing of keys to a partition in
// that sequence.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/cuemby/kvstore/pkg/hashring"
	"github.com/cuemby/kvstore/pkg/log"
	"github.com/cuemby/kvstore/pkg/metrics"
	"github.com/cuemby/kvstore/pkg/partition"
)

const catalogFileName = "partitions.json"

// Lookup is the in-memory partition registry with durable catalog
// persistence. The zero value is not usable; construct with Load.
type Lookup struct {
	mu         sync.RWMutex
	partitions map[pairKey][]*partition.Partition

	// writeMu serializes add_partition's read-modify-persist sequence so
	// concurrent callers don't interleave truncate-writes of the catalog
	// file (spec §4.2/§5 Concurrency).
	writeMu sync.Mutex

	configDir string
}

type persistedPartition struct {
	ID          uuid.UUID `json:"id"`
	NamespaceID uuid.UUID `json:"namespace_id"`
	TenantID    uuid.UUID `json:"tenant_id"`
}

type persistedState struct {
	Partitions map[pairKey][]persistedPartition `json:"partitions"`
}

// Load reads <configDir>/partitions.json if present and rehydrates the
// registry, opening each partition's engine rooted at configDir. If the
// file is absent, Load returns an empty registry. A present-but-malformed
// catalog file is a fatal startup error per spec §6.
func Load(configDir string) (*Lookup, error) {
	l := &Lookup{
		partitions: make(map[pairKey][]*partition.Partition),
		configDir:  configDir,
	}

	path := filepath.Join(configDir, catalogFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.WithComponent("catalog").Info().Msg("creating empty partition lookup")
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var state persistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	log.WithComponent("catalog").Info().Msg("loading existing partition lookup")
	for key, entries := range state.Partitions {
		parts := make([]*partition.Partition, 0, len(entries))
		for _, e := range entries {
			p, err := partition.Open(e.ID, e.NamespaceID, e.TenantID, configDir)
			if err != nil {
				return nil, fmt.Errorf("reopen partition %s: %w", e.ID, err)
			}
			parts = append(parts, p)
		}
		l.partitions[key] = parts
	}

	l.reportPartitionsTotal()
	return l, nil
}

// reportPartitionsTotal publishes the total partition count across all
// (tenant, namespace) pairs to metrics.PartitionsTotal. Callers must not
// hold l.mu.
func (l *Lookup) reportPartitionsTotal() {
	l.mu.RLock()
	total := 0
	for _, parts := range l.partitions {
		total += len(parts)
	}
	l.mu.RUnlock()
	metrics.PartitionsTotal.Set(float64(total))
}

// save serializes the entire registry and atomically-by-overwrite rewrites
// the catalog file (open-create-truncate). Spec §9 flags this as not
// crash-safe; the temp-file-rename upgrade is a recorded open question, not
// implemented in the baseline.
func (l *Lookup) save() error {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.CatalogPersistDuration)

	l.mu.RLock()
	state := persistedState{Partitions: make(map[pairKey][]persistedPartition, len(l.partitions))}
	for key, parts := range l.partitions {
		entries := make([]persistedPartition, len(parts))
		for i, p := range parts {
			entries[i] = persistedPartition{ID: p.ID, NamespaceID: p.NamespaceID, TenantID: p.TenantID}
		}
		state.Partitions[key] = entries
	}
	l.mu.RUnlock()

	path := filepath.Join(l.configDir, catalogFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(state); err != nil {
		return fmt.Errorf("write catalog %s: %w", path, err)
	}
	return f.Sync()
}

// AddPartition appends p to the sequence for its (tenant, namespace) pair
// and persists the catalog. The in-memory state is updated before the
// write, so on persistence failure the on-disk catalog may lag the
// in-memory state (spec §4.2/§7 — a recorded open question, surfaced here
// by returning the write error to the caller).
func (l *Lookup) AddPartition(p *partition.Partition) error {
	key := pairKey{TenantID: p.TenantID, NamespaceID: p.NamespaceID}

	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	existing := l.partitions[key]
	updated := make([]*partition.Partition, len(existing), len(existing)+1)
	copy(updated, existing)
	updated = append(updated, p)
	l.partitions[key] = updated
	l.mu.Unlock()

	log.WithComponent("catalog").Info().
		Str("partition_id", p.ID.String()).
		Str("tenant_id", p.TenantID.String()).
		Str("namespace_id", p.NamespaceID.String()).
		Msg("adding new partition")

	l.reportPartitionsTotal()

	if err := l.save(); err != nil {
		log.WithComponent("catalog").Error().Err(err).Msg("failed to persist catalog")
		return err
	}
	return nil
}

// Partitions returns the partition sequence for (tenant, namespace), or
// (nil, false) if none exist.
func (l *Lookup) Partitions(tenantID, namespaceID uuid.UUID) ([]*partition.Partition, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	parts, ok := l.partitions[pairKey{TenantID: tenantID, NamespaceID: namespaceID}]
	return parts, ok
}

// GetPartitionForKey routes key to a partition in the (tenant, namespace)
// sequence using CRC-64 + jump consistent hash (spec §4.2). It returns
// (nil, false) if no partitions exist for that pair.
func (l *Lookup) GetPartitionForKey(tenantID, namespaceID uuid.UUID, key []byte) (*partition.Partition, bool) {
	parts, ok := l.Partitions(tenantID, namespaceID)
	if !ok || len(parts) == 0 {
		return nil, false
	}

	index := hashring.Slot(key, int32(len(parts)))
	log.WithComponent("catalog").Debug().
		Int("partitions", len(parts)).Int32("index", index).
		Msg("routing key to partition")
	return parts[index], true
}
