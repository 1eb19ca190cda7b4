// Package partition implements the on-disk storage unit for a single shard
// of tenant data: an ordered key-value container backed by an embedded
// badger engine, with values and their fixed-width metadata headers kept in
// two logically separate keyspaces that are always written in one atomic
// transaction.
//
// See DESIGN.md for why badger emulates RocksDB-style column families via
// key prefixes instead of native CF handles.
package partition

import (
	"encoding/binary"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/cuemby/kvstore/pkg/log"
)

// metadataSize is the fixed 8-byte layout: crc (u32 BE) ‖ version (u32 BE).
const metadataSize = 8

// defaultLimit is list_keys' limit when the caller doesn't specify one.
const defaultLimit = 50

var (
	defaultPrefix  = []byte{0x00}
	metadataPrefix = []byte{0x01}
)

// Metadata is the fixed header stored alongside every value.
type Metadata struct {
	CRC     uint32
	Version uint32
}

func (m Metadata) encode() []byte {
	buf := make([]byte, metadataSize)
	binary.BigEndian.PutUint32(buf[0:4], m.CRC)
	binary.BigEndian.PutUint32(buf[4:8], m.Version)
	return buf
}

func decodeMetadata(b []byte) (Metadata, error) {
	if len(b) != metadataSize {
		return Metadata{}, fmt.Errorf("metadata record has %d bytes, want %d", len(b), metadataSize)
	}
	return Metadata{
		CRC:     binary.BigEndian.Uint32(b[0:4]),
		Version: binary.BigEndian.Uint32(b[4:8]),
	}, nil
}

// StoredValue is a get result: the value plus its metadata.
type StoredValue struct {
	Value    []byte
	Metadata Metadata
}

// ListOptions controls list_keys pagination.
type ListOptions struct {
	Limit   int
	StartAt []byte
}

// KeyMetadata is one list_keys result row.
type KeyMetadata struct {
	Key      []byte
	Metadata Metadata
}

// Partition owns one shard's directory-backed engine. It is identified by
// its own UUID and bound to exactly one (tenant, namespace) pair; identity
// never changes, only contents do.
type Partition struct {
	ID          uuid.UUID
	NamespaceID uuid.UUID
	TenantID    uuid.UUID

	db *badger.DB
}

// Open opens (creating if necessary) the badger engine rooted at
// <rootDir>/<id> and returns a Partition bound to the given identifiers.
// A badger.DB that fails to open is a fatal bug at construction time per
// spec §4.1 ("missing column family handles at init time are a fatal bug");
// here that maps onto badger.Open itself failing.
func Open(id, namespaceID, tenantID uuid.UUID, rootDir string) (*Partition, error) {
	dir := filepath.Join(rootDir, id.String())

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open partition %s: %w", id, err)
	}

	log.WithComponent("partition").Info().
		Str("partition_id", id.String()).
		Str("namespace_id", namespaceID.String()).
		Str("tenant_id", tenantID.String()).
		Msg("initialized partition")

	return &Partition{
		ID:          id,
		NamespaceID: namespaceID,
		TenantID:    tenantID,
		db:          db,
	}, nil
}

// Close releases the underlying engine handle.
func (p *Partition) Close() error {
	return p.db.Close()
}

func valueKey(key []byte) []byte {
	return append(append([]byte{}, defaultPrefix...), key...)
}

func metaKey(key []byte) []byte {
	return append(append([]byte{}, metadataPrefix...), key...)
}

// Get reads the value and metadata for key in a single read transaction.
// Per invariant 1, if exactly one of {value, metadata} is present the
// result is KindCorrupt; if neither is present, KindNotFound.
func (p *Partition) Get(key []byte) (StoredValue, error) {
	var sv StoredValue
	var haveValue, haveMeta bool

	err := p.db.View(func(txn *badger.Txn) error {
		metaItem, err := txn.Get(metaKey(key))
		switch {
		case err == nil:
			haveMeta = true
			raw, err := metaItem.ValueCopy(nil)
			if err != nil {
				return err
			}
			md, err := decodeMetadata(raw)
			if err != nil {
				return err
			}
			sv.Metadata = md
		case err == badger.ErrKeyNotFound:
			haveMeta = false
		default:
			return err
		}

		valItem, err := txn.Get(valueKey(key))
		switch {
		case err == nil:
			haveValue = true
			raw, err := valItem.ValueCopy(nil)
			if err != nil {
				return err
			}
			sv.Value = raw
		case err == badger.ErrKeyNotFound:
			haveValue = false
		default:
			return err
		}

		return nil
	})
	if err != nil {
		log.WithComponent("partition").Error().Err(err).
			Str("partition_id", p.ID.String()).Msg("get failed")
		return StoredValue{}, newIOError("get", err)
	}

	switch {
	case haveValue && haveMeta:
		return sv, nil
	case !haveValue && !haveMeta:
		return StoredValue{}, newNotFound("get")
	default:
		log.WithComponent("partition").Error().
			Str("partition_id", p.ID.String()).
			Bool("have_value", haveValue).Bool("have_metadata", haveMeta).
			Msg("invariant violation: value/metadata mismatch")
		return StoredValue{}, newCorrupt("get")
	}
}

// Put writes value and its metadata in a single atomic transaction: a crash
// must never leave only one side visible. The baseline does not enforce
// monotonic versions (spec §4.1/§9) — Put accepts the caller-provided
// version unconditionally.
func (p *Partition) Put(key []byte, value []byte, md Metadata) (Metadata, error) {
	err := p.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(valueKey(key), value); err != nil {
			return err
		}
		return txn.Set(metaKey(key), md.encode())
	})
	if err != nil {
		log.WithComponent("partition").Error().Err(err).
			Str("partition_id", p.ID.String()).Msg("put failed")
		return Metadata{}, newIOError("put", err)
	}
	return md, nil
}

// CurrentVersion reads the version currently stored for key, if any.
// pkg/storageservice uses it to assign the next version on put (the RPC
// surface does not accept a caller-supplied version); Put itself does not
// call this and never rejects a version (spec §9: CAS/version enforcement
// is an open question left unimplemented here).
func (p *Partition) CurrentVersion(key []byte) (uint32, bool, error) {
	var version uint32
	var found bool

	err := p.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(metaKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		raw, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		md, err := decodeMetadata(raw)
		if err != nil {
			return err
		}
		found = true
		version = md.Version
		return nil
	})
	if err != nil {
		return 0, false, newIOError("current_version", err)
	}
	return version, found, nil
}

// Delete removes both the value and its metadata in one transaction.
func (p *Partition) Delete(key []byte) error {
	err := p.db.Update(func(txn *badger.Txn) error {
		if err := txn.Delete(valueKey(key)); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		if err := txn.Delete(metaKey(key)); err != nil && err != badger.ErrKeyNotFound {
			return err
		}
		return nil
	})
	if err != nil {
		return newIOError("delete", err)
	}
	return nil
}

// Exists is a cheap existence check against the default (value) keyspace.
func (p *Partition) Exists(key []byte) (bool, error) {
	found := false
	err := p.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(valueKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return false, newIOError("exists", err)
	}
	return found, nil
}

// ListKeys iterates the metadata keyspace in lexicographic order, starting
// at StartAt (inclusive) or the first key, capped at Limit (default 50).
// Values are never read.
func (p *Partition) ListKeys(opts ListOptions) ([]KeyMetadata, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	var results []KeyMetadata
	err := p.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: metadataPrefix})
		defer it.Close()

		seek := metaKey(opts.StartAt)
		if len(opts.StartAt) == 0 {
			seek = metadataPrefix
		}

		for it.Seek(seek); it.ValidForPrefix(metadataPrefix); it.Next() {
			if len(results) >= limit {
				break
			}
			item := it.Item()
			raw, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			md, err := decodeMetadata(raw)
			if err != nil {
				return err
			}
			k := append([]byte{}, item.Key()[len(metadataPrefix):]...)
			results = append(results, KeyMetadata{Key: k, Metadata: md})
		}
		return nil
	})
	if err != nil {
		return nil, newIOError("list_keys", err)
	}

	// badger's iterator is already key-ordered within a prefix, but keep
	// this explicit since it's an invariant the spec tests directly.
	sort.Slice(results, func(i, j int) bool {
		return string(results[i].Key) < string(results[j].Key)
	})
	return results, nil
}
