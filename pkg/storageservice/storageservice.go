// Package storageservice implements the Storage gRPC facade (spec §4.4):
// per-method identity/namespace validation, CRC verification, partition
// resolution, dispatch to pkg/partition, and engine-error-to-status
// mapping.
package storageservice

import (
	"context"
	"hash/crc32"
	"sync"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cuemby/kvstore/internal/storagepb"
	"github.com/cuemby/kvstore/pkg/catalog"
	"github.com/cuemby/kvstore/pkg/log"
	"github.com/cuemby/kvstore/pkg/metrics"
	"github.com/cuemby/kvstore/pkg/partition"
	"github.com/cuemby/kvstore/pkg/rpcauth"
)

// statusLabel reduces a gRPC error to the label value recorded against
// metrics.StorageRequestsTotal.
func statusLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return status.Code(err).String()
}

// Service implements storagepb.StorageServer over a PartitionLookup.
type Service struct {
	storagepb.UnimplementedStorageServer

	lookup *catalog.Lookup
}

// New builds a Service routed through lookup.
func New(lookup *catalog.Lookup) *Service {
	return &Service{lookup: lookup}
}

// mustIdentity reads the Identity the AuthInterceptor attached to ctx.
// Absence is a programming error (spec §4.4 step 1): every method here is
// only ever reached behind rpcauth.AuthInterceptor.
func mustIdentity(ctx context.Context) (uuid.UUID, error) {
	id, ok := rpcauth.IdentityFromContext(ctx)
	if !ok {
		return uuid.UUID{}, status.Error(codes.Internal, "missing identity in context")
	}
	return id.TenantID, nil
}

func engineStatus(op string, err error) error {
	switch {
	case partition.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case partition.IsCorrupt(err):
		return status.Error(codes.DataLoss, err.Error())
	case partition.IsIO(err):
		log.WithComponent("storageservice").Error().Err(err).Str("op", op).Msg("engine i/o failure")
		return status.Error(codes.Internal, "storage engine failure")
	default:
		log.WithComponent("storageservice").Error().Err(err).Str("op", op).Msg("unmapped engine error")
		return status.Error(codes.Internal, err.Error())
	}
}

// Put verifies the client-supplied CRC (if any) against CRC-32(key‖value),
// rejecting a mismatch, then writes through the resolved partition (spec
// §4.4 step 3, §8 scenarios 1-2).
func (s *Service) Put(ctx context.Context, req *storagepb.PutRequest) (resp *storagepb.PutResponse, err error) {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDurationVec(metrics.StorageRequestDuration, "put")
		metrics.StorageRequestsTotal.WithLabelValues("put", statusLabel(err)).Inc()
	}()

	tenantID, err := mustIdentity(ctx)
	if err != nil {
		return nil, err
	}

	namespaceID, err := uuid.Parse(req.NamespaceId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid namespace_id")
	}

	computed := crc32.ChecksumIEEE(append(append([]byte{}, req.Key...), req.Value...))
	if req.Crc != nil && *req.Crc != computed {
		log.WithComponent("storageservice").Warn().
			Uint32("client_crc", *req.Crc).Uint32("computed_crc", computed).
			Msg("crc mismatch")
		metrics.CrcMismatchesTotal.Inc()
		return nil, status.Error(codes.InvalidArgument, "crc mismatch")
	}
	if req.Crc == nil {
		log.WithComponent("storageservice").Warn().Msg("put request missing crc; proceeding with computed value")
	}

	p, ok := s.lookup.GetPartitionForKey(tenantID, namespaceID, req.Key)
	if !ok {
		return nil, status.Error(codes.NotFound, "no partition for namespace")
	}

	version, _, err := p.CurrentVersion(req.Key)
	if err != nil {
		return nil, engineStatus("put", err)
	}
	version++

	md, err := p.Put(req.Key, req.Value, partition.Metadata{CRC: computed, Version: version})
	if err != nil {
		return nil, engineStatus("put", err)
	}

	return &storagepb.PutResponse{Version: md.Version, Crc: md.CRC}, nil
}

func (s *Service) Get(ctx context.Context, req *storagepb.GetRequest) (resp *storagepb.GetResponse, err error) {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDurationVec(metrics.StorageRequestDuration, "get")
		metrics.StorageRequestsTotal.WithLabelValues("get", statusLabel(err)).Inc()
	}()

	tenantID, err := mustIdentity(ctx)
	if err != nil {
		return nil, err
	}

	namespaceID, err := uuid.Parse(req.NamespaceId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid namespace_id")
	}

	p, ok := s.lookup.GetPartitionForKey(tenantID, namespaceID, req.Key)
	if !ok {
		return nil, status.Error(codes.NotFound, "no partition for namespace")
	}

	sv, err := p.Get(req.Key)
	if err != nil {
		return nil, engineStatus("get", err)
	}

	return &storagepb.GetResponse{
		Key:   req.Key,
		Value: sv.Value,
		Metadata: &storagepb.Metadata{
			Crc:     sv.Metadata.CRC,
			Version: sv.Metadata.Version,
		},
	}, nil
}

// ListKeys resolves the full partition sequence for (tenant, namespace)
// and fans out list_keys to each partition concurrently, concatenating in
// partition order (spec §4.4).
func (s *Service) ListKeys(ctx context.Context, req *storagepb.ListKeysRequest) (resp *storagepb.ListKeysResponse, err error) {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDurationVec(metrics.StorageRequestDuration, "list_keys")
		metrics.StorageRequestsTotal.WithLabelValues("list_keys", statusLabel(err)).Inc()
		if resp != nil {
			metrics.KeysListedTotal.Add(float64(len(resp.Keys)))
		}
	}()

	tenantID, err := mustIdentity(ctx)
	if err != nil {
		return nil, err
	}

	namespaceID, err := uuid.Parse(req.NamespaceId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid namespace_id")
	}

	parts, ok := s.lookup.Partitions(tenantID, namespaceID)
	if !ok || len(parts) == 0 {
		return nil, status.Error(codes.NotFound, "no partitions for namespace")
	}

	opts := partition.ListOptions{StartAt: req.StartKey}
	if req.Limit != nil {
		opts.Limit = int(*req.Limit)
	}

	results := make([][]partition.KeyMetadata, len(parts))
	errs := make([]error, len(parts))

	var wg sync.WaitGroup
	for i, p := range parts {
		wg.Add(1)
		go func(i int, p *partition.Partition) {
			defer wg.Done()
			rows, err := p.ListKeys(opts)
			results[i] = rows
			errs[i] = err
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, engineStatus("list_keys", err)
		}
	}

	resp = &storagepb.ListKeysResponse{}
	for _, rows := range results {
		for _, row := range rows {
			resp.Keys = append(resp.Keys, &storagepb.KeyMetadata{
				Key:      row.Key,
				Metadata: &storagepb.Metadata{Crc: row.Metadata.CRC, Version: row.Metadata.Version},
			})
		}
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, req *storagepb.DeleteRequest) (resp *storagepb.DeleteResponse, err error) {
	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDurationVec(metrics.StorageRequestDuration, "delete")
		metrics.StorageRequestsTotal.WithLabelValues("delete", statusLabel(err)).Inc()
	}()

	tenantID, err := mustIdentity(ctx)
	if err != nil {
		return nil, err
	}

	namespaceID, err := uuid.Parse(req.NamespaceId)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "invalid namespace_id")
	}

	p, ok := s.lookup.GetPartitionForKey(tenantID, namespaceID, req.Key)
	if !ok {
		return nil, status.Error(codes.NotFound, "no partition for namespace")
	}

	if err = p.Delete(req.Key); err != nil {
		return nil, engineStatus("delete", err)
	}
	return &storagepb.DeleteResponse{}, nil
}
