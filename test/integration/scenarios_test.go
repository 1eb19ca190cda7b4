// Package integration exercises the literal scenarios from spec §8 end to
// end through catalog, partition and storageservice together, rather than
// any one package in isolation.
package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/cuemby/kvstore/internal/storagepb"
	"github.com/cuemby/kvstore/pkg/auth"
	"github.com/cuemby/kvstore/pkg/catalog"
	"github.com/cuemby/kvstore/pkg/hashring"
	"github.com/cuemby/kvstore/pkg/partition"
	"github.com/cuemby/kvstore/pkg/rpcauth"
	"github.com/cuemby/kvstore/pkg/storageservice"
)

func uint32Ptr(v uint32) *uint32 { return &v }

// stubValidator accepts any bearer token, attaching identity for a fixed
// tenant, so tests drive requests through the real AuthInterceptor.
type stubValidator struct {
	tenantID uuid.UUID
}

func (s stubValidator) Validate(token string) (auth.Identity, error) {
	return auth.Identity{TenantID: s.tenantID}, nil
}

var methodInfo = &grpc.UnaryServerInfo{FullMethod: "/kvstore.storage.v1.Storage/Call"}

func callAs(t *testing.T, tenantID uuid.UUID, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	t.Helper()
	interceptor := rpcauth.AuthInterceptor(stubValidator{tenantID: tenantID})
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("authorization", "Bearer integration-test"))
	return interceptor(ctx, nil, methodInfo, func(ctx context.Context, req interface{}) (interface{}, error) {
		return fn(ctx)
	})
}

func newNode(t *testing.T) *storageservice.Service {
	t.Helper()
	lookup, err := catalog.Load(t.TempDir())
	require.NoError(t, err)
	return storageservice.New(lookup)
}

func addPartition(t *testing.T, lookup *catalog.Lookup, tenantID, namespaceID uuid.UUID, dir string) *partition.Partition {
	t.Helper()
	p, err := partition.Open(uuid.New(), namespaceID, tenantID, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close() })
	require.NoError(t, lookup.AddPartition(p))
	return p
}

// Scenario 1: put/get round trip with the scenario's literal UUIDs and the
// client CRC set to CRC-32(IEEE) of "alphaone", which is 0x91A2A715.
func TestScenarioPutGetRoundTrip(t *testing.T) {
	tenantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	namespaceID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	dir := t.TempDir()

	lookup, err := catalog.Load(dir)
	require.NoError(t, err)
	svc := storageservice.New(lookup)
	addPartition(t, lookup, tenantID, namespaceID, dir)

	putResp, err := callAs(t, tenantID, func(ctx context.Context) (interface{}, error) {
		return svc.Put(ctx, &storagepb.PutRequest{
			NamespaceId: namespaceID.String(),
			Key:         []byte("alpha"),
			Value:       []byte("one"),
			Crc:         uint32Ptr(0x91A2A715),
		})
	})
	require.NoError(t, err)
	resp := putResp.(*storagepb.PutResponse)
	require.Equal(t, uint32(0x91A2A715), resp.Crc)
	require.Equal(t, uint32(1), resp.Version)

	getResp, err := callAs(t, tenantID, func(ctx context.Context) (interface{}, error) {
		return svc.Get(ctx, &storagepb.GetRequest{NamespaceId: namespaceID.String(), Key: []byte("alpha")})
	})
	require.NoError(t, err)
	got := getResp.(*storagepb.GetResponse)
	require.Equal(t, "one", string(got.Value))
	require.Equal(t, uint32(1), got.Metadata.Version)
	require.Equal(t, uint32(0x91A2A715), got.Metadata.Crc)
}

// Scenario 2: CRC mismatch rejects the write with no state change.
func TestScenarioCrcMismatchLeavesNoState(t *testing.T) {
	tenantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	namespaceID := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	dir := t.TempDir()

	lookup, err := catalog.Load(dir)
	require.NoError(t, err)
	svc := storageservice.New(lookup)
	addPartition(t, lookup, tenantID, namespaceID, dir)

	_, err = callAs(t, tenantID, func(ctx context.Context) (interface{}, error) {
		return svc.Put(ctx, &storagepb.PutRequest{
			NamespaceId: namespaceID.String(),
			Key:         []byte("alpha"),
			Value:       []byte("one"),
			Crc:         uint32Ptr(0xDEADBEEF),
		})
	})
	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.InvalidArgument, st.Code())

	_, err = callAs(t, tenantID, func(ctx context.Context) (interface{}, error) {
		return svc.Get(ctx, &storagepb.GetRequest{NamespaceId: namespaceID.String(), Key: []byte("alpha")})
	})
	st, ok = status.FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.NotFound, st.Code(), "key must not exist after rejected put")
}

// Scenario 3: a namespace with zero partitions registered reports NotFound,
// not an empty partition list.
func TestScenarioUnknownPartitionIsNotFound(t *testing.T) {
	svc := newNode(t)
	tenantID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	namespaceID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	_, err := callAs(t, tenantID, func(ctx context.Context) (interface{}, error) {
		return svc.Put(ctx, &storagepb.PutRequest{
			NamespaceId: namespaceID.String(),
			Key:         []byte("alpha"),
			Value:       []byte("one"),
		})
	})
	st, ok := status.FromError(err)
	require.True(t, ok)
	require.Equal(t, codes.NotFound, st.Code())
}

// Scenario 4: list_keys honors start_at as an inclusive lower bound.
func TestScenarioListWithStartAt(t *testing.T) {
	tenantID := uuid.New()
	namespaceID := uuid.New()
	dir := t.TempDir()

	lookup, err := catalog.Load(dir)
	require.NoError(t, err)
	svc := storageservice.New(lookup)
	addPartition(t, lookup, tenantID, namespaceID, dir)

	for _, k := range []string{"a", "b", "c", "d"} {
		_, err := callAs(t, tenantID, func(ctx context.Context) (interface{}, error) {
			return svc.Put(ctx, &storagepb.PutRequest{
				NamespaceId: namespaceID.String(),
				Key:         []byte(k),
				Value:       []byte(k),
			})
		})
		require.NoError(t, err)
	}

	listResp, err := callAs(t, tenantID, func(ctx context.Context) (interface{}, error) {
		return svc.ListKeys(ctx, &storagepb.ListKeysRequest{
			NamespaceId: namespaceID.String(),
			StartKey:    []byte("b"),
			Limit:       uint32Ptr(2),
		})
	})
	require.NoError(t, err)
	got := listResp.(*storagepb.ListKeysResponse)
	require.Len(t, got.Keys, 2)
	require.Equal(t, "b", string(got.Keys[0].Key))
	require.Equal(t, "c", string(got.Keys[1].Key))
}

// Scenario 5: adding a fourth partition to a ring of three moves no more
// than 35% of a 1000-key sample (spec's ⌈M/(N+1)⌉ + o(M) bound).
func TestScenarioBoundedMovementSpotCheck(t *testing.T) {
	const before, after, numKeys = 3, 4, 1000

	keys := make([][]byte, numKeys)
	for i := range keys {
		keys[i] = []byte(uuid.New().String())
	}

	beforeSlots := make([]int32, numKeys)
	for i, k := range keys {
		beforeSlots[i] = hashring.Slot(k, before)
	}

	moved := 0
	for i, k := range keys {
		if hashring.Slot(k, after) != beforeSlots[i] {
			moved++
		}
	}

	require.LessOrEqual(t, moved, 350)
}

// Scenario 6: add_partition survives a process restart (catalog reload from
// disk) with identical sequence identity, order, and routing.
func TestScenarioRestartRecovery(t *testing.T) {
	tenantID := uuid.New()
	namespaceID := uuid.New()
	dir := t.TempDir()

	lookup1, err := catalog.Load(dir)
	require.NoError(t, err)
	p1, err := partition.Open(uuid.New(), namespaceID, tenantID, dir)
	require.NoError(t, err)
	require.NoError(t, lookup1.AddPartition(p1))
	p2, err := partition.Open(uuid.New(), namespaceID, tenantID, dir)
	require.NoError(t, err)
	require.NoError(t, lookup1.AddPartition(p2))

	probes := make([][]byte, 50)
	before := make([]int32, len(probes))
	for i := range probes {
		probes[i] = []byte(uuid.New().String())
		before[i] = hashring.Slot(probes[i], 2)
	}

	_ = p1.Close()
	_ = p2.Close()

	lookup2, err := catalog.Load(dir)
	require.NoError(t, err)

	restarted, ok := lookup2.Partitions(tenantID, namespaceID)
	require.True(t, ok)
	require.Len(t, restarted, 2)
	require.Equal(t, p1.ID, restarted[0].ID)
	require.Equal(t, p2.ID, restarted[1].ID)

	for i, probe := range probes {
		got, ok := lookup2.GetPartitionForKey(tenantID, namespaceID, probe)
		require.True(t, ok)
		wantID := p1.ID
		if before[i] == 1 {
			wantID = p2.ID
		}
		require.Equal(t, wantID, got.ID, "probe %d routing changed across restart", i)
	}
}
