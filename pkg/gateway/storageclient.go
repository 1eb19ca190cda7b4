// Package gateway implements the HTTP front door for tenants (spec §4.5):
// token issuance, namespace ownership checks, and translation between the
// HTTP shape and the Storage RPC shape.
package gateway

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/cuemby/kvstore/internal/storagepb"
)

// StorageClient wraps a connection to the storage node, forwarding the
// caller's bearer token on every call instead of the teacher's mTLS
// handshake (spec §6 specifies JWT bearer auth, not mTLS, between
// components).
type StorageClient struct {
	conn   *grpc.ClientConn
	client storagepb.StorageClient
}

// NewStorageClient dials the storage node at addr.
func NewStorageClient(addr string) (*StorageClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial storage node %s: %w", addr, err)
	}
	return &StorageClient{
		conn:   conn,
		client: storagepb.NewStorageClient(conn),
	}, nil
}

// Close releases the underlying connection.
func (c *StorageClient) Close() error {
	return c.conn.Close()
}

func withBearer(ctx context.Context, bearer string) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+bearer)
}

// Put forwards bearer and crc (if provided) verbatim, per spec §4.5.
func (c *StorageClient) Put(ctx context.Context, bearer string, req *storagepb.PutRequest) (*storagepb.PutResponse, error) {
	return c.client.Put(withBearer(ctx, bearer), req)
}

func (c *StorageClient) Get(ctx context.Context, bearer string, req *storagepb.GetRequest) (*storagepb.GetResponse, error) {
	return c.client.Get(withBearer(ctx, bearer), req)
}

func (c *StorageClient) ListKeys(ctx context.Context, bearer string, req *storagepb.ListKeysRequest) (*storagepb.ListKeysResponse, error) {
	return c.client.ListKeys(withBearer(ctx, bearer), req)
}

func (c *StorageClient) Delete(ctx context.Context, bearer string, req *storagepb.DeleteRequest) (*storagepb.DeleteResponse, error) {
	return c.client.Delete(withBearer(ctx, bearer), req)
}
