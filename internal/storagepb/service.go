package storagepb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	Storage_Put_FullMethodName              = "/kvstore.storage.v1.Storage/Put"
	Storage_Get_FullMethodName              = "/kvstore.storage.v1.Storage/Get"
	Storage_ListKeys_FullMethodName         = "/kvstore.storage.v1.Storage/ListKeys"
	Storage_Delete_FullMethodName           = "/kvstore.storage.v1.Storage/Delete"
	Storage_CreateNamespace_FullMethodName  = "/kvstore.storage.v1.Storage/CreateNamespace"
	Storage_DeleteNamespace_FullMethodName  = "/kvstore.storage.v1.Storage/DeleteNamespace"
	Storage_GetMetadata_FullMethodName      = "/kvstore.storage.v1.Storage/GetMetadata"
	Storage_MigrateToNewNode_FullMethodName = "/kvstore.storage.v1.Storage/MigrateToNewNode"
)

// StorageClient is the client API for the Storage service.
type StorageClient interface {
	Put(ctx context.Context, in *PutRequest, opts ...grpc.CallOption) (*PutResponse, error)
	Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error)
	ListKeys(ctx context.Context, in *ListKeysRequest, opts ...grpc.CallOption) (*ListKeysResponse, error)
	Delete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*DeleteResponse, error)
	CreateNamespace(ctx context.Context, in *CreateNamespaceRequest, opts ...grpc.CallOption) (*CreateNamespaceResponse, error)
	DeleteNamespace(ctx context.Context, in *DeleteNamespaceRequest, opts ...grpc.CallOption) (*DeleteNamespaceResponse, error)
	GetMetadata(ctx context.Context, in *GetMetadataRequest, opts ...grpc.CallOption) (*GetMetadataResponse, error)
	MigrateToNewNode(ctx context.Context, in *MigrateToNewNodeRequest, opts ...grpc.CallOption) (*MigrateToNewNodeResponse, error)
}

type storageClient struct {
	cc grpc.ClientConnInterface
}

// NewStorageClient builds a StorageClient over cc.
func NewStorageClient(cc grpc.ClientConnInterface) StorageClient {
	return &storageClient{cc}
}

func (c *storageClient) Put(ctx context.Context, in *PutRequest, opts ...grpc.CallOption) (*PutResponse, error) {
	out := new(PutResponse)
	if err := c.cc.Invoke(ctx, Storage_Put_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error) {
	out := new(GetResponse)
	if err := c.cc.Invoke(ctx, Storage_Get_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) ListKeys(ctx context.Context, in *ListKeysRequest, opts ...grpc.CallOption) (*ListKeysResponse, error) {
	out := new(ListKeysResponse)
	if err := c.cc.Invoke(ctx, Storage_ListKeys_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) Delete(ctx context.Context, in *DeleteRequest, opts ...grpc.CallOption) (*DeleteResponse, error) {
	out := new(DeleteResponse)
	if err := c.cc.Invoke(ctx, Storage_Delete_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) CreateNamespace(ctx context.Context, in *CreateNamespaceRequest, opts ...grpc.CallOption) (*CreateNamespaceResponse, error) {
	out := new(CreateNamespaceResponse)
	if err := c.cc.Invoke(ctx, Storage_CreateNamespace_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) DeleteNamespace(ctx context.Context, in *DeleteNamespaceRequest, opts ...grpc.CallOption) (*DeleteNamespaceResponse, error) {
	out := new(DeleteNamespaceResponse)
	if err := c.cc.Invoke(ctx, Storage_DeleteNamespace_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) GetMetadata(ctx context.Context, in *GetMetadataRequest, opts ...grpc.CallOption) (*GetMetadataResponse, error) {
	out := new(GetMetadataResponse)
	if err := c.cc.Invoke(ctx, Storage_GetMetadata_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *storageClient) MigrateToNewNode(ctx context.Context, in *MigrateToNewNodeRequest, opts ...grpc.CallOption) (*MigrateToNewNodeResponse, error) {
	out := new(MigrateToNewNodeResponse)
	if err := c.cc.Invoke(ctx, Storage_MigrateToNewNode_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// StorageServer is the server API for the Storage service.
type StorageServer interface {
	Put(context.Context, *PutRequest) (*PutResponse, error)
	Get(context.Context, *GetRequest) (*GetResponse, error)
	ListKeys(context.Context, *ListKeysRequest) (*ListKeysResponse, error)
	Delete(context.Context, *DeleteRequest) (*DeleteResponse, error)
	CreateNamespace(context.Context, *CreateNamespaceRequest) (*CreateNamespaceResponse, error)
	DeleteNamespace(context.Context, *DeleteNamespaceRequest) (*DeleteNamespaceResponse, error)
	GetMetadata(context.Context, *GetMetadataRequest) (*GetMetadataResponse, error)
	MigrateToNewNode(context.Context, *MigrateToNewNodeRequest) (*MigrateToNewNodeResponse, error)
}

// UnimplementedStorageServer provides the declared-but-not-implemented
// extensions (spec §4.4) so a server embedding it only needs to implement
// Put/Get/ListKeys/Delete.
type UnimplementedStorageServer struct{}

func (UnimplementedStorageServer) Put(context.Context, *PutRequest) (*PutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Put not implemented")
}
func (UnimplementedStorageServer) Get(context.Context, *GetRequest) (*GetResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Get not implemented")
}
func (UnimplementedStorageServer) ListKeys(context.Context, *ListKeysRequest) (*ListKeysResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListKeys not implemented")
}
func (UnimplementedStorageServer) Delete(context.Context, *DeleteRequest) (*DeleteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Delete not implemented")
}
func (UnimplementedStorageServer) CreateNamespace(context.Context, *CreateNamespaceRequest) (*CreateNamespaceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateNamespace not implemented")
}
func (UnimplementedStorageServer) DeleteNamespace(context.Context, *DeleteNamespaceRequest) (*DeleteNamespaceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteNamespace not implemented")
}
func (UnimplementedStorageServer) GetMetadata(context.Context, *GetMetadataRequest) (*GetMetadataResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMetadata not implemented")
}
func (UnimplementedStorageServer) MigrateToNewNode(context.Context, *MigrateToNewNodeRequest) (*MigrateToNewNodeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method MigrateToNewNode not implemented")
}

// RegisterStorageServer registers srv with s.
func RegisterStorageServer(s grpc.ServiceRegistrar, srv StorageServer) {
	s.RegisterService(&Storage_ServiceDesc, srv)
}

func _Storage_Put_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PutRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).Put(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Storage_Put_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).Put(ctx, req.(*PutRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Storage_Get_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Storage_Get_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).Get(ctx, req.(*GetRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Storage_ListKeys_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ListKeysRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).ListKeys(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Storage_ListKeys_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).ListKeys(ctx, req.(*ListKeysRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Storage_Delete_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).Delete(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Storage_Delete_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).Delete(ctx, req.(*DeleteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Storage_CreateNamespace_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(CreateNamespaceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).CreateNamespace(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Storage_CreateNamespace_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).CreateNamespace(ctx, req.(*CreateNamespaceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Storage_DeleteNamespace_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(DeleteNamespaceRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).DeleteNamespace(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Storage_DeleteNamespace_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).DeleteNamespace(ctx, req.(*DeleteNamespaceRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Storage_GetMetadata_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetMetadataRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).GetMetadata(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Storage_GetMetadata_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).GetMetadata(ctx, req.(*GetMetadataRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _Storage_MigrateToNewNode_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(MigrateToNewNodeRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(StorageServer).MigrateToNewNode(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Storage_MigrateToNewNode_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(StorageServer).MigrateToNewNode(ctx, req.(*MigrateToNewNodeRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// Storage_ServiceDesc mirrors what protoc-gen-go-grpc emits for the
// Storage service.
var Storage_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "kvstore.storage.v1.Storage",
	HandlerType: (*StorageServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Put", Handler: _Storage_Put_Handler},
		{MethodName: "Get", Handler: _Storage_Get_Handler},
		{MethodName: "ListKeys", Handler: _Storage_ListKeys_Handler},
		{MethodName: "Delete", Handler: _Storage_Delete_Handler},
		{MethodName: "CreateNamespace", Handler: _Storage_CreateNamespace_Handler},
		{MethodName: "DeleteNamespace", Handler: _Storage_DeleteNamespace_Handler},
		{MethodName: "GetMetadata", Handler: _Storage_GetMetadata_Handler},
		{MethodName: "MigrateToNewNode", Handler: _Storage_MigrateToNewNode_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "storage.proto",
}
