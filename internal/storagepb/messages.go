// Package storagepb contains the wire messages and gRPC service contract
// for the Storage service (see storage.proto in this directory for the
// IDL). The message types are hand-maintained rather than protoc-generated:
// each satisfies the legacy protoadapt.MessageV1 shape (Reset/String/
// ProtoMessage), which google.golang.org/protobuf and grpc-go's built-in
// proto codec both bridge into a real protoreflect.Message by parsing the
// struct's `protobuf:"..."` tags at marshal time — no .pb.go descriptor
// bytes or protoc invocation required. See DESIGN.md for the full
// rationale.
package storagepb

import "fmt"

// Metadata mirrors pkg/partition.Metadata on the wire.
type Metadata struct {
	Crc     uint32 `protobuf:"varint,1,opt,name=crc,proto3" json:"crc,omitempty"`
	Version uint32 `protobuf:"varint,2,opt,name=version,proto3" json:"version,omitempty"`
}

func (m *Metadata) Reset()         { *m = Metadata{} }
func (m *Metadata) String() string { return fmt.Sprintf("%+v", *m) }
func (*Metadata) ProtoMessage()    {}

// KeyMetadata is one list_keys result row.
type KeyMetadata struct {
	Key      []byte    `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
	Metadata *Metadata `protobuf:"bytes,2,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

func (m *KeyMetadata) Reset()         { *m = KeyMetadata{} }
func (m *KeyMetadata) String() string { return fmt.Sprintf("%+v", *m) }
func (*KeyMetadata) ProtoMessage()    {}

// PutRequest carries a write. Crc is optional: proto3 "optional" fields
// round-trip through a pointer so absence (nil) is distinguishable from an
// explicit zero, matching spec §4.4 step 3 ("if the client supplied a CRC
// ... if absent, logs a warning and proceeds with the computed CRC").
type PutRequest struct {
	NamespaceId string  `protobuf:"bytes,1,opt,name=namespace_id,json=namespaceId,proto3" json:"namespace_id,omitempty"`
	Key         []byte  `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
	Value       []byte  `protobuf:"bytes,3,opt,name=value,proto3" json:"value,omitempty"`
	Crc         *uint32 `protobuf:"varint,4,opt,name=crc,proto3,oneof" json:"crc,omitempty"`
}

func (m *PutRequest) Reset()         { *m = PutRequest{} }
func (m *PutRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*PutRequest) ProtoMessage()    {}

func (m *PutRequest) GetCrc() uint32 {
	if m != nil && m.Crc != nil {
		return *m.Crc
	}
	return 0
}

// PutResponse carries {version, crc, creation_time} per spec §6.
type PutResponse struct {
	Version      uint32 `protobuf:"varint,1,opt,name=version,proto3" json:"version,omitempty"`
	Crc          uint32 `protobuf:"varint,2,opt,name=crc,proto3" json:"crc,omitempty"`
	CreationTime int64  `protobuf:"varint,3,opt,name=creation_time,json=creationTime,proto3" json:"creation_time,omitempty"`
}

func (m *PutResponse) Reset()         { *m = PutResponse{} }
func (m *PutResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*PutResponse) ProtoMessage()    {}

// GetRequest. Version is declared on the wire per spec §6's method
// signature but unused by the baseline contract (no CAS/version-gated
// reads implemented; see pkg/partition's CurrentVersion and DESIGN.md's
// open-question notes).
type GetRequest struct {
	NamespaceId string  `protobuf:"bytes,1,opt,name=namespace_id,json=namespaceId,proto3" json:"namespace_id,omitempty"`
	Key         []byte  `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
	Version     *uint32 `protobuf:"varint,3,opt,name=version,proto3,oneof" json:"version,omitempty"`
}

func (m *GetRequest) Reset()         { *m = GetRequest{} }
func (m *GetRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*GetRequest) ProtoMessage()    {}

// GetResponse carries {key, value, metadata} per spec §6.
type GetResponse struct {
	Key      []byte    `protobuf:"bytes,1,opt,name=key,proto3" json:"key,omitempty"`
	Value    []byte    `protobuf:"bytes,2,opt,name=value,proto3" json:"value,omitempty"`
	Metadata *Metadata `protobuf:"bytes,3,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

func (m *GetResponse) Reset()         { *m = GetResponse{} }
func (m *GetResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*GetResponse) ProtoMessage()    {}

// ListKeysRequest. Limit is optional (defaults server-side per
// pkg/partition.defaultLimit when absent).
type ListKeysRequest struct {
	NamespaceId string  `protobuf:"bytes,1,opt,name=namespace_id,json=namespaceId,proto3" json:"namespace_id,omitempty"`
	Limit       *uint32 `protobuf:"varint,2,opt,name=limit,proto3,oneof" json:"limit,omitempty"`
	StartKey    []byte  `protobuf:"bytes,3,opt,name=start_key,json=startKey,proto3" json:"start_key,omitempty"`
}

func (m *ListKeysRequest) Reset()         { *m = ListKeysRequest{} }
func (m *ListKeysRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*ListKeysRequest) ProtoMessage()    {}

func (m *ListKeysRequest) GetLimit() uint32 {
	if m != nil && m.Limit != nil {
		return *m.Limit
	}
	return 0
}

// ListKeysResponse concatenates per-partition results in partition order
// (spec §4.4: "No global ordering across partitions is promised.").
type ListKeysResponse struct {
	Keys []*KeyMetadata `protobuf:"bytes,1,rep,name=keys,proto3" json:"keys,omitempty"`
}

func (m *ListKeysResponse) Reset()         { *m = ListKeysResponse{} }
func (m *ListKeysResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*ListKeysResponse) ProtoMessage()    {}

type DeleteRequest struct {
	NamespaceId string `protobuf:"bytes,1,opt,name=namespace_id,json=namespaceId,proto3" json:"namespace_id,omitempty"`
	Key         []byte `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
}

func (m *DeleteRequest) Reset()         { *m = DeleteRequest{} }
func (m *DeleteRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*DeleteRequest) ProtoMessage()    {}

type DeleteResponse struct{}

func (m *DeleteResponse) Reset()         { *m = DeleteResponse{} }
func (m *DeleteResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*DeleteResponse) ProtoMessage()    {}

// The remaining messages back methods declared on the Storage interface
// but not part of the baseline contract (spec §4.4): CreateNamespace,
// DeleteNamespace, GetMetadata, MigrateToNewNode.

type CreateNamespaceRequest struct {
	NamespaceId string `protobuf:"bytes,1,opt,name=namespace_id,json=namespaceId,proto3" json:"namespace_id,omitempty"`
}

func (m *CreateNamespaceRequest) Reset()         { *m = CreateNamespaceRequest{} }
func (m *CreateNamespaceRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*CreateNamespaceRequest) ProtoMessage()    {}

type CreateNamespaceResponse struct{}

func (m *CreateNamespaceResponse) Reset()         { *m = CreateNamespaceResponse{} }
func (m *CreateNamespaceResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*CreateNamespaceResponse) ProtoMessage()    {}

type DeleteNamespaceRequest struct {
	NamespaceId string `protobuf:"bytes,1,opt,name=namespace_id,json=namespaceId,proto3" json:"namespace_id,omitempty"`
}

func (m *DeleteNamespaceRequest) Reset()         { *m = DeleteNamespaceRequest{} }
func (m *DeleteNamespaceRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*DeleteNamespaceRequest) ProtoMessage()    {}

type DeleteNamespaceResponse struct{}

func (m *DeleteNamespaceResponse) Reset()         { *m = DeleteNamespaceResponse{} }
func (m *DeleteNamespaceResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*DeleteNamespaceResponse) ProtoMessage()    {}

type GetMetadataRequest struct {
	NamespaceId string `protobuf:"bytes,1,opt,name=namespace_id,json=namespaceId,proto3" json:"namespace_id,omitempty"`
	Key         []byte `protobuf:"bytes,2,opt,name=key,proto3" json:"key,omitempty"`
}

func (m *GetMetadataRequest) Reset()         { *m = GetMetadataRequest{} }
func (m *GetMetadataRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*GetMetadataRequest) ProtoMessage()    {}

type GetMetadataResponse struct {
	Metadata *Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
}

func (m *GetMetadataResponse) Reset()         { *m = GetMetadataResponse{} }
func (m *GetMetadataResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*GetMetadataResponse) ProtoMessage()    {}

type MigrateToNewNodeRequest struct {
	NamespaceId    string `protobuf:"bytes,1,opt,name=namespace_id,json=namespaceId,proto3" json:"namespace_id,omitempty"`
	TargetNodeAddr string `protobuf:"bytes,2,opt,name=target_node_addr,json=targetNodeAddr,proto3" json:"target_node_addr,omitempty"`
}

func (m *MigrateToNewNodeRequest) Reset()         { *m = MigrateToNewNodeRequest{} }
func (m *MigrateToNewNodeRequest) String() string { return fmt.Sprintf("%+v", *m) }
func (*MigrateToNewNodeRequest) ProtoMessage()    {}

type MigrateToNewNodeResponse struct{}

func (m *MigrateToNewNodeResponse) Reset()         { *m = MigrateToNewNodeResponse{} }
func (m *MigrateToNewNodeResponse) String() string { return fmt.Sprintf("%+v", *m) }
func (*MigrateToNewNodeResponse) ProtoMessage()    {}
