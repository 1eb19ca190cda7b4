package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cuemby/kvstore/internal/storagepb"
	"github.com/cuemby/kvstore/pkg/auth"
	"github.com/cuemby/kvstore/pkg/gatewaycatalog"
)

// fakeTenants implements tenantLookup over an in-memory map, keyed by name.
type fakeTenants struct {
	byName map[string]gatewaycatalog.Tenant
}

func (f *fakeTenants) Get(_ context.Context, name string) (gatewaycatalog.Tenant, error) {
	t, ok := f.byName[name]
	if !ok {
		return gatewaycatalog.Tenant{}, errors.New("unknown tenant")
	}
	return t, nil
}

// fakeNamespaces implements namespaceLookup, scoping namespaces by tenant.
type fakeNamespaces struct {
	byTenant map[uuid.UUID][]gatewaycatalog.Namespace
}

func (f *fakeNamespaces) Get(_ context.Context, tenantID uuid.UUID, name string) (gatewaycatalog.Namespace, error) {
	for _, ns := range f.byTenant[tenantID] {
		if ns.Name == name {
			return ns, nil
		}
	}
	return gatewaycatalog.Namespace{}, errors.New("unknown namespace")
}

func (f *fakeNamespaces) List(_ context.Context, tenantID uuid.UUID) ([]gatewaycatalog.Namespace, error) {
	return f.byTenant[tenantID], nil
}

// fakeStorage implements storageCaller, recording the last request seen so
// tests can assert on what the gateway forwarded.
type fakeStorage struct {
	putResp    *storagepb.PutResponse
	getResp    *storagepb.GetResponse
	listResp   *storagepb.ListKeysResponse
	deleteResp *storagepb.DeleteResponse
	err        error
	lastPut    *storagepb.PutRequest
	lastGet    *storagepb.GetRequest
	lastList   *storagepb.ListKeysRequest
	lastDelete *storagepb.DeleteRequest
	lastBearer string
}

func (f *fakeStorage) Put(_ context.Context, bearer string, req *storagepb.PutRequest) (*storagepb.PutResponse, error) {
	f.lastPut, f.lastBearer = req, bearer
	if f.err != nil {
		return nil, f.err
	}
	return f.putResp, nil
}

func (f *fakeStorage) Get(_ context.Context, bearer string, req *storagepb.GetRequest) (*storagepb.GetResponse, error) {
	f.lastGet, f.lastBearer = req, bearer
	if f.err != nil {
		return nil, f.err
	}
	return f.getResp, nil
}

func (f *fakeStorage) ListKeys(_ context.Context, bearer string, req *storagepb.ListKeysRequest) (*storagepb.ListKeysResponse, error) {
	f.lastList, f.lastBearer = req, bearer
	if f.err != nil {
		return nil, f.err
	}
	return f.listResp, nil
}

func (f *fakeStorage) Delete(_ context.Context, bearer string, req *storagepb.DeleteRequest) (*storagepb.DeleteResponse, error) {
	f.lastDelete, f.lastBearer = req, bearer
	if f.err != nil {
		return nil, f.err
	}
	return f.deleteResp, nil
}

// fakeIssuer always returns a fixed token string.
type fakeIssuer struct {
	token string
	err   error
}

func (f *fakeIssuer) Issue(uuid.UUID, string) (string, error) {
	return f.token, f.err
}

// fakeValidator accepts exactly one bearer token, resolving it to identity.
type fakeValidator struct {
	accept   string
	identity auth.Identity
}

func (f *fakeValidator) Validate(token string) (auth.Identity, error) {
	if token != f.accept {
		return auth.Identity{}, errors.New("invalid token")
	}
	return f.identity, nil
}

func newTestServer() (*Server, uuid.UUID, uuid.UUID, *fakeStorage) {
	tenantID := uuid.New()
	namespaceID := uuid.New()

	tenants := &fakeTenants{byName: map[string]gatewaycatalog.Tenant{
		"acme": {Name: "acme", ID: tenantID},
	}}
	namespaces := &fakeNamespaces{byTenant: map[uuid.UUID][]gatewaycatalog.Namespace{
		tenantID: {{Name: "default", ID: namespaceID}},
	}}
	storage := &fakeStorage{}
	validator := &fakeValidator{accept: "good-token", identity: auth.Identity{TenantID: tenantID}}
	issuer := &fakeIssuer{token: "minted-token"}

	s := &Server{
		tenants:    tenants,
		namespaces: namespaces,
		issuer:     issuer,
		validator:  validator,
		storage:    storage,
	}
	return s, tenantID, namespaceID, storage
}

func TestHandleHealth(t *testing.T) {
	s, _, _, _ := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestHandleIssueToken(t *testing.T) {
	s, _, _, _ := newTestServer()
	body, _ := json.Marshal(issueTokenRequest{TenantName: "acme", Company: "Acme Corp"})
	req := httptest.NewRequest(http.MethodPost, "/tokens", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var resp issueTokenResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Token != "minted-token" {
		t.Fatalf("token = %q, want minted-token", resp.Token)
	}
}

func TestHandleIssueTokenUnknownTenant(t *testing.T) {
	s, _, _, _ := newTestServer()
	body, _ := json.Marshal(issueTokenRequest{TenantName: "nobody", Company: "x"})
	req := httptest.NewRequest(http.MethodPost, "/tokens", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandlePutKeyMissingBearer(t *testing.T) {
	s, _, _, _ := newTestServer()
	req := httptest.NewRequest(http.MethodPut, "/namespace/default/keys/k1", bytes.NewReader([]byte(`{"value":"v1"}`)))
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHandlePutKeyUnknownNamespace(t *testing.T) {
	s, _, _, _ := newTestServer()
	req := httptest.NewRequest(http.MethodPut, "/namespace/missing/keys/k1", bytes.NewReader([]byte(`{"value":"v1"}`)))
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestHandlePutKeySuccess(t *testing.T) {
	s, _, namespaceID, storage := newTestServer()
	storage.putResp = &storagepb.PutResponse{Version: 1, Crc: 0x91A2A715}

	req := httptest.NewRequest(http.MethodPut, "/namespace/default/keys/k1", bytes.NewReader([]byte(`{"value":"v1"}`)))
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if storage.lastBearer != "good-token" {
		t.Fatalf("bearer forwarded = %q, want good-token", storage.lastBearer)
	}
	if storage.lastPut.NamespaceId != namespaceID.String() {
		t.Fatalf("namespace id forwarded = %q, want %s", storage.lastPut.NamespaceId, namespaceID)
	}
	var resp putKeyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Version != 1 || resp.Crc != 0x91A2A715 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandleGetKeyNotFound(t *testing.T) {
	s, _, _, storage := newTestServer()
	storage.err = status.Error(codes.NotFound, "no such key")

	req := httptest.NewRequest(http.MethodGet, "/namespace/default/keys/missing", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHandleGetKeySuccess(t *testing.T) {
	s, _, _, storage := newTestServer()
	storage.getResp = &storagepb.GetResponse{
		Value:    []byte("v1"),
		Metadata: &storagepb.Metadata{Crc: 42, Version: 3},
	}

	req := httptest.NewRequest(http.MethodGet, "/namespace/default/keys/k1", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var resp getKeyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Value != "v1" || resp.Crc != 42 || resp.Version != 3 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestHandleDeleteKeySuccess(t *testing.T) {
	s, _, _, storage := newTestServer()
	storage.deleteResp = &storagepb.DeleteResponse{}

	req := httptest.NewRequest(http.MethodDelete, "/namespace/default/keys/k1", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if storage.lastDelete == nil {
		t.Fatal("expected Delete to be forwarded")
	}
}

func TestHandleListKeys(t *testing.T) {
	s, _, _, storage := newTestServer()
	storage.listResp = &storagepb.ListKeysResponse{Keys: []*storagepb.KeyMetadata{
		{Key: []byte("a"), Metadata: &storagepb.Metadata{Crc: 1, Version: 1}},
		{Key: []byte("b"), Metadata: &storagepb.Metadata{Crc: 2, Version: 1}},
	}}

	req := httptest.NewRequest(http.MethodGet, "/namespace/default/keys?start_key=a", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	if storage.lastList.StartKey == nil || string(storage.lastList.StartKey) != "a" {
		t.Fatalf("start_key not forwarded, got %+v", storage.lastList)
	}
	var rows []listKeysResponseRow
	if err := json.NewDecoder(rec.Body).Decode(&rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}

func TestHandleListNamespaces(t *testing.T) {
	s, _, namespaceID, _ := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/namespaces", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", rec.Code, rec.Body.String())
	}
	var out []namespaceResponse
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 1 || out[0].ID != namespaceID.String() {
		t.Fatalf("unexpected namespaces %+v", out)
	}
}
