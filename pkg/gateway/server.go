package gateway

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/cuemby/kvstore/internal/storagepb"
	"github.com/cuemby/kvstore/pkg/auth"
	"github.com/cuemby/kvstore/pkg/gatewaycatalog"
	"github.com/cuemby/kvstore/pkg/metrics"
)

// tenantLookup is the subset of gatewaycatalog.TenantRepo the gateway needs.
// Accepting the interface rather than the concrete type lets handler tests
// run against a fake instead of a live Postgres instance.
type tenantLookup interface {
	Get(ctx context.Context, name string) (gatewaycatalog.Tenant, error)
}

// namespaceLookup is the subset of gatewaycatalog.NamespaceRepo the gateway
// needs.
type namespaceLookup interface {
	Get(ctx context.Context, tenantID uuid.UUID, name string) (gatewaycatalog.Namespace, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]gatewaycatalog.Namespace, error)
}

// storageCaller is the subset of StorageClient the gateway needs, letting
// handler tests stub out the RPC hop to the storage node.
type storageCaller interface {
	Put(ctx context.Context, bearer string, req *storagepb.PutRequest) (*storagepb.PutResponse, error)
	Get(ctx context.Context, bearer string, req *storagepb.GetRequest) (*storagepb.GetResponse, error)
	ListKeys(ctx context.Context, bearer string, req *storagepb.ListKeysRequest) (*storagepb.ListKeysResponse, error)
	Delete(ctx context.Context, bearer string, req *storagepb.DeleteRequest) (*storagepb.DeleteResponse, error)
}

// Server is the gateway's HTTP front door.
type Server struct {
	tenants    tenantLookup
	namespaces namespaceLookup
	issuer     auth.JwtIssuer
	validator  auth.JwtValidator
	storage    storageCaller
}

// Config bundles Server's collaborators.
type Config struct {
	Tenants    *gatewaycatalog.TenantRepo
	Namespaces *gatewaycatalog.NamespaceRepo
	Issuer     auth.JwtIssuer
	Validator  auth.JwtValidator
	Storage    *StorageClient
}

// NewServer builds a Server from cfg.
func NewServer(cfg Config) *Server {
	return &Server{
		tenants:    cfg.Tenants,
		namespaces: cfg.Namespaces,
		issuer:     cfg.Issuer,
		validator:  cfg.Validator,
		storage:    cfg.Storage,
	}
}

// Handler builds the routed http.Handler for this server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /tokens", instrument("issue_token", s.handleIssueToken))
	mux.HandleFunc("GET /namespaces", instrument("list_namespaces", s.handleListNamespaces))
	mux.HandleFunc("PUT /namespace/{namespace}/keys/{key}", instrument("put_key", s.handlePutKey))
	mux.HandleFunc("GET /namespace/{namespace}/keys/{key}", instrument("get_key", s.handleGetKey))
	mux.HandleFunc("DELETE /namespace/{namespace}/keys/{key}", instrument("delete_key", s.handleDeleteKey))
	mux.HandleFunc("GET /namespace/{namespace}/keys", instrument("list_keys", s.handleListKeys))
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// statusRecorder captures the status code a handler wrote, defaulting to 200
// when the handler never calls WriteHeader explicitly.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// instrument wraps a handler with metrics.APIRequestsTotal/APIRequestDuration
// under the given route label.
func instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		timer := metrics.NewTimer()
		h(rec, r)
		timer.ObserveDurationVec(metrics.APIRequestDuration, route)
		metrics.APIRequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}
