package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cuemby/kvstore/internal/storagepb"
	"github.com/cuemby/kvstore/pkg/auth"
	"github.com/cuemby/kvstore/pkg/log"
	"github.com/cuemby/kvstore/pkg/metrics"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// httpStatusForRPC maps an RPC error to the analogous HTTP status, mirroring
// spec §7's taxonomy at the HTTP boundary.
func httpStatusForRPC(err error) int {
	st, ok := status.FromError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch st.Code() {
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.DataLoss:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// authenticate extracts and validates the caller's bearer token, returning
// the raw token (to forward verbatim, per spec §4.5) and the tenant it
// names.
func (s *Server) authenticate(r *http.Request) (token string, identity auth.Identity, ok bool) {
	token, err := auth.ParseBearer(r.Header.Get("Authorization"))
	if err != nil {
		metrics.AuthFailuresTotal.WithLabelValues("missing_bearer").Inc()
		return "", auth.Identity{}, false
	}
	identity, err = s.validator.Validate(token)
	if err != nil {
		log.WithComponent("gateway").Warn().Err(err).Msg("token validation failed")
		metrics.AuthFailuresTotal.WithLabelValues("invalid_token").Inc()
		return "", auth.Identity{}, false
	}
	return token, identity, true
}

type issueTokenRequest struct {
	TenantName string `json:"tenant_name"`
	Company    string `json:"company"`
}

type issueTokenResponse struct {
	Token string `json:"token"`
}

// handleIssueToken looks up a tenant by name and mints an RS256 JWT whose
// subject is the tenant UUID (spec §4.5).
func (s *Server) handleIssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	tenant, err := s.tenants.Get(r.Context(), req.TenantName)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown tenant")
		return
	}

	token, err := s.issuer.Issue(tenant.ID, req.Company)
	if err != nil {
		log.WithComponent("gateway").Error().Err(err).Msg("failed to issue token")
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	metrics.TokensIssuedTotal.Inc()
	writeJSON(w, http.StatusOK, issueTokenResponse{Token: token})
}

type namespaceResponse struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// handleListNamespaces lists the authenticated tenant's namespaces.
func (s *Server) handleListNamespaces(w http.ResponseWriter, r *http.Request) {
	_, identity, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	namespaces, err := s.namespaces.List(r.Context(), identity.TenantID)
	if err != nil {
		log.WithComponent("gateway").Error().Err(err).Msg("failed to list namespaces")
		writeError(w, http.StatusInternalServerError, "failed to list namespaces")
		return
	}

	out := make([]namespaceResponse, len(namespaces))
	for i, ns := range namespaces {
		out[i] = namespaceResponse{Name: ns.Name, ID: ns.ID.String()}
	}
	writeJSON(w, http.StatusOK, out)
}

// resolveNamespace verifies tenant ownership of the named namespace (spec
// §4.5) and returns its UUID for the RPC call.
func (s *Server) resolveNamespace(r *http.Request, tenantID uuid.UUID, name string) (string, bool) {
	ns, err := s.namespaces.Get(r.Context(), tenantID, name)
	if err != nil {
		return "", false
	}
	return ns.ID.String(), true
}

type putKeyRequest struct {
	Value string  `json:"value"`
	Crc   *uint32 `json:"crc,omitempty"`
}

type putKeyResponse struct {
	Version uint32 `json:"version"`
	Crc     uint32 `json:"crc"`
}

func (s *Server) handlePutKey(w http.ResponseWriter, r *http.Request) {
	token, identity, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	namespaceID, ok := s.resolveNamespace(r, identity.TenantID, r.PathValue("namespace"))
	if !ok {
		writeError(w, http.StatusForbidden, "namespace not owned by tenant")
		return
	}

	var req putKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	resp, err := s.storage.Put(r.Context(), token, &storagepb.PutRequest{
		NamespaceId: namespaceID,
		Key:         []byte(r.PathValue("key")),
		Value:       []byte(req.Value),
		Crc:         req.Crc,
	})
	if err != nil {
		writeError(w, httpStatusForRPC(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, putKeyResponse{Version: resp.Version, Crc: resp.Crc})
}

type getKeyResponse struct {
	Key     string `json:"key"`
	Value   string `json:"value"`
	Crc     uint32 `json:"crc"`
	Version uint32 `json:"version"`
}

func (s *Server) handleGetKey(w http.ResponseWriter, r *http.Request) {
	token, identity, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	namespaceID, ok := s.resolveNamespace(r, identity.TenantID, r.PathValue("namespace"))
	if !ok {
		writeError(w, http.StatusForbidden, "namespace not owned by tenant")
		return
	}

	key := r.PathValue("key")
	resp, err := s.storage.Get(r.Context(), token, &storagepb.GetRequest{
		NamespaceId: namespaceID,
		Key:         []byte(key),
	})
	if err != nil {
		writeError(w, httpStatusForRPC(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, getKeyResponse{
		Key:     key,
		Value:   string(resp.Value),
		Crc:     resp.Metadata.Crc,
		Version: resp.Metadata.Version,
	})
}

func (s *Server) handleDeleteKey(w http.ResponseWriter, r *http.Request) {
	token, identity, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	namespaceID, ok := s.resolveNamespace(r, identity.TenantID, r.PathValue("namespace"))
	if !ok {
		writeError(w, http.StatusForbidden, "namespace not owned by tenant")
		return
	}

	_, err := s.storage.Delete(r.Context(), token, &storagepb.DeleteRequest{
		NamespaceId: namespaceID,
		Key:         []byte(r.PathValue("key")),
	})
	if err != nil {
		writeError(w, httpStatusForRPC(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type listKeysResponseRow struct {
	Key     string `json:"key"`
	Crc     uint32 `json:"crc"`
	Version uint32 `json:"version"`
}

func (s *Server) handleListKeys(w http.ResponseWriter, r *http.Request) {
	token, identity, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing or invalid bearer token")
		return
	}

	namespaceID, ok := s.resolveNamespace(r, identity.TenantID, r.PathValue("namespace"))
	if !ok {
		writeError(w, http.StatusForbidden, "namespace not owned by tenant")
		return
	}

	req := &storagepb.ListKeysRequest{NamespaceId: namespaceID}
	if start := r.URL.Query().Get("start_key"); start != "" {
		req.StartKey = []byte(start)
	}

	resp, err := s.storage.ListKeys(r.Context(), token, req)
	if err != nil {
		writeError(w, httpStatusForRPC(err), err.Error())
		return
	}

	out := make([]listKeysResponseRow, len(resp.Keys))
	for i, k := range resp.Keys {
		out[i] = listKeysResponseRow{Key: string(k.Key), Crc: k.Metadata.Crc, Version: k.Metadata.Version}
	}
	writeJSON(w, http.StatusOK, out)
}
