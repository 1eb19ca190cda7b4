// Package rpcauth wires pkg/auth into a gRPC unary server interceptor: the
// AuthInterceptor that guards every Storage RPC (spec §4.3).
package rpcauth

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/cuemby/kvstore/pkg/auth"
	"github.com/cuemby/kvstore/pkg/log"
)

type identityKey struct{}

// IdentityFromContext recovers the Identity the interceptor attached to
// ctx. Absence is a programming error: every handler behind the
// interceptor is guaranteed one.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey{}).(auth.Identity)
	return identity, ok
}

func withIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// AuthInterceptor extracts the Authorization metadata entry, validates the
// bearer token against validator, and attaches the resulting Identity to
// the request context before invoking the handler. A missing header
// signals Unauthenticated; a rejected token signals NotFound, per spec §7's
// error taxonomy (token rejection shares NotFound with absent keys and
// partitions — PermissionDenied is reserved for namespace-ownership
// failures, handled separately in pkg/gateway).
func AuthInterceptor(validator auth.JwtValidator) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing authorization metadata")
		}

		values := md.Get("authorization")
		if len(values) == 0 {
			return nil, status.Error(codes.Unauthenticated, "missing authorization header")
		}

		token, err := auth.ParseBearer(values[0])
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "malformed authorization header")
		}

		identity, err := validator.Validate(token)
		if err != nil {
			log.WithComponent("rpcauth").Warn().
				Str("method", info.FullMethod).
				Str("bearer_digest", digestBearer(token)).
				Msg("token validation failed")
			return nil, status.Error(codes.NotFound, "invalid bearer token")
		}

		return handler(withIdentity(ctx, identity), req)
	}
}
