package auth

import (
	"crypto/rsa"
	"fmt"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// JwtIssuer mints bearer tokens for a tenant. Swappable per spec §9's
// dynamic-dispatch allowance (RSA today, another scheme later).
type JwtIssuer interface {
	Issue(tenantID uuid.UUID, company string) (string, error)
}

// RSAIssuer signs RS256 tokens with a single RSA private key.
type RSAIssuer struct {
	key *rsa.PrivateKey
}

// NewRSAIssuer builds a JwtIssuer backed by key.
func NewRSAIssuer(key *rsa.PrivateKey) *RSAIssuer {
	return &RSAIssuer{key: key}
}

// Issue builds and signs a token whose subject is tenantID, per spec §6:
// claims sub (UUID), iss (kvstore), company. No expiration is set; the
// baseline deliberately does not enforce token lifetime.
func (i *RSAIssuer) Issue(tenantID uuid.UUID, company string) (string, error) {
	token, err := jwt.NewBuilder().
		Subject(tenantID.String()).
		Issuer(Issuer).
		Claim("company", company).
		Build()
	if err != nil {
		return "", fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256(), i.key))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return string(signed), nil
}
