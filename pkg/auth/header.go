package auth

import (
	"errors"
	"strings"
)

// ErrMissingBearer is returned when the Authorization header is absent,
// empty, or does not carry a second whitespace-delimited token.
var ErrMissingBearer = errors.New("missing bearer token")

// ParseBearer extracts the JWT from an Authorization header value. Per
// spec §6 it is case and whitespace tolerant: it splits on whitespace and
// takes the second token, regardless of whether the first reads "Bearer",
// "bearer", or anything else.
func ParseBearer(header string) (string, error) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return "", ErrMissingBearer
	}
	return fields[1], nil
}
