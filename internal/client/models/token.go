// Package models defines the wire types exchanged with the reminder API
// and the token pair held by the local session.
package models

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair is the bearer credential pair issued by the login endpoint.
// The access token is short-lived; the refresh token outlives it and is
// exchanged for new access tokens. Both are opaque to the client: expiry
// is discovered only by a rejected authenticated call.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

var ErrMalformedToken = errors.New("malformed token")

// AccessClaims is the decoded (unverified) payload of an access token.
// It exists for display purposes only; nothing in the session lifecycle
// gates on it, since the server is the sole authority on token validity.
type AccessClaims struct {
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// PeekAccessClaims decodes the claims of an access token without verifying
// its signature. Claims the token does not carry are left zero.
func PeekAccessClaims(token string) (*AccessClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrMalformedToken
	}

	out := &AccessClaims{}
	if v, ok := claims["user_id"].(float64); ok {
		out.UserID = int64(v)
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		out.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}
