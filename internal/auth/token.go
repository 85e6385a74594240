package auth

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// Claims is the structure carried inside a portal token.
type Claims struct {
	ClientID   string `json:"client_id"`
	Username   string `json:"username"`
	AccessType string `json:"accessType"`
	Timestamp  int64  `json:"timestamp"` // issue time, unix milliseconds
	Expires    int64  `json:"expires"`   // expiry, unix milliseconds
}

var (
	ErrInvalidToken = errors.New("invalid token format")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenCodec is the trust boundary for portal tokens. Handlers only see
// this interface, so the unsigned legacy scheme and a signed scheme are
// interchangeable via configuration.
type TokenCodec interface {
	Issue(claims Claims) (string, error)
	Decode(token string) (Claims, error)
}

// unsignedCodec reproduces the legacy wire format: base64 of a JSON claims
// blob, no signature. Anyone can forge an equivalent token, and the expires
// field is carried but never checked — a known weakness kept for
// compatibility; use the signed codec to close it.
type unsignedCodec struct{}

// NewUnsignedCodec returns the legacy base64 token codec.
func NewUnsignedCodec() TokenCodec {
	return unsignedCodec{}
}

func (unsignedCodec) Issue(claims Claims) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

func (unsignedCodec) Decode(token string) (Claims, error) {
	payload, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Claims{}, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, ErrInvalidToken
	}
	if claims.ClientID == "" {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
