package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// signedCodec carries the same claims inside an HS256-signed JWT. Unlike
// the unsigned codec it rejects tampered tokens and enforces expiry.
type signedCodec struct {
	secret []byte
}

// NewSignedCodec returns a TokenCodec backed by HS256 JWTs.
func NewSignedCodec(secret string) TokenCodec {
	if secret == "" {
		panic("token secret cannot be empty")
	}
	return &signedCodec{secret: []byte(secret)}
}

// signedClaims mirrors Claims inside the JWT payload.
type signedClaims struct {
	ClientID   string `json:"client_id"`
	Username   string `json:"username"`
	AccessType string `json:"accessType"`
	Timestamp  int64  `json:"timestamp"`
	jwt.RegisteredClaims
}

func (c *signedCodec) Issue(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &signedClaims{
		ClientID:   claims.ClientID,
		Username:   claims.Username,
		AccessType: claims.AccessType,
		Timestamp:  claims.Timestamp,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.ClientID,
			IssuedAt:  jwt.NewNumericDate(time.UnixMilli(claims.Timestamp)),
			ExpiresAt: jwt.NewNumericDate(time.UnixMilli(claims.Expires)),
			Issuer:    "assessment-portal",
		},
	})
	return token.SignedString(c.secret)
}

func (c *signedCodec) Decode(tokenString string) (Claims, error) {
	claims := &signedClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrExpiredToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid || claims.ClientID == "" {
		return Claims{}, ErrInvalidToken
	}

	out := Claims{
		ClientID:   claims.ClientID,
		Username:   claims.Username,
		AccessType: claims.AccessType,
		Timestamp:  claims.Timestamp,
	}
	if claims.ExpiresAt != nil {
		out.Expires = claims.ExpiresAt.Time.UnixMilli()
	}
	return out, nil
}
