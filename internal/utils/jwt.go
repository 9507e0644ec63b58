// Package utils provides helper functions for token creation and hashing.
package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken is a signed HS256 JWT along with its expiry. The token
// carries the user id as subject plus name and role claims, so handlers
// can personalize responses without a user lookup.
type AccessToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expires"`
}

// NewAccessToken builds and signs an HS256 JWT for a user. Claims:
// sub (user id), name, role, exp and iat.
func NewAccessToken(secret, userID, name, role string, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  userID,
		"name": name,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}
