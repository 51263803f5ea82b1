// Package auth issues and verifies the fernet access tokens used to
// identify users on the API. Tokens carry only the user ID; everything
// else is loaded from storage on each request.
package auth

import (
	"fmt"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/fintrack/fintrack-backend/internal/apperrors"
)

// TokenTTL is how long an issued token stays valid.
const TokenTTL = 24 * time.Hour

// TokenIssuer creates and verifies fernet tokens with a single
// symmetric key.
type TokenIssuer struct {
	key *fernet.Key
}

// NewTokenIssuer creates a TokenIssuer from a base64-encoded 32-byte
// fernet key.
func NewTokenIssuer(encodedKey string) (*TokenIssuer, error) {
	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode fernet key: %w", err)
	}
	return &TokenIssuer{key: keys[0]}, nil
}

// GenerateKey creates a fresh random key encoded for use as FERNET_KEY.
// Used when no key is configured; tokens then do not survive restarts.
func GenerateKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate fernet key: %w", err)
	}
	return key.Encode(), nil
}

// Issue creates a token embedding the user ID.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(userID), t.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return string(token), nil
}

// Verify checks a token's signature and TTL and returns the embedded
// user ID. Returns apperrors.ErrInvalidToken for tampered or expired
// tokens.
func (t *TokenIssuer) Verify(token string) (string, error) {
	payload := fernet.VerifyAndDecrypt([]byte(token), TokenTTL, []*fernet.Key{t.key})
	if payload == nil {
		return "", apperrors.ErrInvalidToken
	}
	return string(payload), nil
}
