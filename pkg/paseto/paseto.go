package paseto

import (
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"parlour-api/models"
)

const (
	tokenIssuer   = "parlour-api"
	tokenAudience = "parlour-dashboard"
)

var ErrInvalidKey = errors.New("paseto key must be 32 bytes after base64 decoding")

// PasetoMaker issues and validates v2.local tokens with a symmetric key.
type PasetoMaker struct {
	paseto       *paseto.V2
	symmetricKey []byte
	ttl          time.Duration
	now          func() time.Time
}

// NewPasetoMaker accepts the key as URL or standard base64, with or without padding.
func NewPasetoMaker(secretBase64 string, ttl time.Duration) (*PasetoMaker, error) {
	key, err := DecodeKey(secretBase64)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &PasetoMaker{
		paseto:       paseto.NewV2(),
		symmetricKey: key,
		ttl:          ttl,
		now:          time.Now,
	}, nil
}

// DecodeKey decodes a base64 secret and checks it is exactly 32 bytes long.
func DecodeKey(secretBase64 string) ([]byte, error) {
	encodings := []*base64.Encoding{
		base64.URLEncoding,
		base64.RawURLEncoding,
		base64.StdEncoding,
		base64.RawStdEncoding,
	}
	var lastErr error
	for _, enc := range encodings {
		key, err := enc.DecodeString(secretBase64)
		if err != nil {
			lastErr = err
			continue
		}
		if len(key) != 32 {
			return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidKey, len(key))
		}
		return key, nil
	}
	return nil, fmt.Errorf("failed to decode paseto secret: %w", lastErr)
}

func (m *PasetoMaker) GenerateToken(user *models.User) (string, error) {
	now := m.now()
	token := paseto.JSONToken{
		Issuer:     tokenIssuer,
		Audience:   tokenAudience,
		Subject:    user.ID.Hex(),
		IssuedAt:   now,
		Expiration: now.Add(m.ttl),
		NotBefore:  now,
	}
	token.Set("email", user.Email)
	token.Set("role", user.Role)

	return m.paseto.Encrypt(m.symmetricKey, token, "")
}

func (m *PasetoMaker) ValidateToken(tokenString string) (*models.Claims, error) {
	var token paseto.JSONToken
	var footer string

	if err := m.paseto.Decrypt(tokenString, m.symmetricKey, &token, &footer); err != nil {
		return nil, fmt.Errorf("failed to decrypt paseto token: %w", err)
	}

	err := token.Validate(
		paseto.IssuedBy(tokenIssuer),
		paseto.ForAudience(tokenAudience),
		paseto.ValidAt(m.now()),
	)
	if err != nil {
		return nil, fmt.Errorf("token validation failed: %w", err)
	}

	userID, err := primitive.ObjectIDFromHex(token.Subject)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return &models.Claims{
		UserID: userID,
		Email:  token.Get("email"),
		Role:   token.Get("role"),
	}, nil
}
