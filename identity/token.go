package identity

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/tasksync/backend/domain"
)

// TokenSigner mints the HS256 bearer tokens handed to the presentation
// layer after sign-in. Claims carry the full identity so protected
// handlers can rebuild the creator snapshot without a round-trip.
type TokenSigner struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenSigner creates a signer with the given secret and token TTL.
func NewTokenSigner(secret, issuer string, ttl time.Duration) *TokenSigner {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenSigner{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}
}

// Sign issues a token for the identity.
func (s *TokenSigner) Sign(id domain.Identity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":   id.UID,
		"name":  id.DisplayName,
		"email": id.Email,
		"iss":   s.issuer,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a token and recovers the identity from its claims.
func (s *TokenSigner) Parse(tokenString string) (domain.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrUnauthorized
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	id := domain.Identity{}
	if uid, ok := claims["uid"].(string); ok {
		id.UID = uid
	}
	if name, ok := claims["name"].(string); ok {
		id.DisplayName = name
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if id.UID == "" {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return id, nil
}
