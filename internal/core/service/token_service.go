package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fieldworks/agrifield-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies HS256 bearer tokens. Each token carries
// exactly one role-identifying claim (farmerId, crpId, expertId or
// supervisorId) plus issued-at and expiry.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (s *TokenService) Issue(role domain.Role, id string) (string, error) {
	claim := role.Claim()
	if claim == "" {
		return "", domain.ErrTokenMalformed
	}
	now := s.now()
	claims := jwt.MapClaims{
		claim: id,
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks the signature and expiry, then inspects which single role
// claim is present. Expired tokens are reported distinctly from malformed
// ones.
func (s *TokenService) Verify(raw string) (domain.Role, string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", "", domain.ErrTokenExpired
		}
		return "", "", domain.ErrTokenMalformed
	}
	if !tkn.Valid {
		return "", "", domain.ErrTokenMalformed
	}

	for _, role := range domain.Roles {
		if id, ok := claims[role.Claim()].(string); ok && id != "" {
			return role, id, nil
		}
	}
	return "", "", domain.ErrTokenMalformed
}
