package jwthelper

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/onedrop-app/onedrop-api/internal/domain"
)

const issuer = "onedrop-api"

var ErrInvalidToken = errors.New("invalid token")

// ActorClaims carries who is calling. It identifies an actor and nothing
// more; there is no login behind it.
type ActorClaims struct {
	jwt.RegisteredClaims
	Role          string `json:"role"`
	ParticipantID uint   `json:"pid"`
}

func GenerateToken(key []byte, actor domain.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := ActorClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   string(actor.Role) + ":" + strconv.FormatUint(uint64(actor.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role:          string(actor.Role),
		ParticipantID: actor.ID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, nil
}

// ParseToken verifies the signature and expiry and returns the actor.
// The system role is reserved for the sweeper and never accepted here.
func ParseToken(key []byte, tokenString string) (domain.Actor, error) {
	claims := &ActorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Actor{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return domain.Actor{}, ErrInvalidToken
	}

	role, err := domain.ParseRole(claims.Role)
	if err != nil || role == domain.RoleSystem {
		return domain.Actor{}, fmt.Errorf("%w: role %q", ErrInvalidToken, claims.Role)
	}
	if claims.ParticipantID == 0 {
		return domain.Actor{}, fmt.Errorf("%w: missing participant id", ErrInvalidToken)
	}

	return domain.Actor{Role: role, ID: claims.ParticipantID}, nil
}
