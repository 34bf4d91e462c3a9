package config

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

var ErrInvalidToken = errors.New("invalid token")

// JWT issues tokens that tie a client to the game session it created.
type JWT struct {
	secret        []byte
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

// NewJWT reads jwt.secret and jwt.lifetime. Without a secret a random one is
// generated, which is enough since sessions do not outlive the process.
func NewJWT(v *viper.Viper) (*JWT, error) {
	secret := []byte(v.GetString("jwt.secret"))
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("unable to generate JWT secret: %w", err)
		}
	}

	lifetime := v.GetDuration("jwt.lifetime")
	if lifetime <= 0 {
		return nil, fmt.Errorf("jwt.lifetime must be positive, got %s", lifetime)
	}

	j := &JWT{
		secret:        secret,
		signingMethod: jwt.SigningMethodHS256,
		tokenLifetime: lifetime,
	}

	return j, nil
}

func (j *JWT) Lifetime() time.Duration {
	return j.tokenLifetime
}

func (j *JWT) Sign(sessionID string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenLifetime)),
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.secret)
}

// SessionID validates tokenString and returns the session it was issued for.
func (j *JWT) SessionID(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.secret, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", fmt.Errorf("%w: malformed claims", ErrInvalidToken)
	}
	return claims.Subject, nil
}
