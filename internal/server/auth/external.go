package auth

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/savvysnip/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ExternalClaims are the claims read from an external provider's ID token.
type ExternalClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// ExternalIdentity is the verified subject of an external ID token.
type ExternalIdentity struct {
	Subject string
	Email   string
}

// VerifyExternalToken checks an HS256 ID token issued by the external
// provider. When issuer is not empty the "iss" claim must match it.
func VerifyExternalToken(tokenString string, secret []byte, issuer string) (*ExternalIdentity, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("external sign-in is not configured: %w", common.ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &ExternalClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if claims.Subject == "" || claims.Email == "" {
		return nil, fmt.Errorf("%w: subject and email are required", common.ErrInvalidToken)
	}

	return &ExternalIdentity{Subject: claims.Subject, Email: claims.Email}, nil
}
