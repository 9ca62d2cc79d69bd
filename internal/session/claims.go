package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

// ClaimsReader decodes bearer tokens locally to obtain the session identity.
// It performs no network calls; callers treat any failure as an
// unauthenticated session and clear stored credentials themselves.
type ClaimsReader struct {
	jwtSecret []byte
}

// NewClaimsReader creates a new claims reader
func NewClaimsReader(secret string) *ClaimsReader {
	return &ClaimsReader{
		jwtSecret: []byte(secret),
	}
}

// ParseToken validates a bearer token and returns the user claims
func (r *ClaimsReader) ParseToken(tokenString string) (*types.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return r.jwtSecret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, types.NewAuthenticationError(types.ErrCodeTokenExpired, "token has expired")
		}
		return nil, &types.PortalError{
			Type:    types.ErrorTypeAuthentication,
			Code:    types.ErrCodeInvalidToken,
			Message: "failed to parse token",
			Cause:   err,
		}
	}

	if !token.Valid {
		return nil, types.NewAuthenticationError(types.ErrCodeInvalidToken, "invalid token")
	}

	claims, ok := token.Claims.(*sessionClaims)
	if !ok {
		return nil, types.NewAuthenticationError(types.ErrCodeInvalidToken, "invalid token claims")
	}

	// Check expiration explicitly; a token without an expiry is rejected
	if claims.ExpiresAt == nil {
		return nil, types.NewAuthenticationError(types.ErrCodeInvalidToken, "token carries no expiry")
	}
	if claims.ExpiresAt.Time.Before(time.Now()) {
		return nil, types.NewAuthenticationError(types.ErrCodeTokenExpired, "token has expired")
	}

	return &types.UserClaims{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      types.UserRole(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// sessionClaims represents the JWT claims issued by the asilo API
type sessionClaims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"rol"`
	jwt.RegisteredClaims
}
