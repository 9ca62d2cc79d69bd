package session

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/J0sF3r/asilo-fronted-sub000/pkg/types"
)

const testSecret = "asilo-test-secret"

func signToken(t *testing.T, secret string, role string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.MapClaims{
		"user_id":  "user-1",
		"username": "dra.lopez",
		"rol":      role,
		"exp":      expiresAt.Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	assert.NoError(t, err)
	return signed
}

func TestParseToken_Success(t *testing.T) {
	reader := NewClaimsReader(testSecret)
	token := signToken(t, testSecret, string(types.RoleMedicoEspecialista), time.Now().Add(time.Hour))

	claims, err := reader.ParseToken(token)

	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "dra.lopez", claims.Username)
	assert.Equal(t, types.RoleMedicoEspecialista, claims.Role)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestParseToken_Expired(t *testing.T) {
	reader := NewClaimsReader(testSecret)
	token := signToken(t, testSecret, string(types.RoleFarmacia), time.Now().Add(-time.Minute))

	claims, err := reader.ParseToken(token)

	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, types.HasCode(err, types.ErrCodeTokenExpired))
}

func TestParseToken_WrongSecret(t *testing.T) {
	reader := NewClaimsReader(testSecret)
	token := signToken(t, "some-other-secret", string(types.RoleAdministracion), time.Now().Add(time.Hour))

	claims, err := reader.ParseToken(token)

	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, types.HasCode(err, types.ErrCodeInvalidToken))
}

func TestParseToken_Garbage(t *testing.T) {
	reader := NewClaimsReader(testSecret)

	claims, err := reader.ParseToken("not-a-jwt")

	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.True(t, types.HasCode(err, types.ErrCodeInvalidToken))
}

func TestParseToken_NoExpiry(t *testing.T) {
	reader := NewClaimsReader(testSecret)

	claims := jwt.MapClaims{
		"user_id":  "user-1",
		"username": "dra.lopez",
		"rol":      string(types.RoleLaboratorio),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	assert.NoError(t, err)

	parsed, err := reader.ParseToken(signed)

	assert.Error(t, err)
	assert.Nil(t, parsed)
	assert.True(t, types.HasCode(err, types.ErrCodeInvalidToken))
}
