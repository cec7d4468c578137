package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	service := &JWTService{}

	token, err := service.GenerateJWT(42, time.Now().Add(15*time.Minute))
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.MemberID)
	assert.Equal(t, "coopledger", claims.Issuer)
}

func TestValidateExpiredToken(t *testing.T) {
	service := &JWTService{}

	token, err := service.GenerateJWT(42, time.Now().Add(-time.Minute))
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbageToken(t *testing.T) {
	service := &JWTService{}

	_, err := service.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestValidateTokenWithoutMemberID(t *testing.T) {
	service := &JWTService{}

	token, err := service.GenerateJWT(0, time.Now().Add(15*time.Minute))
	assert.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}
