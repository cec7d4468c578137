package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndComparePassword(t *testing.T) {
	service := &HashService{}

	hash, err := service.HashPassword("s3cret")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, service.ComparePassword(hash, "s3cret"))
	assert.False(t, service.ComparePassword(hash, "wrong"))
}

func TestHashEmptyPassword(t *testing.T) {
	service := &HashService{}

	_, err := service.HashPassword("")
	assert.Error(t, err)
}

func TestHashCustomCost(t *testing.T) {
	service := &HashService{Cost: 4}

	hash, err := service.HashPassword("s3cret")
	assert.NoError(t, err)
	assert.True(t, service.ComparePassword(hash, "s3cret"))
}
