package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("secret")

	token, err := svc.GenerateToken(42)
	require.NoError(t, err)

	id, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestTokenCarriesOnlyEditorID(t *testing.T) {
	token, err := NewJWTService("secret").GenerateToken(5)
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, jwt.MapClaims{"editor_id": float64(5)}, claims)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	token, err := NewJWTService("other").GenerateToken(1)
	require.NoError(t, err)

	_, err = NewJWTService("secret").ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenDecode)
}

func TestTokenWithOtherAlgorithmIsRejected(t *testing.T) {
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"editor_id": 1}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = NewJWTService("secret").ParseToken(hs512)
	assert.ErrorIs(t, err, ErrTokenDecode)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"editor_id": 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = NewJWTService("secret").ParseToken(none)
	assert.ErrorIs(t, err, ErrTokenDecode)
}

func TestMalformedTokensAreRejected(t *testing.T) {
	svc := NewJWTService("secret")
	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := svc.ParseToken(token)
		assert.ErrorIs(t, err, ErrTokenDecode, token)
	}

	noClaim, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user": 1}).SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = svc.ParseToken(noClaim)
	assert.ErrorIs(t, err, ErrTokenDecode)
}
