package jwt

import (
	"path/filepath"
	"testing"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func loadTestKeys() {
	publicKey = loadPublicKey(filepath.Join("testdata", "public.pem"))
	privateKey = loadPrivateKey(filepath.Join("testdata", "private.key"))
}

func TestSignAndValidatePlayerID(t *testing.T) {
	loadTestKeys()

	sign, err := Sign(18)
	assert.NoError(t, err)

	id, err := ValidPlayerID(sign)
	assert.NoError(t, err)
	assert.Equal(t, int64(18), id)
}

func TestValidPlayerID_InvalidAudience(t *testing.T) {
	loadTestKeys()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{"different-audience"},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   Issuer,
		Subject:  "15",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	id, err := ValidPlayerID(signedToken)
	assert.EqualError(t, err, "invalid audience")
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_InvalidIssuer(t *testing.T) {
	loadTestKeys()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(time.Now()),
		Issuer:   "invalid-issuer",
		Subject:  "15",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	id, err := ValidPlayerID(signedToken)
	assert.EqualError(t, err, "invalid issuer")
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_Expired(t *testing.T) {
	loadTestKeys()

	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(time.Now()),
		Issuer:    Issuer,
		ExpiresAt: jwtgo.NewNumericDate(time.Now().Add(time.Hour * -1)),
		Subject:   "15",
	})

	signedToken, err := token.SignedString(privateKey)
	if err != nil {
		t.Error(err)
		return
	}

	id, err := ValidPlayerID(signedToken)
	if err != nil {
		assert.Regexp(t, "token is expired", err.Error())
	} else {
		t.Error("expected an error")
	}
	assert.Equal(t, int64(0), id)
}

func TestValidPlayerID_Garbage(t *testing.T) {
	loadTestKeys()

	id, err := ValidPlayerID("not-a-token")
	assert.Error(t, err)
	assert.Equal(t, int64(0), id)
}
