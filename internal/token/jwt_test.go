package token

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/contacts-server/internal/model"
)

func newTestJWT(secret string) *JWT {
	return NewJWT(secret, 15*time.Minute, 30*24*time.Hour, 24*time.Hour)
}

func TestJWT_GenerateParse_RoundTrip(t *testing.T) {
	j := newTestJWT("secret")
	userID := uuid.New()

	for _, kind := range []model.TokenKind{model.TokenKindAccess, model.TokenKindRefresh, model.TokenKindVerification} {
		t.Run(string(kind), func(t *testing.T) {
			tokenString, err := j.Generate(userID, kind)
			require.NoError(t, err)

			parsedID, err := j.Parse(tokenString, kind)
			require.NoError(t, err)
			assert.Equal(t, userID, parsedID)
		})
	}
}

func TestJWT_Generate_UnknownKind(t *testing.T) {
	j := newTestJWT("secret")

	_, err := j.Generate(uuid.New(), model.TokenKind("session"))
	require.Error(t, err)
}

func TestJWT_Parse_KindMismatch(t *testing.T) {
	j := newTestJWT("secret")

	access, err := j.Generate(uuid.New(), model.TokenKindAccess)
	require.NoError(t, err)

	_, err = j.Parse(access, model.TokenKindRefresh)
	assert.ErrorIs(t, err, model.ErrTokenKindMismatch)

	_, err = j.Parse(access, model.TokenKindVerification)
	assert.ErrorIs(t, err, model.ErrTokenKindMismatch)
}

func TestJWT_Parse_WrongSecret(t *testing.T) {
	issued, err := newTestJWT("secret-one").Generate(uuid.New(), model.TokenKindAccess)
	require.NoError(t, err)

	_, err = newTestJWT("secret-two").Parse(issued, model.TokenKindAccess)
	assert.ErrorIs(t, err, model.ErrTokenInvalidSignature)
}

func TestJWT_Parse_Expired(t *testing.T) {
	j := NewJWT("secret", -time.Minute, -time.Minute, -time.Minute)

	expired, err := j.Generate(uuid.New(), model.TokenKindAccess)
	require.NoError(t, err)

	_, err = j.Parse(expired, model.TokenKindAccess)
	assert.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestJWT_Parse_TamperedSignatureBeatsExpiry(t *testing.T) {
	expired, err := NewJWT("secret", -time.Minute, -time.Minute, -time.Minute).Generate(uuid.New(), model.TokenKindAccess)
	require.NoError(t, err)

	// Corrupt the signature segment: the signature verdict must win over
	// the expiry verdict.
	parts := strings.Split(expired, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = newTestJWT("secret").Parse(tampered, model.TokenKindAccess)
	assert.ErrorIs(t, err, model.ErrTokenInvalidSignature)
}

func TestJWT_Parse_Malformed(t *testing.T) {
	j := newTestJWT("secret")

	for _, tokenString := range []string{"", "not-a-token", "a.b.c"} {
		_, err := j.Parse(tokenString, model.TokenKindAccess)
		assert.ErrorIs(t, err, model.ErrTokenMalformed, "token %q", tokenString)
	}
}
