package cryptox

import (
	"testing"

	"github.com/dmitrijs2005/gophdrop/internal/common"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.NoError(t, CheckPassword(hash, "s3cret"))
	require.ErrorIs(t, CheckPassword(hash, "wrong"), common.ErrorUnauthorized)
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword("not-a-hash", "x")
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrorUnauthorized)
}
