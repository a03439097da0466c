package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Timesheet-api/pkg/jwt"
)

const (
	testSecret  = "test-secret-key-for-unit-tests"
	testUserID  = "00000000-0000-0000-0000-000000000001"
	testOwnerID = "00000000-0000-0000-0000-000000000002"
	testIssuer  = "timesheet-api-test"
)

func TestGenerateAndParse_ConOwnerYRole(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testOwnerID, "client", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, testOwnerID, claims.OwnerID)
	assert.Equal(t, "client", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

func TestParse_SinOwner_UsaUserID(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, "", "admin", testIssuer, 60)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, claims.OwnerID)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testOwnerID, "admin", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, testUserID, testOwnerID, "admin", testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", testUserID, testOwnerID, "admin", testIssuer, 60)
	assert.Error(t, err)
}
