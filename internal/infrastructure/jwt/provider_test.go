package jwtinfra

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuWes17/infomatik-api/internal/config"
)

// newTestProvider generates a fresh RSA key pair, writes it to temp files,
// and returns a Provider. t.TempDir() cleans up automatically.
func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	privKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")

	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(privKey)})
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))

	pubBytes, err := x509.MarshalPKIXPublicKey(&privKey.PublicKey)
	require.NoError(t, err)
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubBytes})
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0600))

	p, err := NewProvider(&config.Config{
		JWTPrivateKeyPath: privPath,
		JWTPublicKeyPath:  pubPath,
		JWTIssuer:         "infomatik-api",
		JWTAudience:       "infomatik-web",
		AccessTokenExpiry: 30 * 24 * time.Hour,
	})
	require.NoError(t, err)
	return p
}

func TestAccessTokenRoundTrip(t *testing.T) {
	p := newTestProvider(t)

	token, err := p.SignAccess("u1", "citizen")
	require.NoError(t, err)

	claims, err := p.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "citizen", claims.Role)
	assert.Equal(t, "u1", claims.Subject)
	assert.Empty(t, claims.TokenType)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	p := newTestProvider(t)

	token, err := p.SignRefresh("u1")
	require.NoError(t, err)

	claims, err := p.VerifyRefresh(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "refresh", claims.TokenType)
}

func TestVerifyAccess_RejectsRefreshToken(t *testing.T) {
	p := newTestProvider(t)

	token, err := p.SignRefresh("u1")
	require.NoError(t, err)

	_, err = p.VerifyAccess(token)
	assert.Error(t, err)
}

func TestVerifyRefresh_RejectsAccessToken(t *testing.T) {
	p := newTestProvider(t)

	token, err := p.SignAccess("u1", "citizen")
	require.NoError(t, err)

	_, err = p.VerifyRefresh(token)
	assert.Error(t, err)
}

func TestVerify_RejectsForeignSignature(t *testing.T) {
	p1 := newTestProvider(t)
	p2 := newTestProvider(t)

	token, err := p1.SignAccess("u1", "citizen")
	require.NoError(t, err)

	_, err = p2.VerifyAccess(token)
	assert.Error(t, err)
}

func TestVerify_RejectsGarbage(t *testing.T) {
	p := newTestProvider(t)
	_, err := p.VerifyAccess("not.a.jwt")
	assert.Error(t, err)
}
