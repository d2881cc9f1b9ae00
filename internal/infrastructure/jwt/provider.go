package jwtinfra

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/LuWes17/infomatik-api/internal/config"
)

// Refresh tokens have a fixed validity; only the access-token lifetime is
// configurable.
const refreshTokenValidity = 7 * 24 * time.Hour

const refreshTokenType = "refresh"

// Claims holds the JWT payload fields for both token kinds. TokenType is
// empty on access tokens and "refresh" on refresh tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// Provider signs and verifies RS256 JWTs.
type Provider struct {
	privateKey   *rsa.PrivateKey
	publicKey    *rsa.PublicKey
	issuer       string
	audience     string
	accessExpiry time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	privBytes, err := os.ReadFile(cfg.JWTPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	privKey, err := jwt.ParseRSAPrivateKeyFromPEM(privBytes)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}

	pubBytes, err := os.ReadFile(cfg.JWTPublicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	pubKey, err := jwt.ParseRSAPublicKeyFromPEM(pubBytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	return &Provider{
		privateKey:   privKey,
		publicKey:    pubKey,
		issuer:       cfg.JWTIssuer,
		audience:     cfg.JWTAudience,
		accessExpiry: cfg.AccessTokenExpiry,
	}, nil
}

// SignAccess mints the bearer token used to authenticate requests.
func (p *Provider) SignAccess(userID, role string) (string, error) {
	return p.sign(Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(p.accessExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// SignRefresh mints the longer-lived token used only to obtain new access
// tokens.
func (p *Provider) SignRefresh(userID string) (string, error) {
	return p.sign(Claims{
		UserID:    userID,
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(refreshTokenValidity)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})
}

// VerifyAccess validates a bearer token. Refresh tokens are rejected so a
// leaked refresh token cannot authenticate requests directly.
func (p *Provider) VerifyAccess(tokenStr string) (*Claims, error) {
	claims, err := p.verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != "" {
		return nil, errors.New("not an access token")
	}
	return claims, nil
}

// VerifyRefresh validates a refresh token and enforces its type claim.
func (p *Provider) VerifyRefresh(tokenStr string) (*Claims, error) {
	claims, err := p.verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != refreshTokenType {
		return nil, errors.New("not a refresh token")
	}
	return claims, nil
}

func (p *Provider) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(p.privateKey)
}

func (p *Provider) verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.publicKey, nil
	},
		jwt.WithIssuer(p.issuer),
		jwt.WithAudience(p.audience),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
