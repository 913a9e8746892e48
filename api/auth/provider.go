package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jon4hz/notedeck/config"
	"github.com/jon4hz/notedeck/database"
)

// Provider issues and verifies the access and refresh tokens used by the API.
// Access tokens are short-lived bearer tokens; refresh tokens live in an
// httpOnly cookie and are only good for minting new access tokens.
type Provider struct {
	db            database.DB
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

// AccessClaims are the claims carried by an access token.
type AccessClaims struct {
	Username string   `json:"username"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// RefreshClaims are the claims carried by a refresh token.
type RefreshClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func New(cfg *config.AuthConfig, db database.DB) (*Provider, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("auth secrets are required")
	}
	return &Provider{
		db:            db,
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     time.Duration(cfg.AccessTokenTTL) * time.Second,
		refreshTTL:    time.Duration(cfg.RefreshTokenTTL) * time.Second,
	}, nil
}

// RefreshTTL returns the refresh token lifetime.
func (p *Provider) RefreshTTL() time.Duration {
	return p.refreshTTL
}

func (p *Provider) issueAccessToken(user *database.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		Username: user.Username,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.accessSecret)
}

func (p *Provider) issueRefreshToken(user *database.User) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.refreshTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.refreshSecret)
}

// VerifyAccessToken parses and validates an access token.
func (p *Provider) VerifyAccessToken(token string) (*AccessClaims, error) {
	var claims AccessClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.accessSecret, nil
	}); err != nil {
		return nil, err
	}
	return &claims, nil
}

// VerifyRefreshToken parses and validates a refresh token.
func (p *Provider) VerifyRefreshToken(token string) (*RefreshClaims, error) {
	var claims RefreshClaims
	if _, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.refreshSecret, nil
	}); err != nil {
		return nil, err
	}
	return &claims, nil
}
