package jwt

import (
	"fmt"
	"sync"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/domain/auth"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

type Service interface {
	GenerateAccessToken(caller auth.Caller) (token string, expiresAt int64, err error)
	CallerFromClaims(claims map[string]interface{}) (auth.Caller, error)
	JWTAuth() *jwtauth.JWTAuth
	RevokeToken(token string, expiresAt int64)
	IsTokenRevoked(token string) bool
	PruneRevoked() int
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
	revokedTokens         map[string]int64
	mu                    sync.RWMutex
	now                   func() time.Time
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

// NewJWTService parses the expiration up front so a bad value fails at startup.
func NewJWTService(secretKey string, accessTokenExpirationTime string) (Service, error) {
	expiration, err := time.ParseDuration(accessTokenExpirationTime)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration %q: %w", accessTokenExpirationTime, err)
	}
	return &JWTService{
		accessTokenExpiration: expiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
		revokedTokens:         make(map[string]int64),
		now:                   time.Now,
	}, nil
}

func (j *JWTService) GenerateAccessToken(caller auth.Caller) (token string, expiresAt int64, err error) {
	if caller.EmployeeID == "" {
		return "", 0, auth.ErrMissingIdentity
	}
	expiresAt = j.now().Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"employee_id": caller.EmployeeID,
		"name":        caller.Name,
		"role":        string(caller.Role),
		"type":        tokenTypeAccess,
		"exp":         expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// CallerFromClaims rebuilds the caller from verified access token claims.
func (j *JWTService) CallerFromClaims(claims map[string]interface{}) (auth.Caller, error) {
	if tokenType, _ := claims["type"].(string); tokenType != tokenTypeAccess {
		return auth.Caller{}, auth.ErrInvalidToken
	}
	employeeID, _ := claims["employee_id"].(string)
	if employeeID == "" {
		return auth.Caller{}, auth.ErrMissingIdentity
	}
	name, _ := claims["name"].(string)
	role, _ := claims["role"].(string)

	return auth.Caller{
		EmployeeID: employeeID,
		Name:       name,
		Role:       auth.ParseRole(role),
	}, nil
}

// RevokeToken blocks a token until it expires.
func (j *JWTService) RevokeToken(token string, expiresAt int64) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.revokedTokens[token] = expiresAt
}

// PruneRevoked forgets revoked tokens that have expired anyway.
func (j *JWTService) PruneRevoked() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := j.now().Unix()
	removed := 0
	for t, exp := range j.revokedTokens {
		if exp < now {
			delete(j.revokedTokens, t)
			removed++
		}
	}
	return removed
}

func (j *JWTService) IsTokenRevoked(token string) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	_, revoked := j.revokedTokens[token]
	return revoked
}
