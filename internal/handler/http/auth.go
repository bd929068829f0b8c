package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/presence-engine/internal/handler/http/response"
	"github.com/cmlabs-hris/presence-engine/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	// Me handles GET /auth/me
	Me(w http.ResponseWriter, r *http.Request)
	// Logout handles POST /auth/logout by revoking the presented access token
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService jwt.Service
}

func NewAuthHandler(jwtService jwt.Service) AuthHandler {
	return &AuthHandlerImpl{jwtService: jwtService}
}

type meResponse struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Role       string `json:"role"`
}

func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	caller, ok := requireCaller(w, r)
	if !ok {
		return
	}
	response.Success(w, meResponse{
		EmployeeID: caller.EmployeeID,
		Name:       caller.Name,
		Role:       string(caller.Role),
	})
}

func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireCaller(w, r); !ok {
		return
	}

	expiresAt := time.Now().Add(24 * time.Hour).Unix()
	if token, _, err := jwtauth.FromContext(r.Context()); err == nil && token != nil && !token.Expiration().IsZero() {
		expiresAt = token.Expiration().Unix()
	}
	a.jwtService.RevokeToken(jwtauth.TokenFromHeader(r), expiresAt)

	response.Success(w, "User logged out successfully")
}
