package login

import (
	"context"
	"inventory/pkg/httperror"

	"go.uber.org/zap"
)

type Authenticator interface {
	Authenticate(email, password string) error
}

type LoginHandler struct {
	authenticator Authenticator
}

func NewLoginHandler(authenticator Authenticator) *LoginHandler {
	return &LoginHandler{
		authenticator: authenticator,
	}
}

// LoginRequest fields are not validated: an empty email or password fails
// authentication like any other mismatch.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
}

// Handle is stateless: no session or token is issued on success.
func (h LoginHandler) Handle(_ context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := h.authenticator.Authenticate(req.Email, req.Password); err != nil {
		zap.L().Info("Login rejected", zap.String("email", req.Email))
		return nil, httperror.Unauthorized(
			"auth.login.invalid_credentials",
			"Invalid credentials",
			nil,
		)
	}

	return &LoginResponse{Message: "Login successful"}, nil
}
