package auth

import "context"

type AuthService interface {
	// Login verifies credentials and issues an access/refresh token pair.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
}
