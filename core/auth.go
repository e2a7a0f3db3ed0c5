package core

import "context"

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Fullname string
	TenantID int64
}

// AuthService defines the authentication flow behaviour. Expected failure
// branches are AuthResult values, not errors; only the transport layer
// decides HTTP codes from the result status.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) AuthResult
	Login(ctx context.Context, identifier, password string) AuthResult
}

type registerData struct {
	User UserProjection `json:"user"`
}

type loginData struct {
	Token string         `json:"token"`
	User  UserProjection `json:"user"`
}

func projectionOf(u *UserRecord) UserProjection {
	return UserProjection{
		UserID:   u.UserID,
		Username: u.Username,
		Fullname: u.Fullname,
		Email:    u.Email,
	}
}
