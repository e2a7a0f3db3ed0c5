package core

import (
	"context"
	"errors"
	"log"
)

// RepositoryAuthService implements AuthService on top of a UserRepository
// and a TokenService.
type RepositoryAuthService struct {
	users  UserRepository
	tokens *TokenService
}

func NewRepositoryAuthService(users UserRepository, tokens *TokenService) *RepositoryAuthService {
	return &RepositoryAuthService{users: users, tokens: tokens}
}

// Register creates an account. The username check runs before the email
// check: when both collide the caller sees the username conflict. The
// pre-checks give precise error keys; the database unique constraints stay
// authoritative under concurrent registrations, so a unique violation on
// insert maps to the same already-exists outcomes.
func (s *RepositoryAuthService) Register(ctx context.Context, in RegisterInput) AuthResult {
	existing, err := s.users.FindByIdentifier(ctx, in.Username)
	if err != nil {
		return s.internal("register: username lookup", err)
	}
	if existing != nil {
		return resultError(StatusBadRequest, MsgUsernameExists)
	}

	existing, err = s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return s.internal("register: email lookup", err)
	}
	if existing != nil {
		return resultError(StatusBadRequest, MsgEmailExists)
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return s.internal("register: hash", err)
	}

	rec, err := s.users.Create(ctx, NewUser{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		Fullname:     in.Fullname,
		TenantID:     in.TenantID,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrUsernameTaken):
			return resultError(StatusBadRequest, MsgUsernameExists)
		case errors.Is(err, ErrEmailTaken):
			return resultError(StatusBadRequest, MsgEmailExists)
		default:
			return s.internal("register: insert", err)
		}
	}

	return resultOK(MsgUserCreated, registerData{User: projectionOf(rec)})
}

// Login verifies credentials against a single combined username-or-email
// lookup and issues a session token. An unknown identifier and a wrong
// password produce identical results on purpose.
func (s *RepositoryAuthService) Login(ctx context.Context, identifier, password string) AuthResult {
	rec, err := s.users.FindByIdentifier(ctx, identifier)
	if err != nil {
		return s.internal("login: lookup", err)
	}
	if rec == nil || !VerifyPassword(password, rec.Password) {
		return resultError(StatusUnauthorized, MsgInvalidCredentials)
	}

	token, err := s.tokens.Issue(rec.UserID, rec.Username, rec.Fullname)
	if err != nil {
		return s.internal("login: token issue", err)
	}

	return resultOK(MsgLoginSuccess, loginData{Token: token, User: projectionOf(rec)})
}

// internal logs the underlying error and returns a generic result; details
// never reach the client.
func (s *RepositoryAuthService) internal(op string, err error) AuthResult {
	log.Printf("auth %s failed: %v", op, err)
	return resultError(StatusInternalError, MsgInternalError)
}
