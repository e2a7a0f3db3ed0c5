package core

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log"
	"os"
)

const (
	bootstrapUsername = "admin"
	bootstrapEmail    = "admin@localhost.localdomain"
)

// BootstrapUser creates an initial account with a generated password so a
// fresh deployment is reachable without manual inserts. It is idempotent:
// if the account already exists, it does nothing.
func BootstrapUser(ctx context.Context, repo UserRepository, cfg Config) error {
	if !cfg.BootstrapUserEnabled {
		return nil
	}

	existing, err := repo.FindByIdentifier(ctx, bootstrapUsername)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	password, err := generatePassword(32)
	if err != nil {
		return err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	if _, err := repo.Create(ctx, NewUser{
		Username:     bootstrapUsername,
		Email:        bootstrapEmail,
		PasswordHash: hash,
		Fullname:     "Administrator",
		TenantID:     1,
	}); err != nil {
		// A concurrent instance may have created it first.
		if errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken) {
			return nil
		}
		return err
	}

	if cfg.InitialUserPasswordPath != "" {
		if err := os.WriteFile(cfg.InitialUserPasswordPath, []byte(password+"\n"), 0o600); err != nil {
			return err
		}
		log.Printf("initial user created; credentials written to %s", cfg.InitialUserPasswordPath)
	} else {
		log.Printf("initial user created username=%s password=%s", bootstrapUsername, password)
	}

	return nil
}

func generatePassword(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("password length must be positive")
	}
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw)[:length], nil
}
