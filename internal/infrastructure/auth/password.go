package auth

import (
	"crypto/subtle"
	"errors"

	"github.com/storefront/backend/internal/infrastructure/config"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for an unknown user or a wrong password
var ErrInvalidCredentials = errors.New("invalid username or password")

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// AdminAuthenticator checks the configured administrator credentials
type AdminAuthenticator struct {
	username     string
	passwordHash string
}

// NewAdminAuthenticator creates an authenticator for the configured admin
func NewAdminAuthenticator(cfg config.AdminConfig) *AdminAuthenticator {
	return &AdminAuthenticator{username: cfg.Username, passwordHash: cfg.PasswordHash}
}

// Authenticate returns the roles of the admin when the credentials match
func (a *AdminAuthenticator) Authenticate(username, password string) ([]string, error) {
	if a.passwordHash == "" {
		return nil, ErrInvalidCredentials
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passOK := CheckPassword(a.passwordHash, password)
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}
	return []string{RoleAdmin}, nil
}
