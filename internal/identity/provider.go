package identity

import (
	"context"
	"fmt"

	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any authentication failure so the
// login form cannot be used to probe which usernames exist.
var ErrInvalidCredentials = fmt.Errorf("invalid username or password")

// Provider authenticates a username/password pair against some identity
// backend and resolves it to a local user.
type Provider interface {
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
}

// TokenVerifier resolves an externally issued identity token to a local
// user.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (*models.User, error)
}

// LocalProvider checks credentials against bcrypt hashes stored with the
// user records.
type LocalProvider struct {
	userRepository repositories.UserRepository
}

func NewLocalProvider(userRepo repositories.UserRepository) *LocalProvider {
	return &LocalProvider{userRepository: userRepo}
}

func (p *LocalProvider) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := p.userRepository.GetUserByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// HashPassword prepares a password for storage on a user record.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
