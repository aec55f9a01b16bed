package identity

import (
	"context"
	"fmt"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/Devepooper/yatube/internal/models"
	"github.com/Devepooper/yatube/internal/repositories"
	"google.golang.org/api/option"
)

// FirebaseProvider verifies Firebase ID tokens and maps the Firebase UID
// to a local user record.
type FirebaseProvider struct {
	authClient     *auth.Client
	userRepository repositories.UserRepository
}

// NewFirebaseProvider initializes the Firebase app from a service account
// credentials file.
func NewFirebaseProvider(ctx context.Context, credentialsPath string, userRepo repositories.UserRepository) (*FirebaseProvider, error) {
	if credentialsPath == "" {
		return nil, fmt.Errorf("firebase credentials path not provided")
	}
	if _, err := os.Stat(credentialsPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("firebase credentials file not found at %s", credentialsPath)
	}

	opt := option.WithCredentialsFile(credentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting firebase auth client: %w", err)
	}

	return &FirebaseProvider{authClient: authClient, userRepository: userRepo}, nil
}

func (p *FirebaseProvider) VerifyToken(ctx context.Context, idToken string) (*models.User, error) {
	token, err := p.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("invalid or expired ID token: %w", err)
	}

	user, err := p.userRepository.GetUserByFirebaseUID(token.UID)
	if err != nil {
		return nil, fmt.Errorf("no local account for firebase uid %s: %w", token.UID, err)
	}
	return user, nil
}
