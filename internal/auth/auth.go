// Package auth wires the Firebase project that serves as both the identity
// provider and the document store host. Every mutating operation in the
// service layer is gated on a user id resolved here.
package auth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/usmanrizwan2005-cyber/loan-management-app/internal/config"
)

// ErrNoToken is returned when an empty ID token is presented.
var ErrNoToken = errors.New("no id token provided")

// TokenVerifier resolves a client-supplied ID token to a stable user id.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (string, error)
}

// NewApp initializes the Firebase app for the configured project.
func NewApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	return app, nil
}

type firebaseVerifier struct {
	client *fbauth.Client
}

// NewVerifier creates a TokenVerifier backed by Firebase Auth.
func NewVerifier(ctx context.Context, app *firebase.App) (TokenVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	if idToken == "" {
		return "", ErrNoToken
	}
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return token.UID, nil
}
