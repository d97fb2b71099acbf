// Package infra initialises external clients: Firebase, Redis and Postgres.
package infra

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"quickbite/internal/config"
)

// NewFirebaseApp initialises the Firebase Admin SDK from resolved
// service-account credentials and the configured RTDB endpoint.
func NewFirebaseApp(ctx context.Context, cfg config.FirebaseConfig) (*firebase.App, error) {
	creds, err := cfg.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving firebase credentials: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("firebase database URL is not configured")
	}
	conf := &firebase.Config{
		ProjectID:   creds.ProjectID,
		DatabaseURL: cfg.DatabaseURL,
	}
	app, err := firebase.NewApp(ctx, conf, option.WithCredentialsJSON(creds.ServiceAccountJSON()))
	if err != nil {
		return nil, fmt.Errorf("firebase.NewApp: %w", err)
	}
	return app, nil
}

// NewMessaging returns the FCM client for push notifications.
func NewMessaging(ctx context.Context, app *firebase.App) (*messaging.Client, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Messaging: %w", err)
	}
	return client, nil
}

// FirebaseToken holds the verified token data used by downstream middleware.
type FirebaseToken struct {
	UID    string
	Claims map[string]interface{}
}

// TokenVerifier verifies a raw Firebase ID token string and returns token data.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier creates a TokenVerifier backed by the Firebase Admin SDK.
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (TokenVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase app.Auth: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	return &FirebaseToken{UID: token.UID, Claims: token.Claims}, nil
}

// InsecureVerifier treats the bearer token as "uid" or "uid:role" verbatim.
// Local development with the in-memory store only; never run this in
// production.
type InsecureVerifier struct{}

func (InsecureVerifier) VerifyIDToken(_ context.Context, idToken string) (*FirebaseToken, error) {
	uid, role, _ := strings.Cut(idToken, ":")
	claims := map[string]interface{}{}
	if role != "" {
		claims["role"] = role
	}
	return &FirebaseToken{UID: uid, Claims: claims}, nil
}
