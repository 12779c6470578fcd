// internal/adapters/out/auth/firebase_verifier.go
package auth

import (
	"context"
	"errors"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"
)

// FirebaseVerifier は Firebase Auth の ID トークンを検証し email を返す（usecase.IDTokenVerifierPort）。
type FirebaseVerifier struct {
	Client *firebaseauth.Client
}

func NewFirebaseVerifier(client *firebaseauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{Client: client}
}

func (v *FirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (string, error) {
	if v == nil || v.Client == nil {
		return "", errors.New("auth: firebase client is nil")
	}
	tok, err := v.Client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	email, _ := tok.Claims["email"].(string)
	email = strings.TrimSpace(email)
	if email == "" {
		return "", errors.New("auth: firebase token has no email claim")
	}
	return email, nil
}
