package session

import (
	"context"
	"fmt"

	fbauth "firebase.google.com/go/v4/auth"
)

// Credential is the identity provider's view of an account.
type Credential struct {
	UID           string
	Email         string
	DisplayName   string
	EmailVerified bool
}

// IdentityProvider is the credential-and-session oracle the resolver is
// built against. The production implementation wraps Firebase Auth.
type IdentityProvider interface {
	// Verify validates a client-issued ID token and returns the credential
	// it belongs to.
	Verify(ctx context.Context, idToken string) (*Credential, error)
	// Create registers a new email/password account.
	Create(ctx context.Context, email, password, displayName string) (*Credential, error)
	// Delete removes an account. Used by the registration rollback.
	Delete(ctx context.Context, uid string) error
	// Get re-fetches an account, refreshing its verification state.
	Get(ctx context.Context, uid string) (*Credential, error)
	// VerificationLink produces an email-verification link for an address.
	VerificationLink(ctx context.Context, email string) (string, error)
}

// FirebaseIdentityProvider implements IdentityProvider on the Firebase
// Auth admin client.
type FirebaseIdentityProvider struct {
	Client *fbauth.Client
}

func NewFirebaseIdentityProvider(client *fbauth.Client) *FirebaseIdentityProvider {
	return &FirebaseIdentityProvider{Client: client}
}

func (p *FirebaseIdentityProvider) Verify(ctx context.Context, idToken string) (*Credential, error) {
	token, err := p.Client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify ID token: %w", err)
	}
	return p.Get(ctx, token.UID)
}

func (p *FirebaseIdentityProvider) Create(ctx context.Context, email, password, displayName string) (*Credential, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	record, err := p.Client.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create account for %s: %w", email, err)
	}
	return credentialFromRecord(record), nil
}

func (p *FirebaseIdentityProvider) Delete(ctx context.Context, uid string) error {
	if err := p.Client.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("failed to delete account %s: %w", uid, err)
	}
	return nil
}

func (p *FirebaseIdentityProvider) Get(ctx context.Context, uid string) (*Credential, error) {
	record, err := p.Client.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account %s: %w", uid, err)
	}
	return credentialFromRecord(record), nil
}

func (p *FirebaseIdentityProvider) VerificationLink(ctx context.Context, email string) (string, error) {
	link, err := p.Client.EmailVerificationLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to generate verification link for %s: %w", email, err)
	}
	return link, nil
}

func credentialFromRecord(record *fbauth.UserRecord) *Credential {
	return &Credential{
		UID:           record.UID,
		Email:         record.Email,
		DisplayName:   record.DisplayName,
		EmailVerified: record.EmailVerified,
	}
}
