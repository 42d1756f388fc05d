package session

import (
	"context"

	"barberbook/models"
)

// SessionService converts identity provider credential events into trusted
// User values. It is the sole authority on the acting role.
type SessionService interface {
	// ResolveRole derives the role from the credential email alone. It is
	// a pure function; stored profile roles never influence it.
	ResolveRole(email string) models.UserRole
	// Authenticate verifies an ID token and materializes a session.
	Authenticate(ctx context.Context, idToken string) (*models.User, error)
	// BuildSession materializes a session from a credential, merging the
	// profile document when one exists and degrading to credential data
	// alone when it does not.
	BuildSession(ctx context.Context, cred *Credential) *models.User
	// SignUp registers a new account: credential, best-effort verification
	// message, profile document, best-effort counter bump. A failed
	// profile write deletes the fresh credential before re-throwing.
	SignUp(ctx context.Context, email, password, name, phone string) (*models.User, error)
	// UpdateProfile merges updates into the stored profile and returns the
	// refreshed session.
	UpdateProfile(ctx context.Context, user models.User, updates map[string]interface{}) (*models.User, error)
	// Reload re-fetches the credential to refresh the verification flag.
	Reload(ctx context.Context, user models.User) (*models.User, error)
	// ListClients returns the client roster for the admin view.
	ListClients(ctx context.Context) ([]models.UserProfile, error)
}
