package profileRepo

import "barberbook/models"

// ProfileRepository defines methods for profile document access. Profiles
// are keyed by the identity provider's stable uid.
type ProfileRepository interface {
	// GetByID retrieves a profile by uid. Returns (nil, nil) when no
	// document exists; callers degrade to a credential-only session.
	GetByID(id string) (*models.UserProfile, error)
	// Upsert writes a full profile document, creating it if absent.
	Upsert(profile *models.UserProfile) error
	// Merge applies a partial update to a profile (merge semantics, not
	// replace).
	Merge(id string, updates map[string]interface{}) error
	// ListClients retrieves every profile carrying the client role, for the
	// admin roster view.
	ListClients() ([]models.UserProfile, error)
	// IncrementUserCounter bumps the global registration counter. Failure
	// is a best-effort concern for callers.
	IncrementUserCounter() error
}
