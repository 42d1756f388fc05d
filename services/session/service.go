package session

import (
	"context"
	"fmt"

	profileRepo "barberbook/database/repository/profile"
	"barberbook/models"
	"barberbook/utils"

	"go.uber.org/zap"
)

// DefaultSessionService is the production implementation of SessionService.
type DefaultSessionService struct {
	Identity IdentityProvider
	Profiles profileRepo.ProfileRepository
	// AdminEmail is the single address that resolves to the ADMIN role.
	AdminEmail string
}

// ResolveRole derives the acting role from the credential email. One
// designated address is the admin; everyone else is a client. A stored
// profile claiming otherwise is ignored, which closes the privilege
// escalation a writable role field would open.
func (s *DefaultSessionService) ResolveRole(email string) models.UserRole {
	if email == s.AdminEmail {
		return models.RoleAdmin
	}
	return models.RoleClient
}

// Authenticate verifies an ID token and materializes the session.
func (s *DefaultSessionService) Authenticate(ctx context.Context, idToken string) (*models.User, error) {
	cred, err := s.Identity.Verify(ctx, idToken)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	return s.BuildSession(ctx, cred), nil
}

// BuildSession materializes a trusted User from a credential. The profile
// fetch is allowed to fail: auth availability must not depend on the
// profile store, so missing or unreadable profiles degrade to a minimal
// session built from credential data alone.
func (s *DefaultSessionService) BuildSession(ctx context.Context, cred *Credential) *models.User {
	role := s.ResolveRole(cred.Email)

	// The admin address skips the verification gate.
	verified := cred.EmailVerified
	if role == models.RoleAdmin {
		verified = true
	}

	user := &models.User{
		ID:            cred.UID,
		Name:          cred.DisplayName,
		Email:         cred.Email,
		Role:          role,
		EmailVerified: verified,
	}
	if user.Name == "" {
		user.Name = "User"
	}

	profile, err := s.Profiles.GetByID(cred.UID)
	if err != nil {
		utils.GetLogger().Warn("profile fetch failed, using credential-only session",
			zap.String("uid", cred.UID), zap.Error(err))
		return user
	}
	if profile == nil {
		return user
	}

	if profile.Name != "" {
		user.Name = profile.Name
	}
	user.Phone = profile.Phone
	user.Avatar = profile.Avatar
	// profile.Role is display-only; the derived role above stands.
	return user
}

// SignUp registers a new account. Step order matters: the credential comes
// first, the verification message and counter bump are best-effort, and a
// failed profile write triggers the one compensating rollback in the
// system — deleting the fresh credential so no zombie account survives.
func (s *DefaultSessionService) SignUp(ctx context.Context, email, password, name, phone string) (*models.User, error) {
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("email, password and name are required")
	}

	cred, err := s.Identity.Create(ctx, email, password, name)
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	role := s.ResolveRole(email)

	// Best-effort verification message; the admin address skips it.
	if role != models.RoleAdmin {
		if _, err := s.Identity.VerificationLink(ctx, email); err != nil {
			utils.GetLogger().Warn("failed to send verification message",
				zap.String("email", email), zap.Error(err))
		}
	}

	profile := &models.UserProfile{
		ID:    cred.UID,
		Name:  name,
		Email: email,
		Phone: phone,
		Role:  role,
	}
	if err := s.Profiles.Upsert(profile); err != nil {
		// Zombie-account prevention: an account with login but no profile
		// is worse than no account.
		if delErr := s.Identity.Delete(ctx, cred.UID); delErr != nil {
			utils.GetLogger().Error("failed to roll back credential after profile write failure",
				zap.String("uid", cred.UID), zap.Error(delErr))
			return nil, &RegistrationError{Err: err, RolledBack: false}
		}
		return nil, &RegistrationError{Err: err, RolledBack: true}
	}

	// Best-effort global counter; permission failures are ignored.
	if err := s.Profiles.IncrementUserCounter(); err != nil {
		utils.GetLogger().Warn("failed to increment user counter", zap.Error(err))
	}

	return s.BuildSession(ctx, cred), nil
}

// UpdateProfile merges updates into the stored profile (merge semantics,
// not replace) and returns the refreshed session.
func (s *DefaultSessionService) UpdateProfile(ctx context.Context, user models.User, updates map[string]interface{}) (*models.User, error) {
	if len(updates) == 0 {
		return &user, nil
	}
	// The role field is never writable through profile updates.
	delete(updates, "role")

	if err := s.Profiles.Merge(user.ID, updates); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	cred, err := s.Identity.Get(ctx, user.ID)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	return s.BuildSession(ctx, cred), nil
}

// ListClients returns every client-role profile. The stored role field is
// good enough here: it is written from the derived role at signup and the
// admin roster is a display concern, not an authorization one.
func (s *DefaultSessionService) ListClients(ctx context.Context) ([]models.UserProfile, error) {
	profiles, err := s.Profiles.ListClients()
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return profiles, nil
}

// Reload re-fetches the credential to pick up a changed verification flag
// without a full re-authentication.
func (s *DefaultSessionService) Reload(ctx context.Context, user models.User) (*models.User, error) {
	cred, err := s.Identity.Get(ctx, user.ID)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	return s.BuildSession(ctx, cred), nil
}
