package session

import "fmt"

// AuthError wraps a credential rejection from the identity provider. It is
// propagated as-is, not translated.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// RegistrationError signals that registration failed after the credential
// was created and the compensating rollback ran.
type RegistrationError struct {
	Err        error
	RolledBack bool
}

func (e *RegistrationError) Error() string {
	if e.RolledBack {
		return fmt.Sprintf("registration failed (credential rolled back): %v", e.Err)
	}
	return fmt.Sprintf("registration failed: %v", e.Err)
}

func (e *RegistrationError) Unwrap() error {
	return e.Err
}
