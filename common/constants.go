package common

const (
	// IdentityContextKey holds the *domain.AuthIdentity resolved by the
	// access guard.
	IdentityContextKey = "auth_identity"

	// UnknownRoleName is attached when the user's role cannot be resolved;
	// a missing role never fails an authenticated request.
	UnknownRoleName = "unknown"
)
