package domain

// Identity is the acting user for the current operation.
// It is built once per request by the transport layer and passed explicitly
// into every service call, so authorization decisions never depend on
// ambient request state.
type Identity struct {
	UserID        int64
	Username      string
	Authenticated bool
}

// Anonymous returns an unauthenticated identity.
func Anonymous() Identity {
	return Identity{}
}

// AdminPolicy decides whether a given username or external account ID
// belongs to an administrator. The domain defines the interface; the
// concrete policy comes from configuration.
type AdminPolicy interface {
	IsAdminUsername(username string) bool
	IsAdminExternalID(id string) bool
}
