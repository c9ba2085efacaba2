package domain

// SessionKind identifies the current identity context.
type SessionKind string

const (
	// KindAnonymous means no credential record exists; the cart lives in
	// device-local storage.
	KindAnonymous SessionKind = "anonymous"
	// KindUser is an authenticated shopper. Only user sessions own a
	// remote cart.
	KindUser SessionKind = "user"
	// KindSeller is an authenticated seller account. Sellers manage
	// products and never own a cart.
	KindSeller SessionKind = "seller"
)

// Session is the explicit identity value threaded into the mutation API
// and the reconciler. It is derived once from durable credential records
// rather than read ambiently at call sites.
type Session struct {
	Kind    SessionKind
	OwnerID string
	Name    string
}

// Anonymous returns the session used while no credentials are stored.
func Anonymous() Session {
	return Session{Kind: KindAnonymous}
}

// UserSession returns a session for an authenticated shopper.
func UserSession(ownerID, name string) Session {
	return Session{Kind: KindUser, OwnerID: ownerID, Name: name}
}

// SellerSession returns a session for an authenticated seller.
func SellerSession(ownerID, name string) Session {
	return Session{Kind: KindSeller, OwnerID: ownerID, Name: name}
}

// IsAnonymous reports whether no account is authenticated.
func (s Session) IsAnonymous() bool { return s.Kind == KindAnonymous }

// IsUser reports whether a shopper account is authenticated.
func (s Session) IsUser() bool { return s.Kind == KindUser }

// IsSeller reports whether a seller account is authenticated.
func (s Session) IsSeller() bool { return s.Kind == KindSeller }

// Account is a stored credential record (the `user` or `sellerData` blob).
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
