package domain

import "time"

// TokenIssuer issues bearer tokens naming an organizer.
type TokenIssuer interface {
	Issue(organizerID OrganizerID, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a bearer token and returns the organizer it was issued to.
type TokenVerifier interface {
	Verify(token string) (OrganizerID, error)
}
