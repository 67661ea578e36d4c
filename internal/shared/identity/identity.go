// Package identity carries the caller's authentication state through a
// request. Handlers receive either an anonymous identity or an
// authenticated one; there is no half-populated in-between.
package identity

import "github.com/gin-gonic/gin"

const contextKey = "identity"

// Identity is the authentication state of the current request.
type Identity struct {
	authenticated bool
	userID        string
	email         string
	role          string
}

// Anonymous returns the identity of an unauthenticated caller.
func Anonymous() Identity {
	return Identity{}
}

// Authenticated returns the identity of a verified token holder.
func Authenticated(userID, email, role string) Identity {
	return Identity{
		authenticated: true,
		userID:        userID,
		email:         email,
		role:          role,
	}
}

// IsAuthenticated reports whether the caller presented a valid token.
func (i Identity) IsAuthenticated() bool {
	return i.authenticated
}

// UserID returns the caller's user id and whether one is present.
func (i Identity) UserID() (string, bool) {
	return i.userID, i.authenticated
}

// Email returns the caller's email and whether one is present.
func (i Identity) Email() (string, bool) {
	return i.email, i.authenticated
}

// IsStaff reports whether the caller is authenticated staff.
func (i Identity) IsStaff() bool {
	return i.authenticated && i.role == "staff"
}

// FromContext extracts the identity stored by the auth middleware.
// Requests that never passed through the middleware are anonymous.
func FromContext(c *gin.Context) Identity {
	v, exists := c.Get(contextKey)
	if !exists {
		return Anonymous()
	}
	id, ok := v.(Identity)
	if !ok {
		return Anonymous()
	}
	return id
}

// Store attaches the identity to the request context.
func Store(c *gin.Context, id Identity) {
	c.Set(contextKey, id)
}
