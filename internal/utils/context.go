package utils

// contextKey is a type used for context keys to avoid conflicts with other
// packages' context keys.
type contextKey struct {
	name string
}

// Returns string representation of the context key.
func (c *contextKey) String() string {
	return c.name
}

// UserIdKey is the context key the session middleware stores the verified
// user id under.
var UserIdKey = &contextKey{"userId"}
var TraceIdKey = &contextKey{"traceId"}
var SanitizedPayloadKey = &contextKey{"sanitizedPayload"}
