package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "workvista context key " + string(c)
}

// UserEmailKey is the key for the verified identity email in context.Context.
// It is set by the session middleware after token verification and read by
// every identity-scoped handler.
const UserEmailKey = contextKey("userEmail")

// RequestIDKey is the key for the per-request correlation ID in context.Context.
const RequestIDKey = contextKey("requestID")

// ComponentKey is the key for the emitting component name in context.Context.
const ComponentKey = contextKey("component")

// OperationKey is the key for the current operation name in context.Context.
const OperationKey = contextKey("operation")
