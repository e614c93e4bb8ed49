package utils

import (
	"context"
	"errors"

	"workvista/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserEmailNotFound  = errors.New("userEmail not found in context")
	ErrUserEmailNotString = errors.New("userEmail in context is not a string")
	ErrRequestIDNotFound  = errors.New("requestID not found in context")
	ErrRequestIDNotString = errors.New("requestID in context is not a string")
)

// GetUserEmailFromContext retrieves the verified identity email from the context.
// It returns an error if the email is not present or is not a string.
func GetUserEmailFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserEmailKey)
	if val == nil {
		return "", ErrUserEmailNotFound
	}
	email, ok := val.(string)
	if !ok {
		return "", ErrUserEmailNotString
	}
	return email, nil
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RequestIDKey)
	if val == nil {
		return "", ErrRequestIDNotFound
	}
	requestID, ok := val.(string)
	if !ok {
		return "", ErrRequestIDNotString
	}
	return requestID, nil
}

// Context builder functions

// WithUserEmail adds the verified identity email to context
func WithUserEmail(ctx context.Context, userEmail string) context.Context {
	return context.WithValue(ctx, contextkeys.UserEmailKey, userEmail)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithComponent adds component name to context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// WithOperation adds operation name to context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}

// Optional getters that return default values instead of errors

// GetUserEmailOrDefault retrieves the user email from context or returns a default value
func GetUserEmailOrDefault(ctx context.Context, def string) string {
	if v, err := GetUserEmailFromContext(ctx); err == nil {
		return v
	}
	return def
}

// HasUserEmail reports whether a verified identity is attached to the context.
func HasUserEmail(ctx context.Context) bool {
	_, err := GetUserEmailFromContext(ctx)
	return err == nil
}
