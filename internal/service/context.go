package service

import "context"

type contextKey string

const operatorKey contextKey = "operator"
const traceKey contextKey = "trace_id"

// DefaultOperator is the actor stamped on mutations made without an
// authenticated identity.
const DefaultOperator = "System"

// OperatorInfo is the structured identity of the acting user.
type OperatorInfo struct {
	UserID string
	Name   string
	Role   string
}

// WithOperator injects the operator info into the context.
func WithOperator(ctx context.Context, op *OperatorInfo) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}

// GetOperatorInfo retrieves the operator info from the context.
func GetOperatorInfo(ctx context.Context) *OperatorInfo {
	val, ok := ctx.Value(operatorKey).(*OperatorInfo)
	if !ok {
		return nil
	}
	return val
}

// GetOperator returns the acting username, falling back to DefaultOperator
// for unauthenticated requests.
func GetOperator(ctx context.Context) string {
	op := GetOperatorInfo(ctx)
	if op == nil || op.Name == "" {
		return DefaultOperator
	}
	return op.Name
}

// WithTraceID injects the request trace ID into the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceKey, traceID)
}

// GetTraceID returns the trace ID, or empty if none was set.
func GetTraceID(ctx context.Context) string {
	val, _ := ctx.Value(traceKey).(string)
	return val
}
