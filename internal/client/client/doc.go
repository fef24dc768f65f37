// Package client talks to the blogauth AuthService over gRPC.
//
// GRPCClient keeps the access and refresh tokens obtained from SignUp or
// SignIn, attaches the access token to every call through a unary
// interceptor, and when a call fails with Unauthenticated "invalid token"
// it refreshes the pair once and retries.
//
// gRPC status codes are mapped to the sentinel errors in errors.go, so
// callers can use errors.Is; the server's message is kept in the error text.
package client
